package models

import "time"

// Synchronicity records a waking-life coincidence, optionally tied to a dream.
type Synchronicity struct {
	ID               int64     `json:"id" yaml:"id"`
	DreamID          *int64    `json:"dreamId" yaml:"dreamId"`
	Description      string    `json:"description" yaml:"description"`
	OccurredOn       *string   `json:"occurredOn" yaml:"occurredOn"`
	CorrelationScore *float64  `json:"correlationScore" yaml:"correlationScore"` // 0.0-1.0 by convention, not enforced
	CreatedAt        time.Time `json:"createdAt" yaml:"createdAt"`
}

// CreateSynchronicityInput holds the fields accepted when logging a synchronicity.
type CreateSynchronicityInput struct {
	DreamID          *int64
	OccurredOn       *string
	CorrelationScore *float64
	Description      string
}

// SynchronicityPatch lists the synchronicity fields an update may touch.
type SynchronicityPatch struct {
	DreamID          Field[*int64]
	Description      Field[string]
	OccurredOn       Field[*string]
	CorrelationScore Field[*float64]
}

// IsEmpty reports whether the patch assigns no fields.
func (p SynchronicityPatch) IsEmpty() bool {
	return !p.DreamID.Set && !p.Description.Set && !p.OccurredOn.Set && !p.CorrelationScore.Set
}
