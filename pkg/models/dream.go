package models

import "time"

// Dream is a single journal entry describing one night's dream.
type Dream struct {
	ID            int64     `json:"id" yaml:"id"`
	UserID        int64     `json:"userId" yaml:"userId"`
	Title         string    `json:"title" yaml:"title"`
	Narrative     *string   `json:"narrative" yaml:"narrative"`
	Mood          *string   `json:"mood" yaml:"mood"`
	LucidityLevel *int64    `json:"lucidityLevel" yaml:"lucidityLevel"`
	SleepQuality  *int64    `json:"sleepQuality" yaml:"sleepQuality"`
	DreamDate     string    `json:"dreamDate" yaml:"dreamDate"` // YYYY-MM-DD
	CreatedAt     time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// CreateDreamInput holds the fields accepted when recording a dream.
type CreateDreamInput struct {
	Narrative     *string
	Mood          *string
	LucidityLevel *int64
	SleepQuality  *int64
	Title         string
	DreamDate     string
	UserID        int64
}

// DreamPatch lists the dream fields an update may touch.
type DreamPatch struct {
	Title         Field[string]
	Narrative     Field[*string]
	Mood          Field[*string]
	LucidityLevel Field[*int64]
	SleepQuality  Field[*int64]
	DreamDate     Field[string]
}

// IsEmpty reports whether the patch assigns no fields.
func (p DreamPatch) IsEmpty() bool {
	return !p.Title.Set && !p.Narrative.Set && !p.Mood.Set &&
		!p.LucidityLevel.Set && !p.SleepQuality.Set && !p.DreamDate.Set
}
