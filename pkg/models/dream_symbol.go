package models

import "time"

// DreamSymbol is a dictionary entry explaining a recurring dream image.
// DreamID is nil for reference entries not attached to a dream.
type DreamSymbol struct {
	ID        int64     `json:"id" yaml:"id"`
	DreamID   *int64    `json:"dreamId" yaml:"dreamId"`
	Symbol    string    `json:"symbol" yaml:"symbol"`
	Meaning   *string   `json:"meaning" yaml:"meaning"`
	Notes     *string   `json:"notes" yaml:"notes"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// CreateDreamSymbolInput holds the fields accepted when adding a symbol.
type CreateDreamSymbolInput struct {
	DreamID *int64
	Meaning *string
	Notes   *string
	Symbol  string
}

// DreamSymbolPatch lists the symbol fields an update may touch.
type DreamSymbolPatch struct {
	DreamID Field[*int64]
	Symbol  Field[string]
	Meaning Field[*string]
	Notes   Field[*string]
}

// IsEmpty reports whether the patch assigns no fields.
func (p DreamSymbolPatch) IsEmpty() bool {
	return !p.DreamID.Set && !p.Symbol.Set && !p.Meaning.Set && !p.Notes.Set
}
