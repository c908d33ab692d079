package models

import (
	"strings"
	"time"
)

// Horoscope is a daily reading for one zodiac sign, owned by a user.
type Horoscope struct {
	ID            int64     `json:"id" yaml:"id"`
	UserID        int64     `json:"userId" yaml:"userId"`
	ZodiacSign    string    `json:"zodiacSign" yaml:"zodiacSign"`
	ReadingDate   string    `json:"readingDate" yaml:"readingDate"` // YYYY-MM-DD
	Summary       *string   `json:"summary" yaml:"summary"`
	Compatibility *string   `json:"compatibility" yaml:"compatibility"`
	LuckyNumbers  *string   `json:"luckyNumbers" yaml:"luckyNumbers"` // comma separated, e.g. "1, 9, 27"
	CreatedAt     time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// CreateHoroscopeInput holds the fields accepted when storing a reading.
type CreateHoroscopeInput struct {
	Summary       *string
	Compatibility *string
	LuckyNumbers  *string
	ZodiacSign    string
	ReadingDate   string
	UserID        int64
}

// HoroscopePatch lists the horoscope fields an update may touch.
type HoroscopePatch struct {
	Summary       Field[*string]
	Compatibility Field[*string]
	LuckyNumbers  Field[*string]
	ReadingDate   Field[string]
}

// IsEmpty reports whether the patch assigns no fields.
func (p HoroscopePatch) IsEmpty() bool {
	return !p.Summary.Set && !p.Compatibility.Set && !p.LuckyNumbers.Set && !p.ReadingDate.Set
}

// ZodiacSigns is the twelve signs in calendar order starting at the vernal equinox.
var ZodiacSigns = []string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

// IsZodiacSign reports whether s names one of the twelve signs, ignoring case.
func IsZodiacSign(s string) bool {
	for _, sign := range ZodiacSigns {
		if strings.EqualFold(sign, s) {
			return true
		}
	}
	return false
}
