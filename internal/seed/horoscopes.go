package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/thebtf/dreamlog/internal/db"
	"github.com/thebtf/dreamlog/pkg/models"
)

// ReadingDateLayout is the calendar date format of horoscope readings.
const ReadingDateLayout = "2006-01-02"

// ErrUnknownZodiacSign is returned for a placeholder whose sign is not one of
// the twelve.
var ErrUnknownZodiacSign = errors.New("unknown zodiac sign")

// HoroscopePlaceholder is the default reading content for one sign.
type HoroscopePlaceholder struct {
	ZodiacSign    string `json:"zodiacSign" yaml:"zodiacSign"`
	Summary       string `json:"summary" yaml:"summary"`
	Compatibility string `json:"compatibility" yaml:"compatibility"`
	LuckyNumbers  string `json:"luckyNumbers" yaml:"luckyNumbers"`
}

// DefaultHoroscopePlaceholders holds one placeholder per zodiac sign.
var DefaultHoroscopePlaceholders = []HoroscopePlaceholder{
	{"Aries", "Channel bold energy into creative pursuits and collaborative breakthroughs.", "Leo, Sagittarius", "1, 9, 27"},
	{"Taurus", "Ground yourself with consistent rituals and appreciate small comforts.", "Virgo, Capricorn", "2, 8, 16"},
	{"Gemini", "Curiosity opens doors; share your discoveries with trusted friends.", "Libra, Aquarius", "3, 5, 14"},
	{"Cancer", "Nurture emotional connections and set firm boundaries where needed.", "Scorpio, Pisces", "4, 7, 22"},
	{"Leo", "Lead with warmth and celebrate progress toward long-term dreams.", "Aries, Sagittarius", "5, 19, 33"},
	{"Virgo", "Refine your routines; mindful organization invites clarity.", "Taurus, Capricorn", "6, 15, 24"},
	{"Libra", "Seek balance in relationships and add beauty to your surroundings.", "Gemini, Aquarius", "7, 11, 28"},
	{"Scorpio", "Transformative insights arrive when you lean into vulnerability.", "Cancer, Pisces", "8, 13, 21"},
	{"Sagittarius", "Adventure awaits; expand your worldview through study or travel.", "Aries, Leo", "9, 18, 30"},
	{"Capricorn", "Strategic planning turns ambitions into tangible milestones.", "Taurus, Virgo", "10, 17, 26"},
	{"Aquarius", "Innovative ideas flourish when you collaborate with like minds.", "Gemini, Libra", "11, 20, 32"},
	{"Pisces", "Dreams guide you; translate intuition into grounded action.", "Cancer, Scorpio", "12, 23, 34"},
}

// HoroscopeOptions controls horoscope placeholder seeding.
type HoroscopeOptions struct {
	// Now supplies today's date when ReadingDate is empty. Defaults to time.Now.
	Now func() time.Time
	// ReadingDate is the YYYY-MM-DD date to seed. Empty means today in UTC.
	ReadingDate string
	Options
}

func (o HoroscopeOptions) readingDate() string {
	if o.ReadingDate != "" {
		return o.ReadingDate
	}
	now := o.Now
	if now == nil {
		now = time.Now
	}
	return now().UTC().Format(ReadingDateLayout)
}

// HoroscopePlaceholders creates a reading for each placeholder sign the user
// has no reading for on the reading date. Signs match exactly. With
// opts.Overwrite the user's readings for that date are deleted first and
// every placeholder is inserted. A nil list means
// DefaultHoroscopePlaceholders. Returns the user's readings for the date.
func HoroscopePlaceholders(ctx context.Context, repo db.HoroscopeStore, userID int64, placeholders []HoroscopePlaceholder, opts HoroscopeOptions) ([]*models.Horoscope, error) {
	if placeholders == nil {
		placeholders = DefaultHoroscopePlaceholders
	}
	for _, p := range placeholders {
		if !models.IsZodiacSign(p.ZodiacSign) {
			return nil, fmt.Errorf("seed horoscopes: %q: %w", p.ZodiacSign, ErrUnknownZodiacSign)
		}
	}
	date := opts.readingDate()
	logger := log.With().Int64("user_id", userID).Str("reading_date", date).Logger()

	existing, err := repo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("seed horoscopes: %w", err)
	}

	seen := make(map[string]struct{}, len(existing)+len(placeholders))
	if opts.Overwrite {
		for _, h := range existing {
			if _, err := repo.Delete(ctx, h.ID); err != nil {
				return nil, fmt.Errorf("seed horoscopes: delete %d: %w", h.ID, err)
			}
		}
		logger.Debug().Int("deleted", len(existing)).Msg("Cleared horoscope readings before seeding")
	} else {
		for _, h := range existing {
			seen[h.ZodiacSign] = struct{}{}
		}
	}

	inserted := 0
	for _, p := range placeholders {
		if _, ok := seen[p.ZodiacSign]; ok {
			continue
		}
		seen[p.ZodiacSign] = struct{}{}

		_, err := repo.Create(ctx, models.CreateHoroscopeInput{
			UserID:        userID,
			ZodiacSign:    p.ZodiacSign,
			ReadingDate:   date,
			Summary:       models.Ptr(p.Summary),
			Compatibility: models.Ptr(p.Compatibility),
			LuckyNumbers:  models.Ptr(p.LuckyNumbers),
		})
		if err != nil {
			recordInserted(ctx, "horoscope", inserted)
			return nil, fmt.Errorf("seed horoscopes: create %s: %w", p.ZodiacSign, err)
		}
		inserted++
	}
	recordInserted(ctx, "horoscope", inserted)

	if inserted == 0 && !opts.Overwrite {
		logger.Debug().Int("existing", len(existing)).Msg("Horoscope placeholders already seeded")
		return existing, nil
	}
	logger.Info().Int("inserted", inserted).Bool("overwrite", opts.Overwrite).Msg("Seeded horoscope placeholders")

	result, err := repo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		return nil, fmt.Errorf("seed horoscopes: %w", err)
	}
	return result, nil
}
