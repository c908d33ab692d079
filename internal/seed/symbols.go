package seed

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/thebtf/dreamlog/internal/db"
	"github.com/thebtf/dreamlog/pkg/models"
)

// DefaultDreamSymbols is the built-in symbol dictionary.
var DefaultDreamSymbols = []models.CreateDreamSymbolInput{
	{Symbol: "Water", Meaning: models.Ptr("Emotional flow, intuition, and the subconscious mind.")},
	{Symbol: "Flight", Meaning: models.Ptr("Freedom, elevated perspective, or a desire to escape.")},
	{Symbol: "Falling", Meaning: models.Ptr("Loss of control, anxiety, or uncertainty about the future.")},
	{Symbol: "Forest", Meaning: models.Ptr("Exploration of the unknown, spiritual growth, or mystery.")},
	{Symbol: "Mirror", Meaning: models.Ptr("Self-reflection, identity, and personal transformation.")},
}

// DreamSymbols inserts every symbol whose name, compared case-insensitively,
// is not already stored. With opts.Overwrite all stored symbols are deleted
// first and the whole list is inserted. A nil list means DefaultDreamSymbols.
// Returns every stored symbol afterwards.
//
// Entries repeating a name earlier in the list are skipped, so repeated runs
// converge on one row per name.
func DreamSymbols(ctx context.Context, repo db.DreamSymbolStore, symbols []models.CreateDreamSymbolInput, opts Options) ([]*models.DreamSymbol, error) {
	if symbols == nil {
		symbols = DefaultDreamSymbols
	}

	existing, err := repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed dream symbols: %w", err)
	}

	seen := make(map[string]struct{}, len(existing)+len(symbols))
	if opts.Overwrite {
		for _, s := range existing {
			if _, err := repo.Delete(ctx, s.ID); err != nil {
				return nil, fmt.Errorf("seed dream symbols: delete %d: %w", s.ID, err)
			}
		}
		log.Debug().Int("deleted", len(existing)).Msg("Cleared dream symbols before seeding")
	} else {
		for _, s := range existing {
			seen[strings.ToLower(s.Symbol)] = struct{}{}
		}
	}

	missing := make([]models.CreateDreamSymbolInput, 0, len(symbols))
	for _, s := range symbols {
		key := strings.ToLower(s.Symbol)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		missing = append(missing, s)
	}

	if len(missing) == 0 && !opts.Overwrite {
		log.Debug().Int("existing", len(existing)).Msg("Dream symbols already seeded")
		return existing, nil
	}

	if len(missing) > 0 {
		created, err := repo.BulkInsert(ctx, missing)
		recordInserted(ctx, "dream_symbol", len(created))
		if err != nil {
			return nil, fmt.Errorf("seed dream symbols: %w", err)
		}
		log.Info().Int("inserted", len(created)).Bool("overwrite", opts.Overwrite).Msg("Seeded dream symbols")
	}

	all, err := repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed dream symbols: %w", err)
	}
	return all, nil
}
