package complaint

import (
	"context"
	"fmt"

	"github.com/bobmcallan/citypulse/internal/common"
	"github.com/bobmcallan/citypulse/internal/interfaces"
	"github.com/bobmcallan/citypulse/internal/models"
)

// LoadOrSeed returns the persisted complaint collection. An empty store is
// filled with the output of seed first, so generation happens at most once.
func LoadOrSeed(ctx context.Context, store interfaces.ComplaintStore, seed func() []models.Complaint, logger *common.Logger) ([]models.Complaint, error) {
	existing, err := store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load complaints: %w", err)
	}
	if len(existing) > 0 {
		logger.Info().Int("count", len(existing)).Msg("Loaded complaint snapshot")
		return existing, nil
	}

	generated := seed()
	if err := store.SaveAll(ctx, generated); err != nil {
		return nil, fmt.Errorf("failed to seed complaints: %w", err)
	}
	logger.Info().Int("count", len(generated)).Msg("Seeded complaint snapshot")
	return generated, nil
}
