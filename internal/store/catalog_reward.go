package store

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/models"
)

var rewardsHeader = []string{"id", "level", "title", "description", "costPoints"}

// rewardCatalog is the CSV-seeded implementation of [RewardCatalog]. The
// table is loaded once at construction, sorted by (level, cost) and held in
// memory read-only.
type rewardCatalog struct {
	rewards []models.RewardDefinition
}

// NewRewardCatalog loads the reward catalog from the CSV table at path.
// When the table is absent (first run), it is seeded with the default
// reward set before loading.
//
// The loaded catalog is sorted by level ascending, then cost ascending; the
// ordering is stable and part of the presentation contract.
func NewRewardCatalog(path string, logger *logger.Logger) (RewardCatalog, error) {
	rows, err := readTable(path)
	if err != nil {
		return nil, err
	}

	if rows == nil {
		logger.Info().Str("path", path).Msg("reward catalog absent, seeding defaults")
		if err := writeTable(path, rewardsHeader, seedRewardRows()); err != nil {
			return nil, err
		}
		if rows, err = readTable(path); err != nil {
			return nil, err
		}
	}

	rewards := make([]models.RewardDefinition, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		reward, err := decodeRewardRow(row)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[reward.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate reward id %q", ErrMalformedRow, reward.ID)
		}
		seen[reward.ID] = struct{}{}
		rewards = append(rewards, reward)
	}

	sort.SliceStable(rewards, func(i, j int) bool {
		if rewards[i].Level.Rank() != rewards[j].Level.Rank() {
			return rewards[i].Level.Rank() < rewards[j].Level.Rank()
		}
		return rewards[i].CostPoints < rewards[j].CostPoints
	})

	logger.Debug().Int("rewards", len(rewards)).Msg("reward catalog loaded")
	return &rewardCatalog{rewards: rewards}, nil
}

// All returns every reward definition sorted by (level, cost).
func (c *rewardCatalog) All() []models.RewardDefinition {
	return c.rewards
}

// FindByID retrieves the definition with the given id, or
// [ErrRewardNotFound].
func (c *rewardCatalog) FindByID(id string) (models.RewardDefinition, error) {
	for _, reward := range c.rewards {
		if reward.ID == id {
			return reward, nil
		}
	}
	return models.RewardDefinition{}, ErrRewardNotFound
}

func decodeRewardRow(row []string) (models.RewardDefinition, error) {
	if len(row) < 5 {
		return models.RewardDefinition{}, fmt.Errorf("%w: rewards row has %d columns", ErrMalformedRow, len(row))
	}

	cost, err := strconv.Atoi(row[4])
	if err != nil {
		return models.RewardDefinition{}, fmt.Errorf("%w: costPoints column: %w", ErrMalformedRow, err)
	}
	if cost < 0 {
		return models.RewardDefinition{}, fmt.Errorf("%w: negative cost %d", ErrMalformedRow, cost)
	}

	level := models.Level(row[1])
	if !level.Valid() {
		return models.RewardDefinition{}, fmt.Errorf("%w: unknown level %q", ErrMalformedRow, row[1])
	}

	return models.RewardDefinition{
		ID:          row[0],
		Level:       level,
		Title:       row[2],
		Description: row[3],
		CostPoints:  cost,
	}, nil
}
