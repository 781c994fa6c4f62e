package store

import (
	"path/filepath"

	"github.com/greenplus/greenplus/internal/config"
	"github.com/greenplus/greenplus/internal/logger"
)

// Storages aggregates every persistence-layer dependency of the engines:
// the mutable Users table, the append-only progress log, and the two
// read-only catalogs.
type Storages struct {
	UserRepository     UserRepository
	ProgressRepository ProgressRepository
	TaskCatalog        TaskCatalog
	RewardCatalog      RewardCatalog
}

// NewStorages wires all repositories and catalogs against the configured
// data directory. Catalog tables absent on first run are seeded with their
// default rows.
func NewStorages(cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	taskCatalog, err := NewTaskCatalog(filepath.Join(cfg.DataDir, cfg.TasksFile), logger)
	if err != nil {
		return nil, err
	}

	rewardCatalog, err := NewRewardCatalog(filepath.Join(cfg.DataDir, cfg.RewardsFile), logger)
	if err != nil {
		return nil, err
	}

	return &Storages{
		UserRepository:     NewUserRepository(filepath.Join(cfg.DataDir, cfg.UsersFile), logger),
		ProgressRepository: NewProgressRepository(filepath.Join(cfg.DataDir, cfg.ProgressFile), logger),
		TaskCatalog:        taskCatalog,
		RewardCatalog:      rewardCatalog,
	}, nil
}
