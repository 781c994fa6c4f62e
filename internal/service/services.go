package service

import (
	"github.com/greenplus/greenplus/internal/config"
	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/internal/store"
)

// Services aggregates the three engines behind the HTTP transport.
type Services struct {
	AuthService        AuthService
	ProgressionService ProgressionService
	RedemptionService  RedemptionService
}

// NewServices wires the engines against the given storages. All engines
// share one set of per-user locks, so a redemption and a task completion on
// the same account serialize with each other.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	locks := newUserLocks()

	return &Services{
		AuthService:        NewAuthService(storages.UserRepository, cfg.App, locks, logger),
		ProgressionService: NewProgressionService(storages.UserRepository, storages.ProgressRepository, storages.TaskCatalog, cfg.Progression, locks, logger),
		RedemptionService:  NewRedemptionService(storages.UserRepository, storages.RewardCatalog, locks, logger),
	}
}
