package store

import (
	"context"
	"time"

	"github.com/greenplus/greenplus/models"
)

// UserRepository is the data-access contract for the Users table.
//
// Mutating operations rewrite the full table as one logical unit
// (read-modify-write); callers are responsible for serializing mutations of
// the same user (see the service layer's per-user lock).
type UserRepository interface {
	// Create persists a new user record.
	// Returns [ErrUserAlreadyExists] if the email is already taken.
	Create(ctx context.Context, user models.User) (models.User, error)

	// FindByEmail retrieves the user record with the given email.
	// Returns [ErrUserNotFound] if no such record exists.
	FindByEmail(ctx context.Context, email string) (models.User, error)

	// Update replaces the stored record matching user.Email.
	// Returns [ErrUserNotFound] if no such record exists.
	Update(ctx context.Context, user models.User) error

	// ListAll returns every user record in table order.
	ListAll(ctx context.Context) ([]models.User, error)
}

// ProgressRepository is the data-access contract for the append-only
// progress log. Entries are never mutated or deleted.
type ProgressRepository interface {
	// Append adds one entry to the end of the log. An I/O failure during
	// the append is surfaced, never swallowed.
	Append(ctx context.Context, entry models.ProgressEntry) error

	// ListByUser returns all entries of the user in log order.
	ListByUser(ctx context.Context, email string) ([]models.ProgressEntry, error)

	// CountForDate returns the number of entries the user logged on the
	// given calendar date.
	CountForDate(ctx context.Context, email string, date time.Time) (int, error)
}

// TaskCatalog exposes the static, level-partitioned task list. The catalog
// is read-only after load, so no synchronization is required.
type TaskCatalog interface {
	// All returns every task definition in catalog order.
	All() []models.TaskDefinition

	// ForLevel returns the definitions gated to exactly the given level,
	// in catalog order.
	ForLevel(level models.Level) []models.TaskDefinition

	// FindByName retrieves the definition with the given name.
	// Returns [ErrTaskNotFound] if no such task exists.
	FindByName(name string) (models.TaskDefinition, error)
}

// RewardCatalog exposes the static, level-gated reward list. The catalog is
// read-only after load, so no synchronization is required.
type RewardCatalog interface {
	// All returns every reward definition sorted by (level ascending,
	// cost ascending). The ordering is stable and part of the presentation
	// contract.
	All() []models.RewardDefinition

	// FindByID retrieves the definition with the given id.
	// Returns [ErrRewardNotFound] if no such reward exists.
	FindByID(id string) (models.RewardDefinition, error)
}
