package service

import (
	"context"
	"errors"
	"time"

	"github.com/greenplus/greenplus/internal/store"
	"github.com/greenplus/greenplus/models"
)

// ─────────────────────────────────────────────
// Mock: store.UserRepository
// ─────────────────────────────────────────────

type mockUserRepository struct {
	createFn      func(ctx context.Context, user models.User) (models.User, error)
	findByEmailFn func(ctx context.Context, email string) (models.User, error)
	updateFn      func(ctx context.Context, user models.User) error
	listAllFn     func(ctx context.Context) ([]models.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return models.User{}, store.ErrUserNotFound
}

func (m *mockUserRepository) Update(ctx context.Context, user models.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) ListAll(ctx context.Context) ([]models.User, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

// ─────────────────────────────────────────────
// Mock: store.ProgressRepository
// ─────────────────────────────────────────────

type mockProgressRepository struct {
	appendFn       func(ctx context.Context, entry models.ProgressEntry) error
	listByUserFn   func(ctx context.Context, email string) ([]models.ProgressEntry, error)
	countForDateFn func(ctx context.Context, email string, date time.Time) (int, error)
}

func (m *mockProgressRepository) Append(ctx context.Context, entry models.ProgressEntry) error {
	if m.appendFn != nil {
		return m.appendFn(ctx, entry)
	}
	return nil
}

func (m *mockProgressRepository) ListByUser(ctx context.Context, email string) ([]models.ProgressEntry, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, email)
	}
	return nil, nil
}

func (m *mockProgressRepository) CountForDate(ctx context.Context, email string, date time.Time) (int, error) {
	if m.countForDateFn != nil {
		return m.countForDateFn(ctx, email, date)
	}
	return 0, nil
}

// ─────────────────────────────────────────────
// Mock: store.TaskCatalog
// ─────────────────────────────────────────────

type mockTaskCatalog struct {
	allFn        func() []models.TaskDefinition
	forLevelFn   func(level models.Level) []models.TaskDefinition
	findByNameFn func(name string) (models.TaskDefinition, error)
}

func (m *mockTaskCatalog) All() []models.TaskDefinition {
	if m.allFn != nil {
		return m.allFn()
	}
	return nil
}

func (m *mockTaskCatalog) ForLevel(level models.Level) []models.TaskDefinition {
	if m.forLevelFn != nil {
		return m.forLevelFn(level)
	}
	return nil
}

func (m *mockTaskCatalog) FindByName(name string) (models.TaskDefinition, error) {
	if m.findByNameFn != nil {
		return m.findByNameFn(name)
	}
	return models.TaskDefinition{}, store.ErrTaskNotFound
}

// ─────────────────────────────────────────────
// Mock: store.RewardCatalog
// ─────────────────────────────────────────────

type mockRewardCatalog struct {
	allFn      func() []models.RewardDefinition
	findByIDFn func(id string) (models.RewardDefinition, error)
}

func (m *mockRewardCatalog) All() []models.RewardDefinition {
	if m.allFn != nil {
		return m.allFn()
	}
	return nil
}

func (m *mockRewardCatalog) FindByID(id string) (models.RewardDefinition, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(id)
	}
	return models.RewardDefinition{}, store.ErrRewardNotFound
}

// ─────────────────────────────────────────────
// In-memory fixtures
// ─────────────────────────────────────────────

// memoryUserRepository returns a mock backed by an in-memory table so
// scenario tests can observe state across several engine calls.
func memoryUserRepository(initial ...models.User) *mockUserRepository {
	users := map[string]models.User{}
	var order []string
	for _, u := range initial {
		users[u.Email] = u
		order = append(order, u.Email)
	}

	return &mockUserRepository{
		createFn: func(_ context.Context, user models.User) (models.User, error) {
			if _, ok := users[user.Email]; ok {
				return models.User{}, store.ErrUserAlreadyExists
			}
			users[user.Email] = user
			order = append(order, user.Email)
			return user, nil
		},
		findByEmailFn: func(_ context.Context, email string) (models.User, error) {
			user, ok := users[email]
			if !ok {
				return models.User{}, store.ErrUserNotFound
			}
			return user, nil
		},
		updateFn: func(_ context.Context, user models.User) error {
			if _, ok := users[user.Email]; !ok {
				return store.ErrUserNotFound
			}
			users[user.Email] = user
			return nil
		},
		listAllFn: func(_ context.Context) ([]models.User, error) {
			all := make([]models.User, 0, len(order))
			for _, email := range order {
				all = append(all, users[email])
			}
			return all, nil
		},
	}
}

// memoryProgressRepository returns a mock backed by an in-memory append log.
func memoryProgressRepository(initial ...models.ProgressEntry) *mockProgressRepository {
	entries := append([]models.ProgressEntry{}, initial...)

	return &mockProgressRepository{
		appendFn: func(_ context.Context, entry models.ProgressEntry) error {
			entries = append(entries, entry)
			return nil
		},
		listByUserFn: func(_ context.Context, email string) ([]models.ProgressEntry, error) {
			var mine []models.ProgressEntry
			for _, entry := range entries {
				if entry.Email == email {
					mine = append(mine, entry)
				}
			}
			return mine, nil
		},
		countForDateFn: func(_ context.Context, email string, day time.Time) (int, error) {
			count := 0
			for _, entry := range entries {
				if entry.Email == email && sameDay(entry.Date, day) {
					count++
				}
			}
			return count, nil
		},
	}
}

func taskCatalogWith(tasks ...models.TaskDefinition) *mockTaskCatalog {
	return &mockTaskCatalog{
		allFn: func() []models.TaskDefinition { return tasks },
		forLevelFn: func(level models.Level) []models.TaskDefinition {
			var gated []models.TaskDefinition
			for _, task := range tasks {
				if task.Level == level {
					gated = append(gated, task)
				}
			}
			return gated
		},
		findByNameFn: func(name string) (models.TaskDefinition, error) {
			for _, task := range tasks {
				if task.Name == name {
					return task, nil
				}
			}
			return models.TaskDefinition{}, store.ErrTaskNotFound
		},
	}
}

func rewardCatalogWith(rewards ...models.RewardDefinition) *mockRewardCatalog {
	return &mockRewardCatalog{
		allFn: func() []models.RewardDefinition { return rewards },
		findByIDFn: func(id string) (models.RewardDefinition, error) {
			for _, reward := range rewards {
				if reward.ID == id {
					return reward, nil
				}
			}
			return models.RewardDefinition{}, store.ErrRewardNotFound
		},
	}
}

// date parses a YYYY-MM-DD string into a UTC calendar date.
func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

var errStorage = errors.New("storage error")
