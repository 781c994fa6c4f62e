package service

import (
	"context"
	"testing"
	"time"

	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTasks = []models.TaskDefinition{
	{Level: models.LevelBasic, Name: "Selective Collection", Description: "Separate your recyclables", MinPoints: 15, MaxPoints: 25},
	{Level: models.LevelBasic, Name: "Water Saving", Description: "Cut your water use", MinPoints: 15, MaxPoints: 25},
	{Level: models.LevelIntermediate, Name: "Composting", Description: "Start a compost bin", MinPoints: 30, MaxPoints: 50},
	{Level: models.LevelAdvanced, Name: "Impact Project", Description: "Run a community project", MinPoints: 60, MaxPoints: 80},
}

// newTestProgressionService builds the engine over in-memory fixtures with a
// pinned clock and a deterministic award draw.
func newTestProgressionService(users *mockUserRepository, progress *mockProgressRepository) *progressionService {
	return &progressionService{
		users:      users,
		progress:   progress,
		tasks:      taskCatalogWith(testTasks...),
		dailyLimit: 2,
		locks:      newUserLocks(),
		logger:     logger.Nop(),
		now:        func() time.Time { return date("2026-08-28") },
		drawInt:    func(n int) int { return 0 },
	}
}

func basicUser(email string, points int) models.User {
	user := models.NewUser(email, "hash", "Test User")
	user.Points = points
	user.Level = models.LevelForPoints(points)
	if points > 0 {
		user.GrantBadge(user.Level)
	}
	return user
}

// ─────────────────────────────────────────────
// CompleteTask
// ─────────────────────────────────────────────

func TestProgressionService_CompleteTask_Success(t *testing.T) {
	users := memoryUserRepository(basicUser("ana@example.org", 0))
	progress := memoryProgressRepository()
	svc := newTestProgressionService(users, progress)

	got, err := svc.CompleteTask(context.Background(), "ana@example.org", models.CompleteTaskRequest{
		Task:   "Water Saving",
		Points: 20,
		Report: "  Kept the shower under five minutes.  ",
	})

	require.NoError(t, err)
	assert.Equal(t, 20, got.User.Points)
	assert.Equal(t, models.LevelBasic, got.User.Level)
	assert.False(t, got.LeveledUp)

	entries, err := progress.ListByUser(context.Background(), "ana@example.org")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Water Saving", entries[0].Task)
	assert.Equal(t, date("2026-08-28"), entries[0].Date)
	// report is trimmed before logging
	assert.Equal(t, "Kept the shower under five minutes.", entries[0].Report)
}

func TestProgressionService_CompleteTask_BlankReport(t *testing.T) {
	users := memoryUserRepository(basicUser("ana@example.org", 0))
	progress := memoryProgressRepository()
	svc := newTestProgressionService(users, progress)

	_, err := svc.CompleteTask(context.Background(), "ana@example.org", models.CompleteTaskRequest{
		Task:   "Water Saving",
		Points: 20,
		Report: "   ",
	})

	require.ErrorIs(t, err, ErrValidation)

	// nothing was persisted
	user, findErr := users.FindByEmail(context.Background(), "ana@example.org")
	require.NoError(t, findErr)
	assert.Zero(t, user.Points)
	entries, listErr := progress.ListByUser(context.Background(), "ana@example.org")
	require.NoError(t, listErr)
	assert.Empty(t, entries)
}

func TestProgressionService_CompleteTask_UnknownTask(t *testing.T) {
	svc := newTestProgressionService(memoryUserRepository(basicUser("ana@example.org", 0)), memoryProgressRepository())

	_, err := svc.CompleteTask(context.Background(), "ana@example.org", models.CompleteTaskRequest{
		Task:   "Cold Fusion",
		Points: 20,
		Report: "done",
	})

	require.ErrorIs(t, err, ErrNotFound)
}

func TestProgressionService_CompleteTask_UnknownUser(t *testing.T) {
	svc := newTestProgressionService(memoryUserRepository(), memoryProgressRepository())

	_, err := svc.CompleteTask(context.Background(), "ghost@example.org", models.CompleteTaskRequest{
		Task:   "Water Saving",
		Points: 20,
		Report: "done",
	})

	require.ErrorIs(t, err, ErrNotFound)
}

func TestProgressionService_CompleteTask_AwardOutsideTaskRange(t *testing.T) {
	svc := newTestProgressionService(memoryUserRepository(basicUser("ana@example.org", 0)), memoryProgressRepository())

	for _, points := range []int{14, 26, 0, -5} {
		_, err := svc.CompleteTask(context.Background(), "ana@example.org", models.CompleteTaskRequest{
			Task:   "Water Saving",
			Points: points,
			Report: "done",
		})
		require.ErrorIs(t, err, ErrValidation, "award %d must be rejected", points)
	}
}

func TestProgressionService_CompleteTask_LevelUpGrantsBadge(t *testing.T) {
	users := memoryUserRepository(basicUser("ana@example.org", 90))
	svc := newTestProgressionService(users, memoryProgressRepository())

	got, err := svc.CompleteTask(context.Background(), "ana@example.org", models.CompleteTaskRequest{
		Task:   "Water Saving",
		Points: 20,
		Report: "done",
	})

	require.NoError(t, err)
	assert.Equal(t, 110, got.User.Points)
	assert.Equal(t, models.LevelIntermediate, got.User.Level)
	assert.True(t, got.LeveledUp)
	assert.Contains(t, got.User.Badges, "Engaged")
}

func TestProgressionService_CompleteTask_BadgeGrantedOnlyOnce(t *testing.T) {
	user := basicUser("ana@example.org", 250)
	require.Equal(t, models.LevelIntermediate, user.Level)
	require.Equal(t, []string{"Engaged"}, user.Badges)

	users := memoryUserRepository(user)
	svc := newTestProgressionService(users, memoryProgressRepository())
	ctx := context.Background()
	request := models.CompleteTaskRequest{Task: "Impact Project", Points: 80, Report: "done"}

	got, err := svc.CompleteTask(ctx, "ana@example.org", request)
	require.NoError(t, err)
	assert.Equal(t, models.LevelAdvanced, got.User.Level)
	assert.True(t, got.LeveledUp)
	assert.Equal(t, []string{"Engaged", "Sustainable"}, got.User.Badges)

	// staying on the tier mints nothing new
	got, err = svc.CompleteTask(ctx, "ana@example.org", request)
	require.NoError(t, err)
	assert.Equal(t, 410, got.User.Points)
	assert.False(t, got.LeveledUp)
	assert.Equal(t, []string{"Engaged", "Sustainable"}, got.User.Badges)
}

func TestProgressionService_CompleteTask_LevelNeverRecomputedDownward(t *testing.T) {
	// redemption left an Intermediate user with a Basic-range balance
	user := basicUser("ana@example.org", 150)
	user.Points = 30
	users := memoryUserRepository(user)
	svc := newTestProgressionService(users, memoryProgressRepository())

	got, err := svc.CompleteTask(context.Background(), "ana@example.org", models.CompleteTaskRequest{
		Task:   "Water Saving",
		Points: 20,
		Report: "done",
	})

	require.NoError(t, err)
	assert.Equal(t, 50, got.User.Points)
	assert.Equal(t, models.LevelIntermediate, got.User.Level)
	assert.False(t, got.LeveledUp)
}

func TestProgressionService_CompleteTask_DailyLimitResetsNextDay(t *testing.T) {
	users := memoryUserRepository(basicUser("ana@example.org", 0))
	progress := memoryProgressRepository()
	svc := newTestProgressionService(users, progress)

	today := date("2026-08-28")
	svc.now = func() time.Time { return today }

	request := models.CompleteTaskRequest{Task: "Water Saving", Points: 20, Report: "done"}
	ctx := context.Background()

	_, err := svc.CompleteTask(ctx, "ana@example.org", request)
	require.NoError(t, err)
	_, err = svc.CompleteTask(ctx, "ana@example.org", request)
	require.NoError(t, err)

	// third completion on the same date is rejected
	_, err = svc.CompleteTask(ctx, "ana@example.org", request)
	require.ErrorIs(t, err, ErrLimitExceeded)

	// the limit is per calendar date, not a rolling window
	today = date("2026-08-29")
	_, err = svc.CompleteTask(ctx, "ana@example.org", request)
	require.NoError(t, err)
}

func TestProgressionService_CompleteTask_LimitIsPerUser(t *testing.T) {
	users := memoryUserRepository(basicUser("ana@example.org", 0), basicUser("bob@example.org", 0))
	svc := newTestProgressionService(users, memoryProgressRepository())
	ctx := context.Background()
	request := models.CompleteTaskRequest{Task: "Water Saving", Points: 20, Report: "done"}

	_, err := svc.CompleteTask(ctx, "ana@example.org", request)
	require.NoError(t, err)
	_, err = svc.CompleteTask(ctx, "ana@example.org", request)
	require.NoError(t, err)
	_, err = svc.CompleteTask(ctx, "ana@example.org", request)
	require.ErrorIs(t, err, ErrLimitExceeded)

	// bob still has his full allowance
	_, err = svc.CompleteTask(ctx, "bob@example.org", request)
	require.NoError(t, err)
}

func TestProgressionService_CompleteTask_StorageError(t *testing.T) {
	users := memoryUserRepository(basicUser("ana@example.org", 0))
	progress := memoryProgressRepository()
	progress.appendFn = func(_ context.Context, _ models.ProgressEntry) error { return errStorage }
	svc := newTestProgressionService(users, progress)

	_, err := svc.CompleteTask(context.Background(), "ana@example.org", models.CompleteTaskRequest{
		Task:   "Water Saving",
		Points: 20,
		Report: "done",
	})

	require.ErrorIs(t, err, errStorage)
}

// Two days in the life of a fresh account: two Basic completions on day one
// hit the limit, the next day's completion crosses the Intermediate
// threshold and mints the badge.
func TestProgressionService_CompleteTask_TwoDayScenario(t *testing.T) {
	users := memoryUserRepository(basicUser("ana@example.org", 0))
	svc := newTestProgressionService(users, memoryProgressRepository())
	ctx := context.Background()

	today := date("2026-08-28")
	svc.now = func() time.Time { return today }

	got, err := svc.CompleteTask(ctx, "ana@example.org", models.CompleteTaskRequest{Task: "Composting", Points: 40, Report: "day one"})
	require.NoError(t, err)
	got, err = svc.CompleteTask(ctx, "ana@example.org", models.CompleteTaskRequest{Task: "Composting", Points: 40, Report: "day one"})
	require.NoError(t, err)
	assert.Equal(t, 80, got.User.Points)
	assert.Equal(t, models.LevelBasic, got.User.Level)

	_, err = svc.CompleteTask(ctx, "ana@example.org", models.CompleteTaskRequest{Task: "Composting", Points: 40, Report: "day one"})
	require.ErrorIs(t, err, ErrLimitExceeded)

	today = date("2026-08-29")
	got, err = svc.CompleteTask(ctx, "ana@example.org", models.CompleteTaskRequest{Task: "Composting", Points: 30, Report: "day two"})
	require.NoError(t, err)
	assert.Equal(t, 110, got.User.Points)
	assert.Equal(t, models.LevelIntermediate, got.User.Level)
	assert.True(t, got.LeveledUp)
	assert.Contains(t, got.User.Badges, "Engaged")
}

// ─────────────────────────────────────────────
// OfferTasks / Quota
// ─────────────────────────────────────────────

func TestProgressionService_OfferTasks_GatedToUserLevel(t *testing.T) {
	users := memoryUserRepository(basicUser("ana@example.org", 0))
	svc := newTestProgressionService(users, memoryProgressRepository())

	offers, err := svc.OfferTasks(context.Background(), "ana@example.org")

	require.NoError(t, err)
	require.Len(t, offers, 2)
	assert.Equal(t, "Selective Collection", offers[0].Name)
	assert.Equal(t, "Water Saving", offers[1].Name)
	// drawInt pinned to zero draws the lower bound
	assert.Equal(t, 15, offers[0].Award)
}

func TestProgressionService_OfferTasks_UnknownUser(t *testing.T) {
	svc := newTestProgressionService(memoryUserRepository(), memoryProgressRepository())

	_, err := svc.OfferTasks(context.Background(), "ghost@example.org")

	require.ErrorIs(t, err, ErrNotFound)
}

func TestProgressionService_Quota(t *testing.T) {
	users := memoryUserRepository(basicUser("ana@example.org", 0))
	svc := newTestProgressionService(users, memoryProgressRepository())
	ctx := context.Background()

	quota, err := svc.Quota(ctx, "ana@example.org")
	require.NoError(t, err)
	assert.Equal(t, models.QuotaResponse{Completed: 0, Limit: 2, Remaining: 2}, quota)

	_, err = svc.CompleteTask(ctx, "ana@example.org", models.CompleteTaskRequest{Task: "Water Saving", Points: 20, Report: "done"})
	require.NoError(t, err)

	quota, err = svc.Quota(ctx, "ana@example.org")
	require.NoError(t, err)
	assert.Equal(t, models.QuotaResponse{Completed: 1, Limit: 2, Remaining: 1}, quota)
}

// ─────────────────────────────────────────────
// Read views
// ─────────────────────────────────────────────

func TestProgressionService_DailySummary_ZeroFillsQuietDays(t *testing.T) {
	progress := memoryProgressRepository(
		models.ProgressEntry{Email: "ana@example.org", Date: date("2026-08-26"), Task: "Water Saving", Points: 20, Report: "r"},
		models.ProgressEntry{Email: "ana@example.org", Date: date("2026-08-28"), Task: "Water Saving", Points: 15, Report: "r"},
		models.ProgressEntry{Email: "ana@example.org", Date: date("2026-08-28"), Task: "Composting", Points: 40, Report: "r"},
		models.ProgressEntry{Email: "bob@example.org", Date: date("2026-08-27"), Task: "Water Saving", Points: 25, Report: "r"},
	)
	svc := newTestProgressionService(memoryUserRepository(basicUser("ana@example.org", 75)), progress)

	summary, err := svc.DailySummary(context.Background(), "ana@example.org", 3)

	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, models.DailyPoints{Date: date("2026-08-26"), Points: 20}, summary[0])
	assert.Equal(t, models.DailyPoints{Date: date("2026-08-27"), Points: 0}, summary[1])
	assert.Equal(t, models.DailyPoints{Date: date("2026-08-28"), Points: 55}, summary[2])
}

func TestProgressionService_DailySummary_DefaultsToAWeek(t *testing.T) {
	users := memoryUserRepository(basicUser("ana@example.org", 0))
	svc := newTestProgressionService(users, memoryProgressRepository())

	summary, err := svc.DailySummary(context.Background(), "ana@example.org", 0)

	require.NoError(t, err)
	assert.Len(t, summary, 7)
}

func TestProgressionService_History(t *testing.T) {
	first := models.ProgressEntry{Email: "ana@example.org", Date: date("2026-08-27"), Task: "Water Saving", Points: 20, Report: "first"}
	second := models.ProgressEntry{Email: "ana@example.org", Date: date("2026-08-28"), Task: "Composting", Points: 40, Report: "second"}
	progress := memoryProgressRepository(
		first,
		models.ProgressEntry{Email: "bob@example.org", Date: date("2026-08-28"), Task: "Water Saving", Points: 15, Report: "other user"},
		second,
	)
	svc := newTestProgressionService(memoryUserRepository(basicUser("ana@example.org", 60)), progress)

	entries, err := svc.History(context.Background(), "ana@example.org")

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0])
	assert.Equal(t, second, entries[1])
}

// The read views reject unknown accounts instead of returning empty data.
func TestProgressionService_ReadViews_UnknownUser(t *testing.T) {
	svc := newTestProgressionService(memoryUserRepository(), memoryProgressRepository())
	ctx := context.Background()

	_, err := svc.Quota(ctx, "ghost@example.org")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.History(ctx, "ghost@example.org")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.DailySummary(ctx, "ghost@example.org", 3)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestProgressionService_Leaderboard(t *testing.T) {
	ana := basicUser("ana@example.org", 120)
	ana.Name = "Ana"
	bob := basicUser("bob@example.org", 340)
	bob.Name = "Bob"
	carla := basicUser("carla@example.org", 120)
	carla.Name = "Carla"
	dan := basicUser("dan@example.org", 15)
	dan.Name = "Dan"
	users := memoryUserRepository(ana, bob, carla, dan)
	svc := newTestProgressionService(users, memoryProgressRepository())

	board, err := svc.Leaderboard(context.Background(), 3)

	require.NoError(t, err)
	require.Len(t, board, 3)
	assert.Equal(t, 1, board[0].Rank)
	assert.Equal(t, "Bob", board[0].Name)
	assert.Equal(t, 340, board[0].Points)
	assert.Equal(t, models.LevelAdvanced, board[0].Level)
	// ties keep table order
	assert.Equal(t, "Ana", board[1].Name)
	assert.Equal(t, "Carla", board[2].Name)
	assert.Equal(t, 3, board[2].Rank)
}

func TestProgressionService_Leaderboard_NoLimit(t *testing.T) {
	users := memoryUserRepository(basicUser("ana@example.org", 10), basicUser("bob@example.org", 20))
	svc := newTestProgressionService(users, memoryProgressRepository())

	board, err := svc.Leaderboard(context.Background(), 0)

	require.NoError(t, err)
	assert.Len(t, board, 2)
}

func TestProgressionService_Profile(t *testing.T) {
	users := memoryUserRepository(basicUser("ana@example.org", 120))
	svc := newTestProgressionService(users, memoryProgressRepository())

	profile, err := svc.Profile(context.Background(), "ana@example.org")

	require.NoError(t, err)
	assert.Equal(t, 120, profile.User.Points)
	assert.Equal(t, 180, profile.PointsToNextLevel)
}
