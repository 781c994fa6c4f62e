package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/greenplus/greenplus/internal/config"
	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/internal/store"
	"github.com/greenplus/greenplus/models"
)

// defaultSummaryDays is the window used by DailySummary when the caller does
// not ask for a specific number of days.
const defaultSummaryDays = 7

// progressionService is the concrete implementation of ProgressionService.
//
// A task completion is a single critical section per user: the daily-limit
// check, the points increment, the level recomputation, the badge grant, and
// the progress-log append all happen under that user's mutex, so a rejected
// completion leaves no partial state behind.
type progressionService struct {
	users    store.UserRepository
	progress store.ProgressRepository
	tasks    store.TaskCatalog

	// dailyLimit is the maximum number of completions per user per
	// calendar day.
	dailyLimit int

	locks  *userLocks
	logger *logger.Logger

	// now supplies the current time; swapped out in tests.
	now func() time.Time

	// drawInt returns a uniform value in [0, n); swapped out in tests to
	// make award draws deterministic.
	drawInt func(n int) int
}

// NewProgressionService constructs a ProgressionService over the given
// repositories and catalog, with the daily task limit taken from cfg.
func NewProgressionService(users store.UserRepository, progress store.ProgressRepository, tasks store.TaskCatalog, cfg config.Progression, locks *userLocks, logger *logger.Logger) ProgressionService {
	return &progressionService{
		users:      users,
		progress:   progress,
		tasks:      tasks,
		dailyLimit: cfg.DailyTaskLimit,
		locks:      locks,
		logger:     logger,
		now:        time.Now,
		drawInt:    rand.Intn,
	}
}

// OfferTasks returns the catalog tasks available at the user's current
// level, in catalog order, each with a freshly drawn award value.
//
// Returns ErrNotFound if the account is unknown.
func (p *progressionService) OfferTasks(ctx context.Context, email string) ([]models.TaskOffer, error) {
	user, err := p.findUser(ctx, email)
	if err != nil {
		return nil, err
	}

	tasks := p.tasks.ForLevel(user.Level)
	offers := make([]models.TaskOffer, 0, len(tasks))
	for _, task := range tasks {
		offers = append(offers, models.TaskOffer{
			TaskDefinition: task,
			Award:          p.awardFor(task),
		})
	}

	return offers, nil
}

// CompleteTask applies one finished task to the user's account.
//
// The completion is validated before any state changes: the report must be
// non-blank, the task must exist in the catalog, and the award must fall
// within the task's point range. Under the user's mutex the daily limit is
// checked, points are added, the level is recomputed (never downward), the
// tier badge is granted at most once, and the completion is appended to the
// progress log.
//
// Returns the updated user or:
//   - ErrValidation if the report is blank or the award is out of range.
//   - ErrNotFound if the task or the account is unknown.
//   - ErrLimitExceeded if the user already completed the daily maximum of
//     tasks today. The limit resets on the next calendar date.
//   - A wrapped storage error if persistence fails.
func (p *progressionService) CompleteTask(ctx context.Context, email string, request models.CompleteTaskRequest) (models.CompleteTaskResponse, error) {
	log := logger.FromContext(ctx)

	report := strings.TrimSpace(request.Report)
	if report == "" {
		return models.CompleteTaskResponse{}, fmt.Errorf("%w: completion report is required", ErrValidation)
	}

	task, err := p.tasks.FindByName(request.Task)
	if err != nil {
		log.Err(err).Str("task", request.Task).Msg("completion names unknown task")
		return models.CompleteTaskResponse{}, fmt.Errorf("%w: task %q", ErrNotFound, request.Task)
	}

	if request.Points < task.MinPoints || request.Points > task.MaxPoints {
		return models.CompleteTaskResponse{}, fmt.Errorf("%w: award %d outside range [%d, %d] of task %q",
			ErrValidation, request.Points, task.MinPoints, task.MaxPoints, task.Name)
	}

	lock := p.locks.forEmail(email)
	lock.Lock()
	defer lock.Unlock()

	today := dateOnly(p.now())
	completed, err := p.progress.CountForDate(ctx, email, today)
	if err != nil {
		log.Err(err).Str("email", email).Msg("daily completion count failed")
		return models.CompleteTaskResponse{}, fmt.Errorf("daily completion count failed: %w", err)
	}
	if completed >= p.dailyLimit {
		log.Warn().Str("email", email).Int("completed", completed).Msg("daily task limit reached")
		return models.CompleteTaskResponse{}, fmt.Errorf("%w: %d of %d tasks done today", ErrLimitExceeded, completed, p.dailyLimit)
	}

	user, err := p.findUser(ctx, email)
	if err != nil {
		return models.CompleteTaskResponse{}, err
	}

	user.Points += request.Points

	// Levels are sticky: a redemption may have left the balance below the
	// current tier's threshold, so only upward moves apply.
	leveledUp := false
	if next := models.LevelForPoints(user.Points); next.Rank() > user.Level.Rank() {
		user.Level = next
		user.GrantBadge(next)
		leveledUp = true
	}

	if err := p.users.Update(ctx, user); err != nil {
		log.Err(err).Str("email", email).Msg("user update failed")
		return models.CompleteTaskResponse{}, fmt.Errorf("user update failed: %w", err)
	}

	entry := models.ProgressEntry{
		Email:  email,
		Date:   today,
		Task:   task.Name,
		Points: request.Points,
		Report: report,
	}
	if err := p.progress.Append(ctx, entry); err != nil {
		log.Err(err).Str("email", email).Msg("progress append failed")
		return models.CompleteTaskResponse{}, fmt.Errorf("progress append failed: %w", err)
	}

	log.Info().
		Str("email", email).
		Str("task", task.Name).
		Int("points", request.Points).
		Bool("leveledUp", leveledUp).
		Msg("task completed")

	return models.CompleteTaskResponse{User: user, LeveledUp: leveledUp}, nil
}

// Quota reports how many tasks the user has completed today and how many
// completions remain before the daily limit.
//
// Returns ErrNotFound if the account is unknown.
func (p *progressionService) Quota(ctx context.Context, email string) (models.QuotaResponse, error) {
	if _, err := p.findUser(ctx, email); err != nil {
		return models.QuotaResponse{}, err
	}

	completed, err := p.progress.CountForDate(ctx, email, dateOnly(p.now()))
	if err != nil {
		return models.QuotaResponse{}, fmt.Errorf("daily completion count failed: %w", err)
	}

	remaining := p.dailyLimit - completed
	if remaining < 0 {
		remaining = 0
	}

	return models.QuotaResponse{Completed: completed, Limit: p.dailyLimit, Remaining: remaining}, nil
}

// History returns every completion of the user, oldest first.
//
// Returns ErrNotFound if the account is unknown.
func (p *progressionService) History(ctx context.Context, email string) ([]models.ProgressEntry, error) {
	if _, err := p.findUser(ctx, email); err != nil {
		return nil, err
	}

	entries, err := p.progress.ListByUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("progress listing failed: %w", err)
	}

	return entries, nil
}

// DailySummary aggregates the user's earned points per calendar day over the
// last days dates, ending today, oldest first. Days without completions are
// included with zero points. A non-positive days falls back to a week.
func (p *progressionService) DailySummary(ctx context.Context, email string, days int) ([]models.DailyPoints, error) {
	if days <= 0 {
		days = defaultSummaryDays
	}

	if _, err := p.findUser(ctx, email); err != nil {
		return nil, err
	}

	entries, err := p.progress.ListByUser(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("progress listing failed: %w", err)
	}

	today := dateOnly(p.now())
	summary := make([]models.DailyPoints, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		total := 0
		for _, entry := range entries {
			if sameDay(entry.Date, day) {
				total += entry.Points
			}
		}
		summary = append(summary, models.DailyPoints{Date: day, Points: total})
	}

	return summary, nil
}

// Leaderboard ranks all users by points, highest first. Ties keep their
// relative table order. A positive limit truncates the result.
func (p *progressionService) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	users, err := p.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("user listing failed: %w", err)
	}

	sort.SliceStable(users, func(i, j int) bool {
		return users[i].Points > users[j].Points
	})

	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, models.LeaderboardEntry{
			Rank:   i + 1,
			Name:   user.Name,
			Points: user.Points,
			Level:  user.Level,
		})
	}

	return entries, nil
}

// Profile returns the user's own account view together with the points still
// missing to reach the next tier.
func (p *progressionService) Profile(ctx context.Context, email string) (models.ProfileResponse, error) {
	user, err := p.findUser(ctx, email)
	if err != nil {
		return models.ProfileResponse{}, err
	}

	return models.ProfileResponse{
		User:              user,
		PointsToNextLevel: models.PointsToNextLevel(user.Points),
	}, nil
}

// awardFor draws a uniform award from the task's point range.
func (p *progressionService) awardFor(task models.TaskDefinition) int {
	span := task.MaxPoints - task.MinPoints
	if span <= 0 {
		return task.MinPoints
	}

	return task.MinPoints + p.drawInt(span+1)
}

func (p *progressionService) findUser(ctx context.Context, email string) (models.User, error) {
	user, err := p.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return models.User{}, fmt.Errorf("%w: user %s", ErrNotFound, email)
		}
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	return user, nil
}
