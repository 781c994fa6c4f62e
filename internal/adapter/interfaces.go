// Package adapter provides a Go client for the Green+ REST API. It is used
// by companion tooling (CLI utilities, smoke checks) to exercise a running
// server over HTTP.
package adapter

import (
	"context"

	"github.com/greenplus/greenplus/models"
)

// ServerAdapter is the client-side contract of the Green+ API. All methods
// return one of the package's sentinel errors when the server rejects the
// request, so callers can match with errors.Is.
type ServerAdapter interface {
	// SetToken stores the bearer token attached to subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the currently held bearer token, or an empty string.
	Token() string

	Register(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, request models.LoginRequest) (models.User, error)
	ChangePassword(ctx context.Context, request models.ChangePasswordRequest) error

	Tasks(ctx context.Context) ([]models.TaskOffer, error)
	CompleteTask(ctx context.Context, request models.CompleteTaskRequest) (models.CompleteTaskResponse, error)
	Quota(ctx context.Context) (models.QuotaResponse, error)

	Rewards(ctx context.Context) ([]models.RewardDefinition, error)
	Redeem(ctx context.Context, request models.RedeemRequest) (models.RedeemResponse, error)

	History(ctx context.Context) ([]models.ProgressEntry, error)
	DailySummary(ctx context.Context, days int) ([]models.DailyPoints, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	Profile(ctx context.Context) (models.ProfileResponse, error)
}
