package service

import (
	"context"

	"github.com/greenplus/greenplus/models"
)

// AuthService owns the account lifecycle: registration, credential checks,
// password rotation, and the session token pair of operations used by the
// HTTP transport.
type AuthService interface {
	Register(ctx context.Context, request models.RegisterRequest) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
	ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

// ProgressionService is the points-and-levels engine. It offers tasks at the
// user's current tier, applies completions atomically (points, level, badge,
// progress log), and serves the derived read views.
type ProgressionService interface {
	OfferTasks(ctx context.Context, email string) ([]models.TaskOffer, error)
	CompleteTask(ctx context.Context, email string, request models.CompleteTaskRequest) (models.CompleteTaskResponse, error)
	Quota(ctx context.Context, email string) (models.QuotaResponse, error)

	History(ctx context.Context, email string) ([]models.ProgressEntry, error)
	DailySummary(ctx context.Context, email string, days int) ([]models.DailyPoints, error)
	Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	Profile(ctx context.Context, email string) (models.ProfileResponse, error)
}

// RedemptionService exchanges points for catalog rewards. Redemptions are
// one-shot per reward per user and never lower the user's level.
type RedemptionService interface {
	Rewards(ctx context.Context) []models.RewardDefinition
	Redeem(ctx context.Context, email, rewardID string) (models.RedeemResponse, error)
}
