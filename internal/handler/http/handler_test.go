package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/internal/service"
	"github.com/greenplus/greenplus/internal/utils"
	"github.com/greenplus/greenplus/models"
)

// ─────────────────────────────────────────────
// Mock service.AuthService
// ─────────────────────────────────────────────

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case.
type mockAuthService struct {
	registerFn       func(ctx context.Context, request models.RegisterRequest) (models.User, error)
	loginFn          func(ctx context.Context, email, password string) (models.User, error)
	changePasswordFn func(ctx context.Context, email, oldPassword, newPassword string) error
	createTokenFn    func(ctx context.Context, user models.User) (models.Token, error)
	parseTokenFn     func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) Register(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	return m.registerFn(ctx, request)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (models.User, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	return m.changePasswordFn(ctx, email, oldPassword, newPassword)
}

func (m *mockAuthService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	if m.createTokenFn != nil {
		return m.createTokenFn(ctx, user)
	}
	return models.Token{SignedString: "signed.jwt.token"}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// ─────────────────────────────────────────────
// Mock service.ProgressionService
// ─────────────────────────────────────────────

type mockProgressionService struct {
	offerTasksFn   func(ctx context.Context, email string) ([]models.TaskOffer, error)
	completeTaskFn func(ctx context.Context, email string, request models.CompleteTaskRequest) (models.CompleteTaskResponse, error)
	quotaFn        func(ctx context.Context, email string) (models.QuotaResponse, error)
	historyFn      func(ctx context.Context, email string) ([]models.ProgressEntry, error)
	dailySummaryFn func(ctx context.Context, email string, days int) ([]models.DailyPoints, error)
	leaderboardFn  func(ctx context.Context, limit int) ([]models.LeaderboardEntry, error)
	profileFn      func(ctx context.Context, email string) (models.ProfileResponse, error)
}

func (m *mockProgressionService) OfferTasks(ctx context.Context, email string) ([]models.TaskOffer, error) {
	return m.offerTasksFn(ctx, email)
}

func (m *mockProgressionService) CompleteTask(ctx context.Context, email string, request models.CompleteTaskRequest) (models.CompleteTaskResponse, error) {
	return m.completeTaskFn(ctx, email, request)
}

func (m *mockProgressionService) Quota(ctx context.Context, email string) (models.QuotaResponse, error) {
	return m.quotaFn(ctx, email)
}

func (m *mockProgressionService) History(ctx context.Context, email string) ([]models.ProgressEntry, error) {
	return m.historyFn(ctx, email)
}

func (m *mockProgressionService) DailySummary(ctx context.Context, email string, days int) ([]models.DailyPoints, error) {
	return m.dailySummaryFn(ctx, email, days)
}

func (m *mockProgressionService) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	return m.leaderboardFn(ctx, limit)
}

func (m *mockProgressionService) Profile(ctx context.Context, email string) (models.ProfileResponse, error) {
	return m.profileFn(ctx, email)
}

// ─────────────────────────────────────────────
// Mock service.RedemptionService
// ─────────────────────────────────────────────

type mockRedemptionService struct {
	rewardsFn func(ctx context.Context) []models.RewardDefinition
	redeemFn  func(ctx context.Context, email, rewardID string) (models.RedeemResponse, error)
}

func (m *mockRedemptionService) Rewards(ctx context.Context) []models.RewardDefinition {
	if m.rewardsFn != nil {
		return m.rewardsFn(ctx)
	}
	return nil
}

func (m *mockRedemptionService) Redeem(ctx context.Context, email, rewardID string) (models.RedeemResponse, error) {
	return m.redeemFn(ctx, email, rewardID)
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func newTestHandler(auth service.AuthService, progression service.ProgressionService, redemption service.RedemptionService) *Handler {
	return NewHandler(&service.Services{
		AuthService:        auth,
		ProgressionService: progression,
		RedemptionService:  redemption,
	}, logger.Nop())
}

// authedRequest builds a request whose context already carries the
// authenticated email, bypassing the auth middleware.
func authedRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	ctx := context.WithValue(req.Context(), utils.UserEmailCtxKey, "ana@example.org")
	return req.WithContext(ctx)
}
