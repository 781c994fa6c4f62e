package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/internal/utils"
	"github.com/greenplus/greenplus/models"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from address and
// configures the underlying HTTP client with the resolved base URL and
// request timeout.
//
// Returns an error if address is empty or cannot be parsed as a valid URL.
func NewHTTPServerAdapter(address string, requestTimeout time.Duration, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	return h.token
}

// request builds a resty request carrying ctx, the JSON content type, and —
// when a token is held — the Authorization header.
func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	req := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if h.token != "" {
		req.SetHeader("Authorization", "Bearer "+h.token)
	}
	return req
}

// captureToken extracts the bearer token from the Authorization response
// header and stores it for subsequent requests.
func (h *httpServerAdapter) captureToken(resp *resty.Response) error {
	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("parse bearer token: %w", err)
	}
	h.SetToken(token)
	return nil
}

// Register creates an account via POST /api/user/register. On success the
// session token from the Authorization response header is stored for
// subsequent requests.
func (h *httpServerAdapter) Register(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	resp, err := h.request(ctx).SetBody(request).Post("/api/user/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	if err = h.captureToken(resp); err != nil {
		return models.User{}, fmt.Errorf("register: %w", err)
	}

	var user models.User
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return models.User{}, fmt.Errorf("register decode response: %w", err)
	}
	return user, nil
}

// Login authenticates via POST /api/user/login and stores the returned
// session token.
func (h *httpServerAdapter) Login(ctx context.Context, request models.LoginRequest) (models.User, error) {
	resp, err := h.request(ctx).SetBody(request).Post("/api/user/login")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	if err = h.captureToken(resp); err != nil {
		return models.User{}, fmt.Errorf("login: %w", err)
	}

	var user models.User
	if err = json.Unmarshal(resp.Body(), &user); err != nil {
		return models.User{}, fmt.Errorf("login decode response: %w", err)
	}
	return user, nil
}

// ChangePassword rotates the account password via POST /api/user/password.
func (h *httpServerAdapter) ChangePassword(ctx context.Context, request models.ChangePasswordRequest) error {
	resp, err := h.request(ctx).SetBody(request).Post("/api/user/password")
	if err != nil {
		return fmt.Errorf("change password request: %w", err)
	}
	return mapHTTPError(resp)
}

// Tasks fetches the tasks available at the account's level via GET /api/tasks.
func (h *httpServerAdapter) Tasks(ctx context.Context) ([]models.TaskOffer, error) {
	var offers []models.TaskOffer
	if err := h.getJSON(ctx, "/api/tasks", nil, &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// CompleteTask records a finished task via POST /api/tasks/complete.
func (h *httpServerAdapter) CompleteTask(ctx context.Context, request models.CompleteTaskRequest) (models.CompleteTaskResponse, error) {
	resp, err := h.request(ctx).SetBody(request).Post("/api/tasks/complete")
	if err != nil {
		return models.CompleteTaskResponse{}, fmt.Errorf("complete task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CompleteTaskResponse{}, err
	}

	var completed models.CompleteTaskResponse
	if err = json.Unmarshal(resp.Body(), &completed); err != nil {
		return models.CompleteTaskResponse{}, fmt.Errorf("complete task decode response: %w", err)
	}
	return completed, nil
}

// Quota fetches the remaining daily allowance via GET /api/tasks/quota.
func (h *httpServerAdapter) Quota(ctx context.Context) (models.QuotaResponse, error) {
	var quota models.QuotaResponse
	if err := h.getJSON(ctx, "/api/tasks/quota", nil, &quota); err != nil {
		return models.QuotaResponse{}, err
	}
	return quota, nil
}

// Rewards fetches the reward catalog via GET /api/rewards.
func (h *httpServerAdapter) Rewards(ctx context.Context) ([]models.RewardDefinition, error) {
	var rewards []models.RewardDefinition
	if err := h.getJSON(ctx, "/api/rewards", nil, &rewards); err != nil {
		return nil, err
	}
	return rewards, nil
}

// Redeem exchanges points for a reward via POST /api/rewards/redeem.
func (h *httpServerAdapter) Redeem(ctx context.Context, request models.RedeemRequest) (models.RedeemResponse, error) {
	resp, err := h.request(ctx).SetBody(request).Post("/api/rewards/redeem")
	if err != nil {
		return models.RedeemResponse{}, fmt.Errorf("redeem request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RedeemResponse{}, err
	}

	var redeemed models.RedeemResponse
	if err = json.Unmarshal(resp.Body(), &redeemed); err != nil {
		return models.RedeemResponse{}, fmt.Errorf("redeem decode response: %w", err)
	}
	return redeemed, nil
}

// History fetches the account's completion log via GET /api/progress/history.
func (h *httpServerAdapter) History(ctx context.Context) ([]models.ProgressEntry, error) {
	var entries []models.ProgressEntry
	if err := h.getJSON(ctx, "/api/progress/history", nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// DailySummary fetches the per-day point totals via GET /api/progress/summary.
// A non-positive days lets the server apply its default window.
func (h *httpServerAdapter) DailySummary(ctx context.Context, days int) ([]models.DailyPoints, error) {
	params := map[string]string{}
	if days > 0 {
		params["days"] = strconv.Itoa(days)
	}

	var summary []models.DailyPoints
	if err := h.getJSON(ctx, "/api/progress/summary", params, &summary); err != nil {
		return nil, err
	}
	return summary, nil
}

// Leaderboard fetches the points ranking via GET /api/leaderboard.
func (h *httpServerAdapter) Leaderboard(ctx context.Context, limit int) ([]models.LeaderboardEntry, error) {
	params := map[string]string{}
	if limit > 0 {
		params["limit"] = strconv.Itoa(limit)
	}

	var board []models.LeaderboardEntry
	if err := h.getJSON(ctx, "/api/leaderboard", params, &board); err != nil {
		return nil, err
	}
	return board, nil
}

// Profile fetches the account view via GET /api/user/profile.
func (h *httpServerAdapter) Profile(ctx context.Context) (models.ProfileResponse, error) {
	var profile models.ProfileResponse
	if err := h.getJSON(ctx, "/api/user/profile", nil, &profile); err != nil {
		return models.ProfileResponse{}, err
	}
	return profile, nil
}

// getJSON performs an authenticated GET and decodes the JSON response body
// into out.
func (h *httpServerAdapter) getJSON(ctx context.Context, path string, params map[string]string, out any) error {
	req := h.request(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	resp, err := req.Get(path)
	if err != nil {
		return fmt.Errorf("get %s request: %w", path, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if err = json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("get %s decode response: %w", path, err)
	}
	return nil
}
