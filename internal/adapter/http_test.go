package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(t *testing.T, handler http.HandlerFunc) ServerAdapter {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	a, err := NewHTTPServerAdapter(srv.URL, 5*time.Second, logger.Nop())
	require.NoError(t, err)
	return a
}

func TestNormalizeBaseURL(t *testing.T) {
	url, err := normalizeBaseURL("localhost:8080")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", url)

	url, err = normalizeBaseURL("https://green.example.org/")
	require.NoError(t, err)
	assert.Equal(t, "https://green.example.org", url)

	_, err = normalizeBaseURL("   ")
	require.Error(t, err)
}

func TestAdapter_Register_StoresTokenForLaterRequests(t *testing.T) {
	var taskRequestAuth string
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user/register":
			w.Header().Set("Authorization", "Bearer issued.jwt.token")
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(models.NewUser("ana@example.org", "", "Ana"))
		case "/api/tasks":
			taskRequestAuth = r.Header.Get("Authorization")
			json.NewEncoder(w).Encode([]models.TaskOffer{})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	ctx := context.Background()
	user, err := a.Register(ctx, models.RegisterRequest{Email: "ana@example.org", Password: "s3cret", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.org", user.Email)
	assert.Equal(t, "issued.jwt.token", a.Token())

	_, err = a.Tasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Bearer issued.jwt.token", taskRequestAuth)
}

func TestAdapter_CompleteTask_DailyLimitError(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "daily task limit reached", http.StatusTooManyRequests)
	})

	_, err := a.CompleteTask(context.Background(), models.CompleteTaskRequest{Task: "Water Saving", Points: 20, Report: "done"})

	require.ErrorIs(t, err, ErrTooManyRequests)
}

func TestAdapter_Redeem_ErrorMapping(t *testing.T) {
	tests := []struct {
		status  int
		wantErr error
	}{
		{http.StatusPaymentRequired, ErrPaymentRequired},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusConflict, ErrConflict},
		{http.StatusNotFound, ErrNotFound},
	}
	for _, tt := range tests {
		a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", tt.status)
		})

		_, err := a.Redeem(context.Background(), models.RedeemRequest{RewardID: "bottle"})

		require.ErrorIs(t, err, tt.wantErr, "status %d", tt.status)
	}
}

func TestAdapter_Leaderboard_PassesLimit(t *testing.T) {
	a := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/leaderboard", r.URL.Path)
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode([]models.LeaderboardEntry{{Rank: 1, Name: "Bob", Points: 340}})
	})

	board, err := a.Leaderboard(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "Bob", board[0].Name)
}
