package http

import (
	"net/http"
	"strconv"

	"github.com/greenplus/greenplus/internal/utils"
)

// defaultLeaderboardLimit caps the leaderboard size when the client does not
// ask for a specific one.
const defaultLeaderboardLimit = 10

// history returns every completion of the caller, oldest first.
func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, ok := utils.GetUserEmailFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	entries, err := h.services.ProgressionService.History(ctx, email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, entries, http.StatusOK)
}

// dailySummary returns the caller's earned points per day over the window
// given by the "days" query parameter (the engine defaults to a week).
func (h *Handler) dailySummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, ok := utils.GetUserEmailFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	days, _ := strconv.Atoi(r.URL.Query().Get("days"))

	summary, err := h.services.ProgressionService.DailySummary(ctx, email, days)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, summary, http.StatusOK)
}

// leaderboard ranks all users by points. The "limit" query parameter
// truncates the board; it defaults to the top ten.
func (h *Handler) leaderboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLeaderboardLimit
	}

	board, err := h.services.ProgressionService.Leaderboard(ctx, limit)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, board, http.StatusOK)
}

// profile returns the caller's own account view with the distance to the
// next tier.
func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, ok := utils.GetUserEmailFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	profile, err := h.services.ProgressionService.Profile(ctx, email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}
