package http

import (
	"encoding/json"
	"net/http"

	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/internal/utils"
	"github.com/greenplus/greenplus/models"
)

// listTasks returns the catalog tasks available at the caller's current
// level, each with a freshly drawn award value.
func (h *Handler) listTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, ok := utils.GetUserEmailFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	offers, err := h.services.ProgressionService.OfferTasks(ctx, email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, offers, http.StatusOK)
}

// completeTask records one finished task for the caller.
func (h *Handler) completeTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	email, ok := utils.GetUserEmailFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.CompleteTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	completed, err := h.services.ProgressionService.CompleteTask(ctx, email, request)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, completed, http.StatusOK)
}

// quota reports the caller's remaining daily task allowance.
func (h *Handler) quota(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	email, ok := utils.GetUserEmailFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	quota, err := h.services.ProgressionService.Quota(ctx, email)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, quota, http.StatusOK)
}
