package http

import (
	"encoding/json"
	"net/http"

	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/internal/utils"
	"github.com/greenplus/greenplus/models"
)

// listRewards returns the full reward catalog, sorted by required level and
// then by cost.
func (h *Handler) listRewards(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, h.services.RedemptionService.Rewards(r.Context()), http.StatusOK)
}

// redeem exchanges the caller's points for one catalog reward.
func (h *Handler) redeem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	email, ok := utils.GetUserEmailFromContext(ctx)
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var request models.RedeemRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	redeemed, err := h.services.RedemptionService.Redeem(ctx, email, request.RewardID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, redeemed, http.StatusOK)
}
