package http

import (
	"errors"
	"net/http"

	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/internal/service"
	"github.com/greenplus/greenplus/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:         http.StatusBadRequest,
	service.ErrInvalidCredentials: http.StatusUnauthorized,
	service.ErrDuplicateUser:      http.StatusConflict,
	service.ErrNotFound:           http.StatusNotFound,
	service.ErrInvalidReward:      http.StatusNotFound,
	service.ErrLevelTooLow:        http.StatusForbidden,
	service.ErrInsufficientPoints: http.StatusPaymentRequired,
	service.ErrAlreadyRedeemed:    http.StatusConflict,
	service.ErrLimitExceeded:      http.StatusTooManyRequests,

	store.ErrUserAlreadyExists: http.StatusConflict,
	store.ErrUserNotFound:      http.StatusNotFound,
	store.ErrTaskNotFound:      http.StatusNotFound,
	store.ErrRewardNotFound:    http.StatusNotFound,

	store.ErrReadingTable: http.StatusInternalServerError,
	store.ErrWritingTable: http.StatusInternalServerError,
	store.ErrAppendingRow: http.StatusInternalServerError,
	store.ErrMalformedRow: http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// respondError translates a service-layer error into an HTTP response.
// Known error kinds surface their message; everything else is hidden behind
// a generic 500 so storage details never leak to clients.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		log.Err(err).Msg("unexpected error")
		http.Error(w, http.StatusText(status), status)
		return
	}

	log.Err(err).Send()
	http.Error(w, err.Error(), status)
}
