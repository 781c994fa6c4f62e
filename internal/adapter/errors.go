package adapter

import "errors"

// Sentinel errors mapped from the server's HTTP status codes.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrPaymentRequired     = errors.New("not enough points")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrTooManyRequests     = errors.New("daily limit reached")
	ErrInternalServerError = errors.New("internal server error")
)
