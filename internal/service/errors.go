package service

import "errors"

// Error kinds crossing the core boundary. Every engine operation returns a
// success value or exactly one of these; no panic or exception escapes the
// core. The presentation layer maps each kind to a user-facing message, and
// no error is retried automatically.
var (
	// ErrValidation is returned when a required input is missing or empty
	// (blank report, empty registration field, award outside the task's
	// point range, password confirmation mismatch).
	ErrValidation = errors.New("invalid data provided")

	// ErrInvalidCredentials is returned when no user matches the email or
	// the supplied password does not match the stored hash.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrDuplicateUser is returned when registering an email that is
	// already taken.
	ErrDuplicateUser = errors.New("email already registered")

	// ErrNotFound is returned when an operation targets a user or task that
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidReward is returned when a redemption names a reward id
	// absent from the catalog.
	ErrInvalidReward = errors.New("unknown reward")

	// ErrLevelTooLow is returned when the user's level is below the
	// reward's minimum level, regardless of the point balance.
	ErrLevelTooLow = errors.New("level too low for reward")

	// ErrInsufficientPoints is returned when the user's balance does not
	// cover the reward's cost.
	ErrInsufficientPoints = errors.New("not enough points for reward")

	// ErrAlreadyRedeemed is returned when the reward id is already in the
	// user's redemption history. Redemption is strictly one-shot.
	ErrAlreadyRedeemed = errors.New("reward already redeemed")

	// ErrLimitExceeded is returned when the user has already completed the
	// daily maximum of tasks on the current date.
	ErrLimitExceeded = errors.New("daily task limit reached")
)
