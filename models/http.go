package models

// RegisterRequest carries the input of a registration attempt.
//
// PasswordConfirm is collected by the presentation layer; when present it
// must match Password. Validation tags are enforced by the auth service
// (go-playground/validator).
type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	PasswordConfirm string `json:"password_confirm" validate:"omitempty,eqfield=Password"`
	Name            string `json:"name" validate:"required"`
}

// LoginRequest carries the credentials of an authentication attempt.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest carries a password rotation request for the
// authenticated user.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password" validate:"required"`
}

// CompleteTaskRequest records one finished task. Points must be the award
// value that was shown to the user when the task was presented.
type CompleteTaskRequest struct {
	Task   string `json:"task"`
	Points int    `json:"points"`
	Report string `json:"report"`
}

// RedeemRequest asks to exchange points for one catalog reward.
type RedeemRequest struct {
	RewardID string `json:"reward_id"`
}
