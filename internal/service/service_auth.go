package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/greenplus/greenplus/internal/config"
	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/internal/store"
	"github.com/greenplus/greenplus/internal/utils"
	"github.com/greenplus/greenplus/models"
)

// authService is the concrete implementation of AuthService.
// It handles account registration, credential verification, password
// rotation, and the JWT session token lifecycle, using a UserRepository for
// persistence and bcrypt for password hashing.
type authService struct {
	// userRepository is the data-access layer used to create and look up users.
	userRepository store.UserRepository

	// validate enforces the struct tags on inbound request models.
	validate *validator.Validate

	// tokenSignKey is the HMAC secret used to sign and verify session JWTs.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	tokenDuration time.Duration

	// locks serializes mutations of a user's row, shared with the other
	// engines so a login cannot race a task completion on the same account.
	locks *userLocks

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger

	// now supplies the current time; swapped out in tests.
	now func() time.Time
}

// NewAuthService constructs a new AuthService wired to the given
// UserRepository and populated with token parameters from cfg.
func NewAuthService(userRepository store.UserRepository, cfg config.App, locks *userLocks, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		validate:       validator.New(),
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		locks:          locks,
		logger:         logger,
		now:            time.Now,
	}
}

// Register creates a new account.
//
// It validates the request (well-formed email, non-empty password and name,
// matching password confirmation when present), hashes the password with
// bcrypt, and persists the account with zero points at the Basic level.
// LastLogin is set to the registration date.
//
// Returns the persisted user or:
//   - ErrValidation if a required field is missing or malformed.
//   - ErrDuplicateUser if the email is already registered.
//   - A wrapped storage error if persistence fails.
func (a *authService) Register(ctx context.Context, request models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if err := a.validate.Struct(request); err != nil {
		log.Err(err).Str("email", request.Email).Msg("registration request failed validation")
		return models.User{}, fmt.Errorf("%w: %s", ErrValidation, err)
	}

	passwordHash, err := utils.HashPassword(request.Password)
	if err != nil {
		log.Err(err).Str("email", request.Email).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	user := models.NewUser(request.Email, passwordHash, request.Name)
	user.LastLogin = dateOnly(a.now())

	registeredUser, err := a.userRepository.Create(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrUserAlreadyExists) {
			log.Err(err).Str("email", request.Email).Msg("email already registered")
			return models.User{}, fmt.Errorf("%w: %s", ErrDuplicateUser, request.Email)
		}
		log.Err(err).Str("email", request.Email).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return registeredUser, nil
}

// Login authenticates an existing account and stamps its LastLogin date.
//
// Lookup failures and password mismatches are both collapsed into
// ErrInvalidCredentials so the caller cannot probe which emails exist.
// A LastLogin persistence failure is logged but does not fail the login.
func (a *authService) Login(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	lock := a.locks.forEmail(email)
	lock.Lock()
	defer lock.Unlock()

	user, err := a.userRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			log.Err(err).Str("email", email).Msg("login attempt for unknown email")
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		log.Error().Str("email", email).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	user.LastLogin = dateOnly(a.now())
	if err := a.userRepository.Update(ctx, user); err != nil {
		log.Err(err).Str("email", email).Msg("last login update failed")
	}

	return user, nil
}

// ChangePassword rotates the account password after verifying the old one.
//
// Returns nil on success or:
//   - ErrValidation if the new password is empty.
//   - ErrInvalidCredentials if the account is unknown or the old password
//     does not match.
//   - A wrapped storage error if persistence fails.
func (a *authService) ChangePassword(ctx context.Context, email, oldPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	if newPassword == "" {
		return fmt.Errorf("%w: new password is required", ErrValidation)
	}

	lock := a.locks.forEmail(email)
	lock.Lock()
	defer lock.Unlock()

	user, err := a.userRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return ErrInvalidCredentials
		}
		log.Err(err).Str("email", email).Msg("user search by email failed")
		return fmt.Errorf("user search by email failed: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, oldPassword) {
		log.Error().Str("email", email).Msg("wrong old password on password change")
		return ErrInvalidCredentials
	}

	passwordHash, err := utils.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("password hashing failed: %w", err)
	}

	user.PasswordHash = passwordHash
	if err := a.userRepository.Update(ctx, user); err != nil {
		log.Err(err).Str("email", email).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	return nil
}

// CreateToken issues a signed JWT for the given user.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim and the user's email as the
// "sub" claim, and expires after tokenDuration.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.Email, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("token creation failed: %w", err)
	}

	return token, nil
}

// ParseToken validates and parses a raw JWT string.
//
// Any validation failure (expired, wrong issuer, malformed, bad signature)
// is normalised to ErrInvalidCredentials so that callers do not need to
// inspect low-level JWT errors.
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrInvalidCredentials
	}

	return token, nil
}
