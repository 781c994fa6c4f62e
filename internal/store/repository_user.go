package store

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/models"
)

// usersHeader is the persisted column layout of the Users table. The badges
// column is a comma-separated list, the rewards column a semicolon-separated
// list of reward ids. One row per user, email unique.
var usersHeader = []string{
	"email", "passwordHash", "displayName", "points",
	"level", "lastLogin", "badges", "rewards",
}

// userRepository is the CSV-backed implementation of [UserRepository].
// Every mutation loads the full table, applies the change, and rewrites the
// table as one logical unit. mu serializes mutations across all users:
// without it, two concurrent rewrites for different emails would each load
// the table and the later rewrite would drop the earlier change.
type userRepository struct {
	path string

	// mu is held across the load-modify-rewrite cycle of every mutation.
	mu sync.Mutex

	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the CSV table at
// path.
func NewUserRepository(path string, logger *logger.Logger) UserRepository {
	logger.Debug().Str("path", path).Msg("creating user repository")
	return &userRepository{
		path:   path,
		logger: logger,
	}
}

// Create persists a new user record.
//
// Error handling:
//   - duplicate email → [ErrUserAlreadyExists]
//   - table I/O failure → wrapped [ErrReadingTable] / [ErrWritingTable]
func (r *userRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.loadAll()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error: loading users table")
		return models.User{}, err
	}

	for _, existing := range users {
		if existing.Email == user.Email {
			return models.User{}, ErrUserAlreadyExists
		}
	}

	users = append(users, user)
	if err := r.saveAll(users); err != nil {
		log.Err(err).Str("func", "*userRepository.Create").Msg("error: rewriting users table")
		return models.User{}, err
	}

	return user, nil
}

// FindByEmail retrieves the record with the given email, or
// [ErrUserNotFound] when the table has no such row.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	users, err := r.loadAll()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindByEmail").Msg("error: loading users table")
		return models.User{}, err
	}

	for _, user := range users {
		if user.Email == email {
			return user, nil
		}
	}

	return models.User{}, ErrUserNotFound
}

// Update replaces the stored record matching user.Email and rewrites the
// table. Returns [ErrUserNotFound] when no row matches.
func (r *userRepository) Update(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.loadAll()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Msg("error: loading users table")
		return err
	}

	found := false
	for i := range users {
		if users[i].Email == user.Email {
			users[i] = user
			found = true
			break
		}
	}
	if !found {
		return ErrUserNotFound
	}

	if err := r.saveAll(users); err != nil {
		log.Err(err).Str("func", "*userRepository.Update").Msg("error: rewriting users table")
		return err
	}

	return nil
}

// ListAll returns every user record in table order.
func (r *userRepository) ListAll(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	users, err := r.loadAll()
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListAll").Msg("error: loading users table")
		return nil, err
	}

	return users, nil
}

func (r *userRepository) loadAll() ([]models.User, error) {
	rows, err := readTable(r.path)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		user, err := decodeUserRow(row)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *userRepository) saveAll(users []models.User) error {
	rows := make([][]string, 0, len(users))
	for _, user := range users {
		rows = append(rows, encodeUserRow(user))
	}
	return writeTable(r.path, usersHeader, rows)
}

func encodeUserRow(user models.User) []string {
	return []string{
		user.Email,
		user.PasswordHash,
		user.Name,
		strconv.Itoa(user.Points),
		string(user.Level),
		formatDate(user.LastLogin),
		joinList(user.Badges, badgeSeparator),
		joinList(user.RedeemedRewards, rewardSeparator),
	}
}

// decodeUserRow parses one Users-table row. Rows from the legacy schema may
// lack the trailing badges/rewards columns; those default to empty sets
// rather than failing the load.
func decodeUserRow(row []string) (models.User, error) {
	if len(row) < 6 {
		return models.User{}, fmt.Errorf("%w: users row has %d columns", ErrMalformedRow, len(row))
	}

	points, err := strconv.Atoi(row[3])
	if err != nil {
		return models.User{}, fmt.Errorf("%w: points column: %w", ErrMalformedRow, err)
	}

	lastLogin, err := parseDate(row[5])
	if err != nil {
		return models.User{}, fmt.Errorf("%w: lastLogin column: %w", ErrMalformedRow, err)
	}

	user := models.User{
		Email:        row[0],
		PasswordHash: row[1],
		Name:         row[2],
		Points:       points,
		Level:        models.Level(row[4]),
		LastLogin:    lastLogin,
	}
	if len(row) > 6 {
		user.Badges = splitList(row[6], ",")
	}
	if len(row) > 7 {
		user.RedeemedRewards = splitList(row[7], rewardSeparator)
	}
	return user, nil
}
