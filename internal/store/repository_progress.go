package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/greenplus/greenplus/internal/logger"
	"github.com/greenplus/greenplus/models"
)

// progressHeader is the persisted column layout of the append-only progress
// log. No uniqueness constraint; the date column is an ISO calendar date.
var progressHeader = []string{"email", "date", "task", "points", "report"}

// progressRepository is the CSV-backed implementation of
// [ProgressRepository]. The log is append-only: rows are written once and
// never rewritten, so appends for different users cannot clobber each other.
type progressRepository struct {
	path   string
	logger *logger.Logger
}

// NewProgressRepository constructs a [ProgressRepository] backed by the CSV
// log at path.
func NewProgressRepository(path string, logger *logger.Logger) ProgressRepository {
	logger.Debug().Str("path", path).Msg("creating progress repository")
	return &progressRepository{
		path:   path,
		logger: logger,
	}
}

// Append adds one entry to the end of the log. A failure mid-append is
// surfaced to the caller; it is never swallowed.
func (r *progressRepository) Append(ctx context.Context, entry models.ProgressEntry) error {
	log := logger.FromContext(ctx)

	row := []string{
		entry.Email,
		formatDate(entry.Date),
		entry.Task,
		strconv.Itoa(entry.Points),
		entry.Report,
	}
	if err := appendRow(r.path, progressHeader, row); err != nil {
		log.Err(err).Str("func", "*progressRepository.Append").Msg("error: appending progress row")
		return err
	}

	return nil
}

// ListByUser returns all entries of the user in log (chronological append)
// order. An absent log yields an empty slice.
func (r *progressRepository) ListByUser(ctx context.Context, email string) ([]models.ProgressEntry, error) {
	log := logger.FromContext(ctx)

	entries, err := r.loadAll()
	if err != nil {
		log.Err(err).Str("func", "*progressRepository.ListByUser").Msg("error: loading progress log")
		return nil, err
	}

	var out []models.ProgressEntry
	for _, entry := range entries {
		if entry.Email == email {
			out = append(out, entry)
		}
	}
	return out, nil
}

// CountForDate returns the number of entries the user logged on the given
// calendar date. Used to enforce and report the daily task limit.
func (r *progressRepository) CountForDate(ctx context.Context, email string, date time.Time) (int, error) {
	log := logger.FromContext(ctx)

	entries, err := r.loadAll()
	if err != nil {
		log.Err(err).Str("func", "*progressRepository.CountForDate").Msg("error: loading progress log")
		return 0, err
	}

	count := 0
	for _, entry := range entries {
		if entry.Email == email && sameDay(entry.Date, date) {
			count++
		}
	}
	return count, nil
}

func (r *progressRepository) loadAll() ([]models.ProgressEntry, error) {
	rows, err := readTable(r.path)
	if err != nil {
		return nil, err
	}

	entries := make([]models.ProgressEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := decodeProgressRow(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeProgressRow(row []string) (models.ProgressEntry, error) {
	if len(row) < 5 {
		return models.ProgressEntry{}, fmt.Errorf("%w: progress row has %d columns", ErrMalformedRow, len(row))
	}

	date, err := parseDate(row[1])
	if err != nil {
		return models.ProgressEntry{}, fmt.Errorf("%w: date column: %w", ErrMalformedRow, err)
	}

	points, err := strconv.Atoi(row[3])
	if err != nil {
		return models.ProgressEntry{}, fmt.Errorf("%w: points column: %w", ErrMalformedRow, err)
	}

	return models.ProgressEntry{
		Email:  row[0],
		Date:   date,
		Task:   row[2],
		Points: points,
		Report: row[4],
	}, nil
}
