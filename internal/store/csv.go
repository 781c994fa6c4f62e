package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// dateLayout is the ISO calendar date format used by every persisted date
// column (lastLogin, progress date).
const dateLayout = "2006-01-02"

// List separators inside a single CSV field. Badges use commas (the CSV
// writer quotes the field), reward ids use semicolons.
const (
	badgeSeparator  = ", "
	rewardSeparator = ";"
)

// readTable reads all rows of the CSV table at path, skipping the header
// row. An absent file is treated as an empty collection — the tables are
// lazily initialized on first write.
//
// Rows are read with a variable field count so that legacy tables with
// fewer trailing columns still load.
func readTable(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrReadingTable, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadingTable, err)
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return rows[1:], nil // drop header
}

// writeTable rewrites the CSV table at path with the given header and rows
// as one logical unit. The new content is written to a temporary file in
// the same directory and moved into place, so readers never observe a
// half-written table.
func writeTable(path string, header []string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrWritingTable, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWritingTable, err)
	}
	tmpName := tmp.Name()

	writer := csv.NewWriter(tmp)
	if err := writer.Write(header); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrWritingTable, err)
	}
	if err := writer.WriteAll(rows); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrWritingTable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrWritingTable, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: %w", ErrWritingTable, err)
	}
	return nil
}

// appendRow appends one row to the CSV table at path, creating the file with
// the given header first when it does not exist yet.
func appendRow(path string, header []string, row []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrAppendingRow, err)
	}

	_, statErr := os.Stat(path)
	fresh := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAppendingRow, err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if fresh {
		if err := writer.Write(header); err != nil {
			return fmt.Errorf("%w: %w", ErrAppendingRow, err)
		}
	}
	if err := writer.Write(row); err != nil {
		return fmt.Errorf("%w: %w", ErrAppendingRow, err)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrAppendingRow, err)
	}
	return nil
}

// formatDate renders t as an ISO calendar date; the zero time renders as an
// empty column.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// parseDate parses an ISO calendar date column; an empty column yields the
// zero time.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

// sameDay reports whether a and b fall on the same calendar date.
func sameDay(a, b time.Time) bool {
	return a.Format(dateLayout) == b.Format(dateLayout)
}

func joinList(items []string, sep string) string {
	return strings.Join(items, sep)
}

func splitList(field, sep string) []string {
	if strings.TrimSpace(field) == "" {
		return nil
	}
	parts := strings.Split(field, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
