package store

import "errors"

// Sentinel errors returned by repository and catalog methods to signal
// well-known failure conditions. Callers should use [errors.Is] to match
// against these values.
var (
	// ErrUserAlreadyExists is returned when an attempt to register a new
	// user fails because a record with the same email is already present in
	// the Users table.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound is returned when a lookup or update targets an email
	// that has no record in the Users table.
	ErrUserNotFound = errors.New("user not found")

	// ErrTaskNotFound is returned when a task name has no entry in the
	// task catalog.
	ErrTaskNotFound = errors.New("task not found in catalog")

	// ErrRewardNotFound is returned when a reward id has no entry in the
	// reward catalog.
	ErrRewardNotFound = errors.New("reward not found in catalog")
)

// Low-level table I/O errors. These are wrapped by repository methods when a
// CSV-level operation fails before any domain logic can be applied.
var (
	// ErrReadingTable is returned when reading or parsing a CSV table fails
	// for any reason other than the file being absent (an absent table is
	// treated as an empty collection to support lazy initialization).
	ErrReadingTable = errors.New("error reading csv table")

	// ErrWritingTable is returned when rewriting a CSV table fails. Unlike
	// reads, write failures are fatal to the attempted operation.
	ErrWritingTable = errors.New("error writing csv table")

	// ErrAppendingRow is returned when appending a row to the progress log
	// fails mid-write.
	ErrAppendingRow = errors.New("error appending csv row")

	// ErrMalformedRow is returned when a table row cannot be decoded into
	// its record type (bad column count or non-numeric numeric field).
	ErrMalformedRow = errors.New("malformed csv row")
)
