package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when registering a user whose email
	// is already taken.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUserNotFound is returned when a user lookup matches no record.
	ErrUserNotFound = errors.New("no user was found")

	// ErrPostNotFound is returned when a query, update or delete targets a
	// post that does not exist.
	ErrPostNotFound = errors.New("post was not found")

	// ErrUnsupportedDriver is returned for a driver other than pgx or sqlite3.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when scanning a single result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning during multi-row iteration fails.
	ErrScanningRows = errors.New("failed to scan rows")
)
