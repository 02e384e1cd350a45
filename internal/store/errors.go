package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrItemNotFound is returned when an update or delete targets an id that
	// does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrItemAlreadyExists is returned when an insert collides with an
	// existing id.
	ErrItemAlreadyExists = errors.New("item already exists")
)

// Low-level database operation errors.
var (
	ErrBuildingSQLQuery   = errors.New("error building sql query")
	ErrExecutingQuery     = errors.New("error executing sql query")
	ErrExecutingStatement = errors.New("failed to executing statement")
	ErrScanningRows       = errors.New("failed to scan item rows")
	ErrUnsupportedDSN     = errors.New("unsupported database dsn")
)
