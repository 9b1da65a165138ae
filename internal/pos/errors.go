package pos

import "github.com/pkg/errors"

// Error categories surfaced to the admin API. Handlers map these to HTTP
// status codes; anything else is treated as a persistence failure.
var (
	// ErrValidation marks malformed or constraint-violating input.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a reference to a nonexistent product or table.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate marks a unique-name conflict in the catalog.
	ErrDuplicate = errors.New("already exists")
)
