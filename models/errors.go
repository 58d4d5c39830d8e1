package models

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Base errors, related to default API status codes
var (
	// BadParameterError is rendered with the http status code 400
	BadParameterError = errors.New("bad parameter")

	// UnAuthorizedError is rendered with the http status code 401
	UnAuthorizedError = errors.New("unauthorized")

	// ForbiddenError is rendered with the http status code 403
	ForbiddenError = errors.New("forbidden")

	// NotFoundError is rendered with the http status code 404
	NotFoundError = errors.New("not found")

	// ConflictError is rendered with the http status code 409
	ConflictError = errors.New("duplicate value")
)

// DB related errors
var ErrIgnoreRollBackError = errors.New("ignore rollback error")

// Import session lifecycle errors
var (
	ErrUnsupportedFormat = errors.Wrap(BadParameterError, "unsupported file format")
	ErrEmptyFile         = errors.Wrap(BadParameterError, "uploaded file contains no data")
	ErrSessionNotFound   = errors.Wrap(NotFoundError, "import session not found")
	ErrSessionExpired    = errors.Wrap(NotFoundError, "import session has expired")
	ErrSessionNotMapped  = errors.Wrap(BadParameterError, "import session has no field mapping")
	ErrSessionBusy       = errors.Wrap(ConflictError, "import session is already executing")
	ErrSessionConsumed   = errors.Wrap(ConflictError, "import session was already executed")
	ErrUnknownEntityType = errors.Wrap(BadParameterError, "unknown import entity type")
)

// InvalidMappingError carries the keys of the target fields that failed
// mapping validation, so the operator can fix them in one pass.
type InvalidMappingError struct {
	FieldKeys []string
}

func (e InvalidMappingError) Error() string {
	return fmt.Sprintf("invalid field mapping for: %s", strings.Join(e.FieldKeys, ", "))
}

func (e InvalidMappingError) Unwrap() error {
	return BadParameterError
}
