package domain

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// ValidationError is raised locally and never sent to the backend
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// FetchError means a range query failed; an empty result is not an error
type FetchError struct {
	PropertyID uuid.UUID
	Start      types.Date
	End        types.Date
	Cause      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch availability for property %s [%s..%s]: %v", e.PropertyID, e.Start, e.End, e.Cause)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// PersistError means a single day override was not stored
type PersistError struct {
	PropertyID uuid.UUID
	Date       types.Date
	Cause      error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist availability for property %s on %s: %v", e.PropertyID, e.Date, e.Cause)
}

func (e *PersistError) Unwrap() error {
	return e.Cause
}
