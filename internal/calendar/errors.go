package calendar

import "errors"

var (
	// ErrNotReady the operation needs a loaded month
	ErrNotReady = errors.New("calendar: month is not loaded")

	// ErrEditInProgress an edit is already open
	ErrEditInProgress = errors.New("calendar: an edit is already open")

	// ErrNoEdit there is no open edit to submit or cancel
	ErrNoEdit = errors.New("calendar: no edit is open")

	// ErrSubmitInProgress the open edit is being persisted
	ErrSubmitInProgress = errors.New("calendar: edit is being submitted")

	// ErrSuperseded a newer load replaced this one; its result was discarded
	ErrSuperseded = errors.New("calendar: load superseded by a newer request")

	// ErrClosed the engine was closed
	ErrClosed = errors.New("calendar: engine closed")
)
