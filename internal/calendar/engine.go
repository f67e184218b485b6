package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// State of the engine
type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	case StateEditing:
		return "editing"
	default:
		return "unknown"
	}
}

// Direction of month navigation
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// ParseDirection parses "prev" or "next"
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "prev":
		return Prev, true
	case "next":
		return Next, true
	}
	return 0, false
}

// Snapshot is a consistent copy of the engine state.
// View is shared with the engine; month views are never modified after they are built.
type Snapshot struct {
	State      State
	PropertyID uuid.UUID
	Month      types.YearMonth
	View       *domain.MonthView
	LoadErr    error
	Edit       *domain.PendingEdit
	EditErr    error
	Submitting bool
}

// Option configures an Engine
type Option func(e *Engine)

// WithWeekStart sets the first column of the grid (Sunday by default)
func WithWeekStart(d time.Weekday) Option {
	return func(e *Engine) { e.weekStart = d }
}

// WithLogger sets the engine logger
func WithLogger(l Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// Engine keeps the month view of one property in sync with the store.
//
// The mutex is never held across store calls. Every load gets a generation
// number; starting a newer load cancels the older one and its result is
// dropped with ErrSuperseded.
type Engine struct {
	store  Store
	clock  Clock
	logger Logger

	propertyID   uuid.UUID
	defaultPrice decimal.Decimal
	weekStart    time.Weekday

	mu         sync.Mutex
	state      State
	month      types.YearMonth
	view       *domain.MonthView
	loadErr    error
	edit       *domain.PendingEdit
	editErr    error
	submitting bool
	generation uint64
	cancelLoad context.CancelFunc
	closed     bool
}

// NewEngine creates an engine in the Idle state for the given month
func NewEngine(
	propertyID uuid.UUID,
	defaultPrice decimal.Decimal,
	month types.YearMonth,
	store Store,
	clock Clock,
	opts ...Option,
) *Engine {
	e := &Engine{
		store:        store,
		clock:        clock,
		logger:       nopLogger{},
		propertyID:   propertyID,
		defaultPrice: defaultPrice,
		weekStart:    time.Sunday,
		state:        StateIdle,
		month:        month,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load fetches the current month. Used for the first load and to retry after an error.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	month := e.month
	gen, loadCtx := e.beginLoadLocked(ctx)
	e.mu.Unlock()

	return e.fetch(loadCtx, gen, month)
}

// Navigate moves one month back or forward from any state and loads it.
// A pending edit is discarded.
func (e *Engine) Navigate(ctx context.Context, dir Direction) error {
	if dir != Prev && dir != Next {
		return &domain.ValidationError{Field: "direction", Reason: "must be prev or next"}
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrClosed
	}
	e.month = e.month.AddMonths(int(dir))
	month := e.month
	gen, loadCtx := e.beginLoadLocked(ctx)
	e.mu.Unlock()

	e.logger.Info("Navigate: property=%s month=%s", e.propertyID, month)
	return e.fetch(loadCtx, gen, month)
}

// OpenEdit starts editing a day of the visible month.
// Past dates and dates outside the month are rejected with *domain.ValidationError.
func (e *Engine) OpenEdit(date types.Date) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateEditing:
		return ErrEditInProgress
	case StateReady:
	default:
		return ErrNotReady
	}

	if date.IsZero() {
		return &domain.ValidationError{Field: "date", Reason: "is required"}
	}
	if date.Before(e.clock.Today()) {
		return &domain.ValidationError{Field: "date", Reason: "past dates cannot be edited"}
	}

	day := e.view.Day(date)
	if day == nil {
		return &domain.ValidationError{Field: "date", Reason: "outside the visible month"}
	}

	edit := &domain.PendingEdit{
		Date:           date,
		ProposedStatus: day.Status,
	}
	if day.HasOverride {
		price := day.EffectivePrice
		edit.ProposedPriceOverride = &price
	}

	e.edit = edit
	e.editErr = nil
	e.state = StateEditing
	return nil
}

// SubmitEdit validates and persists the open edit.
// On a validation or persist failure the edit stays open with the error attached
// and the month view is left untouched. On success the edit is closed and the
// month is fetched again; the returned error is then the result of that fetch.
func (e *Engine) SubmitEdit(ctx context.Context, status domain.DayStatus, priceOverride *decimal.Decimal) error {
	e.mu.Lock()
	if e.state != StateEditing || e.edit == nil {
		e.mu.Unlock()
		return ErrNoEdit
	}
	if e.submitting {
		e.mu.Unlock()
		return ErrSubmitInProgress
	}

	edit := *e.edit
	edit.ProposedStatus = status
	edit.ProposedPriceOverride = priceOverride
	e.edit = &edit

	if verr := validateEdit(edit, e.clock.Today()); verr != nil {
		e.editErr = verr
		e.mu.Unlock()
		return verr
	}

	e.submitting = true
	gen := e.generation
	e.mu.Unlock()

	err := e.store.SetDayOverride(ctx, e.propertyID, edit.Date, status, priceOverride)

	e.mu.Lock()
	e.submitting = false

	// Navigation while persisting already dropped the edit and started a new load.
	if gen != e.generation {
		e.mu.Unlock()
		return err
	}

	if err != nil {
		e.editErr = err
		e.mu.Unlock()
		e.logger.Warn("SubmitEdit: property=%s date=%s failed: %v", e.propertyID, edit.Date, err)
		return err
	}

	month := e.month
	newGen, loadCtx := e.beginLoadLocked(ctx)
	e.mu.Unlock()

	e.logger.Info("SubmitEdit: property=%s date=%s status=%s saved, reloading %s",
		e.propertyID, edit.Date, status, month)
	return e.fetch(loadCtx, newGen, month)
}

// CancelEdit discards the open edit and returns to Ready
func (e *Engine) CancelEdit() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateEditing {
		return ErrNoEdit
	}
	if e.submitting {
		return ErrSubmitInProgress
	}

	e.edit = nil
	e.editErr = nil
	e.state = StateReady
	return nil
}

// Snapshot returns a copy of the current state
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := Snapshot{
		State:      e.state,
		PropertyID: e.propertyID,
		Month:      e.month,
		View:       e.view,
		LoadErr:    e.loadErr,
		EditErr:    e.editErr,
		Submitting: e.submitting,
	}
	if e.edit != nil {
		edit := *e.edit
		s.Edit = &edit
	}
	return s
}

// Close cancels any in-flight load. Further loads fail with ErrClosed.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.closed = true
	e.generation++
	if e.cancelLoad != nil {
		e.cancelLoad()
		e.cancelLoad = nil
	}
}

// beginLoadLocked switches to Loading under a new generation and cancels the previous load
func (e *Engine) beginLoadLocked(ctx context.Context) (uint64, context.Context) {
	e.generation++
	if e.cancelLoad != nil {
		e.cancelLoad()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	e.cancelLoad = cancel

	if e.view != nil && e.view.Month != e.month {
		e.view = nil
	}
	e.state = StateLoading
	e.loadErr = nil
	e.edit = nil
	e.editErr = nil

	return e.generation, loadCtx
}

func (e *Engine) fetch(ctx context.Context, gen uint64, month types.YearMonth) error {
	records, err := e.store.FetchRange(ctx, e.propertyID, month.FirstDay(), month.LastDay())
	today := e.clock.Today()

	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation {
		return ErrSuperseded
	}
	if e.cancelLoad != nil {
		e.cancelLoad()
		e.cancelLoad = nil
	}

	if err != nil {
		e.state = StateError
		e.loadErr = err
		e.view = nil
		e.logger.Warn("Load: property=%s month=%s failed: %v", e.propertyID, month, err)
		return err
	}

	e.view = BuildMonthView(month, e.weekStart, e.defaultPrice, records, today)
	e.state = StateReady
	return nil
}

func validateEdit(edit domain.PendingEdit, today types.Date) error {
	if !edit.ProposedStatus.IsValid() {
		return &domain.ValidationError{Field: "status", Reason: "unknown status"}
	}
	if edit.ProposedPriceOverride != nil && !edit.ProposedPriceOverride.IsPositive() {
		return &domain.ValidationError{Field: "priceOverride", Reason: "must be a positive number"}
	}
	if edit.Date.Before(today) {
		return &domain.ValidationError{Field: "date", Reason: "past dates cannot be edited"}
	}
	return nil
}
