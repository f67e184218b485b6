package calendarsessions

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MutasemKharma/reva-chalets/internal/calendar"
	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/internal/service/properties"
	"github.com/MutasemKharma/reva-chalets/pkg/logger"
	"github.com/MutasemKharma/reva-chalets/pkg/metrics"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

var (
	ownerID    = uuid.MustParse("5f1d7c2a-3b4e-4a6f-8c9d-0e1f2a3b4c5d")
	propertyID = uuid.MustParse("0b6a2f0e-8f4c-4d1e-9a57-2c61f3e4d5a6")
	today      = types.MustParseDate("2025-03-15")
)

type fixedClock struct{ today types.Date }

func (c fixedClock) Today() types.Date { return c.today }

type fakeProperties struct{}

func (fakeProperties) LookupOwned(_ context.Context, id, userID uuid.UUID) (*domain.Property, error) {
	if id != propertyID {
		return nil, properties.ErrPropertyNotFound
	}
	if userID != ownerID {
		return nil, properties.ErrAccessDenied
	}
	return &domain.Property{ID: propertyID, OwnerID: ownerID, PricePerNight: decimal.NewFromInt(80), IsActive: true}, nil
}

// memoryStore хранилище в памяти; fetchErr и persistErr имитируют сбои
type memoryStore struct {
	mu         sync.Mutex
	records    map[types.Date]domain.DayAvailabilityRecord
	fetchErr   error
	persistErr error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{records: map[types.Date]domain.DayAvailabilityRecord{}}
}

func (s *memoryStore) FetchRange(_ context.Context, id uuid.UUID, start, end types.Date) ([]domain.DayAvailabilityRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fetchErr != nil {
		return nil, &domain.FetchError{PropertyID: id, Start: start, End: end, Cause: s.fetchErr}
	}
	out := make([]domain.DayAvailabilityRecord, 0)
	for date, rec := range s.records {
		if !date.Before(start) && !date.After(end) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *memoryStore) SetDayOverride(_ context.Context, id uuid.UUID, date types.Date, status domain.DayStatus, price *decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.persistErr != nil {
		return &domain.PersistError{PropertyID: id, Date: date, Cause: s.persistErr}
	}
	s.records[date] = domain.DayAvailabilityRecord{PropertyID: id, Date: date, Status: status, PriceOverride: price}
	return nil
}

func newService(store *memoryStore) (*Service, *Registry) {
	registry := NewRegistry(time.Hour, logger.Nop())
	svc := NewService(registry, fakeProperties{}, store, fixedClock{today: today}, time.Sunday, logger.Nop())
	return svc, registry
}

func TestService_StartDefaultsToCurrentMonth(t *testing.T) {
	svc, registry := newService(newMemoryStore())

	view, err := svc.Start(context.Background(), ownerID, propertyID, nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, view.SessionID)
	assert.Equal(t, calendar.StateReady, view.State)
	assert.Equal(t, types.YearMonth{Year: 2025, Month: time.March}, view.Month)
	require.NotNil(t, view.View)
	assert.Len(t, view.View.Days, 37)
	assert.Equal(t, 1, registry.Len())
}

func TestService_StartChecksOwner(t *testing.T) {
	svc, registry := newService(newMemoryStore())

	_, err := svc.Start(context.Background(), uuid.New(), propertyID, nil)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Start(context.Background(), ownerID, uuid.New(), nil)
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	assert.Equal(t, 0, registry.Len())
}

func TestService_StartWithFailedLoadKeepsSession(t *testing.T) {
	store := newMemoryStore()
	store.fetchErr = errors.New("timeout")
	svc, _ := newService(store)

	view, err := svc.Start(context.Background(), ownerID, propertyID, nil)
	require.NoError(t, err)
	assert.Equal(t, calendar.StateError, view.State)
	assert.Nil(t, view.View)
	assert.Error(t, view.LoadErr)

	store.mu.Lock()
	store.fetchErr = nil
	store.mu.Unlock()

	view, err = svc.Reload(context.Background(), ownerID, view.SessionID)
	require.NoError(t, err)
	assert.Equal(t, calendar.StateReady, view.State)
}

func TestService_EditFlow(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newService(store)

	started, err := svc.Start(context.Background(), ownerID, propertyID, nil)
	require.NoError(t, err)
	id := started.SessionID
	date := types.MustParseDate("2025-03-21")

	view, err := svc.OpenEdit(ownerID, id, date)
	require.NoError(t, err)
	assert.Equal(t, calendar.StateEditing, view.State)
	require.NotNil(t, view.Edit)
	assert.Equal(t, date, view.Edit.Date)

	_, err = svc.OpenEdit(ownerID, id, date)
	assert.ErrorIs(t, err, ErrConflict)

	price := decimal.NewFromInt(150)
	view, err = svc.SubmitEdit(context.Background(), ownerID, id, domain.DayStatusBooked, &price)
	require.NoError(t, err)
	assert.Equal(t, calendar.StateReady, view.State)
	assert.Nil(t, view.Edit)

	day := view.View.Day(date)
	require.NotNil(t, day)
	assert.Equal(t, domain.DayStatusBooked, day.Status)
	assert.True(t, price.Equal(day.EffectivePrice))
}

func TestService_SubmitEditErrors(t *testing.T) {
	store := newMemoryStore()
	svc, _ := newService(store)

	started, err := svc.Start(context.Background(), ownerID, propertyID, nil)
	require.NoError(t, err)
	id := started.SessionID

	_, err = svc.SubmitEdit(context.Background(), ownerID, id, domain.DayStatusBooked, nil)
	assert.ErrorIs(t, err, ErrConflict, "нет открытого редактирования")

	_, err = svc.OpenEdit(ownerID, id, types.MustParseDate("2025-03-01"))
	assert.ErrorIs(t, err, ErrInvalidInput, "прошедшая дата")

	_, err = svc.OpenEdit(ownerID, id, types.MustParseDate("2025-03-20"))
	require.NoError(t, err)

	zero := decimal.Zero
	_, err = svc.SubmitEdit(context.Background(), ownerID, id, domain.DayStatusBooked, &zero)
	assert.ErrorIs(t, err, ErrInvalidInput)

	store.mu.Lock()
	store.persistErr = errors.New("connection reset")
	store.mu.Unlock()

	_, err = svc.SubmitEdit(context.Background(), ownerID, id, domain.DayStatusBlocked, nil)
	assert.ErrorIs(t, err, ErrPersistFailed)

	view, err := svc.Get(ownerID, id)
	require.NoError(t, err)
	assert.Equal(t, calendar.StateEditing, view.State)
	assert.Error(t, view.EditErr)

	view, err = svc.CancelEdit(ownerID, id)
	require.NoError(t, err)
	assert.Equal(t, calendar.StateReady, view.State)
}

func TestService_Navigate(t *testing.T) {
	svc, _ := newService(newMemoryStore())

	started, err := svc.Start(context.Background(), ownerID, propertyID, &types.YearMonth{Year: 2025, Month: time.December})
	require.NoError(t, err)

	view, err := svc.Navigate(context.Background(), ownerID, started.SessionID, "next")
	require.NoError(t, err)
	assert.Equal(t, types.YearMonth{Year: 2026, Month: time.January}, view.Month)

	_, err = svc.Navigate(context.Background(), ownerID, started.SessionID, "sideways")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_SessionAccess(t *testing.T) {
	svc, registry := newService(newMemoryStore())

	started, err := svc.Start(context.Background(), ownerID, propertyID, nil)
	require.NoError(t, err)

	_, err = svc.Get(uuid.New(), started.SessionID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Get(ownerID, uuid.New())
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, svc.Close(ownerID, started.SessionID))
	assert.Equal(t, 0, registry.Len())

	_, err = svc.Get(ownerID, started.SessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistry_Sweep(t *testing.T) {
	now := time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)
	m := metrics.New("test")
	registry := NewRegistry(30*time.Minute, logger.Nop(),
		WithRegistryMetrics(m),
		WithNow(func() time.Time { return now }),
	)

	store := newMemoryStore()
	month := types.YearMonth{Year: 2025, Month: time.March}
	newEngine := func() *calendar.Engine {
		return calendar.NewEngine(propertyID, decimal.NewFromInt(80), month, store, fixedClock{today: today})
	}

	idle := registry.Add(ownerID, propertyID, newEngine())
	active := registry.Add(ownerID, propertyID, newEngine())
	assert.Equal(t, float64(2), testutil.ToFloat64(m.CalendarSessionsActive))

	now = now.Add(20 * time.Minute)
	_, err := registry.Get(active.ID, ownerID)
	require.NoError(t, err)

	now = now.Add(15 * time.Minute)
	assert.Equal(t, 1, registry.Sweep())

	_, err = registry.Get(idle.ID, ownerID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, idle.Engine.Load(context.Background()), calendar.ErrClosed)

	_, err = registry.Get(active.ID, ownerID)
	assert.NoError(t, err)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CalendarSessionsActive))

	registry.CloseAll()
	assert.Equal(t, 0, registry.Len())
	assert.Equal(t, float64(0), testutil.ToFloat64(m.CalendarSessionsActive))
}

func TestRegistry_RunStopsOnCancel(t *testing.T) {
	registry := NewRegistry(time.Minute, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- registry.Run(ctx, 5*time.Millisecond) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
