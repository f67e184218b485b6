package calendarsessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/calendar"
	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/internal/service/properties"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// View состояние сессии для ответа клиенту
type View struct {
	SessionID uuid.UUID
	calendar.Snapshot
}

// Service управляет сессиями редактирования календаря владельцем.
// Ошибка загрузки месяца не является ошибкой операции: она видна в состоянии сессии.
type Service struct {
	registry   *Registry
	properties PropertyProvider
	store      Store
	clock      Clock
	weekStart  time.Weekday
	logger     Logger
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	registry *Registry,
	properties PropertyProvider,
	store Store,
	clock Clock,
	weekStart time.Weekday,
	logger Logger,
) *Service {
	return &Service{
		registry:   registry,
		properties: properties,
		store:      store,
		clock:      clock,
		weekStart:  weekStart,
		logger:     logger,
	}
}

// Start открывает сессию на месяц month (текущий, если nil) и загружает его
func (s *Service) Start(ctx context.Context, userID, propertyID uuid.UUID, month *types.YearMonth) (*View, error) {
	property, err := s.properties.LookupOwned(ctx, propertyID, userID)
	if err != nil {
		switch {
		case errors.Is(err, properties.ErrPropertyNotFound):
			return nil, ErrPropertyNotFound
		case errors.Is(err, properties.ErrAccessDenied):
			return nil, ErrAccessDenied
		default:
			return nil, fmt.Errorf("%w: Start - property lookup: %v", ErrInternal, err)
		}
	}

	start := s.clock.Today().YearMonth()
	if month != nil {
		start = *month
	}

	engine := calendar.NewEngine(property.ID, property.PricePerNight, start, s.store, s.clock,
		calendar.WithWeekStart(s.weekStart),
		calendar.WithLogger(s.logger),
	)
	session := s.registry.Add(userID, property.ID, engine)
	s.logger.Info("Start: session id=%s for property=%s month=%s", session.ID, property.ID, start)

	if err := engine.Load(ctx); err != nil {
		s.logger.Warn("Start: initial load for session id=%s failed: %v", session.ID, err)
	}

	return s.view(session), nil
}

// Get возвращает текущее состояние сессии
func (s *Service) Get(userID, sessionID uuid.UUID) (*View, error) {
	session, err := s.registry.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// Reload повторяет загрузку текущего месяца
func (s *Service) Reload(ctx context.Context, userID, sessionID uuid.UUID) (*View, error) {
	session, err := s.registry.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}

	if err := session.Engine.Load(ctx); err != nil {
		if mapped := mapEngineError(err); mapped != nil {
			return nil, mapped
		}
	}
	return s.view(session), nil
}

// Navigate переключает месяц ("prev" или "next")
func (s *Service) Navigate(ctx context.Context, userID, sessionID uuid.UUID, direction string) (*View, error) {
	dir, ok := calendar.ParseDirection(direction)
	if !ok {
		return nil, fmt.Errorf("%w: direction must be prev or next", ErrInvalidInput)
	}

	session, err := s.registry.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}

	if err := session.Engine.Navigate(ctx, dir); err != nil {
		if mapped := mapEngineError(err); mapped != nil {
			return nil, mapped
		}
	}
	return s.view(session), nil
}

// OpenEdit открывает редактирование дня
func (s *Service) OpenEdit(userID, sessionID uuid.UUID, date types.Date) (*View, error) {
	session, err := s.registry.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}

	if err := session.Engine.OpenEdit(date); err != nil {
		return nil, mapEngineError(err)
	}
	return s.view(session), nil
}

// SubmitEdit сохраняет открытое редактирование и перечитывает месяц
func (s *Service) SubmitEdit(ctx context.Context, userID, sessionID uuid.UUID, status domain.DayStatus, priceOverride *decimal.Decimal) (*View, error) {
	session, err := s.registry.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}

	if err := session.Engine.SubmitEdit(ctx, status, priceOverride); err != nil {
		if mapped := mapEngineError(err); mapped != nil {
			return nil, mapped
		}
	}
	return s.view(session), nil
}

// CancelEdit отменяет открытое редактирование
func (s *Service) CancelEdit(userID, sessionID uuid.UUID) (*View, error) {
	session, err := s.registry.Get(sessionID, userID)
	if err != nil {
		return nil, err
	}

	if err := session.Engine.CancelEdit(); err != nil {
		return nil, mapEngineError(err)
	}
	return s.view(session), nil
}

// Close закрывает сессию
func (s *Service) Close(userID, sessionID uuid.UUID) error {
	if err := s.registry.Remove(sessionID, userID); err != nil {
		return err
	}
	s.logger.Info("Close: session id=%s closed", sessionID)
	return nil
}

func (s *Service) view(session *Session) *View {
	return &View{
		SessionID: session.ID,
		Snapshot:  session.Engine.Snapshot(),
	}
}

// mapEngineError переводит ошибки движка в ошибки сервиса.
// nil означает, что результат виден в состоянии сессии (ошибка загрузки или
// устаревший ответ) и операция считается выполненной.
func mapEngineError(err error) error {
	var (
		validationErr *domain.ValidationError
		persistErr    *domain.PersistError
		fetchErr      *domain.FetchError
	)

	switch {
	case errors.As(err, &validationErr):
		return fmt.Errorf("%w: %s", ErrInvalidInput, validationErr.Error())
	case errors.As(err, &persistErr):
		return fmt.Errorf("%w: %v", ErrPersistFailed, persistErr)
	case errors.As(err, &fetchErr), errors.Is(err, calendar.ErrSuperseded):
		return nil
	case errors.Is(err, calendar.ErrNotReady),
		errors.Is(err, calendar.ErrEditInProgress),
		errors.Is(err, calendar.ErrNoEdit),
		errors.Is(err, calendar.ErrSubmitInProgress):
		return fmt.Errorf("%w: %v", ErrConflict, err)
	case errors.Is(err, calendar.ErrClosed):
		return ErrSessionNotFound
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
