package get_month_view

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MutasemKharma/reva-chalets/internal/calendar"
	"github.com/MutasemKharma/reva-chalets/internal/domain"
	propertyRepo "github.com/MutasemKharma/reva-chalets/internal/infra/storage/property"
)

// UseCase use case для получения месячного календаря объекта без сессии
type UseCase struct {
	propertyRepo PropertyRepository
	store        AvailabilityStore
	clock        Clock
	weekStart    time.Weekday
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	propertyRepo PropertyRepository,
	store AvailabilityStore,
	clock Clock,
	weekStart time.Weekday,
	logger Logger,
) *UseCase {
	return &UseCase{
		propertyRepo: propertyRepo,
		store:        store,
		clock:        clock,
		weekStart:    weekStart,
		logger:       logger,
	}
}

// Execute выполняет use case: объект, записи месяца и их слияние с ценой по умолчанию
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetMonthView: validation failed: %v", err)
		return nil, err
	}

	today := uc.clock.Today()
	month := today.YearMonth()
	if req.Month != nil {
		month = *req.Month
	}

	uc.logger.Info("GetMonthView: property=%s, month=%s", req.PropertyID, month)

	// 2. Получаем объект
	property, err := uc.propertyRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			uc.logger.Warn("GetMonthView: property id=%s not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("GetMonthView: failed to get property id=%s: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}
	if !property.IsActive {
		uc.logger.Warn("GetMonthView: property id=%s is not active", req.PropertyID)
		return nil, ErrPropertyNotFound
	}

	// 3. Читаем записи за месяц
	records, err := uc.store.FetchRange(ctx, property.ID, month.FirstDay(), month.LastDay())
	if err != nil {
		var fetchErr *domain.FetchError
		if errors.As(err, &fetchErr) {
			return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
		}
		return nil, fmt.Errorf("%w: failed to fetch availability: %v", ErrInternal, err)
	}

	// 4. Собираем сетку месяца
	view := calendar.BuildMonthView(month, uc.weekStart, property.PricePerNight, records, today)

	uc.logger.Info("GetMonthView: property=%s, month=%s, %d overrides", property.ID, month, len(records))
	return &Response{
		Property: property,
		View:     view,
	}, nil
}
