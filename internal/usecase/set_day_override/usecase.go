package set_day_override

import (
	"context"
	"errors"
	"fmt"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	propertyRepo "github.com/MutasemKharma/reva-chalets/internal/infra/storage/property"
)

// UseCase use case для изменения статуса и цены одного дня владельцем
type UseCase struct {
	propertyRepo PropertyRepository
	store        AvailabilityStore
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(propertyRepo PropertyRepository, store AvailabilityStore, logger Logger) *UseCase {
	return &UseCase{
		propertyRepo: propertyRepo,
		store:        store,
		logger:       logger,
	}
}

// Execute выполняет use case изменения дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SetDayOverride: user=%s, property=%s, date=%s, status=%s",
		req.UserID, req.PropertyID, req.Date, req.Status)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("SetDayOverride: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем объект и проверяем владельца
	property, err := uc.propertyRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			uc.logger.Warn("SetDayOverride: property id=%s not found", req.PropertyID)
			return nil, ErrPropertyNotFound
		}
		uc.logger.Error("SetDayOverride: failed to get property id=%s: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: failed to get property: %v", ErrInternal, err)
	}

	if !property.IsOwnedBy(req.UserID) {
		uc.logger.Warn("SetDayOverride: user=%s is not the owner of property id=%s", req.UserID, req.PropertyID)
		return nil, ErrAccessDenied
	}

	// 3. Сохраняем день через адаптер (прошедшие даты отклоняются там же)
	status := domain.DayStatus(req.Status)
	if err := uc.store.SetDayOverride(ctx, property.ID, req.Date, status, req.PriceOverride); err != nil {
		var (
			validationErr *domain.ValidationError
			persistErr    *domain.PersistError
		)
		switch {
		case errors.As(err, &validationErr):
			return nil, fmt.Errorf("%w: %s", ErrInvalidInput, validationErr.Error())
		case errors.As(err, &persistErr):
			return nil, fmt.Errorf("%w: %v", ErrPersistFailed, err)
		default:
			return nil, fmt.Errorf("%w: failed to save day: %v", ErrInternal, err)
		}
	}

	record := domain.DayAvailabilityRecord{
		PropertyID:    property.ID,
		Date:          req.Date,
		Status:        status,
		PriceOverride: req.PriceOverride,
	}

	uc.logger.Info("SetDayOverride: property=%s date=%s saved", property.ID, req.Date)
	return &Response{
		PropertyID:     record.PropertyID,
		Date:           record.Date,
		Status:         record.Status,
		PriceOverride:  record.PriceOverride,
		EffectivePrice: record.EffectivePrice(property.PricePerNight),
	}, nil
}
