package properties

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	propertyRepo "github.com/MutasemKharma/reva-chalets/internal/infra/storage/property"
	"github.com/MutasemKharma/reva-chalets/internal/service/properties/models"
	"github.com/MutasemKharma/reva-chalets/pkg/ptr"
)

const maxNameLength = 120

// Option дополнительные зависимости сервиса
type Option func(s *Service)

// WithAvailabilityInvalidator сбрасывает кеш доступности при смене цены
func WithAvailabilityInvalidator(inv AvailabilityInvalidator) Option {
	return func(s *Service) { s.availability = inv }
}

// Service сервис для работы с объектами
type Service struct {
	propertyRepo PropertyRepository
	txManager    TxManager
	availability AvailabilityInvalidator
	logger       Logger
}

// NewService создает новый экземпляр сервиса объектов
func NewService(propertyRepo PropertyRepository, txManager TxManager, logger Logger, opts ...Option) *Service {
	s := &Service{
		propertyRepo: propertyRepo,
		txManager:    txManager,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetByID возвращает публичную карточку объекта. Снятые с публикации объекты не отдаются.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*models.PropertyResponse, error) {
	property, err := s.LookupActive(ctx, id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainProperty(property), nil
}

// List возвращает активные объекты каталога с фильтрами по городу и цене
func (s *Service) List(ctx context.Context, req *models.ListPropertiesRequest) (*models.PropertyListResponse, error) {
	if req.MinPrice != nil && req.MaxPrice != nil && req.MinPrice.GreaterThan(*req.MaxPrice) {
		return nil, fmt.Errorf("%w: minPrice greater than maxPrice", ErrInvalidInput)
	}
	if req.Limit > domain.MaxPropertiesLimit {
		req.Limit = domain.MaxPropertiesLimit
	}

	filter := domain.PropertyFilter{
		City:       req.City,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		ActiveOnly: true,
		Limit:      req.Limit,
	}

	list, err := s.propertyRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d properties", len(list))
	return models.FromDomainPropertyList(list), nil
}

// ListOwned возвращает все объекты владельца, включая неактивные, новые первыми
func (s *Service) ListOwned(ctx context.Context, ownerID uuid.UUID) (*models.PropertyListResponse, error) {
	filter := domain.PropertyFilter{
		OwnerID: ptr.Ptr(ownerID),
		Limit:   domain.MaxPropertiesLimit,
	}

	list, err := s.propertyRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListOwned: repository error for owner=%s: %v", ownerID, err)
		return nil, fmt.Errorf("%w: ListOwned - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListOwned: fetched %d properties for owner=%s", len(list), ownerID)
	return models.FromDomainPropertyList(list), nil
}

// Update изменяет объект. Изменять может только владелец.
func (s *Service) Update(ctx context.Context, req *models.UpdatePropertyRequest) (*models.PropertyResponse, error) {
	update, err := buildUpdate(req)
	if err != nil {
		s.logger.Warn("Update: invalid update for property=%s: %v", req.PropertyID, err)
		return nil, err
	}

	// Проверка владельца и запись в одной транзакции
	var updated *domain.Property
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if _, err := s.LookupOwned(ctx, req.PropertyID, req.UserID); err != nil {
			return err
		}

		p, err := s.propertyRepo.Update(ctx, req.PropertyID, update)
		if err != nil {
			if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
				return ErrPropertyNotFound
			}
			s.logger.Error("Update: repository error for property id=%s: %v", req.PropertyID, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		updated = p
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrPropertyNotFound), errors.Is(err, ErrAccessDenied), errors.Is(err, ErrInternal):
			return nil, err
		default:
			s.logger.Error("Update: transaction failed for property id=%s: %v", req.PropertyID, err)
			return nil, fmt.Errorf("%w: Update - transaction error: %v", ErrInternal, err)
		}
	}

	if update.PricePerNight != nil && s.availability != nil {
		// Запись уже сохранена; сбой кеша только логируется
		if err := s.availability.InvalidateProperty(ctx, updated.ID); err != nil {
			s.logger.Error("Update: availability cache invalidation failed for property=%s: %v", updated.ID, err)
		}
	}

	s.logger.Info("Update: property id=%s updated by owner=%s", updated.ID, req.UserID)
	return models.FromDomainProperty(updated), nil
}

// LookupActive возвращает объект для публичных страниц: неактивный объект считается ненайденным
func (s *Service) LookupActive(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	property, err := s.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}
	if !property.IsActive {
		s.logger.Warn("LookupActive: property id=%s is not active", id)
		return nil, ErrPropertyNotFound
	}
	return property, nil
}

// Lookup возвращает объект без учета публикации (владелец, календарь)
func (s *Service) Lookup(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			s.logger.Warn("Lookup: property id=%s not found", id)
			return nil, ErrPropertyNotFound
		}
		s.logger.Error("Lookup: repository error for property id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Lookup - repository error: %v", ErrInternal, err)
	}
	return property, nil
}

// LookupOwned возвращает объект, только если пользователь его владелец
func (s *Service) LookupOwned(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Property, error) {
	property, err := s.Lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	if !property.IsOwnedBy(userID) {
		s.logger.Warn("LookupOwned: user=%s is not the owner of property id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	return property, nil
}

func buildUpdate(req *models.UpdatePropertyRequest) (domain.PropertyUpdate, error) {
	update := domain.PropertyUpdate{
		PricePerNight: req.PricePerNight,
		IsActive:      req.IsActive,
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" || len([]rune(name)) > maxNameLength {
			return update, fmt.Errorf("%w: name must be 1..%d characters", ErrInvalidInput, maxNameLength)
		}
		update.Name = &name
	}
	if req.City != nil {
		city := strings.TrimSpace(*req.City)
		if city == "" {
			return update, fmt.Errorf("%w: city must not be empty", ErrInvalidInput)
		}
		update.City = &city
	}
	if req.PricePerNight != nil && !req.PricePerNight.IsPositive() {
		return update, fmt.Errorf("%w: pricePerNight must be a positive number", ErrInvalidInput)
	}
	if update.IsEmpty() {
		return update, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	return update, nil
}
