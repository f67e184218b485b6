package inquiries

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	inquiryRepo "github.com/MutasemKharma/reva-chalets/internal/infra/storage/inquiry"
	propertyRepo "github.com/MutasemKharma/reva-chalets/internal/infra/storage/property"
	"github.com/MutasemKharma/reva-chalets/internal/integrations/formrelay"
	"github.com/MutasemKharma/reva-chalets/internal/service/inquiries/models"
	"github.com/MutasemKharma/reva-chalets/pkg/metrics"
	"github.com/MutasemKharma/reva-chalets/pkg/ptr"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// Результат пересылки для метрики inquiries_created_total
const (
	relayOK       = "ok"
	relayFailed   = "failed"
	relayDisabled = "disabled"
)

// Option дополнительные зависимости сервиса
type Option func(s *Service)

// WithRelay включает пересылку копии запроса
func WithRelay(relay RelayClient) Option {
	return func(s *Service) { s.relay = relay }
}

// WithMetrics включает счетчики Prometheus
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// Service сервис запросов гостей
type Service struct {
	inquiryRepo  InquiryRepository
	propertyRepo PropertyRepository
	relay        RelayClient
	clock        Clock
	metrics      *metrics.Metrics
	validate     *validator.Validate
	logger       Logger
}

// NewService создает новый экземпляр сервиса запросов
func NewService(
	inquiryRepo InquiryRepository,
	propertyRepo PropertyRepository,
	clock Clock,
	logger Logger,
	opts ...Option,
) *Service {
	s := &Service{
		inquiryRepo:  inquiryRepo,
		propertyRepo: propertyRepo,
		clock:        clock,
		validate:     newValidator(),
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create сохраняет запрос гостя со статусом pending и пересылает копию.
// Ошибка пересылки только логируется.
func (s *Service) Create(ctx context.Context, req *models.CreateInquiryRequest) (*models.InquiryResponse, error) {
	if req.Guests == 0 {
		req.Guests = domain.MinInquiryGuests
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)

	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("Create: invalid inquiry for property=%s: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, describeValidation(err))
	}

	checkIn, checkOut, err := s.parseStay(req.CheckIn, req.CheckOut)
	if err != nil {
		s.logger.Warn("Create: invalid stay for property=%s: %v", req.PropertyID, err)
		return nil, err
	}

	property, err := s.propertyRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		if errors.Is(err, propertyRepo.ErrPropertyNotFound) {
			return nil, ErrPropertyNotFound
		}
		s.logger.Error("Create: property repository error for property=%s: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: Create - property repository error: %v", ErrInternal, err)
	}
	if !property.IsActive {
		return nil, ErrPropertyInactive
	}

	inquiry := &domain.Inquiry{
		PropertyID:  property.ID,
		OwnerID:     property.OwnerID,
		GuestID:     req.GuestID,
		GuestName:   req.Name,
		GuestEmail:  req.Email,
		GuestPhone:  req.Phone,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		GuestsCount: req.Guests,
		Status:      domain.InquiryStatusPending,
	}
	if req.Message != "" {
		message := req.Message
		inquiry.Message = &message
	}

	created, err := s.inquiryRepo.Create(ctx, inquiry)
	if err != nil {
		if errors.Is(err, inquiryRepo.ErrPropertyNotFound) {
			return nil, ErrPropertyNotFound
		}
		s.logger.Error("Create: repository error for property=%s: %v", req.PropertyID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	total := created.EstimatedTotal(property.PricePerNight)
	s.relaySubmission(ctx, property, created, total)

	s.logger.Info("Create: inquiry id=%s for property=%s, %d nights", created.ID, created.PropertyID, created.Nights())

	resp := models.FromDomainInquiry(created)
	resp.EstimatedTotal = &total
	return resp, nil
}

// ListForOwner возвращает запросы владельца, новые первыми
func (s *Service) ListForOwner(ctx context.Context, req *models.ListOwnerInquiriesRequest) (*models.InquiryListResponse, error) {
	filter := domain.InquiryFilter{
		OwnerID: req.OwnerID,
		Limit:   domain.OwnerInquiriesLimit,
	}

	if req.Status != nil {
		status, err := models.ToDomainInquiryStatus(*req.Status)
		if err != nil {
			s.logger.Warn("ListForOwner: invalid status=%s for owner=%s", *req.Status, req.OwnerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	list, err := s.inquiryRepo.ListByOwner(ctx, filter)
	if err != nil {
		s.logger.Error("ListForOwner: repository error for owner=%s: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: ListForOwner - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForOwner: fetched %d inquiries for owner=%s", len(list), req.OwnerID)
	return models.FromDomainInquiryList(list), nil
}

// Respond сохраняет ответ владельца. Отвечать может только владелец объекта.
func (s *Service) Respond(ctx context.Context, inquiryID uuid.UUID, req *models.RespondInquiryRequest) (*models.InquiryResponse, error) {
	req.Response = strings.TrimSpace(req.Response)
	if err := s.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, describeValidation(err))
	}

	inquiry, err := s.inquiryRepo.GetByID(ctx, inquiryID)
	if err != nil {
		if errors.Is(err, inquiryRepo.ErrInquiryNotFound) {
			return nil, ErrInquiryNotFound
		}
		s.logger.Error("Respond: repository error for inquiry id=%s: %v", inquiryID, err)
		return nil, fmt.Errorf("%w: Respond - repository error: %v", ErrInternal, err)
	}

	if inquiry.OwnerID != req.UserID {
		s.logger.Warn("Respond: access denied for user=%s to inquiry id=%s", req.UserID, inquiryID)
		return nil, ErrAccessDenied
	}

	updated, err := s.inquiryRepo.Respond(ctx, inquiryID, domain.InquiryStatus(req.Status), req.Response)
	if err != nil {
		if errors.Is(err, inquiryRepo.ErrInquiryNotFound) {
			return nil, ErrInquiryNotFound
		}
		s.logger.Error("Respond: repository error for inquiry id=%s: %v", inquiryID, err)
		return nil, fmt.Errorf("%w: Respond - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Respond: inquiry id=%s moved to %s", inquiryID, updated.Status)
	return models.FromDomainInquiry(updated), nil
}

func (s *Service) parseStay(rawCheckIn, rawCheckOut string) (types.Date, types.Date, error) {
	checkIn, err := types.ParseDate(rawCheckIn)
	if err != nil {
		return types.Date{}, types.Date{}, fmt.Errorf("%w: checkIn: %v", ErrInvalidInput, err)
	}
	checkOut, err := types.ParseDate(rawCheckOut)
	if err != nil {
		return types.Date{}, types.Date{}, fmt.Errorf("%w: checkOut: %v", ErrInvalidInput, err)
	}

	if !checkOut.After(checkIn) {
		return types.Date{}, types.Date{}, fmt.Errorf("%w: checkOut must be after checkIn", ErrInvalidInput)
	}
	if checkIn.Before(s.clock.Today()) {
		return types.Date{}, types.Date{}, fmt.Errorf("%w: checkIn is in the past", ErrInvalidInput)
	}

	return checkIn, checkOut, nil
}

func (s *Service) relaySubmission(ctx context.Context, property *domain.Property, inquiry *domain.Inquiry, total decimal.Decimal) {
	outcome := relayDisabled
	if s.relay != nil {
		submission := formrelay.Submission{
			PropertyID:     property.ID.String(),
			PropertyName:   property.Name,
			GuestName:      inquiry.GuestName,
			GuestEmail:     inquiry.GuestEmail,
			GuestPhone:     inquiry.GuestPhone,
			CheckIn:        inquiry.CheckIn,
			CheckOut:       inquiry.CheckOut,
			Guests:         inquiry.GuestsCount,
			Message:        ptr.Deref(inquiry.Message, ""),
			Nights:         inquiry.Nights(),
			EstimatedTotal: total,
		}

		outcome = relayOK
		if err := s.relay.Send(ctx, submission); err != nil {
			outcome = relayFailed
			s.logger.Warn("Create: relay failed for inquiry id=%s: %v", inquiry.ID, err)
		}
	}

	if s.metrics != nil {
		s.metrics.InquiriesCreatedTotal.WithLabelValues(outcome).Inc()
	}
}

// describeValidation сводит ошибки валидатора к списку "поле: правило"
func describeValidation(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(parts, ", ")
}
