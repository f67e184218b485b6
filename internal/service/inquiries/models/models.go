package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid inquiry status")
)

// Request модели

// CreateInquiryRequest запрос гостя на проживание
type CreateInquiryRequest struct {
	PropertyID uuid.UUID  `json:"-"`
	GuestID    *uuid.UUID `json:"-"` // Заполняется, если гость авторизован
	Name       string     `json:"name" validate:"required,max=120"`
	Email      string     `json:"email" validate:"required,email,max=254"`
	Phone      string     `json:"phone" validate:"required,max=32"`
	CheckIn    string     `json:"checkIn" validate:"required,datetime=2006-01-02"`
	CheckOut   string     `json:"checkOut" validate:"required,datetime=2006-01-02"`
	Guests     int        `json:"guests" validate:"inquiry_guests"`
	Message    string     `json:"message" validate:"inquiry_message"`
}

// ListOwnerInquiriesRequest запрос списка запросов владельца
type ListOwnerInquiriesRequest struct {
	OwnerID uuid.UUID `json:"-"`
	Status  *string   `json:"status,omitempty"`
}

// RespondInquiryRequest ответ владельца на запрос
type RespondInquiryRequest struct {
	UserID   uuid.UUID `json:"-"`
	Status   string    `json:"status" validate:"required,response_status"`
	Response string    `json:"response" validate:"required,owner_response"`
}

// Response модели

// InquiryResponse запрос гостя
type InquiryResponse struct {
	ID             string           `json:"id"`
	PropertyID     string           `json:"propertyId"`
	GuestName      string           `json:"guestName"`
	GuestEmail     string           `json:"guestEmail"`
	GuestPhone     string           `json:"guestPhone"`
	Message        *string          `json:"message,omitempty"`
	CheckIn        types.Date       `json:"checkIn"`
	CheckOut       types.Date       `json:"checkOut"`
	Nights         int              `json:"nights"`
	GuestsCount    int              `json:"guestsCount"`
	EstimatedTotal *decimal.Decimal `json:"estimatedTotal,omitempty"`
	Status         string           `json:"status"`
	OwnerResponse  *string          `json:"ownerResponse,omitempty"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
}

// InquiryListResponse список запросов
type InquiryListResponse struct {
	Inquiries []InquiryResponse `json:"inquiries"`
	Total     int               `json:"total"`
}

// FromDomainInquiry конвертирует domain.Inquiry в InquiryResponse
func FromDomainInquiry(i *domain.Inquiry) *InquiryResponse {
	return &InquiryResponse{
		ID:            i.ID.String(),
		PropertyID:    i.PropertyID.String(),
		GuestName:     i.GuestName,
		GuestEmail:    i.GuestEmail,
		GuestPhone:    i.GuestPhone,
		Message:       i.Message,
		CheckIn:       i.CheckIn,
		CheckOut:      i.CheckOut,
		Nights:        i.Nights(),
		GuestsCount:   i.GuestsCount,
		Status:        string(i.Status),
		OwnerResponse: i.OwnerResponse,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

// FromDomainInquiryList конвертирует список запросов
func FromDomainInquiryList(list []*domain.Inquiry) *InquiryListResponse {
	resp := &InquiryListResponse{
		Inquiries: make([]InquiryResponse, 0, len(list)),
		Total:     len(list),
	}
	for _, i := range list {
		resp.Inquiries = append(resp.Inquiries, *FromDomainInquiry(i))
	}
	return resp
}

// ToDomainInquiryStatus конвертирует строку в статус запроса
func ToDomainInquiryStatus(status string) (domain.InquiryStatus, error) {
	s := domain.InquiryStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
