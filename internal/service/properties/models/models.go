package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
)

// Request модели

// ListPropertiesRequest запрос каталога объектов
type ListPropertiesRequest struct {
	City     *string          `json:"city,omitempty"`
	MinPrice *decimal.Decimal `json:"minPrice,omitempty"`
	MaxPrice *decimal.Decimal `json:"maxPrice,omitempty"`
	Limit    uint64           `json:"limit,omitempty"`
}

// UpdatePropertyRequest изменение объекта владельцем. Пустые поля не меняются.
type UpdatePropertyRequest struct {
	UserID        uuid.UUID        `json:"-"`
	PropertyID    uuid.UUID        `json:"-"`
	Name          *string          `json:"name,omitempty"`
	City          *string          `json:"city,omitempty"`
	PricePerNight *decimal.Decimal `json:"pricePerNight,omitempty"`
	IsActive      *bool            `json:"isActive,omitempty"`
}

// Response модели

// PropertyResponse карточка объекта
type PropertyResponse struct {
	ID            string          `json:"id"`
	OwnerID       string          `json:"ownerId"`
	Name          string          `json:"name"`
	City          string          `json:"city"`
	PricePerNight decimal.Decimal `json:"pricePerNight"`
	IsActive      bool            `json:"isActive"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// PropertyListResponse список объектов
type PropertyListResponse struct {
	Properties []PropertyResponse `json:"properties"`
	Total      int                `json:"total"`
}

// FromDomainProperty конвертирует domain.Property в PropertyResponse
func FromDomainProperty(p *domain.Property) *PropertyResponse {
	return &PropertyResponse{
		ID:            p.ID.String(),
		OwnerID:       p.OwnerID.String(),
		Name:          p.Name,
		City:          p.City,
		PricePerNight: p.PricePerNight,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
}

// FromDomainPropertyList конвертирует список объектов
func FromDomainPropertyList(list []*domain.Property) *PropertyListResponse {
	resp := &PropertyListResponse{
		Properties: make([]PropertyResponse, 0, len(list)),
		Total:      len(list),
	}
	for _, p := range list {
		resp.Properties = append(resp.Properties, *FromDomainProperty(p))
	}
	return resp
}
