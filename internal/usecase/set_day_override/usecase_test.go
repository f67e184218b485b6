package set_day_override

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	propertyRepo "github.com/MutasemKharma/reva-chalets/internal/infra/storage/property"
	"github.com/MutasemKharma/reva-chalets/pkg/logger"
	"github.com/MutasemKharma/reva-chalets/pkg/ptr"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

var (
	ownerID    = uuid.MustParse("5f1d7c2a-3b4e-4a6f-8c9d-0e1f2a3b4c5d")
	propertyID = uuid.MustParse("0b6a2f0e-8f4c-4d1e-9a57-2c61f3e4d5a6")
)

type fakePropertyRepo struct{}

func (fakePropertyRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Property, error) {
	if id != propertyID {
		return nil, propertyRepo.ErrPropertyNotFound
	}
	return &domain.Property{ID: propertyID, OwnerID: ownerID, PricePerNight: decimal.NewFromInt(80)}, nil
}

type fakeStore struct {
	calls int
	err   error
	last  domain.DayAvailabilityRecord
}

func (s *fakeStore) SetDayOverride(_ context.Context, id uuid.UUID, date types.Date, status domain.DayStatus, price *decimal.Decimal) error {
	s.calls++
	s.last = domain.DayAvailabilityRecord{PropertyID: id, Date: date, Status: status, PriceOverride: price}
	return s.err
}

func validRequest() *Request {
	return &Request{
		UserID:     ownerID,
		PropertyID: propertyID,
		Date:       types.MustParseDate("2025-03-21"),
		Status:     "booked",
	}
}

func TestUseCase_Execute(t *testing.T) {
	store := &fakeStore{}
	uc := NewUseCase(fakePropertyRepo{}, store, logger.Nop())

	t.Run("без цены берется цена объекта", func(t *testing.T) {
		resp, err := uc.Execute(context.Background(), validRequest())
		require.NoError(t, err)

		assert.Equal(t, domain.DayStatusBooked, resp.Status)
		assert.Nil(t, resp.PriceOverride)
		assert.True(t, decimal.NewFromInt(80).Equal(resp.EffectivePrice))
		assert.Equal(t, propertyID, store.last.PropertyID)
	})

	t.Run("своя цена", func(t *testing.T) {
		req := validRequest()
		req.Status = "available"
		req.PriceOverride = ptr.Ptr(decimal.RequireFromString("95.50"))

		resp, err := uc.Execute(context.Background(), req)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("95.5").Equal(resp.EffectivePrice))
		require.NotNil(t, store.last.PriceOverride)
	})
}

func TestUseCase_Execute_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"неизвестный статус", func(r *Request) { r.Status = "closed" }, ErrInvalidInput},
		{"нулевая цена", func(r *Request) { r.PriceOverride = ptr.Ptr(decimal.Zero) }, ErrInvalidInput},
		{"отрицательная цена", func(r *Request) { r.PriceOverride = ptr.Ptr(decimal.NewFromInt(-5)) }, ErrInvalidInput},
		{"нет даты", func(r *Request) { r.Date = types.Date{} }, ErrInvalidInput},
		{"чужой объект", func(r *Request) { r.UserID = uuid.New() }, ErrAccessDenied},
		{"объект не найден", func(r *Request) { r.PropertyID = uuid.New() }, ErrPropertyNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			uc := NewUseCase(fakePropertyRepo{}, store, logger.Nop())

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, store.calls)
		})
	}
}

func TestUseCase_Execute_StoreErrors(t *testing.T) {
	tests := []struct {
		name     string
		storeErr error
		wantErr  error
	}{
		{
			name:     "прошедшая дата",
			storeErr: &domain.ValidationError{Field: "date", Reason: "past dates cannot be edited"},
			wantErr:  ErrInvalidInput,
		},
		{
			name:     "ошибка сохранения",
			storeErr: &domain.PersistError{PropertyID: propertyID, Cause: errors.New("timeout")},
			wantErr:  ErrPersistFailed,
		},
		{
			name:     "прочая ошибка",
			storeErr: errors.New("boom"),
			wantErr:  ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewUseCase(fakePropertyRepo{}, &fakeStore{err: tt.storeErr}, logger.Nop())

			_, err := uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
