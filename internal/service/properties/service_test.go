package properties

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
	"github.com/MutasemKharma/reva-chalets/internal/service/properties/models"
	"github.com/MutasemKharma/reva-chalets/pkg/logger"
	"github.com/MutasemKharma/reva-chalets/pkg/ptr"
)

var (
	ownerID    = uuid.MustParse("5f1d7c2a-3b4e-4a6f-8c9d-0e1f2a3b4c5d")
	propertyID = uuid.MustParse("0b6a2f0e-8f4c-4d1e-9a57-2c61f3e4d5a6")
	inactiveID = uuid.MustParse("7a7a7a7a-1b1b-4c4c-8d8d-9e9e9e9e9e9e")
)

type fakeRepo struct {
	properties map[uuid.UUID]*domain.Property
	lastFilter domain.PropertyFilter
	updates    int
	err        error
}

type fakeTxManager struct{ calls int }

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type fakeInvalidator struct {
	invalidated []uuid.UUID
	err         error
}

func (i *fakeInvalidator) InvalidateProperty(_ context.Context, id uuid.UUID) error {
	i.invalidated = append(i.invalidated, id)
	return i.err
}

func (r *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Property, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.properties[id]
	if !ok {
		return nil, propertyRepo.ErrPropertyNotFound
	}
	return p, nil
}

func (r *fakeRepo) Update(_ context.Context, id uuid.UUID, update domain.PropertyUpdate) (*domain.Property, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.properties[id]
	if !ok {
		return nil, propertyRepo.ErrPropertyNotFound
	}
	r.updates++
	if update.Name != nil {
		p.Name = *update.Name
	}
	if update.City != nil {
		p.City = *update.City
	}
	if update.PricePerNight != nil {
		p.PricePerNight = *update.PricePerNight
	}
	if update.IsActive != nil {
		p.IsActive = *update.IsActive
	}
	return p, nil
}

func (r *fakeRepo) List(_ context.Context, filter domain.PropertyFilter) ([]*domain.Property, error) {
	r.lastFilter = filter
	if r.err != nil {
		return nil, r.err
	}
	list := make([]*domain.Property, 0, len(r.properties))
	for _, p := range r.properties {
		if filter.ActiveOnly && !p.IsActive {
			continue
		}
		if filter.OwnerID != nil && p.OwnerID != *filter.OwnerID {
			continue
		}
		list = append(list, p)
	}
	return list, nil
}

func newService(opts ...Option) (*Service, *fakeRepo) {
	repo := &fakeRepo{properties: map[uuid.UUID]*domain.Property{
		propertyID: {
			ID:            propertyID,
			OwnerID:       ownerID,
			Name:          "Dead Sea Chalet",
			City:          "Sweimeh",
			PricePerNight: decimal.NewFromInt(80),
			IsActive:      true,
		},
		inactiveID: {
			ID:            inactiveID,
			OwnerID:       ownerID,
			Name:          "Jerash Farm",
			City:          "Jerash",
			PricePerNight: decimal.NewFromInt(60),
		},
	}}
	return NewService(repo, &fakeTxManager{}, logger.Nop(), opts...), repo
}

func TestService_GetByID(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.GetByID(context.Background(), propertyID)
	require.NoError(t, err)
	assert.Equal(t, propertyID.String(), resp.ID)
	assert.Equal(t, ownerID.String(), resp.OwnerID)
	assert.True(t, decimal.NewFromInt(80).Equal(resp.PricePerNight))

	_, err = svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestService_InactiveProperty(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.GetByID(ctx, inactiveID)
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	_, err = svc.LookupActive(ctx, inactiveID)
	assert.ErrorIs(t, err, ErrPropertyNotFound)

	// владелец видит свой неактивный объект
	property, err := svc.LookupOwned(ctx, inactiveID, ownerID)
	require.NoError(t, err)
	assert.False(t, property.IsActive)
}

func TestService_ListOwned(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.ListOwned(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	require.NotNil(t, repo.lastFilter.OwnerID)
	assert.Equal(t, ownerID, *repo.lastFilter.OwnerID)
	assert.False(t, repo.lastFilter.ActiveOnly, "inactive properties are listed for the owner")
}

func TestService_Update(t *testing.T) {
	inv := &fakeInvalidator{}
	svc, repo := newService(WithAvailabilityInvalidator(inv))

	resp, err := svc.Update(context.Background(), &models.UpdatePropertyRequest{
		UserID:        ownerID,
		PropertyID:    inactiveID,
		Name:          ptr.Ptr("  Jerash Olive Farm "),
		PricePerNight: ptr.Ptr(decimal.NewFromInt(75)),
		IsActive:      ptr.Ptr(true),
	})
	require.NoError(t, err)

	assert.Equal(t, "Jerash Olive Farm", resp.Name)
	assert.True(t, resp.IsActive)
	assert.True(t, decimal.NewFromInt(75).Equal(resp.PricePerNight))
	assert.Equal(t, 1, repo.updates)
	assert.Equal(t, []uuid.UUID{inactiveID}, inv.invalidated)
}

func TestService_Update_OnlyActivity(t *testing.T) {
	inv := &fakeInvalidator{}
	svc, _ := newService(WithAvailabilityInvalidator(inv))

	resp, err := svc.Update(context.Background(), &models.UpdatePropertyRequest{
		UserID:     ownerID,
		PropertyID: propertyID,
		IsActive:   ptr.Ptr(false),
	})
	require.NoError(t, err)
	assert.False(t, resp.IsActive)
	assert.Empty(t, inv.invalidated, "default price did not change")
}

func TestService_Update_InvalidationFailureIsLogged(t *testing.T) {
	inv := &fakeInvalidator{err: errors.New("redis down")}
	svc, _ := newService(WithAvailabilityInvalidator(inv))

	_, err := svc.Update(context.Background(), &models.UpdatePropertyRequest{
		UserID:        ownerID,
		PropertyID:    propertyID,
		PricePerNight: ptr.Ptr(decimal.NewFromInt(90)),
	})
	assert.NoError(t, err)
}

func TestService_Update_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.UpdatePropertyRequest
		wantErr error
	}{
		{
			name:    "пустое изменение",
			req:     &models.UpdatePropertyRequest{UserID: ownerID, PropertyID: propertyID},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "пустое имя",
			req:     &models.UpdatePropertyRequest{UserID: ownerID, PropertyID: propertyID, Name: ptr.Ptr("  ")},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "нулевая цена",
			req:     &models.UpdatePropertyRequest{UserID: ownerID, PropertyID: propertyID, PricePerNight: ptr.Ptr(decimal.Zero)},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "чужой объект",
			req:     &models.UpdatePropertyRequest{UserID: uuid.New(), PropertyID: propertyID, IsActive: ptr.Ptr(false)},
			wantErr: ErrAccessDenied,
		},
		{
			name:    "объект не найден",
			req:     &models.UpdatePropertyRequest{UserID: ownerID, PropertyID: uuid.New(), IsActive: ptr.Ptr(false)},
			wantErr: ErrPropertyNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService()

			_, err := svc.Update(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Zero(t, repo.updates)
		})
	}
}

func TestService_LookupOwned(t *testing.T) {
	svc, _ := newService()

	property, err := svc.LookupOwned(context.Background(), propertyID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, propertyID, property.ID)

	_, err = svc.LookupOwned(context.Background(), propertyID, uuid.New())
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.LookupOwned(context.Background(), uuid.New(), ownerID)
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestService_RepositoryFailure(t *testing.T) {
	svc, repo := newService()
	repo.err = errors.New("connection refused")

	_, err := svc.Lookup(context.Background(), propertyID)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.List(context.Background(), &models.ListPropertiesRequest{})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_List(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.List(context.Background(), &models.ListPropertiesRequest{
		City:  ptr.Ptr("Sweimeh"),
		Limit: 1000,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)

	assert.True(t, repo.lastFilter.ActiveOnly)
	assert.Equal(t, uint64(domain.MaxPropertiesLimit), repo.lastFilter.Limit)
	assert.Equal(t, "Sweimeh", *repo.lastFilter.City)
}

func TestService_List_InvalidPriceRange(t *testing.T) {
	svc, _ := newService()

	_, err := svc.List(context.Background(), &models.ListPropertiesRequest{
		MinPrice: ptr.Ptr(decimal.NewFromInt(200)),
		MaxPrice: ptr.Ptr(decimal.NewFromInt(100)),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
