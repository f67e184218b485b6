package list_properties

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MutasemKharma/reva-chalets/internal/service/properties"
	"github.com/MutasemKharma/reva-chalets/internal/service/properties/models"
	"github.com/MutasemKharma/reva-chalets/pkg/logger"
)

type fakeService struct {
	req *models.ListPropertiesRequest
	err error
}

func (f *fakeService) List(_ context.Context, req *models.ListPropertiesRequest) (*models.PropertyListResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.PropertyListResponse{Properties: []models.PropertyResponse{}, Total: 0}, nil
}

func serve(svc PropertyService, query string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/properties?"+query, nil)
	rec := httptest.NewRecorder()
	NewHandler(svc, logger.Nop()).Handle(rec, req)
	return rec
}

func TestHandler_Handle_Filters(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "city=%20Aqaba%20&minPrice=50&maxPrice=120.5&limit=10")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.req.City)
	assert.Equal(t, "Aqaba", *svc.req.City)
	assert.True(t, decimal.NewFromInt(50).Equal(*svc.req.MinPrice))
	assert.True(t, decimal.RequireFromString("120.5").Equal(*svc.req.MaxPrice))
	assert.Equal(t, uint64(10), svc.req.Limit)
	assert.JSONEq(t, `{"properties":[],"total":0}`, rec.Body.String())
}

func TestHandler_Handle_NoFilters(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, svc.req.City)
	assert.Nil(t, svc.req.MinPrice)
	assert.Zero(t, svc.req.Limit)
}

func TestHandler_Handle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "minPrice=cheap").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, "limit=-1").Code)
	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{err: properties.ErrInvalidInput}, "minPrice=10&maxPrice=5").Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeService{err: properties.ErrInternal}, "").Code)
}
