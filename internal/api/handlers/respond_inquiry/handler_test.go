package respond_inquiry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MutasemKharma/reva-chalets/internal/api/middleware"
	"github.com/MutasemKharma/reva-chalets/internal/service/inquiries"
	"github.com/MutasemKharma/reva-chalets/internal/service/inquiries/models"
	"github.com/MutasemKharma/reva-chalets/pkg/logger"
)

var (
	ownerID   = uuid.MustParse("5f1d7c2a-3b4e-4a6f-8c9d-0e1f2a3b4c5d")
	inquiryID = uuid.MustParse("7d2e4f6a-1b3c-4d5e-8f9a-0b1c2d3e4f5a")
)

type fakeService struct {
	id  uuid.UUID
	req *models.RespondInquiryRequest
	err error
}

func (f *fakeService) Respond(_ context.Context, id uuid.UUID, req *models.RespondInquiryRequest) (*models.InquiryResponse, error) {
	f.id, f.req = id, req
	if f.err != nil {
		return nil, f.err
	}
	return &models.InquiryResponse{ID: id.String(), Status: req.Status, OwnerResponse: &req.Response}, nil
}

func serve(svc InquiryService, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/inquiries/{inquiryId}/respond", NewHandler(svc, logger.Nop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, "/inquiries/"+inquiryID.String()+"/respond", strings.NewReader(body))
	req.Header.Set(middleware.UserIDHeader, ownerID.String())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, `{"status":"confirmed","response":"أهلاً بكم"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, inquiryID, svc.id)
	assert.Equal(t, ownerID, svc.req.UserID)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"некорректный ввод", inquiries.ErrInvalidInput, http.StatusBadRequest},
		{"запрос не найден", inquiries.ErrInquiryNotFound, http.StatusNotFound},
		{"не владелец", inquiries.ErrAccessDenied, http.StatusForbidden},
		{"внутренняя ошибка", inquiries.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&fakeService{err: tt.err}, `{"status":"declined","response":"sorry"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
