package calendar_session

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/api/handlers"
	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/internal/service/calendarsessions"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

const (
	msgLoadFailed   = "تعذر تحميل التقويم، اضغط إعادة المحاولة"
	msgSaveFailed   = "تعذر حفظ التغييرات، حاول مرة أخرى"
	msgSaveRejected = "لا يمكن حفظ هذا اليوم: تحقق من الحالة والسعر"
)

// StartSessionRequest HTTP request model. Без year и month открывается текущий месяц.
type StartSessionRequest struct {
	Year  int `json:"year,omitempty"`
	Month int `json:"month,omitempty"`
}

// NavigateRequest HTTP request model
type NavigateRequest struct {
	Direction string `json:"direction"` // prev, next
}

// OpenEditRequest HTTP request model
type OpenEditRequest struct {
	Date types.Date `json:"date"`
}

// SubmitEditRequest HTTP request model
type SubmitEditRequest struct {
	Status        string           `json:"status"`
	PriceOverride *decimal.Decimal `json:"priceOverride,omitempty"`
}

// EditResponse открытое редактирование дня
type EditResponse struct {
	Date          types.Date       `json:"date"`
	Status        string           `json:"status"`
	PriceOverride *decimal.Decimal `json:"priceOverride"`
}

// SessionResponse состояние сессии календаря
type SessionResponse struct {
	SessionID  string                      `json:"sessionId"`
	PropertyID string                      `json:"propertyId"`
	State      string                      `json:"state"`
	Year       int                         `json:"year"`
	Month      int                         `json:"month"`
	Calendar   *handlers.MonthViewResponse `json:"calendar"`
	LoadError  *string                     `json:"loadError"`
	Edit       *EditResponse               `json:"edit"`
	EditError  *string                     `json:"editError"`
	Submitting bool                        `json:"submitting"`
}

// month возвращает nil, если месяц не передан
func (r *StartSessionRequest) month() (*types.YearMonth, error) {
	if r.Year == 0 && r.Month == 0 {
		return nil, nil
	}
	ym, err := types.NewYearMonth(r.Year, r.Month)
	if err != nil {
		return nil, err
	}
	return &ym, nil
}

// FromView конвертирует состояние сессии в HTTP ответ
func FromView(v *calendarsessions.View) *SessionResponse {
	resp := &SessionResponse{
		SessionID:  v.SessionID.String(),
		PropertyID: v.PropertyID.String(),
		State:      v.State.String(),
		Year:       v.Month.Year,
		Month:      int(v.Month.Month),
		Calendar:   handlers.FromMonthView(v.View),
		Submitting: v.Submitting,
	}

	if v.LoadErr != nil {
		msg := msgLoadFailed
		resp.LoadError = &msg
	}

	if v.Edit != nil {
		resp.Edit = &EditResponse{
			Date:          v.Edit.Date,
			Status:        string(v.Edit.ProposedStatus),
			PriceOverride: v.Edit.ProposedPriceOverride,
		}
	}

	if v.EditErr != nil {
		msg := msgSaveFailed
		var validationErr *domain.ValidationError
		if errors.As(v.EditErr, &validationErr) {
			msg = msgSaveRejected
		}
		resp.EditError = &msg
	}

	return resp
}
