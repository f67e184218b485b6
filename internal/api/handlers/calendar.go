package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

var (
	// ErrMissingParam возвращается, когда обязательный параметр пути отсутствует
	ErrMissingParam = errors.New("missing path parameter")

	// ErrIncompleteMonth возвращается, когда передан только year или только month
	ErrIncompleteMonth = errors.New("year and month must be passed together")
)

// DayResponse ячейка календаря
type DayResponse struct {
	Date        types.Date      `json:"date"`
	Status      string          `json:"status"`
	Price       decimal.Decimal `json:"price"`
	HasOverride bool            `json:"hasOverride"`
	IsPast      bool            `json:"isPast"`
	IsToday     bool            `json:"isToday"`
	IsEditable  bool            `json:"isEditable"`
}

// MonthViewResponse сетка месяца. Первые LeadingBlanks элементов Days равны null.
type MonthViewResponse struct {
	Year          int            `json:"year"`
	Month         int            `json:"month"`
	WeekStart     string         `json:"weekStart"`
	LeadingBlanks int            `json:"leadingBlanks"`
	Days          []*DayResponse `json:"days"`
}

// FromMonthView конвертирует domain.MonthView в MonthViewResponse
func FromMonthView(view *domain.MonthView) *MonthViewResponse {
	if view == nil {
		return nil
	}

	resp := &MonthViewResponse{
		Year:          view.Month.Year,
		Month:         int(view.Month.Month),
		WeekStart:     strings.ToLower(view.WeekStart.String()),
		LeadingBlanks: view.LeadingBlanks,
		Days:          make([]*DayResponse, len(view.Days)),
	}
	for i, day := range view.Days {
		if day == nil {
			continue
		}
		resp.Days[i] = &DayResponse{
			Date:        day.Date,
			Status:      string(day.Status),
			Price:       day.EffectivePrice,
			HasOverride: day.HasOverride,
			IsPast:      day.IsPast,
			IsToday:     day.IsToday,
			IsEditable:  day.IsEditable(),
		}
	}
	return resp
}

// PathUUID читает UUID из параметра пути
func PathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return uuid.Nil, ErrMissingParam
	}
	return uuid.Parse(raw)
}

// PathDate читает дату YYYY-MM-DD из параметра пути
func PathDate(r *http.Request, name string) (types.Date, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return types.Date{}, ErrMissingParam
	}
	return types.ParseDate(raw)
}

// QueryYearMonth читает необязательные параметры year и month.
// Без обоих параметров возвращает nil (текущий месяц).
func QueryYearMonth(r *http.Request) (*types.YearMonth, error) {
	q := r.URL.Query()
	rawYear, rawMonth := q.Get("year"), q.Get("month")
	if rawYear == "" && rawMonth == "" {
		return nil, nil
	}
	if rawYear == "" || rawMonth == "" {
		return nil, ErrIncompleteMonth
	}

	year, err := strconv.Atoi(rawYear)
	if err != nil {
		return nil, err
	}
	month, err := strconv.Atoi(rawMonth)
	if err != nil {
		return nil, err
	}

	ym, err := types.NewYearMonth(year, month)
	if err != nil {
		return nil, err
	}
	return &ym, nil
}
