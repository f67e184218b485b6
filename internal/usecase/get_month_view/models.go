package get_month_view

import (
	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// Request модель запроса месячного календаря
type Request struct {
	PropertyID uuid.UUID        // ID объекта
	Month      *types.YearMonth // Месяц; nil означает текущий
}

// Response модель ответа с сеткой месяца
type Response struct {
	Property *domain.Property  // Объект (цена по умолчанию, владелец)
	View     *domain.MonthView // Сетка месяца после слияния с записями
}
