package set_day_override

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// Request модель запроса на изменение одного дня
type Request struct {
	UserID        uuid.UUID        // ID пользователя (должен быть владельцем объекта)
	PropertyID    uuid.UUID        // ID объекта
	Date          types.Date       // Дата
	Status        string           // available, booked, maintenance, blocked
	PriceOverride *decimal.Decimal // Цена за ночь; nil означает цену объекта
}

// Response модель ответа с сохраненным днем
type Response struct {
	PropertyID     uuid.UUID
	Date           types.Date
	Status         domain.DayStatus
	PriceOverride  *decimal.Decimal
	EffectivePrice decimal.Decimal // Цена с учетом цены объекта по умолчанию
}
