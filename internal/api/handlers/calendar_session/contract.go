package calendar_session

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/internal/service/calendarsessions"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

type SessionService interface {
	Start(ctx context.Context, userID, propertyID uuid.UUID, month *types.YearMonth) (*calendarsessions.View, error)
	Get(userID, sessionID uuid.UUID) (*calendarsessions.View, error)
	Reload(ctx context.Context, userID, sessionID uuid.UUID) (*calendarsessions.View, error)
	Navigate(ctx context.Context, userID, sessionID uuid.UUID, direction string) (*calendarsessions.View, error)
	OpenEdit(userID, sessionID uuid.UUID, date types.Date) (*calendarsessions.View, error)
	SubmitEdit(ctx context.Context, userID, sessionID uuid.UUID, status domain.DayStatus, priceOverride *decimal.Decimal) (*calendarsessions.View, error)
	CancelEdit(userID, sessionID uuid.UUID) (*calendarsessions.View, error)
	Close(userID, sessionID uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
