package set_day_override

import (
	"context"

	setDayOverride "github.com/MutasemKharma/reva-chalets/internal/usecase/set_day_override"
)

type SetDayOverrideUseCase interface {
	Execute(ctx context.Context, req *setDayOverride.Request) (*setDayOverride.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
