package availability

import (
	"context"

	"github.com/MutasemKharma/reva-chalets/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor
type TxExecutor = dbmetrics.TxExecutor

// TransactionManager выполняет несколько запросов атомарно
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
