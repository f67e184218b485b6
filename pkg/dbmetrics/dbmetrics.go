package dbmetrics

import (
	"context"
	"database/sql"
	"time"

	"github.com/MutasemKharma/reva-chalets/pkg/metrics"
)

// DBExecutor общий интерфейс для *sql.DB, *sql.Tx и обёрток
type DBExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// TxExecutor транзакция, через которую можно выполнять запросы
type TxExecutor interface {
	DBExecutor
	Commit() error
	Rollback() error
}

type txKey struct{}

// WithTx кладёт транзакцию в контекст
func WithTx(ctx context.Context, tx TxExecutor) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

// GetExecutor возвращает транзакцию из контекста, если она есть, иначе db
func GetExecutor(ctx context.Context, db DBExecutor) DBExecutor {
	if tx, ok := ctx.Value(txKey{}).(TxExecutor); ok && tx != nil {
		return tx
	}
	return db
}

// IsInTransaction сообщает, выполняется ли запрос внутри транзакции
func IsInTransaction(ctx context.Context) bool {
	tx, ok := ctx.Value(txKey{}).(TxExecutor)
	return ok && tx != nil
}

// SqlTxWrapper адаптирует *sql.Tx к TxExecutor
type SqlTxWrapper struct {
	*sql.Tx
}

// DB обёртка над *sql.DB, периодически публикующая статистику пула соединений
type DB struct {
	*sql.DB
	metrics     *metrics.Metrics
	serviceName string
}

// DefaultCollectInterval период сбора статистики пула
const DefaultCollectInterval = 15 * time.Second

// New оборачивает db без сбора статистики
func New(db *sql.DB) *DB {
	return &DB{DB: db}
}

// Wrap оборачивает db и запускает сбор статистики до закрытия stopCh
func Wrap(db *sql.DB, m *metrics.Metrics, serviceName string, interval time.Duration, stopCh <-chan struct{}) *DB {
	wrapped := &DB{DB: db, metrics: m, serviceName: serviceName}
	go wrapped.collect(interval, stopCh)
	return wrapped
}

// WrapWithDefault Wrap с интервалом по умолчанию
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, serviceName string, stopCh <-chan struct{}) *DB {
	return Wrap(db, m, serviceName, DefaultCollectInterval, stopCh)
}

// BeginTx начинает транзакцию
func (d *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (TxExecutor, error) {
	tx, err := d.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &SqlTxWrapper{Tx: tx}, nil
}

// CollectOnce публикует текущую статистику пула
func (d *DB) CollectOnce() {
	if d.metrics == nil {
		return
	}
	stats := d.DB.Stats()
	d.metrics.DBOpenConnections.WithLabelValues(d.serviceName).Set(float64(stats.OpenConnections))
	d.metrics.DBInUseConnections.WithLabelValues(d.serviceName).Set(float64(stats.InUse))
	d.metrics.DBIdleConnections.WithLabelValues(d.serviceName).Set(float64(stats.Idle))
	d.metrics.DBWaitCount.WithLabelValues(d.serviceName).Set(float64(stats.WaitCount))
	d.metrics.DBWaitDuration.WithLabelValues(d.serviceName).Set(stats.WaitDuration.Seconds())
}

func (d *DB) collect(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.CollectOnce()
	for {
		select {
		case <-ticker.C:
			d.CollectOnce()
		case <-stopCh:
			return
		}
	}
}
