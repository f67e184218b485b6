package availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/dbmetrics"
	"github.com/MutasemKharma/reva-chalets/pkg/psqlbuilder"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// uuid.UUID передается строкой: squirrel считает массивы списками значений для IN
const (
	tableName = "property_availability"

	// Коды ошибок PostgreSQL
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"

	upsertSuffix = "ON CONFLICT (property_id, date) DO UPDATE SET " +
		"status = EXCLUDED.status, price_override = EXCLUDED.price_override, updated_at = EXCLUDED.updated_at"
)

// Repository репозиторий доступности по дням (таблица property_availability).
// Одна запись на пару (property_id, date); отсутствие записи означает
// "свободно по цене по умолчанию".
type Repository struct {
	db        DBExecutor
	txManager TransactionManager
	coalesce  bool
}

// Option настройка репозитория
type Option func(r *Repository)

// WithDefaultCoalescing включает свертку записей, совпадающих со значениями по умолчанию:
// цена, равная цене объекта, хранится как NULL, а записи {available, NULL} удаляются.
// Обе операции выполняются в одной транзакции.
func WithDefaultCoalescing(tm TransactionManager) Option {
	return func(r *Repository) {
		r.coalesce = true
		r.txManager = tm
	}
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor, opts ...Option) *Repository {
	r := &Repository{db: db}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// GetRange возвращает записи за период [start, end] включительно, упорядоченные по дате
func (r *Repository) GetRange(ctx context.Context, propertyID uuid.UUID, start, end types.Date) ([]domain.DayAvailabilityRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildGetRangeQuery(propertyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRange - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]domain.DayAvailabilityRecord, 0)
	for rows.Next() {
		var (
			rec      domain.DayAvailabilityRecord
			status   string
			override decimal.NullDecimal
		)
		if err := rows.Scan(&rec.PropertyID, &rec.Date, &status, &override); err != nil {
			return nil, fmt.Errorf("%w: GetRange - scan: %v", ErrScanRow, err)
		}
		rec.Status = domain.DayStatus(status)
		if override.Valid {
			price := override.Decimal
			rec.PriceOverride = &price
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRange - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// SetDay сохраняет запись дня (upsert по (property_id, date))
func (r *Repository) SetDay(ctx context.Context, record domain.DayAvailabilityRecord) error {
	if !r.coalesce {
		query, args, err := buildUpsertQuery(record)
		if err != nil {
			return fmt.Errorf("%w: SetDay - build upsert query: %v", ErrBuildQuery, err)
		}
		return r.exec(ctx, "SetDay", query, args)
	}

	// Сброс к значениям по умолчанию: записи быть не должно
	if record.IsDefault() {
		return r.deleteDay(ctx, record.PropertyID, record.Date)
	}

	return r.inTx(ctx, func(ctx context.Context) error {
		query, args, err := buildCoalescingUpsertQuery(record)
		if err != nil {
			return fmt.Errorf("%w: SetDay - build coalescing upsert: %v", ErrBuildQuery, err)
		}

		executor := dbmetrics.GetExecutor(ctx, r.db)
		result, err := executor.ExecContext(ctx, query, args...)
		if err != nil {
			return mapExecError("SetDay", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: SetDay - get rows affected: %v", ErrExecQuery, err)
		}
		// INSERT ... SELECT FROM properties ничего не вставляет для несуществующего объекта
		if affected == 0 {
			return ErrPropertyNotFound
		}

		if record.Status != domain.DayStatusAvailable {
			return nil
		}

		query, args, err = buildDeleteDefaultQuery(record.PropertyID, record.Date)
		if err != nil {
			return fmt.Errorf("%w: SetDay - build cleanup query: %v", ErrBuildQuery, err)
		}
		return r.exec(ctx, "SetDay cleanup", query, args)
	})
}

func (r *Repository) deleteDay(ctx context.Context, propertyID uuid.UUID, date types.Date) error {
	query, args, err := psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"property_id": propertyID.String(), "date": date}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: deleteDay - build delete query: %v", ErrBuildQuery, err)
	}
	return r.exec(ctx, "deleteDay", query, args)
}

func (r *Repository) exec(ctx context.Context, method, query string, args []interface{}) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return mapExecError(method, err)
	}
	return nil
}

func (r *Repository) inTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if r.txManager == nil {
		return fn(ctx)
	}
	return r.txManager.Do(ctx, fn)
}

func buildGetRangeQuery(propertyID uuid.UUID, start, end types.Date) (string, []interface{}, error) {
	return psqlbuilder.Select("property_id", "date", "status", "price_override").
		From(tableName).
		Where(squirrel.Eq{"property_id": propertyID.String()}).
		Where(squirrel.GtOrEq{"date": start}).
		Where(squirrel.LtOrEq{"date": end}).
		OrderBy("date ASC").
		ToSql()
}

func buildUpsertQuery(record domain.DayAvailabilityRecord) (string, []interface{}, error) {
	return psqlbuilder.Insert(tableName).
		Columns("property_id", "date", "status", "price_override", "updated_at").
		Values(record.PropertyID.String(), record.Date, string(record.Status), nullDecimal(record.PriceOverride), squirrel.Expr("NOW()")).
		Suffix(upsertSuffix).
		ToSql()
}

// buildCoalescingUpsertQuery цена, равная цене объекта, сохраняется как NULL
func buildCoalescingUpsertQuery(record domain.DayAvailabilityRecord) (string, []interface{}, error) {
	selectQuery := psqlbuilder.Select().
		Column("p.id").
		Column("?::date", record.Date).
		Column("?", string(record.Status)).
		Column("NULLIF(?::numeric, p.price_per_night)", nullDecimal(record.PriceOverride)).
		Column("NOW()").
		From("properties p").
		Where(squirrel.Eq{"p.id": record.PropertyID.String()})

	return psqlbuilder.Insert(tableName).
		Columns("property_id", "date", "status", "price_override", "updated_at").
		Select(selectQuery).
		Suffix(upsertSuffix).
		ToSql()
}

func buildDeleteDefaultQuery(propertyID uuid.UUID, date types.Date) (string, []interface{}, error) {
	return psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{
			"property_id":    propertyID.String(),
			"date":           date,
			"status":         string(domain.DayStatusAvailable),
			"price_override": nil,
		}).
		ToSql()
}

func nullDecimal(p *decimal.Decimal) decimal.NullDecimal {
	if p == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *p, Valid: true}
}

func mapExecError(method string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqForeignKeyViolation:
			return fmt.Errorf("%w: %s: %v", ErrPropertyNotFound, method, err)
		case pqCheckViolation:
			return fmt.Errorf("%w: %s: %v", ErrConstraint, method, err)
		}
	}
	return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, method, err)
}
