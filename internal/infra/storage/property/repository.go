package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/dbmetrics"
	"github.com/MutasemKharma/reva-chalets/pkg/psqlbuilder"
)

const tableName = "properties"

var selectColumns = []string{
	"id",
	"owner_id",
	"name",
	"city",
	"price_per_night",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository репозиторий объектов (шале и фермы). Календарь только читает их,
// изменяет их владелец через Update.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория объектов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает объект по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildGetByIDQuery(id)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	property, err := scanProperty(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan property: %v", ErrScanRow, err)
	}

	return property, nil
}

// List возвращает объекты по фильтру, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.PropertyFilter) ([]*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	properties := make([]*domain.Property, 0)
	for rows.Next() {
		property, err := scanProperty(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan property: %v", ErrScanRow, err)
		}
		properties = append(properties, property)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return properties, nil
}

// Update частично обновляет объект и возвращает его новое состояние
func (r *Repository) Update(ctx context.Context, id uuid.UUID, update domain.PropertyUpdate) (*domain.Property, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildUpdateQuery(id, update)
	if err != nil {
		return nil, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	property, err := scanProperty(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Update - scan property: %v", ErrExecQuery, err)
	}

	return property, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProperty(row rowScanner) (*domain.Property, error) {
	var property domain.Property
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&property.ID,
		&property.OwnerID,
		&property.Name,
		&property.City,
		&property.PricePerNight,
		&property.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	property.CreatedAt = createdAt.Time
	property.UpdatedAt = updatedAt.Time

	return &property, nil
}

func buildGetByIDQuery(id uuid.UUID) (string, []interface{}, error) {
	return psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
}

func buildListQuery(filter domain.PropertyFilter) (string, []interface{}, error) {
	builder := psqlbuilder.Select(selectColumns...).
		From(tableName)

	if filter.ActiveOnly {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}
	if filter.OwnerID != nil {
		builder = builder.Where(squirrel.Eq{"owner_id": filter.OwnerID.String()})
	}
	if filter.City != nil {
		builder = builder.Where(squirrel.ILike{"city": *filter.City})
	}
	if filter.MinPrice != nil {
		builder = builder.Where(squirrel.GtOrEq{"price_per_night": *filter.MinPrice})
	}
	if filter.MaxPrice != nil {
		builder = builder.Where(squirrel.LtOrEq{"price_per_night": *filter.MaxPrice})
	}

	limit := filter.Limit
	if limit == 0 {
		limit = domain.DefaultPropertiesLimit
	}

	return builder.
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
}

func buildUpdateQuery(id uuid.UUID, update domain.PropertyUpdate) (string, []interface{}, error) {
	builder := psqlbuilder.Update(tableName)

	if update.Name != nil {
		builder = builder.Set("name", *update.Name)
	}
	if update.City != nil {
		builder = builder.Set("city", *update.City)
	}
	if update.PricePerNight != nil {
		builder = builder.Set("price_per_night", *update.PricePerNight)
	}
	if update.IsActive != nil {
		builder = builder.Set("is_active", *update.IsActive)
	}

	return builder.
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id.String()}).
		Suffix("RETURNING " + strings.Join(selectColumns, ", ")).
		ToSql()
}
