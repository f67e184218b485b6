package inquiry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/dbmetrics"
	"github.com/MutasemKharma/reva-chalets/pkg/psqlbuilder"
)

const (
	tableName = "inquiries"

	pqForeignKeyViolation = "23503"
)

var selectColumns = []string{
	"id",
	"property_id",
	"owner_id",
	"guest_id",
	"guest_name",
	"guest_email",
	"guest_phone",
	"message",
	"check_in_date",
	"check_out_date",
	"guests_count",
	"status",
	"owner_response",
	"created_at",
	"updated_at",
}

// Repository репозиторий запросов гостей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория запросов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый запрос; id и отметки времени выставляет БД
func (r *Repository) Create(ctx context.Context, inquiry *domain.Inquiry) (*domain.Inquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildCreateQuery(inquiry)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&inquiry.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return nil, fmt.Errorf("%w: Create: %v", ErrPropertyNotFound, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	inquiry.CreatedAt = createdAt.Time
	inquiry.UpdatedAt = updatedAt.Time

	return inquiry, nil
}

// GetByID получает запрос по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Inquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	inquiry, err := scanInquiry(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInquiryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan inquiry: %v", ErrScanRow, err)
	}

	return inquiry, nil
}

// ListByOwner возвращает запросы владельца, новые первыми
// Опционально фильтрует по статусу
func (r *Repository) ListByOwner(ctx context.Context, filter domain.InquiryFilter) ([]*domain.Inquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListByOwnerQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	inquiries := make([]*domain.Inquiry, 0)
	for rows.Next() {
		inquiry, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByOwner - scan inquiry: %v", ErrScanRow, err)
		}
		inquiries = append(inquiries, inquiry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - rows error: %v", ErrScanRow, err)
	}

	return inquiries, nil
}

// Respond сохраняет ответ владельца и новый статус
func (r *Repository) Respond(ctx context.Context, id uuid.UUID, status domain.InquiryStatus, response string) (*domain.Inquiry, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildRespondQuery(id, status, response)
	if err != nil {
		return nil, fmt.Errorf("%w: Respond - build update query: %v", ErrBuildQuery, err)
	}

	inquiry, err := scanInquiry(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInquiryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Respond - execute update: %v", ErrExecQuery, err)
	}

	return inquiry, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanInquiry(row rowScanner) (*domain.Inquiry, error) {
	var inquiry domain.Inquiry
	var (
		guestID              uuid.NullUUID
		message, response    sql.NullString
		status               string
		createdAt, updatedAt sql.NullTime
	)

	err := row.Scan(
		&inquiry.ID,
		&inquiry.PropertyID,
		&inquiry.OwnerID,
		&guestID,
		&inquiry.GuestName,
		&inquiry.GuestEmail,
		&inquiry.GuestPhone,
		&message,
		&inquiry.CheckIn,
		&inquiry.CheckOut,
		&inquiry.GuestsCount,
		&status,
		&response,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if guestID.Valid {
		id := guestID.UUID
		inquiry.GuestID = &id
	}
	if message.Valid {
		inquiry.Message = &message.String
	}
	if response.Valid {
		inquiry.OwnerResponse = &response.String
	}
	inquiry.Status = domain.InquiryStatus(status)
	inquiry.CreatedAt = createdAt.Time
	inquiry.UpdatedAt = updatedAt.Time

	return &inquiry, nil
}

func buildCreateQuery(inquiry *domain.Inquiry) (string, []interface{}, error) {
	var guestID, message interface{}
	if inquiry.GuestID != nil {
		guestID = inquiry.GuestID.String()
	}
	if inquiry.Message != nil {
		message = *inquiry.Message
	}

	return psqlbuilder.Insert(tableName).
		Columns(
			"property_id",
			"owner_id",
			"guest_id",
			"guest_name",
			"guest_email",
			"guest_phone",
			"message",
			"check_in_date",
			"check_out_date",
			"guests_count",
			"status",
		).
		Values(
			inquiry.PropertyID.String(),
			inquiry.OwnerID.String(),
			guestID,
			inquiry.GuestName,
			inquiry.GuestEmail,
			inquiry.GuestPhone,
			message,
			inquiry.CheckIn,
			inquiry.CheckOut,
			inquiry.GuestsCount,
			string(inquiry.Status),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
}

func buildListByOwnerQuery(filter domain.InquiryFilter) (string, []interface{}, error) {
	builder := psqlbuilder.Select(selectColumns...).
		From(tableName).
		Where(squirrel.Eq{"owner_id": filter.OwnerID.String()})

	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}

	limit := filter.Limit
	if limit == 0 {
		limit = domain.OwnerInquiriesLimit
	}

	return builder.
		OrderBy("created_at DESC").
		Limit(limit).
		ToSql()
}

func buildRespondQuery(id uuid.UUID, status domain.InquiryStatus, response string) (string, []interface{}, error) {
	return psqlbuilder.Update(tableName).
		Set("owner_response", response).
		Set("status", string(status)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id.String()}).
		Suffix("RETURNING " + strings.Join(selectColumns, ", ")).
		ToSql()
}
