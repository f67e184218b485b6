package availability

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/dbmetrics"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

var (
	testPropertyID = uuid.MustParse("0b6a2f0e-8f4c-4d1e-9a57-2c61f3e4d5a6")
	testDate       = types.MustParseDate("2025-03-10")
)

type execCall struct {
	query string
	args  []interface{}
}

type fakeResult struct {
	affected int64
}

func (r fakeResult) LastInsertId() (int64, error) { return 0, nil }
func (r fakeResult) RowsAffected() (int64, error) { return r.affected, nil }

// fakeExecutor записывает выполненные запросы; чтение не поддерживается
type fakeExecutor struct {
	calls    []execCall
	affected []int64
	err      error
}

func (f *fakeExecutor) ExecContext(_ context.Context, query string, args ...interface{}) (sql.Result, error) {
	f.calls = append(f.calls, execCall{query: query, args: args})
	if f.err != nil {
		return nil, f.err
	}
	var affected int64 = 1
	if len(f.affected) > 0 {
		affected = f.affected[0]
		f.affected = f.affected[1:]
	}
	return fakeResult{affected: affected}, nil
}

func (f *fakeExecutor) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, errors.New("not supported")
}

func (f *fakeExecutor) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestBuildGetRangeQuery(t *testing.T) {
	start, end := types.MustParseDate("2025-03-01"), types.MustParseDate("2025-03-31")

	query, args, err := buildGetRangeQuery(testPropertyID, start, end)
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT property_id, date, status, price_override FROM property_availability "+
			"WHERE property_id = $1 AND date >= $2 AND date <= $3 ORDER BY date ASC",
		query)
	assert.Equal(t, []interface{}{testPropertyID.String(), start, end}, args)
}

func TestBuildUpsertQuery(t *testing.T) {
	record := domain.DayAvailabilityRecord{
		PropertyID: testPropertyID, Date: testDate, Status: domain.DayStatusBooked, PriceOverride: price(150),
	}

	query, args, err := buildUpsertQuery(record)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO property_availability (property_id,date,status,price_override,updated_at) "+
			"VALUES ($1,$2,$3,$4,NOW()) "+upsertSuffix,
		query)
	require.Len(t, args, 4)
	assert.Equal(t, testPropertyID.String(), args[0])
	assert.Equal(t, testDate, args[1])
	assert.Equal(t, "booked", args[2])
	assert.Equal(t, decimal.NullDecimal{Decimal: decimal.NewFromInt(150), Valid: true}, args[3])
}

func TestBuildUpsertQuery_NullOverride(t *testing.T) {
	record := domain.DayAvailabilityRecord{PropertyID: testPropertyID, Date: testDate, Status: domain.DayStatusMaintenance}

	_, args, err := buildUpsertQuery(record)
	require.NoError(t, err)
	assert.Equal(t, decimal.NullDecimal{}, args[3])
}

func TestBuildCoalescingUpsertQuery(t *testing.T) {
	record := domain.DayAvailabilityRecord{
		PropertyID: testPropertyID, Date: testDate, Status: domain.DayStatusAvailable, PriceOverride: price(80),
	}

	query, args, err := buildCoalescingUpsertQuery(record)
	require.NoError(t, err)

	assert.Contains(t, query, "INSERT INTO property_availability (property_id,date,status,price_override,updated_at) SELECT")
	assert.Contains(t, query, "NULLIF($3::numeric, p.price_per_night)")
	assert.Contains(t, query, "FROM properties p WHERE p.id = $4")
	assert.Contains(t, query, upsertSuffix)
	assert.NotContains(t, query, "?")
	assert.Equal(t, []interface{}{
		testDate,
		"available",
		decimal.NullDecimal{Decimal: decimal.NewFromInt(80), Valid: true},
		testPropertyID.String(),
	}, args)
}

func TestBuildDeleteDefaultQuery(t *testing.T) {
	query, args, err := buildDeleteDefaultQuery(testPropertyID, testDate)
	require.NoError(t, err)

	assert.Equal(t,
		"DELETE FROM property_availability WHERE date = $1 AND price_override IS NULL AND property_id = $2 AND status = $3",
		query)
	assert.Equal(t, []interface{}{testDate, testPropertyID.String(), "available"}, args)
}

func TestSetDay_StoredAsIs(t *testing.T) {
	db := &fakeExecutor{}
	repo := NewRepository(db)

	err := repo.SetDay(context.Background(), domain.DayAvailabilityRecord{
		PropertyID: testPropertyID, Date: testDate, Status: domain.DayStatusAvailable, PriceOverride: price(80),
	})
	require.NoError(t, err)
	require.Len(t, db.calls, 1)
	assert.Contains(t, db.calls[0].query, "VALUES ($1,$2,$3,$4,NOW())")

	// {available, no override} is stored explicitly too
	err = repo.SetDay(context.Background(), domain.DayAvailabilityRecord{
		PropertyID: testPropertyID, Date: testDate, Status: domain.DayStatusAvailable,
	})
	require.NoError(t, err)
	require.Len(t, db.calls, 2)
	assert.Contains(t, db.calls[1].query, "INSERT INTO property_availability")
}

func TestSetDay_CoalescingResetDeletes(t *testing.T) {
	db := &fakeExecutor{}
	tm := &fakeTxManager{}
	repo := NewRepository(db, WithDefaultCoalescing(tm))

	err := repo.SetDay(context.Background(), domain.DayAvailabilityRecord{
		PropertyID: testPropertyID, Date: testDate, Status: domain.DayStatusAvailable,
	})
	require.NoError(t, err)
	require.Len(t, db.calls, 1)
	assert.Equal(t, "DELETE FROM property_availability WHERE date = $1 AND property_id = $2", db.calls[0].query)
	assert.Equal(t, 0, tm.calls)
}

func TestSetDay_CoalescingAvailableWithPrice(t *testing.T) {
	db := &fakeExecutor{}
	tm := &fakeTxManager{}
	repo := NewRepository(db, WithDefaultCoalescing(tm))

	err := repo.SetDay(context.Background(), domain.DayAvailabilityRecord{
		PropertyID: testPropertyID, Date: testDate, Status: domain.DayStatusAvailable, PriceOverride: price(80),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, tm.calls)
	require.Len(t, db.calls, 2)
	assert.Contains(t, db.calls[0].query, "NULLIF(")
	assert.Contains(t, db.calls[1].query, "DELETE FROM property_availability")
}

func TestSetDay_CoalescingNonAvailableSkipsCleanup(t *testing.T) {
	db := &fakeExecutor{}
	repo := NewRepository(db, WithDefaultCoalescing(&fakeTxManager{}))

	err := repo.SetDay(context.Background(), domain.DayAvailabilityRecord{
		PropertyID: testPropertyID, Date: testDate, Status: domain.DayStatusBlocked, PriceOverride: price(80),
	})
	require.NoError(t, err)
	require.Len(t, db.calls, 1)
}

func TestSetDay_CoalescingUnknownProperty(t *testing.T) {
	db := &fakeExecutor{affected: []int64{0}}
	repo := NewRepository(db, WithDefaultCoalescing(&fakeTxManager{}))

	err := repo.SetDay(context.Background(), domain.DayAvailabilityRecord{
		PropertyID: testPropertyID, Date: testDate, Status: domain.DayStatusBooked,
	})
	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestSetDay_UsesTransactionFromContext(t *testing.T) {
	db := &fakeExecutor{}
	tx := &fakeTx{fakeExecutor: &fakeExecutor{}}
	repo := NewRepository(db)

	ctx := dbmetrics.WithTx(context.Background(), tx)
	require.NoError(t, repo.SetDay(ctx, domain.DayAvailabilityRecord{
		PropertyID: testPropertyID, Date: testDate, Status: domain.DayStatusBlocked,
	}))

	assert.Empty(t, db.calls)
	assert.Len(t, tx.calls, 1)
}

type fakeTx struct {
	*fakeExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func TestMapExecError(t *testing.T) {
	fk := &pq.Error{Code: pqForeignKeyViolation}
	assert.ErrorIs(t, mapExecError("SetDay", fk), ErrPropertyNotFound)

	check := &pq.Error{Code: pqCheckViolation}
	assert.ErrorIs(t, mapExecError("SetDay", check), ErrConstraint)

	assert.ErrorIs(t, mapExecError("SetDay", errors.New("broken pipe")), ErrExecQuery)
}
