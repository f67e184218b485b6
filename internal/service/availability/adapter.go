package availability

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/metrics"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

const (
	DefaultFetchTimeout   = 15 * time.Second
	DefaultPersistTimeout = 15 * time.Second
	DefaultRetryInterval  = 200 * time.Millisecond
)

// Config настройки адаптера
type Config struct {
	FetchTimeout   time.Duration
	PersistTimeout time.Duration
	// FetchRetries количество повторов чтения после первой неудачной попытки
	FetchRetries  int
	RetryInterval time.Duration
}

// Option дополнительные зависимости адаптера
type Option func(a *Adapter)

// WithCache включает кеш диапазонов
func WithCache(c RangeCache) Option {
	return func(a *Adapter) { a.cache = c }
}

// WithMetrics включает счетчики Prometheus
func WithMetrics(m *metrics.Metrics) Option {
	return func(a *Adapter) { a.metrics = m }
}

// Adapter единственная граница между календарем и хранилищем доступности.
// Ошибки чтения возвращаются как *domain.FetchError, ошибки записи как
// *domain.PersistError, локальные проверки как *domain.ValidationError.
type Adapter struct {
	backend Backend
	cache   RangeCache
	clock   Clock
	metrics *metrics.Metrics
	logger  Logger
	cfg     Config
}

// NewAdapter создает новый экземпляр адаптера
func NewAdapter(backend Backend, clock Clock, logger Logger, cfg Config, opts ...Option) *Adapter {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = DefaultPersistTimeout
	}
	if cfg.FetchRetries < 0 {
		cfg.FetchRetries = 0
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultRetryInterval
	}

	a := &Adapter{
		backend: backend,
		clock:   clock,
		logger:  logger,
		cfg:     cfg,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// FetchRange возвращает записи за период [start, end] включительно.
// Пустой результат не является ошибкой.
func (a *Adapter) FetchRange(ctx context.Context, propertyID uuid.UUID, start, end types.Date) ([]domain.DayAvailabilityRecord, error) {
	if start.IsZero() || end.IsZero() {
		return nil, &domain.ValidationError{Field: "range", Reason: "start and end are required"}
	}
	if start.After(end) {
		return nil, &domain.ValidationError{Field: "range", Reason: "start must not be after end"}
	}

	// версия читается до обращения к хранилищу; запись дня во время чтения
	// увеличит ее, и устаревший результат не попадет в актуальный ключ
	var (
		cacheVersion int64
		cacheable    bool
	)
	if a.cache != nil {
		records, version, found, err := a.cache.Get(ctx, propertyID, start, end)
		switch {
		case err != nil:
			a.logger.Warn("FetchRange: cache read failed for property=%s: %v", propertyID, err)
			a.countCache("error")
		case found:
			a.countCache("hit")
			return records, nil
		default:
			a.countCache("miss")
			cacheVersion, cacheable = version, true
		}
	}

	var records []domain.DayAvailabilityRecord
	attempt := 0
	op := func() error {
		attempt++
		callCtx, cancel := context.WithTimeout(ctx, a.cfg.FetchTimeout)
		defer cancel()

		recs, err := a.backend.GetRange(callCtx, propertyID, start, end)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			a.logger.Warn("FetchRange: attempt %d for property=%s [%s..%s] failed: %v",
				attempt, propertyID, start, end, err)
			return err
		}
		records = recs
		return nil
	}

	if err := backoff.Retry(op, a.retryPolicy(ctx)); err != nil {
		a.countFetch("error")
		a.logger.Error("FetchRange: property=%s [%s..%s] failed after %d attempt(s): %v",
			propertyID, start, end, attempt, err)
		return nil, &domain.FetchError{PropertyID: propertyID, Start: start, End: end, Cause: err}
	}

	if records == nil {
		records = []domain.DayAvailabilityRecord{}
	}
	a.countFetch("ok")

	if cacheable {
		if err := a.cache.Set(ctx, propertyID, cacheVersion, start, end, records); err != nil {
			a.logger.Warn("FetchRange: cache write failed for property=%s: %v", propertyID, err)
		}
	}

	return records, nil
}

// SetDayOverride сохраняет статус и цену одного дня.
// Прошедшие даты, неизвестные статусы и неположительные цены отклоняются
// до обращения к хранилищу.
func (a *Adapter) SetDayOverride(
	ctx context.Context,
	propertyID uuid.UUID,
	date types.Date,
	status domain.DayStatus,
	priceOverride *decimal.Decimal,
) error {
	if date.IsZero() {
		return &domain.ValidationError{Field: "date", Reason: "is required"}
	}
	if date.Before(a.clock.Today()) {
		return &domain.ValidationError{Field: "date", Reason: "past dates cannot be edited"}
	}
	if !status.IsValid() {
		return &domain.ValidationError{Field: "status", Reason: "unknown status"}
	}
	if priceOverride != nil && !priceOverride.IsPositive() {
		return &domain.ValidationError{Field: "priceOverride", Reason: "must be a positive number"}
	}

	callCtx, cancel := context.WithTimeout(ctx, a.cfg.PersistTimeout)
	defer cancel()

	record := domain.DayAvailabilityRecord{
		PropertyID:    propertyID,
		Date:          date,
		Status:        status,
		PriceOverride: priceOverride,
	}
	if err := a.backend.SetDay(callCtx, record); err != nil {
		a.countPersist("error")
		a.logger.Error("SetDayOverride: property=%s date=%s status=%s failed: %v", propertyID, date, status, err)
		return &domain.PersistError{PropertyID: propertyID, Date: date, Cause: err}
	}
	a.countPersist("ok")

	if a.cache != nil {
		if err := a.cache.Invalidate(ctx, propertyID); err != nil {
			a.logger.Error("SetDayOverride: cache invalidation failed for property=%s: %v", propertyID, err)
		}
	}

	a.logger.Info("SetDayOverride: property=%s date=%s status=%s override=%s",
		propertyID, date, status, formatPrice(priceOverride))
	return nil
}

// InvalidateProperty сбрасывает закешированные диапазоны объекта.
// Вызывается при смене цены по умолчанию.
func (a *Adapter) InvalidateProperty(ctx context.Context, propertyID uuid.UUID) error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Invalidate(ctx, propertyID)
}

func (a *Adapter) retryPolicy(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = a.cfg.RetryInterval
	exp.MaxInterval = 5 * a.cfg.RetryInterval
	exp.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(a.cfg.FetchRetries)), ctx)
}

func (a *Adapter) countFetch(result string) {
	if a.metrics != nil {
		a.metrics.AvailabilityFetchTotal.WithLabelValues(result).Inc()
	}
}

func (a *Adapter) countPersist(result string) {
	if a.metrics != nil {
		a.metrics.AvailabilityPersistTotal.WithLabelValues(result).Inc()
	}
}

func (a *Adapter) countCache(outcome string) {
	if a.metrics != nil {
		a.metrics.AvailabilityCacheTotal.WithLabelValues(outcome).Inc()
	}
}

func formatPrice(p *decimal.Decimal) string {
	if p == nil {
		return "none"
	}
	return p.String()
}
