package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

const keyPrefix = "availability"

// Cache кеш диапазонов доступности в Redis.
// Ключи диапазонов содержат версию объекта; запись дня увеличивает версию,
// поэтому старые диапазоны перестают читаться и истекают по TTL.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache создает новый экземпляр кеша
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Get возвращает закешированный диапазон и версию объекта, под которой его искали.
// found=false, если записи нет. Промах нужно сохранять через Set с этой же версией:
// если между Get и Set прошла запись дня, результат ляжет под устаревшую версию
// и не будет прочитан.
func (c *Cache) Get(ctx context.Context, propertyID uuid.UUID, start, end types.Date) ([]domain.DayAvailabilityRecord, int64, bool, error) {
	version, err := c.version(ctx, propertyID)
	if err != nil {
		return nil, 0, false, err
	}

	raw, err := c.client.Get(ctx, rangeKey(propertyID, version, start, end)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, version, false, fmt.Errorf("%w: Get - read range: %v", ErrCacheRead, err)
	}

	var cached []cachedRecord
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, version, false, fmt.Errorf("%w: Get - unmarshal: %v", ErrDecode, err)
	}

	return fromCached(propertyID, cached), version, true, nil
}

// Set сохраняет диапазон под версией, полученной из Get до чтения хранилища
func (c *Cache) Set(ctx context.Context, propertyID uuid.UUID, version int64, start, end types.Date, records []domain.DayAvailabilityRecord) error {
	raw, err := json.Marshal(toCached(records))
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %v", ErrCacheWrite, err)
	}

	if err := c.client.Set(ctx, rangeKey(propertyID, version, start, end), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - write range: %v", ErrCacheWrite, err)
	}
	return nil
}

// Invalidate увеличивает версию объекта, делая все его диапазоны недоступными
func (c *Cache) Invalidate(ctx context.Context, propertyID uuid.UUID) error {
	if err := c.client.Incr(ctx, versionKey(propertyID)).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - incr version: %v", ErrCacheWrite, err)
	}
	return nil
}

func (c *Cache) version(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(propertyID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: read version: %v", ErrCacheRead, err)
	}
	return v, nil
}

func versionKey(propertyID uuid.UUID) string {
	return fmt.Sprintf("%s:%s:version", keyPrefix, propertyID)
}

func rangeKey(propertyID uuid.UUID, version int64, start, end types.Date) string {
	return fmt.Sprintf("%s:%s:v%d:%s:%s", keyPrefix, propertyID, version, start, end)
}
