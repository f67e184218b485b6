package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MutasemKharma/reva-chalets/internal/domain"
	"github.com/MutasemKharma/reva-chalets/pkg/types"
)

// Option дополнительные настройки клиента
type Option func(c *Client)

// WithDefaultPrices включает приведение цены RPC к переопределению.
// get_property_availability отдает цену дня, а не переопределение:
// цена, равная цене объекта за ночь, переопределением не считается.
func WithDefaultPrices(properties PropertyReader) Option {
	return func(c *Client) { c.properties = properties }
}

// Client клиент PostgREST RPC для доступности объектов.
// Реализует тот же контракт, что и репозиторий PostgreSQL.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	properties PropertyReader
	log        Logger
}

// NewClient создает новый экземпляр клиента Supabase
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetRange вызывает get_property_availability за период [start, end]
func (c *Client) GetRange(ctx context.Context, propertyID uuid.UUID, start, end types.Date) ([]domain.DayAvailabilityRecord, error) {
	payload := GetAvailabilityRequest{
		PropertyUUID: propertyID.String(),
		StartDate:    start,
		EndDate:      end,
	}

	var rows []AvailabilityRow
	if err := c.callRPC(ctx, getAvailabilityRPC, payload, &rows); err != nil {
		return nil, err
	}

	defaultPrice, err := c.defaultPrice(ctx, propertyID, rows)
	if err != nil {
		return nil, err
	}

	records := make([]domain.DayAvailabilityRecord, 0, len(rows))
	for _, row := range rows {
		price := row.Price
		if price != nil && defaultPrice != nil && price.Equal(*defaultPrice) {
			price = nil
		}
		records = append(records, domain.DayAvailabilityRecord{
			PropertyID:    propertyID,
			Date:          row.Date,
			Status:        domain.DayStatus(row.Status),
			PriceOverride: price,
		})
	}

	return records, nil
}

// defaultPrice читает цену объекта, только если в ответе есть цены
func (c *Client) defaultPrice(ctx context.Context, propertyID uuid.UUID, rows []AvailabilityRow) (*decimal.Decimal, error) {
	if c.properties == nil {
		return nil, nil
	}

	hasPrice := false
	for _, row := range rows {
		if row.Price != nil {
			hasPrice = true
			break
		}
	}
	if !hasPrice {
		return nil, nil
	}

	property, err := c.properties.GetByID(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read default price of property %s: %v", ErrInternal, propertyID, err)
	}
	return &property.PricePerNight, nil
}

// SetDay вызывает update_property_availability для одного дня
func (c *Client) SetDay(ctx context.Context, record domain.DayAvailabilityRecord) error {
	payload := UpdateAvailabilityRequest{
		PropertyUUID:  record.PropertyID.String(),
		DateToUpdate:  record.Date,
		NewStatus:     string(record.Status),
		PriceOverride: record.PriceOverride,
	}

	if err := c.callRPC(ctx, updateAvailabilityRPC, payload, nil); err != nil {
		return err
	}

	c.log.Info("Supabase: property=%s date=%s set to %s", record.PropertyID, record.Date, record.Status)
	return nil
}

// callRPC выполняет POST /rest/v1/rpc/{fn}; out == nil означает, что тело ответа не нужно
func (c *Client) callRPC(ctx context.Context, fn string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to encode %s arguments: %v", ErrInternal, fn, err)
	}

	url := fmt.Sprintf("%s/rest/v1/rpc/%s", c.baseURL, fn)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: failed to execute request: %v", ErrUnavailable, fn, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s: status %d: %s", ErrUnauthorized, fn, resp.StatusCode, readError(resp.Body))
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s: status %d: %s", ErrUnavailable, fn, resp.StatusCode, readError(resp.Body))
	default:
		return fmt.Errorf("%w: %s: unexpected status code %d: %s", ErrInvalidResponse, fn, resp.StatusCode, readError(resp.Body))
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: failed to decode response: %v", ErrInvalidResponse, fn, err)
	}

	return nil
}

// readError достает сообщение PostgREST или сырое тело ответа
func readError(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, 4096))

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Message != "" {
		if errResp.Code != "" {
			return errResp.Code + " " + errResp.Message
		}
		return errResp.Message
	}
	return string(body)
}
