package calendarsessions

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MutasemKharma/reva-chalets/internal/calendar"
	"github.com/MutasemKharma/reva-chalets/pkg/metrics"
)

// Session живая сессия редактирования календаря одного объекта
type Session struct {
	ID         uuid.UUID
	OwnerID    uuid.UUID
	PropertyID uuid.UUID
	Engine     *calendar.Engine
	CreatedAt  time.Time

	lastActivity time.Time
}

// RegistryOption настройка реестра
type RegistryOption func(r *Registry)

// WithRegistryMetrics включает gauge calendar_sessions_active
func WithRegistryMetrics(m *metrics.Metrics) RegistryOption {
	return func(r *Registry) { r.metrics = m }
}

// WithNow подменяет источник времени (для тестов)
func WithNow(now func() time.Time) RegistryOption {
	return func(r *Registry) { r.now = now }
}

// Registry хранит сессии в памяти процесса и закрывает простаивающие
type Registry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	idleTTL time.Duration
	now     func() time.Time
	metrics *metrics.Metrics
	logger  Logger
}

// NewRegistry создает новый реестр сессий
func NewRegistry(idleTTL time.Duration, logger Logger, opts ...RegistryOption) *Registry {
	r := &Registry{
		sessions: make(map[uuid.UUID]*Session),
		idleTTL:  idleTTL,
		now:      time.Now,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Add регистрирует движок и возвращает новую сессию
func (r *Registry) Add(ownerID, propertyID uuid.UUID, engine *calendar.Engine) *Session {
	now := r.now()
	s := &Session{
		ID:           uuid.New(),
		OwnerID:      ownerID,
		PropertyID:   propertyID,
		Engine:       engine,
		CreatedAt:    now,
		lastActivity: now,
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.updateGaugeLocked()
	r.mu.Unlock()

	return s
}

// Get возвращает сессию пользователя и продлевает ее
func (r *Registry) Get(id, userID uuid.UUID) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.OwnerID != userID {
		return nil, ErrAccessDenied
	}

	s.lastActivity = r.now()
	return s, nil
}

// Remove закрывает и удаляет сессию пользователя
func (r *Registry) Remove(id, userID uuid.UUID) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok {
		r.mu.Unlock()
		return ErrSessionNotFound
	}
	if s.OwnerID != userID {
		r.mu.Unlock()
		return ErrAccessDenied
	}
	delete(r.sessions, id)
	r.updateGaugeLocked()
	r.mu.Unlock()

	s.Engine.Close()
	return nil
}

// Sweep закрывает сессии, простаивающие дольше idleTTL; возвращает их число
func (r *Registry) Sweep() int {
	deadline := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	expired := make([]*Session, 0)
	for id, s := range r.sessions {
		if s.lastActivity.Before(deadline) {
			expired = append(expired, s)
			delete(r.sessions, id)
		}
	}
	r.updateGaugeLocked()
	r.mu.Unlock()

	for _, s := range expired {
		s.Engine.Close()
		r.logger.Info("Sweep: closed idle session id=%s property=%s", s.ID, s.PropertyID)
	}
	return len(expired)
}

// Run периодически вызывает Sweep до отмены контекста
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// CloseAll закрывает все сессии при остановке сервиса
func (r *Registry) CloseAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[uuid.UUID]*Session)
	r.updateGaugeLocked()
	r.mu.Unlock()

	for _, s := range sessions {
		s.Engine.Close()
	}
}

// Len количество активных сессий
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) updateGaugeLocked() {
	if r.metrics != nil {
		r.metrics.CalendarSessionsActive.Set(float64(len(r.sessions)))
	}
}
