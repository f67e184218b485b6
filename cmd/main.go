package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/oklog/run"
	"github.com/redis/go-redis/v9"

	calendarSessionHandler "github.com/MutasemKharma/reva-chalets/internal/api/handlers/calendar_session"
	createInquiryHandler "github.com/MutasemKharma/reva-chalets/internal/api/handlers/create_inquiry"
	getAvailabilityRangeHandler "github.com/MutasemKharma/reva-chalets/internal/api/handlers/get_availability_range"
	getMonthViewHandler "github.com/MutasemKharma/reva-chalets/internal/api/handlers/get_month_view"
	getOwnerInquiriesHandler "github.com/MutasemKharma/reva-chalets/internal/api/handlers/get_owner_inquiries"
	getOwnerPropertiesHandler "github.com/MutasemKharma/reva-chalets/internal/api/handlers/get_owner_properties"
	getPropertyHandler "github.com/MutasemKharma/reva-chalets/internal/api/handlers/get_property"
	listPropertiesHandler "github.com/MutasemKharma/reva-chalets/internal/api/handlers/list_properties"
	respondInquiryHandler "github.com/MutasemKharma/reva-chalets/internal/api/handlers/respond_inquiry"
	setDayOverrideHandler "github.com/MutasemKharma/reva-chalets/internal/api/handlers/set_day_override"
	updatePropertyHandler "github.com/MutasemKharma/reva-chalets/internal/api/handlers/update_property"
	"github.com/MutasemKharma/reva-chalets/internal/api/middleware"
	"github.com/MutasemKharma/reva-chalets/internal/calendar"
	"github.com/MutasemKharma/reva-chalets/internal/config"
	availabilityCache "github.com/MutasemKharma/reva-chalets/internal/infra/cache/availability"
	availabilityRepo "github.com/MutasemKharma/reva-chalets/internal/infra/storage/availability"
	inquiryRepo "github.com/MutasemKharma/reva-chalets/internal/infra/storage/inquiry"
	propertyRepo "github.com/MutasemKharma/reva-chalets/internal/infra/storage/property"
	formRelayClient "github.com/MutasemKharma/reva-chalets/internal/integrations/formrelay"
	supabaseClient "github.com/MutasemKharma/reva-chalets/internal/integrations/supabase"
	availabilityService "github.com/MutasemKharma/reva-chalets/internal/service/availability"
	calendarSessionsService "github.com/MutasemKharma/reva-chalets/internal/service/calendarsessions"
	inquiriesService "github.com/MutasemKharma/reva-chalets/internal/service/inquiries"
	propertiesService "github.com/MutasemKharma/reva-chalets/internal/service/properties"
	getMonthViewUC "github.com/MutasemKharma/reva-chalets/internal/usecase/get_month_view"
	setDayOverrideUC "github.com/MutasemKharma/reva-chalets/internal/usecase/set_day_override"
	"github.com/MutasemKharma/reva-chalets/pkg/dbmetrics"
	"github.com/MutasemKharma/reva-chalets/pkg/logger"
	"github.com/MutasemKharma/reva-chalets/pkg/metrics"
	"github.com/MutasemKharma/reva-chalets/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting reva-chalets...")
	log.Info("Configuration loaded from config.toml (calendar backend=%s)", cfg.Calendar.Backend)

	// Настройки календаря уже проверены в config.Validate
	loc, _ := cfg.Calendar.Location()
	weekStart, _ := cfg.Calendar.FirstWeekday()
	clock := calendar.NewSystemClock(loc)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer sqlDB.Close()

	// Настраиваем connection pool
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := sqlDB.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	var db *dbmetrics.DB
	if cfg.Metrics.Enabled {
		db = dbmetrics.WrapWithDefault(sqlDB, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		db = dbmetrics.New(sqlDB)
	}
	txMgr := txmanager.NewTransactionManager(db)

	// Инициализируем репозитории
	propertyRepository := propertyRepo.NewRepository(db)
	inquiryRepository := inquiryRepo.NewRepository(db)

	// Хранилище доступности: Postgres или Supabase RPC
	var backend availabilityService.Backend
	switch cfg.Calendar.Backend {
	case config.BackendSupabase:
		backend = supabaseClient.NewClient(
			cfg.Supabase.URL,
			cfg.Supabase.APIKey,
			time.Duration(cfg.Supabase.Timeout)*time.Second,
			log,
			supabaseClient.WithDefaultPrices(propertyRepository),
		)
		log.Info("Availability backend: supabase (url=%s)", cfg.Supabase.URL)
	default:
		var repoOpts []availabilityRepo.Option
		if cfg.Calendar.CoalesceDefaultOverride {
			repoOpts = append(repoOpts, availabilityRepo.WithDefaultCoalescing(txMgr))
		}
		backend = availabilityRepo.NewRepository(db, repoOpts...)
		log.Info("Availability backend: postgres (coalesce_default_override=%t)", cfg.Calendar.CoalesceDefaultOverride)
	}

	adapterOpts := make([]availabilityService.Option, 0, 2)
	if cfg.Metrics.Enabled {
		adapterOpts = append(adapterOpts, availabilityService.WithMetrics(metricsCollector))
	}

	// Кеш месяцев в Redis (если настроен). Недоступный Redis не мешает старту.
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis is not reachable at %s, cache lookups will fall back to backend: %v", cfg.Redis.Addr, err)
		}
		cancel()

		cache := availabilityCache.NewCache(redisClient, time.Duration(cfg.Redis.TTL)*time.Second)
		adapterOpts = append(adapterOpts, availabilityService.WithCache(cache))
		log.Info("Availability cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	availabilityAdapter := availabilityService.NewAdapter(
		backend,
		clock,
		log,
		availabilityService.Config{
			FetchTimeout:   time.Duration(cfg.Calendar.FetchTimeout) * time.Second,
			PersistTimeout: time.Duration(cfg.Calendar.PersistTimeout) * time.Second,
			FetchRetries:   cfg.Calendar.FetchRetries,
		},
		adapterOpts...,
	)

	// Инициализируем сервисы
	propertySvc := propertiesService.NewService(
		propertyRepository,
		txMgr,
		log,
		propertiesService.WithAvailabilityInvalidator(availabilityAdapter),
	)

	inquiryOpts := make([]inquiriesService.Option, 0, 2)
	if cfg.FormRelay.Enabled() {
		relay := formRelayClient.NewClient(cfg.FormRelay.URL, time.Duration(cfg.FormRelay.Timeout)*time.Second)
		inquiryOpts = append(inquiryOpts, inquiriesService.WithRelay(relay))
		log.Info("Form relay enabled (timeout=%ds)", cfg.FormRelay.Timeout)
	}
	if cfg.Metrics.Enabled {
		inquiryOpts = append(inquiryOpts, inquiriesService.WithMetrics(metricsCollector))
	}
	inquirySvc := inquiriesService.NewService(inquiryRepository, propertyRepository, clock, log, inquiryOpts...)

	var registryOpts []calendarSessionsService.RegistryOption
	if cfg.Metrics.Enabled {
		registryOpts = append(registryOpts, calendarSessionsService.WithRegistryMetrics(metricsCollector))
	}
	sessionRegistry := calendarSessionsService.NewRegistry(
		time.Duration(cfg.Calendar.SessionTTL)*time.Second,
		log,
		registryOpts...,
	)
	sessionSvc := calendarSessionsService.NewService(sessionRegistry, propertySvc, availabilityAdapter, clock, weekStart, log)

	// Инициализируем use cases
	getMonthViewUseCase := getMonthViewUC.NewUseCase(propertyRepository, availabilityAdapter, clock, weekStart, log)
	setDayOverrideUseCase := setDayOverrideUC.NewUseCase(propertyRepository, availabilityAdapter, log)

	// Инициализируем handlers
	listProperties := listPropertiesHandler.NewHandler(propertySvc, log)
	getProperty := getPropertyHandler.NewHandler(propertySvc, log)
	getOwnerProperties := getOwnerPropertiesHandler.NewHandler(propertySvc, log)
	updateProperty := updatePropertyHandler.NewHandler(propertySvc, log)
	getMonthView := getMonthViewHandler.NewHandler(getMonthViewUseCase, log)
	getAvailabilityRange := getAvailabilityRangeHandler.NewHandler(propertySvc, availabilityAdapter, log)
	setDayOverride := setDayOverrideHandler.NewHandler(setDayOverrideUseCase, log)
	calendarSessions := calendarSessionHandler.NewHandler(sessionSvc, log)
	createInquiry := createInquiryHandler.NewHandler(inquirySvc, log)
	getOwnerInquiries := getOwnerInquiriesHandler.NewHandler(inquirySvc, log)
	respondInquiry := respondInquiryHandler.NewHandler(inquirySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог и карточка объекта
	api.HandleFunc("/properties", listProperties.Handle).Methods(http.MethodGet)
	api.HandleFunc("/properties/{propertyId}", getProperty.Handle).Methods(http.MethodGet)

	// Календарь доступности
	api.HandleFunc("/properties/{propertyId}/availability", getMonthView.Handle).Methods(http.MethodGet)
	api.HandleFunc("/properties/{propertyId}/availability/range", getAvailabilityRange.Handle).Methods(http.MethodGet)

	// Запрос гостя (X-User-ID опционален)
	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.OptionalAuth)
	public.HandleFunc("/properties/{propertyId}/inquiries", createInquiry.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Объекты (владелец) ---
	protected.HandleFunc("/owners/me/properties", getOwnerProperties.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/properties/{propertyId}", updateProperty.Handle).Methods(http.MethodPatch)

	// --- Доступность (владелец) ---
	protected.HandleFunc("/properties/{propertyId}/availability/{date}", setDayOverride.Handle).Methods(http.MethodPut)

	// --- Сессии календаря ---
	protected.HandleFunc("/properties/{propertyId}/calendar-sessions", calendarSessions.Start).Methods(http.MethodPost)
	protected.HandleFunc("/calendar-sessions/{sessionId}", calendarSessions.Get).Methods(http.MethodGet)
	protected.HandleFunc("/calendar-sessions/{sessionId}", calendarSessions.Close).Methods(http.MethodDelete)
	protected.HandleFunc("/calendar-sessions/{sessionId}/reload", calendarSessions.Reload).Methods(http.MethodPost)
	protected.HandleFunc("/calendar-sessions/{sessionId}/navigate", calendarSessions.Navigate).Methods(http.MethodPost)
	protected.HandleFunc("/calendar-sessions/{sessionId}/edit", calendarSessions.OpenEdit).Methods(http.MethodPost)
	protected.HandleFunc("/calendar-sessions/{sessionId}/edit", calendarSessions.CancelEdit).Methods(http.MethodDelete)
	protected.HandleFunc("/calendar-sessions/{sessionId}/edit/submit", calendarSessions.SubmitEdit).Methods(http.MethodPost)

	// --- Запросы гостей (владелец) ---
	protected.HandleFunc("/owners/me/inquiries", getOwnerInquiries.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/inquiries/{inquiryId}/respond", respondInquiry.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	var g run.Group

	// HTTP сервер
	g.Add(func() error {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}, func(error) {
		log.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown: %v", err)
		}
	})

	// Закрытие простаивающих сессий календаря
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	g.Add(func() error {
		return sessionRegistry.Run(sweepCtx, time.Duration(cfg.Calendar.SessionSweepInterval)*time.Second)
	}, func(error) {
		stopSweep()
		sessionRegistry.CloseAll()
		log.Info("Calendar sessions closed")
	})

	// Сигналы завершения
	g.Add(run.SignalHandler(context.Background(), os.Interrupt, syscall.SIGTERM))

	err = g.Run()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	var sigErr run.SignalError
	if err != nil && !errors.As(err, &sigErr) {
		log.Error("Service stopped with error: %v", err)
		return
	}
	log.Info("Server stopped gracefully")
}
