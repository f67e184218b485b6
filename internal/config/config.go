package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Backend источник данных календаря доступности
const (
	BackendPostgres = "postgres"
	BackendSupabase = "supabase"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Calendar  CalendarConfig  `toml:"calendar"`
	Redis     RedisConfig     `toml:"redis"`
	Supabase  SupabaseConfig  `toml:"supabase"`
	FormRelay FormRelayConfig `toml:"form_relay"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CalendarConfig настройки календаря доступности
type CalendarConfig struct {
	Backend                 string `toml:"backend"`
	TimeZone                string `toml:"time_zone"`
	WeekStart               string `toml:"week_start"`
	FetchTimeout            int    `toml:"fetch_timeout"`
	PersistTimeout          int    `toml:"persist_timeout"`
	FetchRetries            int    `toml:"fetch_retries"`
	SessionTTL              int    `toml:"session_ttl"`
	SessionSweepInterval    int    `toml:"session_sweep_interval"`
	CoalesceDefaultOverride bool   `toml:"coalesce_default_override"`
}

// Location часовой пояс, в котором вычисляется "сегодня"
func (c CalendarConfig) Location() (*time.Location, error) {
	if c.TimeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("%w: time_zone %q: %v", ErrInvalidConfig, c.TimeZone, err)
	}
	return loc, nil
}

// FirstWeekday первый день недели в сетке месяца
func (c CalendarConfig) FirstWeekday() (time.Weekday, error) {
	if c.WeekStart == "" {
		return time.Sunday, nil
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), c.WeekStart) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("%w: week_start %q", ErrInvalidConfig, c.WeekStart)
}

// RedisConfig настройки кеша месяцев. Пустой Addr отключает кеш.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"`
}

// Enabled включен ли кеш
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// SupabaseConfig настройки PostgREST бэкенда
type SupabaseConfig struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"`
}

// FormRelayConfig настройки резервной отправки заявок
type FormRelayConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Enabled включена ли отправка заявок в form relay
func (f FormRelayConfig) Enabled() bool {
	return f.URL != ""
}

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Load читает конфигурацию из TOML файла, затем применяет переменные окружения
// (в том числе из .env, если файл существует)
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to load .env: %w", err)
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "reva-chalets",
		},
		Calendar: CalendarConfig{
			Backend:              BackendPostgres,
			TimeZone:             "Asia/Amman",
			WeekStart:            "sunday",
			FetchTimeout:         15,
			PersistTimeout:       15,
			FetchRetries:         1,
			SessionTTL:           1800,
			SessionSweepInterval: 60,
		},
		Redis:     RedisConfig{TTL: 300},
		Supabase:  SupabaseConfig{Timeout: 15},
		FormRelay: FormRelayConfig{Timeout: 10},
	}
}

// applyEnv переопределяет секреты и адреса из окружения
func applyEnv(cfg *Config) {
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.DBName, "DB_NAME")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Supabase.URL, "SUPABASE_URL")
	setString(&cfg.Supabase.APIKey, "SUPABASE_API_KEY")
	setString(&cfg.FormRelay.URL, "FORM_RELAY_URL")
	setString(&cfg.Calendar.Backend, "CALENDAR_BACKEND")
	setString(&cfg.Logs.Level, "LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	switch c.Calendar.Backend {
	case BackendPostgres:
	case BackendSupabase:
		if c.Supabase.URL == "" || c.Supabase.APIKey == "" {
			return fmt.Errorf("%w: supabase backend requires url and api_key", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown calendar backend %q", ErrInvalidConfig, c.Calendar.Backend)
	}

	if c.Calendar.FetchTimeout <= 0 || c.Calendar.PersistTimeout <= 0 {
		return fmt.Errorf("%w: calendar timeouts must be positive", ErrInvalidConfig)
	}
	if c.Calendar.FetchRetries < 0 {
		return fmt.Errorf("%w: fetch_retries must not be negative", ErrInvalidConfig)
	}
	if c.Calendar.SessionTTL <= 0 || c.Calendar.SessionSweepInterval <= 0 {
		return fmt.Errorf("%w: session ttl and sweep interval must be positive", ErrInvalidConfig)
	}
	if _, err := c.Calendar.Location(); err != nil {
		return err
	}
	if _, err := c.Calendar.FirstWeekday(); err != nil {
		return err
	}
	if c.Server.HTTPPort <= 0 {
		return fmt.Errorf("%w: http_port must be positive", ErrInvalidConfig)
	}

	return nil
}
