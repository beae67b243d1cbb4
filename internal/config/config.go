package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	AuthService AuthServiceConfig `toml:"auth_service"`
	Salon       SalonConfig       `toml:"salon"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
}

// ServerConfig параметры HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
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

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig параметры Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthServiceConfig параметры внешнего сервиса аутентификации
type AuthServiceConfig struct {
	URL     string `toml:"url"`
	APIKey  string `toml:"api_key"`
	Timeout int    `toml:"timeout"`
}

// SalonConfig рабочие часы и правила записи
type SalonConfig struct {
	Timezone                string           `toml:"timezone"`
	OpenTime                types.TimeString `toml:"open_time"`
	CloseTime               types.TimeString `toml:"close_time"`
	SlotStepMinutes         int              `toml:"slot_step_minutes"`
	MinBookingNoticeMinutes int              `toml:"min_booking_notice_minutes"`
	AdvanceBookingDays      int              `toml:"advance_booking_days"`
	ClosedWeekdays          []string         `toml:"closed_weekdays"`
}

// RateLimitConfig ограничение частоты публичных запросов на запись.
// TrustedProxies подсети (CIDR) прокси, которым разрешено передавать X-Forwarded-For
type RateLimitConfig struct {
	Enabled           bool     `toml:"enabled"`
	RequestsPerMinute int      `toml:"requests_per_minute"`
	Burst             int      `toml:"burst"`
	TrustedProxies    []string `toml:"trusted_proxies"`
}

// Proxies разбирает подсети доверенных прокси
func (r RateLimitConfig) Proxies() ([]netip.Prefix, error) {
	result := make([]netip.Prefix, 0, len(r.TrustedProxies))
	for _, cidr := range r.TrustedProxies {
		prefix, err := netip.ParsePrefix(strings.TrimSpace(cidr))
		if err != nil {
			return nil, fmt.Errorf("invalid CIDR %q: %v", cidr, err)
		}
		result = append(result, prefix.Masked())
	}
	return result, nil
}

// Load читает .env (если есть), TOML файл, применяет значения по умолчанию и переменные окружения
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 20
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "salon-booking"
	}
	if c.AuthService.Timeout == 0 {
		c.AuthService.Timeout = 5
	}
	if c.Salon.Timezone == "" {
		c.Salon.Timezone = domain.DefaultTimezone
	}
	if c.Salon.OpenTime.IsZero() {
		c.Salon.OpenTime = domain.DefaultOpenTime
	}
	if c.Salon.CloseTime.IsZero() {
		c.Salon.CloseTime = domain.DefaultCloseTime
	}
	if c.Salon.SlotStepMinutes == 0 {
		c.Salon.SlotStepMinutes = domain.DefaultSlotStepMinutes
	}
	if c.RateLimit.RequestsPerMinute == 0 {
		c.RateLimit.RequestsPerMinute = 30
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 5
	}
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("AUTH_SERVICE_API_KEY"); v != "" {
		c.AuthService.APIKey = v
	}
}

// Validate проверяет согласованность параметров салона
func (c *Config) Validate() error {
	if err := c.Salon.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: salon.open_time: %v", ErrInvalidConfig, err)
	}
	if err := c.Salon.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: salon.close_time: %v", ErrInvalidConfig, err)
	}
	if !c.Salon.OpenTime.IsBefore(c.Salon.CloseTime) {
		return fmt.Errorf("%w: salon.open_time must be before salon.close_time", ErrInvalidConfig)
	}
	if c.Salon.SlotStepMinutes < domain.MinSlotStepMinutes || c.Salon.SlotStepMinutes > domain.MaxSlotStepMinutes {
		return fmt.Errorf("%w: salon.slot_step_minutes must be in [%d, %d]",
			ErrInvalidConfig, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}
	if c.Salon.MinBookingNoticeMinutes < 0 {
		return fmt.Errorf("%w: salon.min_booking_notice_minutes must not be negative", ErrInvalidConfig)
	}
	if c.Salon.AdvanceBookingDays < 0 {
		return fmt.Errorf("%w: salon.advance_booking_days must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Salon.Location(); err != nil {
		return fmt.Errorf("%w: salon.timezone: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Salon.Weekdays(); err != nil {
		return fmt.Errorf("%w: salon.closed_weekdays: %v", ErrInvalidConfig, err)
	}
	if _, err := c.RateLimit.Proxies(); err != nil {
		return fmt.Errorf("%w: rate_limit.trusted_proxies: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Location часовой пояс салона, в котором считаются границы дня, недели и месяца
func (s SalonConfig) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// Weekdays разбирает названия выходных дней
func (s SalonConfig) Weekdays() ([]time.Weekday, error) {
	result := make([]time.Weekday, 0, len(s.ClosedWeekdays))
	for _, name := range s.ClosedWeekdays {
		wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		result = append(result, wd)
	}
	return result, nil
}

// BusinessHours рабочие часы салона для расчета слотов
func (s SalonConfig) BusinessHours() (domain.BusinessHours, error) {
	closed, err := s.Weekdays()
	if err != nil {
		return domain.BusinessHours{}, err
	}
	return domain.BusinessHours{
		Open:           s.OpenTime,
		Close:          s.CloseTime,
		StepMinutes:    s.SlotStepMinutes,
		ClosedWeekdays: closed,
	}, nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// BookingPolicy правила записи салона для расчета слотов и подтверждения записи
func (s SalonConfig) BookingPolicy() (domain.BookingPolicy, error) {
	hours, err := s.BusinessHours()
	if err != nil {
		return domain.BookingPolicy{}, err
	}
	loc, err := s.Location()
	if err != nil {
		return domain.BookingPolicy{}, err
	}
	return domain.BookingPolicy{
		Hours:              hours,
		Location:           loc,
		MinNoticeMinutes:   s.MinBookingNoticeMinutes,
		AdvanceBookingDays: s.AdvanceBookingDays,
	}, nil
}
