package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultServerAddress is the address the API listens on when none is configured.
	DefaultServerAddress = ":8080"
	// DefaultReadTimeout is the default HTTP read timeout.
	DefaultReadTimeout = 10 * time.Second
	// DefaultWriteTimeout is the default HTTP write timeout.
	DefaultWriteTimeout = 30 * time.Second
	// DefaultWordPressTimeout is the default timeout for content source requests.
	DefaultWordPressTimeout = 15 * time.Second
	// DefaultPageSize is the per_page value used for WordPress collection fetches.
	DefaultPageSize = 100
	// DefaultSMTPPort is the STARTTLS submission port.
	DefaultSMTPPort = 587
)

type Config struct {
	Debug     bool            `yaml:"debug"` // controls log level and gin mode
	Server    ServerConfig    `yaml:"server"`
	WordPress WordPressConfig `yaml:"wordpress"`
	Booking   BookingConfig   `yaml:"booking"`
	SMTP      SMTPConfig      `yaml:"smtp"`
}

type ServerConfig struct {
	Address      string        `yaml:"address"`       // e.g. ":8080"
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default: 10s
	WriteTimeout time.Duration `yaml:"write_timeout"` // default: 30s
	CORSOrigins  []string      `yaml:"cors_origins"`
}

type WordPressConfig struct {
	Domain   string        `yaml:"domain"`    // e.g. "https://cms.vipcaribbeanoffice.com", no trailing slash
	Timeout  time.Duration `yaml:"timeout"`   // request timeout, default: 15s
	PageSize int           `yaml:"page_size"` // per_page for collection fetches, default: 100
}

type BookingConfig struct {
	Weekday         time.Weekday  `yaml:"weekday"`           // single permitted weekday, default: Wednesday
	DayStart        string        `yaml:"day_start"`         // first slot, 24h "HH:MM", default: "09:00"
	DayEnd          string        `yaml:"day_end"`           // last slot (inclusive), default: "12:00"
	SlotInterval    time.Duration `yaml:"slot_interval"`     // default: 5m
	LockWindowHours int           `yaml:"lock_window_hours"` // rolling window for locked times, default: 24
}

type SMTPConfig struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	Username      string `yaml:"username"`
	Password      string `yaml:"password"`
	FromName      string `yaml:"from_name"`      // e.g. "VIP Caribbean"
	FromEmail     string `yaml:"from_email"`     // sender address
	InternalEmail string `yaml:"internal_email"` // recipient of internal notices
}

// Validate checks if the configuration is valid and returns an error if not.
func (c *Config) Validate() error {
	if c.WordPress.Domain == "" {
		return errors.New("wordpress.domain is required")
	}
	if strings.HasSuffix(c.WordPress.Domain, "/") {
		return errors.New("wordpress.domain must not end with a slash")
	}
	if c.WordPress.PageSize <= 0 {
		return fmt.Errorf("wordpress.page_size must be positive, got %d", c.WordPress.PageSize)
	}
	if c.SMTP.Host == "" {
		return errors.New("smtp.host is required")
	}
	if c.SMTP.FromEmail == "" {
		return errors.New("smtp.from_email is required")
	}
	if c.Booking.SlotInterval <= 0 {
		return fmt.Errorf("booking.slot_interval must be positive, got %v", c.Booking.SlotInterval)
	}
	if _, err := parseClock(c.Booking.DayStart); err != nil {
		return fmt.Errorf("booking.day_start: %w", err)
	}
	if _, err := parseClock(c.Booking.DayEnd); err != nil {
		return fmt.Errorf("booking.day_end: %w", err)
	}
	return nil
}

// setDefaults sets default values for configuration fields.
func setDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = DefaultServerAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.WordPress.Timeout == 0 {
		cfg.WordPress.Timeout = DefaultWordPressTimeout
	}
	if cfg.WordPress.PageSize == 0 {
		cfg.WordPress.PageSize = DefaultPageSize
	}
	if cfg.Booking.Weekday == 0 {
		cfg.Booking.Weekday = time.Wednesday
	}
	if cfg.Booking.DayStart == "" {
		cfg.Booking.DayStart = "09:00"
	}
	if cfg.Booking.DayEnd == "" {
		cfg.Booking.DayEnd = "12:00"
	}
	if cfg.Booking.SlotInterval == 0 {
		cfg.Booking.SlotInterval = 5 * time.Minute
	}
	if cfg.Booking.LockWindowHours == 0 {
		cfg.Booking.LockWindowHours = 24
	}
	if cfg.SMTP.Port == 0 {
		cfg.SMTP.Port = DefaultSMTPPort
	}
	if cfg.SMTP.FromName == "" {
		cfg.SMTP.FromName = "VIP Caribbean"
	}
	if cfg.SMTP.InternalEmail == "" {
		cfg.SMTP.InternalEmail = cfg.SMTP.FromEmail
	}
}

// overrideWithEnvVars overrides configuration with environment variables.
func overrideWithEnvVars(cfg *Config) {
	if domain := os.Getenv("WP_DOMAIN"); domain != "" {
		cfg.WordPress.Domain = strings.TrimSuffix(domain, "/")
	}
	if user := os.Getenv("EMAIL_USER"); user != "" {
		cfg.SMTP.Username = user
		if cfg.SMTP.FromEmail == "" {
			cfg.SMTP.FromEmail = user
		}
	}
	if pass := os.Getenv("EMAIL_PASS"); pass != "" {
		cfg.SMTP.Password = pass
	}
	if host := os.Getenv("SMTP_HOST"); host != "" {
		cfg.SMTP.Host = host
	}
	if port := os.Getenv("SITEAPI_PORT"); port != "" {
		cfg.Server.Address = ":" + port
	}
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		cfg.Server.CORSOrigins = parts
	}
	if appDebug := os.Getenv("APP_DEBUG"); appDebug != "" {
		cfg.Debug = parseBool(appDebug)
	}
}

// Load reads the YAML config file at path, applies defaults and environment
// overrides, and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(&cfg)
	overrideWithEnvVars(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// parseBool parses a string value as a boolean. Returns true for
// "true", "1", "yes" (case-insensitive), false otherwise.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes"
}

// parseClock parses a 24h "HH:MM" string into minutes since midnight.
func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid clock value %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock value %q out of range", s)
	}
	return h*60 + m, nil
}

// ClockMinutes returns the minutes-since-midnight value of a validated
// "HH:MM" string. It panics on malformed input; call Validate first.
func ClockMinutes(s string) int {
	v, err := parseClock(s)
	if err != nil {
		panic(err)
	}
	return v
}
