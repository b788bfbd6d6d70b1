package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the service.
type Config struct {
	AppEnv    string `envconfig:"APP_ENV" default:"development" toml:"app_env"`
	Port      int    `envconfig:"PORT" default:"8080" toml:"port"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" toml:"log_level"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console" toml:"log_format"`

	MasterSheetID         string `envconfig:"MASTER_SHEET_ID" toml:"master_sheet_id"`
	DefaultSheetID        string `envconfig:"DEFAULT_SHEET_ID" toml:"default_sheet_id"`
	GoogleCredentialsJSON string `envconfig:"GOOGLE_CREDENTIALS_JSON" toml:"-"`
	GoogleCredentialsFile string `envconfig:"GOOGLE_CREDENTIALS_FILE" toml:"google_credentials_file"`

	SMTPHost     string `envconfig:"SMTP_HOST" default:"smtp.gmail.com" toml:"smtp_host"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587" toml:"smtp_port"`
	SMTPUsername string `envconfig:"SMTP_USERNAME" toml:"smtp_username"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD" toml:"-"`
	MailFrom     string `envconfig:"MAIL_FROM" toml:"mail_from"`
	MailReplyTo  string `envconfig:"MAIL_REPLY_TO" toml:"mail_reply_to"`

	SchedulerEnabled       bool          `envconfig:"SCHEDULER_ENABLED" default:"true" toml:"scheduler_enabled"`
	SchedulerInterval      time.Duration `envconfig:"SCHEDULER_INTERVAL" default:"60s" toml:"-"`
	SchedulerTriggerHour   int           `envconfig:"SCHEDULER_TRIGGER_HOUR" default:"18" toml:"scheduler_trigger_hour"`
	SchedulerWindowMinutes int           `envconfig:"SCHEDULER_WINDOW_MINUTES" default:"5" toml:"scheduler_window_minutes"`
	SchedulerUTCOffset     string        `envconfig:"SCHEDULER_UTC_OFFSET" default:"+05:30" toml:"scheduler_utc_offset"`

	RedisAddr         string        `envconfig:"REDIS_ADDR" toml:"redis_addr"`
	RedisPassword     string        `envconfig:"REDIS_PASSWORD" toml:"-"`
	RedisDB           int           `envconfig:"REDIS_DB" default:"0" toml:"redis_db"`
	DirectoryCacheTTL time.Duration `envconfig:"DIRECTORY_CACHE_TTL" default:"0s" toml:"-"`

	DatabaseURL string `envconfig:"DATABASE_URL" toml:"-"`

	MinioEndpoint  string `envconfig:"MINIO_ENDPOINT" toml:"minio_endpoint"`
	MinioAccessKey string `envconfig:"MINIO_ACCESS_KEY" toml:"-"`
	MinioSecretKey string `envconfig:"MINIO_SECRET_KEY" toml:"-"`
	MinioUseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false" toml:"minio_use_ssl"`
	MinioBucket    string `envconfig:"MINIO_BUCKET" default:"sheetmart-reports" toml:"minio_bucket"`

	AdminJWTSecret string `envconfig:"ADMIN_JWT_SECRET" toml:"-"`
	AdminUsername  string `envconfig:"ADMIN_USERNAME" toml:"admin_username"`
	AdminPassword  string `envconfig:"ADMIN_PASSWORD" toml:"-"`
}

// Load reads configuration from the environment, then applies the optional TOML
// file named by CONFIG_FILE. Keys present in the file override the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile overlays values from a TOML file.
func (c *Config) LoadFile(filename string) error {
	if _, err := toml.DecodeFile(filename, c); err != nil {
		return fmt.Errorf("failed to load config file: %w", err)
	}
	return nil
}

// Validate checks the settings needed to start the process at all. The master
// sheet id is not required here: directory operations fail on their own.
func (c *Config) Validate() error {
	if c.GoogleCredentialsJSON == "" && c.GoogleCredentialsFile == "" {
		return errors.New("GOOGLE_CREDENTIALS_JSON or GOOGLE_CREDENTIALS_FILE must be provided")
	}
	if c.SchedulerTriggerHour < 0 || c.SchedulerTriggerHour > 23 {
		return fmt.Errorf("scheduler trigger hour must be 0-23, got %d", c.SchedulerTriggerHour)
	}
	if c.SchedulerWindowMinutes <= 0 || c.SchedulerWindowMinutes > 60 {
		return fmt.Errorf("scheduler window must be 1-60 minutes, got %d", c.SchedulerWindowMinutes)
	}
	if _, err := ParseUTCOffset(c.SchedulerUTCOffset); err != nil {
		return err
	}
	return nil
}

// GoogleCredentials returns the service account JSON, reading the file when needed.
func (c *Config) GoogleCredentials() ([]byte, error) {
	if c.GoogleCredentialsJSON != "" {
		return []byte(c.GoogleCredentialsJSON), nil
	}
	data, err := os.ReadFile(c.GoogleCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return data, nil
}

// SchedulerLocation is the fixed zone the daily trigger window is evaluated in.
func (c *Config) SchedulerLocation() *time.Location {
	loc, err := ParseUTCOffset(c.SchedulerUTCOffset)
	if err != nil {
		return time.UTC
	}
	return loc
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// ParseUTCOffset turns "+05:30" / "-04:00" / "+0530" into a fixed zone.
func ParseUTCOffset(offset string) (*time.Location, error) {
	raw := strings.TrimSpace(offset)
	if raw == "" || raw == "Z" {
		return time.UTC, nil
	}

	sign := 1
	switch raw[0] {
	case '+':
		raw = raw[1:]
	case '-':
		sign = -1
		raw = raw[1:]
	}
	raw = strings.ReplaceAll(raw, ":", "")
	if len(raw) != 4 {
		return nil, fmt.Errorf("invalid UTC offset %q", offset)
	}

	hours, err := strconv.Atoi(raw[:2])
	if err != nil || hours > 14 {
		return nil, fmt.Errorf("invalid UTC offset %q", offset)
	}
	minutes, err := strconv.Atoi(raw[2:])
	if err != nil || minutes > 59 {
		return nil, fmt.Errorf("invalid UTC offset %q", offset)
	}

	seconds := sign * (hours*3600 + minutes*60)
	return time.FixedZone("UTC"+offset, seconds), nil
}
