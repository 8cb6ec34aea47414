package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "config/config.yaml"

type ServerConfig struct {
	Port            int           `yaml:"port"`
	Environment     string        `yaml:"environment"`
	LogLevel        string        `yaml:"log_level"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	DSN          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Disabled bool          `yaml:"disabled"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type EmailConfig struct {
	SMTPHost      string `yaml:"smtp_host"`
	SMTPPort      int    `yaml:"smtp_port"`
	SMTPUser      string `yaml:"smtp_user"`
	SMTPPassword  string `yaml:"smtp_password"`
	FromEmail     string `yaml:"from_email"`
	OfficeAddress string `yaml:"office_address"`
	DryRun        bool   `yaml:"dry_run"`
}

type DashboardConfig struct {
	CompletedStatuses []string `yaml:"completed_statuses"`
	RefreshCron       string   `yaml:"refresh_cron"`
}

type JobsConfig struct {
	InitialStatus string `yaml:"initial_status"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	Auth      AuthConfig      `yaml:"auth"`
	Email     EmailConfig     `yaml:"email"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Jobs      JobsConfig      `yaml:"jobs"`
}

// Load reads the YAML file at path, applies .env and PROBUILD_* overrides,
// fills defaults and validates the result.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}
	_ = godotenv.Load()

	var cfg Config
	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// env-only configuration
	default:
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	overrideFromEnv(&cfg)
	cfg.setDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("PROBUILD_DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	} else if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("PROBUILD_REDIS_URL"); v != "" {
		cfg.Redis.URL = v
	}
	if v := os.Getenv("PROBUILD_REDIS_DISABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Redis.Disabled = b
		}
	}
	if v := os.Getenv("PROBUILD_JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("PROBUILD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("PROBUILD_ENVIRONMENT"); v != "" {
		cfg.Server.Environment = v
	}
	if v := os.Getenv("PROBUILD_LOG_LEVEL"); v != "" {
		cfg.Server.LogLevel = v
	}
	if v := os.Getenv("PROBUILD_ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("PROBUILD_SMTP_HOST"); v != "" {
		cfg.Email.SMTPHost = v
	}
	if v := os.Getenv("PROBUILD_SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Email.SMTPPort = port
		}
	}
	if v := os.Getenv("PROBUILD_SMTP_USER"); v != "" {
		cfg.Email.SMTPUser = v
	}
	if v := os.Getenv("PROBUILD_SMTP_PASSWORD"); v != "" {
		cfg.Email.SMTPPassword = v
	}
	if v := os.Getenv("PROBUILD_EMAIL_DRY_RUN"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Email.DryRun = b
		}
	}
}

func (c *Config) setDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Environment == "" {
		c.Server.Environment = "development"
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 20
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Redis.CacheTTL == 0 {
		c.Redis.CacheTTL = 5 * time.Minute
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Dashboard.RefreshCron == "" {
		c.Dashboard.RefreshCron = "*/5 * * * *"
	}
	if c.Jobs.InitialStatus == "" {
		c.Jobs.InitialStatus = "new_jobs"
	}
}

func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("database.url is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if !c.Redis.Disabled && c.Redis.URL == "" {
		return errors.New("redis.url is required unless redis.disabled is set")
	}
	if _, err := cron.ParseStandard(c.Dashboard.RefreshCron); err != nil {
		return fmt.Errorf("dashboard.refresh_cron: %w", err)
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}
