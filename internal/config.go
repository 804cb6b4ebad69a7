package internal

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Security      SecurityConfig      `mapstructure:"security"`
	SMTP          SMTPConfig          `mapstructure:"smtp"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port" env:"HTTP_PORT" envDefault:"8080"`
	BaseURL           string        `mapstructure:"base_url" env:"BASE_URL"`
	Environment       string        `mapstructure:"environment" env:"APP_ENV" envDefault:"development"`
	AllowedOrigins    string        `mapstructure:"allowed_origins" env:"ALLOWED_ORIGINS"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" env:"READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout" env:"READ_TIMEOUT" envDefault:"15s"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout" env:"IDLE_TIMEOUT" envDefault:"60s"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout" env:"WRITE_TIMEOUT" envDefault:"15s"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns" env:"DB_MAX_OPEN_CONNS" envDefault:"10"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns" env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" env:"DB_CONN_MAX_IDLE_TIME" envDefault:"5m"`
	Source          string        `mapstructure:"source" env:"DATABASE_URL"`
}

type SecurityConfig struct {
	// SessionSecret signs the HS256 session token. The exp claim derived from
	// SessionTTL is the authoritative expiry; the cookie expiry is set to the
	// same instant so the two can never diverge.
	SessionSecret string        `mapstructure:"session_secret" env:"SESSION_SECRET"`
	SessionTTL    time.Duration `mapstructure:"session_ttl" env:"SESSION_TTL" envDefault:"168h"`
	OTPTTL        time.Duration `mapstructure:"otp_ttl" env:"OTP_TTL" envDefault:"5m"`
	ResetTokenTTL time.Duration `mapstructure:"reset_token_ttl" env:"RESET_TOKEN_TTL" envDefault:"10m"`
	BCryptCost    int           `mapstructure:"bcrypt_cost" env:"BCRYPT_COST" envDefault:"10"`
	LoginRate     float64       `mapstructure:"login_rate" env:"LOGIN_RATE" envDefault:"1"`
	LoginBurst    int           `mapstructure:"login_burst" env:"LOGIN_BURST" envDefault:"5"`
}

type SMTPConfig struct {
	Host     string `mapstructure:"host" env:"SMTP_HOST"`
	Port     int    `mapstructure:"port" env:"SMTP_PORT" envDefault:"465"`
	Username string `mapstructure:"username" env:"SMTP_USERNAME"`
	Password string `mapstructure:"password" env:"SMTP_PASSWORD"`
	From     string `mapstructure:"from" env:"SMTP_FROM"`
}

type RedisConfig struct {
	// Optional. When empty the OTP and reset-token stores fall back to the
	// in-process implementation, which does not survive restarts and is not
	// shared between instances.
	URL string `mapstructure:"url" env:"REDIS_URL"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" env:"LOG_LEVEL" envDefault:"info"`
	Format string `mapstructure:"format" env:"LOG_FORMAT" envDefault:"text"`
}

// LoadConfigFromEnv builds the config purely from environment variables.
// Used for container deployments where no config file is mounted.
func LoadConfigFromEnv() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config from environment: %w", err)
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Security.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("security config: %v", err))
	}

	if err := c.SMTP.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("smtp config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *SecurityConfig) Validate() error {
	if len(c.SessionSecret) < 32 {
		return errors.New("session secret must be at least 32 characters")
	}
	if c.BCryptCost < 10 || c.BCryptCost > 15 {
		return errors.New("bcrypt cost must be between 10 and 15")
	}
	if c.SessionTTL < time.Minute {
		return errors.New("session_ttl must be at least 1 minute")
	}
	if c.OTPTTL < 30*time.Second {
		return errors.New("otp_ttl must be at least 30 seconds")
	}
	return nil
}

func (c *SMTPConfig) Validate() error {
	if c.Host == "" {
		return errors.New("smtp host is required")
	}
	if c.From == "" {
		return errors.New("smtp from address is required")
	}
	return nil
}
