package config

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"diligencias/internal/domain"
	"diligencias/internal/schedule"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "change-me-jwt-secret"

type Config struct {
	AppEnv      string `mapstructure:"APP_ENV"`
	HTTPAddr    string `mapstructure:"HTTP_ADDR"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	Timezone    string `mapstructure:"TZ"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	JWTSecret          string        `mapstructure:"JWT_SECRET"`
	SessionTTL         time.Duration `mapstructure:"SESSION_TTL"`
	AuthPasswordHash   string        `mapstructure:"AUTH_PASSWORD_HASH"`
	CookieSecure       bool          `mapstructure:"COOKIE_SECURE"`
	CORSAllowedOrigins string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	LoginRateLimit     int           `mapstructure:"LOGIN_RATE_LIMIT"`
	LoginRateWindow    time.Duration `mapstructure:"LOGIN_RATE_WINDOW"`

	Slots          string `mapstructure:"SLOTS"`
	StateHolidays  string `mapstructure:"STATE_HOLIDAYS"`
	HolidaysAPIURL string `mapstructure:"HOLIDAYS_API_URL"`
	ViaCEPURL      string `mapstructure:"VIACEP_API_URL"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	ResendAPIKey string `mapstructure:"RESEND_API_KEY"`
	ResendAPIURL string `mapstructure:"RESEND_API_URL"`
	EmailFrom    string `mapstructure:"EMAIL_FROM"`
	NotifyEmails string `mapstructure:"NOTIFY_EMAILS"`
	ExpoPushURL  string `mapstructure:"EXPO_PUSH_URL"`

	ReceiptIssuer string `mapstructure:"RECEIPT_ISSUER"`
	ReceiptClient string `mapstructure:"RECEIPT_CLIENT"`

	QueueWorkers    int           `mapstructure:"QUEUE_WORKERS"`
	UpstreamTimeout time.Duration `mapstructure:"UPSTREAM_TIMEOUT"`

	Location *time.Location    `mapstructure:"-"`
	Catalog  *schedule.Catalog `mapstructure:"-"`
	Holidays []domain.Holiday  `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "diligencias.db")
	v.SetDefault("TZ", "America/Sao_Paulo")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("AUTH_PASSWORD_HASH", "")
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("LOGIN_RATE_LIMIT", 10)
	v.SetDefault("LOGIN_RATE_WINDOW", "5m")

	v.SetDefault("SLOTS", "")
	v.SetDefault("STATE_HOLIDAYS", "08-11:Dia de Santa Catarina")
	v.SetDefault("HOLIDAYS_API_URL", "https://brasilapi.com.br/api/feriados/v1")
	v.SetDefault("VIACEP_API_URL", "https://viacep.com.br/ws")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("RESEND_API_KEY", "")
	v.SetDefault("RESEND_API_URL", "https://api.resend.com/emails")
	v.SetDefault("EMAIL_FROM", "")
	v.SetDefault("NOTIFY_EMAILS", "")
	v.SetDefault("EXPO_PUSH_URL", "https://exp.host/--/api/v2/push/send")

	v.SetDefault("RECEIPT_ISSUER", "Serviço de Diligências")
	v.SetDefault("RECEIPT_CLIENT", "Cartório")

	v.SetDefault("QUEUE_WORKERS", 4)
	v.SetDefault("UPSTREAM_TIMEOUT", "8s")
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.AppEnv = strings.ToLower(strings.TrimSpace(cfg.AppEnv))

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TZ %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if strings.TrimSpace(cfg.Slots) == "" {
		cfg.Catalog = schedule.DefaultCatalog()
	} else {
		cfg.Catalog, err = schedule.ParseCatalog(cfg.Slots)
		if err != nil {
			return nil, fmt.Errorf("invalid SLOTS: %w", err)
		}
	}

	cfg.Holidays, err = ParseStateHolidays(cfg.StateHolidays)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	if cfg.LoginRateLimit <= 0 {
		return fmt.Errorf("LOGIN_RATE_LIMIT must be > 0")
	}
	if cfg.LoginRateWindow <= 0 {
		return fmt.Errorf("LOGIN_RATE_WINDOW must be > 0")
	}
	if cfg.QueueWorkers <= 0 {
		return fmt.Errorf("QUEUE_WORKERS must be > 0")
	}
	if cfg.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be > 0")
	}

	if cfg.IsProdLike() {
		if isEmptyOrDefault(cfg.JWTSecret, defaultJWTSecret) {
			return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
		}
		if strings.TrimSpace(cfg.AuthPasswordHash) == "" {
			return fmt.Errorf("in prod/release AUTH_PASSWORD_HASH must be set")
		}
		if !cfg.CookieSecure {
			return fmt.Errorf("in prod/release COOKIE_SECURE must be true")
		}
	}
	return nil
}

func (c *Config) IsProdLike() bool {
	return c.AppEnv == "prod" || c.AppEnv == "production" || c.AppEnv == "release"
}

func (c *Config) NotifyRecipients() []string {
	return splitList(c.NotifyEmails)
}

func (c *Config) AllowedOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

// ParseStateHolidays reads "MM-DD:Name" pairs separated by ";" or ",".
func ParseStateHolidays(raw string) ([]domain.Holiday, error) {
	out := make([]domain.Holiday, 0)
	for _, item := range strings.FieldsFunc(raw, func(r rune) bool { return r == ';' || r == ',' }) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		md, name, ok := strings.Cut(item, ":")
		md, name = strings.TrimSpace(md), strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid STATE_HOLIDAYS entry %q", item)
		}
		if _, err := time.Parse("01-02", md); err != nil {
			return nil, fmt.Errorf("invalid STATE_HOLIDAYS date %q", md)
		}
		out = append(out, domain.Holiday{Date: md, Name: name, Type: domain.HolidayState})
	}
	return out, nil
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
