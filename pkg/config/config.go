package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "storefrontz"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv   = "STOREFRONTZ_APP_ENV"
	EnvPort     = "STOREFRONTZ_APP_PORT"
	EnvDBDSN    = "STOREFRONTZ_DB_DSN"
	EnvDBHost   = "STOREFRONTZ_DB_HOST"
	EnvDBUser   = "STOREFRONTZ_DB_USER"
	EnvDBName   = "STOREFRONTZ_DB_NAME"
	EnvRedisURL = "STOREFRONTZ_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Gemini       GeminiConfig
	PublicURL    PublicURLConfig
	PublicWrites PublicWriteRateLimitConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONTZ_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONTZ_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOREFRONTZ_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONTZ_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"STOREFRONTZ_DB_DSN"`
	Driver string `envconfig:"STOREFRONTZ_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"STOREFRONTZ_DB_HOST"`
	LegacyPort     int    `envconfig:"STOREFRONTZ_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"STOREFRONTZ_DB_USER"`
	LegacyPassword string `envconfig:"STOREFRONTZ_DB_PASSWORD"`
	LegacyName     string `envconfig:"STOREFRONTZ_DB_NAME"`
	LegacySSLMode  string `envconfig:"STOREFRONTZ_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"STOREFRONTZ_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"STOREFRONTZ_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"STOREFRONTZ_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"STOREFRONTZ_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONTZ_REDIS_URL" required:"true"`
	Address      string        `envconfig:"STOREFRONTZ_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONTZ_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONTZ_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONTZ_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONTZ_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONTZ_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONTZ_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONTZ_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"STOREFRONTZ_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"STOREFRONTZ_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"STOREFRONTZ_JWT_EXPIRATION_MINUTES" required:"true"`
}

// GeminiConfig carries the generative-content API settings. An empty API key
// disables outbound generation; the content generator then always serves its
// fallback templates.
type GeminiConfig struct {
	APIKey  string        `envconfig:"STOREFRONTZ_GEMINI_API_KEY"`
	Model   string        `envconfig:"STOREFRONTZ_GEMINI_MODEL" default:"gemini-pro"`
	Timeout time.Duration `envconfig:"STOREFRONTZ_GEMINI_TIMEOUT" default:"20s"`
}

// PublicURLConfig holds the externally visible base URL used to build
// shareable store links and QR payloads.
type PublicURLConfig struct {
	BaseURL string `envconfig:"STOREFRONTZ_PUBLIC_BASE_URL" default:"http://localhost:3000"`
}

// StoreURL returns the public address for the given slug.
func (p PublicURLConfig) StoreURL(slug string) string {
	return strings.TrimRight(p.BaseURL, "/") + "/store/" + slug
}

// CORSConfig lists the browser origins allowed to call the API. Defaults
// cover local development of the storefront frontend.
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"STOREFRONTZ_CORS_ORIGINS" default:"http://localhost:3000"`
}

type PublicWriteRateLimitConfig struct {
	Window       time.Duration `envconfig:"STOREFRONTZ_PUBLIC_WRITE_WINDOW" default:"1m"`
	PublishLimit int           `envconfig:"STOREFRONTZ_PUBLISH_IP_LIMIT" default:"10"`
	BookingLimit int           `envconfig:"STOREFRONTZ_BOOKING_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"STOREFRONTZ_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
