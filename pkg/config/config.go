package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every environment variable consumed by the server.
const EnvPrefix = "LOGISTICS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"LOGISTICS_APP_ENV" required:"true"`
	Port         string `envconfig:"LOGISTICS_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LOGISTICS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LOGISTICS_LOG_WARN_STACK" default:"false"`

	ReadTimeout  time.Duration `envconfig:"LOGISTICS_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout time.Duration `envconfig:"LOGISTICS_HTTP_WRITE_TIMEOUT" default:"30s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"LOGISTICS_DB_DSN"`

	Host     string `envconfig:"LOGISTICS_DB_HOST"`
	Port     int    `envconfig:"LOGISTICS_DB_PORT" default:"5432"`
	User     string `envconfig:"LOGISTICS_DB_USER"`
	Password string `envconfig:"LOGISTICS_DB_PASSWORD"`
	Name     string `envconfig:"LOGISTICS_DB_NAME"`
	SSLMode  string `envconfig:"LOGISTICS_DB_SSLMODE" default:"disable"`

	// TablePrefix is prepended to every table name, preserving the
	// original deployment's configurable table naming.
	TablePrefix string `envconfig:"LOGISTICS_DB_TABLE_PREFIX"`

	MaxOpenConns    int           `envconfig:"LOGISTICS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"LOGISTICS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"LOGISTICS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"LOGISTICS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"LOGISTICS_REDIS_URL"`
	Address      string        `envconfig:"LOGISTICS_REDIS_ADDR"`
	Password     string        `envconfig:"LOGISTICS_REDIS_PASSWORD"`
	DB           int           `envconfig:"LOGISTICS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"LOGISTICS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"LOGISTICS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"LOGISTICS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"LOGISTICS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"LOGISTICS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all. The rate
// limiter degrades to a no-op when redis is absent.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"LOGISTICS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"LOGISTICS_JWT_ISSUER" default:"logistics-app"`
	Audience          string `envconfig:"LOGISTICS_JWT_AUDIENCE"`
	ExpirationMinutes int    `envconfig:"LOGISTICS_JWT_EXPIRATION_MINUTES" default:"60"`
}

// TokenTTL returns the access token lifetime.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"LOGISTICS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"LOGISTICS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"LOGISTICS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"LOGISTICS_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	for env, value := range map[string]string{
		"LOGISTICS_DB_HOST": db.Host,
		"LOGISTICS_DB_USER": db.User,
		"LOGISTICS_DB_NAME": db.Name,
	} {
		if value == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either LOGISTICS_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
