package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "smartdesa"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SMARTDESA_DB_DSN"
	EnvDBHost = "SMARTDESA_DB_HOST"
	EnvDBUser = "SMARTDESA_DB_USER"
	EnvDBName = "SMARTDESA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Site         SiteConfig
	Media        MediaConfig
	Cache        CacheConfig
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
	Env          string `envconfig:"SMARTDESA_APP_ENV" required:"true"`
	Port         string `envconfig:"SMARTDESA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SMARTDESA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SMARTDESA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SMARTDESA_DB_DSN"`
	Driver string `envconfig:"SMARTDESA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SMARTDESA_DB_HOST"`
	LegacyPort     int    `envconfig:"SMARTDESA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SMARTDESA_DB_USER"`
	LegacyPassword string `envconfig:"SMARTDESA_DB_PASSWORD"`
	LegacyName     string `envconfig:"SMARTDESA_DB_NAME"`
	LegacySSLMode  string `envconfig:"SMARTDESA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SMARTDESA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SMARTDESA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SMARTDESA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SMARTDESA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SMARTDESA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SMARTDESA_REDIS_ADDR"`
	Password     string        `envconfig:"SMARTDESA_REDIS_PASSWORD"`
	DB           int           `envconfig:"SMARTDESA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SMARTDESA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SMARTDESA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SMARTDESA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SMARTDESA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SMARTDESA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"SMARTDESA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"SMARTDESA_JWT_ISSUER" default:"smartdesa"`
	ExpirationMinutes int    `envconfig:"SMARTDESA_JWT_EXPIRATION_MINUTES" default:"720"`
}

// Expiration returns the access token lifetime.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// SiteConfig drives tenant hostname resolution and short-link construction.
type SiteConfig struct {
	BaseDomain    string `envconfig:"SMARTDESA_BASE_DOMAIN" default:"smartdesa.id"`
	LinkSubdomain string `envconfig:"SMARTDESA_LINK_DEFAULT_SUBDOMAIN" default:"go"`
}

type MediaConfig struct {
	SourceDir      string `envconfig:"SMARTDESA_MEDIA_SOURCE_DIR" default:"storage/media"`
	CacheDir       string `envconfig:"SMARTDESA_MEDIA_CACHE_DIR" default:"storage/cache/derivatives"`
	MaxWidth       int    `envconfig:"SMARTDESA_MEDIA_MAX_WIDTH" default:"1920"`
	MaxHeight      int    `envconfig:"SMARTDESA_MEDIA_MAX_HEIGHT" default:"1080"`
	DefaultQuality int    `envconfig:"SMARTDESA_MEDIA_DEFAULT_QUALITY" default:"80"`
}

type CacheConfig struct {
	StatsTTL   time.Duration `envconfig:"SMARTDESA_CACHE_STATS_TTL" default:"5m"`
	PopularTTL time.Duration `envconfig:"SMARTDESA_CACHE_POPULAR_TTL" default:"10m"`
	MediaTTL   time.Duration `envconfig:"SMARTDESA_CACHE_MEDIA_TTL" default:"15m"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SMARTDESA_AUTO_MIGRATE" default:"false"`
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
