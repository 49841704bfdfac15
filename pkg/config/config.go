package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Cart         CartConfig
	Quotes       QuotesConfig
	Sendgrid     SendgridConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CATALOGUE_APP_ENV" required:"true"`
	Port         string `envconfig:"CATALOGUE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"CATALOGUE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CATALOGUE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CATALOGUE_DB_DSN"`
	Driver string `envconfig:"CATALOGUE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"CATALOGUE_DB_HOST"`
	LegacyPort     int    `envconfig:"CATALOGUE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"CATALOGUE_DB_USER"`
	LegacyPassword string `envconfig:"CATALOGUE_DB_PASSWORD"`
	LegacyName     string `envconfig:"CATALOGUE_DB_NAME"`
	LegacySSLMode  string `envconfig:"CATALOGUE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CATALOGUE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CATALOGUE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CATALOGUE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CATALOGUE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CATALOGUE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"CATALOGUE_REDIS_ADDR"`
	Password     string        `envconfig:"CATALOGUE_REDIS_PASSWORD"`
	DB           int           `envconfig:"CATALOGUE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CATALOGUE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CATALOGUE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CATALOGUE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CATALOGUE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CATALOGUE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type CartConfig struct {
	// BlobTTL bounds how long an untouched cart survives in the key-value
	// store. Zero disables expiry.
	BlobTTL time.Duration `envconfig:"CATALOGUE_CART_BLOB_TTL" default:"720h"`
	// PersistDebounce is how long the cart writer waits to coalesce rapid
	// mutations into a single storage write.
	PersistDebounce time.Duration `envconfig:"CATALOGUE_CART_PERSIST_DEBOUNCE" default:"50ms"`
	// ContainerIdleTTL is how long an untouched in-memory container stays
	// registered before it is flushed and evicted. Zero disables eviction.
	ContainerIdleTTL time.Duration `envconfig:"CATALOGUE_CART_CONTAINER_IDLE_TTL" default:"30m"`
	MaxItemQuantity  int           `envconfig:"CATALOGUE_CART_MAX_ITEM_QUANTITY" default:"5000"`
}

type QuotesConfig struct {
	// RecipientEmail receives the internal notification for each submitted
	// quote request. Empty disables the notification side-channel.
	RecipientEmail string `envconfig:"CATALOGUE_QUOTES_RECIPIENT_EMAIL"`
}

type SendgridConfig struct {
	APIKey      string `envconfig:"CATALOGUE_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"CATALOGUE_SENDGRID_FROM_EMAIL"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"CATALOGUE_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"CATALOGUE_SQLITE_PATH" default:"catalogue.db"`
	AutoMigrate bool   `envconfig:"CATALOGUE_AUTO_MIGRATE" default:"false"`
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
