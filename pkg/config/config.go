package config

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App                 AppConfig
	DB                  DBConfig
	Redis               RedisConfig
	Pricing             PricingConfig
	NewsletterRateLimit NewsletterRateLimitConfig
	FeatureFlags        FeatureFlagsConfig
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
	Env          string `envconfig:"NOVAMART_APP_ENV" default:"dev"`
	Port         string `envconfig:"NOVAMART_APP_PORT" default:"3000"`
	DataDir      string `envconfig:"NOVAMART_DATA_DIR" default:"."`
	LogLevel     string `envconfig:"NOVAMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NOVAMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	Driver     string `envconfig:"NOVAMART_DB_DRIVER" default:"sqlite"`
	DSN        string `envconfig:"NOVAMART_DB_DSN"`
	SQLitePath string `envconfig:"NOVAMART_DB_SQLITE_PATH"`

	Host     string `envconfig:"NOVAMART_DB_HOST"`
	Port     int    `envconfig:"NOVAMART_DB_PORT" default:"5432"`
	User     string `envconfig:"NOVAMART_DB_USER"`
	Password string `envconfig:"NOVAMART_DB_PASSWORD"`
	Name     string `envconfig:"NOVAMART_DB_NAME"`
	SSLMode  string `envconfig:"NOVAMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"NOVAMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"NOVAMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"NOVAMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"NOVAMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

// SQLiteFile resolves the database file path, defaulting to the data dir so a
// mounted persistent disk keeps the file across deploys.
func (db DBConfig) SQLiteFile(dataDir string) string {
	if db.SQLitePath != "" {
		return db.SQLitePath
	}
	if dataDir == "" {
		dataDir = "."
	}
	return filepath.Join(dataDir, DefaultSQLiteFile)
}

type RedisConfig struct {
	URL          string        `envconfig:"NOVAMART_REDIS_URL"`
	Address      string        `envconfig:"NOVAMART_REDIS_ADDR"`
	Password     string        `envconfig:"NOVAMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"NOVAMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NOVAMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NOVAMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NOVAMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NOVAMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NOVAMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured. The storefront
// runs without redis; only the newsletter rate limiter depends on it.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

// PricingConfig carries the cart pricing rules. Defaults match the published
// storefront behavior.
type PricingConfig struct {
	TaxRate               decimal.Decimal `envconfig:"NOVAMART_PRICING_TAX_RATE" default:"0.10"`
	FreeShippingThreshold decimal.Decimal `envconfig:"NOVAMART_PRICING_FREE_SHIPPING_THRESHOLD" default:"100.00"`
	FlatShippingFee       decimal.Decimal `envconfig:"NOVAMART_PRICING_FLAT_SHIPPING_FEE" default:"7.00"`
	PromoCode             string          `envconfig:"NOVAMART_PRICING_PROMO_CODE" default:"SAVE10"`
	PromoRate             decimal.Decimal `envconfig:"NOVAMART_PRICING_PROMO_RATE" default:"0.10"`
	PromoCap              decimal.Decimal `envconfig:"NOVAMART_PRICING_PROMO_CAP" default:"50.00"`
	MaxLineQuantity       int             `envconfig:"NOVAMART_PRICING_MAX_LINE_QTY" default:"99"`
}

type NewsletterRateLimitConfig struct {
	Window     time.Duration `envconfig:"NOVAMART_NEWSLETTER_RATE_LIMIT_WINDOW" default:"5m"`
	IPLimit    int           `envconfig:"NOVAMART_NEWSLETTER_RATE_LIMIT_IP_LIMIT" default:"20"`
	EmailLimit int           `envconfig:"NOVAMART_NEWSLETTER_RATE_LIMIT_EMAIL_LIMIT" default:"3"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"NOVAMART_AUTO_MIGRATE" default:"true"`
	SeedOnStart bool `envconfig:"NOVAMART_SEED_ON_START" default:"true"`
}

func (db *DBConfig) ensureDSN() error {
	if db.IsSQLite() || db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
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
