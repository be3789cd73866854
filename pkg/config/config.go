package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App        AppConfig
	Storefront StorefrontConfig
	Checkout   CheckoutConfig
	Session    SessionConfig
	Redis      RedisConfig
	GCP        GCPConfig
	GCS        GCSConfig
	Upload     UploadConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"STOREFRONT_APP_ENV" required:"true"`
	Port         string `envconfig:"STOREFRONT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"STOREFRONT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"STOREFRONT_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"STOREFRONT_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StorefrontConfig locates the upstream storefront data source.
type StorefrontConfig struct {
	ID           string        `envconfig:"STOREFRONT_ID" required:"true"`
	BaseURL      string        `envconfig:"STOREFRONT_BASE_URL" required:"true"`
	FetchTimeout time.Duration `envconfig:"STOREFRONT_FETCH_TIMEOUT" default:"10s"`
}

// CheckoutConfig tunes the payment-checkout submission path.
type CheckoutConfig struct {
	BaseURL       string        `envconfig:"STOREFRONT_CHECKOUT_BASE_URL"`
	SubmitTimeout time.Duration `envconfig:"STOREFRONT_CHECKOUT_TIMEOUT" default:"30s"`
}

// EffectiveBaseURL falls back to the storefront base URL when no dedicated
// checkout host is configured.
func (c CheckoutConfig) EffectiveBaseURL(storefront StorefrontConfig) string {
	if strings.TrimSpace(c.BaseURL) != "" {
		return c.BaseURL
	}
	return storefront.BaseURL
}

type SessionConfig struct {
	IdleTTL       time.Duration `envconfig:"STOREFRONT_SESSION_IDLE_TTL" default:"2h"`
	SweepInterval time.Duration `envconfig:"STOREFRONT_SESSION_SWEEP_INTERVAL" default:"5m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"STOREFRONT_REDIS_URL"`
	Address      string        `envconfig:"STOREFRONT_REDIS_ADDR"`
	Password     string        `envconfig:"STOREFRONT_REDIS_PASSWORD"`
	DB           int           `envconfig:"STOREFRONT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"STOREFRONT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"STOREFRONT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"STOREFRONT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"STOREFRONT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured at all. The
// idempotency guard degrades to pass-through without one.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type GCPConfig struct {
	ProjectID              string `envconfig:"STOREFRONT_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"STOREFRONT_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"STOREFRONT_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName string `envconfig:"STOREFRONT_GCS_BUCKET_NAME"`
}

// UploadConfig drives cmd/upload-assets.
type UploadConfig struct {
	Concurrency int `envconfig:"STOREFRONT_UPLOAD_CONCURRENCY" default:"8"`
}
