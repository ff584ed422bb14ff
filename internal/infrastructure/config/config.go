package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	BackendMemory = "memory"
	BackendMongo  = "mongo"
	BackendRedis  = "redis"

	// DevSessionSecret is the fallback signing key. Production deployments
	// must override it through SESSION_SECRET.
	DevSessionSecret = "piracy-detector-secret"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth    AuthConfig
	Fetch   FetchConfig
	Storage StorageConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type AuthConfig struct {
	SessionSecret string        `env:"SESSION_SECRET, default=piracy-detector-secret"`
	SessionTTL    time.Duration `env:"SESSION_TTL,    default=24h"`
	CookieSecure  bool          `env:"COOKIE_SECURE,  default=false"`
	BcryptCost    int           `env:"BCRYPT_COST,    default=10"`
}

type FetchConfig struct {
	Timeout      time.Duration `env:"FETCH_TIMEOUT,        default=30s"`
	MaxBodyBytes int64         `env:"FETCH_MAX_BODY_BYTES, default=10485760"`
	UserAgent    string        `env:"FETCH_USER_AGENT,     default=piracy-detector/1.0"`
}

type StorageConfig struct {
	CredentialBackend string `env:"CREDENTIAL_BACKEND, default=memory"`
	SessionBackend    string `env:"SESSION_BACKEND,    default=memory"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=piracy_detector"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsProduction reports whether ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.CredentialBackend {
	case BackendMemory, BackendMongo:
	default:
		return fmt.Errorf("unknown CREDENTIAL_BACKEND %q", c.Storage.CredentialBackend)
	}
	switch c.Storage.SessionBackend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.Storage.SessionBackend)
	}
	if c.Auth.SessionSecret == "" {
		return fmt.Errorf("SESSION_SECRET must not be empty")
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("FETCH_TIMEOUT must not be negative")
	}
	return nil
}
