package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session store backends.
const (
	StoreMemory = "memory"
	StoreBolt   = "bolt"
	StoreRedis  = "redis"
	StoreMongo  = "mongo"
)

type Config struct {
	Env       string `env:"ENV,        default=development"`
	LogLevel  string `env:"LOG_LEVEL,  default=info"`
	LogPretty bool   `env:"LOG_PRETTY, default=false"`

	Endpoints EndpointsConfig
	HTTP      HTTPConfig
	Session   SessionConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Sandbox   SandboxConfig
}

// EndpointsConfig holds the base URLs of the portal backends.
type EndpointsConfig struct {
	AuthURL      string `env:"AUTH_URL,      default=http://localhost:8085/auth-service/api"`
	ProposalURL  string `env:"PROPOSAL_URL,  default=http://localhost:8080/proposal-service"`
	DashboardURL string `env:"DASHBOARD_URL, default=http://localhost:8081"`
}

type HTTPConfig struct {
	Timeout  time.Duration `env:"HTTP_TIMEOUT, default=15s"`
	PageSize int           `env:"PAGE_SIZE,    default=10"`
}

// SessionConfig selects where the session is persisted. Store is one of
// memory, bolt, redis or mongo; Prefix namespaces keys in shared backends.
type SessionConfig struct {
	Store    string        `env:"SESSION_STORE,     default=bolt"`
	BoltPath string        `env:"SESSION_BOLT_PATH"`
	Prefix   string        `env:"SESSION_PREFIX,    default=portal:session:"`
	TTL      time.Duration `env:"SESSION_REDIS_TTL, default=0s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=tender_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// SandboxConfig configures the local development backend.
type SandboxConfig struct {
	Port      string        `env:"SANDBOX_PORT,       default=8080"`
	JWTSecret string        `env:"SANDBOX_JWT_SECRET, default=sandbox-secret"`
	TokenTTL  time.Duration `env:"SANDBOX_TOKEN_TTL,  default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if cfg.Session.Store == StoreBolt && cfg.Session.BoltPath == "" {
		cfg.Session.BoltPath = defaultBoltPath()
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Store {
	case StoreMemory, StoreBolt, StoreRedis, StoreMongo:
	default:
		return fmt.Errorf("config: unknown SESSION_STORE %q", c.Session.Store)
	}
	if c.HTTP.PageSize < 1 || c.HTTP.PageSize > 100 {
		return fmt.Errorf("config: PAGE_SIZE must be between 1 and 100, got %d", c.HTTP.PageSize)
	}
	return nil
}

// defaultBoltPath places the session file in the user's config directory,
// falling back to the working directory.
func defaultBoltPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tenderctl-session.db"
	}
	return filepath.Join(dir, "tenderctl", "session.db")
}
