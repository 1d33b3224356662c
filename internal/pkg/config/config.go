package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,          default=8080"`
	Env      string `env:"ENV,           default=development"`
	LogLevel string `env:"LOG_LEVEL,     default=info"`

	// AuthAPIURL is the base URL of the external Auth API.
	AuthAPIURL string `env:"AUTH_API_URL,  default=http://localhost:4000/api"`

	// SessionFile is where the file-backed store keeps the session blob.
	SessionFile string `env:"SESSION_FILE,  default=.pawconnect/session.json"`

	// SessionStore selects the persistence backend: "file" or "redis".
	SessionStore string `env:"SESSION_STORE, default=file"`

	Redis RedisConfig
	Mongo MongoConfig
	Stub  StubConfig
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=pawconnect"`
}

// StubConfig configures the development Auth API stub only; the production
// backend owns its own signing policy.
type StubConfig struct {
	JWTSecret string        `env:"STUB_JWT_SECRET, default=dev-secret"`
	TokenTTL  time.Duration `env:"STUB_TOKEN_TTL,  default=24h"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
