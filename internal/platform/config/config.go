package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Addr                 string        `envconfig:"APP_ADDR" default:":8080"`
	Environment          string        `envconfig:"APP_ENV" default:"development"`
	DatabaseURL          string        `envconfig:"DATABASE_URL"`
	JWTSecret            string        `envconfig:"JWT_SECRET"`
	TokenTTL             time.Duration `envconfig:"TOKEN_TTL" default:"8h"`
	DataEncryptionKey    string        `envconfig:"DATA_ENCRYPTION_KEY"`
	FrontendDir          string        `envconfig:"FRONTEND_DIR" default:"frontend/dist"`
	RunMigrations        bool          `envconfig:"RUN_MIGRATIONS" default:"true"`
	MigrationsDir        string        `envconfig:"MIGRATIONS_DIR" default:"migrations"`
	RunSeed              bool          `envconfig:"RUN_SEED" default:"true"`
	SeedAdminEmail       string        `envconfig:"SEED_ADMIN_EMAIL"`
	SeedAdminPassword    string        `envconfig:"SEED_ADMIN_PASSWORD"`
	AllowSelfSignup      bool          `envconfig:"ALLOW_SELF_SIGNUP" default:"true"`
	MaxBodyBytes         int64         `envconfig:"MAX_BODY_BYTES" default:"1048576"`
	RequestTimeout       time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	LogLevel             string        `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat            string        `envconfig:"LOG_FORMAT" default:""`
	RedisAddr            string        `envconfig:"REDIS_ADDR"`
	StoreRetryMaxElapsed time.Duration `envconfig:"STORE_RETRY_MAX_ELAPSED" default:"3s"`
	MetricsEnabled       bool          `envconfig:"METRICS_ENABLED" default:"true"`
}

// Load reads the configuration from the environment. Call godotenv.Load first
// if values should also come from a .env file.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.IsProduction() {
		if strings.TrimSpace(c.JWTSecret) == "" {
			return fmt.Errorf("JWT_SECRET must be set to a strong value in production")
		}
		if strings.TrimSpace(c.DataEncryptionKey) == "" {
			return fmt.Errorf("DATA_ENCRYPTION_KEY must be set in production for encryption at rest")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedAdminPassword) == "" {
			return fmt.Errorf("SEED_ADMIN_PASSWORD must be changed or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive")
	}
	return nil
}
