package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

// Storage backends, picked in this order by Config.Storage.
const (
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageSaveFile = "savefile"
)

type Config struct {
	Stage                  string        `env:"STAGE" envDefault:"dev"`
	Port                   int           `env:"PORT" envDefault:"8000"`
	DatabaseURL            string        `env:"DATABASE_URL"`
	SQLitePath             string        `env:"SQLITE_PATH"`
	SaveDir                string        `env:"SAVE_DIR" envDefault:"."`
	TickInterval           time.Duration `env:"TICK_INTERVAL" envDefault:"16ms"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"20m"`
	SessionGracePeriod     time.Duration `env:"SESSION_GRACE_PERIOD" envDefault:"30s"`
}

// Load reads .env outside prod, then the environment. A missing .env is
// fine; the environment alone can carry everything.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if os.Getenv("STAGE") != StageProd {
		if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func MustLoad(envFiles ...string) Config {
	cfg, err := Load(envFiles...)
	if err != nil {
		panic(err)
	}
	return cfg
}

func (c Config) validate() error {
	if c.Stage != StageProd && c.Stage != StageDev {
		return fmt.Errorf("invalid type of development stage: %s", c.Stage)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive: %s", c.TickInterval)
	}
	return nil
}

func (c Config) Storage() string {
	switch {
	case c.DatabaseURL != "":
		return StoragePostgres
	case c.SQLitePath != "":
		return StorageSQLite
	default:
		return StorageSaveFile
	}
}

func (c Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}
