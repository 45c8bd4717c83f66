package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	// DriverPostgres selects the PostgreSQL batch metadata store.
	DriverPostgres = "postgres"
	// DriverSQLite selects the SQLite batch metadata store.
	DriverSQLite = "sqlite"
)

// Config represents the application configuration structure.
// It contains settings for the environment, the batch metadata store,
// persistence policy and metrics output.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Database contains all batch metadata store related configurations
	Database struct {
		// Driver selects the store backend: postgres or sqlite
		Driver string `env:"DATABASE_DRIVER" env-default:"postgres" yaml:"driver"`
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"ephesoft" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"ephesoft" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"ephesoft" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"2" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"0" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
		// SQLitePath is the database file used when Driver is sqlite
		SQLitePath string `env:"DATABASE_SQLITE_PATH" env-default:"batches.db" yaml:"sqlitePath"`
		// BusyTimeout bounds waits on a locked SQLite database
		BusyTimeout time.Duration `env:"DATABASE_BUSY_TIMEOUT" env-default:"5s" yaml:"busyTimeout"`
	} `yaml:"database"`

	// Persistence controls how the batch xml is written back
	Persistence struct {
		// SurfaceErrors reports write failures to the caller instead of only logging them
		SurfaceErrors bool `env:"PERSISTENCE_SURFACE_ERRORS" env-default:"false" yaml:"surfaceErrors"`
	} `yaml:"persistence"`

	// Metrics controls metrics output
	Metrics struct {
		// TextfilePath receives Prometheus metrics after each run; empty disables it
		TextfilePath string `env:"METRICS_TEXTFILE_PATH" env-default:"" yaml:"textfilePath"`
	} `yaml:"metrics"`

	// LookupTimeout bounds the batch creation date query; zero leaves it to the driver
	LookupTimeout time.Duration `env:"LOOKUP_TIMEOUT" env-default:"0s" yaml:"lookupTimeout"`
}

// Load reads an optional .env file, then the yaml config file at configPath
// overlaid with environment variables. A missing config file is tolerated;
// defaults and the environment fill in.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not read .env file: %w", err)
	}

	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if errors.Is(err, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that cleanenv cannot.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	return nil
}
