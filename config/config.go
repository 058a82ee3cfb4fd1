package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port           string
	DBDriver       string
	DBPath         string
	DBDSN          string
	LogLevel       string
	LogDevelopment bool
	ReportWorkers  int
	SeedFile       string
	APIPrefixes    []string
}

// ErrEnvFileMissing is returned alongside a usable Config when no .env file
// was found and only the process environment was read.
var ErrEnvFileMissing = errors.New(".env file not found, using environment variables")

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (Config, error) {
	var envErr error
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("error loading .env: %w", err)
		}
		envErr = ErrEnvFileMissing
	}

	cfg := FromEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, envErr
}

// FromEnv builds a Config from the current environment without touching
// .env files.
func FromEnv() Config {
	return Config{
		Port:           getEnvOrDefault("PORT", "8080"),
		DBDriver:       strings.ToLower(getEnvOrDefault("DB_DRIVER", DriverSQLite)),
		DBPath:         getEnvOrDefault("DB_PATH", "employees.db"),
		DBDSN:          getEnvOrDefault("DB_DSN", ""),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogDevelopment: getEnvBool("LOG_DEVELOPMENT", false),
		ReportWorkers:  getEnvInt("REPORT_WORKERS", 1),
		SeedFile:       getEnvOrDefault("SEED_FILE", ""),
		APIPrefixes:    getEnvList("API_PREFIXES", []string{"/", "/api"}),
	}
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for the %s driver", DriverSQLite)
		}
	case DriverPostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required for the %s driver", DriverPostgres)
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.ReportWorkers < 1 {
		return fmt.Errorf("REPORT_WORKERS must be at least 1, got %d", c.ReportWorkers)
	}
	if len(c.APIPrefixes) == 0 {
		return errors.New("API_PREFIXES must name at least one prefix")
	}
	return nil
}
