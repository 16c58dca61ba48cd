package cmd

import (
	"fmt"
	"strconv"

	"github.com/thanosshawn/shopAdmin/internal/core/application/usecases/commands"
	"github.com/thanosshawn/shopAdmin/internal/jobs"
	"github.com/thanosshawn/shopAdmin/internal/pkg/errs"
)

const maxBulkParallelism = 64

type Config struct {
	HTTPPort            string
	DBHost              string
	DBPort              string
	DBUser              string
	DBPassword          string
	DBName              string
	DBSslMode           string
	SnapshotRefreshSpec string
	BulkParallelism     int
}

// ConfigFromEnv reads the configuration through getenv (os.Getenv after
// godotenv has loaded .env). Unset optional values get their defaults.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	config := Config{
		HTTPPort:            withDefault(getenv("HTTP_PORT"), "8080"),
		DBHost:              getenv("DB_HOST"),
		DBPort:              withDefault(getenv("DB_PORT"), "5432"),
		DBUser:              getenv("DB_USER"),
		DBPassword:          getenv("DB_PASSWORD"),
		DBName:              getenv("DB_NAME"),
		DBSslMode:           withDefault(getenv("DB_SSLMODE"), "disable"),
		SnapshotRefreshSpec: withDefault(getenv("SNAPSHOT_REFRESH_SPEC"), jobs.DefaultSnapshotRefreshSpec),
		BulkParallelism:     commands.DefaultBulkParallelism,
	}

	if raw := getenv("BULK_PARALLELISM"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, errs.NewValueIsInvalidErrorWithCause("BULK_PARALLELISM", err)
		}
		if n < 1 || n > maxBulkParallelism {
			return Config{}, errs.NewValueIsOutOfRangeError("BULK_PARALLELISM", n, 1, maxBulkParallelism)
		}
		config.BulkParallelism = n
	}

	if config.DBHost == "" {
		return Config{}, errs.NewValueIsRequiredError("DB_HOST")
	}
	if config.DBName == "" {
		return Config{}, errs.NewValueIsRequiredError("DB_NAME")
	}

	return config, nil
}

// DSN returns the PostgreSQL connection string for gorm.io/driver/postgres.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
