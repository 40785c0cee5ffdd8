package config

import (
	"fmt"
	"math"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/viper"
)

type PostgresConfig struct {
	ConnString     string
	MaxConcurrency uint
}

func (c PostgresConfig) Validate() error {
	if c.ConnString == "" {
		return fmt.Errorf("missing PostgreSQL connection string")
	}

	_, err := pgxpool.ParseConfig(c.ConnString)
	if err != nil {
		return fmt.Errorf("failed to parse PostgreSQL connection string: %w", err)
	}

	if c.MaxConcurrency == 0 || c.MaxConcurrency > math.MaxInt32 {
		return fmt.Errorf("max concurrency must be between 1 and %d", math.MaxInt32)
	}

	return nil
}

func LoadPostgresConfigFromCLI() PostgresConfig {
	return PostgresConfig{
		ConnString:     viper.GetString("postgres-conn"),
		MaxConcurrency: viper.GetUint("max-concurrency"),
	}
}
