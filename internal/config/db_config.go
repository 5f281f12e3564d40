package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

type DBConfig struct {
	ConnectionString         string `mapstructure:"connection_string"`
	SessionExpirationInDays int    `mapstructure:"session_expiration_in_days"`
}

func (config DBConfig) validate() error {
	var errs []error

	if config.ConnectionString == "" {
		errs = append(errs, fmt.Errorf("missing variable: db connection string"))
	}

	if config.SessionExpirationInDays <= 0 {
		errs = append(errs, fmt.Errorf("session_expiration_in_days must be greater than zero"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

func (config DBConfig) bindEnvironmentVariables(v *viper.Viper) error {
	if err := v.BindEnv("db.connection_string", "DB_CONNECTION_STRING"); err != nil {
		return err
	}
	return v.BindEnv("db.session_expiration_in_days", "SESSION_EXPIRATION_DAYS")
}
