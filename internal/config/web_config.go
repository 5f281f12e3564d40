package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type WebConfig struct {
	Address        string        `mapstructure:"address"`
	VisitorCookie  string        `mapstructure:"visitor_cookie"`
	SecureCookie   bool          `mapstructure:"secure_cookie"`
	WorkspaceTTL   time.Duration `mapstructure:"workspace_ttl"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
}

func (config WebConfig) validate() error {
	var errs []error

	if config.Address == "" {
		errs = append(errs, fmt.Errorf("missing variable: address"))
	}

	if config.VisitorCookie == "" {
		errs = append(errs, fmt.Errorf("missing variable: visitor_cookie"))
	}

	if config.WorkspaceTTL <= 0 {
		errs = append(errs, fmt.Errorf("workspace_ttl must be positive"))
	}

	if config.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("max_upload_bytes must be positive"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

func (config WebConfig) bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error

	if err := v.BindEnv("web.address", "WEB_ADDRESS"); err != nil {
		errs = append(errs, err)
	}

	if err := v.BindEnv("web.secure_cookie", "WEB_SECURE_COOKIE"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
