package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

type APIConfig struct {
	BaseURL                  string        `mapstructure:"base_url"`
	Timeout                  time.Duration `mapstructure:"timeout"`
	MaxRequestsPerSecond     float32       `mapstructure:"max_requests_per_second"`
	ExtractSkillsAfterUpload bool          `mapstructure:"extract_skills_after_upload"`
}

func (config APIConfig) validate() error {
	var errs []error

	if config.BaseURL == "" {
		errs = append(errs, fmt.Errorf("missing variable: base_url"))
	} else if u, err := url.Parse(config.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("invalid base_url: %s", config.BaseURL))
	}

	if config.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must be non-negative"))
	}

	if config.MaxRequestsPerSecond < 0 {
		errs = append(errs, fmt.Errorf("max_requests_per_second must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

func (config APIConfig) bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error

	if err := v.BindEnv("api.base_url", "API_BASE_URL"); err != nil {
		errs = append(errs, err)
	}

	if err := v.BindEnv("api.timeout", "API_TIMEOUT"); err != nil {
		errs = append(errs, err)
	}

	if err := v.BindEnv("api.max_requests_per_second", "API_MAX_REQUESTS_PER_SECOND"); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
