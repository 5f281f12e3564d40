package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger"`
	API     APIConfig     `mapstructure:"api"`
	Web     WebConfig     `mapstructure:"web"`
	Bot     BotConfig     `mapstructure:"bot"`
	DB      DBConfig      `mapstructure:"db"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type section interface {
	validate() error
	bindEnvironmentVariables(v *viper.Viper) error
}

type namedSection struct {
	name    string
	section section
}

var configFile = "./configs/config.yaml"

func Get() *Config {

	if value, ok := os.LookupEnv("CONFIG_PATH"); ok && value != "" {
		configFile = value
	} else if value, _ := os.LookupEnv("MODE"); value == "test" {
		configFile = "../../configs/config.yaml"
	}

	config, err := Load(configFile)
	if err != nil {
		log.Fatal(err)
	}

	return config
}

func Load(file string) (*Config, error) {

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warnf("can't load .env file: %v", err)
	}

	v := viper.New()
	v.SetConfigFile(file)

	setDefaults(v)

	if err := bindEnvironmentVariables(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", file, err)
	}

	config := Config{}
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logger.log_level", string(LevelInfo))
	v.SetDefault("logger.app_name", "career-dashboard")
	v.SetDefault("logger.output_file", "./logs/errors.log")
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("api.extract_skills_after_upload", true)
	v.SetDefault("web.address", ":8080")
	v.SetDefault("web.visitor_cookie", "dashboard_visitor")
	v.SetDefault("web.workspace_ttl", "30m")
	v.SetDefault("web.max_upload_bytes", 10<<20)
	v.SetDefault("metrics.address", ":9090")
	v.SetDefault("db.session_expiration_in_days", 7)
}

func (config *Config) sections() []namedSection {
	return []namedSection{
		{"LoggerConfig", &config.Logger},
		{"APIConfig", &config.API},
		{"WebConfig", &config.Web},
		{"BotConfig", &config.Bot},
		{"DBConfig", &config.DB},
		{"MetricsConfig", &config.Metrics},
	}
}

func bindEnvironmentVariables(v *viper.Viper) error {
	var errs []error

	for _, s := range (&Config{}).sections() {
		if err := s.section.bindEnvironmentVariables(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}

func (config *Config) validate() error {
	var errs []error

	for _, s := range config.sections() {
		if err := s.section.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred: %w", errors.Join(errs...))
	}

	return nil
}
