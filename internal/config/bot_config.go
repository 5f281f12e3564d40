package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type BotConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Token   string `mapstructure:"token"`
}

func (config BotConfig) validate() error {
	if config.Enabled && config.Token == "" {
		return fmt.Errorf("missing variable: token")
	}
	return nil
}

func (config BotConfig) bindEnvironmentVariables(v *viper.Viper) error {
	if err := v.BindEnv("bot.token", "TG_TOKEN"); err != nil {
		return err
	}
	return v.BindEnv("bot.enabled", "BOT_ENABLED")
}
