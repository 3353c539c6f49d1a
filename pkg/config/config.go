package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds everything the executors and server need. Values come from,
// in increasing precedence: defaults, config file, environment, flags.
type Config struct {
	YNAB YNAB `mapstructure:"ynab"`
	Memo Memo `mapstructure:"memo"`
}

// YNAB holds the remote service context.
type YNAB struct {
	Token     string `mapstructure:"token"`
	BudgetID  string `mapstructure:"budget_id"`
	AccountID string `mapstructure:"account_id"`
}

// Memo configures memo composition.
type Memo struct {
	Separator string `mapstructure:"separator"`
}

// Build loads configuration from .env, an optional YAML config file, the
// environment and the given flag set.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Best effort; a missing .env is fine.
	_ = gotenv.Load()

	v := viper.New()
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetDefault("memo.separator", " | ")

	v.SetEnvPrefix("YNABEL")
	v.AutomaticEnv()
	_ = v.BindEnv("ynab.token", "YNAB_TOKEN")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	// A config file is optional, a broken one is not: only the not-found case
	// from the search path is ignored, parse errors always surface.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Flags use flat names; map them onto the nested struct when set.
	if flags != nil {
		if s, err := flags.GetString("budget"); err == nil && s != "" {
			cfg.YNAB.BudgetID = s
		}
		if s, err := flags.GetString("account"); err == nil && s != "" {
			cfg.YNAB.AccountID = s
		}
	}

	return &cfg, nil
}
