package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/foundry/orbit/internal/orbitsdk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	envPrefix      = "ORBIT"
)

type cliConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	Group    string        `mapstructure:"group"`
	LogLevel string        `mapstructure:"log_level"`
	LogFile  string        `mapstructure:"log_file"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Output   string        `mapstructure:"output"`
}

func (c *cliConfig) Validate() error {
	switch c.Output {
	case outputJSON, outputYAML:
	default:
		return fmt.Errorf("invalid output format %q, expected %q or %q", c.Output, outputJSON, outputYAML)
	}

	if _, err := c.level(); err != nil {
		return err
	}

	return nil
}

func (c *cliConfig) level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

func (c *cliConfig) sdkConfig(logger *slog.Logger) *orbitsdk.Config {
	level, _ := c.level()
	return &orbitsdk.Config{
		BaseURL:  c.BaseURL,
		LogLevel: level,
		Logger:   logger,
		Timeout:  c.Timeout,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("base_url", orbitsdk.DefaultBaseURL)
	v.SetDefault("group", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", "")
	v.SetDefault("timeout", time.Duration(0))
	v.SetDefault("output", outputJSON)
}

// bindFlags maps the root persistent flags onto config keys
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	_ = v.BindPFlag("base_url", flags.Lookup("base-url"))
	_ = v.BindPFlag("group", flags.Lookup("group"))
	_ = v.BindPFlag("log_level", flags.Lookup("log-level"))
	_ = v.BindPFlag("log_file", flags.Lookup("log-file"))
	_ = v.BindPFlag("timeout", flags.Lookup("timeout"))
	_ = v.BindPFlag("output", flags.Lookup("output"))
}

// loadConfig resolves flags > env > config file > defaults
func loadConfig(cmd *cobra.Command, v *viper.Viper) (*cliConfig, error) {
	if f := cmd.Flag("config"); f != nil && f.Changed {
		v.SetConfigFile(f.Value.String())
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".orbit"))
		v.AddConfigPath(filepath.Join(home, ".config", "orbit"))
		v.SetConfigName(configFileName)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg cliConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.Output = strings.ToLower(cfg.Output)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
