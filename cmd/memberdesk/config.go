package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tinytelemetry/memberdesk/internal/model"
)

// cliConfig holds everything the binary reads from file, env and flags.
type cliConfig struct {
	SourceURL  string `mapstructure:"source-url"`
	Skin       string `mapstructure:"skin"`
	APIEnabled bool   `mapstructure:"api-enabled"`
	APIAddr    string `mapstructure:"api-addr"`
	LogFile    string `mapstructure:"log-file"`
}

// configDir returns $HOME/.config/memberdesk.
func configDir(home string) string {
	return filepath.Join(home, ".config", "memberdesk")
}

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("MEMBERDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("source-url", model.DefaultSourceURL)
	v.SetDefault("skin", model.DefaultSkin)
	v.SetDefault("api-enabled", false)
	v.SetDefault("api-addr", model.DefaultAPIAddr)
	v.SetDefault("log-file", filepath.Join(home, ".local", "state", "memberdesk", "memberdesk.log"))

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(configDir(home), "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
