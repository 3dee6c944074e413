// Package config wraps viper for arete's layered settings. Precedence,
// highest first: command-line flags (applied by the caller), ARETE_*
// environment variables, the config file, built-in defaults.
//
// The config file is searched as .arete/config.yaml in the working
// directory, then ~/.config/arete/config.yaml. A missing file is fine.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix means ARETE_JSON, ARETE_DB, ARETE_DEBUG and so on.
const EnvPrefix = "ARETE"

// Initialize sets up viper. Call once, before reading any values.
func Initialize() error {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".arete")
	viper.AddConfigPath("$HOME/.config/arete")

	viper.SetDefault("json", false)
	viper.SetDefault("debug", false)
	viper.SetDefault("db", "")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("reading config file: %w", err)
		}
	}
	return nil
}

func GetString(key string) string {
	return viper.GetString(key)
}

func GetBool(key string) bool {
	return viper.GetBool(key)
}

func GetInt(key string) int {
	return viper.GetInt(key)
}

// Set overrides a value programmatically. Used by tests.
func Set(key string, value any) {
	viper.Set(key, value)
}
