// Package config loads the sqlrest CLI's configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds the small set of knobs a SQL-to-PostgREST translator CLI
// needs: where to send rendered requests, and the default client-code
// language for the "code" output mode.
type Config struct {
	BaseURL     string `mapstructure:"base_url"`
	DefaultLang string `mapstructure:"default_lang"`
}

// Load reads configuration from $HOME/.sqlrest/config.yaml,
// SQLREST_-prefixed environment variables, and a .env file (or, when
// there is none, .env.local) in the working directory. Precedence,
// highest first: variables already set in the environment, then the
// .env file, which only sets variables not already present, then the
// config file, then the built-in defaults.
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		log.Debug().Msg("no .env file found - using environment variables and defaults")
	}

	viper.SetDefault("base_url", "http://localhost:3000")
	viper.SetDefault("default_lang", "javascript")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SQLREST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	configDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(configDir, ".sqlrest", "config.yaml")
		if _, statErr := os.Stat(configPath); statErr == nil {
			viper.SetConfigFile(configPath)
			if err := viper.ReadInConfig(); err != nil {
				log.Warn().Err(err).Str("file", configPath).Msg("config file found but could not be parsed, using environment variables and defaults")
			} else {
				log.Info().Str("file", configPath).Msg("config file loaded")
			}
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

func loadEnvFile() error {
	locations := []string{".env", ".env.local"}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			if err := godotenv.Load(location); err != nil {
				return fmt.Errorf("error loading .env file from %s: %w", location, err)
			}
			log.Info().Str("file", location).Msg(".env file loaded")
			return nil
		}
	}
	return nil
}
