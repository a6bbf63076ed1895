package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Defaults registered before the config file is read.
var defaults = map[string]any{
	"app.log_level":               "info",
	"rating.provider":             "gemini",
	"rating.timeout":              "60s",
	"rating.prompt":               "",
	"gemini.model":                "gemini-2.0-flash",
	"gemini.base_url":             "",
	"openrouter.model":            "google/gemini-2.0-flash-001",
	"image.jpeg_quality":          75,
	"image.max_dimension":         0,
	"image.max_download_bytes":    20 << 20,
	"telegram.daily_rating_limit": 0,
	"handler.timeout":             "90s",
}

// Environment variables that do not follow the SECTION_KEY naming.
var envBindings = map[string]string{
	"gemini.api_key":     "GEMINI_API_KEY",
	"openrouter.api_key": "OPENROUTER_API_KEY",
	"telegram.bot_token": "TELEGRAM_BOT_TOKEN",
}

// Load reads configuration into the global viper instance. With an empty path, config.toml is
// searched in the working directory and may be missing; an explicit path must exist.
func Load(path string) error {
	for key, value := range defaults {
		viper.SetDefault(key, value)
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return fmt.Errorf("could not bind %s: %w", env, err)
		}
	}

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("toml")
	}

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("could not read config file: %w", err)
	}

	return nil
}

// LogLevel parses app.log_level, falling back to info.
func LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(viper.GetString("app.log_level"))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}

	return level
}

// Duration parses a duration key such as rating.timeout.
func Duration(key string) (time.Duration, error) {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}

	return d, nil
}
