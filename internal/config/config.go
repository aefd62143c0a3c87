// Package config loads the command line configuration with viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. FORMSTATE_LOG_LEVEL.
const EnvPrefix = "FORMSTATE"

// Config holds the command line configuration.
type Config struct {
	Definition string       `mapstructure:"definition"`
	Operation  string       `mapstructure:"operation"`
	Mode       string       `mapstructure:"mode"`
	Log        LogConfig    `mapstructure:"log"`
	Prompt     PromptConfig `mapstructure:"prompt"`
	HTML       HTMLConfig   `mapstructure:"html"`
	Theme      ThemeConfig  `mapstructure:"theme"`
}

// LogConfig selects the logger level and encoder.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PromptConfig tunes the interactive session.
type PromptConfig struct {
	MaxAttempts  int      `mapstructure:"max_attempts"`
	SecretFields []string `mapstructure:"secret_fields"`
}

// HTMLConfig points at an optional directory of template overrides.
type HTMLConfig struct {
	Templates string `mapstructure:"templates"`
}

// ThemeConfig names the theme applied to HTML output. Each token becomes a
// CSS variable prefixed with "--".
type ThemeConfig struct {
	Name    string            `mapstructure:"name"`
	Variant string            `mapstructure:"variant"`
	Tokens  map[string]string `mapstructure:"tokens"`
}

// RendererConfig converts the theme settings for the HTML view. It returns nil
// when no theme is configured.
func (t ThemeConfig) RendererConfig() *theme.RendererConfig {
	if t.Name == "" && t.Variant == "" && len(t.Tokens) == 0 {
		return nil
	}
	cfg := &theme.RendererConfig{
		Theme:   t.Name,
		Variant: t.Variant,
		Tokens:  make(map[string]string, len(t.Tokens)),
		CSSVars: make(map[string]string, len(t.Tokens)),
	}
	for key, value := range t.Tokens {
		cfg.Tokens[key] = value
		cfg.CSSVars["--"+strings.TrimPrefix(key, "--")] = value
	}
	return cfg
}

// Load reads configuration from file and env. An explicit path must exist;
// otherwise FORMSTATE_CONFIG or ~/.config/formstate/config.{toml,yaml,json}
// is read when present.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("definition", "")
	v.SetDefault("operation", "")
	v.SetDefault("mode", "prompt")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("prompt.max_attempts", 3)
	v.SetDefault("prompt.secret_fields", []string{})
	v.SetDefault("html.templates", "")
	v.SetDefault("theme.name", "")
	v.SetDefault("theme.variant", "")
	v.SetDefault("theme.tokens", map[string]string{})

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "formstate"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}
