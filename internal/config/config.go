package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

var ErrNoToken = errors.New("no bot token configured (set token or FORMULABOT_TOKEN)")

type Config struct {
	Token       string `mapstructure:"token"`
	Database    string `mapstructure:"database"`
	PollTimeout int    `mapstructure:"poll_timeout"`
	Anchor      Anchor `mapstructure:"anchor"`
	LogLevel    string `mapstructure:"log_level"`
}

// Anchor is the cell used for formulas opened without coordinates.
type Anchor struct {
	X int `mapstructure:"x"`
	Y int `mapstructure:"y"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("token", "")
	v.SetDefault("database", "data/formulabot.db")
	v.SetDefault("poll_timeout", 60)
	v.SetDefault("anchor.x", 0)
	v.SetDefault("anchor.y", 0)
	v.SetDefault("log_level", "info")
}

// Load reads the config file at path, or ./formulabot.yaml when path is
// empty and the file exists, then applies FORMULABOT_* environment
// overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("FORMULABOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("formulabot")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings the bot cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return ErrNoToken
	}
	if c.PollTimeout < 0 {
		return fmt.Errorf("poll_timeout must not be negative, got %d", c.PollTimeout)
	}
	return nil
}

// Level maps log_level to a slog level, falling back to info.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}
