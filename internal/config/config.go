package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/flashquiz/internal/session"
)

const envPrefix = "FLASHQUIZ"

// Config holds application configuration loaded from a config file, a .env
// file, and environment variables.
type Config struct {
	Env         string  `mapstructure:"env"`          // local or production
	SetsDir     string  `mapstructure:"sets_dir"`     // directory holding question set files
	ArchivePath string  `mapstructure:"archive_path"` // SQLite archive; empty = default data path
	LogFile     string  `mapstructure:"log_file"`     // empty disables logging
	Session     Session `mapstructure:"session"`      // default quiz modes
}

// Session holds the default quiz modes offered on the setup screen.
type Session struct {
	NoFail    bool `mapstructure:"no_fail"`
	LearnMode bool `mapstructure:"learn_mode"`
	Randomize bool `mapstructure:"randomize"`
	Timed     bool `mapstructure:"timed"`
}

// SessionConfig converts the defaults to the engine's value object.
func (s Session) SessionConfig() session.Config {
	return session.Config{
		NoFail:    s.NoFail,
		LearnMode: s.LearnMode,
		Randomize: s.Randomize,
		Timed:     s.Timed,
	}
}

// IsProduction reports whether the production environment is selected.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration. When path is empty, flashquiz.yaml is looked up
// in the working directory and in $XDG_CONFIG_HOME/flashquiz. A missing
// config file is not an error. A .env file in the working directory, if
// present, is loaded into the environment first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("flashquiz")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetDefault("env", "local")
	v.SetDefault("sets_dir", "Questions")
	v.SetDefault("archive_path", "")
	v.SetDefault("log_file", "")
	v.SetDefault("session.no_fail", false)
	v.SetDefault("session.learn_mode", false)
	v.SetDefault("session.randomize", false)
	v.SetDefault("session.timed", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

func configDir() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "flashquiz"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "flashquiz"), nil
}
