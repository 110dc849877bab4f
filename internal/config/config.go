// Package config loads ssbprep settings from an optional YAML file and
// SSBPREP_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"ssbprep/internal/session"
)

const (
	// EnvPrefix prefixes environment overrides, e.g. SSBPREP_WAT_TIME_PER_WORD.
	EnvPrefix = "SSBPREP"
	// HomeDirName is the per-user directory under $HOME for config and logs.
	HomeDirName = ".ssbprep"
)

// Config holds application configuration.
type Config struct {
	Env     string `mapstructure:"env"`      // local, dev, production
	LogFile string `mapstructure:"log_file"` // empty disables logging
	WAT     WAT    `mapstructure:"wat"`
	SRT     SRT    `mapstructure:"srt"`
	UI      UI     `mapstructure:"ui"`
}

// WAT configures the word association test.
type WAT struct {
	TimePerWord int    `mapstructure:"time_per_word"` // seconds each word is shown
	SampleSize  int    `mapstructure:"sample_size"`   // words drawn per run
	WordsFile   string `mapstructure:"words_file"`    // optional deck replacing the default words
}

// SRT configures the situation reaction test.
type SRT struct {
	TotalMinutes   int    `mapstructure:"total_minutes"`
	SituationsFile string `mapstructure:"situations_file"` // optional deck preloaded at start
}

// UI configures presentation.
type UI struct {
	Fullscreen bool `mapstructure:"fullscreen"` // use the alternate screen while a test runs
}

// Load reads configuration. If path is empty, config.yaml is looked up in
// ./config and ~/.ssbprep and a missing file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, HomeDirName))
		}
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "local")
	v.SetDefault("log_file", defaultLogFile())
	v.SetDefault("wat.time_per_word", session.DefaultTimePerWord)
	v.SetDefault("wat.sample_size", session.DefaultSampleSize)
	v.SetDefault("wat.words_file", "")
	v.SetDefault("srt.total_minutes", session.DefaultTotalMinutes)
	v.SetDefault("srt.situations_file", "")
	v.SetDefault("ui.fullscreen", true)
}

func defaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, HomeDirName, "ssbprep.log")
}

// Validate checks that numeric settings are within the ranges the runners accept.
func (c *Config) Validate() error {
	var errs []error
	if c.WAT.TimePerWord < session.MinTimePerWord || c.WAT.TimePerWord > session.MaxTimePerWord {
		errs = append(errs, fmt.Errorf("wat.time_per_word must be between %d and %d, got %d",
			session.MinTimePerWord, session.MaxTimePerWord, c.WAT.TimePerWord))
	}
	if c.WAT.SampleSize < 1 {
		errs = append(errs, fmt.Errorf("wat.sample_size must be positive, got %d", c.WAT.SampleSize))
	}
	if c.SRT.TotalMinutes < session.MinTotalMinutes || c.SRT.TotalMinutes > session.MaxTotalMinutes {
		errs = append(errs, fmt.Errorf("srt.total_minutes must be between %d and %d, got %d",
			session.MinTotalMinutes, session.MaxTotalMinutes, c.SRT.TotalMinutes))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// IsProduction reports whether production logging should be used.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
