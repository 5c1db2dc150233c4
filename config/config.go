// Package config loads the YAML configuration of the transcript tools.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ieee0824/transcript-text/internal/logger"
	"github.com/ieee0824/transcript-text/lexicon"
)

// DefaultFrameShift is the encoder output frame shift of common streaming
// transducers, in seconds.
const DefaultFrameShift = 0.04

// ErrConfigInvalid is wrapped by every validation error.
var ErrConfigInvalid = errors.New("invalid configuration")

// Config is the top level configuration file.
type Config struct {
	Logging     logger.LoggingConfig `yaml:"logging"`
	Reconstruct ReconstructConfig    `yaml:"reconstruct"`
	Metrics     MetricsConfig        `yaml:"metrics"`
	Follow      FollowConfig         `yaml:"follow"`
}

// ReconstructConfig controls how token records become words.
type ReconstructConfig struct {
	Symbols      string `yaml:"symbols"`       // path to tokens.txt
	WordBoundary string `yaml:"word_boundary"` // SentencePiece marker
	FrameShift   Real   `yaml:"frame_shift"`   // seconds per decoder frame
	TimeOffset   Real   `yaml:"time_offset"`   // added to every timestamp
}

// MetricsConfig controls the prometheus endpoint.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // empty disables the endpoint
}

// FollowConfig controls the follow command.
type FollowConfig struct {
	Filter string `yaml:"filter"` // expr boolean over Text, Words, Tokens
	Poll   bool   `yaml:"poll"`   // poll instead of inotify
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Logging: logger.LoggingConfig{
			Enabled:    false,
			Level:      "info",
			MaxSize:    100,
			MaxBackups: 3,
			MaxAge:     28,
		},
		Reconstruct: ReconstructConfig{
			WordBoundary: lexicon.DefaultWordBoundary,
			FrameShift:   DefaultFrameShift,
		},
	}
}

// Load reads the YAML file at path on top of Default and applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	fs := float64(c.Reconstruct.FrameShift)
	if math.IsNaN(fs) || math.IsInf(fs, 0) || fs < 0 {
		return fmt.Errorf("%w: field=reconstruct.frame_shift value=%v", ErrConfigInvalid, fs)
	}
	off := float64(c.Reconstruct.TimeOffset)
	if math.IsNaN(off) || math.IsInf(off, 0) {
		return fmt.Errorf("%w: field=reconstruct.time_offset value=%v", ErrConfigInvalid, off)
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: field=logging.level value=%s", ErrConfigInvalid, c.Logging.Level)
	}
	return nil
}
