package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/ieee0824/transcript-text/textutil"
)

// EnvVar describes one environment override.
type EnvVar struct {
	Name        string
	Description string
}

// EnvVars lists the supported environment overrides.
var EnvVars = []EnvVar{
	{"TRANSCRIPT_LOG_LEVEL", "Log level: debug, info, warn, error"},
	{"TRANSCRIPT_SYMBOLS", "Path to the token symbol table"},
	{"TRANSCRIPT_FRAME_SHIFT", "Seconds per decoder frame (e.g. 0.04)"},
	{"TRANSCRIPT_METRICS_ADDR", "Listen address for /metrics (e.g. :9464)"},
}

func (c *Config) applyEnv() error {
	if s := strings.TrimSpace(os.Getenv("TRANSCRIPT_LOG_LEVEL")); s != "" {
		c.Logging.Level = strings.ToLower(s)
	}
	if s := os.Getenv("TRANSCRIPT_SYMBOLS"); s != "" {
		c.Reconstruct.Symbols = s
	}
	if s := os.Getenv("TRANSCRIPT_FRAME_SHIFT"); s != "" {
		v, err := textutil.ParseFloat64(s)
		if err != nil {
			return fmt.Errorf("TRANSCRIPT_FRAME_SHIFT: %w", err)
		}
		c.Reconstruct.FrameShift = Real(v)
	}
	if s := os.Getenv("TRANSCRIPT_METRICS_ADDR"); s != "" {
		c.Metrics.Addr = s
	}
	return nil
}
