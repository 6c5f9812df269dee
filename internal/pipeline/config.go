package pipeline

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/jmylchreest/pokepalette/internal/colour"
	"github.com/jmylchreest/pokepalette/internal/seed"
	httputil "github.com/jmylchreest/pokepalette/internal/util/http"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvTimeout          = "POKEPALETTE_TIMEOUT"
	EnvUserAgent        = "POKEPALETTE_USER_AGENT"
	EnvAlgorithm        = "POKEPALETTE_ALGORITHM"
	EnvLegacySaturation = "POKEPALETTE_LEGACY_SATURATION"
)

// Config holds pipeline configuration.
type Config struct {
	Extractor colour.ExtractorConfig
	Seed      seed.Config

	// LegacySaturation keeps the historical 255 saturation ceiling in the
	// monochromatic generator.
	LegacySaturation bool

	Timeout   time.Duration
	UserAgent string

	// TempDir is where downloaded images are spooled. Empty means os.TempDir.
	TempDir string
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Extractor: colour.DefaultExtractorConfig(),
		Seed:      seed.Config{Mode: seed.ModeFixed},
		Timeout:   httputil.DefaultTimeout,
		UserAgent: httputil.DefaultUserAgent,
	}
}

// ConfigFromEnv returns DefaultConfig with environment overrides applied.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()

	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv(EnvAlgorithm); v != "" {
		cfg.Extractor.Algorithm = colour.Algorithm(v)
	}
	if v := os.Getenv(EnvLegacySaturation); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid %s: %w", EnvLegacySaturation, err)
		}
		cfg.LegacySaturation = b
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if err := c.Extractor.Validate(); err != nil {
		return err
	}
	if _, err := seed.ParseMode(string(c.Seed.Mode)); err != nil {
		return err
	}
	if c.Seed.Mode == seed.ModeManual && c.Seed.Value == nil {
		return fmt.Errorf("seed value is required for manual seed mode")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// HarmonyOptions returns the monochromatic generator options for c.
func (c Config) HarmonyOptions() colour.HarmonyOptions {
	if c.LegacySaturation {
		return colour.LegacyHarmonyOptions()
	}
	return colour.DefaultHarmonyOptions()
}
