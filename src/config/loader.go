package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional YAML file, and
// env vars. Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if path is non-empty
//  3. env (prefix EDAVIEW_)
func Load(path string) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: EDAVIEW_WIDTH, EDAVIEW_SAMPLING_RATE, ...
	// Underscores are preserved to match the koanf tags on the struct;
	// the colors group nests, so EDAVIEW_COLORS_PHASIC -> colors.phasic.
	envProvider := env.Provider("EDAVIEW_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "edaview_")
		if rest, ok := strings.CutPrefix(s, "colors_"); ok {
			return "colors." + rest
		}
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: width and height must be positive", ErrInvalidConfig)
	}
	if cfg.MarkerSize <= 0 {
		return nil, fmt.Errorf("%w: marker_size must be positive", ErrInvalidConfig)
	}
	if cfg.SamplingRate < 0 {
		return nil, fmt.Errorf("%w: sampling_rate must not be negative", ErrInvalidConfig)
	}
	return &cfg, nil
}
