// Package config carries the presentation settings shared by the plot
// CLIs: image sizing, marker size, per-series colors, hints, sampling
// rate, and log level. Values layer from defaults, an optional YAML file,
// and EDAVIEW_* environment variables.
package config

import "errors"

// Sentinel error kinds for this package, for errors.Is from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// Colors overrides the per-series plot colors, as hex strings (e.g.
// "E91E63"). Empty fields keep the reference palette.
type Colors struct {
	Raw      string `koanf:"raw"`
	Clean    string `koanf:"clean"`
	Phasic   string `koanf:"phasic"`
	Tonic    string `koanf:"tonic"`
	Onsets   string `koanf:"onsets"`
	Peaks    string `koanf:"peaks"`
	Recovery string `koanf:"recovery"`
}

// Config holds the plot presentation settings.
type Config struct {
	Width        int     `koanf:"width"`
	Height       int     `koanf:"height"`
	MarkerSize   int     `koanf:"marker_size"`
	Hints        bool    `koanf:"hints"`
	SamplingRate float64 `koanf:"sampling_rate"`
	LogLevel     string  `koanf:"log_level"`
	Colors       Colors  `koanf:"colors"`
}

// New returns the defaults.
func New() *Config {
	return &Config{
		Width:      900,
		Height:     300,
		MarkerSize: 4,
		LogLevel:   "info",
	}
}
