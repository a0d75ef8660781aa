package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Width != 900 || cfg.Height != 300 {
		t.Fatalf("unexpected default sizing: %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected default log level: %q", cfg.LogLevel)
	}
	if cfg.SamplingRate != 0 {
		t.Fatalf("sampling rate must default to unset, got %v", cfg.SamplingRate)
	}
	if cfg.MarkerSize != 4 {
		t.Fatalf("unexpected default marker size: %d", cfg.MarkerSize)
	}
	if cfg.Colors != (Colors{}) {
		t.Fatalf("colors must default to unset, got %+v", cfg.Colors)
	}
}

func TestLoadStyleFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edaview.yaml")
	body := "marker_size: 7\ncolors:\n  phasic: \"123456\"\n  peaks: \"ABCDEF\"\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MarkerSize != 7 {
		t.Fatalf("marker size not applied: %+v", cfg)
	}
	if cfg.Colors.Phasic != "123456" || cfg.Colors.Peaks != "ABCDEF" {
		t.Fatalf("colors not applied: %+v", cfg.Colors)
	}
	if cfg.Colors.Tonic != "" {
		t.Fatalf("unset color must stay empty: %+v", cfg.Colors)
	}
}

func TestLoadColorFromEnv(t *testing.T) {
	t.Setenv("EDAVIEW_COLORS_PHASIC", "00FF00")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Colors.Phasic != "00FF00" {
		t.Fatalf("env color not applied: %+v", cfg.Colors)
	}
}

func TestLoadInvalidMarkerSize(t *testing.T) {
	t.Setenv("EDAVIEW_MARKER_SIZE", "0")
	_, err := Load("")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edaview.yaml")
	body := "width: 640\nheight: 200\nsampling_rate: 250\nhints: true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Width != 640 || cfg.Height != 200 || cfg.SamplingRate != 250 || !cfg.Hints {
		t.Fatalf("file values not applied: %+v", cfg)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edaview.yaml")
	if err := os.WriteFile(path, []byte("width: 640\n"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Setenv("EDAVIEW_WIDTH", "1280")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Width != 1280 {
		t.Fatalf("env override not applied: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, ErrLoadConfig) {
		t.Fatalf("expected ErrLoadConfig, got %v", err)
	}
}

func TestLoadInvalidSizing(t *testing.T) {
	t.Setenv("EDAVIEW_WIDTH", "-5")
	_, err := Load("")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}
