package config

import (
	"strings"
	"testing"
	"time"

	"torolife/src/universe"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Width != universe.DefWidth || cfg.Height != universe.DefHeight {
		t.Fatalf("expected default dimension %dx%d, got %dx%d", universe.DefWidth, universe.DefHeight, cfg.Width, cfg.Height)
	}
	if cfg.Interval != universe.DefSimulationInterval {
		t.Fatalf("expected default interval, got %v", cfg.Interval)
	}
	if cfg.MaxSteps != universe.DefMaxSteps {
		t.Fatalf("expected default max steps, got %d", cfg.MaxSteps)
	}
	if !cfg.Color {
		t.Fatal("expected colors enabled by default")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TOROLIFE_WIDTH", "8")
	t.Setenv("TOROLIFE_HEIGHT", "6")
	t.Setenv("TOROLIFE_INTERVAL", "5ms")
	t.Setenv("TOROLIFE_MAX_STEPS", "0")
	t.Setenv("TOROLIFE_SEED", "42")
	t.Setenv("TOROLIFE_COLOR", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	o := cfg.UniverseOptions()
	want := universe.Options{Width: 8, Height: 6, Interval: 5 * time.Millisecond, MaxSteps: 0, Seed: 42}
	if o != want {
		t.Fatalf("expected options %+v, got %+v", want, o)
	}
	if cfg.Color {
		t.Fatal("expected colors disabled")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]struct {
		key   string
		value string
	}{
		"not a number":      {"TOROLIFE_WIDTH", "wide"},
		"negative width":    {"TOROLIFE_WIDTH", "-1"},
		"bad duration":      {"TOROLIFE_INTERVAL", "soon"},
		"negative maxSteps": {"TOROLIFE_MAX_STEPS", "-3"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "parse env:") {
				t.Fatalf("expected parse env prefix, got %v", err)
			}
		})
	}
}
