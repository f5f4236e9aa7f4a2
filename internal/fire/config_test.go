package fire

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fire.yaml")
	data := []byte("width: 64\nheight: 48\nseed: 99\nparams:\n  combustion_rate: 2.5\n  oil_pool_count: 0\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != 64 || cfg.Height != 48 || cfg.Seed != 99 {
		t.Fatalf("dimensions/seed: %+v", cfg)
	}
	if cfg.Params.CombustionRate != 2.5 {
		t.Fatalf("combustion rate: got %v", cfg.Params.CombustionRate)
	}
	if cfg.Params.OilPoolCount != 0 {
		t.Fatalf("oil pool count not overridden: got %d", cfg.Params.OilPoolCount)
	}
	// Keys the file does not mention keep their defaults.
	if cfg.TickRate != 30 || cfg.Params.DiffusionRate != 2.4 {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("width: [not a number"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":               "80",
		"h":               "60",
		"seed":            "-5",
		"tick_rate":       "60",
		"combustion_rate": "0.5",
		"grass_chance":    "0",
	})
	if cfg.Width != 80 || cfg.Height != 60 || cfg.Seed != -5 || cfg.TickRate != 60 {
		t.Fatalf("basic keys: %+v", cfg)
	}
	if cfg.Params.CombustionRate != 0.5 || cfg.Params.GrassChance != 0 {
		t.Fatalf("param keys: %+v", cfg.Params)
	}

	// Garbage values fall back to defaults rather than erroring.
	cfg = FromMap(map[string]string{"w": "broad", "tick_rate": "-1"})
	if cfg.Width != 256 || cfg.TickRate != 30 {
		t.Fatalf("bad values not ignored: %+v", cfg)
	}

	if got := FromMap(nil); got.Width != 256 {
		t.Fatalf("nil map: %+v", got)
	}
}

func TestSanitizedClampsNonsense(t *testing.T) {
	cfg := Config{Width: -3, Height: 0, TickRate: -1, FrameBudget: 0, BudgetCarryFactor: 0}
	cfg.Params.WoodPatchRadiusMin = 5
	cfg.Params.WoodPatchRadiusMax = 2
	got := cfg.sanitized()
	if got.Width != 1 || got.Height != 1 || got.TickRate != 30 {
		t.Fatalf("world values: %+v", got)
	}
	if got.FrameBudget != 8192 || got.BudgetCarryFactor != 1 {
		t.Fatalf("budget values: %+v", got)
	}
	if got.Params.WoodPatchRadiusMax != 5 {
		t.Fatalf("radius range: %+v", got.Params)
	}
}

func TestTickSeconds(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.TickSeconds() != 1.0/30 {
		t.Fatalf("tick length: got %v", cfg.TickSeconds())
	}
	cfg.TickRate = 0
	if cfg.TickSeconds() != 1.0/30 {
		t.Fatalf("zero rate fallback: got %v", cfg.TickSeconds())
	}
}
