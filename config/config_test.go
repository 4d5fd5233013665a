package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing file must not error: %v", err)
	}
	if cfg.CalcMode != ModeAuto || cfg.Language != "eng" || cfg.TickMillis != 600 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := DefaultConfig()
	cfg.RatioRegion = Region{Left: 10, Top: 20, Width: 200, Height: 40}
	cfg.SwapSides = true
	cfg.CalcMode = ModeFromRight
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.RatioRegion != cfg.RatioRegion {
		t.Fatalf("region mismatch: %+v vs %+v", loaded.RatioRegion, cfg.RatioRegion)
	}
	if !loaded.SwapSides || loaded.CalcMode != ModeFromRight {
		t.Fatalf("flags lost in round trip: %+v", loaded)
	}
}

func TestValidate_ClampsBadValues(t *testing.T) {
	cfg := &Config{
		CalcMode:    "sideways",
		TickMillis:  10,
		LeftRegion:  Region{Width: -5, Height: 10},
		RatioRegion: Region{Left: 1, Top: 2, Width: 30, Height: 10},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.CalcMode != ModeAuto {
		t.Fatalf("bad mode not reset: %q", cfg.CalcMode)
	}
	if cfg.TickMillis != 600 {
		t.Fatalf("bad tick not reset: %d", cfg.TickMillis)
	}
	if cfg.LeftRegion != (Region{}) {
		t.Fatalf("negative region not cleared: %+v", cfg.LeftRegion)
	}
	if cfg.RatioRegion.Width != 30 {
		t.Fatalf("valid region must survive: %+v", cfg.RatioRegion)
	}
	if cfg.Language != "eng" {
		t.Fatalf("empty language not defaulted: %q", cfg.Language)
	}
}

func TestRegion_Display(t *testing.T) {
	r := Region{Left: 5, Top: 6, Width: 100, Height: 40}
	if got := r.Display(); got != "100x40 @ 5,6" {
		t.Fatalf("unexpected display %q", got)
	}
	if got := (Region{}).Display(); got != "not set" {
		t.Fatalf("unexpected display %q", got)
	}
}
