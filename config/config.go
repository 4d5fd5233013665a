package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Region is a screen rectangle in absolute device pixels. Regions are
// replaced wholesale when the user re-picks; fields are never mutated
// individually.
type Region struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Set reports whether the region has been picked.
func (r Region) Set() bool { return r.Width > 0 && r.Height > 0 }

// Display renders the region as "WxH @ X,Y" for the UI.
func (r Region) Display() string {
	if !r.Set() {
		return "not set"
	}
	return fmt.Sprintf("%dx%d @ %d,%d", r.Width, r.Height, r.Left, r.Top)
}

// Direction modes for the expected-value resolver.
const (
	ModeAuto      = "auto"
	ModeFromLeft  = "from_left"
	ModeFromRight = "from_right"
)

// Config holds runtime configuration for capture regions and recognition
// behavior. Fields are loaded from a JSON file and written back after every
// user-driven change.
type Config struct {
	Debug bool `json:"debug"`

	// OCR capture regions (device pixels).
	RatioRegion Region `json:"ratio_region"`
	LeftRegion  Region `json:"left_region"`
	RightRegion Region `json:"right_region"`

	// Input interpretation.
	SwapSides bool   `json:"swap_sides"`
	CalcMode  string `json:"calc_mode"`

	// Recognition parameters.
	Language   string `json:"language"`
	TickMillis int    `json:"tick_millis"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:      false,
		SwapSides:  false,
		CalcMode:   ModeAuto,
		Language:   "eng",
		TickMillis: 600,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	switch c.CalcMode {
	case ModeAuto, ModeFromLeft, ModeFromRight:
	default:
		c.CalcMode = ModeAuto
	}
	if c.Language == "" {
		c.Language = "eng"
	}
	if c.TickMillis < 100 {
		c.TickMillis = 600
	}
	for _, r := range []*Region{&c.RatioRegion, &c.LeftRegion, &c.RightRegion} {
		if r.Width < 0 || r.Height < 0 {
			*r = Region{}
		}
	}
	return nil
}

// DefaultPath resolves the config file location under the user config
// directory, falling back to the working directory when xdg resolution fails.
func DefaultPath() string {
	path, err := xdg.ConfigFile(filepath.Join("exchange-helper", "config.json"))
	if err != nil {
		return "config.json"
	}
	return path
}

// Load attempts to read configuration from the given JSON file path. If the file does
// not exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
