package progress

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/konveyor/termbar/estimator"
	"github.com/konveyor/termbar/progress/render"
	"gopkg.in/yaml.v2"
)

// Config holds the tunables of a Bar.
//
// The zero value is not a sensible configuration; start from DefaultConfig.
type Config struct {
	// Description is printed before the bar. Empty means no description.
	Description string `yaml:"description"`

	// MinRefreshInterval is the minimum time between two drawn frames.
	MinRefreshInterval time.Duration `yaml:"min_refresh_interval"`

	// ETARecencyWeight is the share, in [0, 1], of the recent rate in the
	// remaining time estimate. 0 uses only the average rate since start, 1
	// only the rate over the last few frames.
	ETARecencyWeight float64 `yaml:"eta_recency_weight"`

	// BarWidth is the number of cells of the bar.
	BarWidth int `yaml:"bar_width"`

	// WindowSize is the number of recent frames the recent rate covers.
	WindowSize int `yaml:"window_size"`

	// MaxPercent caps the percentage shown before the counter reaches
	// total. Reaching total or calling Finish still shows 100.
	MaxPercent float64 `yaml:"max_percent"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MinRefreshInterval: 100 * time.Millisecond,
		ETARecencyWeight:   0.3,
		BarWidth:           render.DefaultBarWidth,
		WindowSize:         estimator.DefaultWindowSize,
		MaxPercent:         100,
	}
}

// LoadConfig reads a YAML configuration file on top of DefaultConfig.
//
// Example file:
//
//	description: Processing
//	min_refresh_interval: 250ms
//	eta_recency_weight: 0.5
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every field is in range.
func (c Config) Validate() error {
	if c.MinRefreshInterval < 0 {
		return fmt.Errorf("min refresh interval cannot be negative, got %s", c.MinRefreshInterval)
	}
	if math.IsNaN(c.ETARecencyWeight) || c.ETARecencyWeight < 0 || c.ETARecencyWeight > 1 {
		return fmt.Errorf("eta recency weight must be between 0.0 and 1.0, got %.2f", c.ETARecencyWeight)
	}
	if c.BarWidth < 1 {
		return fmt.Errorf("bar width must be at least 1, got %d", c.BarWidth)
	}
	if c.WindowSize < 1 {
		return fmt.Errorf("window size must be at least 1, got %d", c.WindowSize)
	}
	if math.IsNaN(c.MaxPercent) || c.MaxPercent <= 0 || c.MaxPercent > 100 {
		return fmt.Errorf("max percent must be in (0, 100], got %.2f", c.MaxPercent)
	}
	return nil
}

// withDefaults replaces every out of range field with its default value and
// returns the names of the fields it replaced.
func (c Config) withDefaults() (Config, []string) {
	def := DefaultConfig()
	var fixed []string
	if c.MinRefreshInterval < 0 {
		c.MinRefreshInterval = def.MinRefreshInterval
		fixed = append(fixed, "min_refresh_interval")
	}
	if math.IsNaN(c.ETARecencyWeight) || c.ETARecencyWeight < 0 || c.ETARecencyWeight > 1 {
		c.ETARecencyWeight = def.ETARecencyWeight
		fixed = append(fixed, "eta_recency_weight")
	}
	if c.BarWidth < 1 {
		c.BarWidth = def.BarWidth
		fixed = append(fixed, "bar_width")
	}
	if c.WindowSize < 1 {
		c.WindowSize = def.WindowSize
		fixed = append(fixed, "window_size")
	}
	if math.IsNaN(c.MaxPercent) || c.MaxPercent <= 0 || c.MaxPercent > 100 {
		c.MaxPercent = def.MaxPercent
		fixed = append(fixed, "max_percent")
	}
	return c, fixed
}
