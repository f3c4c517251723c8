package main

import (
	"fmt"
	"time"

	"github.com/konveyor/termbar/progress"
	"github.com/spf13/pflag"
)

const (
	eventsFormatJSON = "json"
	eventsFormatText = "text"
)

// cmdConfig holds the flags of the run command.
//
// Progress settings come from DefaultConfig, then the --config file, then
// the flags that were set explicitly on the command line.
type cmdConfig struct {
	configFile string
	progress   progress.Config

	start        int64
	items        int64
	workers      int
	workDelay    time.Duration
	pollInterval time.Duration
	summary      string

	eventsFile     string
	eventsFormat   string
	eventsInterval time.Duration
}

// AddFlags binds every field of c to a flag in fs.
func (c *cmdConfig) AddFlags(fs *pflag.FlagSet) {
	def := progress.DefaultConfig()

	fs.StringVar(&c.configFile, "config", "", "path to a YAML file with progress settings")
	fs.StringVar(&c.progress.Description, "description", def.Description, "text shown before the bar")
	fs.DurationVar(&c.progress.MinRefreshInterval, "min-refresh-interval", def.MinRefreshInterval, "minimum time between two drawn frames")
	fs.Float64Var(&c.progress.ETARecencyWeight, "eta-recency-weight", def.ETARecencyWeight, "weight of the recent rate in the remaining time estimate, between 0.0 and 1.0")
	fs.IntVar(&c.progress.BarWidth, "bar-width", def.BarWidth, "number of cells of the bar")
	fs.IntVar(&c.progress.WindowSize, "window-size", def.WindowSize, "number of recent frames the recent rate covers")
	fs.Float64Var(&c.progress.MaxPercent, "max-percent", def.MaxPercent, "highest percentage shown before the work is complete")

	fs.Int64Var(&c.start, "start", 0, "initial counter value")
	fs.Int64Var(&c.items, "items", 100000, "number of work items")
	fs.IntVar(&c.workers, "workers", 0, "number of concurrent workers, 0 processes items inline")
	fs.DurationVar(&c.workDelay, "work-delay", 0, "simulated time spent on each item")
	fs.DurationVar(&c.pollInterval, "poll-interval", 10*time.Millisecond, "how often the counter is sampled when workers are used")
	fs.StringVar(&c.summary, "summary", "", "mustache template printed after the bar finishes, e.g. '{{items}} items in {{elapsed}}'")

	fs.StringVar(&c.eventsFile, "events-file", "", "file to write a record of every drawn frame to")
	fs.StringVar(&c.eventsFormat, "events-format", eventsFormatJSON, "format of the events file: json or text")
	fs.DurationVar(&c.eventsInterval, "events-interval", 0, "minimum time between two records in the events file, 0 records every frame")
}

// validate checks the flags that are not progress settings.
func (c *cmdConfig) validate() error {
	if c.items < 0 {
		return fmt.Errorf("items cannot be negative, got %d", c.items)
	}
	if c.workers < 0 {
		return fmt.Errorf("workers cannot be negative, got %d", c.workers)
	}
	if c.workDelay < 0 {
		return fmt.Errorf("work delay cannot be negative, got %s", c.workDelay)
	}
	if c.pollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", c.pollInterval)
	}
	if c.eventsInterval < 0 {
		return fmt.Errorf("events interval cannot be negative, got %s", c.eventsInterval)
	}
	switch c.eventsFormat {
	case eventsFormatJSON, eventsFormatText:
	default:
		return fmt.Errorf("unknown events format %q, must be json or text", c.eventsFormat)
	}
	return nil
}

// progressConfig resolves the progress settings. fs must be the flag set c
// was bound to.
func (c *cmdConfig) progressConfig(fs *pflag.FlagSet) (progress.Config, error) {
	cfg := progress.DefaultConfig()
	if c.configFile != "" {
		var err error
		cfg, err = progress.LoadConfig(c.configFile)
		if err != nil {
			return cfg, err
		}
	}

	fs.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "description":
			cfg.Description = c.progress.Description
		case "min-refresh-interval":
			cfg.MinRefreshInterval = c.progress.MinRefreshInterval
		case "eta-recency-weight":
			cfg.ETARecencyWeight = c.progress.ETARecencyWeight
		case "bar-width":
			cfg.BarWidth = c.progress.BarWidth
		case "window-size":
			cfg.WindowSize = c.progress.WindowSize
		case "max-percent":
			cfg.MaxPercent = c.progress.MaxPercent
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid progress configuration: %w", err)
	}
	return cfg, nil
}
