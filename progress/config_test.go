package progress

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "", cfg.Description)
	assert.Equal(t, 100*time.Millisecond, cfg.MinRefreshInterval)
	assert.Equal(t, 0.3, cfg.ETARecencyWeight)
	assert.Equal(t, 40, cfg.BarWidth)
	assert.Equal(t, 5, cfg.WindowSize)
	assert.Equal(t, 100.0, cfg.MaxPercent)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.yaml")
	data := []byte(`description: Indexing
min_refresh_interval: 250ms
eta_recency_weight: 0.5
bar_width: 20
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "Indexing", cfg.Description)
	assert.Equal(t, 250*time.Millisecond, cfg.MinRefreshInterval)
	assert.Equal(t, 0.5, cfg.ETARecencyWeight)
	assert.Equal(t, 20, cfg.BarWidth)
	// Fields missing from the file keep their defaults.
	assert.Equal(t, 5, cfg.WindowSize)
	assert.Equal(t, 100.0, cfg.MaxPercent)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
	assert.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bar_width: [1, 2\n"), 0644))
	_, err = LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"zero refresh interval", func(c *Config) { c.MinRefreshInterval = 0 }, ""},
		{"negative refresh interval", func(c *Config) { c.MinRefreshInterval = -time.Second }, "min refresh interval"},
		{"weight zero", func(c *Config) { c.ETARecencyWeight = 0 }, ""},
		{"weight one", func(c *Config) { c.ETARecencyWeight = 1 }, ""},
		{"weight above one", func(c *Config) { c.ETARecencyWeight = 1.5 }, "eta recency weight"},
		{"weight negative", func(c *Config) { c.ETARecencyWeight = -0.1 }, "eta recency weight"},
		{"weight NaN", func(c *Config) { c.ETARecencyWeight = math.NaN() }, "eta recency weight"},
		{"zero bar width", func(c *Config) { c.BarWidth = 0 }, "bar width"},
		{"zero window", func(c *Config) { c.WindowSize = 0 }, "window size"},
		{"zero max percent", func(c *Config) { c.MaxPercent = 0 }, "max percent"},
		{"max percent above 100", func(c *Config) { c.MaxPercent = 101 }, "max percent"},
		{"max percent 99", func(c *Config) { c.MaxPercent = 99 }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{
		Description:        "kept",
		MinRefreshInterval: -time.Second,
		ETARecencyWeight:   2,
		BarWidth:           0,
		WindowSize:         -1,
		MaxPercent:         0,
	}
	fixed, names := cfg.withDefaults()

	want := DefaultConfig()
	want.Description = "kept"
	assert.Equal(t, want, fixed)
	assert.Equal(t, []string{"min_refresh_interval", "eta_recency_weight", "bar_width", "window_size", "max_percent"}, names)

	_, names = DefaultConfig().withDefaults()
	assert.Empty(t, names)
}
