// File: internal/config/config_test.go
package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Constructor and Defaults Tests --

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "console", cfg.Logger.Format)
	assert.Equal(t, "sweeper-cli", cfg.Logger.ServiceName)
	assert.Equal(t, 40.0, cfg.Network.FallbackSpeedKPH)
	assert.Equal(t, 72000.0, cfg.Sim.Battery, "default battery is 20 hours of travel-time seconds")
	assert.Equal(t, 10000, cfg.Sim.MaxSteps)
	assert.False(t, cfg.Sim.FreeBackup, "charging backup is the primary contract")
	assert.Equal(t, 10, cfg.Tour.Locations)

	assert.NoError(t, cfg.Validate())
}

func TestRegisterDefaultsMatchesNewDefaultConfig(t *testing.T) {
	v := viper.New()
	RegisterDefaults(v)

	cfg := &Config{}
	require.NoError(t, v.Unmarshal(cfg))
	assert.Equal(t, NewDefaultConfig(), cfg)
}

// -- Validation Logic Tests --

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			"bad logger format",
			func(c *Config) { c.Logger.Format = "xml" },
			"logger.format",
		},
		{
			"non-positive fallback speed",
			func(c *Config) { c.Network.FallbackSpeedKPH = 0 },
			"network.fallback_speed_kph",
		},
		{
			"negative battery",
			func(c *Config) { c.Sim.Battery = -1 },
			"sim.battery",
		},
		{
			"zero step budget",
			func(c *Config) { c.Sim.MaxSteps = 0 },
			"sim.max_steps",
		},
		{
			"zero tour locations",
			func(c *Config) { c.Tour.Locations = 0 },
			"tour.locations",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestZeroBatteryIsValid(t *testing.T) {
	// Zero means "use the default" at environment construction, so the
	// config layer accepts it.
	cfg := NewDefaultConfig()
	cfg.Sim.Battery = 0
	assert.NoError(t, cfg.Validate())
}

// -- File Loading --

func TestUnmarshalFromYAML(t *testing.T) {
	const doc = `
logger:
  level: debug
  format: json
network:
  map_file: testdata/des_moines.json
  fallback_speed_kph: 50
sim:
  seed: 42
  battery: 3600
  free_backup: true
`
	v := viper.New()
	RegisterDefaults(v)
	v.SetConfigType("yaml")
	require.NoError(t, v.ReadConfig(strings.NewReader(doc)))

	cfg := NewDefaultConfig()
	require.NoError(t, v.Unmarshal(cfg))

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "testdata/des_moines.json", cfg.Network.MapFile)
	assert.Equal(t, 50.0, cfg.Network.FallbackSpeedKPH)
	assert.Equal(t, int64(42), cfg.Sim.Seed)
	assert.Equal(t, 3600.0, cfg.Sim.Battery)
	assert.True(t, cfg.Sim.FreeBackup)
	assert.Equal(t, 10, cfg.Tour.Locations, "untouched sections keep their defaults")
	assert.NoError(t, cfg.Validate())
}
