// File: internal/config/config.go
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	Logger  LoggerConfig  `mapstructure:"logger" yaml:"logger"`
	Network NetworkConfig `mapstructure:"network" yaml:"network"`
	Sim     SimConfig     `mapstructure:"sim" yaml:"sim"`
	Tour    TourConfig    `mapstructure:"tour" yaml:"tour"`
}

// LoggerConfig controls the zap logger and optional file rotation.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"` // "console" or "json"
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`

	// File output, rotated by lumberjack. Empty LogFile disables it.
	LogFile    string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize    int    `mapstructure:"max_size" yaml:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge     int    `mapstructure:"max_age" yaml:"max_age"` // days
	Compress   bool   `mapstructure:"compress" yaml:"compress"`
}

// NetworkConfig says where the road network comes from.
type NetworkConfig struct {
	// MapFile is the JSON extract of the drive network.
	MapFile string `mapstructure:"map_file" yaml:"map_file"`
	// FallbackSpeedKPH is imputed on edges the extract has no speed for.
	FallbackSpeedKPH float64 `mapstructure:"fallback_speed_kph" yaml:"fallback_speed_kph"`
}

// SimConfig configures the sweeper environment.
type SimConfig struct {
	// Seed of zero means a non-reproducible world.
	Seed int64 `mapstructure:"seed" yaml:"seed"`
	// Battery is the starting budget in travel-time seconds.
	Battery float64 `mapstructure:"battery" yaml:"battery"`
	// FreeBackup switches the bot's reverse gear to the no-cost contract.
	FreeBackup bool `mapstructure:"free_backup" yaml:"free_backup"`
	// MaxSteps bounds the built-in sweep policy.
	MaxSteps int `mapstructure:"max_steps" yaml:"max_steps"`
}

// TourConfig configures the travelling-agent command.
type TourConfig struct {
	Locations int `mapstructure:"locations" yaml:"locations"`
}

// NewDefaultConfig returns the configuration used when no file, flag, or
// environment variable overrides a value.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: LoggerConfig{
			Level:       "info",
			Format:      "console",
			ServiceName: "sweeper-cli",
			MaxSize:     50,
			MaxBackups:  3,
			MaxAge:      14,
		},
		Network: NetworkConfig{
			FallbackSpeedKPH: 40,
		},
		Sim: SimConfig{
			Battery:  72000, // 20 hours of travel-time seconds
			MaxSteps: 10000,
		},
		Tour: TourConfig{
			Locations: 10,
		},
	}
}

// RegisterDefaults seeds viper so that Unmarshal sees the same defaults as
// NewDefaultConfig even for keys the config file omits.
func RegisterDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "sweeper-cli")
	v.SetDefault("logger.max_size", 50)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 14)
	v.SetDefault("network.fallback_speed_kph", 40)
	v.SetDefault("sim.battery", 72000)
	v.SetDefault("sim.max_steps", 10000)
	v.SetDefault("tour.locations", 10)
}

// Validate rejects configurations the commands cannot run with.
func (c *Config) Validate() error {
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be \"console\" or \"json\", got %q", c.Logger.Format)
	}
	if c.Network.FallbackSpeedKPH <= 0 {
		return fmt.Errorf("network.fallback_speed_kph must be positive, got %v", c.Network.FallbackSpeedKPH)
	}
	if c.Sim.Battery < 0 {
		return fmt.Errorf("sim.battery must not be negative, got %v", c.Sim.Battery)
	}
	if c.Sim.MaxSteps <= 0 {
		return fmt.Errorf("sim.max_steps must be a positive integer, got %d", c.Sim.MaxSteps)
	}
	if c.Tour.Locations <= 0 {
		return fmt.Errorf("tour.locations must be a positive integer, got %d", c.Tour.Locations)
	}
	return nil
}
