// File: cmd/root.go
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/sweeper-cli/internal/config"
	"github.com/xkilldash9x/sweeper-cli/internal/observability"
)

var (
	cfgFile string
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:     "sweeper-cli",
	Short:   "Simulates a street-sweeper bot on a road network",
	Version: Version,
}

func init() {
	// Assigned here rather than in the composite literal to avoid an
	// initialization cycle (initializeConfig refers back to rootCmd).
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// Runs before every command: resolve config, then set up logging.
		if err := initializeConfig(); err != nil {
			return err
		}

		cfg = config.NewDefaultConfig()
		if err := viper.Unmarshal(cfg); err != nil {
			observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "sweeper-cli"})
			return fmt.Errorf("failed to unmarshal config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			observability.InitializeLogger(cfg.Logger)
			return err
		}

		observability.InitializeLogger(cfg.Logger)
		observability.GetLogger().Debug("Starting sweeper-cli", zap.String("version", Version))
		return nil
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if logger := observability.GetLogger(); logger != nil {
			logger.Error("Command execution failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		observability.Sync()
		os.Exit(1)
	}
	observability.Sync()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("map", "", "road network extract (JSON)")
	rootCmd.PersistentFlags().Int64("seed", 0, "deterministic world seed (0 = random)")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(newSweepCmd())
	rootCmd.AddCommand(newTourCmd())
	rootCmd.AddCommand(newExportCmd())
}

// initializeConfig reads in the config file and SWEEPER_* environment
// variables if set.
func initializeConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("SWEEPER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	config.RegisterDefaults(viper.GetViper())

	if err := viper.BindPFlag("network.map_file", rootCmd.PersistentFlags().Lookup("map")); err != nil {
		return err
	}
	if err := viper.BindPFlag("sim.seed", rootCmd.PersistentFlags().Lookup("seed")); err != nil {
		return err
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults and env vars.
	}
	return nil
}
