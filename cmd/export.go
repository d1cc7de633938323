// File: cmd/export.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/sweeper-cli/internal/observability"
	"github.com/xkilldash9x/sweeper-cli/pkg/export"
	"github.com/xkilldash9x/sweeper-cli/pkg/osmfile"
	"github.com/xkilldash9x/sweeper-cli/pkg/sweeper"
)

// newExportCmd creates the `export` command: it builds a contaminated world
// and writes the renderer payload (street colors plus the bot's starting
// position) as GeoJSON. Plotting the payload is an external tool's job.
func newExportCmd() *cobra.Command {
	exportCmd := &cobra.Command{
		Use:   "export [output.geojson]",
		Short: "Writes the contaminated map as GeoJSON for an external renderer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			if err := viper.Unmarshal(cfg); err != nil {
				return fmt.Errorf("failed to re-unmarshal config with flag overrides: %w", err)
			}
			if cfg.Network.MapFile == "" {
				return fmt.Errorf("no map extract configured; pass --map or set network.map_file")
			}

			network, err := osmfile.Prepare(cfg.Network.MapFile, cfg.Network.FallbackSpeedKPH)
			if err != nil {
				return err
			}

			env, err := sweeper.New(network, sweeper.Options{
				Seed:    cfg.Sim.Seed,
				Battery: cfg.Sim.Battery,
			}, logger)
			if err != nil {
				return err
			}

			out := os.Stdout
			if len(args) == 1 {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			if err := export.Write(out, network, env.Route()); err != nil {
				return err
			}
			logger.Info("Map exported",
				zap.String("place", network.Place),
				zap.Int("edges", network.EdgeCount()),
			)
			return nil
		},
	}
	return exportCmd
}
