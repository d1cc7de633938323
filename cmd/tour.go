// File: cmd/tour.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/sweeper-cli/internal/observability"
	"github.com/xkilldash9x/sweeper-cli/pkg/osmfile"
	"github.com/xkilldash9x/sweeper-cli/pkg/tour"
)

// newTourCmd creates and configures the `tour` command: it samples a
// travelling-agent instance and evaluates the naive visit order. Finding a
// better order is the caller's problem, by design.
func newTourCmd() *cobra.Command {
	tourCmd := &cobra.Command{
		Use:   "tour",
		Short: "Samples a travelling-agent problem and evaluates the naive route",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return viper.BindPFlag("tour.locations", cmd.Flags().Lookup("locations"))
		},
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

			problem, err := tour.NewProblem(network, cfg.Tour.Locations, cfg.Sim.Seed)
			if err != nil {
				return err
			}

			logger.Info("Problem sampled",
				zap.String("place", network.Place),
				zap.Int64("origin", problem.Origin()),
				zap.Int64s("destinations", problem.Destinations()),
			)

			matrix, err := problem.CostMatrix(cmd.Context())
			if err != nil {
				return err
			}
			logger.Info("Cost matrix built", zap.Int("locations", len(matrix)))

			total, err := problem.RouteTravelTime(nil)
			if err != nil {
				return err
			}
			logger.Info("Naive route evaluated", zap.Float64("travel_time_seconds", total))
			return nil
		},
	}

	tourCmd.Flags().Int("locations", 0, "number of destinations to sample")
	return tourCmd
}
