// File: cmd/sweep.go
package cmd

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/sweeper-cli/internal/observability"
	"github.com/xkilldash9x/sweeper-cli/pkg/osmfile"
	"github.com/xkilldash9x/sweeper-cli/pkg/sweeper"
)

// newSweepCmd creates and configures the `sweep` command.
func newSweepCmd() *cobra.Command {
	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Runs a sweeping session with the built-in greedy policy",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := viper.BindPFlag("sim.battery", cmd.Flags().Lookup("battery")); err != nil {
				return err
			}
			if err := viper.BindPFlag("sim.max_steps", cmd.Flags().Lookup("max-steps")); err != nil {
				return err
			}
			return viper.BindPFlag("sim.free_backup", cmd.Flags().Lookup("free-backup"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := observability.GetLogger()

			// Flags were bound in PreRunE; re-resolve the sim section so
			// overrides take precedence over file and env values.
			if err := viper.Unmarshal(cfg); err != nil {
				return fmt.Errorf("failed to re-unmarshal config with flag overrides: %w", err)
			}
			if cfg.Network.MapFile == "" {
				return fmt.Errorf("no map extract configured; pass --map or set network.map_file")
			}

			sessionID := uuid.New().String()
			log := logger.With(zap.String("session_id", sessionID))

			start := time.Now()
			network, err := osmfile.Prepare(cfg.Network.MapFile, cfg.Network.FallbackSpeedKPH)
			if err != nil {
				return err
			}
			log.Info("Road network loaded",
				zap.String("place", network.Place),
				zap.Int("nodes", network.NodeCount()),
				zap.Int("edges", network.EdgeCount()),
				zap.Duration("took", time.Since(start)),
			)

			env, err := sweeper.New(network, sweeper.Options{
				Seed:       cfg.Sim.Seed,
				Battery:    cfg.Sim.Battery,
				FreeBackup: cfg.Sim.FreeBackup,
			}, log)
			if err != nil {
				return err
			}

			runGreedySweep(env, cfg.Sim.MaxSteps, cfg.Sim.Seed, log)

			counters := env.Counters()
			log.Info("Session finished",
				zap.Float64("battery_life", env.BatteryLife()),
				zap.Float64("meters_cleaned", env.MetersCleaned()),
				zap.Int("route_length", len(env.Route())),
				zap.Uint64("moves", counters.Moves),
				zap.Uint64("streets_cleaned", counters.Cleaned),
				zap.Uint64("backups", counters.Backups),
				zap.Uint64("invalid_attempts", counters.Invalid),
			)
			return nil
		},
	}

	sweepCmd.Flags().Float64("battery", 0, "starting battery in travel-time seconds (0 = default 20h)")
	sweepCmd.Flags().Int("max-steps", 0, "step budget for the sweep policy")
	sweepCmd.Flags().Bool("free-backup", false, "backing up costs no battery")
	return sweepCmd
}

// runGreedySweep drives the bot until the battery is depleted, the step
// budget runs out, or it is stranded at a dead end it cannot reverse from.
// The policy is deliberately simple: clean a dirty outgoing street when one
// exists, otherwise wander, and back up out of dead ends.
func runGreedySweep(env *sweeper.Environment, maxSteps int, seed int64, log *zap.Logger) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	// Policy randomness is separate from the world's source so that adding
	// policy decisions never perturbs world generation.
	rng := rand.New(rand.NewSource(seed + 1))

	for step := 0; step < maxSteps; step++ {
		if env.BatteryLife() <= 0 {
			log.Info("Battery depleted", zap.Int("steps", step))
			return
		}

		streets := env.ScanOutgoing()
		if len(streets) == 0 {
			if _, ok := env.Backup(1); !ok {
				log.Warn("Stranded at a dead end with no reverse street", zap.Int("steps", step))
				return
			}
			continue
		}

		var dirty []sweeper.StreetView
		for _, s := range streets {
			if !s.Clean {
				dirty = append(dirty, s)
			}
		}

		if len(dirty) > 0 {
			target := dirty[rng.Intn(len(dirty))]
			env.CleanAndMoveTo(target.End.ID)
			continue
		}
		target := streets[rng.Intn(len(streets))]
		env.MoveTo(target.End.ID)
	}
	log.Info("Step budget exhausted", zap.Int("steps", maxSteps))
}
