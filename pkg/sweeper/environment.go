// File: pkg/sweeper/environment.go
// Description: The street-sweeper world simulation. One Environment owns a
//              road network plus the bot's state and exposes the turn-based
//              action protocol: scan, move, clean-and-move, backup.
package sweeper

import (
	"errors"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/xkilldash9x/sweeper-cli/pkg/roadnet"
)

// DefaultBattery is the starting battery budget, equivalent to 20 hours of
// travel-time seconds.
const DefaultBattery = 72000

// ErrEmptyNetwork is returned when the simulation is constructed over a map
// with no intersections.
var ErrEmptyNetwork = errors.New("sweeper: road network has no nodes")

// Options configures a new Environment.
type Options struct {
	// Seed makes the contaminated world and the starting intersection
	// reproducible. Zero means a time-based seed.
	Seed int64
	// Battery is the starting budget in travel-time seconds. Zero means
	// DefaultBattery.
	Battery float64
	// FreeBackup switches Backup to the no-cost contract. The default
	// charges each reversed edge's travel time, same as a forward move.
	FreeBackup bool
}

// Environment is the world simulation. It is single-agent and turn-based:
// exactly one caller issues one action at a time, so there is no internal
// locking. All mutation of network cleanliness flows through CleanAndMoveTo.
type Environment struct {
	log *zap.Logger
	net *roadnet.Network
	rng *rand.Rand

	regions []Region

	location      int64
	route         []int64
	battery       float64
	metersCleaned float64
	freeBackup    bool

	counters Counters
}

// New builds the simulation: it contaminates the network in place, picks a
// random starting intersection, and charges the battery. The network must be
// non-empty, and travel times must already be computed.
func New(n *roadnet.Network, opts Options, logger *zap.Logger) (*Environment, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if n == nil || n.NodeCount() == 0 {
		return nil, ErrEmptyNetwork
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	battery := opts.Battery
	if battery == 0 {
		battery = DefaultBattery
	}

	env := &Environment{
		log:        logger.Named("sweeper"),
		net:        n,
		rng:        rand.New(rand.NewSource(seed)),
		battery:    battery,
		freeBackup: opts.FreeBackup,
	}

	env.contaminate()

	ids := n.NodeIDs()
	env.location = ids[env.rng.Intn(len(ids))]
	env.route = []int64{env.location}

	env.log.Info("Environment ready",
		zap.String("place", n.Place),
		zap.Int("nodes", n.NodeCount()),
		zap.Int("edges", n.EdgeCount()),
		zap.Int("contamination_regions", len(env.regions)),
		zap.Int64("start", env.location),
	)
	return env, nil
}

// ScanOutgoing reports every street leaving the current intersection as an
// owned snapshot. An empty result means a dead end; Backup is the only way
// out. Mutating a returned view never touches simulation state.
func (env *Environment) ScanOutgoing() []StreetView {
	edges := env.net.OutEdges(env.location)
	views := make([]StreetView, 0, len(edges))
	for _, e := range edges {
		views = append(views, env.streetView(e))
	}
	return views
}

// MoveTo drives the bot across the street from the current intersection to
// dest. It returns the new location and true on success. When no such street
// exists it returns false and changes nothing; probing a dead end is normal
// control flow, not an error.
func (env *Environment) MoveTo(dest int64) (int64, bool) {
	e := env.net.Edge(env.location, dest)
	if e == nil {
		env.counters.incInvalid()
		return 0, false
	}
	env.battery -= e.TravelTime
	env.location = dest
	env.route = append(env.route, dest)
	env.counters.incMoves()
	return env.location, true
}

// CleanAndMoveTo sweeps the street to dest and then drives it. Cleaning
// costs three times plain transit: a 2x surcharge here plus the 1x charged
// by the move itself, regardless of whether the street was already clean.
// A dirty street becomes clean and credits the cleaned-meters total exactly
// once. Failure semantics match MoveTo.
func (env *Environment) CleanAndMoveTo(dest int64) (int64, bool) {
	e := env.net.Edge(env.location, dest)
	if e == nil {
		env.counters.incInvalid()
		return 0, false
	}
	env.battery -= 2 * e.TravelTime
	if !e.Clean {
		e.Clean = true
		env.metersCleaned += e.Length
		env.counters.incCleaned()
		env.log.Debug("Street cleaned",
			zap.Int64("from", e.From),
			zap.Int64("to", e.To),
			zap.Float64("length", e.Length),
		)
	}
	return env.MoveTo(dest)
}

// Backup retraces the last n route entries. Each step needs the reverse
// street, from the intersection being vacated back to the previous one, and
// debits its travel time unless the environment was built with FreeBackup.
// A step whose reverse street is missing fails in place: earlier steps stay
// applied, the failing one changes nothing, and false is returned. Backing
// up past the starting intersection also fails.
func (env *Environment) Backup(n int) (int64, bool) {
	for i := 0; i < n; i++ {
		if len(env.route) <= 1 {
			return env.location, false
		}
		prev := env.route[len(env.route)-2]
		e := env.net.Edge(env.location, prev)
		if e == nil {
			env.counters.incInvalid()
			return env.location, false
		}
		if !env.freeBackup {
			env.battery -= e.TravelTime
		}
		env.route = env.route[:len(env.route)-1]
		env.location = prev
		env.counters.incBackups()
	}
	return env.location, true
}

// BatteryLife returns the remaining budget in travel-time seconds. Negative
// means depleted; the environment never halts on its own, interpretation is
// the caller's.
func (env *Environment) BatteryLife() float64 { return env.battery }

// MetersCleaned returns the cumulative length of streets this bot swept.
func (env *Environment) MetersCleaned() float64 { return env.metersCleaned }

// CurrentLocation returns an owned snapshot of the current intersection.
func (env *Environment) CurrentLocation() NodeView {
	return env.nodeView(env.location)
}

// Route returns the bot's path so far as an ordered node sequence, oldest
// first. The last entry is always the current location. The slice is a copy.
func (env *Environment) Route() []int64 {
	route := make([]int64, len(env.route))
	copy(route, env.route)
	return route
}

// Counters returns a snapshot of the per-session action counters.
func (env *Environment) Counters() CountersSnapshot {
	return env.counters.Snapshot()
}
