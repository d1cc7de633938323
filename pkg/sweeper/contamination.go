// File: pkg/sweeper/contamination.go
package sweeper

import (
	"github.com/xkilldash9x/sweeper-cli/pkg/roadnet"
)

// Region records one contamination patch: every street whose endpoints both
// sit within Radius meters of Center (by network distance, ignoring street
// direction) starts the session dirty. Regions are kept for introspection
// only; they do not track the affected streets.
type Region struct {
	Center int64
	Radius float64
}

// Contamination sizing, relative to map size: between a fifth and a half of
// one percent of intersections seed a dirty region, radius 1..2000 meters.
const (
	regionCountLowFrac  = 0.002
	regionCountHighFrac = 0.005
	regionRadiusMin     = 1
	regionRadiusMax     = 2000
)

// contaminate runs exactly once, from New. Overlapping regions are
// idempotent: cleanliness is a flag, not a counter.
func (env *Environment) contaminate() {
	ids := env.net.NodeIDs()
	numNodes := len(ids)

	low := max(int(float64(numNodes)*regionCountLowFrac), 1)
	high := max(int(float64(numNodes)*regionCountHighFrac), 1)
	numRegions := low + env.rng.Intn(high-low+1)

	for i := 0; i < numRegions; i++ {
		center := ids[env.rng.Intn(numNodes)]
		radius := float64(regionRadiusMin + env.rng.Intn(regionRadiusMax-regionRadiusMin+1))

		within := env.net.NeighborhoodWithin(center, radius)
		env.net.Edges(func(e *roadnet.Edge) {
			if _, ok := within[e.From]; !ok {
				return
			}
			if _, ok := within[e.To]; !ok {
				return
			}
			e.Clean = false
		})

		env.regions = append(env.regions, Region{Center: center, Radius: radius})
	}
}
