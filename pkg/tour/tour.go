// File: pkg/tour/tour.go
// Description: The travelling-agent problem setup: a seeded sample of an
//              origin and destination intersections on a road network, plus
//              route evaluation over shortest paths. Choosing a good visit
//              order is deliberately left to the caller.
package tour

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/sweeper-cli/pkg/roadnet"
)

// ErrTooFewNodes is returned when the network cannot supply the requested
// number of distinct locations.
var ErrTooFewNodes = errors.New("tour: network has fewer nodes than requested locations")

// Problem is one sampled travelling-agent instance over a shared network.
// The network is read-only here; a Problem never mutates cleanliness.
type Problem struct {
	net          *roadnet.Network
	origin       int64
	destinations []int64

	mu    sync.Mutex
	costs map[int64]map[int64]float64
}

// NewProblem samples an origin plus numLocations destinations, uniformly
// without replacement. A zero seed means a time-based, non-reproducible
// sample.
func NewProblem(n *roadnet.Network, numLocations int, seed int64) (*Problem, error) {
	if n == nil || n.NodeCount() < numLocations+1 {
		return nil, ErrTooFewNodes
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ids := n.NodeIDs()
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	sample := ids[:numLocations+1]

	return &Problem{
		net:          n,
		origin:       sample[0],
		destinations: append([]int64(nil), sample[1:]...),
		costs:        make(map[int64]map[int64]float64),
	}, nil
}

// Origin returns the tour's start and end intersection.
func (p *Problem) Origin() int64 { return p.origin }

// Destinations returns the sampled stops in their original sample order.
func (p *Problem) Destinations() []int64 {
	return append([]int64(nil), p.destinations...)
}

// LocationInfo returns a copy of a node's attributes, or false when the ID
// is not on the map.
func (p *Problem) LocationInfo(id int64) (roadnet.Node, bool) {
	n := p.net.Node(id)
	if n == nil {
		return roadnet.Node{}, false
	}
	cp := *n
	if n.Meta != nil {
		cp.Meta = make(map[string]string, len(n.Meta))
		for k, v := range n.Meta {
			cp.Meta[k] = v
		}
	}
	return cp, true
}

// FullRoute expands a visit order into the complete node path: origin, each
// stop via its shortest path by travel time, and back to the origin. A nil
// order means the destinations in sample order.
func (p *Problem) FullRoute(order []int64) ([]int64, error) {
	if order == nil {
		order = p.destinations
	}
	var full []int64
	from := p.origin
	for _, to := range order {
		leg, _, ok := p.net.ShortestPath(from, to, roadnet.ByTravelTime)
		if !ok {
			return nil, fmt.Errorf("tour: no route from %d to %d", from, to)
		}
		full = append(full, leg[:len(leg)-1]...)
		from = to
	}
	leg, _, ok := p.net.ShortestPath(from, p.origin, roadnet.ByTravelTime)
	if !ok {
		return nil, fmt.Errorf("tour: no route from %d back to origin %d", from, p.origin)
	}
	full = append(full, leg...)
	return full, nil
}

// RouteTravelTime evaluates a visit order: the summed travel time of every
// street on the expanded route.
func (p *Problem) RouteTravelTime(order []int64) (float64, error) {
	full, err := p.FullRoute(order)
	if err != nil {
		return 0, err
	}
	var total float64
	for i := 1; i < len(full); i++ {
		e := p.net.Edge(full[i-1], full[i])
		if e == nil {
			return 0, fmt.Errorf("tour: route uses missing street %d->%d", full[i-1], full[i])
		}
		total += e.TravelTime
	}
	return total, nil
}

// Cost returns the memoized shortest travel time between two sampled
// locations, computing it on first use.
func (p *Problem) Cost(from, to int64) (float64, error) {
	p.mu.Lock()
	if row, ok := p.costs[from]; ok {
		if c, ok := row[to]; ok {
			p.mu.Unlock()
			return c, nil
		}
	}
	p.mu.Unlock()

	_, cost, ok := p.net.ShortestPath(from, to, roadnet.ByTravelTime)
	if !ok {
		return 0, fmt.Errorf("tour: no route from %d to %d", from, to)
	}
	p.storeCost(from, to, cost)
	return cost, nil
}

// CostMatrix fills and returns the full pairwise travel-time matrix over the
// origin and all destinations. Pairs are computed concurrently; the first
// unreachable pair aborts the build.
func (p *Problem) CostMatrix(ctx context.Context) (map[int64]map[int64]float64, error) {
	locations := append([]int64{p.origin}, p.destinations...)

	g, ctx := errgroup.WithContext(ctx)
	for _, from := range locations {
		for _, to := range locations {
			if from == to {
				p.storeCost(from, to, 0)
				continue
			}
			from, to := from, to
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				_, err := p.Cost(from, to)
				return err
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	matrix := make(map[int64]map[int64]float64, len(locations))
	for _, from := range locations {
		row := make(map[int64]float64, len(locations))
		for _, to := range locations {
			row[to] = p.costs[from][to]
		}
		matrix[from] = row
	}
	return matrix, nil
}

func (p *Problem) storeCost(from, to int64, cost float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	row, ok := p.costs[from]
	if !ok {
		row = make(map[int64]float64)
		p.costs[from] = row
	}
	row[to] = cost
}
