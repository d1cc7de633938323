// File: pkg/tour/tour_test.go
package tour

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/sweeper-cli/pkg/roadnet"
)

// squareNetwork: four intersections on a bidirectional square, 10s per side.
func squareNetwork(t *testing.T) *roadnet.Network {
	t.Helper()
	n := roadnet.New("square")
	for id := int64(1); id <= 4; id++ {
		require.NoError(t, n.AddNode(roadnet.Node{ID: id, X: float64(id), Y: 0}))
	}
	pairs := [][2]int64{{1, 2}, {2, 3}, {3, 4}, {4, 1}}
	for _, p := range pairs {
		require.NoError(t, n.AddEdge(roadnet.Edge{From: p[0], To: p[1], Length: 100, TravelTime: 10, Clean: true}))
		require.NoError(t, n.AddEdge(roadnet.Edge{From: p[1], To: p[0], Length: 100, TravelTime: 10, Clean: true}))
	}
	return n
}

func TestNewProblemSamplesDistinctLocations(t *testing.T) {
	n := squareNetwork(t)
	p, err := NewProblem(n, 2, 9)
	require.NoError(t, err)

	seen := map[int64]bool{p.Origin(): true}
	for _, d := range p.Destinations() {
		assert.False(t, seen[d], "locations must be sampled without replacement")
		seen[d] = true
	}
	assert.Len(t, seen, 3)
}

func TestNewProblemRejectsSmallNetworks(t *testing.T) {
	n := squareNetwork(t)
	_, err := NewProblem(n, 4, 9) // needs 5 distinct nodes, have 4
	assert.ErrorIs(t, err, ErrTooFewNodes)

	_, err = NewProblem(nil, 1, 9)
	assert.ErrorIs(t, err, ErrTooFewNodes)
}

func TestNewProblemIsReproducible(t *testing.T) {
	n := squareNetwork(t)
	p1, err := NewProblem(n, 2, 1234)
	require.NoError(t, err)
	p2, err := NewProblem(n, 2, 1234)
	require.NoError(t, err)

	assert.Equal(t, p1.Origin(), p2.Origin())
	assert.Equal(t, p1.Destinations(), p2.Destinations())
}

func TestFullRouteReturnsToOrigin(t *testing.T) {
	n := squareNetwork(t)
	p, err := NewProblem(n, 2, 9)
	require.NoError(t, err)

	full, err := p.FullRoute(nil)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(full), 2)
	assert.Equal(t, p.Origin(), full[0])
	assert.Equal(t, p.Origin(), full[len(full)-1])

	// Every consecutive pair must be an actual street.
	for i := 1; i < len(full); i++ {
		assert.True(t, n.HasEdge(full[i-1], full[i]), "missing street %d->%d", full[i-1], full[i])
	}
}

func TestRouteTravelTimeMatchesEdgeSum(t *testing.T) {
	n := squareNetwork(t)
	p, err := NewProblem(n, 2, 9)
	require.NoError(t, err)

	total, err := p.RouteTravelTime(nil)
	require.NoError(t, err)

	full, err := p.FullRoute(nil)
	require.NoError(t, err)
	// All square edges cost 10s, so the total is just hop count times ten.
	assert.Equal(t, float64(len(full)-1)*10, total)
}

func TestCostMemoization(t *testing.T) {
	n := squareNetwork(t)
	p, err := NewProblem(n, 2, 9)
	require.NoError(t, err)

	from, to := p.Origin(), p.Destinations()[0]
	c1, err := p.Cost(from, to)
	require.NoError(t, err)
	c2, err := p.Cost(from, to)
	require.NoError(t, err)
	assert.Equal(t, c1, c2)
	assert.Greater(t, c1, 0.0)
}

func TestCostMatrixComplete(t *testing.T) {
	n := squareNetwork(t)
	p, err := NewProblem(n, 2, 9)
	require.NoError(t, err)

	matrix, err := p.CostMatrix(context.Background())
	require.NoError(t, err)

	locations := append([]int64{p.Origin()}, p.Destinations()...)
	require.Len(t, matrix, len(locations))
	for _, from := range locations {
		row := matrix[from]
		require.Len(t, row, len(locations))
		assert.Zero(t, row[from], "diagonal must be zero")
		for _, to := range locations {
			if from != to {
				assert.Greater(t, row[to], 0.0)
			}
		}
	}
}

func TestCostUnreachablePair(t *testing.T) {
	// Two islands: 1<->2 and 3 alone.
	n := roadnet.New("islands")
	for id := int64(1); id <= 3; id++ {
		require.NoError(t, n.AddNode(roadnet.Node{ID: id}))
	}
	require.NoError(t, n.AddEdge(roadnet.Edge{From: 1, To: 2, Length: 100, TravelTime: 10}))
	require.NoError(t, n.AddEdge(roadnet.Edge{From: 2, To: 1, Length: 100, TravelTime: 10}))

	p, err := NewProblem(n, 1, 3)
	require.NoError(t, err)

	_, err = p.Cost(1, 3)
	assert.Error(t, err)
}

func TestLocationInfoIsACopy(t *testing.T) {
	n := squareNetwork(t)
	n.Node(1).Meta = map[string]string{"street_count": "4"}
	p, err := NewProblem(n, 2, 9)
	require.NoError(t, err)

	info, ok := p.LocationInfo(1)
	require.True(t, ok)
	info.Meta["street_count"] = "0"
	assert.Equal(t, "4", n.Node(1).Meta["street_count"])

	_, ok = p.LocationInfo(99)
	assert.False(t, ok)
}
