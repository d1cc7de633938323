// File: cmd/cmd_test.go
package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/xkilldash9x/sweeper-cli/pkg/roadnet"
	"github.com/xkilldash9x/sweeper-cli/pkg/sweeper"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const fixtureExtract = `{
  "place": "Testville",
  "nodes": [
    {"id": 1, "x": 0, "y": 0},
    {"id": 2, "x": 1, "y": 0},
    {"id": 3, "x": 1, "y": 1},
    {"id": 4, "x": 0, "y": 1}
  ],
  "edges": [
    {"from": 1, "to": 2, "length": 100},
    {"from": 2, "to": 1, "length": 100},
    {"from": 2, "to": 3, "length": 100},
    {"from": 3, "to": 2, "length": 100},
    {"from": 3, "to": 4, "length": 100},
    {"from": 4, "to": 3, "length": 100},
    {"from": 4, "to": 1, "length": 100},
    {"from": 1, "to": 4, "length": 100}
  ]
}`

func writeFixtureMap(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "map.json")
	require.NoError(t, os.WriteFile(path, []byte(fixtureExtract), 0o644))
	return path
}

func TestSweepCommandRunsToCompletion(t *testing.T) {
	mapPath := writeFixtureMap(t)

	rootCmd.SetArgs([]string{"sweep", "--map", mapPath, "--seed", "42", "--max-steps", "50"})
	require.NoError(t, rootCmd.Execute())
}

func TestSweepCommandRequiresMap(t *testing.T) {
	rootCmd.SetArgs([]string{"sweep", "--map", "", "--seed", "1"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no map extract configured")
}

func TestExportCommandWritesGeoJSON(t *testing.T) {
	mapPath := writeFixtureMap(t)
	outPath := filepath.Join(t.TempDir(), "out.geojson")

	rootCmd.SetArgs([]string{"export", outPath, "--map", mapPath, "--seed", "42"})
	require.NoError(t, rootCmd.Execute())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "FeatureCollection")
}

// runGreedySweep is exercised directly so policy behavior is pinned without
// going through cobra and viper.
func TestGreedySweepCleansSomething(t *testing.T) {
	n := roadnet.New("policy-test")
	for id := int64(1); id <= 4; id++ {
		require.NoError(t, n.AddNode(roadnet.Node{ID: id, X: float64(id), Y: 0}))
	}
	for i := int64(1); i <= 4; i++ {
		next := i%4 + 1
		require.NoError(t, n.AddEdge(roadnet.Edge{From: i, To: next, Length: 100, TravelTime: 10, Clean: false}))
		require.NoError(t, n.AddEdge(roadnet.Edge{From: next, To: i, Length: 100, TravelTime: 10, Clean: false}))
	}

	env, err := sweeper.New(n, sweeper.Options{Seed: 7, Battery: 100000}, zap.NewNop())
	require.NoError(t, err)

	runGreedySweep(env, 200, 7, zap.NewNop())

	assert.Greater(t, env.MetersCleaned(), 0.0, "a dirty ring must yield cleaned meters")
	counters := env.Counters()
	assert.Greater(t, counters.Moves, uint64(0))
}
