// File: pkg/osmfile/loader.go
// Description: Loads a road network from a JSON extract of OpenStreetMap
//              drive-network data. The extract format is a plain node/edge
//              listing so that maps can be produced offline by any provider
//              tooling and checked into fixtures.
package osmfile

import (
	"fmt"
	"io"
	"os"

	json "github.com/json-iterator/go"

	"github.com/xkilldash9x/sweeper-cli/pkg/roadnet"
)

// DefaultFallbackSpeedKPH is assumed for edges whose extract carries no
// speed data, roughly 25 mph.
const DefaultFallbackSpeedKPH = 40

// Document is the on-disk extract schema.
type Document struct {
	Place string     `json:"place"`
	Nodes []NodeJSON `json:"nodes"`
	Edges []EdgeJSON `json:"edges"`
}

// NodeJSON is one intersection in the extract.
type NodeJSON struct {
	ID   int64             `json:"id"`
	X    float64           `json:"x"`
	Y    float64           `json:"y"`
	Meta map[string]string `json:"meta,omitempty"`
}

// EdgeJSON is one directed street segment in the extract. SpeedKPH of zero
// means the provider had no data; ImputeSpeeds fills it in.
type EdgeJSON struct {
	From     int64   `json:"from"`
	To       int64   `json:"to"`
	Key      int     `json:"key"`
	Length   float64 `json:"length"`
	SpeedKPH float64 `json:"speed_kph,omitempty"`
}

// Load reads and parses the extract at path. All failures here are fatal
// configuration problems; there is nothing to retry.
func Load(path string) (*roadnet.Network, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening map extract: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes an extract document and builds the network. A zero-node
// document is rejected: the simulation is undefined on an empty map.
func Parse(r io.Reader) (*roadnet.Network, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding map extract: %w", err)
	}
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("map extract %q has no nodes", doc.Place)
	}

	n := roadnet.New(doc.Place)
	for _, nd := range doc.Nodes {
		if err := n.AddNode(roadnet.Node{ID: nd.ID, X: nd.X, Y: nd.Y, Meta: nd.Meta}); err != nil {
			return nil, fmt.Errorf("map extract %q: %w", doc.Place, err)
		}
	}
	for _, ed := range doc.Edges {
		e := roadnet.Edge{
			From:     ed.From,
			To:       ed.To,
			Key:      ed.Key,
			Length:   ed.Length,
			SpeedKPH: ed.SpeedKPH,
			Clean:    true,
		}
		if err := n.AddEdge(e); err != nil {
			return nil, fmt.Errorf("map extract %q: %w", doc.Place, err)
		}
	}
	return n, nil
}

// ImputeSpeeds assigns fallbackKPH to every edge missing speed data. A
// non-positive fallback falls back to DefaultFallbackSpeedKPH.
func ImputeSpeeds(n *roadnet.Network, fallbackKPH float64) {
	if fallbackKPH <= 0 {
		fallbackKPH = DefaultFallbackSpeedKPH
	}
	n.Edges(func(e *roadnet.Edge) {
		if e.SpeedKPH <= 0 {
			e.SpeedKPH = fallbackKPH
		}
	})
}

// ComputeTravelTimes derives travel_time in seconds from length and speed
// for every edge. Edges must have speeds; run ImputeSpeeds first.
func ComputeTravelTimes(n *roadnet.Network) error {
	var bad *roadnet.Edge
	n.Edges(func(e *roadnet.Edge) {
		if e.SpeedKPH <= 0 {
			if bad == nil {
				bad = e
			}
			return
		}
		metersPerSecond := e.SpeedKPH * 1000 / 3600
		e.TravelTime = e.Length / metersPerSecond
	})
	if bad != nil {
		return fmt.Errorf("edge %d->%d has no speed; impute speeds before computing travel times", bad.From, bad.To)
	}
	return nil
}

// Prepare is the common load pipeline: parse, impute, derive travel times.
func Prepare(path string, fallbackKPH float64) (*roadnet.Network, error) {
	n, err := Load(path)
	if err != nil {
		return nil, err
	}
	ImputeSpeeds(n, fallbackKPH)
	if err := ComputeTravelTimes(n); err != nil {
		return nil, err
	}
	return n, nil
}
