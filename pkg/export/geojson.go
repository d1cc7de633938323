// File: pkg/export/geojson.go
// Description: Renderer-facing surface. Classifies streets by cleanliness
//              and emits the map plus the bot's route as GeoJSON for an
//              external plotting tool. Rendering itself lives elsewhere.
package export

import (
	"fmt"
	"io"

	json "github.com/json-iterator/go"

	"github.com/xkilldash9x/sweeper-cli/pkg/roadnet"
)

// Default classification colors, matching the upstream map styling.
const (
	DirtyColor = "brown"
	CleanColor = "white"
	RouteColor = "blue"
)

// EdgeColor is the per-street classification consumed by a renderer.
type EdgeColor struct {
	From  int64  `json:"from"`
	To    int64  `json:"to"`
	Key   int    `json:"key"`
	Color string `json:"color"`
}

// EdgeColors classifies every street as dirty or clean. Empty color
// arguments fall back to the defaults.
func EdgeColors(n *roadnet.Network, dirty, clean string) []EdgeColor {
	if dirty == "" {
		dirty = DirtyColor
	}
	if clean == "" {
		clean = CleanColor
	}
	colors := make([]EdgeColor, 0, n.EdgeCount())
	n.Edges(func(e *roadnet.Edge) {
		c := clean
		if !e.Clean {
			c = dirty
		}
		colors = append(colors, EdgeColor{From: e.From, To: e.To, Key: e.Key, Color: c})
	})
	return colors
}

// Feature is one GeoJSON feature.
type Feature struct {
	Type       string                 `json:"type"`
	Geometry   Geometry               `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

// Geometry is a GeoJSON LineString.
type Geometry struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

// FeatureCollection is the document root.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Document builds the full renderer payload: one LineString per street with
// its cleanliness and color, plus one LineString for the bot's route when a
// route of at least two nodes is given.
func Document(n *roadnet.Network, route []int64) (*FeatureCollection, error) {
	fc := &FeatureCollection{Type: "FeatureCollection"}

	n.Edges(func(e *roadnet.Edge) {
		from, to := n.Node(e.From), n.Node(e.To)
		color := CleanColor
		cleanliness := "clean"
		if !e.Clean {
			color = DirtyColor
			cleanliness = "dirty"
		}
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "LineString",
				Coordinates: [][2]float64{{from.X, from.Y}, {to.X, to.Y}},
			},
			Properties: map[string]interface{}{
				"kind":        "street",
				"cleanliness": cleanliness,
				"color":       color,
				"length":      e.Length,
				"travel_time": e.TravelTime,
			},
		})
	})

	if len(route) >= 2 {
		coords := make([][2]float64, 0, len(route))
		for _, id := range route {
			node := n.Node(id)
			if node == nil {
				return nil, fmt.Errorf("export: route references unknown node %d", id)
			}
			coords = append(coords, [2]float64{node.X, node.Y})
		}
		fc.Features = append(fc.Features, Feature{
			Type:     "Feature",
			Geometry: Geometry{Type: "LineString", Coordinates: coords},
			Properties: map[string]interface{}{
				"kind":  "route",
				"color": RouteColor,
			},
		})
	}
	return fc, nil
}

// Write marshals the document for a network and route to w.
func Write(w io.Writer, n *roadnet.Network, route []int64) error {
	fc, err := Document(n, route)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}
