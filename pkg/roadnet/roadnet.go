// File: pkg/roadnet/roadnet.go
// Description: In-memory directed weighted multigraph of a drivable road
//              network. Topology is immutable once loaded; only per-edge
//              cleanliness mutates, and only through the simulation layer.
package roadnet

import (
	"fmt"
)

// Node is an intersection. Meta carries provider attributes (street_count,
// highway tags and the like) that the simulation treats as opaque.
type Node struct {
	ID   int64
	X    float64 // longitude
	Y    float64 // latitude
	Meta map[string]string
}

// Edge is one directed street segment. Parallel edges between the same pair
// of intersections are disambiguated by Key.
type Edge struct {
	From       int64
	To         int64
	Key        int
	Length     float64 // meters
	SpeedKPH   float64
	TravelTime float64 // seconds
	Clean      bool
}

// Network holds the graph. Nodes are also kept in insertion order so that
// seeded random selection is reproducible; Go map iteration order is not.
type Network struct {
	Place string

	nodes   map[int64]*Node
	ordered []int64
	out     map[int64][]*Edge
	in      map[int64][]*Edge
	edges   int
}

// New returns an empty network.
func New(place string) *Network {
	return &Network{
		Place: place,
		nodes: make(map[int64]*Node),
		out:   make(map[int64][]*Edge),
		in:    make(map[int64][]*Edge),
	}
}

// AddNode registers an intersection. Re-adding an existing ID is an error:
// the topology is load-once.
func (n *Network) AddNode(node Node) error {
	if _, exists := n.nodes[node.ID]; exists {
		return fmt.Errorf("node %d already exists", node.ID)
	}
	cp := node
	cp.Meta = copyMeta(node.Meta)
	n.nodes[node.ID] = &cp
	n.ordered = append(n.ordered, node.ID)
	return nil
}

// AddEdge registers a directed street segment. Both endpoints must already
// exist, and the (from, to, key) triple must be unique.
func (n *Network) AddEdge(e Edge) error {
	if _, ok := n.nodes[e.From]; !ok {
		return fmt.Errorf("edge %d->%d: unknown origin node %d", e.From, e.To, e.From)
	}
	if _, ok := n.nodes[e.To]; !ok {
		return fmt.Errorf("edge %d->%d: unknown destination node %d", e.From, e.To, e.To)
	}
	for _, existing := range n.out[e.From] {
		if existing.To == e.To && existing.Key == e.Key {
			return fmt.Errorf("edge %d->%d key %d already exists", e.From, e.To, e.Key)
		}
	}
	cp := e
	n.out[e.From] = append(n.out[e.From], &cp)
	n.in[e.To] = append(n.in[e.To], &cp)
	n.edges++
	return nil
}

// Node returns the stored node, or nil if the ID is unknown. The pointer is
// internal state; callers outside this module receive copies via the
// simulation's view types.
func (n *Network) Node(id int64) *Node {
	return n.nodes[id]
}

// HasEdge reports whether any directed edge from u to v exists.
func (n *Network) HasEdge(u, v int64) bool {
	return n.Edge(u, v) != nil
}

// Edge returns the parallel edge from u to v with the lowest key, or nil.
// This mirrors the upstream environment, which always addressed the first
// parallel edge of a pair.
func (n *Network) Edge(u, v int64) *Edge {
	var best *Edge
	for _, e := range n.out[u] {
		if e.To != v {
			continue
		}
		if best == nil || e.Key < best.Key {
			best = e
		}
	}
	return best
}

// EdgeByKey returns the exact (u, v, key) edge, or nil.
func (n *Network) EdgeByKey(u, v int64, key int) *Edge {
	for _, e := range n.out[u] {
		if e.To == v && e.Key == key {
			return e
		}
	}
	return nil
}

// OutEdges returns the edges leaving id. The returned slice is shared
// internal state and must not be mutated by callers.
func (n *Network) OutEdges(id int64) []*Edge {
	return n.out[id]
}

// InEdges returns the edges arriving at id.
func (n *Network) InEdges(id int64) []*Edge {
	return n.in[id]
}

// NodeIDs returns all node IDs in insertion order.
func (n *Network) NodeIDs() []int64 {
	ids := make([]int64, len(n.ordered))
	copy(ids, n.ordered)
	return ids
}

// Edges visits every directed edge once, in origin insertion order.
func (n *Network) Edges(visit func(*Edge)) {
	for _, id := range n.ordered {
		for _, e := range n.out[id] {
			visit(e)
		}
	}
}

// NodeCount returns the number of intersections.
func (n *Network) NodeCount() int { return len(n.nodes) }

// EdgeCount returns the number of directed street segments.
func (n *Network) EdgeCount() int { return n.edges }

func copyMeta(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
