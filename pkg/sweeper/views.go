// File: pkg/sweeper/views.go
// Description: Read-only snapshot types and the two observability views.
//              Every view value is an owned copy decoupled from the live
//              network, so observer code cannot corrupt the simulation.
package sweeper

import (
	"github.com/xkilldash9x/sweeper-cli/pkg/roadnet"
)

// NodeView is an owned snapshot of one intersection.
type NodeView struct {
	ID   int64
	X    float64
	Y    float64
	Meta map[string]string
}

// StreetView is an owned snapshot of one directed street segment together
// with both of its endpoints.
type StreetView struct {
	Start      NodeView
	End        NodeView
	Key        int
	Length     float64
	TravelTime float64
	Clean      bool
}

func (env *Environment) nodeView(id int64) NodeView {
	n := env.net.Node(id)
	view := NodeView{ID: n.ID, X: n.X, Y: n.Y}
	if n.Meta != nil {
		view.Meta = make(map[string]string, len(n.Meta))
		for k, v := range n.Meta {
			view.Meta[k] = v
		}
	}
	return view
}

func (env *Environment) streetView(e *roadnet.Edge) StreetView {
	return StreetView{
		Start:      env.nodeView(e.From),
		End:        env.nodeView(e.To),
		Key:        e.Key,
		Length:     e.Length,
		TravelTime: e.TravelTime,
		Clean:      e.Clean,
	}
}

// FullView is the full-observability handle over an Environment: the whole
// partial protocol plus arbitrary lookups and region introspection. It is
// meant for evaluation and debugging harnesses, not for the bot itself.
// Which capability set a caller has is decided by which handle it holds;
// there is no runtime privilege check. FullView adds no mutators: state
// still only changes through the embedded Environment's actions.
type FullView struct {
	*Environment
}

// NewFullView wraps an existing environment.
func NewFullView(env *Environment) *FullView {
	return &FullView{Environment: env}
}

// LookupNode returns a snapshot of any intersection by ID.
func (v *FullView) LookupNode(id int64) (NodeView, bool) {
	if v.net.Node(id) == nil {
		return NodeView{}, false
	}
	return v.nodeView(id), true
}

// LookupEdge returns a snapshot of the lowest-key street from u to v.
func (v *FullView) LookupEdge(u, w int64) (StreetView, bool) {
	e := v.net.Edge(u, w)
	if e == nil {
		return StreetView{}, false
	}
	return v.streetView(e), true
}

// OutgoingFrom lists the streets leaving any intersection, not just the
// bot's current one.
func (v *FullView) OutgoingFrom(id int64) []StreetView {
	edges := v.net.OutEdges(id)
	views := make([]StreetView, 0, len(edges))
	for _, e := range edges {
		views = append(views, v.streetView(e))
	}
	return views
}

// IncomingTo lists the streets arriving at any intersection.
func (v *FullView) IncomingTo(id int64) []StreetView {
	edges := v.net.InEdges(id)
	views := make([]StreetView, 0, len(edges))
	for _, e := range edges {
		views = append(views, v.streetView(e))
	}
	return views
}

// Regions returns the contamination regions generated at construction.
func (v *FullView) Regions() []Region {
	regions := make([]Region, len(v.regions))
	copy(regions, v.regions)
	return regions
}
