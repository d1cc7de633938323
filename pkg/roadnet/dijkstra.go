// File: pkg/roadnet/dijkstra.go
package roadnet

import (
	"container/heap"
)

// WeightFunc extracts the cost of traversing an edge for a particular query.
type WeightFunc func(*Edge) float64

// ByTravelTime weights edges by travel time in seconds.
func ByTravelTime(e *Edge) float64 { return e.TravelTime }

// ByLength weights edges by length in meters.
func ByLength(e *Edge) float64 { return e.Length }

// ShortestPath runs Dijkstra from start to goal with the given weight
// function, following edge direction. It returns the node sequence including
// both endpoints, the total cost, and false when goal is unreachable.
func (n *Network) ShortestPath(start, goal int64, weight WeightFunc) ([]int64, float64, bool) {
	if n.Node(start) == nil || n.Node(goal) == nil {
		return nil, 0, false
	}
	if start == goal {
		return []int64{start}, 0, true
	}

	dist := map[int64]float64{start: 0}
	prev := make(map[int64]int64)
	done := make(map[int64]bool)

	pq := &nodeQueue{{id: start, priority: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		u := heap.Pop(pq).(*queueItem)
		if done[u.id] {
			continue
		}
		done[u.id] = true
		if u.id == goal {
			break
		}
		for _, e := range n.out[u.id] {
			alt := dist[u.id] + weight(e)
			if cur, seen := dist[e.To]; !seen || alt < cur {
				dist[e.To] = alt
				prev[e.To] = u.id
				heap.Push(pq, &queueItem{id: e.To, priority: alt})
			}
		}
	}

	if !done[goal] {
		return nil, 0, false
	}

	path := []int64{goal}
	for at := goal; at != start; {
		at = prev[at]
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, dist[goal], true
}

// NeighborhoodWithin returns the set of nodes whose network distance from
// center is at most radius meters. The expansion treats every edge as
// undirected: a contamination patch is about spatial proximity, not about
// which way the streets happen to run. The frontier is abandoned as soon as
// it exceeds the radius, so this never computes full shortest paths.
func (n *Network) NeighborhoodWithin(center int64, radius float64) map[int64]struct{} {
	reach := make(map[int64]struct{})
	if n.Node(center) == nil || radius < 0 {
		return reach
	}

	dist := map[int64]float64{center: 0}
	pq := &nodeQueue{{id: center, priority: 0}}
	heap.Init(pq)

	for pq.Len() > 0 {
		u := heap.Pop(pq).(*queueItem)
		if _, ok := reach[u.id]; ok {
			continue
		}
		if u.priority > radius {
			continue
		}
		reach[u.id] = struct{}{}

		relax := func(other int64, length float64) {
			alt := u.priority + length
			if alt > radius {
				return
			}
			if cur, seen := dist[other]; !seen || alt < cur {
				dist[other] = alt
				heap.Push(pq, &queueItem{id: other, priority: alt})
			}
		}
		for _, e := range n.out[u.id] {
			relax(e.To, e.Length)
		}
		for _, e := range n.in[u.id] {
			relax(e.From, e.Length)
		}
	}
	return reach
}

type queueItem struct {
	id       int64
	priority float64
}

type nodeQueue []*queueItem

func (q nodeQueue) Len() int           { return len(q) }
func (q nodeQueue) Less(i, j int) bool { return q[i].priority < q[j].priority }
func (q nodeQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(*queueItem)) }

func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	it := old[n-1]
	*q = old[:n-1]
	return it
}
