package search

import (
	"math/big"

	"github.com/katalvlaran/creditflow/core"
)

// breadthFirst is the plain level-order strategy.
type breadthFirst struct{}

// bfsWalker encapsulates mutable BFS state.
type bfsWalker struct {
	graph      *core.Graph
	params     Params
	sink       core.Account
	queue      []core.Account
	parent     map[core.Account]core.Account
	bottleneck map[core.Account]*big.Int
	depth      map[core.Account]int
}

// FindPath explores the graph level by level from source, tracking per node
// the bottleneck flow achievable along the discovery tree and the parent
// pointer. A token edge is eligible only if its capacity meets the
// MinCapacity floor; hop capacity aggregates every eligible token edge
// toward the same neighbor. Branches beyond MaxHops are abandoned without
// stopping the rest of the search, and the walk stops the instant the sink
// is discovered, which yields a minimum-hop path.
//
// Complexity: O(V + E) view entries visited, each view already sorted.
func (breadthFirst) FindPath(g *core.Graph, source, sink core.Account, p Params) (Result, error) {
	p, err := validate(g, source, sink, p)
	if err != nil {
		return Result{}, err
	}
	if source == sink || (p.Ceiling != nil && p.Ceiling.Sign() == 0) {
		return Result{}, nil
	}

	w := &bfsWalker{
		graph:      g,
		params:     p,
		sink:       sink,
		queue:      []core.Account{source},
		parent:     make(map[core.Account]core.Account),
		bottleneck: map[core.Account]*big.Int{source: nil}, // nil = unbounded at the source
		depth:      map[core.Account]int{source: 0},
	}

	return w.run(), nil
}

// run drains the queue and returns the first discovered path to the sink.
func (w *bfsWalker) run() Result {
	for len(w.queue) > 0 {
		u := w.queue[0]
		w.queue = w.queue[1:]

		nextDepth := w.depth[u] + 1
		if w.params.MaxHops > 0 && nextDepth > w.params.MaxHops {
			// This branch would exceed the hop bound; abandon it only.
			continue
		}

		for _, nbr := range aggregate(w.graph.Outgoing(u), w.params.MinCapacity, outEndpoint) {
			if _, seen := w.bottleneck[nbr.id]; seen {
				continue
			}
			flow := minFlow(w.bottleneck[u], nbr.capacity)
			flow = minFlow(flow, w.params.Ceiling)
			if flow.Sign() <= 0 {
				continue
			}
			w.parent[nbr.id] = u
			w.bottleneck[nbr.id] = flow
			w.depth[nbr.id] = nextDepth
			if nbr.id == w.sink {
				return Result{Flow: flow, Path: w.pathTo(w.sink)}
			}
			w.queue = append(w.queue, nbr.id)
		}
	}

	return Result{}
}

// pathTo reconstructs the discovered source→dest chain from parent pointers.
func (w *bfsWalker) pathTo(dest core.Account) []core.Account {
	path := []core.Account{dest}
	for {
		prev, ok := w.parent[path[len(path)-1]]
		if !ok {
			break
		}
		path = append(path, prev)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}

// outEndpoint picks the neighbor of an outgoing view entry.
func outEndpoint(e core.FlowEdge) core.Account { return e.To }

// inEndpoint picks the neighbor of an incoming view entry.
func inEndpoint(e core.FlowEdge) core.Account { return e.From }
