package search

import (
	"math/big"

	"github.com/katalvlaran/creditflow/core"
)

// bidirectional is the meet-in-the-middle strategy: one frontier expands
// forward from the source over outgoing views, the other backward from the
// sink over incoming views.
type bidirectional struct{}

// biState holds the two frontier expansions.
type biState struct {
	graph  *core.Graph
	params Params

	// forward tree: parent pointer toward the source.
	parentF map[core.Account]core.Account
	depthF  map[core.Account]int
	queueF  []core.Account

	// backward tree: successor pointer toward the sink.
	nextB  map[core.Account]core.Account
	depthB map[core.Account]int
	queueB []core.Account

	// per-side depth budgets derived from MaxHops (0 = unbounded).
	limitF int
	limitB int
}

// FindPath alternates one level expansion per side and stops as soon as a
// node has been discovered by both frontiers, reconstructing the path by
// concatenating the forward parent chain to the meeting node with the
// backward successor chain from it. Among the meets surfaced by one level
// expansion the one with the smallest combined depth wins, ties broken by
// account ID, so the result keeps the shortest-hop guarantee of plain BFS
// while typically visiting far fewer nodes.
//
// MaxHops is split between the sides (forward gets the extra hop when odd),
// which enforces the combined bound. MinCapacity eligibility and the flow
// ceiling are honored exactly as in the plain strategy: the bottleneck is
// recomputed over the joined path.
func (bidirectional) FindPath(g *core.Graph, source, sink core.Account, p Params) (Result, error) {
	p, err := validate(g, source, sink, p)
	if err != nil {
		return Result{}, err
	}
	if source == sink || (p.Ceiling != nil && p.Ceiling.Sign() == 0) {
		return Result{}, nil
	}

	st := &biState{
		graph:   g,
		params:  p,
		parentF: make(map[core.Account]core.Account),
		depthF:  map[core.Account]int{source: 0},
		queueF:  []core.Account{source},
		nextB:   make(map[core.Account]core.Account),
		depthB:  map[core.Account]int{sink: 0},
		queueB:  []core.Account{sink},
	}
	if p.MaxHops > 0 {
		st.limitF = (p.MaxHops + 1) / 2
		st.limitB = p.MaxHops / 2
	}

	for len(st.queueF) > 0 || len(st.queueB) > 0 {
		if meet, ok := st.expandForward(); ok {
			return st.build(meet), nil
		}
		if meet, ok := st.expandBackward(); ok {
			return st.build(meet), nil
		}
	}

	return Result{}, nil
}

// expandForward processes one full forward level and reports the best meet
// it surfaced, if any.
func (st *biState) expandForward() (core.Account, bool) {
	level := st.queueF
	st.queueF = nil
	var meets []core.Account
	for _, u := range level {
		nextDepth := st.depthF[u] + 1
		if st.limitF > 0 && nextDepth > st.limitF {
			continue
		}
		for _, nbr := range aggregate(st.graph.Outgoing(u), st.params.MinCapacity, outEndpoint) {
			if _, seen := st.depthF[nbr.id]; seen {
				continue
			}
			st.parentF[nbr.id] = u
			st.depthF[nbr.id] = nextDepth
			if _, other := st.depthB[nbr.id]; other {
				meets = append(meets, nbr.id)
				continue
			}
			st.queueF = append(st.queueF, nbr.id)
		}
	}

	return st.bestMeet(meets)
}

// expandBackward processes one full backward level over incoming views.
func (st *biState) expandBackward() (core.Account, bool) {
	level := st.queueB
	st.queueB = nil
	var meets []core.Account
	for _, v := range level {
		nextDepth := st.depthB[v] + 1
		if st.limitB > 0 && nextDepth > st.limitB {
			continue
		}
		for _, nbr := range aggregate(st.graph.Incoming(v), st.params.MinCapacity, inEndpoint) {
			if _, seen := st.depthB[nbr.id]; seen {
				continue
			}
			st.nextB[nbr.id] = v
			st.depthB[nbr.id] = nextDepth
			if _, other := st.depthF[nbr.id]; other {
				meets = append(meets, nbr.id)
				continue
			}
			st.queueB = append(st.queueB, nbr.id)
		}
	}

	return st.bestMeet(meets)
}

// bestMeet picks the candidate with the smallest combined depth, ties broken
// by account ID, rejecting meets beyond the combined hop bound.
func (st *biState) bestMeet(meets []core.Account) (core.Account, bool) {
	var best core.Account
	bestTotal := -1
	for _, m := range meets {
		total := st.depthF[m] + st.depthB[m]
		if st.params.MaxHops > 0 && total > st.params.MaxHops {
			continue
		}
		if bestTotal < 0 || total < bestTotal || (total == bestTotal && m < best) {
			best, bestTotal = m, total
		}
	}

	return best, bestTotal >= 0
}

// build joins the two chains through the meeting node and recomputes the
// bottleneck over the resulting path.
func (st *biState) build(meet core.Account) Result {
	// Forward chain source→meet.
	path := []core.Account{meet}
	for {
		prev, ok := st.parentF[path[len(path)-1]]
		if !ok {
			break
		}
		path = append(path, prev)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	// Backward chain meet→sink.
	for cur := meet; ; {
		next, ok := st.nextB[cur]
		if !ok {
			break
		}
		path = append(path, next)
		cur = next
	}

	var flow *big.Int
	for i := 0; i < len(path)-1; i++ {
		flow = minFlow(flow, hopCapacity(st.graph, path[i], path[i+1], st.params.MinCapacity))
	}
	flow = minFlow(flow, st.params.Ceiling)
	if flow == nil || flow.Sign() <= 0 {
		return Result{}
	}

	return Result{Flow: flow, Path: path}
}
