// Package compose combines the per-node automata the automaton package
// builds into the labeled transition system for a whole subtree, by
// folding each gate's local automaton against its children's (already
// composed) automata in turn, one child at a time.
//
// Two transitions synchronize when a parent's edge addresses local index
// i (0 means the node itself, i>0 means child i) and the child being
// folded in offers the same signal (and, for REPAIR, the same direction)
// at its own index 0. A synchronized pair collapses into a single
// internal (TAU) step in the product; every other edge on either side
// proceeds independently, carrying the other side's state unchanged.
package compose

import (
	"fmt"

	"github.com/utwente-fmt/dftcalc-sub000/automaton"
	"github.com/utwente-fmt/dftcalc-sub000/dft"
)

// syncSignals is the set of signals exchanged point-to-point between a
// node and one particular child; everything else (RATE_* clocks, TAU,
// IMPOSSIBLE) is local and never synchronizes.
var syncSignals = map[automaton.Signal]bool{
	automaton.SigActivate:  true,
	automaton.SigDeactivate: true,
	automaton.SigFail:      true,
	automaton.SigOnline:    true,
	automaton.SigRepair:    true,
	automaton.SigRepaired:  true,
	automaton.SigRepairing: true,
	automaton.SigInspect:   true,
}

// Node recursively composes n and every node reachable from it into a
// single Automaton representing n's whole subtree's observable behavior,
// memoizing by NodeID so a node referenced from more than one parent (not
// possible for ordinary children, but true of an FDEP's dependers and a
// RepairUnit's serviced set) is only composed once.
func Node(g *dft.Graph, n *dft.Node) *automaton.Automaton {
	memo := map[dft.NodeID]*automaton.Automaton{}
	return composeMemo(g, n, memo)
}

func composeMemo(g *dft.Graph, n *dft.Node, memo map[dft.NodeID]*automaton.Automaton) *automaton.Automaton {
	if a, ok := memo[n.ID]; ok {
		return a
	}
	local := automaton.Build(n)
	if !n.Kind.IsGate() {
		memo[n.ID] = local
		return local
	}

	combined := local
	for i, cid := range n.Gate.Children {
		child := g.Node(cid)
		childA := composeMemo(g, child, memo)
		combined = composePair(combined, i+1, childA)
	}
	memo[n.ID] = combined
	return combined
}

// pairState is one state of a two-way product automaton during folding.
type pairState struct {
	p, c int
}

// composePair folds child into parent, treating childIndex as the local
// index parent uses to address it.
func composePair(parent *automaton.Automaton, childIndex int, child *automaton.Automaton) *automaton.Automaton {
	index := map[pairState]int{}
	var states []pairState
	var keys []string
	var queue []int
	var trans []automaton.Transition

	key := func(s pairState) string {
		return fmt.Sprintf("%s||%s", parent.States[s.p], child.States[s.c])
	}
	intern := func(s pairState) int {
		if id, ok := index[s]; ok {
			return id
		}
		id := len(states)
		index[s] = id
		states = append(states, s)
		keys = append(keys, key(s))
		queue = append(queue, id)
		return id
	}

	initID := intern(pairState{parent.Initial, child.Initial})
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		s := states[id]

		for _, pt := range parent.Transitions {
			if pt.From != s.p {
				continue
			}
			if pt.Label.Index == childIndex && syncSignals[pt.Label.Signal] {
				for _, ct := range child.Transitions {
					if ct.From == s.c && ct.Label.Signal == pt.Label.Signal && ct.Label.Index == 0 && ct.Label.Dir == pt.Label.Dir {
						toID := intern(pairState{pt.To, ct.To})
						trans = append(trans, automaton.Transition{From: id, Label: automaton.Act(automaton.SigTau), To: toID})
					}
				}
				continue
			}
			toID := intern(pairState{pt.To, s.c})
			trans = append(trans, automaton.Transition{From: id, Label: pt.Label, To: toID})
		}

		for _, ct := range child.Transitions {
			if ct.From != s.c {
				continue
			}
			if ct.Label.Index == 0 && syncSignals[ct.Label.Signal] {
				// Only proceeds in lock-step with a matching parent edge,
				// already handled above; offering it here too would let
				// the child act unilaterally on a signal its environment
				// must participate in.
				continue
			}
			toID := intern(pairState{s.p, ct.To})
			trans = append(trans, automaton.Transition{From: id, Label: ct.Label, To: toID})
		}
	}

	return &automaton.Automaton{
		ShapeKey:    parent.ShapeKey + "+" + child.ShapeKey,
		States:      keys,
		Initial:     initID,
		Transitions: trans,
	}
}
