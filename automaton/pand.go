package automaton

import (
	"strings"

	"github.com/utwente-fmt/dftcalc-sub000/dft"
)

// pandState tracks, for an ordered priority gate, the highest child index
// confirmed failed in order (children must fail left-to-right) and
// whether any child has failed out of order, which is a contradiction
// (PAND) or simply irrelevant (POR) depending on variant.
type pandState struct {
	failedUpTo int // count of contiguous leading children reported failed
	broken     bool
	active     bool
	gateFailed bool
}

func (s pandState) key() string {
	var b strings.Builder
	b.WriteString(itoa(s.failedUpTo))
	if s.broken {
		b.WriteByte('X')
	}
	if s.active {
		b.WriteByte('A')
	}
	if s.gateFailed {
		b.WriteByte('F')
	}
	return b.String()
}

// BuildPriorityGate generates the LTS shared by PAND and POR: children
// must report FAIL in left-to-right order for the gate to fail. por
// selects POR semantics, where an out-of-order failure is simply not
// offered as a transition, so it never triggers the gate's own FAIL;
// PAND's strict variant treats it as a contradiction and moves to a
// broken sink state (key suffix 'X') with no outgoing transitions (no
// well-formed DFT should ever reach it, since the rewriter only emits
// priority gates from already-ordered sources, but the automaton still
// needs a defined target).
func BuildPriorityGate(n *dft.Node, por bool) *Automaton {
	nChildren := len(n.Gate.Children)
	kind := "pand"
	if por {
		kind = "por"
	}
	shapeKey := gateShapeKey(kind, nChildren, 0, n.IsAlwaysActive, n.IsRepairable)

	initial := pandState{active: n.IsAlwaysActive}

	next := func(s pandState) []succ[pandState] {
		if s.broken && !por {
			return nil
		}
		var out []succ[pandState]

		if !s.active {
			t := s
			t.active = true
			out = append(out, succ[pandState]{Act(SigActivate).At(0), t})
			return out
		}
		for i := 0; i < nChildren; i++ {
			out = append(out, succ[pandState]{Act(SigActivate).At(i + 1), s})
		}

		for i := 0; i < nChildren; i++ {
			inOrder := i == s.failedUpTo
			t := s
			if inOrder {
				t.failedUpTo = s.failedUpTo + 1
				if t.failedUpTo == nChildren {
					t.gateFailed = true
				}
			} else if i > s.failedUpTo {
				if por {
					continue // POR: a later child failing first just never fires the gate
				}
				t.broken = true
			} else {
				continue // already-failed child, no repeat edge modeled here
			}
			out = append(out, succ[pandState]{Act(SigFail).At(i + 1), t})
		}

		if s.gateFailed {
			out = append(out, succ[pandState]{Act(SigFail).At(0), s})
		}

		return out
	}

	return explore(shapeKey, initial, pandState.key, next)
}
