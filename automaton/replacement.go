package automaton

import (
	"github.com/utwente-fmt/dftcalc-sub000/dft"
)

// replacementState only needs to track activation: a replacement module
// has no memory of which children are currently failed, since it forces
// service unconditionally on schedule.
type replacementState struct {
	active bool
}

func (s replacementState) key() string {
	if s.active {
		return "A"
	}
	return "0"
}

// BuildReplacement generates the LTS for a forced-replacement module:
// once active it offers REPAIRING to every child in every state,
// whether or not that child is currently failed (a healthy child simply
// has no transition available to act on it, so the offer is a harmless
// no-op from its perspective), alongside a RATE_PERIOD self-loop. The
// REPAIRING offers are not tied to RATE_PERIOD firing: dispatch is not
// periodic, and the module keeps no counter or schedule state.
func BuildReplacement(n *dft.Node) *Automaton {
	nChildren := len(n.Gate.Children)
	shapeKey := gateShapeKey("rep", nChildren, 0, n.IsAlwaysActive, true)

	initial := replacementState{active: n.IsAlwaysActive}

	next := func(s replacementState) []succ[replacementState] {
		var out []succ[replacementState]

		if !s.active {
			t := s
			t.active = true
			out = append(out, succ[replacementState]{Act(SigActivate).At(0), t})
			return out
		}
		for i := 0; i < nChildren; i++ {
			out = append(out, succ[replacementState]{Act(SigActivate).At(i + 1), s})
		}

		for i := 0; i < nChildren; i++ {
			out = append(out, succ[replacementState]{Act(SigRepairing).At(i + 1), s})
		}
		out = append(out, succ[replacementState]{Act(SigRatePeriod), s})

		return out
	}

	return explore(shapeKey, initial, replacementState.key, next)
}
