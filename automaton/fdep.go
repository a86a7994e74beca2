package automaton

import (
	"github.com/utwente-fmt/dftcalc-sub000/dft"
)

// fdepState tracks only whether the trigger has failed; FDEP carries no
// failure semantics of its own, so there is no gateFailed flag here.
type fdepState struct {
	active    bool
	triggered bool
}

func (s fdepState) key() string {
	k := "0"
	if s.triggered {
		k = "1"
	}
	if s.active {
		k += "A"
	}
	return k
}

// BuildFdep generates the LTS for a functional dependency: children[0] is
// the trigger, children[1:] the dependers. Activation is forwarded only
// to the trigger: dependers are never always-active and only activate via
// their own parent elsewhere in the tree, if any. Once the
// trigger reports FAIL, the FDEP continuously broadcasts FAIL to every
// depender, forcing their failure regardless of their own internal state.
func BuildFdep(n *dft.Node) *Automaton {
	nDependers := len(n.Gate.Children) - 1
	shapeKey := gateShapeKey("fdep", nDependers, 0, n.IsAlwaysActive, false)

	initial := fdepState{active: n.IsAlwaysActive}

	next := func(s fdepState) []succ[fdepState] {
		var out []succ[fdepState]

		if !s.active {
			t := s
			t.active = true
			out = append(out, succ[fdepState]{Act(SigActivate).At(0), t})
			return out
		}
		out = append(out, succ[fdepState]{Act(SigActivate).At(1), s})

		if !s.triggered {
			t := s
			t.triggered = true
			out = append(out, succ[fdepState]{Act(SigFail).At(1), t})
			return out
		}

		for i := 0; i < nDependers; i++ {
			out = append(out, succ[fdepState]{Act(SigFail).At(i + 2), s})
		}

		return out
	}

	return explore(shapeKey, initial, fdepState.key, next)
}
