package automaton

import (
	"strings"

	"github.com/utwente-fmt/dftcalc-sub000/dft"
)

// sandState tracks how many leading children have failed in a sequential
// AND: unlike PAND, only the next unfailed child is ever activated, so
// out-of-order failure cannot occur by construction and needs no sink.
type sandState struct {
	failedUpTo int
	active     bool
	gateFailed bool
}

func (s sandState) key() string {
	var b strings.Builder
	b.WriteString(itoa(s.failedUpTo))
	if s.active {
		b.WriteByte('A')
	}
	if s.gateFailed {
		b.WriteByte('F')
	}
	return b.String()
}

// BuildSand generates the LTS for a sequential-AND gate (native SAND, or
// a SEQ lifted by the rewriter): children are activated one at a time, in
// declaration order, and the next child is only activated once its
// predecessor has failed.
func BuildSand(n *dft.Node) *Automaton {
	nChildren := len(n.Gate.Children)
	shapeKey := gateShapeKey("sand", nChildren, 0, n.IsAlwaysActive, n.IsRepairable)

	initial := sandState{active: n.IsAlwaysActive}

	next := func(s sandState) []succ[sandState] {
		var out []succ[sandState]

		if !s.active {
			t := s
			t.active = true
			out = append(out, succ[sandState]{Act(SigActivate).At(0), t})
			return out
		}
		if s.failedUpTo < nChildren {
			out = append(out, succ[sandState]{Act(SigActivate).At(s.failedUpTo + 1), s})
		}

		if s.failedUpTo < nChildren {
			t := s
			t.failedUpTo++
			if t.failedUpTo == nChildren {
				t.gateFailed = true
			}
			out = append(out, succ[sandState]{Act(SigFail).At(s.failedUpTo + 1), t})
		}

		if s.gateFailed {
			out = append(out, succ[sandState]{Act(SigFail).At(0), s})
		}

		return out
	}

	return explore(shapeKey, initial, sandState.key, next)
}
