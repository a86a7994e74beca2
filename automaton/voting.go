package automaton

import (
	"strings"

	"github.com/utwente-fmt/dftcalc-sub000/dft"
)

// votingState tracks, for a static k-of-n gate, which children have
// reported FAIL and whether the gate itself has failed.
type votingState struct {
	failed     []bool
	active     bool
	gateFailed bool
}

func (s votingState) key() string {
	var b strings.Builder
	for _, f := range s.failed {
		if f {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	if s.active {
		b.WriteByte('A')
	}
	if s.gateFailed {
		b.WriteByte('F')
	}
	return b.String()
}

func (s votingState) count() int {
	n := 0
	for _, f := range s.failed {
		if f {
			n++
		}
	}
	return n
}

// BuildVoting generates the LTS for a static k-of-n gate: AND (k==n), OR
// (k==1), and general VOT. The gate tracks which children have reported
// FAIL, raises its own FAIL once at least k have, and (if repairable)
// retracts it via ONLINE once the count drops back below k. Activation
// is forwarded to every child once received from the parent, and
// continuously re-offered thereafter so a late-joining or previously
// dormant child still observes it.
func BuildVoting(n *dft.Node) *Automaton {
	nChildren := len(n.Gate.Children)
	k := n.Gate.VotK
	repairable := n.IsRepairable
	shapeKey := gateShapeKey("vot", nChildren, k, n.IsAlwaysActive, repairable)

	initial := votingState{failed: make([]bool, nChildren), active: n.IsAlwaysActive}

	next := func(s votingState) []succ[votingState] {
		var out []succ[votingState]

		if !s.active {
			t := s
			t.active = true
			out = append(out, succ[votingState]{Act(SigActivate).At(0), t})
			return out
		}
		for i := 0; i < nChildren; i++ {
			out = append(out, succ[votingState]{Act(SigActivate).At(i + 1), s})
		}

		for i := 0; i < nChildren; i++ {
			if !s.failed[i] {
				t := cloneVoting(s)
				t.failed[i] = true
				if t.count() >= k {
					t.gateFailed = true
				}
				out = append(out, succ[votingState]{Act(SigFail).At(i + 1), t})
			} else if repairable {
				t := cloneVoting(s)
				t.failed[i] = false
				if t.count() < k {
					t.gateFailed = false
				}
				out = append(out, succ[votingState]{Act(SigOnline).At(i + 1), t})
			}
		}

		if s.gateFailed {
			out = append(out, succ[votingState]{Act(SigFail).At(0), s})
		} else if repairable {
			out = append(out, succ[votingState]{Act(SigOnline).At(0), s})
		}

		return out
	}

	return explore(shapeKey, initial, votingState.key, next)
}

func cloneVoting(s votingState) votingState {
	failed := make([]bool, len(s.failed))
	copy(failed, s.failed)
	return votingState{failed: failed, active: s.active, gateFailed: s.gateFailed}
}

func gateShapeKey(kind string, n, k int, alwaysActive, repairable bool) string {
	var b strings.Builder
	b.WriteString(kind)
	b.WriteByte('|')
	b.WriteString(itoa(n))
	b.WriteByte('|')
	b.WriteString(itoa(k))
	if alwaysActive {
		b.WriteByte('A')
	}
	if repairable {
		b.WriteByte('R')
	}
	return b.String()
}
