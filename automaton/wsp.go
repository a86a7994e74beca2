package automaton

import (
	"strings"

	"github.com/utwente-fmt/dftcalc-sub000/dft"
)

// wspState tracks which child currently holds the claim (is the one
// actually in service), which children have failed (claimed or dormant),
// and whether the gate itself has exhausted every candidate.
type wspState struct {
	claimed    int // index into children, 0 = primary; -1 once exhausted
	failed     []bool
	active     bool
	gateFailed bool
}

func (s wspState) key() string {
	var b strings.Builder
	b.WriteString(itoa(s.claimed))
	b.WriteByte('|')
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

func cloneWsp(s wspState) wspState {
	failed := make([]bool, len(s.failed))
	copy(failed, s.failed)
	return wspState{claimed: s.claimed, failed: failed, active: s.active, gateFailed: s.gateFailed}
}

// nextCandidate returns the lowest-index child after the primary that has
// not yet failed, or -1 if none remain. Index 0 (the primary) is never
// reconsidered, even when it is the sole child.
func nextCandidate(s wspState) int {
	for i := 1; i < len(s.failed); i++ {
		if !s.failed[i] {
			return i
		}
	}
	return -1
}

// BuildWsp generates the LTS for a warm/cold/hot spare gate: the primary
// (children[0]) is claimed from the start; when the claimed child fails,
// the gate reclaims the lowest-index unfailed remaining spare, per
// declaration order (the reclamation-order decision recorded in
// DESIGN.md). Unclaimed spares may still fail while dormant if their Mu
// is nonzero (warm/hot spares); a cold spare's own automaton simply never
// offers a dormant RATE_FAIL, so that case needs no special handling here.
func BuildWsp(n *dft.Node) *Automaton {
	nChildren := len(n.Gate.Children)
	shapeKey := gateShapeKey("wsp", nChildren, 0, n.IsAlwaysActive, n.IsRepairable)

	initial := wspState{claimed: 0, failed: make([]bool, nChildren), active: n.IsAlwaysActive}

	next := func(s wspState) []succ[wspState] {
		if s.gateFailed {
			return []succ[wspState]{{Act(SigFail).At(0), s}}
		}
		var out []succ[wspState]

		if !s.active {
			t := s
			t.active = true
			out = append(out, succ[wspState]{Act(SigActivate).At(0), t})
			return out
		}
		if s.claimed >= 0 {
			out = append(out, succ[wspState]{Act(SigActivate).At(s.claimed + 1), s})
		}

		for i := 0; i < nChildren; i++ {
			if s.failed[i] {
				continue
			}
			t := cloneWsp(s)
			t.failed[i] = true
			if i == s.claimed {
				cand := nextCandidate(t)
				t.claimed = cand
				if cand < 0 {
					t.gateFailed = true
				}
			}
			out = append(out, succ[wspState]{Act(SigFail).At(i + 1), t})
		}

		return out
	}

	return explore(shapeKey, initial, wspState.key, next)
}
