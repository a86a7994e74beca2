package automaton

import (
	"strings"

	"github.com/utwente-fmt/dftcalc-sub000/dft"
)

// ruState tracks which children are waiting for service, which one (if
// any) currently holds the server, and for FCFS the arrival order of the
// still-waiting requests.
type ruState struct {
	waiting []bool
	queue   []int // FCFS arrival order of currently-waiting indices
	serving int   // -1 if the server is idle
	active  bool
}

func (s ruState) key() string {
	var b strings.Builder
	for _, w := range s.waiting {
		if w {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	b.WriteByte('|')
	for _, q := range s.queue {
		b.WriteString(itoa(q))
		b.WriteByte(',')
	}
	b.WriteByte('|')
	b.WriteString(itoa(s.serving))
	if s.active {
		b.WriteByte('A')
	}
	return b.String()
}

func cloneRU(s ruState) ruState {
	return ruState{
		waiting: append([]bool(nil), s.waiting...),
		queue:   append([]int(nil), s.queue...),
		serving: s.serving,
		active:  s.active,
	}
}

// BuildRepairUnit generates the LTS for a shared repair server governing
// n.Gate.Children, dispatching one at a time per n.Gate.Repair's
// discipline. Every discipline uses the same REPAIR(i,false)-request /
// REPAIRING(i)-dispatch / REPAIRED(i)-completion handshake (see the BE
// builder's uniform-protocol decision in DESIGN.md); RepairArbitrary and
// RepairNonDeterministic pick the same way (any currently-waiting child)
// because that decision already made the "which child is signaled"
// distinction universal rather than ND-specific. FCFS and Priority each
// compute a single deterministic candidate instead of offering a choice.
func BuildRepairUnit(n *dft.Node) *Automaton {
	nChildren := len(n.Gate.Children)
	discipline := n.Gate.Repair
	shapeKey := gateShapeKey("ru", nChildren, int(discipline), n.IsAlwaysActive, true)

	initial := ruState{waiting: make([]bool, nChildren), serving: -1, active: n.IsAlwaysActive}

	next := func(s ruState) []succ[ruState] {
		var out []succ[ruState]

		if !s.active {
			t := s
			t.active = true
			out = append(out, succ[ruState]{Act(SigActivate).At(0), t})
			return out
		}
		for i := 0; i < nChildren; i++ {
			out = append(out, succ[ruState]{Act(SigActivate).At(i + 1), s})
		}

		for i := 0; i < nChildren; i++ {
			if s.waiting[i] || i == s.serving {
				continue
			}
			t := cloneRU(s)
			t.waiting[i] = true
			t.queue = append(t.queue, i)
			out = append(out, succ[ruState]{Act(SigRepair).At(i + 1).WithDir(false), t})
		}

		if s.serving < 0 {
			for _, cand := range dispatchCandidates(s, n.Gate, discipline) {
				t := cloneRU(s)
				t.waiting[cand] = false
				t.serving = cand
				t.queue = removeFromQueue(t.queue, cand)
				out = append(out, succ[ruState]{Act(SigRepairing).At(cand + 1), t})
			}
		} else {
			t := cloneRU(s)
			t.serving = -1
			out = append(out, succ[ruState]{Act(SigRepaired).At(s.serving + 1), t})
		}

		return out
	}

	return explore(shapeKey, initial, ruState.key, next)
}

// dispatchCandidates returns, for the server's current discipline, the
// set of children it is willing to dispatch to next. Arbitrary and
// NonDeterministic return every waiting child (a nondeterministic
// choice); FCFS and Priority return at most one.
func dispatchCandidates(s ruState, gate dft.Gate, discipline dft.RepairDiscipline) []int {
	switch discipline {
	case dft.RepairFCFS:
		if len(s.queue) == 0 {
			return nil
		}
		return []int{s.queue[0]}
	case dft.RepairPriority:
		best, bestP := -1, 0
		for i, w := range s.waiting {
			if !w {
				continue
			}
			p := 0
			if i < len(gate.Priorities) {
				p = gate.Priorities[i]
			}
			if best < 0 || p > bestP {
				best, bestP = i, p
			}
		}
		if best < 0 {
			return nil
		}
		return []int{best}
	default: // RepairArbitrary, RepairNonDeterministic
		var cands []int
		for i, w := range s.waiting {
			if w {
				cands = append(cands, i)
			}
		}
		return cands
	}
}

func removeFromQueue(queue []int, v int) []int {
	out := queue[:0:0]
	for _, q := range queue {
		if q != v {
			out = append(out, q)
		}
	}
	return out
}
