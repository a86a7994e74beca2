package automaton

import (
	"strings"

	"github.com/utwente-fmt/dftcalc-sub000/dft"
)

// inspectionState tracks, per child, whether it has an outstanding
// REPAIR request the module has not yet serviced.
type inspectionState struct {
	waiting []bool
	active  bool
}

func (s inspectionState) key() string {
	var b strings.Builder
	for _, w := range s.waiting {
		if w {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	if s.active {
		b.WriteByte('A')
	}
	return b.String()
}

func cloneInspection(s inspectionState) inspectionState {
	waiting := append([]bool(nil), s.waiting...)
	return inspectionState{waiting: waiting, active: s.active}
}

// BuildInspection generates the LTS for a periodic-inspection module. A
// child that fails and has no independent repair module requests service
// with REPAIR(i, false); the module only actually dispatches REPAIRING(i)
// (clearing the request) when either that specific child's own INSPECT(i)
// fires or the module's periodic RATE_INSPECTION clock ticks — unlike a
// RepairUnit, which may dispatch as soon as a request arrives, inspection
// is inherently tied to the check schedule rather than to demand.
func BuildInspection(n *dft.Node) *Automaton {
	nChildren := len(n.Gate.Children)
	shapeKey := gateShapeKey("insp", nChildren, 0, n.IsAlwaysActive, true)

	initial := inspectionState{waiting: make([]bool, nChildren), active: n.IsAlwaysActive}

	next := func(s inspectionState) []succ[inspectionState] {
		var out []succ[inspectionState]

		if !s.active {
			t := s
			t.active = true
			out = append(out, succ[inspectionState]{Act(SigActivate).At(0), t})
			return out
		}
		for i := 0; i < nChildren; i++ {
			out = append(out, succ[inspectionState]{Act(SigActivate).At(i + 1), s})
		}

		for i := 0; i < nChildren; i++ {
			if !s.waiting[i] {
				t := cloneInspection(s)
				t.waiting[i] = true
				out = append(out, succ[inspectionState]{Act(SigRepair).At(i + 1).WithDir(false), t})
				continue
			}
			t := cloneInspection(s)
			t.waiting[i] = false
			out = append(out, succ[inspectionState]{Act(SigInspect).At(i + 1), t})
			out = append(out, succ[inspectionState]{Act(SigRepairing).At(i + 1), t})
			out = append(out, succ[inspectionState]{Act(SigRateInspection), t})
		}

		return out
	}

	return explore(shapeKey, initial, inspectionState.key, next)
}
