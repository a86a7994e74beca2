package compose

import "github.com/utwente-fmt/dftcalc-sub000/automaton"

// Hide renames every transition in a whose Signal is in hideSet to TAU,
// leaving the transition and its rate/probability weight otherwise
// intact (hiding makes an action internal for equivalence purposes; it
// never removes the step, since a Markovian clock still has to fire for
// the checker's result to be meaningful). States themselves are
// untouched, so callers wanting state-space reduction on top of this
// should run their own bisimulation minimization separately; this
// package only implements the signal-renaming half of "hide".
func Hide(a *automaton.Automaton, hideSet map[automaton.Signal]bool) *automaton.Automaton {
	out := &automaton.Automaton{
		ShapeKey:    a.ShapeKey,
		States:      a.States,
		Initial:     a.Initial,
		Transitions: make([]automaton.Transition, len(a.Transitions)),
	}
	for i, t := range a.Transitions {
		if hideSet[t.Label.Signal] {
			t.Label = automaton.Act(automaton.SigTau)
		}
		out.Transitions[i] = t
	}
	return out
}

// DefaultHideSet hides every signal that is only ever meaningful between
// a node and its immediate parent in the original tree: once the whole
// tree is composed, ACTIVATE/DEACTIVATE/REPAIR/REPAIRED/REPAIRING/INSPECT
// have no further external observer, and FAIL/ONLINE on anything but the
// top node carry no information a property over the top node's own
// status needs. Callers checking a property about an interior node's
// FAIL/ONLINE (e.g. an independent module's own unreliability) should
// build their own hide set instead of using this one.
func DefaultHideSet() map[automaton.Signal]bool {
	return map[automaton.Signal]bool{
		automaton.SigActivate:   true,
		automaton.SigDeactivate: true,
		automaton.SigRepair:     true,
		automaton.SigRepaired:   true,
		automaton.SigRepairing:  true,
		automaton.SigInspect:    true,
	}
}
