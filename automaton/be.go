package automaton

import (
	"fmt"

	"github.com/utwente-fmt/dftcalc-sub000/dft"
)

// beStatus is a basic event's top-level operational status.
type beStatus int

const (
	beUp beStatus = iota
	beDown
	beFailsafe
	beImpossible
)

// beRepair is the repair sub-protocol state, entered only while beDown.
type beRepair int

const (
	repNone beRepair = iota
	repNeeded
	repWaiting
	repBusy
	repDone
)

// beState is one reachable state of a basic event's automaton.
type beState struct {
	status  beStatus
	repair  beRepair
	phase   int
	active  bool
	terminal bool // true once no further action can change observable behavior
}

func (s beState) key() string {
	if s.status == beImpossible {
		return "IMPOSSIBLE"
	}
	if s.terminal {
		return "TERM"
	}
	return fmt.Sprintf("%d|%d|%d|%t", s.status, s.repair, s.phase, s.active)
}

// beShape carries the parameters of dft.BasicEvent that affect the shape
// of the generated state space (as opposed to only its rates, which the
// back end consumes separately).
type beShape struct {
	phases            int
	threshold         int // phase at which the periodic-inspection interval fires; 0 = never
	cold              bool
	repairable        bool
	independentRepair bool // repairable with no governing RepairUnit ancestor
	hasInspectModule  bool
	alwaysActive      bool
	failedAtStartup   bool
	canFailSafe       bool // one-shot/Bernoulli BE: phase-1 failure may resolve safely
}

func (s beShape) key() string {
	return fmt.Sprintf("be|p=%d|t=%d|cold=%t|rep=%t|indep=%t|insp=%t|active=%t|fs=%t|safe=%t",
		s.phases, s.threshold, s.cold, s.repairable, s.independentRepair, s.hasInspectModule,
		s.alwaysActive, s.failedAtStartup, s.canFailSafe)
}

func beShapeOf(n *dft.Node) beShape {
	phases := n.BE.Phases
	if phases < 1 {
		phases = 1
	}
	threshold := 0
	if n.HasInspectModule && n.BE.Interval > 0 {
		threshold = int(n.BE.Interval)
		if threshold < 1 {
			threshold = 1
		}
	}
	return beShape{
		phases:            phases,
		threshold:         threshold,
		cold:              n.BE.IsCold(),
		repairable:        n.IsRepairable,
		independentRepair: n.IsRepairable && !n.HasRepairModule,
		hasInspectModule:  n.HasInspectModule,
		alwaysActive:      n.IsAlwaysActive,
		failedAtStartup:   n.FailedAtStartup,
		canFailSafe:       n.BE.Mode == dft.ModeProbability,
	}
}

// BuildBasicEvent generates the LTS for a single dft.BasicEvent node:
// activation tracking, Erlang-phase failure progression at the dormant
// or active rate, optional periodic inspection signaling, and the
// NONE→NEEDED→WAITING→BUSY→DONE repair sub-protocol.
//
// The phase==1-with-canFailSafe competing-clock choice (advance toward
// failure vs. resolve safely) and the WAITING/BUSY split being uniform
// across every RepairUnit discipline are both decisions recorded in
// DESIGN.md rather than derived from a single unambiguous source.
func BuildBasicEvent(n *dft.Node) *Automaton {
	shape := beShapeOf(n)

	initial := beState{status: beUp, repair: repNone, phase: 1, active: shape.alwaysActive}
	if shape.failedAtStartup {
		initial = beState{status: beDown, phase: shape.phases, active: shape.alwaysActive}
	}

	next := func(s beState) []succ[beState] {
		if s.status == beImpossible || s.terminal {
			return nil
		}
		if s.status == beFailsafe {
			t := s
			t.terminal = true
			return []succ[beState]{{Act(SigTau), t}}
		}
		var out []succ[beState]

		// Activation tracking is independent of status/repair, except an
		// always-active node never listens for DEACTIVATE. A cold node that
		// is always-active is not contradictory: it fails at its active rate.
		if !shape.alwaysActive {
			if !s.active {
				t := s
				t.active = true
				out = append(out, succ[beState]{Act(SigActivate).At(0), t})
			} else {
				t := s
				t.active = false
				out = append(out, succ[beState]{Act(SigDeactivate).At(0), t})
			}
		} else {
			out = append(out, succ[beState]{Act(SigActivate).At(0), s})
		}

		switch s.status {
		case beUp:
			canFail := s.active || !shape.cold
			if canFail {
				rate := RateDormant
				if s.active {
					rate = RateActive
				}
				nextPhase := s.phase + 1
				t := s
				t.phase = nextPhase
				emitFail := s.phase >= shape.phases
				if emitFail {
					t.status = beDown
					t.repair = repNone
					lbl := Act(SigRateFail).At(s.phase).WithRate(rate)
					out = append(out, succ[beState]{lbl, t})
				} else {
					lbl := Act(SigRateFail).At(s.phase).WithRate(rate)
					out = append(out, succ[beState]{lbl, t})
					if shape.threshold > 0 && s.phase == shape.threshold {
						insp := t
						out = append(out, succ[beState]{Act(SigInspect).At(0), insp})
					}
				}
				if s.phase == 1 && shape.canFailSafe {
					safe := s
					safe.status = beFailsafe
					out = append(out, succ[beState]{Act(SigRateFail).At(0).WithRate(rate), safe})
				}
			}
		case beDown:
			// The failure broadcast is continuously on offer while down,
			// rather than a one-shot edge, so a parent gate composing
			// against this automaton can synchronize on it regardless of
			// which local repair sub-state has been reached.
			out = append(out, succ[beState]{Act(SigFail).At(0), s})
			if !shape.repairable {
				break
			}
			switch s.repair {
			case repNone:
				if shape.independentRepair {
					t := s
					t.repair = repBusy
					out = append(out, succ[beState]{Act(SigTau), t})
				} else {
					t := s
					t.repair = repNeeded
					out = append(out, succ[beState]{Act(SigTau), t})
				}
			case repNeeded:
				t := s
				t.repair = repWaiting
				out = append(out, succ[beState]{Act(SigRepair).At(0).WithDir(false), t})
			case repWaiting:
				t := s
				t.repair = repBusy
				out = append(out, succ[beState]{Act(SigRepairing).At(0), t})
			case repBusy:
				t := s
				t.status = beUp
				t.phase = 1
				t.repair = repDone
				out = append(out, succ[beState]{Act(SigRateRepair), t})
				out = append(out, succ[beState]{Act(SigOnline).At(0), t})
			case repDone:
				t := s
				t.repair = repNone
				out = append(out, succ[beState]{Act(SigRepaired).At(0), t})
			}
		}
		return out
	}

	return explore(shape.key(), initial, beState.key, next)
}
