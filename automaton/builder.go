package automaton

import (
	"fmt"

	"github.com/utwente-fmt/dftcalc-sub000/dft"
)

// Build dispatches to the per-variant generator for n.Kind. It panics on
// an unrecognized Kind, which indicates a bug in the caller rather than
// bad input: every dft.Kind constant has a builder here.
func Build(n *dft.Node) *Automaton {
	switch n.Kind {
	case dft.KindBasicEvent:
		return BuildBasicEvent(n)
	case dft.KindAnd, dft.KindOr, dft.KindVot:
		return BuildVoting(n)
	case dft.KindPand:
		return BuildPriorityGate(n, false)
	case dft.KindPor:
		return BuildPriorityGate(n, true)
	case dft.KindSand, dft.KindSeq:
		return BuildSand(n)
	case dft.KindWsp:
		return BuildWsp(n)
	case dft.KindFdep:
		return BuildFdep(n)
	case dft.KindRepairUnit:
		return BuildRepairUnit(n)
	case dft.KindInspection:
		return BuildInspection(n)
	case dft.KindReplacement:
		return BuildReplacement(n)
	default:
		panic(fmt.Sprintf("automaton: no builder registered for kind %s", n.Kind))
	}
}
