// Package dft defines the in-memory dynamic fault tree graph: nodes, their
// typed payloads, and the parent/child relation between them.
//
// A Graph owns every Node in an arena indexed by a stable NodeID; gates
// refer to children by NodeID rather than by pointer or name, so rewrite
// passes can relink parents without invalidating other references. Parent
// back-links are lookup-only and are recomputed whenever the child relation
// changes (see Graph.ReindexParents).
package dft

import "errors"

// Sentinel errors returned by Graph lookups and mutations.
var (
	// ErrEmptyName indicates a Node was given an empty name.
	ErrEmptyName = errors.New("dft: node name is empty")

	// ErrDuplicateName indicates a second node was added under a name
	// already present in the Graph.
	ErrDuplicateName = errors.New("dft: duplicate node name")

	// ErrUnknownName indicates a lookup or reference named a node that
	// does not exist in the Graph.
	ErrUnknownName = errors.New("dft: unknown node name")

	// ErrNoTop indicates an operation required a top node to be set.
	ErrNoTop = errors.New("dft: top node not set")
)

// NodeID is a stable arena index into a Graph. It is never reused within
// the lifetime of a Graph, even if the node it names is later pruned.
type NodeID int

// invalidID marks the absence of a node reference.
const invalidID NodeID = -1

// Kind tags the variant of a Node's payload.
type Kind int

const (
	// KindBasicEvent is a leaf node with a stochastic failure distribution.
	KindBasicEvent Kind = iota
	// KindAnd is a static AND gate (threshold == arity).
	KindAnd
	// KindOr is a static OR gate (threshold == 1).
	KindOr
	// KindVot is a static k-of-N voting gate.
	KindVot
	// KindPand is a priority-AND gate.
	KindPand
	// KindPor is a priority-OR gate, built by automaton.BuildPriorityGate
	// with PAND's ordering-prefix state; see that function for when it fails.
	KindPor
	// KindSand is a sequential-AND gate.
	KindSand
	// KindSeq is a sequence enforcer, lifted to Sand by the rewriter when
	// its children are independent.
	KindSeq
	// KindWsp is a warm/cold/hot spare gate.
	KindWsp
	// KindFdep is a functional dependency gate.
	KindFdep
	// KindRepairUnit is a repair unit, in one of several scheduling
	// disciplines (see RepairDiscipline).
	KindRepairUnit
	// KindInspection is a periodic-inspection gate.
	KindInspection
	// KindReplacement is a periodic forced-repair gate.
	KindReplacement
)

// String renders a Kind using the textual DFT syntax's gate-type spelling
// where one exists, or a descriptive name otherwise.
func (k Kind) String() string {
	switch k {
	case KindBasicEvent:
		return "basic-event"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindVot:
		return "voting"
	case KindPand:
		return "pand"
	case KindPor:
		return "por"
	case KindSand:
		return "sand"
	case KindSeq:
		return "seq"
	case KindWsp:
		return "wsp"
	case KindFdep:
		return "fdep"
	case KindRepairUnit:
		return "ru"
	case KindInspection:
		return "insp"
	case KindReplacement:
		return "rep"
	default:
		return "unknown"
	}
}

// IsGate reports whether k is a gate kind, i.e. anything but a basic event.
func (k Kind) IsGate() bool { return k != KindBasicEvent }

// CalculationMode records which family of distribution parameters a
// BasicEvent was lowered with. Exactly one of these (besides Undefined)
// is consistent with a validly-lowered BasicEvent.
type CalculationMode int

const (
	// ModeUndefined marks a BasicEvent whose rate fields have not yet
	// been classified; lowering must never hand the rewriter a node in
	// this state.
	ModeUndefined CalculationMode = iota
	// ModeExponential means Lambda (and optionally Mu) is primary.
	ModeExponential
	// ModeProbability means Prob is primary (a one-shot Bernoulli event).
	ModeProbability
	// ModeErlang means Phases > 1 with an exponential per-phase rate.
	ModeErlang
	// ModePhaseType means an externally supplied phase-type LTS file is used.
	ModePhaseType
)

// RepairDiscipline distinguishes the four RepairUnit scheduling policies.
type RepairDiscipline int

const (
	// RepairArbitrary services requesters in any non-deterministic order.
	RepairArbitrary RepairDiscipline = iota
	// RepairFCFS services requesters in first-come-first-served order.
	RepairFCFS
	// RepairPriority services requesters by an immutable priority vector.
	RepairPriority
	// RepairNonDeterministic explicitly signals which child is serviced
	// via REPAIRING before the child may proceed from WAITING to BUSY.
	RepairNonDeterministic
)

// BasicEvent holds the leaf-level stochastic parameters. Fields default
// to their zero values, which the lowering step (out of scope here) is
// responsible for populating consistently.
type BasicEvent struct {
	Lambda   float64 // active failure rate, >= 0
	Mu       float64 // dormant rate, >= 0; 0 means "cold"
	Prob     float64 // one-shot probability in [0,1]; mutually exclusive with Lambda
	Dorm     float64 // dormancy factor in [0,1], used when neither Lambda nor Prob is primary
	Repair   float64 // repair rate, >= 0
	Phases   int     // Erlang shape, >= 1
	Interval float64 // periodic inspection period, >= 0
	Priority int     // >= 0
	Res      float64 // restoration factor in [0,1]
	Maintain float64 // >= 0

	// EmbeddedPhaseTypeFile is the optional path to an externally
	// supplied phase-type LTS, used when Mode == ModePhaseType.
	EmbeddedPhaseTypeFile string

	Mode CalculationMode
}

// IsCold reports whether the dormant failure rate is zero.
func (b *BasicEvent) IsCold() bool { return b.Mu == 0 }

// Gate holds the fields shared by every gate variant: its ordered
// children (declaration order is significant for Pand, Wsp, and Fdep)
// and any kind-specific payload.
type Gate struct {
	Children []NodeID

	// Vot holds (k, N) for KindVot; for KindAnd, k == N; for KindOr and
	// KindPor, k == 1.
	VotK int

	// Repair holds the scheduling discipline for KindRepairUnit.
	Repair RepairDiscipline

	// Priorities holds, for KindRepairUnit with Repair == RepairPriority,
	// the priority of each serviced child in declaration order.
	Priorities []int

	// InspectionPhases is the modulus counter length for KindInspection
	// and KindReplacement (derived from the driving Interval/phase count).
	InspectionPhases int
}

// Node is a single element of a dynamic fault tree: the fields common to
// every variant, plus exactly one non-zero payload selected by Kind.
type Node struct {
	ID   NodeID
	Name string
	Kind Kind

	// Parents lists every gate that references this node as a child, or
	// (for the trigger of an FDEP) that it triggers. Back-edges only;
	// ownership lives in Graph.nodes. Recomputed by Graph.ReindexParents
	// whenever the child relation changes.
	Parents []NodeID

	FailedAtStartup bool // evidence

	// Derived flags, valid only after rewrite.Run has completed.
	IsRepairable     bool
	IsAlwaysActive   bool
	HasRepairModule  bool
	HasInspectModule bool

	BE   BasicEvent // meaningful iff Kind == KindBasicEvent
	Gate Gate       // meaningful iff Kind.IsGate()
}
