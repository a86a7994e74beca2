package automaton_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/utwente-fmt/dftcalc-sub000/automaton"
	"github.com/utwente-fmt/dftcalc-sub000/dft"
)

func TestBasicEventInitialActivateEnabled(t *testing.T) {
	n := &dft.Node{Kind: dft.KindBasicEvent, BE: dft.BasicEvent{Lambda: 1}}
	a := automaton.BuildBasicEvent(n)
	assert.True(t, a.HasInitialActivate())
}

func TestBasicEventAlwaysActiveColdStillFailsViaActiveRate(t *testing.T) {
	// An always-active BE with Mu == 0 ("cold") is not a contradiction:
	// cold only means it cannot fail while dormant, and an always-active
	// node is never dormant, so the active rate still applies.
	n := &dft.Node{
		Kind:           dft.KindBasicEvent,
		BE:             dft.BasicEvent{Lambda: 1, Mu: 0},
		IsAlwaysActive: true,
	}
	a := automaton.BuildBasicEvent(n)
	found := false
	for _, tr := range a.Transitions {
		if tr.Label.Signal == automaton.SigFail {
			found = true
		}
	}
	assert.True(t, found)
	assert.Empty(t, a.ImpossibleSinks())
}

func TestBasicEventNeverFailsWhenColdAndNotActive(t *testing.T) {
	n := &dft.Node{Kind: dft.KindBasicEvent, BE: dft.BasicEvent{Lambda: 1, Mu: 0}}
	a := automaton.BuildBasicEvent(n)
	for _, tr := range a.Transitions {
		if tr.Label.Signal != automaton.SigRateFail {
			continue
		}
		// A cold BE may still fail once activated; what it must never do
		// is take a failure step (RATE_FAIL) while its own state still
		// encodes active=false. FAIL(0) itself stays on offer in a down
		// state after a later DEACTIVATE, so it is not the edge checked.
		assert.Contains(t, a.States[tr.From], "true", "cold dormant BE must never reach FAIL before activation")
	}
}

func TestBasicEventReachesFailWhenActive(t *testing.T) {
	n := &dft.Node{Kind: dft.KindBasicEvent, BE: dft.BasicEvent{Lambda: 1, Mu: 0}, IsAlwaysActive: true}
	a := automaton.BuildBasicEvent(n)
	found := false
	for _, tr := range a.Transitions {
		if tr.Label.Signal == automaton.SigFail {
			found = true
		}
	}
	assert.True(t, found)
}

func TestBasicEventAtMostOneImpossibleSink(t *testing.T) {
	n := &dft.Node{Kind: dft.KindBasicEvent, BE: dft.BasicEvent{Mu: 0}, IsAlwaysActive: true}
	a := automaton.BuildBasicEvent(n)
	sinks := a.ImpossibleSinks()
	assert.LessOrEqual(t, len(sinks), 1)
}

func votingNode(kind dft.Kind, k, n int, alwaysActive bool) *dft.Node {
	children := make([]dft.NodeID, n)
	for i := range children {
		children[i] = dft.NodeID(i + 1)
	}
	return &dft.Node{
		Kind:           kind,
		Gate:           dft.Gate{Children: children, VotK: k},
		IsAlwaysActive: alwaysActive,
	}
}

func TestVotingAndRequiresAllChildren(t *testing.T) {
	n := votingNode(dft.KindAnd, 2, 2, true)
	a := automaton.BuildVoting(n)

	reachesGateFail := false
	for _, k := range a.States {
		if containsRune(k, 'F') {
			reachesGateFail = true
			assert.Equal(t, "11AF", k, "AND gate may only fail once both children have failed")
		}
	}
	assert.True(t, reachesGateFail)
}

func TestVotingOrFailsOnFirstChild(t *testing.T) {
	n := votingNode(dft.KindOr, 1, 2, true)
	a := automaton.BuildVoting(n)

	// From the initial state, some single FAIL(i) transition must lead
	// directly to a gate-failed state.
	oneStepFail := false
	for _, tr := range a.Transitions {
		if tr.From == a.Initial && tr.Label.Signal == automaton.SigFail && tr.Label.Index != 0 {
			if containsRune(a.States[tr.To], 'F') {
				oneStepFail = true
			}
		}
	}
	assert.True(t, oneStepFail)
}

func TestWspClaimsNextSpareOnPrimaryFailure(t *testing.T) {
	n := &dft.Node{
		Kind:           dft.KindWsp,
		Gate:           dft.Gate{Children: []dft.NodeID{1, 2, 3}},
		IsAlwaysActive: true,
	}
	a := automaton.BuildWsp(n)

	sawClaimShiftToSpareOne := false
	for _, tr := range a.Transitions {
		// The target state's key starts with the claimed child index.
		if tr.From == a.Initial && tr.Label.Signal == automaton.SigFail && tr.Label.Index == 1 &&
			strings.HasPrefix(a.States[tr.To], "1|") {
			sawClaimShiftToSpareOne = true
		}
	}
	assert.True(t, sawClaimShiftToSpareOne)
}

func TestWspExhaustionFailsGate(t *testing.T) {
	n := &dft.Node{
		Kind:           dft.KindWsp,
		Gate:           dft.Gate{Children: []dft.NodeID{1, 2}},
		IsAlwaysActive: true,
	}
	a := automaton.BuildWsp(n)
	found := false
	for _, tr := range a.Transitions {
		if tr.Label.Signal == automaton.SigFail && tr.Label.Index == 0 {
			found = true
		}
	}
	assert.True(t, found)
}

func TestFdepForwardsTriggerFailureToDependers(t *testing.T) {
	n := &dft.Node{
		Kind:           dft.KindFdep,
		Gate:           dft.Gate{Children: []dft.NodeID{1, 2, 3}},
		IsAlwaysActive: true,
	}
	a := automaton.BuildFdep(n)

	sawDependerFail := map[int]bool{}
	for _, tr := range a.Transitions {
		if tr.Label.Signal == automaton.SigFail && tr.Label.Index > 1 {
			sawDependerFail[tr.Label.Index] = true
		}
	}
	assert.True(t, sawDependerFail[2])
	assert.True(t, sawDependerFail[3])
}

func TestRepairUnitFCFSDispatchesArrivalOrder(t *testing.T) {
	n := &dft.Node{
		Kind:           dft.KindRepairUnit,
		Gate:           dft.Gate{Children: []dft.NodeID{1, 2}, Repair: dft.RepairFCFS},
		IsAlwaysActive: true,
	}
	a := automaton.BuildRepairUnit(n)
	assert.NotEmpty(t, a.States)

	sawDispatch := false
	for _, tr := range a.Transitions {
		if tr.Label.Signal == automaton.SigRepairing {
			sawDispatch = true
		}
	}
	assert.True(t, sawDispatch)

	// Child 2 requests before child 1 (state key: both waiting, queue
	// "1,0,", server idle): only child 2 may be dispatched next.
	bothWaiting := -1
	for id, k := range a.States {
		if k == "11|1,0,|-1A" {
			bothWaiting = id
		}
	}
	if assert.GreaterOrEqual(t, bothWaiting, 0) {
		var dispatched []int
		for _, tr := range a.Transitions {
			if tr.From == bothWaiting && tr.Label.Signal == automaton.SigRepairing {
				dispatched = append(dispatched, tr.Label.Index)
			}
		}
		assert.Equal(t, []int{2}, dispatched)
	}
}

func containsRune(s string, r rune) bool {
	for _, c := range s {
		if c == r {
			return true
		}
	}
	return false
}
