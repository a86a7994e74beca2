package rewrite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utwente-fmt/dftcalc-sub000/dft"
	"github.com/utwente-fmt/dftcalc-sub000/rewrite"
)

func buildSeqOfTwoBEs(t *testing.T) *dft.Graph {
	t.Helper()
	g := dft.NewGraph()
	b1, err := g.AddNode(&dft.Node{Name: "b1", Kind: dft.KindBasicEvent, BE: dft.BasicEvent{Lambda: 1, Mu: 0.5}})
	require.NoError(t, err)
	b2, err := g.AddNode(&dft.Node{Name: "b2", Kind: dft.KindBasicEvent, BE: dft.BasicEvent{Lambda: 1, Mu: 0.5}})
	require.NoError(t, err)
	_, err = g.AddNode(&dft.Node{Name: "top", Kind: dft.KindSeq, Gate: dft.Gate{Children: []dft.NodeID{b1, b2}}})
	require.NoError(t, err)
	require.NoError(t, g.SetTop("top"))

	return g
}

func TestApplyEvidenceMarksFailedAtStartup(t *testing.T) {
	g := buildSeqOfTwoBEs(t)
	errs := rewrite.ApplyEvidence(g, []string{"b1"})
	assert.Empty(t, errs)
	n, err := g.LookupByName("b1")
	require.NoError(t, err)
	assert.True(t, n.FailedAtStartup)
}

func TestApplyEvidenceUnknownNameAccumulates(t *testing.T) {
	g := buildSeqOfTwoBEs(t)
	errs := rewrite.ApplyEvidence(g, []string{"b1", "ghost"})
	require.Len(t, errs, 1)
}

func TestLiftSequencesReplacesIndependentSeq(t *testing.T) {
	g := buildSeqOfTwoBEs(t)
	g.ReindexParents()
	errs := rewrite.LiftSequences(g)
	assert.Empty(t, errs)

	top, err := g.LookupByName("top")
	require.NoError(t, err)
	assert.Equal(t, dft.KindSand, top.Kind)

	b1, _ := g.LookupByName("b1")
	b2, _ := g.LookupByName("b2")
	assert.Zero(t, b1.BE.Mu)
	assert.Zero(t, b2.BE.Mu)
}

func TestLiftSequencesRejectsSharedChild(t *testing.T) {
	g := dft.NewGraph()
	b1, _ := g.AddNode(&dft.Node{Name: "b1", Kind: dft.KindBasicEvent})
	_, _ = g.AddNode(&dft.Node{Name: "other", Kind: dft.KindOr, Gate: dft.Gate{Children: []dft.NodeID{b1}, VotK: 1}})
	_, _ = g.AddNode(&dft.Node{Name: "top", Kind: dft.KindSeq, Gate: dft.Gate{Children: []dft.NodeID{b1}}})
	require.NoError(t, g.SetTop("top"))
	g.ReindexParents()

	errs := rewrite.LiftSequences(g)
	require.Len(t, errs, 1)
	top, _ := g.LookupByName("top")
	assert.Equal(t, dft.KindSeq, top.Kind)
}

func TestPruneUnreachableRemovesOrphans(t *testing.T) {
	g := buildSeqOfTwoBEs(t)
	_, err := g.AddNode(&dft.Node{Name: "orphan", Kind: dft.KindBasicEvent})
	require.NoError(t, err)
	g.ReindexParents()

	removed, err := rewrite.PruneUnreachable(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"orphan"}, removed)
	_, err = g.LookupByName("orphan")
	assert.ErrorIs(t, err, dft.ErrUnknownName)
}

func TestPruneUnreachableKeepsFDEPDependerTrigger(t *testing.T) {
	g := dft.NewGraph()
	trig, _ := g.AddNode(&dft.Node{Name: "trig", Kind: dft.KindBasicEvent})
	dep, _ := g.AddNode(&dft.Node{Name: "dep", Kind: dft.KindBasicEvent})
	fdep, _ := g.AddNode(&dft.Node{Name: "fdep", Kind: dft.KindFdep, Gate: dft.Gate{Children: []dft.NodeID{trig, dep}}})
	_, _ = g.AddNode(&dft.Node{Name: "top", Kind: dft.KindOr, Gate: dft.Gate{Children: []dft.NodeID{fdep}, VotK: 1}})
	require.NoError(t, g.SetTop("top"))
	g.ReindexParents()

	_, err := rewrite.PruneUnreachable(g)
	require.NoError(t, err)
	for _, name := range []string{"trig", "dep", "fdep", "top"} {
		_, err := g.LookupByName(name)
		assert.NoError(t, err)
	}
}

func TestPropagateRepairInfoBottomUp(t *testing.T) {
	g := dft.NewGraph()
	b1, _ := g.AddNode(&dft.Node{Name: "b1", Kind: dft.KindBasicEvent, BE: dft.BasicEvent{Repair: 1}})
	b2, _ := g.AddNode(&dft.Node{Name: "b2", Kind: dft.KindBasicEvent})
	_, _ = g.AddNode(&dft.Node{Name: "top", Kind: dft.KindAnd, Gate: dft.Gate{Children: []dft.NodeID{b1, b2}, VotK: 2}})
	require.NoError(t, g.SetTop("top"))
	g.ReindexParents()

	rewrite.PropagateRepairInfo(g)
	top, _ := g.LookupByName("top")
	assert.True(t, top.IsRepairable)
}

func TestPropagateAlwaysActiveMarksWSPSpareDynamic(t *testing.T) {
	g := dft.NewGraph()
	primary, _ := g.AddNode(&dft.Node{Name: "p", Kind: dft.KindBasicEvent})
	spare, _ := g.AddNode(&dft.Node{Name: "s", Kind: dft.KindBasicEvent})
	_, _ = g.AddNode(&dft.Node{Name: "top", Kind: dft.KindWsp, Gate: dft.Gate{Children: []dft.NodeID{primary, spare}}})
	require.NoError(t, g.SetTop("top"))
	g.ReindexParents()

	rewrite.PropagateAlwaysActive(g)
	p, _ := g.LookupByName("p")
	s, _ := g.LookupByName("s")
	assert.True(t, p.IsAlwaysActive)
	assert.False(t, s.IsAlwaysActive)
}

func TestCleanFDEPRemovesRedundantDepender(t *testing.T) {
	g := dft.NewGraph()
	// "redundant" lies below the trigger, so the trigger's own failure
	// already reaches it through the child relation.
	redundant, _ := g.AddNode(&dft.Node{Name: "redundant", Kind: dft.KindBasicEvent})
	trig, _ := g.AddNode(&dft.Node{Name: "trig", Kind: dft.KindOr, Gate: dft.Gate{Children: []dft.NodeID{redundant}, VotK: 1}})
	_, _ = g.AddNode(&dft.Node{Name: "andgate", Kind: dft.KindAnd, Gate: dft.Gate{Children: []dft.NodeID{trig, redundant}, VotK: 2}})
	_, _ = g.AddNode(&dft.Node{Name: "fdep", Kind: dft.KindFdep, Gate: dft.Gate{Children: []dft.NodeID{trig, redundant}}})
	_, _ = g.AddNode(&dft.Node{Name: "top", Kind: dft.KindOr, Gate: dft.Gate{Children: []dft.NodeID{mustID(t, g, "andgate"), mustID(t, g, "fdep")}}, BE: dft.BasicEvent{}})
	require.NoError(t, g.SetTop("top"))
	g.ReindexParents()

	rewrite.CleanFDEPEdges(g)
	fdep, _ := g.LookupByName("fdep")
	assert.Len(t, fdep.Gate.Children, 1)
}

func mustID(t *testing.T, g *dft.Graph, name string) dft.NodeID {
	t.Helper()
	n, err := g.LookupByName(name)
	require.NoError(t, err)

	return n.ID
}
