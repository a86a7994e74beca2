package compose_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utwente-fmt/dftcalc-sub000/automaton"
	"github.com/utwente-fmt/dftcalc-sub000/compose"
	"github.com/utwente-fmt/dftcalc-sub000/dft"
)

func buildOrOfTwoBEs(t *testing.T) (*dft.Graph, *dft.Node) {
	t.Helper()
	g := dft.NewGraph()
	b1, err := g.AddNode(&dft.Node{
		Name: "b1", Kind: dft.KindBasicEvent,
		BE: dft.BasicEvent{Lambda: 1, Mu: 0}, IsAlwaysActive: true,
	})
	require.NoError(t, err)
	b2, err := g.AddNode(&dft.Node{
		Name: "b2", Kind: dft.KindBasicEvent,
		BE: dft.BasicEvent{Lambda: 1, Mu: 0}, IsAlwaysActive: true,
	})
	require.NoError(t, err)
	topID, err := g.AddNode(&dft.Node{
		Name: "top", Kind: dft.KindOr,
		Gate:           dft.Gate{Children: []dft.NodeID{b1, b2}, VotK: 1},
		IsAlwaysActive: true,
	})
	require.NoError(t, err)
	require.NoError(t, g.SetTop("top"))
	g.ReindexParents()

	return g, g.Node(topID)
}

func TestComposeOrReachesTopFailAfterOneChildFails(t *testing.T) {
	g, top := buildOrOfTwoBEs(t)
	a := compose.Node(g, top)

	sawTopFail := false
	for _, tr := range a.Transitions {
		if tr.Label.Signal == automaton.SigFail && tr.Label.Index == 0 {
			sawTopFail = true
		}
	}
	assert.True(t, sawTopFail, "composed OR-of-two-BEs must expose a top-level FAIL(0)")
}

func TestComposeHidesInteriorActivateAfterDefaultHideSet(t *testing.T) {
	g, top := buildOrOfTwoBEs(t)
	a := compose.Node(g, top)
	hidden := compose.Hide(a, compose.DefaultHideSet())

	for _, tr := range hidden.Transitions {
		assert.NotEqual(t, automaton.SigActivate, tr.Label.Signal)
	}
}
