package dft_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utwente-fmt/dftcalc-sub000/dft"
)

func twoOfThree(t *testing.T) (*dft.Graph, dft.NodeID) {
	t.Helper()
	g := dft.NewGraph()

	var kids []dft.NodeID
	for _, name := range []string{"b1", "b2", "b3"} {
		id, err := g.AddNode(&dft.Node{Name: name, Kind: dft.KindBasicEvent, BE: dft.BasicEvent{Lambda: 1, Mode: dft.ModeExponential}})
		require.NoError(t, err)
		kids = append(kids, id)
	}
	top, err := g.AddNode(&dft.Node{Name: "top", Kind: dft.KindVot, Gate: dft.Gate{Children: kids, VotK: 2}})
	require.NoError(t, err)
	require.NoError(t, g.SetTop("top"))
	g.ReindexParents()

	return g, top
}

func TestAddNodeRejectsDuplicateAndEmpty(t *testing.T) {
	g := dft.NewGraph()
	_, err := g.AddNode(&dft.Node{Name: "", Kind: dft.KindBasicEvent})
	assert.ErrorIs(t, err, dft.ErrEmptyName)

	_, err = g.AddNode(&dft.Node{Name: "x", Kind: dft.KindBasicEvent})
	require.NoError(t, err)
	_, err = g.AddNode(&dft.Node{Name: "x", Kind: dft.KindBasicEvent})
	assert.ErrorIs(t, err, dft.ErrDuplicateName)
}

func TestLookupAndTop(t *testing.T) {
	g, top := twoOfThree(t)
	n, err := g.LookupByName("top")
	require.NoError(t, err)
	assert.Equal(t, top, n.ID)

	_, err = g.LookupByName("nope")
	assert.ErrorIs(t, err, dft.ErrUnknownName)

	topNode, err := g.Top()
	require.NoError(t, err)
	assert.Equal(t, "top", topNode.Name)
}

func TestReindexParentsPopulatesBackEdges(t *testing.T) {
	g, _ := twoOfThree(t)
	b1, err := g.LookupByName("b1")
	require.NoError(t, err)
	require.Len(t, b1.Parents, 1)

	top, _ := g.LookupByName("top")
	assert.Equal(t, top.ID, b1.Parents[0])
}

func TestCheckReferencesFindsDangling(t *testing.T) {
	g := dft.NewGraph()
	_, err := g.AddNode(&dft.Node{Name: "top", Kind: dft.KindAnd, Gate: dft.Gate{Children: []dft.NodeID{99}}})
	require.NoError(t, err)
	errs := dft.CheckReferences(g)
	require.Len(t, errs, 1)
}

func TestCheckReachabilityFindsOrphan(t *testing.T) {
	g, _ := twoOfThree(t)
	_, err := g.AddNode(&dft.Node{Name: "orphan", Kind: dft.KindBasicEvent, BE: dft.BasicEvent{Lambda: 1}})
	require.NoError(t, err)

	unreached, err := dft.CheckReachability(g)
	require.NoError(t, err)
	assert.Equal(t, []string{"orphan"}, unreached)
}

func TestChildIndexIsOneBased(t *testing.T) {
	g, top := twoOfThree(t)
	topNode := g.Node(top)
	b2, _ := g.LookupByName("b2")
	assert.Equal(t, 2, topNode.ChildIndex(b2.ID))
	assert.Equal(t, 0, topNode.ChildIndex(dft.NodeID(999)))
}
