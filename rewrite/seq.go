package rewrite

import "github.com/utwente-fmt/dftcalc-sub000/dft"

// LiftSequences is rewrite pass 2: every SEQ gate whose children are
// independent subtrees (conservatively: each child's sole parent is this
// SEQ, and the child is itself a BasicEvent) is rewritten in place into a
// SAND gate, with every BasicEvent in the affected subtree made cold (Mu
// set to 0, every dormancy factor in the affected subtree zeroed). The
// SEQ node is not removed from the Graph's arena (NodeIDs are stable); it
// is mutated into the SAND it becomes, so parents and the top-node
// pointer need no relinking.
//
// A SEQ whose children are not conservatively independent is left
// untouched and reported via ErrCyclicSeq, an accumulated structural
// error rather than a panic.
func LiftSequences(g *dft.Graph) []error {
	var errs []error
	for _, n := range g.Nodes() {
		if n.Kind != dft.KindSeq {
			continue
		}
		if !seqChildrenIndependent(g, n) {
			errs = append(errs, ErrCyclicSeq)
			continue
		}
		for _, cid := range n.Gate.Children {
			child := g.Node(cid)
			child.BE.Mu = 0
			child.BE.Dorm = 0
		}
		n.Kind = dft.KindSand
	}

	return errs
}

// seqChildrenIndependent conservatively approximates "independent
// subtrees": every child of n is a BasicEvent whose only parent
// (recorded by the most recent ReindexParents) is n itself.
func seqChildrenIndependent(g *dft.Graph, n *dft.Node) bool {
	for _, cid := range n.Gate.Children {
		child := g.Node(cid)
		if child.Kind != dft.KindBasicEvent {
			return false
		}
		if len(child.Parents) > 1 {
			return false
		}
		if len(child.Parents) == 1 && child.Parents[0] != n.ID {
			return false
		}
	}

	return true
}
