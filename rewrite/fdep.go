package rewrite

import "github.com/utwente-fmt/dftcalc-sub000/dft"

// CleanFDEPEdges is rewrite pass 6: removes a depender from an FDEP's
// depender list when it is already reachable from the FDEP's trigger via
// the ordinary child relation (i.e. the FDEP's failure broadcast would be
// redundant with a static-gate failure that already propagates to the
// same node). The FDEP gate itself is never removed, even if it ends up
// with zero dependers; only the depender list is emptiable.
func CleanFDEPEdges(g *dft.Graph) {
	for _, n := range g.Nodes() {
		if n.Kind != dft.KindFdep {
			continue
		}
		reachableFromTrigger := forwardClosure(g, n.Trigger())

		kept := n.Gate.Children[:1:1]
		for _, dep := range n.Dependers() {
			if !reachableFromTrigger[dep] {
				kept = append(kept, dep)
			}
		}
		n.Gate.Children = kept
	}
	g.ReindexParents()
}

// forwardClosure returns the set of NodeIDs reachable from root via the
// ordinary child relation (root included).
func forwardClosure(g *dft.Graph, root dft.NodeID) map[dft.NodeID]bool {
	reached := map[dft.NodeID]bool{}
	stack := []dft.NodeID{root}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reached[id] {
			continue
		}
		reached[id] = true
		n := g.Node(id)
		if n.Kind.IsGate() {
			stack = append(stack, n.Gate.Children...)
		}
	}

	return reached
}
