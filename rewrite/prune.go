package rewrite

import "github.com/utwente-fmt/dftcalc-sub000/dft"

// PruneUnreachable is rewrite pass 3: a forward closure over the child
// relation from Top(), additionally following FDEP-depender
// edges backwards (a depender reachable implies its triggering FDEP is
// reachable too). Nodes outside the closure are removed from g via
// Graph.RemoveNodes. Returns the names removed, for diagnostics.
func PruneUnreachable(g *dft.Graph) ([]string, error) {
	top, err := g.Top()
	if err != nil {
		return nil, err
	}

	fdepOf := dependerToFdep(g)

	reached := make(map[dft.NodeID]bool, len(g.Nodes()))
	stack := []dft.NodeID{top.ID}
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
		// A reachable depender pulls in its FDEP trigger gate.
		for _, fdepID := range fdepOf[id] {
			stack = append(stack, fdepID)
		}
	}

	dead := make(map[dft.NodeID]bool)
	var removedNames []string
	for _, n := range g.Nodes() {
		if !reached[n.ID] {
			dead[n.ID] = true
			removedNames = append(removedNames, n.Name)
		}
	}
	g.RemoveNodes(dead)
	g.ReindexParents()

	return removedNames, nil
}

// dependerToFdep maps each FDEP depender's NodeID to the NodeIDs of every
// FDEP gate that has it as a depender (ordinarily exactly one, but the
// reachability closure treats it uniformly as a slice).
func dependerToFdep(g *dft.Graph) map[dft.NodeID][]dft.NodeID {
	out := make(map[dft.NodeID][]dft.NodeID)
	for _, n := range g.Nodes() {
		if n.Kind != dft.KindFdep {
			continue
		}
		for _, dep := range n.Dependers() {
			out[dep] = append(out[dep], n.ID)
		}
	}

	return out
}
