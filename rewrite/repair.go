package rewrite

import "github.com/utwente-fmt/dftcalc-sub000/dft"

// PropagateRepairInfo is rewrite pass 4: a bottom-up walk that marks
// IsRepairable, and HasRepairModule / HasInspectModule by an ancestor
// walk. g.Nodes() is already in a topologically-useful order for the
// repairable computation only if children are always added before their
// parents by lowering; since that is not guaranteed, this uses an
// explicit post-order DFS worklist (no recursion) so children are always
// resolved before the gates that reference them.
func PropagateRepairInfo(g *dft.Graph) {
	top, err := g.Top()
	if err != nil {
		return
	}

	order := postOrder(g, top.ID)
	for _, id := range order {
		n := g.Node(id)
		n.IsRepairable = dft.IsRepairable(g, n)
	}

	// Ancestor walk: a node lies under a RepairUnit/Inspection ancestor
	// iff its nearest gate ancestor does, or is one itself.
	var mark func(id dft.NodeID, underRepair, underInsp bool)
	visited := make(map[dft.NodeID]bool)
	mark = func(id dft.NodeID, underRepair, underInsp bool) {
		if visited[id] {
			return
		}
		visited[id] = true
		n := g.Node(id)
		n.HasRepairModule = underRepair
		n.HasInspectModule = underInsp
		if !n.Kind.IsGate() {
			return
		}
		childRepair := underRepair || n.Kind == dft.KindRepairUnit
		childInsp := underInsp || n.Kind == dft.KindInspection
		for _, cid := range n.Gate.Children {
			mark(cid, childRepair, childInsp)
		}
	}
	mark(top.ID, false, false)
}

// postOrder returns the NodeIDs reachable from root in post-order (every
// child fully processed before its parent), using an explicit stack of
// (node, next-child) frames rather than recursion.
func postOrder(g *dft.Graph, root dft.NodeID) []dft.NodeID {
	var order []dft.NodeID
	visited := make(map[dft.NodeID]bool)
	type frame struct {
		id        dft.NodeID
		childIdx  int
	}
	stack := []frame{{id: root}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		n := g.Node(top.id)
		if !visited[top.id] {
			visited[top.id] = true
		}
		if n.Kind.IsGate() && top.childIdx < len(n.Gate.Children) {
			cid := n.Gate.Children[top.childIdx]
			top.childIdx++
			if !visited[cid] {
				stack = append(stack, frame{id: cid})
			}
			continue
		}
		order = append(order, top.id)
		stack = stack[:len(stack)-1]
	}

	return order
}
