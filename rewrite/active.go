package rewrite

import "github.com/utwente-fmt/dftcalc-sub000/dft"

// PropagateAlwaysActive is rewrite pass 5: a top-down walk marking
// IsAlwaysActive true for the top node (by
// definition) and for every node reachable from it without crossing a
// dynamic activator — a WSP's spares (every child but the primary) or an
// FDEP's dependers (which only activate on trigger failure). The children
// of every other gate, PAND included, inherit their parent's status.
func PropagateAlwaysActive(g *dft.Graph) {
	top, err := g.Top()
	if err != nil {
		return
	}

	var mark func(id dft.NodeID, active bool)
	visited := make(map[dft.NodeID]bool)
	mark = func(id dft.NodeID, active bool) {
		n := g.Node(id)
		// A node reachable as always-active via one path and as
		// dynamically-activated via another is always-active overall
		// only if every path agrees; once any path marks it dynamic a
		// later always-active path must not override that. A revisit
		// along a dynamic path downgrades an always-active node and
		// re-walks its subtree as dynamic; any other revisit stops here.
		if visited[id] {
			if active || !n.IsAlwaysActive {
				return
			}
		}
		visited[id] = true
		n.IsAlwaysActive = active
		if !n.Kind.IsGate() {
			return
		}

		switch n.Kind {
		case dft.KindWsp:
			// Only the primary (first child) inherits always-active
			// status directly; spares are claimed dynamically.
			for i, cid := range n.Gate.Children {
				mark(cid, active && i == 0)
			}
		case dft.KindFdep:
			// The trigger propagates activation; dependers activate
			// only on trigger failure, never always-active.
			mark(n.Trigger(), active)
			for _, dep := range n.Dependers() {
				mark(dep, false)
			}
		default:
			for _, cid := range n.Gate.Children {
				mark(cid, active)
			}
		}
	}
	mark(top.ID, true)
}
