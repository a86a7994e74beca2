package dft

import "sort"

// Graph is the in-memory dynamic fault tree container. It owns every Node
// in an arena indexed by NodeID and provides name-based lookup. A Graph is
// mutable while being built by lowering and by rewrite.Run; once rewriting
// completes it is frozen by convention (composer and back-end adapters
// read it but never mutate it).
//
// Graph is safe for concurrent readers once frozen; callers that mutate a
// Graph are responsible for external synchronization while doing so, the
// same contract core.Graph gives its own callers.
type Graph struct {
	nodes   []*Node
	byName  map[string]NodeID
	topNode NodeID
}

// NewGraph returns an empty Graph with no top node set.
func NewGraph() *Graph {
	return &Graph{
		byName:  make(map[string]NodeID),
		topNode: invalidID,
	}
}

// AddNode inserts n into the Graph, assigning it a fresh NodeID and
// returning that ID. Returns ErrEmptyName or ErrDuplicateName on invalid
// or repeated names. Complexity: O(1) amortized.
func (g *Graph) AddNode(n *Node) (NodeID, error) {
	if n.Name == "" {
		return invalidID, ErrEmptyName
	}
	if _, exists := g.byName[n.Name]; exists {
		return invalidID, ErrDuplicateName
	}
	id := NodeID(len(g.nodes))
	n.ID = id
	g.nodes = append(g.nodes, n)
	g.byName[n.Name] = id

	return id, nil
}

// LookupByName returns the node named name, or ErrUnknownName if no such
// node exists. Complexity: O(1).
func (g *Graph) LookupByName(name string) (*Node, error) {
	id, ok := g.byName[name]
	if !ok {
		return nil, ErrUnknownName
	}

	return g.nodes[id], nil
}

// Node returns the node with the given ID. It panics if id is out of
// range, matching the arena-index contract: a NodeID handed back by this
// Graph is always valid until the node is physically removed by
// RemoveNodes.
func (g *Graph) Node(id NodeID) *Node {
	return g.nodes[id]
}

// SetTop marks name as the DFT's top node. Returns ErrUnknownName if no
// such node exists.
func (g *Graph) SetTop(name string) error {
	id, ok := g.byName[name]
	if !ok {
		return ErrUnknownName
	}
	g.topNode = id

	return nil
}

// Top returns the current top node. Returns ErrNoTop if none has been set.
func (g *Graph) Top() (*Node, error) {
	if g.topNode == invalidID {
		return nil, ErrNoTop
	}

	return g.nodes[g.topNode], nil
}

// TopID returns the NodeID of the top node, or invalidID if unset.
func (g *Graph) TopID() NodeID { return g.topNode }

// Nodes returns every live node in a Graph, ordered by NodeID (and hence
// by insertion order, for deterministic iteration). Nodes removed by
// RemoveNodes are omitted.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.nodes))
	for _, n := range g.nodes {
		if n != nil {
			out = append(out, n)
		}
	}

	return out
}

// RemoveNodes physically deletes the nodes named in dead from the Graph.
// Their NodeIDs become tombstones: Node(id) on a removed id returns nil,
// and they are skipped by Nodes(). Used by the reachability-prune pass.
func (g *Graph) RemoveNodes(dead map[NodeID]bool) {
	for id := range dead {
		n := g.nodes[id]
		if n == nil {
			continue
		}
		delete(g.byName, n.Name)
		g.nodes[id] = nil
	}
}

// ReindexParents recomputes every live node's Parents slice from the
// current child relation (Gate.Children) plus FDEP trigger edges,
// discarding whatever was previously recorded. Gate rewrites that relink
// children must call this afterwards; it is not invoked implicitly.
// Complexity: O(V + E).
func (g *Graph) ReindexParents() {
	for _, n := range g.nodes {
		if n != nil {
			n.Parents = nil
		}
	}
	for _, n := range g.nodes {
		if n == nil || !n.Kind.IsGate() {
			continue
		}
		for _, cid := range n.Gate.Children {
			child := g.nodes[cid]
			if child == nil {
				continue
			}
			child.Parents = append(child.Parents, n.ID)
		}
	}
	for _, n := range g.nodes {
		if n == nil {
			continue
		}
		sort.Slice(n.Parents, func(i, j int) bool { return n.Parents[i] < n.Parents[j] })
	}
}

// Dependers returns the FDEP dependers of an FDEP gate: every child after
// the first (the trigger). It is a programmer error to call this on a
// non-FDEP node.
func (n *Node) Dependers() []NodeID {
	if n.Kind != KindFdep || len(n.Gate.Children) < 1 {
		return nil
	}

	return n.Gate.Children[1:]
}

// Trigger returns the FDEP trigger: the first child. It is a programmer
// error to call this on a non-FDEP node or one without children.
func (n *Node) Trigger() NodeID {
	return n.Gate.Children[0]
}

// ChildIndex returns the 1-based local index of child within n's Children,
// or 0 if child is not a direct child of n. Index 0 is reserved by the
// signal alphabet to mean "the node itself".
func (n *Node) ChildIndex(child NodeID) int {
	for i, c := range n.Gate.Children {
		if c == child {
			return i + 1
		}
	}

	return 0
}
