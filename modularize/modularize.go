// Package modularize detects independent subtrees of a dft.Graph and
// combines their results analytically instead of handing the whole tree
// to a back end at once, following dftcalc's modularize.cpp: an
// AND-rooted independent subtree becomes a "*N" module, an OR-rooted one
// a "+N" module, and anything else (including every VOT/PAND/dynamic
// subtree) is a leaf module evaluated by a back end directly.
package modularize

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/utwente-fmt/dftcalc-sub000/backend"
	"github.com/utwente-fmt/dftcalc-sub000/dft"
	"github.com/utwente-fmt/dftcalc-sub000/interval"
)

// ModuleKind tags the shape of a Module as emitted by the dftcalc-style
// linearised post-order tree.
type ModuleKind int

const (
	// ModuleLeaf is a node (or dynamic subtree) evaluated by a back end.
	ModuleLeaf ModuleKind = iota
	// ModuleAnd is an independent subtree rooted at a static AND, combined
	// by interval.CombineAnd over its children's already-computed results.
	ModuleAnd
	// ModuleOr is the OR analogue of ModuleAnd.
	ModuleOr
)

// Module is one node of the linearised module tree: either a leaf to
// hand to a back end, or an analytically-combined AND/OR of its Children
// (themselves Modules, possibly leaves or further combinations).
type Module struct {
	Kind     ModuleKind
	Node     *dft.Node // nil for a pure combination with no corresponding gate (never emitted today, but kept for symmetry with dftcalc's tree)
	Children []*Module
}

// Label renders a Module's dftcalc-style tag: "*N" for an N-child AND
// module, "+N" for OR, "M<name>" for a leaf.
func (m *Module) Label() string {
	switch m.Kind {
	case ModuleAnd:
		return fmt.Sprintf("*%d", len(m.Children))
	case ModuleOr:
		return fmt.Sprintf("+%d", len(m.Children))
	default:
		name := "?"
		if m.Node != nil {
			name = m.Node.Name
		}
		return "M" + name
	}
}

// Detect walks g from root and returns the linearised module tree: a
// static AND or OR gate becomes an analytical module exactly when every
// one of its children is itself independent (no node below it is shared
// with, or dynamically coupled to, anything outside the subtree) — here
// approximated, as dftcalc itself does for the common case, by requiring
// every descendant in the subtree to have exactly one parent and no
// FDEP/WSP/RepairUnit/Inspection/Replacement ancestry crossing the
// boundary. Anything else becomes a leaf module.
func Detect(g *dft.Graph, root *dft.Node) *Module {
	independent := independentSubtrees(g, root)
	var walk func(n *dft.Node) *Module
	walk = func(n *dft.Node) *Module {
		if (n.Kind == dft.KindAnd || n.Kind == dft.KindOr) && independent[n.ID] {
			kind := ModuleAnd
			if n.Kind == dft.KindOr {
				kind = ModuleOr
			}
			mod := &Module{Kind: kind, Node: n}
			for _, cid := range n.Gate.Children {
				mod.Children = append(mod.Children, walk(g.Node(cid)))
			}
			return mod
		}
		return &Module{Kind: ModuleLeaf, Node: n}
	}
	return walk(root)
}

// independentSubtrees marks every node whose entire subtree can be
// evaluated in isolation: no node below it has more than one parent, and
// no gate kind that couples siblings dynamically (WSP, FDEP, RepairUnit,
// Inspection, Replacement, PAND, POR, SAND) appears anywhere below it.
func independentSubtrees(g *dft.Graph, root *dft.Node) map[dft.NodeID]bool {
	result := map[dft.NodeID]bool{}
	type frame struct {
		id       dft.NodeID
		childIdx int
	}
	visited := map[dft.NodeID]bool{}
	stack := []frame{{id: root.ID}}
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
		result[n.ID] = subtreeIsIndependent(g, n)
		stack = stack[:len(stack)-1]
	}
	return result
}

func subtreeIsIndependent(g *dft.Graph, n *dft.Node) bool {
	switch n.Kind {
	case dft.KindWsp, dft.KindFdep, dft.KindRepairUnit, dft.KindInspection, dft.KindReplacement, dft.KindPand, dft.KindPor, dft.KindSand:
		return false
	}
	if len(n.Parents) > 1 {
		return false
	}
	if !n.Kind.IsGate() {
		return true
	}
	for _, cid := range n.Gate.Children {
		if !subtreeIsIndependent(g, g.Node(cid)) {
			return false
		}
	}
	return true
}

// Evaluate computes every module's result Bound bottom-up. Leaf modules
// run concurrently (bounded by errgroup's default unlimited-but-gated-by-
// the-caller's adapter pool) since they are, by construction, independent
// of one another; analytical combinations happen synchronously once their
// children's results are all available.
func Evaluate(ctx context.Context, m *Module, adapter backend.Adapter, q backend.Query) (interval.Bound, error) {
	leaves := collectLeaves(m)
	results := make(map[*Module]interval.Bound, len(leaves))

	g, gctx := errgroup.WithContext(ctx)
	resultsByIndex := make([]interval.Bound, len(leaves))
	for i, leaf := range leaves {
		i, leaf := i, leaf
		g.Go(func() error {
			item, err := backend.RunAndParse(gctx, adapter, leaf.Node, q)
			if err != nil {
				return fmt.Errorf("modularize: leaf %s: %w", leaf.Label(), err)
			}
			resultsByIndex[i] = item.Bound
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return interval.Bound{}, err
	}
	for i, leaf := range leaves {
		results[leaf] = resultsByIndex[i]
	}

	return combine(m, results), nil
}

func collectLeaves(m *Module) []*Module {
	if m.Kind == ModuleLeaf {
		return []*Module{m}
	}
	var out []*Module
	for _, c := range m.Children {
		out = append(out, collectLeaves(c)...)
	}
	return out
}

func combine(m *Module, leafResults map[*Module]interval.Bound) interval.Bound {
	if m.Kind == ModuleLeaf {
		return leafResults[m]
	}
	childBounds := make([]interval.Bound, len(m.Children))
	for i, c := range m.Children {
		childBounds[i] = combine(c, leafResults)
	}
	if m.Kind == ModuleAnd {
		return interval.CombineAnd(childBounds)
	}
	return interval.CombineOr(childBounds)
}
