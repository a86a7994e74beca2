// Package rewrite implements the fixed sequence of idempotent
// normalization passes run over a dft.Graph between AST lowering (out of
// scope) and node-automata generation.
//
// The graph walks use an explicit worklist (stack or queue) rather than
// recursion, except the ancestor walk in PropagateRepairInfo and the
// top-down walk in PropagateAlwaysActive, which recurse. Passes report
// structural errors by accumulation rather than failing fast.
package rewrite

import (
	"errors"
	"fmt"

	"github.com/utwente-fmt/dftcalc-sub000/dft"
)

// ErrCyclicSeq indicates a SEQ gate's subtree is not a tree of
// independent BasicEvents, so SEQ lifting cannot conservatively replace
// it with a SAND.
var ErrCyclicSeq = errors.New("rewrite: SEQ gate has non-independent children")

// Result summarizes one call to Run: the (possibly relinked) top node
// name and any structural errors accumulated along the way. If Errors is
// non-empty the caller must not proceed to node-automata generation.
type Result struct {
	TopName string
	Errors  []error
}

// Run executes the six rewrite passes in their fixed order against g,
// applying evidence (BasicEvent names that failed at startup).
// It mutates g in place. Passes after the first structural failure still
// run (to accumulate further diagnostics) except where a later pass
// fundamentally depends on an earlier invariant that failed to hold; see
// each pass's doc comment.
func Run(g *dft.Graph, evidence []string) Result {
	var res Result

	res.Errors = append(res.Errors, ApplyEvidence(g, evidence)...)

	g.ReindexParents()
	res.Errors = append(res.Errors, LiftSequences(g)...)

	unreached, err := PruneUnreachable(g)
	if err != nil {
		res.Errors = append(res.Errors, err)
	} else if len(unreached) > 0 {
		// Not an error: silently-dropped nodes are expected after
		// lowering emits a tree with evidence-dead subtrees. Dropping
		// them is exactly what this pass is for.
		_ = unreached
	}

	PropagateRepairInfo(g)
	PropagateAlwaysActive(g)
	CleanFDEPEdges(g)

	if top, err := g.Top(); err == nil {
		res.TopName = top.Name
	}

	return res
}

// ApplyEvidence is rewrite pass 1: for each name in evidence, set
// FailedAtStartup on the named BasicEvent. Returns one error per unknown
// name, matching the accumulate-then-report policy.
func ApplyEvidence(g *dft.Graph, evidence []string) []error {
	var errs []error
	for _, name := range evidence {
		n, err := g.LookupByName(name)
		if err != nil {
			errs = append(errs, fmt.Errorf("rewrite: evidence %q: %w", name, dft.ErrUnknownName))
			continue
		}
		if n.Kind != dft.KindBasicEvent {
			errs = append(errs, fmt.Errorf("rewrite: evidence %q: not a basic event", name))
			continue
		}
		n.FailedAtStartup = true
	}

	return errs
}
