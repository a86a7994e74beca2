// Package backend defines the query/adapter contract used to drive an
// external probabilistic model checker over a generated LTS, and the
// result types it returns.
package backend

import (
	"context"
	"time"

	"github.com/utwente-fmt/dftcalc-sub000/dft"
	"github.com/utwente-fmt/dftcalc-sub000/interval"
)

// QueryKind selects which class of property Query asks the back end to
// check.
type QueryKind int

const (
	// QueryTimeBound asks for unreliability at a fixed mission time.
	QueryTimeBound QueryKind = iota
	// QueryUnbounded asks for the unbounded-horizon (steady-state or
	// eventually-fails) probability.
	QueryUnbounded
	// QuerySteady asks for the long-run steady-state unavailability.
	QuerySteady
	// QueryExpectedTime asks for the expected time to system failure.
	QueryExpectedTime
	// QueryCustom carries a back-end-specific property string verbatim,
	// for checks this package's Query fields cannot express.
	QueryCustom
)

// Query describes one property check to run against a node's generated
// model.
type Query struct {
	Kind QueryKind

	// Time is the mission time for QueryTimeBound, in the model's own
	// time unit.
	Time float64

	// ErrorBound is the maximum acceptable approximation error. The
	// mrmc, imca and storm adapters in this package do not read it: they
	// neither pass it to the checker nor widen the parsed result by it.
	ErrorBound float64

	// Custom carries the raw property expression for QueryCustom.
	Custom string
}

// RunStats is the per-invocation resource accounting, kept per result
// item rather than once per overall run.
type RunStats struct {
	TimeUser     time.Duration
	TimeSystem   time.Duration
	TimeElapsed  time.Duration
	MemVirtual   uint64
	MemResident  uint64
}

// CalculationResultItem is one back end's answer for one node and Query.
type CalculationResultItem struct {
	NodeName string
	Query    Query
	Bound    interval.Bound
	Stats    RunStats
}

// Adapter is the contract every concrete back end (mrmc, imca, storm)
// implements: build the on-disk query artifact for a node's generated
// model, run the external tool, and parse its output back into a Bound.
type Adapter interface {
	// Name identifies the adapter for logging and cache-key namespacing.
	Name() string

	// BuildQuery renders q into whatever input format this back end
	// expects, returning the rendered bytes (a property file, a command
	// line fragment, etc. — entirely back-end-specific).
	BuildQuery(n *dft.Node, q Query) ([]byte, error)

	// Run invokes the external checker against modelPath with the
	// rendered query, returning its raw stdout.
	Run(ctx context.Context, modelPath string, query []byte) ([]byte, error)

	// ParseResult extracts a Bound and RunStats from a Run's raw output.
	ParseResult(raw []byte) (interval.Bound, RunStats, error)
}

// RunAndParse is the common BuildQuery/Run/ParseResult sequence every
// caller (the modularize leaf driver, a future CLI) needs; it exists so
// that sequence is written once instead of at every call site.
func RunAndParse(ctx context.Context, a Adapter, n *dft.Node, q Query) (CalculationResultItem, error) {
	query, err := a.BuildQuery(n, q)
	if err != nil {
		return CalculationResultItem{}, err
	}
	raw, err := a.Run(ctx, modelPathFor(n), query)
	if err != nil {
		return CalculationResultItem{}, err
	}
	bound, stats, err := a.ParseResult(raw)
	if err != nil {
		return CalculationResultItem{}, err
	}
	return CalculationResultItem{NodeName: n.Name, Query: q, Bound: bound, Stats: stats}, nil
}

// modelPathFor is a placeholder until the cache package's artifact
// layout is wired all the way through; it returns the artifact name a
// real run would resolve via cache.Lookup.
func modelPathFor(n *dft.Node) string {
	return n.Name + ".model"
}
