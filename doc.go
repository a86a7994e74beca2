// Package dftcalc compiles dynamic fault trees into labeled transition
// systems for probabilistic model checking.
//
// A dynamic fault tree (dft.Graph) is lowered, normalized (rewrite.Run),
// and compiled node-by-node into a labeled transition system
// (automaton.Build), then combined into the whole tree's observable
// behavior by synchronized parallel composition (compose.Node).
// Independent static subtrees are detected and combined analytically
// (modularize.Detect/Evaluate) instead of being handed to an external
// model checker whole; everything that still needs a back end goes
// through one of the mrmc/imca/storm adapters (backend.Adapter), with
// generated artifacts cached on disk by shape (cache.Cache).
//
//	dft/        — in-memory graph: nodes, gates, structural invariants
//	rewrite/    — normalization passes between lowering and compilation
//	automaton/  — one labeled transition system per node
//	interval/   — bounded-numeric result type and AND/OR/VOT combination
//	compose/    — synchronized parallel composition and signal hiding
//	modularize/ — independent-subtree detection and analytical combination
//	backend/    — external model checker adapters (mrmc, imca, storm)
//	cache/      — on-disk, format-versioned artifact cache
//	config/     — threaded, explicit per-invocation configuration
//	pipeline/   — Compile, wiring every stage above together
//
// pipeline.Compile is the library's entry point; no command-line
// front end is part of this module.
package dftcalc
