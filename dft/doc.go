// Package dft is the in-memory representation of a validated dynamic
// fault tree: a DAG-like structure of typed nodes (basic events and
// gates) connected by an explicit, ordered child relation.
//
//	dft.Graph            — arena-owned node storage, name lookup, top node
//	dft.Node / dft.Kind  — the tagged-union node model
//	dft.CheckReferences / CheckReachability — structural invariant checks
//
// A Graph is produced once by AST lowering (out of scope for this
// package) and is then normalized in place by the rewrite package before
// the automaton, compose, and modularize packages read it.
package dft
