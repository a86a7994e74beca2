// Package automaton builds one labeled transition system per DFT node.
// Build dispatches on the node's Kind to the matching generator
// (BuildBasicEvent, BuildVoting, BuildPriorityGate, BuildSand, BuildWsp,
// BuildFdep, BuildRepairUnit, BuildInspection, BuildReplacement), each of
// which explores its local state space with explore's worklist and hash
// consing rather than recursion. The compose package is responsible for
// combining these per-node automata into the whole-tree LTS; this package
// never looks beyond a single node's own children count and shape.
package automaton
