// Package rewrite normalizes a dft.Graph through a six-pass pipeline:
// evidence application, SEQ→SAND lifting, reachability pruning,
// repair-info propagation, always-active propagation, and FDEP edge
// cleanup. Call Run once per compilation, after lowering and before
// handing the Graph to the automaton, compose, and modularize packages.
package rewrite
