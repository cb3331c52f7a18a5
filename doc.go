// Command tspbb finds optimal tours for small symmetric Euclidean TSP
// instances by branch-and-bound.
//
//	tspbb solve berlin10.tsp --workers 4 --time-limit 30s
//	tspbb bounds berlin10.tsp
//
// Input files use the TSPLIB NODE_COORD_SECTION format with EUC_2D
// distances. Settings come from an optional YAML file (--config),
// TSPBB_* environment variables and flags, in increasing precedence.
// Interrupting the process returns the best tour found so far.
//
// The solver itself lives in package tsp and can be used as a library.
package main
