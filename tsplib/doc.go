// Package tsplib reads TSPLIB95 node-coordinate instances and writes TSPLIB
// tour files.
//
// Supported input subset:
//
//	NAME : berlin52
//	COMMENT : 52 locations in Berlin
//	TYPE : TSP
//	DIMENSION : 52
//	EDGE_WEIGHT_TYPE : EUC_2D
//	NODE_COORD_SECTION
//	1 565.0 575.0
//	...
//	EOF
//
// Header keys are case-sensitive and accept both "KEY : value" and
// "KEY: value". Only EUC_2D coordinates are understood; explicit weight
// matrices and other metrics are rejected with ErrUnsupported. Parse checks
// syntax only: dimension/row-count agreement and duplicate IDs are checked
// when the distance matrix is built.
package tsplib
