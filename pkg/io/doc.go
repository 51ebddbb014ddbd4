// Package io reads and writes the files the arbor command works with:
// single graphs, key pairs and vertex mappings.
//
// # Overview
//
// Every function works on [graph.Label] vertices, so a file may name its
// vertices with numbers, strings or a mix of both. 1 and "1" are different
// vertices. Numbers are canonical, so 1, 1.0 and 1e0 name the same vertex
// in every format and are written back as 1.
//
// # Graph Files
//
// JSON graph files use either the pair form written by [graph.Graph.Dumps]
// or a keyed object:
//
//	[[0, 1, 2], [[0, 1], [1, 2]]]
//
//	{"vertices": ["a", "b"], "edges": [["a", "b"]]}
//
// TOML graph files use the same keys:
//
//	vertices = [0, 1, 2]
//	edges = [[0, 1], [1, 2]]
//
// # Key Files
//
// A key file holds the two public graphs of a proof, G0 and G1. In JSON it
// is a two-element array [G0, G1] or an object {"g0": ..., "g1": ...}; in
// TOML it has a [g0] and a [g1] table, each shaped like a graph file.
//
// # Mapping Files
//
// A mapping is a list of [source, target] pairs. TOML mapping files store
// the list under the key "pairs".
//
// # Formats
//
// The Import and Export helpers pick the format from the file extension
// with [FormatFromPath]: ".toml" selects TOML, everything else JSON. The
// Read and Write functions take the format explicitly and work on any
// io.Reader or io.Writer.
//
// # Errors
//
// Decoding failures wrap [ErrFormat] together with the underlying cause, so
// callers can tell a malformed file from a missing one:
//
//	g, err := io.ImportGraph("g0.json")
//	if errors.Is(err, io.ErrFormat) {
//	    // report a syntax or shape problem
//	}
package io
