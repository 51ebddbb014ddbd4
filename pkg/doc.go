// Package pkg provides the libraries behind the arbor command.
//
// # Overview
//
// Arbor decides whether two forests are isomorphic and produces the vertex
// mapping when they are. The pkg directory is organized into three areas:
//
//  1. Engine: [graph] (graphs and vertex mappings) and [forest] (distance
//     profiles, tree and forest matching)
//  2. Protocol: [proof] (commit, challenge and response rounds built on
//     random relabelings)
//  3. Infrastructure: [io], [render], [cache], [observability], [config],
//     [errors] and [pipeline], which ties them together
//
// # Architecture
//
// The typical data flow through arbor:
//
//	graph files (JSON/TOML)
//	         ↓
//	    [io] package (decode)
//	         ↓
//	    [forest] package (validate, match)
//	         ↓
//	    [cache] package (store the mapping)
//	         ↓
//	    mapping file, DOT/SVG drawing or proof transcript
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/arbor/pkg/forest"
//	    "github.com/matzehuels/arbor/pkg/io"
//	)
//
//	a, _ := io.ImportGraph("a.json")
//	b, _ := io.ImportGraph("b.json")
//	s, ok := forest.New(a).MapTo(forest.New(b))
//	if ok {
//	    fmt.Println(s)
//	}
package pkg
