// Package graph provides a minimal undirected graph and the vertex
// bijections (isomorphisms) used to relabel and compare graphs.
//
// # Overview
//
// A [Graph] is a vertex set plus a set of unordered vertex pairs. Vertices can
// be any comparable Go type; the CLI uses [Label], which remembers whether an
// identifier was written as a number or a string so files round-trip exactly.
// Vertex and neighbor iteration follows insertion order, so every traversal
// built on top of this package is deterministic for a given input file.
//
// # Basic Usage
//
//	g, err := graph.New([]string{"A", "B", "C"}, []graph.Edge[string]{
//	    {From: "A", To: "B"},
//	    {From: "B", To: "C"},
//	})
//	g.HasEdge("C", "B")   // true, edges are undirected
//	g.RemoveVertex("B")   // drops B and both incident edges
//
// # Isomorphisms
//
// An [Isomorphism] is a vertex-to-vertex mapping with group-like operations:
//
//	s.Compose(t)   // apply s, then t
//	s.Invert()     // swap sources and targets
//	s.Subtract(t)  // s ∘ t⁻¹: apply t⁻¹, then s
//
// [Graph.MapVertices] relabels a graph through a mapping and
// [Graph.CheckMapping] verifies that a mapping is a full isomorphism
// between two graphs.
//
// # Serialization
//
// Graphs serialize as an ordered pair of lists:
//
//	[["A", "B", "C"], [["A", "B"], ["B", "C"]]]
//
// Isomorphisms serialize as a list of [source, target] pairs, which keeps
// non-string identifiers intact:
//
//	[[0, 1], [1, 2], [2, 0]]
//
// # Errors
//
// Structural precondition failures are reported with sentinel errors wrapped
// in context: [ErrVertexNotFound], [ErrEdgeNotFound] and [ErrInvalidMapping].
// Use errors.Is to test for them.
//
// # Concurrency
//
// Graph values are not safe for concurrent mutation. Read-only use from
// multiple goroutines is fine; [Graph.Clone] gives each worker its own copy.
package graph
