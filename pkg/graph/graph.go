package graph

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrVertexNotFound is returned when an operation references a vertex
	// that is not part of the graph.
	ErrVertexNotFound = errors.New("vertex not found")

	// ErrEdgeNotFound is returned by [Graph.RemoveEdge] when neither
	// orientation of the edge exists.
	ErrEdgeNotFound = errors.New("edge not found")

	// ErrInvalidMapping is returned when an [Isomorphism] is applied to
	// vertices outside its domain, either while relabeling a graph or while
	// composing two mappings.
	ErrInvalidMapping = errors.New("mapping does not cover vertex set")
)

// Edge is an unordered pair of vertices. From and To only record the
// orientation the edge was inserted with; lookups accept either order.
type Edge[V comparable] struct {
	From V
	To   V
}

// Reversed returns the edge with its endpoints swapped.
func (e Edge[V]) Reversed() Edge[V] { return Edge[V]{From: e.To, To: e.From} }

// Graph is an undirected simple graph over comparable vertices.
//
// The zero value is not usable - use [New] or [Empty].
// Graph is not safe for concurrent use without external synchronization.
type Graph[V comparable] struct {
	order []V       // vertices in insertion order
	adj   map[V][]V // vertex -> neighbors in insertion order
	edges []Edge[V] // each undirected edge exactly once
}

// Empty returns a graph with no vertices.
func Empty[V comparable]() *Graph[V] {
	return &Graph[V]{adj: make(map[V][]V)}
}

// New builds a graph from a vertex list and an edge list. Duplicate vertices
// and duplicate edges (in either orientation) are collapsed. An edge whose
// endpoint is missing from vertices yields ErrVertexNotFound.
func New[V comparable](vertices []V, edges []Edge[V]) (*Graph[V], error) {
	g := Empty[V]()
	for _, v := range vertices {
		g.AddVertex(v)
	}
	for _, e := range edges {
		if err := g.AddEdge(e.From, e.To); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// AddVertex adds v to the graph and reports whether it was new.
func (g *Graph[V]) AddVertex(v V) bool {
	if _, ok := g.adj[v]; ok {
		return false
	}
	g.adj[v] = nil
	g.order = append(g.order, v)
	return true
}

// AddEdge connects u and v. Both endpoints must already exist. Adding an
// edge that is already present, in either orientation, is a no-op.
func (g *Graph[V]) AddEdge(u, v V) error {
	if !g.HasVertex(u) {
		return fmt.Errorf("edge (%v, %v): endpoint %v: %w", u, v, u, ErrVertexNotFound)
	}
	if !g.HasVertex(v) {
		return fmt.Errorf("edge (%v, %v): endpoint %v: %w", u, v, v, ErrVertexNotFound)
	}
	if g.HasEdge(u, v) {
		return nil
	}
	g.adj[u] = append(g.adj[u], v)
	if u != v {
		g.adj[v] = append(g.adj[v], u)
	}
	g.edges = append(g.edges, Edge[V]{From: u, To: v})
	return nil
}

// HasVertex reports whether v is in the graph.
func (g *Graph[V]) HasVertex(v V) bool {
	_, ok := g.adj[v]
	return ok
}

// HasEdge reports whether u and v are adjacent. The check is symmetric.
func (g *Graph[V]) HasEdge(u, v V) bool {
	nbrs, ok := g.adj[u]
	return ok && slices.Contains(nbrs, v)
}

// Neighbors returns the vertices adjacent to v in insertion order.
// The returned slice is a copy and may be modified by the caller.
func (g *Graph[V]) Neighbors(v V) ([]V, error) {
	nbrs, ok := g.adj[v]
	if !ok {
		return nil, fmt.Errorf("neighbors of %v: %w", v, ErrVertexNotFound)
	}
	return slices.Clone(nbrs), nil
}

// Degree returns the number of neighbors of v, or 0 if v is not in the graph.
func (g *Graph[V]) Degree(v V) int { return len(g.adj[v]) }

// Vertices returns all vertices in insertion order.
func (g *Graph[V]) Vertices() []V { return slices.Clone(g.order) }

// Edges returns every edge once, in insertion order.
func (g *Graph[V]) Edges() []Edge[V] { return slices.Clone(g.edges) }

// VertexCount returns |V|.
func (g *Graph[V]) VertexCount() int { return len(g.order) }

// EdgeCount returns |E|.
func (g *Graph[V]) EdgeCount() int { return len(g.edges) }

// RemoveVertex deletes v together with every edge incident to it.
func (g *Graph[V]) RemoveVertex(v V) error {
	nbrs, ok := g.adj[v]
	if !ok {
		return fmt.Errorf("remove %v: %w", v, ErrVertexNotFound)
	}
	for _, n := range nbrs {
		if n != v {
			g.adj[n] = slices.DeleteFunc(g.adj[n], func(x V) bool { return x == v })
		}
	}
	delete(g.adj, v)
	g.order = slices.DeleteFunc(g.order, func(x V) bool { return x == v })
	g.edges = slices.DeleteFunc(g.edges, func(e Edge[V]) bool { return e.From == v || e.To == v })
	return nil
}

// RemoveEdge deletes the edge between u and v, accepting either orientation.
func (g *Graph[V]) RemoveEdge(u, v V) error {
	if !g.HasEdge(u, v) {
		return fmt.Errorf("remove (%v, %v): %w", u, v, ErrEdgeNotFound)
	}
	g.adj[u] = slices.DeleteFunc(g.adj[u], func(x V) bool { return x == v })
	if u != v {
		g.adj[v] = slices.DeleteFunc(g.adj[v], func(x V) bool { return x == u })
	}
	g.edges = slices.DeleteFunc(g.edges, func(e Edge[V]) bool {
		return (e.From == u && e.To == v) || (e.From == v && e.To == u)
	})
	return nil
}

// Clone returns an independent copy. Mutating either graph afterwards
// never affects the other.
func (g *Graph[V]) Clone() *Graph[V] {
	adj := make(map[V][]V, len(g.adj))
	for v, nbrs := range g.adj {
		adj[v] = slices.Clone(nbrs)
	}
	return &Graph[V]{
		order: slices.Clone(g.order),
		adj:   adj,
		edges: slices.Clone(g.edges),
	}
}

// Equal reports whether both graphs have the same vertex set and the same
// edge set. Insertion order and edge orientation are ignored.
func (g *Graph[V]) Equal(other *Graph[V]) bool {
	if other == nil {
		return false
	}
	if g.VertexCount() != other.VertexCount() || g.EdgeCount() != other.EdgeCount() {
		return false
	}
	for _, v := range g.order {
		if !other.HasVertex(v) {
			return false
		}
	}
	for _, e := range g.edges {
		if !other.HasEdge(e.From, e.To) {
			return false
		}
	}
	return true
}

// MapVertices returns a new graph in which every vertex and edge endpoint
// has been relabeled through s. It fails with ErrInvalidMapping if some
// vertex is outside the domain of s.
func (g *Graph[V]) MapVertices(s *Isomorphism[V]) (*Graph[V], error) {
	if s == nil {
		return nil, fmt.Errorf("nil mapping: %w", ErrInvalidMapping)
	}
	out := Empty[V]()
	for _, v := range g.order {
		w, ok := s.Apply(v)
		if !ok {
			return nil, fmt.Errorf("vertex %v: %w", v, ErrInvalidMapping)
		}
		out.AddVertex(w)
	}
	for _, e := range g.edges {
		from, _ := s.Apply(e.From)
		to, _ := s.Apply(e.To)
		if err := out.AddEdge(from, to); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// CheckMapping reports whether s is an isomorphism from g onto other: its
// domain is exactly V(g), its image is exactly V(other), and (u, v) is an
// edge of g if and only if (s(u), s(v)) is an edge of other.
func (g *Graph[V]) CheckMapping(other *Graph[V], s *Isomorphism[V]) bool {
	if other == nil || s == nil {
		return false
	}
	n := g.VertexCount()
	if s.Len() != n || other.VertexCount() != n || other.EdgeCount() != g.EdgeCount() {
		return false
	}
	seen := make(map[V]struct{}, n)
	for _, v := range g.order {
		w, ok := s.Apply(v)
		if !ok || !other.HasVertex(w) {
			return false
		}
		if _, dup := seen[w]; dup {
			return false
		}
		seen[w] = struct{}{}
	}
	// s is a bijection and both edge sets have the same size, so mapping
	// every edge onto an edge is enough for the converse direction.
	for _, e := range g.edges {
		from, _ := s.Apply(e.From)
		to, _ := s.Apply(e.To)
		if !other.HasEdge(from, to) {
			return false
		}
	}
	return true
}

// IsAutomorphism reports whether s maps g onto itself while preserving
// adjacency.
func (g *Graph[V]) IsAutomorphism(s *Isomorphism[V]) bool {
	return g.CheckMapping(g, s)
}

// ComponentCount returns the number of connected components.
func (g *Graph[V]) ComponentCount() int {
	seen := make(map[V]struct{}, len(g.order))
	count := 0
	for _, root := range g.order {
		if _, ok := seen[root]; ok {
			continue
		}
		count++
		seen[root] = struct{}{}
		stack := []V{root}
		for len(stack) > 0 {
			v := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, n := range g.adj[v] {
				if _, ok := seen[n]; !ok {
					seen[n] = struct{}{}
					stack = append(stack, n)
				}
			}
		}
	}
	return count
}

// IsForest reports whether the graph is acyclic. A simple graph is a forest
// exactly when |E| = |V| - c, where c is the number of components; a
// self-loop always breaks the equality.
func (g *Graph[V]) IsForest() bool {
	return g.EdgeCount() == g.VertexCount()-g.ComponentCount()
}

// IsTree reports whether the graph is a non-empty, connected forest.
func (g *Graph[V]) IsTree() bool {
	return g.VertexCount() > 0 && g.EdgeCount() == g.VertexCount()-1 && g.ComponentCount() == 1
}
