package forest

import (
	"fmt"
	"iter"

	"github.com/matzehuels/arbor/pkg/graph"
)

// Tree is a connected [Forest].
type Tree[V comparable] struct {
	*Forest[V]
}

// NewTree wraps g without checking that it is a tree.
func NewTree[V comparable](g *graph.Graph[V]) *Tree[V] {
	return &Tree[V]{Forest: New(g)}
}

// TreeFromGraph wraps g after verifying that it is non-empty, connected and
// acyclic.
func TreeFromGraph[V comparable](g *graph.Graph[V]) (*Tree[V], error) {
	if !g.IsTree() {
		return nil, fmt.Errorf("%d vertices, %d edges, %d components: %w",
			g.VertexCount(), g.EdgeCount(), g.ComponentCount(), ErrNotTree)
	}
	return NewTree(g), nil
}

// Clone returns an independent copy of the tree.
func (t *Tree[V]) Clone() *Tree[V] { return NewTree(t.Graph.Clone()) }

// Leaves yields the vertices of degree at most one, in insertion order. A
// single-vertex tree has one leaf.
func (t *Tree[V]) Leaves() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range t.Vertices() {
			if t.Degree(v) <= 1 && !yield(v) {
				return
			}
		}
	}
}

// Center returns the one or two vertices of minimum eccentricity, found by
// repeatedly stripping leaves.
func (t *Tree[V]) Center() []V {
	n := t.VertexCount()
	if n == 0 {
		return nil
	}
	degree := make(map[V]int, n)
	var layer []V
	for _, v := range t.Vertices() {
		degree[v] = t.Degree(v)
		if degree[v] <= 1 {
			layer = append(layer, v)
		}
	}
	remaining := n
	for remaining > 2 {
		remaining -= len(layer)
		var next []V
		for _, v := range layer {
			nbrs, _ := t.Neighbors(v)
			for _, w := range nbrs {
				degree[w]--
				if degree[w] == 1 {
					next = append(next, w)
				}
			}
		}
		layer = next
	}
	return layer
}

// MapTo returns an isomorphism from t onto other, or false when none
// exists. See the package documentation for the search order.
func (t *Tree[V]) MapTo(other *Tree[V]) (*graph.Isomorphism[V], bool) {
	if other == nil || t.VertexCount() != other.VertexCount() || t.EdgeCount() != other.EdgeCount() {
		return nil, false
	}
	if t.VertexCount() == 0 {
		return graph.NewIsomorphism(map[V]V{}), true
	}
	if !t.Isomorphic(other.Forest) {
		return nil, false
	}
	m := newMatcher(t, other)
	if m == nil {
		return nil, false
	}
	return m.run()
}
