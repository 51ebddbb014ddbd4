package forest

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"

	"github.com/matzehuels/arbor/pkg/graph"
)

var (
	// ErrNotForest is returned by [FromGraph] when the graph has a cycle.
	ErrNotForest = errors.New("graph is not a forest")

	// ErrNotTree is returned by [TreeFromGraph] when the graph has a cycle,
	// is empty, or has more than one component.
	ErrNotTree = errors.New("graph is not a tree")
)

// Forest is an acyclic undirected graph. All [graph.Graph] methods are
// available on it; the ones added here assume the forest invariant holds.
type Forest[V comparable] struct {
	*graph.Graph[V]
}

// New wraps g without checking that it is acyclic.
func New[V comparable](g *graph.Graph[V]) *Forest[V] {
	return &Forest[V]{Graph: g}
}

// FromGraph wraps g after verifying that it has no cycles.
func FromGraph[V comparable](g *graph.Graph[V]) (*Forest[V], error) {
	if !g.IsForest() {
		return nil, fmt.Errorf("%d vertices, %d edges, %d components: %w",
			g.VertexCount(), g.EdgeCount(), g.ComponentCount(), ErrNotForest)
	}
	return New(g), nil
}

// Clone returns an independent copy of the forest.
func (f *Forest[V]) Clone() *Forest[V] { return New(f.Graph.Clone()) }

// Without returns a copy of the forest with v and its incident edges
// removed. The receiver is not modified.
func (f *Forest[V]) Without(v V) (*Forest[V], error) {
	c := f.Graph.Clone()
	if err := c.RemoveVertex(v); err != nil {
		return nil, err
	}
	return New(c), nil
}

// DepthSearch returns a depth-first walk of the component containing root.
// Every reachable vertex is yielded exactly once together with its distance
// from root. Neighbors are visited in insertion order, so the walk is
// deterministic. Each call to the returned sequence starts a fresh walk; the
// forest must not be modified while a walk is in progress.
//
// The walk uses an explicit stack of (vertex, next neighbor) frames and does
// not recurse, so deep trees cannot exhaust the goroutine stack.
func (f *Forest[V]) DepthSearch(root V) (iter.Seq2[V, int], error) {
	if !f.HasVertex(root) {
		return nil, fmt.Errorf("depth search from %v: %w", root, graph.ErrVertexNotFound)
	}
	return func(yield func(V, int) bool) {
		type frame struct {
			nbrs []V
			next int
		}
		nbrs, _ := f.Neighbors(root)
		stack := []frame{{nbrs: nbrs}}
		visited := map[V]struct{}{root: {}}
		if !yield(root, 0) {
			return
		}
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.nbrs) {
				stack = stack[:len(stack)-1]
				continue
			}
			child := top.nbrs[top.next]
			top.next++
			if _, seen := visited[child]; seen {
				continue
			}
			visited[child] = struct{}{}
			if !yield(child, len(stack)) {
				return
			}
			childNbrs, _ := f.Neighbors(child)
			stack = append(stack, frame{nbrs: childNbrs})
		}
	}, nil
}

// ProfileFrom returns the depth profile of root: the vertices of its
// component grouped by distance from root.
func (f *Forest[V]) ProfileFrom(root V) (Profile[V], error) {
	walk, err := f.DepthSearch(root)
	if err != nil {
		return nil, err
	}
	p := make(Profile[V])
	for v, depth := range walk {
		p[depth] = append(p[depth], v)
	}
	return p, nil
}

// PathLengths returns the depth profile of every vertex, keyed by root.
func (f *Forest[V]) PathLengths() map[V]Profile[V] {
	out := make(map[V]Profile[V], f.VertexCount())
	for _, v := range f.Vertices() {
		p, _ := f.ProfileFrom(v)
		out[v] = p
	}
	return out
}

// Isomorphic reports whether the root profiles of both forests can be paired
// one-to-one so that paired profiles are equivalent. Forests of different
// order are never isomorphic.
//
// This is a necessary condition for graph isomorphism; [Forest.MapTo]
// confirms it by constructing the mapping.
func (f *Forest[V]) Isomorphic(other *Forest[V]) bool {
	if other == nil || f.VertexCount() != other.VertexCount() {
		return false
	}
	return pairSignatures(f.signatures(), other.signatures())
}

// signatures returns the per-depth vertex counts of every root profile, in
// vertex order.
func (f *Forest[V]) signatures() []signature {
	vertices := f.Vertices()
	out := make([]signature, len(vertices))
	for i, v := range vertices {
		walk, _ := f.DepthSearch(v)
		var sig signature
		for _, depth := range walk {
			if depth == len(sig) {
				sig = append(sig, 0)
			}
			sig[depth]++
		}
		out[i] = sig
	}
	return out
}

// Trees yields the connected components of the forest. Each vertex appears
// in exactly one tree, and each tree carries every edge of its component.
// Components are discovered in vertex insertion order.
func (f *Forest[V]) Trees() iter.Seq[*Tree[V]] {
	return func(yield func(*Tree[V]) bool) {
		visited := make(map[V]struct{}, f.VertexCount())
		for _, root := range f.Vertices() {
			if _, ok := visited[root]; ok {
				continue
			}
			if !yield(f.component(root, visited)) {
				return
			}
		}
	}
}

// component collects the vertices and edges reachable from root, marking
// them in visited.
func (f *Forest[V]) component(root V, visited map[V]struct{}) *Tree[V] {
	g := graph.Empty[V]()
	g.AddVertex(root)
	visited[root] = struct{}{}
	stack := []V{root}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		nbrs, _ := f.Neighbors(v)
		for _, n := range nbrs {
			if _, seen := visited[n]; !seen {
				visited[n] = struct{}{}
				g.AddVertex(n)
				stack = append(stack, n)
			}
			_ = g.AddEdge(v, n)
		}
	}
	return NewTree(g)
}

// ComponentSizes returns the vertex count of every tree, in discovery order.
func (f *Forest[V]) ComponentSizes() []int {
	var sizes []int
	for t := range f.Trees() {
		sizes = append(sizes, t.VertexCount())
	}
	return sizes
}

// MapTo returns an isomorphism from f onto other, or false when the forests
// are not isomorphic. Each tree of f is paired with the first unmatched tree
// of other that [Tree.MapTo] can map it onto.
func (f *Forest[V]) MapTo(other *Forest[V]) (*graph.Isomorphism[V], bool) {
	s, ok, _ := f.MapToContext(context.Background(), other)
	return s, ok
}

// MapToContext is MapTo with cancellation. The context is checked before
// each tree is matched; a cancelled context yields its error.
func (f *Forest[V]) MapToContext(ctx context.Context, other *Forest[V]) (*graph.Isomorphism[V], bool, error) {
	if other == nil || f.VertexCount() != other.VertexCount() || f.EdgeCount() != other.EdgeCount() {
		return nil, false, nil
	}
	theirs := slices.Collect(other.Trees())
	used := make([]bool, len(theirs))
	out := make(map[V]V, f.VertexCount())

	for mine := range f.Trees() {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		matched := false
		for i, t := range theirs {
			if used[i] || t.VertexCount() != mine.VertexCount() {
				continue
			}
			s, ok := mine.MapTo(t)
			if !ok {
				continue
			}
			maps.Copy(out, s.Map())
			used[i] = true
			matched = true
			break
		}
		if !matched {
			return nil, false, nil
		}
	}
	if slices.Contains(used, false) {
		return nil, false, nil
	}
	return graph.NewIsomorphism(out), true, nil
}
