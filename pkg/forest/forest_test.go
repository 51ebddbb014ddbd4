package forest

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/arbor/pkg/graph"
)

func mustGraph[V comparable](t *testing.T, vertices []V, edges [][2]V) *graph.Graph[V] {
	t.Helper()
	es := make([]graph.Edge[V], len(edges))
	for i, e := range edges {
		es[i] = graph.Edge[V]{From: e[0], To: e[1]}
	}
	g, err := graph.New(vertices, es)
	if err != nil {
		t.Fatalf("graph.New() error: %v", err)
	}
	return g
}

func pathABCD(t *testing.T) *Forest[string] {
	return New(mustGraph(t, []string{"A", "B", "C", "D"}, [][2]string{{"A", "B"}, {"B", "C"}, {"C", "D"}}))
}

func path1234(t *testing.T) *Forest[string] {
	return New(mustGraph(t, []string{"1", "2", "3", "4"}, [][2]string{{"1", "2"}, {"2", "3"}, {"3", "4"}}))
}

func star4(t *testing.T) *Forest[string] {
	return New(mustGraph(t, []string{"c", "x", "y", "z"}, [][2]string{{"c", "x"}, {"c", "y"}, {"c", "z"}}))
}

// sampleForest has components {0,1,5}, {2}, {3,6} and {4}.
func sampleForest(t *testing.T) *Forest[int] {
	return New(mustGraph(t, []int{0, 1, 2, 3, 4, 5, 6}, [][2]int{{0, 1}, {1, 5}, {6, 3}}))
}

// randomForest builds a forest of n vertices where every vertex either
// starts a new tree or attaches to an earlier one.
func randomForest(t *testing.T, rng *rand.Rand, n int) *Forest[int] {
	t.Helper()
	g := graph.Empty[int]()
	for v := range n {
		g.AddVertex(v)
		if v > 0 && rng.IntN(5) != 0 {
			if err := g.AddEdge(v, rng.IntN(v)); err != nil {
				t.Fatalf("AddEdge() error: %v", err)
			}
		}
	}
	return New(g)
}

// randomTree builds a tree of n vertices by attaching every vertex to a
// random earlier one.
func randomTree(t *testing.T, rng *rand.Rand, n int) *Tree[int] {
	t.Helper()
	g := graph.Empty[int]()
	g.AddVertex(0)
	for v := 1; v < n; v++ {
		g.AddVertex(v)
		if err := g.AddEdge(v, rng.IntN(v)); err != nil {
			t.Fatalf("AddEdge() error: %v", err)
		}
	}
	return NewTree(g)
}

func relabel[V comparable](t *testing.T, g *graph.Graph[V], rng *rand.Rand) *graph.Graph[V] {
	t.Helper()
	out, err := g.MapVertices(graph.RandomIsomorphism(g, rng))
	if err != nil {
		t.Fatalf("MapVertices() error: %v", err)
	}
	return out
}

func TestFromGraph(t *testing.T) {
	if _, err := FromGraph(sampleForest(t).Graph); err != nil {
		t.Errorf("FromGraph(forest) error: %v", err)
	}
	cycle := mustGraph(t, []int{0, 1, 2}, [][2]int{{0, 1}, {1, 2}, {2, 0}})
	if _, err := FromGraph(cycle); !errors.Is(err, ErrNotForest) {
		t.Errorf("FromGraph(cycle) error = %v, want ErrNotForest", err)
	}
}

func TestDepthSearch(t *testing.T) {
	f := pathABCD(t)
	walk, err := f.DepthSearch("A")
	if err != nil {
		t.Fatalf("DepthSearch() error: %v", err)
	}
	var got []string
	for v, depth := range walk {
		got = append(got, v+":"+string(rune('0'+depth)))
	}
	want := []string{"A:0", "B:1", "C:2", "D:3"}
	if !slices.Equal(got, want) {
		t.Errorf("DepthSearch(A) = %v, want %v", got, want)
	}

	if _, err := f.DepthSearch("Z"); !errors.Is(err, graph.ErrVertexNotFound) {
		t.Errorf("DepthSearch(Z) error = %v, want ErrVertexNotFound", err)
	}
}

func TestDepthSearchStaysInComponent(t *testing.T) {
	f := sampleForest(t)
	walk, _ := f.DepthSearch(5)
	seen := map[int]int{}
	for v, depth := range walk {
		if _, dup := seen[v]; dup {
			t.Fatalf("vertex %d yielded twice", v)
		}
		seen[v] = depth
	}
	want := map[int]int{5: 0, 1: 1, 0: 2}
	if len(seen) != len(want) {
		t.Fatalf("DepthSearch(5) visited %v, want %v", seen, want)
	}
	for v, d := range want {
		if seen[v] != d {
			t.Errorf("depth(%d) = %d, want %d", v, seen[v], d)
		}
	}
}

func TestDepthSearchEarlyStop(t *testing.T) {
	walk, _ := pathABCD(t).DepthSearch("A")
	n := 0
	for range walk {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("visited %d vertices, want 2", n)
	}
}

func TestDepthSearchDeepPath(t *testing.T) {
	const n = 100000
	g := graph.Empty[int]()
	g.AddVertex(0)
	for v := 1; v < n; v++ {
		g.AddVertex(v)
		_ = g.AddEdge(v-1, v)
	}
	walk, _ := New(g).DepthSearch(0)
	maxDepth := 0
	for _, d := range walk {
		maxDepth = max(maxDepth, d)
	}
	if maxDepth != n-1 {
		t.Errorf("max depth = %d, want %d", maxDepth, n-1)
	}
}

func TestPathLengths(t *testing.T) {
	profiles := path1234(t).PathLengths()
	if len(profiles) != 4 {
		t.Fatalf("len(PathLengths()) = %d, want 4", len(profiles))
	}
	p := profiles["2"]
	if !slices.Equal(p[0], []string{"2"}) {
		t.Errorf("depth 0 = %v, want [2]", p[0])
	}
	if got := p[1]; len(got) != 2 || !slices.Contains(got, "1") || !slices.Contains(got, "3") {
		t.Errorf("depth 1 = %v, want [1 3]", got)
	}
	if !slices.Equal(p.Counts(), []int{1, 2, 1}) {
		t.Errorf("Counts() = %v, want [1 2 1]", p.Counts())
	}
	if p.Size() != 4 {
		t.Errorf("Size() = %d, want 4", p.Size())
	}
}

func TestProfileEquivalent(t *testing.T) {
	a := Profile[string]{0: {"A"}, 1: {"B", "C"}}
	b := Profile[string]{0: {"x"}, 1: {"y", "z"}}
	c := Profile[string]{0: {"x"}, 1: {"y"}, 2: {"z"}}
	d := Profile[string]{0: {"x"}, 2: {"y", "z"}}
	if !a.Equivalent(b) {
		t.Error("Equivalent() = false for matching cardinalities")
	}
	if a.Equivalent(c) {
		t.Error("Equivalent() = true for different depth sets")
	}
	if a.Equivalent(d) {
		t.Error("Equivalent() = true for different depth keys")
	}
}

func TestIsomorphic(t *testing.T) {
	single := New(mustGraph[string](t, []string{"q"}, nil))
	tests := []struct {
		name string
		a, b *Forest[string]
		want bool
	}{
		{"relabelled path", pathABCD(t), path1234(t), true},
		{"star vs path", star4(t), pathABCD(t), false},
		{"different order", pathABCD(t), single, false},
		{"reflexive", star4(t), star4(t), true},
		{"empty", New(graph.Empty[string]()), New(graph.Empty[string]()), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Isomorphic(tt.b); got != tt.want {
				t.Errorf("a.Isomorphic(b) = %v, want %v", got, tt.want)
			}
			if got := tt.b.Isomorphic(tt.a); got != tt.want {
				t.Errorf("b.Isomorphic(a) = %v, want %v", got, tt.want)
			}
		})
	}
	if pathABCD(t).Isomorphic(nil) {
		t.Error("Isomorphic(nil) = true")
	}
}

func TestIsomorphicRelabelled(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	for i := range 30 {
		f := randomForest(t, rng, 2+i%12)
		g := New(relabel(t, f.Graph, rng))
		if !f.Isomorphic(g) {
			t.Fatalf("forest %d: Isomorphic(relabelled) = false", i)
		}
	}
}

func TestTrees(t *testing.T) {
	f := sampleForest(t)
	var got [][]int
	total, edges := 0, 0
	for tree := range f.Trees() {
		vs := tree.Vertices()
		slices.Sort(vs)
		got = append(got, vs)
		total += tree.VertexCount()
		edges += tree.EdgeCount()
		if !tree.IsTree() {
			t.Errorf("component %v is not a tree", vs)
		}
	}
	want := [][]int{{0, 1, 5}, {2}, {3, 6}, {4}}
	if len(got) != len(want) {
		t.Fatalf("Trees() = %v, want %v", got, want)
	}
	for i := range want {
		if !slices.Equal(got[i], want[i]) {
			t.Errorf("tree %d = %v, want %v", i, got[i], want[i])
		}
	}
	if total != f.VertexCount() || edges != f.EdgeCount() {
		t.Errorf("trees cover %d vertices and %d edges, want %d and %d",
			total, edges, f.VertexCount(), f.EdgeCount())
	}
	if len(got) != f.ComponentCount() {
		t.Errorf("tree count %d != ComponentCount() %d", len(got), f.ComponentCount())
	}
	if !slices.Equal(f.ComponentSizes(), []int{3, 1, 2, 1}) {
		t.Errorf("ComponentSizes() = %v", f.ComponentSizes())
	}
}

func TestWithoutLeavesReceiver(t *testing.T) {
	f := pathABCD(t)
	rest, err := f.Without("B")
	if err != nil {
		t.Fatalf("Without() error: %v", err)
	}
	if rest.VertexCount() != 3 || rest.EdgeCount() != 1 {
		t.Errorf("Without(B) has %d vertices, %d edges; want 3, 1", rest.VertexCount(), rest.EdgeCount())
	}
	if f.VertexCount() != 4 || f.EdgeCount() != 3 {
		t.Error("Without() modified the receiver")
	}
	if _, err := f.Without("Z"); !errors.Is(err, graph.ErrVertexNotFound) {
		t.Errorf("Without(Z) error = %v, want ErrVertexNotFound", err)
	}
}

func TestForestMapTo(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := range 40 {
		f := randomForest(t, rng, 1+i%15)
		g := New(relabel(t, f.Graph, rng))
		s, ok := f.MapTo(g)
		if !ok {
			t.Fatalf("forest %d: MapTo(relabelled) = false", i)
		}
		if !f.CheckMapping(g.Graph, s) {
			t.Fatalf("forest %d: mapping %v does not carry f onto g", i, s)
		}
	}
}

func TestForestMapToSample(t *testing.T) {
	f := sampleForest(t)
	g := New(mustGraph(t, []int{10, 11, 12, 13, 14, 15, 16},
		[][2]int{{16, 13}, {12, 10}, {11, 12}}))
	s, ok := f.MapTo(g)
	if !ok {
		t.Fatal("MapTo() = false, want true")
	}
	if !f.CheckMapping(g.Graph, s) {
		t.Errorf("mapping %v is not an isomorphism", s)
	}
	if s.Len() != 7 || !s.Injective() {
		t.Errorf("mapping %v is not a bijection on 7 vertices", s)
	}
}

func TestForestMapToRejects(t *testing.T) {
	if _, ok := star4(t).MapTo(pathABCD(t)); ok {
		t.Error("MapTo(star, path) = true")
	}
	// Same vertex and edge counts, different component shapes.
	a := New(mustGraph(t, []int{0, 1, 2, 3, 4}, [][2]int{{0, 1}, {2, 3}}))
	b := New(mustGraph(t, []int{0, 1, 2, 3, 4}, [][2]int{{0, 1}, {1, 2}}))
	if _, ok := a.MapTo(b); ok {
		t.Error("MapTo(2+2+1, 3+1+1) = true")
	}
	if _, ok := a.MapTo(nil); ok {
		t.Error("MapTo(nil) = true")
	}
}

func TestForestMapToContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok, err := sampleForest(t).MapToContext(ctx, sampleForest(t))
	if ok || !errors.Is(err, context.Canceled) {
		t.Errorf("MapToContext() = (%v, %v), want (false, context.Canceled)", ok, err)
	}
}
