package forest

import "github.com/matzehuels/arbor/pkg/graph"

// matcher searches for a bijection between two trees of equal order.
type matcher[V comparable] struct {
	src, dst *Tree[V]

	order  []V     // src vertices in breadth-first order
	parent map[V]V // breadth-first parent of every non-start vertex

	srcResidual map[V][]signature
	dstResidual map[V][]signature

	mapping map[V]V
	used    map[V]struct{}
}

// newMatcher prepares a search from src onto dst. It returns nil when src
// is not connected.
func newMatcher[V comparable](src, dst *Tree[V]) *matcher[V] {
	start := src.Vertices()[0]
	order := []V{start}
	parent := make(map[V]V, src.VertexCount())
	seen := map[V]struct{}{start: {}}
	for i := 0; i < len(order); i++ {
		v := order[i]
		nbrs, _ := src.Neighbors(v)
		for _, n := range nbrs {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			parent[n] = v
			order = append(order, n)
		}
	}
	if len(order) != src.VertexCount() {
		return nil
	}
	return &matcher[V]{
		src:         src,
		dst:         dst,
		order:       order,
		parent:      parent,
		srcResidual: make(map[V][]signature),
		dstResidual: make(map[V][]signature),
		mapping:     make(map[V]V, len(order)),
		used:        make(map[V]struct{}, len(order)),
	}
}

// run walks the breadth-first order, assigning one image per level and
// backing up a level whenever the current one has no acceptable candidate
// left. Every complete assignment sends each src edge to a distinct dst
// edge, and both trees have the same number of edges, so it is an
// isomorphism.
func (m *matcher[V]) run() (*graph.Isomorphism[V], bool) {
	n := len(m.order)
	cands := make([][]V, n)
	next := make([]int, n)
	cands[0] = m.dst.Vertices()

	i := 0
	for i >= 0 {
		if i == n {
			return graph.NewIsomorphism(m.mapping), true
		}
		u := m.order[i]
		if v, ok := m.mapping[u]; ok {
			delete(m.mapping, u)
			delete(m.used, v)
		}

		assigned := false
		for next[i] < len(cands[i]) {
			v := cands[i][next[i]]
			next[i]++
			if m.accept(u, v) {
				m.mapping[u] = v
				m.used[v] = struct{}{}
				assigned = true
				break
			}
		}
		if !assigned {
			i--
			continue
		}

		i++
		if i < n {
			img := m.mapping[m.parent[m.order[i]]]
			cands[i], _ = m.dst.Neighbors(img)
			next[i] = 0
		}
	}
	return nil, false
}

// accept reports whether u may be mapped to v given the current partial
// mapping.
func (m *matcher[V]) accept(u, v V) bool {
	if _, taken := m.used[v]; taken {
		return false
	}
	if m.src.Degree(u) != m.dst.Degree(v) {
		return false
	}
	return pairSignatures(residual(m.src, u, m.srcResidual), residual(m.dst, v, m.dstResidual))
}

// residual returns the root signatures of t with v removed, memoized per v.
func residual[V comparable](t *Tree[V], v V, memo map[V][]signature) []signature {
	if sigs, ok := memo[v]; ok {
		return sigs
	}
	rest, err := t.Without(v)
	if err != nil {
		return nil
	}
	sigs := rest.signatures()
	memo[v] = sigs
	return sigs
}
