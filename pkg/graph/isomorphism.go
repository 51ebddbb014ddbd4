package graph

import (
	"fmt"
	"maps"
	"slices"
)

// Isomorphism is a vertex bijection. It is built from a source -> target
// map and is treated as an immutable value: every operation returns a new
// Isomorphism.
//
// Injectivity is assumed, not enforced, at construction time. Validate a
// mapping against concrete graphs with [Graph.CheckMapping].
type Isomorphism[V comparable] struct {
	m map[V]V
}

// NewIsomorphism copies m into a new Isomorphism.
func NewIsomorphism[V comparable](m map[V]V) *Isomorphism[V] {
	out := make(map[V]V, len(m))
	maps.Copy(out, m)
	return &Isomorphism[V]{m: out}
}

// Identity returns the mapping that sends every vertex of g to itself.
func Identity[V comparable](g *Graph[V]) *Isomorphism[V] {
	m := make(map[V]V, g.VertexCount())
	for _, v := range g.order {
		m[v] = v
	}
	return &Isomorphism[V]{m: m}
}

// Apply returns the image of v and whether v is in the domain.
func (s *Isomorphism[V]) Apply(v V) (V, bool) {
	w, ok := s.m[v]
	return w, ok
}

// Len returns the size of the domain.
func (s *Isomorphism[V]) Len() int { return len(s.m) }

// Domain returns the source vertices. The order is not guaranteed.
func (s *Isomorphism[V]) Domain() []V { return slices.Collect(maps.Keys(s.m)) }

// Codomain returns the target vertices. The order is not guaranteed.
func (s *Isomorphism[V]) Codomain() []V { return slices.Collect(maps.Values(s.m)) }

// Map returns a copy of the underlying source -> target map.
func (s *Isomorphism[V]) Map() map[V]V { return maps.Clone(s.m) }

// Equal reports whether both mappings have the same pairs.
func (s *Isomorphism[V]) Equal(other *Isomorphism[V]) bool {
	if other == nil {
		return false
	}
	return maps.Equal(s.m, other.m)
}

// Injective reports whether no two sources share a target.
func (s *Isomorphism[V]) Injective() bool {
	seen := make(map[V]struct{}, len(s.m))
	for _, w := range s.m {
		if _, dup := seen[w]; dup {
			return false
		}
		seen[w] = struct{}{}
	}
	return true
}

// Compose returns the mapping that applies s first and next second. The
// domain of the result is the domain of s. It fails with ErrInvalidMapping
// if some image of s is outside the domain of next.
func (s *Isomorphism[V]) Compose(next *Isomorphism[V]) (*Isomorphism[V], error) {
	if next == nil {
		return nil, fmt.Errorf("compose with nil mapping: %w", ErrInvalidMapping)
	}
	out := make(map[V]V, len(s.m))
	for k, v := range s.m {
		w, ok := next.m[v]
		if !ok {
			return nil, fmt.Errorf("compose: %v -> %v: %w", k, v, ErrInvalidMapping)
		}
		out[k] = w
	}
	return &Isomorphism[V]{m: out}, nil
}

// Invert returns the mapping with sources and targets swapped. If s is not
// injective the result keeps one source per target.
func (s *Isomorphism[V]) Invert() *Isomorphism[V] {
	out := make(map[V]V, len(s.m))
	for k, v := range s.m {
		out[v] = k
	}
	return &Isomorphism[V]{m: out}
}

// Subtract returns s ∘ t⁻¹: the mapping that first undoes t and then
// applies s. For s: A -> C and t: A -> B the result maps B -> C.
func (s *Isomorphism[V]) Subtract(t *Isomorphism[V]) (*Isomorphism[V], error) {
	if t == nil {
		return nil, fmt.Errorf("subtract nil mapping: %w", ErrInvalidMapping)
	}
	return t.Invert().Compose(s)
}

// String formats the mapping as "{a->b c->d}" with pairs sorted by source.
func (s *Isomorphism[V]) String() string {
	pairs := s.Pairs()
	buf := []byte{'{'}
	for i, p := range pairs {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = fmt.Appendf(buf, "%v->%v", p[0], p[1])
	}
	return string(append(buf, '}'))
}

// Pairs returns the mapping as [source, target] pairs ordered by the
// formatted source, so serialized output is stable.
func (s *Isomorphism[V]) Pairs() [][2]V {
	pairs := make([][2]V, 0, len(s.m))
	for k, v := range s.m {
		pairs = append(pairs, [2]V{k, v})
	}
	slices.SortFunc(pairs, func(a, b [2]V) int {
		return compareFormatted(a[0], b[0])
	})
	return pairs
}
