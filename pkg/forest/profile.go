package forest

import "slices"

// Profile groups the vertices of one component by their distance from a
// root vertex. Depth 0 holds only the root.
type Profile[V comparable] map[int][]V

// Equivalent reports whether p and q have the same depths and the same
// number of vertices at each depth.
func (p Profile[V]) Equivalent(q Profile[V]) bool {
	if len(p) != len(q) {
		return false
	}
	for depth, vs := range p {
		ws, ok := q[depth]
		if !ok || len(ws) != len(vs) {
			return false
		}
	}
	return true
}

// Counts returns the number of vertices at each depth, from the root
// outwards. In a connected component depths are contiguous, so the counts
// describe the profile fully up to vertex identity.
func (p Profile[V]) Counts() []int {
	out := make([]int, len(p))
	for depth, vs := range p {
		if depth >= 0 && depth < len(out) {
			out[depth] = len(vs)
		}
	}
	return out
}

// Size returns the number of vertices in the profile.
func (p Profile[V]) Size() int {
	n := 0
	for _, vs := range p {
		n += len(vs)
	}
	return n
}

// signature is the identity-free form of a profile: vertex counts by depth.
type signature []int

// pairSignatures reports whether every signature in a can be paired with a
// distinct equal signature in b. Each signature in a consumes the first
// unused match in b.
func pairSignatures(a, b []signature) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
	for _, sa := range a {
		found := false
		for j, sb := range b {
			if !used[j] && slices.Equal(sa, sb) {
				used[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
