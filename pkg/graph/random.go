package graph

import "math/rand/v2"

// RandomIsomorphism returns a uniformly random permutation of the vertices
// of g. A nil rng uses the runtime's securely seeded generator; pass a seeded
// *rand.Rand for reproducible output in tests.
func RandomIsomorphism[V comparable](g *Graph[V], rng *rand.Rand) *Isomorphism[V] {
	targets := g.Vertices()
	swap := func(i, j int) { targets[i], targets[j] = targets[j], targets[i] }
	if rng != nil {
		rng.Shuffle(len(targets), swap)
	} else {
		rand.Shuffle(len(targets), swap)
	}
	m := make(map[V]V, len(targets))
	for i, v := range g.order {
		m[v] = targets[i]
	}
	return &Isomorphism[V]{m: m}
}
