// Package forest decides isomorphism between forests and builds explicit
// vertex bijections between isomorphic ones.
//
// # Overview
//
// A [Forest] wraps a [graph.Graph] that is known to be acyclic; a [Tree] is
// a forest with a single connected component. Neither wrapper re-checks the
// invariant on every call. Use [FromGraph] or [TreeFromGraph] to validate
// input that comes from outside the program.
//
// # Distance Profiles
//
// For every vertex r, [Forest.DepthSearch] walks the component of r and
// reports each vertex with its distance from r. Grouping those vertices by
// depth gives the [Profile] of r. Two profiles are equivalent when they have
// the same depths and the same number of vertices at each depth; vertex
// identities are deliberately ignored.
//
// [Forest.Isomorphic] pairs every root profile of one forest with a distinct,
// equivalent root profile of the other. This is a necessary condition for
// isomorphism and a cheap way to reject most non-isomorphic inputs.
//
// # Matching
//
// [Tree.MapTo] builds a bijection between two trees. It fixes an image for
// one start vertex, then maps the children of every mapped vertex to
// unmapped neighbors of its image, breadth first. A pair (u, v) is only
// accepted when removing u from one tree and v from the other leaves
// profile-isomorphic residual forests. When a branch runs out of candidates
// the matcher backs up to the previous choice, so any returned mapping passes
// [graph.Graph.CheckMapping].
//
// Candidates are tried in vertex and neighbor insertion order and the first
// one that leads to a complete mapping wins. Symmetric trees therefore have
// several valid answers; which one is returned depends on input order.
//
// [Forest.MapTo] splits both forests into trees with [Forest.Trees], pairs
// every tree with a distinct isomorphic tree of the other forest and merges
// the partial mappings.
//
// # Results
//
// "No isomorphism" is an ordinary result, reported as false by Isomorphic
// and as (nil, false) by MapTo. Errors are reserved for precondition
// failures such as a missing root vertex or an input that is not a forest.
//
// # Cost
//
// Residual checks clone the tree and recompute every profile, giving roughly
// O(n³) work per accepted pair. The engine is meant for small graphs such
// as protocol keys, not for large data sets.
package forest
