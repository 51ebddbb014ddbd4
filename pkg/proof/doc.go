// Package proof runs the graph-isomorphism identification rounds offline.
//
// # Protocol
//
// The public key is a pair of isomorphic graphs (G0, G1). The prover's
// secret is an isomorphism d from G0 onto G1. One round goes as follows:
//
//  1. Commit: the prover draws a random relabeling σ of G0 and publishes
//     G2 = σ(G0).
//  2. Challenge: the verifier picks a bit b.
//  3. Respond: for b = 0 the prover reveals τ = σ, mapping G0 onto G2; for
//     b = 1 it reveals τ = σ ∘ d⁻¹ ([graph.Isomorphism.Subtract]), mapping
//     G1 onto G2.
//  4. Verify: the verifier checks that τ carries G_b onto G2 with
//     [graph.Graph.CheckMapping].
//
// A challenge for many rounds is written as a hex number; round i uses
// bit i, counting from the least significant bit.
//
// # Usage
//
//	p, err := proof.NewProver(g0, g1, d, rng)
//	commitments := p.Commit(16)
//	ch, err := proof.ParseChallenge("beef")
//	t, err := p.Respond(ch)
//	err = proof.Verify(ctx, g0, g1, t)
//
// Nothing in this package talks to the network; the transcript is a plain
// JSON document that can be checked later with [Verify].
package proof
