package proof

import (
	stderrors "errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/arbor/pkg/graph"
)

var (
	// ErrBadSecret is returned by NewProver when the secret does not carry
	// G0 onto G1.
	ErrBadSecret = stderrors.New("secret is not an isomorphism from G0 onto G1")

	// ErrNotCommitted is returned by Respond before Commit has been called.
	ErrNotCommitted = stderrors.New("no commitments to respond to")
)

// Prover holds the key pair, the secret isomorphism and the relabelings
// of the current commitments.
type Prover[V comparable] struct {
	g0, g1 *graph.Graph[V]
	secret *graph.Isomorphism[V]
	rng    *rand.Rand

	commitments []*graph.Graph[V]
	sigmas      []*graph.Isomorphism[V]
}

// NewProver checks that secret maps g0 onto g1. A nil rng uses the global
// source.
func NewProver[V comparable](g0, g1 *graph.Graph[V], secret *graph.Isomorphism[V], rng *rand.Rand) (*Prover[V], error) {
	if secret == nil || !g0.CheckMapping(g1, secret) {
		return nil, fmt.Errorf("%w: %w", ErrBadSecret, graph.ErrInvalidMapping)
	}
	return &Prover[V]{g0: g0, g1: g1, secret: secret, rng: rng}, nil
}

// Commit draws a fresh relabeling of G0 for each round and returns the
// committed graphs. Earlier commitments are discarded.
func (p *Prover[V]) Commit(rounds int) []*graph.Graph[V] {
	p.commitments = make([]*graph.Graph[V], rounds)
	p.sigmas = make([]*graph.Isomorphism[V], rounds)
	for i := range rounds {
		sigma := graph.RandomIsomorphism(p.g0, p.rng)
		g2, _ := p.g0.MapVertices(sigma)
		p.sigmas[i] = sigma
		p.commitments[i] = g2
	}
	return p.commitments
}

// Respond answers every committed round and returns the full transcript.
// The commitments are consumed; a second call needs a new Commit.
func (p *Prover[V]) Respond(ch Challenge) (*Transcript[V], error) {
	if len(p.sigmas) == 0 {
		return nil, ErrNotCommitted
	}
	t := &Transcript[V]{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Challenge: ch.String(),
		Rounds:    make([]Round[V], len(p.sigmas)),
	}
	for i, sigma := range p.sigmas {
		bit := ch.Bit(i)
		tau := sigma
		if bit == 1 {
			var err error
			if tau, err = sigma.Subtract(p.secret); err != nil {
				return nil, fmt.Errorf("round %d: %w", i, err)
			}
		}
		t.Rounds[i] = Round[V]{Commitment: p.commitments[i], Bit: bit, Response: tau}
	}
	p.commitments, p.sigmas = nil, nil
	return t, nil
}
