package proof

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/matzehuels/arbor/pkg/graph"
	"github.com/matzehuels/arbor/pkg/observability"
)

// ErrRejected is returned by Verify when a response does not check out.
var ErrRejected = stderrors.New("proof rejected")

// Round is one committed graph with its challenge bit and response.
type Round[V comparable] struct {
	Commitment *graph.Graph[V]       `json:"commitment"`
	Bit        uint                  `json:"bit"`
	Response   *graph.Isomorphism[V] `json:"response"`
}

// Transcript records a complete run of the protocol.
type Transcript[V comparable] struct {
	ID        string     `json:"id"`
	CreatedAt time.Time  `json:"created_at"`
	Challenge string     `json:"challenge"`
	Rounds    []Round[V] `json:"rounds"`
}

// Verify checks every round of t against the key pair. The challenge bits
// stored in the rounds must agree with the transcript's challenge.
func Verify[V comparable](ctx context.Context, g0, g1 *graph.Graph[V], t *Transcript[V]) error {
	if t == nil || len(t.Rounds) == 0 {
		return fmt.Errorf("empty transcript: %w", ErrRejected)
	}
	ch, err := ParseChallenge(t.Challenge)
	if err != nil {
		return fmt.Errorf("transcript challenge: %w", err)
	}
	for i, r := range t.Rounds {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok := verifyRound(g0, g1, ch.Bit(i), r)
		observability.Proof().OnRound(ctx, r.Bit, ok)
		if !ok {
			return fmt.Errorf("round %d (bit %d): %w", i, r.Bit, ErrRejected)
		}
	}
	return nil
}

func verifyRound[V comparable](g0, g1 *graph.Graph[V], want uint, r Round[V]) bool {
	if r.Bit != want || r.Commitment == nil || r.Response == nil {
		return false
	}
	src := g0
	if r.Bit == 1 {
		src = g1
	}
	return src.CheckMapping(r.Commitment, r.Response)
}
