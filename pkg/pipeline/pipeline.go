// Package pipeline provides the load → validate → match flow shared by every
// arbor command.
//
// By centralizing this logic, the commands stay thin and every entry point
// validates input, caches results and emits metrics the same way.
//
// # Architecture
//
// A run consists of up to three stages:
//
//  1. Load: read a graph, key pair or mapping file and check that the graphs
//     are forests
//  2. Match: find an isomorphism between two forests, consulting the cache
//  3. Render or prove: draw the result, or run proof rounds with the mapping
//     as the secret
//
// Each stage can be run on its own through a [Runner].
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	a, err := runner.LoadGraph(ctx, "a.json")
//	b, err := runner.LoadGraph(ctx, "b.json")
//	res, err := runner.Match(ctx, a, b, pipeline.MatchOptions{})
//	if res.Isomorphic {
//	    fmt.Println(res.Mapping)
//	}
package pipeline

import (
	"time"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/forest"
	"github.com/matzehuels/arbor/pkg/graph"
	"github.com/matzehuels/arbor/pkg/render"
)

// =============================================================================
// Default Values - Single Source of Truth for the CLI
// =============================================================================

const (
	// DefaultRounds is the number of proof rounds when none is given.
	DefaultRounds = 16

	// DefaultFormat is the default render output format.
	DefaultFormat = render.FormatSVG
)

// Forest is the concrete forest type read from files.
type Forest = forest.Forest[graph.Label]

// Mapping is the concrete isomorphism type read from and written to files.
type Mapping = graph.Isomorphism[graph.Label]

// =============================================================================
// Options
// =============================================================================

// MatchOptions controls a single match.
type MatchOptions struct {
	// Refresh skips the cache lookup but still stores the new result.
	Refresh bool
}

// ProveOptions controls a proof run.
type ProveOptions struct {
	// Rounds is the number of commitments. Zero means DefaultRounds.
	Rounds int

	// Challenge is a hex challenge. Empty draws a random one.
	Challenge string

	// Secret is the isomorphism G0 → G1. Nil derives it with the matcher.
	Secret *Mapping

	// Seed makes commitments and random challenges reproducible when
	// non-zero.
	Seed uint64
}

// RenderOptions controls the render stage.
type RenderOptions struct {
	Format      render.Format
	Title       string
	MarkCenters bool
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *ProveOptions) ValidateAndSetDefaults() error {
	if o.Rounds == 0 {
		o.Rounds = DefaultRounds
	}
	if err := errors.ValidateRounds(o.Rounds); err != nil {
		return err
	}
	if o.Challenge != "" {
		return errors.ValidateChallenge(o.Challenge)
	}
	return nil
}

// ValidateAndSetDefaults fills in the default format.
func (o *RenderOptions) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if _, err := render.ParseFormat(string(o.Format)); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid render format %q", o.Format)
	}
	return nil
}

// =============================================================================
// Results
// =============================================================================

// MatchResult is the outcome of [Runner.Match].
type MatchResult struct {
	// Isomorphic reports whether a mapping was found.
	Isomorphic bool `json:"isomorphic"`

	// Mapping carries the source forest onto the target. Nil when the
	// forests are not isomorphic.
	Mapping *Mapping `json:"mapping,omitempty"`

	// Stats contains timing and size information.
	Stats Stats `json:"-"`

	// CacheHit reports whether the result came from the cache.
	CacheHit bool `json:"-"`
}

// Stats contains match statistics.
type Stats struct {
	Vertices  int
	Edges     int
	Trees     int
	MatchTime time.Duration
}

// Summary describes the components of one forest.
type Summary struct {
	Vertices int           `json:"vertices"`
	Edges    int           `json:"edges"`
	Trees    []TreeSummary `json:"trees"`
}

// TreeSummary describes one component.
type TreeSummary struct {
	Index    int           `json:"index"`
	Vertices int           `json:"vertices"`
	Edges    int           `json:"edges"`
	Leaves   int           `json:"leaves"`
	Center   []graph.Label `json:"center"`
	Depths   []int         `json:"depths"`
}
