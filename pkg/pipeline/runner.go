package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/arbor/pkg/cache"
	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/forest"
	"github.com/matzehuels/arbor/pkg/graph"
	arborio "github.com/matzehuels/arbor/pkg/io"
	"github.com/matzehuels/arbor/pkg/observability"
	"github.com/matzehuels/arbor/pkg/proof"
)

// Cache key types reported to the cache hooks.
const (
	keyTypeMatch   = "match"
	keyTypeProfile = "profile"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// =============================================================================
// Load
// =============================================================================

// LoadGraph reads a graph file and checks that it is a forest.
func (r *Runner) LoadGraph(ctx context.Context, path string) (*Forest, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	start := time.Now()
	g, err := arborio.ImportGraph(path)
	var f *Forest
	if err == nil {
		f, err = forest.FromGraph(g)
	}
	vertices, edges := 0, 0
	if g != nil {
		vertices, edges = g.VertexCount(), g.EdgeCount()
	}
	observability.Match().OnLoadComplete(ctx, path, vertices, edges, time.Since(start), err)
	if err != nil {
		return nil, boundaryError(err, "load %s", path)
	}
	r.Logger.Debug("loaded graph", "path", path, "vertices", vertices, "edges", edges)
	return f, nil
}

// LoadKeyPair reads a key file and checks that both graphs are forests.
func (r *Runner) LoadKeyPair(ctx context.Context, path string) (*Forest, *Forest, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, nil, err
	}
	start := time.Now()
	k, err := arborio.ImportKeyPair(path)
	var g0, g1 *Forest
	if err == nil {
		g0, err = forest.FromGraph(k.G0)
	}
	if err == nil {
		g1, err = forest.FromGraph(k.G1)
	}
	vertices, edges := 0, 0
	if k.G0 != nil {
		vertices, edges = k.G0.VertexCount(), k.G0.EdgeCount()
	}
	observability.Match().OnLoadComplete(ctx, path, vertices, edges, time.Since(start), err)
	if err != nil {
		return nil, nil, boundaryError(err, "load keys %s", path)
	}
	r.Logger.Debug("loaded key pair", "path", path, "vertices", vertices, "edges", edges)
	return g0, g1, nil
}

// LoadMapping reads a mapping file.
func (r *Runner) LoadMapping(ctx context.Context, path string) (*Mapping, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	s, err := arborio.ImportMapping(path)
	if err != nil {
		return nil, boundaryError(err, "load mapping %s", path)
	}
	r.Logger.Debug("loaded mapping", "path", path, "pairs", s.Len())
	return s, nil
}

// =============================================================================
// Match
// =============================================================================

// Match finds an isomorphism from a onto b. A cached result is reused when
// its mapping still checks out against the inputs.
func (r *Runner) Match(ctx context.Context, a, b *Forest, opts MatchOptions) (*MatchResult, error) {
	key, keyErr := r.matchKey(a, b)
	if keyErr == nil && !opts.Refresh {
		if res, ok := r.cachedMatch(ctx, key, a, b); ok {
			res.Stats = Stats{Vertices: a.VertexCount(), Edges: a.EdgeCount(), Trees: len(a.ComponentSizes())}
			r.Logger.Debug("match cache hit", "vertices", a.VertexCount())
			return res, nil
		}
	}

	n := a.VertexCount()
	observability.Match().OnMatchStart(ctx, n)
	start := time.Now()
	s, ok, err := a.MapToContext(ctx, b)
	elapsed := time.Since(start)
	observability.Match().OnMatchComplete(ctx, n, ok, elapsed, err)
	if err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}

	res := &MatchResult{
		Isomorphic: ok,
		Mapping:    s,
		Stats: Stats{
			Vertices:  n,
			Edges:     a.EdgeCount(),
			Trees:     len(a.ComponentSizes()),
			MatchTime: elapsed,
		},
	}
	r.Logger.Debug("matched forests",
		"vertices", n,
		"trees", res.Stats.Trees,
		"isomorphic", ok,
		"duration", elapsed)

	if keyErr == nil {
		r.store(ctx, keyTypeMatch, key, res, cache.TTLMatch)
	}
	return res, nil
}

func (r *Runner) matchKey(a, b *Forest) (string, error) {
	src, err := json.Marshal(a.Graph)
	if err != nil {
		return "", err
	}
	dst, err := json.Marshal(b.Graph)
	if err != nil {
		return "", err
	}
	return r.Keyer.MatchKey(src, dst), nil
}

func (r *Runner) cachedMatch(ctx context.Context, key string, a, b *Forest) (*MatchResult, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, keyTypeMatch)
		return nil, false
	}
	var res MatchResult
	if err := json.Unmarshal(data, &res); err != nil {
		observability.Cache().OnCacheMiss(ctx, keyTypeMatch)
		return nil, false
	}
	if res.Isomorphic && !a.CheckMapping(b.Graph, res.Mapping) {
		r.Logger.Warn("discarding cached mapping that no longer checks out", "key", key)
		observability.Cache().OnCacheMiss(ctx, keyTypeMatch)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyTypeMatch)
	res.CacheHit = true
	return &res, true
}

// store writes v to the cache. Cache failures are logged, never returned.
func (r *Runner) store(ctx context.Context, keyType, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		r.Logger.Debug("skip caching unencodable result", "key_type", keyType, "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("cache write failed", "key_type", keyType, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType, len(data))
}

// Check reports whether s carries a onto b. A mapping that does not check
// out is an INVALID_MAPPING error.
func (r *Runner) Check(ctx context.Context, a, b *Forest, s *Mapping) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !a.CheckMapping(b.Graph, s) {
		return errors.Wrap(errors.ErrCodeInvalidMapping, graph.ErrInvalidMapping,
			"mapping is not an isomorphism between the graphs")
	}
	return nil
}

// =============================================================================
// Summaries
// =============================================================================

// Summarize describes each component of f. Summaries are cached by the
// content of f.
func (r *Runner) Summarize(ctx context.Context, f *Forest) (*Summary, error) {
	data, err := json.Marshal(f.Graph)
	if err != nil {
		return nil, boundaryError(err, "encode forest")
	}
	key := r.Keyer.ProfileKey(data)
	if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var s Summary
		if json.Unmarshal(cached, &s) == nil {
			observability.Cache().OnCacheHit(ctx, keyTypeProfile)
			return &s, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, keyTypeProfile)

	s := summarize(f)
	r.store(ctx, keyTypeProfile, key, s, cache.TTLProfile)
	r.Logger.Debug("summarized forest", "vertices", s.Vertices, "trees", len(s.Trees))
	return s, nil
}

func summarize(f *Forest) *Summary {
	s := &Summary{Vertices: f.VertexCount(), Edges: f.EdgeCount(), Trees: []TreeSummary{}}
	i := 0
	for t := range f.Trees() {
		center := t.Center()
		leaves := 0
		for range t.Leaves() {
			leaves++
		}
		p, _ := t.ProfileFrom(center[0])
		s.Trees = append(s.Trees, TreeSummary{
			Index:    i,
			Vertices: t.VertexCount(),
			Edges:    t.EdgeCount(),
			Leaves:   leaves,
			Center:   center,
			Depths:   p.Counts(),
		})
		i++
	}
	return s
}

// =============================================================================
// Proofs
// =============================================================================

// Prove runs the proof rounds for the key pair (g0, g1). Without a secret
// in opts the mapping is derived with [Runner.Match].
func (r *Runner) Prove(ctx context.Context, g0, g1 *Forest, opts ProveOptions) (*proof.Transcript[graph.Label], error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	secret := opts.Secret
	if secret == nil {
		res, err := r.Match(ctx, g0, g1, MatchOptions{})
		if err != nil {
			return nil, err
		}
		if !res.Isomorphic {
			return nil, errors.New(errors.ErrCodeNoIsomorphism, "key graphs are not isomorphic")
		}
		secret = res.Mapping
	}

	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	}
	p, err := proof.NewProver(g0.Graph, g1.Graph, secret, rng)
	if err != nil {
		return nil, boundaryError(err, "prove")
	}

	ch := proof.RandomChallenge(rng, opts.Rounds)
	if opts.Challenge != "" {
		if ch, err = proof.ParseChallenge(opts.Challenge); err != nil {
			return nil, err
		}
	}

	p.Commit(opts.Rounds)
	t, err := p.Respond(ch)
	if err != nil {
		return nil, boundaryError(err, "prove")
	}
	r.Logger.Debug("answered challenge", "rounds", opts.Rounds, "challenge", ch.String(), "id", t.ID)
	return t, nil
}

// Verify checks a transcript against the key pair.
func (r *Runner) Verify(ctx context.Context, g0, g1 *Forest, t *proof.Transcript[graph.Label]) error {
	if err := proof.Verify(ctx, g0.Graph, g1.Graph, t); err != nil {
		return boundaryError(err, "verify")
	}
	r.Logger.Debug("transcript verified", "rounds", len(t.Rounds), "id", t.ID)
	return nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// =============================================================================
// Keys
// =============================================================================

// Keygen builds a key pair from g0: G1 is a random relabeling of G0 and the
// relabeling is the secret. A non-zero seed makes the result reproducible.
func (r *Runner) Keygen(ctx context.Context, g0 *Forest, seed uint64) (arborio.KeyPair, *Mapping, error) {
	if err := ctx.Err(); err != nil {
		return arborio.KeyPair{}, nil, err
	}
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewPCG(seed, seed))
	}
	secret := graph.RandomIsomorphism(g0.Graph, rng)
	g1, err := g0.MapVertices(secret)
	if err != nil {
		return arborio.KeyPair{}, nil, boundaryError(err, "keygen")
	}
	r.Logger.Debug("generated key pair", "vertices", g0.VertexCount(), "trees", len(g0.ComponentSizes()))
	return arborio.KeyPair{G0: g0.Graph, G1: g1}, secret, nil
}
