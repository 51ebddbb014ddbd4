package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/arbor/pkg/errors"
	"github.com/matzehuels/arbor/pkg/graph"
	"github.com/matzehuels/arbor/pkg/render"
)

// Render draws f, labeling vertices with their images under s when s is
// not nil.
func (r *Runner) Render(ctx context.Context, f *Forest, s *Mapping, opts RenderOptions) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	dot := render.ToDOT(f, render.Options[graph.Label]{
		Title:       opts.Title,
		Mapping:     s,
		MarkCenters: opts.MarkCenters,
	})
	return r.renderDOT(ctx, dot, opts.Format)
}

// RenderPair draws a and b side by side with the mapping s between them.
func (r *Runner) RenderPair(ctx context.Context, a, b *Forest, s *Mapping, opts RenderOptions) ([]byte, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return r.renderDOT(ctx, render.PairDOT(a, b, s, opts.Title), opts.Format)
}

func (r *Runner) renderDOT(ctx context.Context, dot string, format render.Format) ([]byte, error) {
	start := time.Now()
	out, err := render.Render(ctx, dot, format)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	r.Logger.Debug("rendered", "format", format, "bytes", len(out), "duration", time.Since(start))
	return out, nil
}
