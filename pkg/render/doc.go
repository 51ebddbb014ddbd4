// Package render draws forests and vertex mappings with Graphviz.
//
// # Overview
//
// [ToDOT] turns a forest into undirected Graphviz DOT source. Each tree is
// placed in its own cluster and filled with a color from a fixed palette,
// so the components of a forest are easy to tell apart. [PairDOT] draws two
// forests side by side and adds a dashed arrow for every pair of a mapping
// between them.
//
//	dot := render.ToDOT(f, render.Options[graph.Label]{MarkCenters: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// # Output Formats
//
// [RenderSVG] renders in-process with go-graphviz. [Render] selects the
// output by [Format]: DOT source is returned as is, and PDF or PNG are
// converted from SVG with rsvg-convert from librsvg.
//
//	png, err := render.Render(ctx, dot, render.FormatPNG)
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for SVG rendering. PDF
// and PNG conversion requires librsvg: brew install librsvg (macOS), apt
// install librsvg2-bin (Linux).
package render
