package io

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/matzehuels/arbor/pkg/graph"
)

// ErrFormat is wrapped by every decoding failure.
var ErrFormat = errors.New("malformed input")

// Format selects the encoding of a file.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatFromPath returns FormatTOML for ".toml" files and FormatJSON for
// everything else.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// ParseFormat converts a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatTOML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or toml)", s)
	}
}

func formatErr(what string, err error) error {
	return fmt.Errorf("%s: %w: %w", what, ErrFormat, err)
}

// tomlGraph is the TOML shape of a graph. Vertices and edge endpoints are
// decoded as raw scalars and converted with graph.LabelOf.
type tomlGraph struct {
	Vertices []any   `toml:"vertices"`
	Edges    [][]any `toml:"edges"`
}

func (t tomlGraph) build() (*graph.Graph[graph.Label], error) {
	g := graph.Empty[graph.Label]()
	for i, raw := range t.Vertices {
		v, err := graph.LabelOf(raw)
		if err != nil {
			return nil, fmt.Errorf("vertex %d: %w", i, err)
		}
		g.AddVertex(v)
	}
	for i, raw := range t.Edges {
		if len(raw) != 2 {
			return nil, fmt.Errorf("edge %d: want 2 endpoints, got %d", i, len(raw))
		}
		u, err := graph.LabelOf(raw[0])
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		v, err := graph.LabelOf(raw[1])
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
		if err := g.AddEdge(u, v); err != nil {
			return nil, fmt.Errorf("edge %d: %w", i, err)
		}
	}
	return g, nil
}

func toTOMLGraph(g *graph.Graph[graph.Label]) tomlGraph {
	out := tomlGraph{
		Vertices: make([]any, 0, g.VertexCount()),
		Edges:    make([][]any, 0, g.EdgeCount()),
	}
	for _, v := range g.Vertices() {
		out.Vertices = append(out.Vertices, v.Value())
	}
	for _, e := range g.Edges() {
		out.Edges = append(out.Edges, []any{e.From.Value(), e.To.Value()})
	}
	return out
}
