package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/arbor/pkg/graph"
)

// ReadGraph decodes a single graph from r.
//
// ReadGraph returns an error wrapping [ErrFormat] if the input is not a
// valid graph document or if an edge names a vertex that is not listed.
// The returned graph is independent of r; ReadGraph does not close r.
func ReadGraph(r io.Reader, format Format) (*graph.Graph[graph.Label], error) {
	switch format {
	case FormatTOML:
		var doc tomlGraph
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, formatErr("decode toml", err)
		}
		g, err := doc.build()
		if err != nil {
			return nil, formatErr("decode toml", err)
		}
		return g, nil
	default:
		g := graph.Empty[graph.Label]()
		if err := json.NewDecoder(r).Decode(g); err != nil {
			return nil, formatErr("decode json", err)
		}
		return g, nil
	}
}

// ImportGraph reads the graph file at path, choosing the format from the
// extension.
func ImportGraph(path string) (*graph.Graph[graph.Label], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	g, err := ReadGraph(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// WriteGraph encodes g to w. JSON output uses the compact pair form
// followed by a newline.
func WriteGraph(g *graph.Graph[graph.Label], w io.Writer, format Format) error {
	if format == FormatTOML {
		if err := toml.NewEncoder(w).Encode(toTOMLGraph(g)); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	}
	if err := json.NewEncoder(w).Encode(g); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// ExportGraph writes g to path, choosing the format from the extension.
func ExportGraph(g *graph.Graph[graph.Label], path string) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteGraph(g, w, FormatFromPath(path))
	})
}

// writeFile creates path and runs write against it, reporting the first of
// the write and close errors.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return write(f)
}
