package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/arbor/pkg/graph"
)

type tomlMapping struct {
	Pairs [][]any `toml:"pairs"`
}

// ReadMapping decodes a list of [source, target] pairs. A source listed
// twice is rejected.
func ReadMapping(r io.Reader, format Format) (*graph.Isomorphism[graph.Label], error) {
	if format == FormatTOML {
		var doc tomlMapping
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, formatErr("decode toml", err)
		}
		m := make(map[graph.Label]graph.Label, len(doc.Pairs))
		for i, p := range doc.Pairs {
			if len(p) != 2 {
				return nil, formatErr("decode toml", fmt.Errorf("pair %d: want 2 values, got %d", i, len(p)))
			}
			from, err := graph.LabelOf(p[0])
			if err != nil {
				return nil, formatErr("decode toml", fmt.Errorf("pair %d: %w", i, err))
			}
			to, err := graph.LabelOf(p[1])
			if err != nil {
				return nil, formatErr("decode toml", fmt.Errorf("pair %d: %w", i, err))
			}
			if _, dup := m[from]; dup {
				return nil, formatErr("decode toml", fmt.Errorf("source %v listed twice: %w", from, graph.ErrInvalidMapping))
			}
			m[from] = to
		}
		return graph.NewIsomorphism(m), nil
	}
	var s graph.Isomorphism[graph.Label]
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, formatErr("decode json", err)
	}
	return &s, nil
}

// ImportMapping reads the mapping file at path.
func ImportMapping(path string) (*graph.Isomorphism[graph.Label], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	s, err := ReadMapping(f, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// WriteMapping encodes s to w as pairs sorted by source.
func WriteMapping(s *graph.Isomorphism[graph.Label], w io.Writer, format Format) error {
	if format == FormatTOML {
		doc := tomlMapping{Pairs: make([][]any, 0, s.Len())}
		for _, p := range s.Pairs() {
			doc.Pairs = append(doc.Pairs, []any{p[0].Value(), p[1].Value()})
		}
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	}
	if err := json.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// ExportMapping writes s to path.
func ExportMapping(s *graph.Isomorphism[graph.Label], path string) error {
	return writeFile(path, func(w io.Writer) error {
		return WriteMapping(s, w, FormatFromPath(path))
	})
}
