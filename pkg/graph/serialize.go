package graph

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// graphObject is the keyed form accepted by UnmarshalJSON, as found in key
// files produced by other tools.
type graphObject[V comparable] struct {
	Vertices []V    `json:"vertices"`
	Edges    [][2]V `json:"edges"`
}

// MarshalJSON encodes the graph as [[vertices...], [[u, v]...]].
func (g *Graph[V]) MarshalJSON() ([]byte, error) {
	vertices := g.order
	if vertices == nil {
		vertices = []V{}
	}
	edges := make([][2]V, len(g.edges))
	for i, e := range g.edges {
		edges[i] = [2]V{e.From, e.To}
	}
	return json.Marshal([2]any{vertices, edges})
}

// UnmarshalJSON decodes either the pair form written by MarshalJSON or the
// keyed form {"vertices": [...], "edges": [...]}.
func (g *Graph[V]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var obj graphObject[V]
	switch {
	case len(data) == 0:
		return fmt.Errorf("decode graph: empty input")
	case data[0] == '{':
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("decode graph: %w", err)
		}
	default:
		var parts []json.RawMessage
		if err := json.Unmarshal(data, &parts); err != nil {
			return fmt.Errorf("decode graph: %w", err)
		}
		if len(parts) != 2 {
			return fmt.Errorf("decode graph: want [vertices, edges], got %d elements", len(parts))
		}
		if err := json.Unmarshal(parts[0], &obj.Vertices); err != nil {
			return fmt.Errorf("decode vertices: %w", err)
		}
		if err := json.Unmarshal(parts[1], &obj.Edges); err != nil {
			return fmt.Errorf("decode edges: %w", err)
		}
	}

	edges := make([]Edge[V], len(obj.Edges))
	for i, e := range obj.Edges {
		edges[i] = Edge[V]{From: e[0], To: e[1]}
	}
	built, err := New(obj.Vertices, edges)
	if err != nil {
		return fmt.Errorf("decode graph: %w", err)
	}
	*g = *built
	return nil
}

// Dumps serializes the graph to its JSON string form.
func (g *Graph[V]) Dumps() (string, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Loads parses a graph produced by [Graph.Dumps]. The result compares
// [Graph.Equal] to the original regardless of list order.
func Loads[V comparable](s string) (*Graph[V], error) {
	g := Empty[V]()
	if err := json.Unmarshal([]byte(s), g); err != nil {
		return nil, err
	}
	return g, nil
}

// MarshalJSON encodes the mapping as a list of [source, target] pairs
// sorted by source.
func (s *Isomorphism[V]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Pairs())
}

// UnmarshalJSON decodes a list of [source, target] pairs. A source listed
// twice is rejected with ErrInvalidMapping.
func (s *Isomorphism[V]) UnmarshalJSON(data []byte) error {
	var pairs [][2]V
	if err := json.Unmarshal(data, &pairs); err != nil {
		return fmt.Errorf("decode mapping: %w", err)
	}
	m := make(map[V]V, len(pairs))
	for _, p := range pairs {
		if _, dup := m[p[0]]; dup {
			return fmt.Errorf("decode mapping: source %v listed twice: %w", p[0], ErrInvalidMapping)
		}
		m[p[0]] = p[1]
	}
	s.m = m
	return nil
}

// Dumps serializes the mapping to its JSON string form.
func (s *Isomorphism[V]) Dumps() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadsIsomorphism parses a mapping produced by [Isomorphism.Dumps].
func LoadsIsomorphism[V comparable](s string) (*Isomorphism[V], error) {
	var out Isomorphism[V]
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// compareFormatted orders values by their printed form, numerically when
// both print as numbers.
func compareFormatted[V any](a, b V) int {
	sa, sb := fmt.Sprint(a), fmt.Sprint(b)
	if na, err := strconv.ParseFloat(sa, 64); err == nil {
		if nb, err := strconv.ParseFloat(sb, 64); err == nil && na != nb {
			return cmp.Compare(na, nb)
		}
	}
	return strings.Compare(sa, sb)
}
