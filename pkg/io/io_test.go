package io

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/arbor/pkg/graph"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"g.json", FormatJSON},
		{"keys.TOML", FormatTOML},
		{"dir.toml/g", FormatJSON},
		{"g", FormatJSON},
	}
	for _, tt := range tests {
		if got := FormatFromPath(tt.path); got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
	if _, err := ParseFormat("yaml"); err == nil {
		t.Error("ParseFormat(yaml) expected error")
	}
	if f, err := ParseFormat("TOML"); err != nil || f != FormatTOML {
		t.Errorf("ParseFormat(TOML) = %v, %v", f, err)
	}
}

func TestReadGraph(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"json pairs", `[[1, "a", 2], [[1, "a"], ["a", 2]]]`, FormatJSON},
		{"json object", `{"vertices": [1, "a", 2], "edges": [[1, "a"], ["a", 2]]}`, FormatJSON},
		{"toml", "vertices = [1, \"a\", 2]\nedges = [[1, \"a\"], [\"a\", 2]]\n", FormatTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := ReadGraph(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("ReadGraph() error: %v", err)
			}
			if g.VertexCount() != 3 || g.EdgeCount() != 2 {
				t.Errorf("got %d vertices, %d edges; want 3, 2", g.VertexCount(), g.EdgeCount())
			}
			if !g.HasEdge(graph.StringLabel("a"), graph.IntLabel(1)) {
				t.Error("missing edge a-1")
			}
			if g.HasVertex(graph.StringLabel("1")) {
				t.Error(`string "1" should not match numeric 1`)
			}
		})
	}
}

func TestReadGraphErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		format  Format
		wantErr error
	}{
		{"bad json", `[[1, 2]`, FormatJSON, ErrFormat},
		{"unknown endpoint", `[[1], [[1, 2]]]`, FormatJSON, graph.ErrVertexNotFound},
		{"bad toml", `vertices = [`, FormatTOML, ErrFormat},
		{"toml short edge", "vertices = [1]\nedges = [[1]]\n", FormatTOML, ErrFormat},
		{"toml unknown endpoint", "vertices = [1]\nedges = [[1, 2]]\n", FormatTOML, graph.ErrVertexNotFound},
		{"toml infinite vertex", "vertices = [inf]\n", FormatTOML, ErrFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(strings.NewReader(tt.input), tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ReadGraph() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrFormat) {
				t.Errorf("ReadGraph() error = %v, want ErrFormat in chain", err)
			}
		})
	}
}

func TestGraphRoundTrip(t *testing.T) {
	in := `[[0,"x",2,3],[[0,"x"],["x",2],[3,0]]]`
	g, err := ReadGraph(strings.NewReader(in), FormatJSON)
	if err != nil {
		t.Fatalf("ReadGraph() error: %v", err)
	}
	for _, format := range []Format{FormatJSON, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteGraph(g, &buf, format); err != nil {
				t.Fatalf("WriteGraph() error: %v", err)
			}
			back, err := ReadGraph(&buf, format)
			if err != nil {
				t.Fatalf("ReadGraph() error: %v\n%s", err, buf.String())
			}
			if !back.Equal(g) {
				t.Errorf("round trip mismatch")
			}
		})
	}

	var buf bytes.Buffer
	_ = WriteGraph(g, &buf, FormatJSON)
	if got := strings.TrimSpace(buf.String()); got != in {
		t.Errorf("WriteGraph(json) = %s, want %s", got, in)
	}
}

func TestImportExportGraph(t *testing.T) {
	dir := t.TempDir()
	g, _ := graph.Loads[graph.Label](`[[1,2,3],[[1,2],[2,3]]]`)
	for _, name := range []string{"g.json", "g.toml"} {
		path := filepath.Join(dir, name)
		if err := ExportGraph(g, path); err != nil {
			t.Fatalf("ExportGraph(%s) error: %v", name, err)
		}
		back, err := ImportGraph(path)
		if err != nil {
			t.Fatalf("ImportGraph(%s) error: %v", name, err)
		}
		if !back.Equal(g) {
			t.Errorf("%s: round trip mismatch", name)
		}
	}

	if _, err := ImportGraph(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ImportGraph(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestReadKeyPair(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"json array", `[[[1,2,3],[[1,2],[2,3]]], [["a","b","c"],[["b","a"],["b","c"]]]]`, FormatJSON},
		{"json object", `{"g0": {"vertices":[1,2,3],"edges":[[1,2],[2,3]]}, "g1": [["a","b","c"],[["b","a"],["b","c"]]]}`, FormatJSON},
		{"toml", `
[g0]
vertices = [1, 2, 3]
edges = [[1, 2], [2, 3]]

[g1]
vertices = ["a", "b", "c"]
edges = [["b", "a"], ["b", "c"]]
`, FormatTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, err := ReadKeyPair(strings.NewReader(tt.input), tt.format)
			if err != nil {
				t.Fatalf("ReadKeyPair() error: %v", err)
			}
			if k.G0.VertexCount() != 3 || k.G1.VertexCount() != 3 {
				t.Errorf("vertex counts = %d, %d; want 3, 3", k.G0.VertexCount(), k.G1.VertexCount())
			}
			if !k.G1.HasEdge(graph.StringLabel("a"), graph.StringLabel("b")) {
				t.Error("g1 missing edge a-b")
			}
		})
	}
}

func TestReadKeyPairErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		format Format
	}{
		{"one graph", `[[[1],[]]]`, FormatJSON},
		{"missing g1", `{"g0": [[1],[]]}`, FormatJSON},
		{"toml missing g1", "[g0]\nvertices = [1]\n", FormatTOML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadKeyPair(strings.NewReader(tt.input), tt.format); !errors.Is(err, ErrFormat) {
				t.Errorf("ReadKeyPair() error = %v, want ErrFormat", err)
			}
		})
	}
}

func TestKeyPairRoundTrip(t *testing.T) {
	g0, _ := graph.Loads[graph.Label](`[[1,2],[[1,2]]]`)
	g1, _ := graph.Loads[graph.Label](`[["x","y"],[["y","x"]]]`)
	dir := t.TempDir()
	for _, name := range []string{"keys.json", "keys.toml"} {
		path := filepath.Join(dir, name)
		if err := ExportKeyPair(KeyPair{G0: g0, G1: g1}, path); err != nil {
			t.Fatalf("ExportKeyPair(%s) error: %v", name, err)
		}
		k, err := ImportKeyPair(path)
		if err != nil {
			t.Fatalf("ImportKeyPair(%s) error: %v", name, err)
		}
		if !k.G0.Equal(g0) || !k.G1.Equal(g1) {
			t.Errorf("%s: round trip mismatch", name)
		}
	}
}

func TestMappingRoundTrip(t *testing.T) {
	s := graph.NewIsomorphism(map[graph.Label]graph.Label{
		graph.IntLabel(1):      graph.StringLabel("a"),
		graph.StringLabel("b"): graph.IntLabel(2),
	})
	dir := t.TempDir()
	for _, name := range []string{"map.json", "map.toml"} {
		path := filepath.Join(dir, name)
		if err := ExportMapping(s, path); err != nil {
			t.Fatalf("ExportMapping(%s) error: %v", name, err)
		}
		back, err := ImportMapping(path)
		if err != nil {
			t.Fatalf("ImportMapping(%s) error: %v", name, err)
		}
		if !back.Equal(s) {
			t.Errorf("%s: round trip = %v, want %v", name, back, s)
		}
	}
}

func TestReadMappingDuplicateSource(t *testing.T) {
	inputs := map[Format]string{
		FormatJSON: `[[1, 2], [1, 3]]`,
		FormatTOML: "pairs = [[1, 2], [1, 3]]\n",
	}
	for format, input := range inputs {
		_, err := ReadMapping(strings.NewReader(input), format)
		if !errors.Is(err, graph.ErrInvalidMapping) {
			t.Errorf("%s: ReadMapping() error = %v, want ErrInvalidMapping", format, err)
		}
	}
}

func TestGraphCrossFormatRoundTrip(t *testing.T) {
	g, err := graph.Loads[graph.Label](`[[1.0, 2, 1e2, 2.5, "x"], [[1.0, 2], [2, 1e2], [1e2, 2.5], [2.5, "x"]]]`)
	if err != nil {
		t.Fatalf("Loads() error: %v", err)
	}
	for _, format := range []Format{FormatTOML, FormatJSON} {
		var buf bytes.Buffer
		if err := WriteGraph(g, &buf, format); err != nil {
			t.Fatalf("WriteGraph(%s) error: %v", format, err)
		}
		back, err := ReadGraph(&buf, format)
		if err != nil {
			t.Fatalf("ReadGraph(%s) error: %v", format, err)
		}
		if !g.Equal(back) {
			t.Errorf("%s round trip changed the graph: %v -> %v", format, g.Vertices(), back.Vertices())
		}
	}
}
