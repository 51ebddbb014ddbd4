package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/arbor/pkg/forest"
	"github.com/matzehuels/arbor/pkg/graph"
)

// palette holds the cluster fill colors, reused cyclically.
var palette = []string{
	"#dbeafe", "#dcfce7", "#fef9c3", "#fce7f3", "#ede9fe", "#ffedd5", "#ccfbf1", "#f1f5f9",
}

// Options configures forest rendering.
type Options[V comparable] struct {
	// Title is drawn above the diagram when non-empty.
	Title string

	// Mapping, when set, appends the image of each vertex to its label.
	Mapping *graph.Isomorphism[V]

	// MarkCenters outlines the center vertices of every tree.
	MarkCenters bool
}

// ToDOT converts a forest to undirected Graphviz DOT source. Trees are
// emitted in discovery order, one cluster each.
func ToDOT[V comparable](f *forest.Forest[V], opts Options[V]) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	writeHeader(&buf, opts.Title)
	writeForest(&buf, f, "", opts)
	buf.WriteString("}\n")
	return buf.String()
}

// PairDOT draws src and dst next to each other. Every pair of s becomes a
// dashed arrow from the source vertex to its image. Vertex ids are
// prefixed with "L:" and "R:" so the two sides never collide.
func PairDOT[V comparable](src, dst *forest.Forest[V], s *graph.Isomorphism[V], title string) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	writeHeader(&buf, title)
	buf.WriteString("  rankdir=LR;\n\n")

	buf.WriteString("  subgraph cluster_left {\n    label=\"source\";\n")
	writeForest(&buf, src, "L:", Options[V]{})
	buf.WriteString("  }\n")
	buf.WriteString("  subgraph cluster_right {\n    label=\"target\";\n")
	writeForest(&buf, dst, "R:", Options[V]{})
	buf.WriteString("  }\n")

	if s != nil {
		buf.WriteString("\n")
		for _, p := range s.Pairs() {
			fmt.Fprintf(&buf, "  %q -- %q [style=dashed, color=\"#64748b\", dir=forward, constraint=false];\n",
				"L:"+fmt.Sprint(p[0]), "R:"+fmt.Sprint(p[1]))
		}
	}
	buf.WriteString("}\n")
	return buf.String()
}

func writeHeader(buf *bytes.Buffer, title string) {
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=14];\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("  ranksep=0.5;\n")
	if title != "" {
		fmt.Fprintf(buf, "  label=%q;\n  labelloc=t;\n", title)
	}
	buf.WriteString("\n")
}

// writeForest writes one cluster per tree followed by the edges. Vertex
// ids are prefix + the formatted vertex.
func writeForest[V comparable](buf *bytes.Buffer, f *forest.Forest[V], prefix string, opts Options[V]) {
	i := 0
	for tree := range f.Trees() {
		centers := map[V]bool{}
		if opts.MarkCenters {
			for _, c := range tree.Center() {
				centers[c] = true
			}
		}
		color := palette[i%len(palette)]
		fmt.Fprintf(buf, "  subgraph cluster_%s%d {\n", clusterPrefix(prefix), i)
		buf.WriteString("    style=\"rounded,dashed\";\n    color=\"#cbd5e1\";\n    label=\"\";\n")
		for _, v := range tree.Vertices() {
			attrs := fmtAttrs(v, opts.Mapping, color, centers[v])
			fmt.Fprintf(buf, "    %q [%s];\n", prefix+fmt.Sprint(v), strings.Join(attrs, ", "))
		}
		buf.WriteString("  }\n")
		i++
	}
	buf.WriteString("\n")
	for _, e := range f.Edges() {
		fmt.Fprintf(buf, "  %q -- %q;\n", prefix+fmt.Sprint(e.From), prefix+fmt.Sprint(e.To))
	}
}

func clusterPrefix(prefix string) string {
	return strings.TrimSuffix(strings.ToLower(prefix), ":")
}

func fmtLabel[V comparable](v V, s *graph.Isomorphism[V]) string {
	label := fmt.Sprint(v)
	if s == nil {
		return label
	}
	if img, ok := s.Apply(v); ok {
		return label + "\n→ " + fmt.Sprint(img)
	}
	return label
}

func fmtAttrs[V comparable](v V, s *graph.Isomorphism[V], color string, center bool) []string {
	attrs := []string{
		fmt.Sprintf("label=%q", fmtLabel(v, s)),
		fmt.Sprintf("fillcolor=%q", color),
	}
	if center {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}
