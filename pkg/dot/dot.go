// Package dot writes Graphviz descriptions of library dependency graphs.
//
// Writer streams statements as a walk progresses instead of buffering the
// whole document, so output flushed before a failure stays on disk. Only a
// walk that runs to completion produces the closing brace; an interrupted
// run leaves a truncated description.
package dot

import (
	"fmt"
	"io"
	"strings"

	"github.com/sograph/sograph/pkg/depgraph"
)

// header opens the document: a directed graph laid out left to right, nodes
// drawn as rounded, filled boxes with bold black borders and black text.
const header = `digraph G {
  rankdir=LR;
  node [shape=box, style="rounded,filled,bold", color=black, fontcolor=black];

`

// Writer emits DOT statements incrementally. It implements
// [depgraph.Emitter]: AddNode writes one node declaration, AddEdge one edge
// statement — duplicate edges are written as-is, never collapsed.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w. The caller owns w and closes it after Close.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Open writes the document header. It must be called once, before any node
// or edge.
func (d *Writer) Open() error {
	_, err := io.WriteString(d.w, header)
	return err
}

// AddNode writes a node declaration: fill color from the node's group and a
// three-line label of filename, path, and exported-function count.
func (d *Writer) AddNode(n depgraph.Node) error {
	_, err := fmt.Fprintf(d.w, "  \"%s\" [fillcolor=\"%s\", label=\"%s\\n%s\\n%s\"];\n",
		n.Name, escape(n.Color), escape(n.File), escape(n.Path), functionsLabel(n.Functions))
	return err
}

// AddEdge writes an edge statement labeled with the called-function
// estimate. Zero-call edges are dashed; edges inside one group are bold and
// black, all others dark grey. The label color follows the edge color.
func (d *Writer) AddEdge(e depgraph.Edge) error {
	style := "solid"
	if e.Called == 0 {
		style = "dashed"
	}
	color := "gray40"
	if e.SameGroup {
		style += ",bold"
		color = "black"
	}
	_, err := fmt.Fprintf(d.w, "  \"%s\" -> \"%s\" [label=\"%d called\", style=\"%s\", color=%s, fontcolor=%s];\n",
		e.From, e.To, e.Called, style, color, color)
	return err
}

// Close writes the closing brace, completing the document.
func (d *Writer) Close() error {
	_, err := io.WriteString(d.w, "}\n")
	return err
}

func functionsLabel(n int) string {
	if n == 0 {
		return "No functions found"
	}
	return fmt.Sprintf("%d functions", n)
}

// escape makes s safe inside a double-quoted DOT string.
func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return s
}
