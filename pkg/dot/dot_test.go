package dot

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sograph/sograph/pkg/depgraph"
)

func TestDocumentWrapper(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	if err := w.Open(); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "digraph G {") {
		t.Errorf("output should open a digraph, got %q", out)
	}
	if !strings.Contains(out, "rankdir=LR") {
		t.Error("output should set left-to-right rank direction")
	}
	if !strings.Contains(out, `style="rounded,filled,bold"`) {
		t.Error("output should set the default node style")
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Errorf("output should end with the closing brace, got %q", out)
	}
}

func TestAddNode(t *testing.T) {
	tests := []struct {
		name string
		node depgraph.Node
		want []string
	}{
		{
			"with functions",
			depgraph.Node{Name: "libB_so", Path: "/lib/libB.so", File: "libB.so", Functions: 2, Color: "lightblue"},
			[]string{`"libB_so" [fillcolor="lightblue"`, `label="libB.so\n/lib/libB.so\n2 functions"`},
		},
		{
			"no functions",
			depgraph.Node{Name: "libX_so", Path: "/lib/libX.so", File: "libX.so", Functions: 0, Color: "white"},
			[]string{`label="libX.so\n/lib/libX.so\nNo functions found"`},
		},
		{
			"quote in path",
			depgraph.Node{Name: "odd_so", Path: `/tmp/we"ird/odd.so`, File: "odd.so", Functions: 1, Color: "white"},
			[]string{`/tmp/we\"ird/odd.so`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewWriter(&buf).AddNode(tt.node); err != nil {
				t.Fatalf("AddNode failed: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %q should contain %q", buf.String(), want)
				}
			}
		})
	}
}

func TestAddEdge(t *testing.T) {
	tests := []struct {
		name string
		edge depgraph.Edge
		want []string
	}{
		{
			"called, different groups",
			depgraph.Edge{From: "app", To: "libB_so", Called: 3},
			[]string{`"app" -> "libB_so"`, `label="3 called"`, `style="solid"`, "color=gray40", "fontcolor=gray40"},
		},
		{
			"no calls",
			depgraph.Edge{From: "app", To: "libB_so", Called: 0},
			[]string{`label="0 called"`, `style="dashed"`},
		},
		{
			"same group",
			depgraph.Edge{From: "libA_so", To: "libB_so", Called: 1, SameGroup: true},
			[]string{`style="solid,bold"`, "color=black", "fontcolor=black"},
		},
		{
			"same group, no calls",
			depgraph.Edge{From: "libA_so", To: "libB_so", Called: 0, SameGroup: true},
			[]string{`style="dashed,bold"`, "color=black"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := NewWriter(&buf).AddEdge(tt.edge); err != nil {
				t.Fatalf("AddEdge failed: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output %q should contain %q", buf.String(), want)
				}
			}
		})
	}
}

// Duplicate edges must survive: the walker re-emits an edge per traversal
// path and the writer may not collapse them.
func TestDuplicateEdgesKept(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	e := depgraph.Edge{From: "a", To: "b", Called: 1}
	if err := w.AddEdge(e); err != nil {
		t.Fatal(err)
	}
	if err := w.AddEdge(e); err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(buf.String(), `"a" -> "b"`); got != 2 {
		t.Errorf("edge statement count = %d, want 2", got)
	}
}
