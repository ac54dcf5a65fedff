package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sograph/sograph/pkg/depgraph"
)

// exploreGraph builds app -> {libA, libB}, libA -> libC.
func exploreGraph(t *testing.T) *depgraph.Graph {
	t.Helper()
	g := depgraph.NewGraph()
	nodes := []depgraph.Node{
		{Name: "app", File: "app", Path: "/bin/app", Functions: 1},
		{Name: "libA_so", File: "libA.so", Path: "/lib/libA.so", Functions: 4},
		{Name: "libB_so", File: "libB.so", Path: "/lib/libB.so", Functions: 2},
		{Name: "libC_so", File: "libC.so", Path: "/lib/libC.so", Functions: 3},
	}
	for _, n := range nodes {
		if err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	edges := []depgraph.Edge{
		{From: "app", To: "libA_so"},
		{From: "app", To: "libB_so"},
		{From: "libA_so", To: "libC_so"},
	}
	for _, e := range edges {
		if err := g.AddEdge(e); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(t *testing.T, m tea.Model, msg tea.Msg) exploreModel {
	t.Helper()
	next, _ := m.Update(msg)
	em, ok := next.(exploreModel)
	if !ok {
		t.Fatalf("Update returned %T, want exploreModel", next)
	}
	return em
}

func TestExploreModelInitialRows(t *testing.T) {
	m := newExploreModel(exploreGraph(t))

	// Root starts expanded: app plus its two direct dependencies.
	if len(m.rows) != 3 {
		t.Fatalf("row count = %d, want 3", len(m.rows))
	}
	if m.rows[0].name != "app" || m.rows[0].level != 0 {
		t.Errorf("row 0 = %+v, want app at level 0", m.rows[0])
	}
	if m.rows[1].name != "libA_so" || m.rows[1].level != 1 {
		t.Errorf("row 1 = %+v, want libA_so at level 1", m.rows[1])
	}
}

func TestExploreModelExpandCollapse(t *testing.T) {
	m := newExploreModel(exploreGraph(t))

	// Move to libA_so and expand it: libC_so appears.
	m = update(t, m, key("j"))
	m = update(t, m, key("enter"))
	if len(m.rows) != 4 {
		t.Fatalf("row count after expand = %d, want 4", len(m.rows))
	}
	if m.rows[2].name != "libC_so" || m.rows[2].level != 2 {
		t.Errorf("row 2 = %+v, want libC_so at level 2", m.rows[2])
	}

	// Collapse again.
	m = update(t, m, key("enter"))
	if len(m.rows) != 3 {
		t.Errorf("row count after collapse = %d, want 3", len(m.rows))
	}
}

func TestExploreModelLeafEnterNoop(t *testing.T) {
	m := newExploreModel(exploreGraph(t))

	m = update(t, m, key("j"))
	m = update(t, m, key("j")) // libB_so, a leaf
	before := len(m.rows)
	m = update(t, m, key("enter"))
	if len(m.rows) != before {
		t.Errorf("row count changed on leaf expand: %d -> %d", before, len(m.rows))
	}
}

func TestExploreModelCursorBounds(t *testing.T) {
	m := newExploreModel(exploreGraph(t))

	m = update(t, m, key("k"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 (must not move above the first row)", m.cursor)
	}
	for i := 0; i < 10; i++ {
		m = update(t, m, key("j"))
	}
	if m.cursor != len(m.rows)-1 {
		t.Errorf("cursor = %d, want %d (must not move past the last row)", m.cursor, len(m.rows)-1)
	}
}

func TestExploreModelView(t *testing.T) {
	m := newExploreModel(exploreGraph(t))

	view := m.View()
	for _, want := range []string{"Dependency Explorer", "app", "libA.so", "libB.so", "/lib/libA.so"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q", want)
		}
	}
}

func TestExploreModelQuit(t *testing.T) {
	m := newExploreModel(exploreGraph(t))

	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
}
