// Package depgraph discovers the shared-library dependency graph of an ELF
// binary.
//
// A Walker recursively follows DT_NEEDED entries, resolving each soname to a
// file through a Locator and reading symbols through an elfsym.Inspector.
// Graph elements stream to an Emitter as they are discovered: each unique
// library produces one node, and every traversal of a dependency produces an
// edge — a library reached along several paths is declared once but its
// incoming edges repeat, and its subtree is expanded again. That re-expansion
// is the point: the emitted graph shows every dependency path, not a spanning
// tree.
//
// The walk is depth-first and pre-order, following NEEDED listing order
// within each file. It is strictly sequential; the only blocking points are
// file reads and the locator's linker-cache query.
package depgraph

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sograph/sograph/pkg/elfsym"
)

// DefaultMaxDepth effectively leaves the walk unbounded; real dependency
// chains are far shallower.
const DefaultMaxDepth = 1000

// Node describes one shared library discovered during a walk.
type Node struct {
	Name      string // sanitized node identifier, unique per base filename
	Path      string // resolved filesystem path
	File      string // base filename
	Functions int    // exported function count; 0 also covers stripped files
	Group     int    // group index, or Ungrouped
	Color     string // fill color derived from the group
}

// Edge links a dependent library to one of its dependencies. The same pair
// appears once per traversal path that reaches it.
type Edge struct {
	From      string // parent node name
	To        string // child node name
	Called    int    // parent imports matched by the child's exports
	SameGroup bool   // both endpoints share a non-Ungrouped group
}

// Emitter receives graph elements as the walker discovers them. AddNode
// fires once per unique node name; AddEdge fires once per traversal, so
// duplicate edges are expected and must not be collapsed by implementations
// that preserve walk semantics.
type Emitter interface {
	AddNode(n Node) error
	AddEdge(e Edge) error
}

// Visit describes one step of the walk for progress reporting. Revisits of
// an already-declared node are reported too.
type Visit struct {
	Node  Node
	Level int // distance from the root binary
}

// Locator resolves sonames to filesystem paths.
type Locator interface {
	Locate(ctx context.Context, soname string) (string, error)
}

// Options configures a dependency walk.
type Options struct {
	Groups  *Groups              // path-substring grouping (default: none)
	OnVisit func(Visit)          // called for every visit (optional)
	Warnf   func(string, ...any) // diagnostics callback (optional)
}

// WithDefaults returns a copy of Options with nil callbacks replaced by
// no-ops and a nil group set replaced by an empty one.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Groups == nil {
		opts.Groups = NewGroups(nil, nil)
	}
	if opts.OnVisit == nil {
		opts.OnVisit = func(Visit) {}
	}
	if opts.Warnf == nil {
		opts.Warnf = func(string, ...any) {}
	}
	return opts
}

// Walker discovers dependency graphs. Construct with New; a Walker is
// stateless and may be reused across walks.
type Walker struct {
	inspector elfsym.Inspector
	locator   Locator
}

// New creates a Walker reading symbols through ins and resolving sonames
// through loc.
func New(ins elfsym.Inspector, loc Locator) *Walker {
	return &Walker{inspector: ins, locator: loc}
}

// Walk traverses the dependency graph rooted at path, streaming nodes and
// edges to emit. depth bounds the recursion: 1 emits only the root, 0 or
// less emits nothing at all.
//
// The root file must be readable as ELF or Walk returns an error. Failures
// below the root — unresolved sonames, unreadable dependencies — are
// reported through opts.Warnf and prune only the affected branch. Emitter
// errors and context cancellation abort the walk.
func (w *Walker) Walk(ctx context.Context, path string, depth int, emit Emitter, opts Options) error {
	s := &walkState{
		w:       w,
		emit:    emit,
		opts:    opts.WithDefaults(),
		visited: make(map[string]bool),
	}
	return s.visit(ctx, path, depth, nil)
}

// walkState carries the per-run mutable state: the visited set gating node
// declarations and the ancestor stack guarding against cycles.
type walkState struct {
	w       *Walker
	emit    Emitter
	opts    Options
	visited map[string]bool
	stack   []string // node names on the current ancestor path
}

func (s *walkState) visit(ctx context.Context, path string, depth int, parent *Node) error {
	if depth <= 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	file := filepath.Base(path)
	exports, err := s.w.inspector.ExportedFunctions(path)
	if err != nil {
		if parent == nil {
			return fmt.Errorf("inspect %s: %w", path, err)
		}
		s.opts.Warnf("skipping %s: %v", path, err)
		return nil
	}

	group := s.opts.Groups.Index(path)
	node := Node{
		Name:      NodeName(file),
		Path:      path,
		File:      file,
		Functions: len(exports),
		Group:     group,
		Color:     s.opts.Groups.Color(group),
	}

	if !s.visited[node.Name] {
		s.visited[node.Name] = true
		if err := s.emit.AddNode(node); err != nil {
			return err
		}
		if node.Functions == 0 {
			s.opts.Warnf("no exported functions found in %s (stripped, or exports nothing)", file)
		}
	}

	if parent != nil {
		called, err := elfsym.CalledCount(s.w.inspector, parent.Path, path)
		switch {
		case err != nil:
			s.opts.Warnf("cannot estimate calls %s -> %s: %v", parent.File, file, err)
		case called == 0:
			s.opts.Warnf("no called functions found in %s (from %s)", file, parent.File)
		}
		edge := Edge{
			From:      parent.Name,
			To:        node.Name,
			Called:    called,
			SameGroup: parent.Group != Ungrouped && parent.Group == node.Group,
		}
		if err := s.emit.AddEdge(edge); err != nil {
			return err
		}
	}

	s.opts.OnVisit(Visit{Node: node, Level: len(s.stack)})

	// A library on its own dependency chain would otherwise re-expand until
	// the depth bound runs out. The back-edge above is still emitted; only
	// the recursion stops here.
	if s.onStack(node.Name) {
		s.opts.Warnf("dependency cycle: %s -> %s", strings.Join(s.stack, " -> "), node.Name)
		return nil
	}

	needed, err := s.w.inspector.Needed(path)
	if err != nil {
		s.opts.Warnf("cannot read dependencies of %s: %v", file, err)
		return nil
	}

	s.stack = append(s.stack, node.Name)
	defer func() { s.stack = s.stack[:len(s.stack)-1] }()

	for _, soname := range needed {
		child, err := s.w.locator.Locate(ctx, soname)
		if err != nil {
			s.opts.Warnf("cannot locate %s (needed by %s)", soname, file)
			continue
		}
		if err := s.visit(ctx, child, depth-1, &node); err != nil {
			return err
		}
	}
	return nil
}

func (s *walkState) onStack(name string) bool {
	for _, n := range s.stack {
		if n == name {
			return true
		}
	}
	return false
}
