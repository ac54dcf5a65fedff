package cli

import (
	"slices"
	"testing"

	"github.com/sograph/sograph/internal/config"
	"github.com/sograph/sograph/pkg/depgraph"
)

func changedNone(string) bool { return false }
func changedAll(string) bool  { return true }

func TestApplyConfigDefaults(t *testing.T) {
	opts := scanOpts{depth: depgraph.DefaultMaxDepth, output: defaultOutput}
	cfg := config.Config{Depth: 64, Output: "deps.dot"}

	applyConfig(&opts, cfg, changedNone)

	if opts.depth != 64 {
		t.Errorf("depth = %d, want 64 (config should override built-in default)", opts.depth)
	}
	if opts.output != "deps.dot" {
		t.Errorf("output = %q, want %q", opts.output, "deps.dot")
	}
}

func TestApplyConfigFlagsWin(t *testing.T) {
	opts := scanOpts{depth: 3, output: "mine.dot"}
	cfg := config.Config{Depth: 64, Output: "deps.dot"}

	applyConfig(&opts, cfg, changedAll)

	if opts.depth != 3 {
		t.Errorf("depth = %d, want 3 (explicit flag should win over config)", opts.depth)
	}
	if opts.output != "mine.dot" {
		t.Errorf("output = %q, want %q", opts.output, "mine.dot")
	}
}

func TestApplyConfigGroupsConcatenate(t *testing.T) {
	opts := scanOpts{groups: []string{"/usr/lib"}}
	cfg := config.Config{Groups: []string{"/opt", "/srv"}}

	applyConfig(&opts, cfg, changedNone)

	want := []string{"/usr/lib", "/opt", "/srv"}
	if !slices.Equal(opts.groups, want) {
		t.Errorf("groups = %v, want %v (CLI groups keep the earlier palette colors)", opts.groups, want)
	}
}

func TestApplyConfigZeroConfig(t *testing.T) {
	opts := scanOpts{depth: depgraph.DefaultMaxDepth, output: defaultOutput}

	applyConfig(&opts, config.Config{}, changedNone)

	if opts.depth != depgraph.DefaultMaxDepth {
		t.Errorf("depth = %d, want %d", opts.depth, depgraph.DefaultMaxDepth)
	}
	if opts.output != defaultOutput {
		t.Errorf("output = %q, want %q", opts.output, defaultOutput)
	}
}

func TestGroupLabel(t *testing.T) {
	if got := groupLabel(depgraph.Ungrouped); got != "ungrouped" {
		t.Errorf("groupLabel(Ungrouped) = %q, want %q", got, "ungrouped")
	}
	if got := groupLabel(2); got != "group 2" {
		t.Errorf("groupLabel(2) = %q, want %q", got, "group 2")
	}
}
