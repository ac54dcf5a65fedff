package depgraph

import "testing"

func TestGroupsIndex(t *testing.T) {
	g := NewGroups([]string{"/usr/lib", "/lib", "/opt"}, nil)

	tests := []struct {
		name string
		path string
		want int
	}{
		{"first group", "/usr/lib/libz.so.1", 0},
		// "/usr/lib/..." also contains "/lib"; the earliest declaration wins.
		{"first match wins", "/usr/lib/x86_64-linux-gnu/libm.so.6", 0},
		{"second group", "/lib64/ld-linux.so.2", 1},
		{"third group", "/opt/app/libapp.so", 2},
		{"no match", "/home/user/libfoo.so", Ungrouped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.Index(tt.path); got != tt.want {
				t.Errorf("Index(%q) = %d, want %d", tt.path, got, tt.want)
			}
		})
	}
}

func TestGroupsIndexNoGroups(t *testing.T) {
	g := NewGroups(nil, nil)
	if got := g.Index("/usr/lib/libz.so.1"); got != Ungrouped {
		t.Errorf("Index with no groups = %d, want Ungrouped", got)
	}
}

func TestGroupsColor(t *testing.T) {
	g := NewGroups(make([]string, 20), nil)

	if got := g.Color(0); got != Palette[0] {
		t.Errorf("Color(0) = %q, want %q", got, Palette[0])
	}
	if got := g.Color(15); got != Palette[15] {
		t.Errorf("Color(15) = %q, want %q", got, Palette[15])
	}
	// The palette wraps after 16 groups.
	if got := g.Color(16); got != Palette[0] {
		t.Errorf("Color(16) = %q, want %q", got, Palette[0])
	}
	if got := g.Color(Ungrouped); got != UngroupedColor {
		t.Errorf("Color(Ungrouped) = %q, want %q", got, UngroupedColor)
	}
}

func TestGroupsCustomPalette(t *testing.T) {
	g := NewGroups([]string{"/a", "/b", "/c"}, []string{"red", "green"})

	if got := g.Color(1); got != "green" {
		t.Errorf("Color(1) = %q, want %q", got, "green")
	}
	if got := g.Color(2); got != "red" {
		t.Errorf("Color(2) = %q, want custom palette to wrap to %q", got, "red")
	}
}

func TestPaletteSize(t *testing.T) {
	if len(Palette) != 16 {
		t.Errorf("Palette has %d colors, want 16", len(Palette))
	}
}
