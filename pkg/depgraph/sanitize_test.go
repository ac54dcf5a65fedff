package depgraph

import "testing"

func TestNodeName(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{"simple soname", "libB.so", "libB_so"},
		{"versioned soname", "libc.so.6", "libc_so_6"},
		{"dashes and dots", "ld-linux-x86-64.so.2", "ld_linux_x86_64_so_2"},
		{"plus signs", "libstdc++.so.6", "libstdc___so_6"},
		{"already clean", "app", "app"},
		{"digits kept", "lib64z1", "lib64z1"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NodeName(tt.file); got != tt.want {
				t.Errorf("NodeName(%q) = %q, want %q", tt.file, got, tt.want)
			}
		})
	}
}

// Distinct paths sharing a base filename sanitize to the same identity; the
// walker relies on this to collapse them into one node.
func TestNodeNameCollision(t *testing.T) {
	a := NodeName("libz.so.1")
	b := NodeName("libz/so_1")
	if a != b {
		t.Errorf("NodeName collision expected: %q vs %q", a, b)
	}
}
