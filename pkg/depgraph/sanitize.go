package depgraph

import "strings"

// NodeName converts a library filename into a graph-safe node identifier.
// Every character outside [0-9A-Za-z] becomes an underscore, so "libB.so"
// yields "libB_so" and "ld-linux-x86-64.so.2" yields "ld_linux_x86_64_so_2".
//
// Identity is the base filename, not the full path: two different paths with
// the same filename collapse into a single node. That collapse is intended —
// a soname names one logical library regardless of where it was resolved.
func NodeName(file string) string {
	var b strings.Builder
	b.Grow(len(file))
	for _, r := range file {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
