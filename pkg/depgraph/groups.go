package depgraph

import "strings"

// Ungrouped marks a library whose path matches no group substring. It is a
// distinct value, not group zero: ungrouped nodes render white and never
// count as sharing a group.
const Ungrouped = -1

// UngroupedColor fills nodes that belong to no group.
const UngroupedColor = "white"

// Palette is the default fill-color cycle for groups. A group's position in
// the command-line order selects its color; the palette wraps around when
// more groups are defined than colors exist.
var Palette = []string{
	"lightblue",
	"lightyellow",
	"lightgreen",
	"lightpink",
	"lightcyan",
	"lightsalmon",
	"palegreen",
	"paleturquoise",
	"palegoldenrod",
	"peachpuff",
	"lavender",
	"mistyrose",
	"thistle",
	"wheat",
	"khaki",
	"plum",
}

// Groups classifies library paths by ordered substring matching. Order
// matters twice: the first matching substring wins, and a group's position
// selects its palette color. The zero value is unusable; use NewGroups.
type Groups struct {
	subs    []string
	palette []string
}

// NewGroups builds a group set from path substrings. A nil or empty palette
// falls back to the package default.
func NewGroups(subs, palette []string) *Groups {
	if len(palette) == 0 {
		palette = Palette
	}
	return &Groups{subs: subs, palette: palette}
}

// Index returns the position of the first group whose substring occurs
// anywhere in path, or Ungrouped when none match.
func (g *Groups) Index(path string) int {
	for i, sub := range g.subs {
		if strings.Contains(path, sub) {
			return i
		}
	}
	return Ungrouped
}

// Color returns the fill color for a group index.
func (g *Groups) Color(idx int) string {
	if idx == Ungrouped {
		return UngroupedColor
	}
	return g.palette[idx%len(g.palette)]
}
