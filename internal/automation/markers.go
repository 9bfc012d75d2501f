package automation

import (
	"strings"

	"golang.org/x/text/width"
)

// Template placeholder markers
const (
	MarkerAt    = "@@@"
	MarkerHash  = "###"
	MarkerAmp   = "&&&"
	EquationTag = "EQ:"
)

// KnownMarkers lists the markers templates may leave behind, in cleanup order
var KnownMarkers = []string{MarkerAt, MarkerHash, MarkerAmp}

// Variants expands a marker into the textual forms treated as the same
// occurrence: as typed, full-width, spaced, and spaced full-width.
// Duplicates are removed while keeping order.
func Variants(marker string) []string {
	if marker == "" {
		return nil
	}
	wide := width.Widen.String(marker)
	candidates := []string{marker, wide, spaced(marker), spaced(wide)}

	seen := make(map[string]bool, len(candidates))
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

func spaced(s string) string {
	runes := []rune(s)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, " ")
}
