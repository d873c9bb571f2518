package params

import "strings"

var (
	// sketchConventions apply to reference and query sets outside search.
	sketchConventions = []string{SketchSuffix, MarkerSuffix}
	// searchQueryConventions apply to search queries; markers are not recognised there.
	searchQueryConventions = []string{SketchSuffix}
)

// AreSketches reports whether every path carries one of the conventions.
// The match is substring containment, not a strict suffix. An empty set is
// never a sketch set.
func AreSketches(paths []string, conventions []string) bool {
	if len(paths) == 0 {
		return false
	}
	for _, p := range paths {
		if !containsAny(p, conventions) {
			return false
		}
	}
	return true
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
