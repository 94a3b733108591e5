package reconcile

import "strings"

// IsDirector reports whether a position title names a department director.
// Directors are excluded from the directory regardless of contact info, but
// sub-directors stay in. Missing or empty titles are never directors.
func IsDirector(position string) bool {
	p := strings.ToLower(strings.TrimSpace(position))
	if p == "" {
		return false
	}
	return strings.Contains(p, "director") && !strings.Contains(p, "subdirector")
}
