// Package navigate resolves conditional branches for page navigation.
package navigate

// Branch pairs a condition with a destination slug.
type Branch struct {
	When bool
	To   string
}

// Resolve returns the destination of the first satisfied branch in
// declaration order, or fallback when none is satisfied. Ties between
// branches are therefore broken deterministically; pages must not rely on
// evaluation order beyond their own declared branches.
func Resolve(fallback string, branches ...Branch) string {
	for _, b := range branches {
		if b.When {
			return b.To
		}
	}
	return fallback
}
