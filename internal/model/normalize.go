package model

import "strings"

// Key normalizes a name for cross-dataset matching. Every case-insensitive
// comparison between feeds goes through this function.
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SameKey reports whether two names match after normalization.
func SameKey(a, b string) bool {
	return Key(a) == Key(b)
}
