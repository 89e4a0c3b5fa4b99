package stats

import "strings"

// ResolveName canonicalizes a typed player name for cross-match identity:
// surrounding whitespace is trimmed and runs of inner whitespace collapse
// to a single space. Per-match Player rows keep the raw name for display;
// every aggregate table keys on the resolved form, so " Li  Lei " and
// "Li Lei" are the same person while "Lilei" stays distinct.
func ResolveName(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}
