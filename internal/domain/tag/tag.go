// Package tag provides the canonical normalization used everywhere two
// product tags are compared.
package tag

import "strings"

// Normalize canonicalizes a raw tag for comparison: lowercase, strip all
// characters outside [a-z0-9- ], collapse whitespace runs to a single
// space, trim. Total and idempotent.
func Normalize(raw string) string {
	lower := strings.ToLower(raw)

	var b strings.Builder
	b.Grow(len(lower))
	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case r == ' ', r == '\t', r == '\n', r == '\r':
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeAll maps Normalize over a slice, preserving order.
func NormalizeAll(raw []string) []string {
	out := make([]string, len(raw))
	for i, t := range raw {
		out[i] = Normalize(t)
	}
	return out
}
