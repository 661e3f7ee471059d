// Package slugx derives URL-safe slugs from display names.
package slugx

import (
	"strconv"
	"strings"
)

// Make lowercases the name, collapses every run of non-alphanumeric
// characters into a single hyphen and trims leading/trailing hyphens.
// A name with no usable characters yields the empty string; callers decide
// what that means.
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingHyphen := false
	for _, r := range strings.ToLower(name) {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum {
			pendingHyphen = b.Len() > 0
			continue
		}
		if pendingHyphen {
			b.WriteByte('-')
			pendingHyphen = false
		}
		b.WriteRune(r)
	}

	return b.String()
}

// WithSuffix appends a numeric collision suffix, e.g. ("pen", 2) -> "pen-2".
func WithSuffix(slug string, n int) string {
	return slug + "-" + strconv.Itoa(n)
}
