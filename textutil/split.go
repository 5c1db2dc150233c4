// Package textutil reconstructs displayable words from decoder tokens and
// parses numeric literals found in text.
package textutil

import (
	"strings"
	"unicode/utf8"
)

// SplitString splits full on any character in delims.
//
// When omitEmpty is false every substring between delimiters is returned,
// including empty ones, so strings.Join(SplitString(s, d, false), d)
// reproduces s for a single-character d. When omitEmpty is true empty substrings
// are dropped. An empty delims returns full as the only element.
func SplitString(full, delims string, omitEmpty bool) []string {
	var out []string
	start, end := 0, len(full)
	for {
		found := strings.IndexAny(full[start:], delims)
		if found >= 0 {
			found += start
		}
		stop := found
		if stop < 0 {
			stop = end
		}
		// start == end catches a delimiter at the very end of the input.
		if !omitEmpty || (stop != start && start != end) {
			out = append(out, full[start:stop])
		}
		if found < 0 {
			return out
		}
		_, size := utf8.DecodeRuneInString(full[found:])
		start = found + size
	}
}
