// Package token normalizes free text into comparable token sequences.
// The same normalization is applied to product documents and to search
// queries, so overlap between the two is meaningful.
package token

import "strings"

// Tokenize lower-cases text, replaces every non-alphanumeric rune with a
// space, collapses whitespace and splits. Empty tokens are dropped.
func Tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if isWordRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

// isWordRune mirrors the \w character class plus anything outside ASCII
// punctuation, so non-latin product titles survive tokenization.
func isWordRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	case r > 127:
		return true
	}
	return false
}
