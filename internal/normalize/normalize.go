// Package normalize cleans raw page text from either text source before
// classification and extraction.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// Tokenizer sentinels and padding markers that leak out of the layout
// model's token stream.
var sentinelRe = regexp.MustCompile(`<pad>|</s>|<s>|<unk>|\[PAD\]|\[CLS\]|\[SEP\]|\[UNK\]`)

var whitespaceRe = regexp.MustCompile(`\s+`)

// Text cleans a raw text blob: strips tokenizer sentinels, sub-word
// continuation markers, form feeds, and control characters, then collapses
// whitespace runs to a single space and trims. Total and idempotent;
// empty input yields "".
func Text(raw string) string {
	if raw == "" {
		return ""
	}
	s := strings.ReplaceAll(raw, "Ġ", " ")
	s = sentinelRe.ReplaceAllString(s, " ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			b.WriteRune(' ')
			continue
		}
		if !unicode.IsControl(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(b.String(), " "))
}
