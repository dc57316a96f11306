package pipeline

import (
	"strings"

	"docuparse/internal/normalize"
	"docuparse/internal/port"
)

// TokensToText flattens a labeled token stream into one cleaned text blob.
// Label IDs are ignored here; they only matter to the upstream model.
func TokensToText(tokens []port.Token) string {
	if len(tokens) == 0 {
		return ""
	}
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Text == "" {
			continue
		}
		parts = append(parts, tok.Text)
	}
	return normalize.Text(strings.Join(parts, " "))
}
