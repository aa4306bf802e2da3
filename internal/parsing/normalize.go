// Package parsing provides deterministic text normalization and tokenization
// for resumes and job postings. The token rules here are the single source of
// truth: the skill vocabulary normalizes its aliases through the same
// functions, so "Node.js" and "nodejs" cannot drift apart.
package parsing

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// compoundRunes are punctuation runes that never act as token separators, so
// compound skill tokens like "c++", "c#" and "node.js" survive tokenization.
var compoundRunes = map[rune]bool{
	'+': true,
	'#': true,
	'.': true,
}

// NormalizedText is the tokenized form of one document. Token order is
// preserved for proximity heuristics, and the token count doubles as a
// confidence signal downstream. Same bytes always yield the same tokens.
type NormalizedText struct {
	SourceHint string
	Tokens     []string
}

// TokenCount returns the number of tokens in the document.
func (n *NormalizedText) TokenCount() int {
	return len(n.Tokens)
}

// Normalize decodes raw document bytes and tokenizes them. It fails with a
// DecodeError when the bytes are not valid UTF-8; everything else, including
// empty input, yields a valid (possibly empty) token sequence.
func Normalize(raw []byte, sourceHint string) (*NormalizedText, error) {
	if !utf8.Valid(raw) {
		return nil, &DecodeError{
			SourceHint: sourceHint,
			Message:    "document is not valid UTF-8 text",
		}
	}
	return &NormalizedText{
		SourceHint: sourceHint,
		Tokens:     Tokenize(string(raw)),
	}, nil
}

// Tokenize lower-cases text and splits it into tokens along whitespace,
// control characters and punctuation, keeping the compound rune allow-list
// intact inside tokens. Leading and trailing dots are trimmed afterwards so a
// sentence-final "sql." equals "sql" while "node.js" keeps its interior dot.
func Tokenize(text string) []string {
	text = strings.ToLower(text)

	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() == 0 {
			return
		}
		if tok := strings.Trim(current.String(), "."); tok != "" {
			tokens = append(tokens, tok)
		}
		current.Reset()
	}

	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || compoundRunes[r]:
			current.WriteRune(r)
		default:
			// Whitespace, control characters and all remaining punctuation
			// separate tokens; runs collapse because empty tokens are dropped.
			flush()
		}
	}
	flush()

	return tokens
}

// NormalizePhrase applies the token rules to a free-form phrase and joins the
// result with single spaces. The vocabulary uses this to index aliases so that
// lookup and extraction share one normalization.
func NormalizePhrase(s string) string {
	return strings.Join(Tokenize(s), " ")
}
