// Package lexicon rewrites noisy user phrases into clean search phrases:
// synonym substitution, stop-word stripping and document-number suppression.
package lexicon

import (
	"strings"
)

var punctuation = strings.NewReplacer("?", " ", "!", " ", ",", " ", ".", " ", ":", " ")

// Normalize turns a raw phrase into the canonical search phrase. The empty
// string means nothing in the phrase is searchable.
func Normalize(raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	lowered = punctuation.Replace(lowered)
	hasDigit := strings.ContainsAny(lowered, "0123456789")

	var kept []string
	for _, word := range strings.Fields(lowered) {
		if strings.HasPrefix(word, "@") {
			continue
		}
		if _, ok := stopWords[word]; ok {
			continue
		}
		if hasDigit {
			if _, ok := fastenerWords[word]; ok {
				continue
			}
		}
		if isDocumentNumber(word) {
			continue
		}
		if canonical, ok := synonyms[word]; ok {
			word = canonical
		}
		kept = append(kept, word)
	}

	return strings.Join(kept, " ")
}

// NormalizePartNumber lower-cases, strips everything outside [a-z0-9] and
// folds the letter o to the digit 0. Material codes are alphanumeric
// identifiers where O/0 confusion is common; words are not, so this form is
// used only for material-code containment.
func NormalizePartNumber(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(raw) {
		switch {
		case r == 'o':
			b.WriteRune('0')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isDocumentNumber reports whether a word looks like an SAP document
// reference: exactly ten digits after stripping non-digits, starting with a
// reserved two-digit prefix.
func isDocumentNumber(word string) bool {
	var digits strings.Builder
	for _, r := range word {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() != 10 {
		return false
	}
	_, ok := documentPrefixes[digits.String()[:2]]
	return ok
}
