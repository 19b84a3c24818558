package lookup

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/ladenbot/laden/internal/domain/models"
	"github.com/ladenbot/laden/internal/service/lexicon"
)

// MatchResult carries the records a phrase matched and, when the fuzzy
// fallback fired, the description it guessed.
type MatchResult struct {
	Records    []models.StockRecord
	Suggestion string
}

// Match finds records for a normalized phrase. A record matches when every
// phrase token is a substring of its description, or when the part-number
// form of the phrase is contained in the part-number form of its material id.
// With no exact match, the closest known description above the similarity
// threshold is searched instead and surfaced as a suggestion.
func Match(records []models.StockRecord, phrase string, threshold float64) MatchResult {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return MatchResult{}
	}

	tokens := strings.Fields(strings.ToLower(phrase))
	partNumber := lexicon.NormalizePartNumber(phrase)

	var matched []models.StockRecord
	for _, record := range records {
		if matchesDescription(record.Description, tokens) ||
			matchesMaterial(record.MaterialID, partNumber) {
			matched = append(matched, record)
		}
	}
	if len(matched) > 0 {
		return MatchResult{Records: matched}
	}

	guess := closestDescription(records, phrase, threshold)
	if guess == "" {
		return MatchResult{}
	}

	guessLower := strings.ToLower(guess)
	for _, record := range records {
		if strings.Contains(strings.ToLower(record.Description), guessLower) {
			matched = append(matched, record)
		}
	}
	return MatchResult{Records: matched, Suggestion: guess}
}

// matchesDescription is conjunctive: every token must hit, so adding tokens
// only ever narrows the result.
func matchesDescription(description string, tokens []string) bool {
	lowered := strings.ToLower(description)
	for _, token := range tokens {
		if !strings.Contains(lowered, token) {
			return false
		}
	}
	return true
}

func matchesMaterial(materialID, partNumber string) bool {
	if partNumber == "" {
		return false
	}
	return strings.Contains(lexicon.NormalizePartNumber(materialID), partNumber)
}

// closestDescription finds the most similar distinct description to the
// upper-cased phrase, or "" when nothing reaches the threshold.
func closestDescription(records []models.StockRecord, phrase string, threshold float64) string {
	target := splitChars(strings.ToUpper(phrase))

	best := ""
	bestRatio := 0.0
	seen := make(map[string]struct{}, len(records))
	for _, record := range records {
		if _, ok := seen[record.Description]; ok {
			continue
		}
		seen[record.Description] = struct{}{}

		ratio := difflib.NewMatcher(target, splitChars(record.Description)).Ratio()
		if ratio >= threshold && ratio > bestRatio {
			best = record.Description
			bestRatio = ratio
		}
	}
	return best
}

func splitChars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
