// Package intent decides what an inbound chat message asks for: a stock
// lookup, a "next page" follow-up, an introduction, or nothing at all.
package intent

import (
	"regexp"
	"strings"

	"github.com/ladenbot/laden/internal/service/lexicon"
)

// Kind enumerates the recognized message intents.
type Kind string

const (
	KindLookup       Kind = "lookup"
	KindPagination   Kind = "pagination"
	KindIntroduction Kind = "introduction"
	KindIgnore       Kind = "ignore"
)

// Intent is the outcome of classifying one inbound message.
type Intent struct {
	Kind    Kind
	Keyword string   // raw candidate phrase, lookup only
	Batch   []string // normalized phrases when the message asked for several items
}

// SessionChecker reports whether a sender has an active search session.
// Pagination words only mean "next page" when there is something to page.
type SessionChecker interface {
	Has(sender string) bool
}

// Classifier walks an ordered rule cascade; the first matching rule wins.
type Classifier struct {
	sessions SessionChecker
}

// NewClassifier wires a classifier against the given session registry.
func NewClassifier(sessions SessionChecker) *Classifier {
	return &Classifier{sessions: sessions}
}

var nextPageWords = map[string]struct{}{
	"lagi": {}, "lanjut": {}, "next": {}, "more": {},
	"selanjutnya": {}, "berikutnya": {}, "terus": {},
}

var botNames = map[string]struct{}{"laden": {}, "den": {}}

var introWords = map[string]struct{}{
	"siapa": {}, "intro": {}, "kenalan": {}, "perkenalan": {},
}

// Legacy trigger phrases kept from the first deployment; users still type them.
var triggerPhrases = []string{
	"tanya laden", "#tanyaladen", "tanya den", "#tanyaden",
	"cek laden", "cek den", "cek stok",
}

// hardBlacklist words mark a message as conversation, never a command.
var hardBlacklist = map[string]struct{}{
	"meeting": {}, "rapat": {}, "wkwk": {}, "wkwkwk": {}, "haha": {}, "hehe": {},
	"bercanda": {}, "lucu": {}, "makan": {}, "pulang": {}, "libur": {},
	"cuti": {}, "gajian": {}, "undangan": {},
}

// softBlacklist words are ambiguous pleasantries; they only cancel a lookup
// when no strong trigger backs the message up.
var softBlacklist = map[string]struct{}{
	"makasih": {}, "terima": {}, "kasih": {}, "thanks": {}, "thank": {},
	"mantap": {}, "sip": {}, "monggo": {}, "nggih": {}, "njih": {}, "sehat": {},
}

// ackPrefixes open messages that acknowledge a previous answer.
var ackPrefixes = []string{
	"ok", "oke", "okey", "okay", "siap", "baik", "sip",
	"nggih", "njih", "makasih", "terima kasih", "thanks", "sami-sami",
}

var (
	stockWordRe    = regexp.MustCompile(`(^|[^a-z])(stok|stock)([^a-z]|$)`)
	passiveStockRe = regexp.MustCompile(`(^|[^a-z])(di|ke|dari|dalam)\s+(stok|stock)([^a-z]|$)`)
	partNumberRe   = regexp.MustCompile(`[a-z0-9]+(?:-[a-z0-9]+)+`)
	longNumberRe   = regexp.MustCompile(`^[0-9]{8,}$`)
)

// Messages longer than this are almost always conversation that merely
// mentions stock, so auto-detect ignores them.
const maxAutoDetectWords = 8

// Classify inspects a raw inbound message and returns its intent.
func (c *Classifier) Classify(message, sender string) Intent {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return Intent{Kind: KindIgnore}
	}
	lowered := strings.ToLower(trimmed)

	if _, ok := nextPageWords[lowered]; ok && c.sessions != nil && c.sessions.Has(sender) {
		return Intent{Kind: KindPagination}
	}

	if containsWord(lowered, botNames) && containsWord(lowered, introWords) {
		return Intent{Kind: KindIntroduction}
	}

	keyword, found := c.extractKeyword(lowered)
	if !found {
		return Intent{Kind: KindIgnore}
	}
	if keyword == "" {
		// Direct call or bot-name address with nothing after it: the user
		// reached the bot but gave no item, so prompt instead of staying silent.
		return Intent{Kind: KindIntroduction}
	}

	// Final gate over the original message. A part-number-looking token is
	// strong positive evidence and overrides the conversational signals.
	if !hasPartNumberToken(lowered) {
		if containsWord(lowered, hardBlacklist) || hasAckPrefix(lowered) {
			return Intent{Kind: KindIgnore}
		}
		if containsWord(lowered, softBlacklist) && !hasStrongTrigger(lowered) {
			return Intent{Kind: KindIgnore}
		}
	}

	if phrases := batchPhrases(keyword); len(phrases) > 1 {
		return Intent{Kind: KindLookup, Batch: phrases}
	}

	return Intent{Kind: KindLookup, Keyword: keyword}
}

// extractKeyword runs the keyword-producing rules in priority order. The
// second return is false when no rule claimed the message.
func (c *Classifier) extractKeyword(lowered string) (string, bool) {
	// Direct call: "@handle rest-of-message". A mention of someone else is
	// not a claim by itself, but the later rules may still recognize the
	// message, so it falls through instead of ending the cascade.
	if strings.HasPrefix(lowered, "@") {
		handle, rest := splitFirstWord(lowered)
		if mentionsBot(strings.TrimPrefix(handle, "@")) {
			return rest, true
		}
	}

	// Leading bot-name word: "laden wypall l30".
	head, rest := splitFirstWord(lowered)
	if _, ok := botNames[head]; ok {
		return rest, true
	}

	// Legacy trigger phrase anywhere in the message.
	for _, trigger := range triggerPhrases {
		if strings.Contains(lowered, trigger) {
			keyword := collapseSpaces(strings.ReplaceAll(lowered, trigger, " "))
			if keyword == "" {
				return "", false
			}
			return keyword, true
		}
	}

	// Auto-detect: a short message using the stock word as a command, not as
	// a location noun.
	if stockWordRe.MatchString(lowered) &&
		!passiveStockRe.MatchString(lowered) &&
		!containsWord(lowered, hardBlacklist) &&
		len(strings.Fields(lowered)) <= maxAutoDetectWords {
		keyword := collapseSpaces(stockWordRe.ReplaceAllString(lowered, "$1$3"))
		if keyword == "" {
			return "", false
		}
		return keyword, true
	}

	return "", false
}

// batchPhrases splits a keyword on newlines and commas and normalizes each
// segment. Two or more surviving phrases mean the user asked for a list.
func batchPhrases(keyword string) []string {
	segments := strings.FieldsFunc(keyword, func(r rune) bool {
		return r == '\n' || r == ','
	})
	if len(segments) < 2 {
		return nil
	}

	var phrases []string
	for _, seg := range segments {
		if phrase := lexicon.Normalize(seg); len(phrase) >= 2 {
			phrases = append(phrases, phrase)
		}
	}
	if len(phrases) < 2 {
		return nil
	}
	return phrases
}

func mentionsBot(handle string) bool {
	for name := range botNames {
		if strings.Contains(handle, name) {
			return true
		}
	}
	return longNumberRe.MatchString(handle)
}

func hasStrongTrigger(lowered string) bool {
	if strings.HasPrefix(lowered, "@") {
		return true
	}
	if containsWord(lowered, botNames) {
		return true
	}
	for _, trigger := range triggerPhrases {
		if strings.Contains(lowered, trigger) {
			return true
		}
	}
	return false
}

func hasAckPrefix(lowered string) bool {
	for _, prefix := range ackPrefixes {
		if lowered == prefix || strings.HasPrefix(lowered, prefix+" ") {
			return true
		}
	}
	return false
}

func hasPartNumberToken(lowered string) bool {
	for _, token := range partNumberRe.FindAllString(lowered, -1) {
		if strings.ContainsAny(token, "0123456789") {
			return true
		}
	}
	return false
}

func containsWord(lowered string, set map[string]struct{}) bool {
	for _, word := range strings.FieldsFunc(lowered, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r == '#' || r == '-')
	}) {
		if _, ok := set[word]; ok {
			return true
		}
	}
	return false
}

var spaceRunRe = regexp.MustCompile(`[ \t]+`)

// collapseSpaces squeezes space runs left behind by phrase removal while
// preserving newlines, which the batch splitter needs.
func collapseSpaces(s string) string {
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(s, " "))
}

func splitFirstWord(s string) (head, rest string) {
	head, rest, found := strings.Cut(s, " ")
	if !found {
		return head, ""
	}
	return head, strings.TrimSpace(rest)
}
