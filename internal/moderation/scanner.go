package moderation

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// SpamPatternTerm is the synthetic term reported when text trips the
// shouting/character-repetition heuristics rather than the word list.
const SpamPatternTerm = "spam_pattern"

// Result of scanning a piece of content. MatchedTerms is deduplicated and
// sorted so results compare stably.
type Result struct {
	Flagged      bool     `json:"flagged"`
	MatchedTerms []string `json:"matched_terms,omitempty"`
	Severity     Severity `json:"severity"`
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9\s]+`)

// Scanner matches free text against a fixed term list plus two spam
// heuristics. It holds no mutable state; one instance serves all requests.
type Scanner struct {
	terms []string
}

// NewScanner normalizes and dedupes the term list once at construction.
// Empty terms are dropped.
func NewScanner(terms []string) *Scanner {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		n := normalizeText(t)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return &Scanner{terms: out}
}

// Scan checks content and an optional title against the term list and spam
// heuristics. Empty input is treated as nothing to check, never an error.
func (s *Scanner) Scan(content, title string) Result {
	matched := make(map[string]struct{})

	normalized := normalizeText(content)
	if title != "" {
		normalized = normalized + " " + normalizeText(title)
	}

	// Plain substring search over the normalized text; casing and
	// punctuation around a term never hide it.
	if normalized != "" {
		for _, term := range s.terms {
			if strings.Contains(normalized, term) {
				matched[term] = struct{}{}
			}
		}
	}

	// Spam heuristics run on the original, non-normalized strings.
	if isSpamPattern(content) || isSpamPattern(title) {
		matched[SpamPatternTerm] = struct{}{}
	}

	terms := make([]string, 0, len(matched))
	for t := range matched {
		terms = append(terms, t)
	}
	sort.Strings(terms)

	severity := SeverityLow
	switch {
	case len(terms) > 2:
		severity = SeverityHigh
	case len(terms) >= 1:
		severity = SeverityMedium
	}

	return Result{
		Flagged:      len(terms) > 0,
		MatchedTerms: terms,
		Severity:     severity,
	}
}

// normalizeText lowercases, strips diacritics, replaces punctuation with
// spaces and collapses runs of whitespace.
func normalizeText(text string) string {
	if text == "" {
		return ""
	}
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, text)
	if err != nil {
		folded = text
	}
	lowered := strings.ToLower(folded)
	spaced := nonAlnum.ReplaceAllString(lowered, " ")
	return strings.Join(strings.Fields(spaced), " ")
}

func isSpamPattern(text string) bool {
	rs := []rune(text)
	if len(rs) == 0 {
		return false
	}

	if len(rs) > 10 {
		upper := 0
		for _, r := range rs {
			if unicode.IsUpper(r) {
				upper++
			}
		}
		if upper*2 > len(rs) {
			return true
		}
	}

	run := 1
	for i := 1; i < len(rs); i++ {
		if rs[i] == rs[i-1] {
			run++
			if run >= 5 {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}
