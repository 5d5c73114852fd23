package moderation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanMatchesListedTerms(t *testing.T) {
	assert := assert.New(t)
	s := NewScanner(DefaultTerms)

	fixtures := []struct {
		text    string
		matched string
	}{
		{text: "you are a scam", matched: "scam"},
		{text: "You Are A SCAM!!!", matched: "scam"},
		{text: "what.a.fraud, really", matched: "fraud"},
		{text: "these are FAKE   seeds", matched: "fake seeds"},
		{text: "Fake, Seeds!", matched: "fake seeds"},
	}

	for _, fix := range fixtures {
		res := s.Scan(fix.text, "")
		assert.True(res.Flagged, "text %q should be flagged", fix.text)
		assert.Contains(res.MatchedTerms, fix.matched, "text %q", fix.text)
	}
}

func TestScanCleanText(t *testing.T) {
	assert := assert.New(t)
	s := NewScanner(DefaultTerms)

	for _, text := range []string{
		"hello world",
		"my wheat crop is ready for harvest",
		"which market pays best for onions this week?",
		"",
		"   ",
	} {
		res := s.Scan(text, "")
		assert.False(res.Flagged, "text %q should not be flagged", text)
		assert.Empty(res.MatchedTerms)
		assert.Equal(SeverityLow, res.Severity)
	}
}

func TestScanSpamPatternUppercase(t *testing.T) {
	assert := assert.New(t)
	s := NewScanner(DefaultTerms)

	// 12 chars, all uppercase: flagged.
	res := s.Scan("AAAAAAAAAAAA", "")
	assert.True(res.Flagged)
	assert.Contains(res.MatchedTerms, SpamPatternTerm)

	// Short shouting is tolerated (10 chars or fewer).
	res = s.Scan("HELLO", "")
	assert.False(res.Flagged)

	res = s.Scan("hello world", "")
	assert.False(res.Flagged)
}

func TestScanSpamPatternRepeats(t *testing.T) {
	assert := assert.New(t)
	s := NewScanner(DefaultTerms)

	res := s.Scan("aaaaa", "")
	assert.True(res.Flagged, "5 consecutive repeats should flag")
	assert.Equal([]string{SpamPatternTerm}, res.MatchedTerms)

	res = s.Scan("aaaa", "")
	assert.False(res.Flagged, "4 consecutive repeats should not flag")
}

func TestScanSeverity(t *testing.T) {
	assert := assert.New(t)
	s := NewScanner(DefaultTerms)

	res := s.Scan("this is a scam", "")
	assert.Equal(SeverityMedium, res.Severity)

	res = s.Scan("a scam and a fraud", "")
	assert.Equal(SeverityMedium, res.Severity)
	assert.Len(res.MatchedTerms, 2)

	res = s.Scan("a scam and a fraud from a scammer, idiot", "")
	assert.Equal(SeverityHigh, res.Severity)
	assert.Greater(len(res.MatchedTerms), 2)
}

func TestScanDeduplicatesMatches(t *testing.T) {
	assert := assert.New(t)
	s := NewScanner(DefaultTerms)

	res := s.Scan("scam scam scam", "")
	assert.Equal([]string{"scam"}, res.MatchedTerms)
}

func TestScanTitleIsChecked(t *testing.T) {
	assert := assert.New(t)
	s := NewScanner(DefaultTerms)

	res := s.Scan("perfectly fine content", "FRAUD alert")
	assert.True(res.Flagged)
	assert.Contains(res.MatchedTerms, "fraud")
}

func TestScanIsDeterministic(t *testing.T) {
	assert := assert.New(t)
	s := NewScanner(DefaultTerms)

	a := s.Scan("a scammer and a fraud", "scam title")
	b := s.Scan("a scammer and a fraud", "scam title")
	assert.Equal(a, b)
}

func TestNewScannerDropsEmptyAndDuplicateTerms(t *testing.T) {
	assert := assert.New(t)
	s := NewScanner([]string{"Scam", "scam", "", "  ", "FRAUD"})
	assert.Len(s.terms, 2)
}
