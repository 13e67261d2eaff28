package search

import (
	"slices"
	"strings"
	"unicode/utf8"

	"nyaya-backend/models"
)

// SentinelScore marks a row that must never be ranked
const SentinelScore = -999

// MaxRanked caps the ranked result set
const MaxRanked = 15

const (
	weightExactSection  = 120
	weightSectionPhrase = 60
	weightTextPrefix    = 40
	weightTextPhrase    = 30
	weightActPhrase     = 20
	weightSectionSyn    = 25
	weightTextSyn       = 20
)

// Score computes the additive relevance score of one row for q.
//
// Rules are keyed on the full lowercased query and on the trailing token
// (the primary token) and its synonyms. Garbage rows get SentinelScore.
func Score(s models.LegalSection, q Query) int {
	text := strings.TrimSpace(s.Text)
	if utf8.RuneCountInString(text) < MinTextLength || HasExcludedMarker(text, ExcludedMarkers) {
		return SentinelScore
	}
	if q.Empty() {
		return 0
	}

	section := strings.ToLower(s.Section)
	body := strings.ToLower(text)
	act := strings.ToLower(s.Act)
	primary := q.PrimaryToken()

	score := 0
	if section == "section "+primary {
		score += weightExactSection
	}
	if strings.Contains(section, q.Lower) {
		score += weightSectionPhrase
	}
	if strings.HasPrefix(body, q.Lower) {
		score += weightTextPrefix
	}
	if strings.Contains(body, q.Lower) {
		score += weightTextPhrase
	}
	if strings.Contains(act, q.Lower) {
		score += weightActPhrase
	}
	for _, syn := range Synonyms(primary) {
		if strings.Contains(section, syn) {
			score += weightSectionSyn
		}
		if strings.Contains(body, syn) {
			score += weightTextSyn
		}
	}
	return score
}

// Rank scores rows, drops sentinel rows and returns at most MaxRanked
// candidates by descending score. Ties keep the input order.
func Rank(rows []models.LegalSection, q Query) []models.ScoredCandidate {
	scored := make([]models.ScoredCandidate, 0, len(rows))
	for _, r := range rows {
		sc := Score(r, q)
		if sc <= SentinelScore {
			continue
		}
		scored = append(scored, models.ScoredCandidate{Section: r, Score: sc})
	}

	slices.SortStableFunc(scored, func(a, b models.ScoredCandidate) int {
		return b.Score - a.Score
	})

	if len(scored) > MaxRanked {
		scored = scored[:MaxRanked]
	}
	return scored
}
