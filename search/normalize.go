// Package search holds the statute search core: query normalization,
// synonym expansion, candidate query construction and relevance scoring.
// Nothing in this package performs I/O.
package search

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Query is the normalized form of a raw search string
type Query struct {
	Raw             string   `json:"rawQuery"`
	Lower           string   `json:"lowerQuery"`
	Tokens          []string `json:"tokens"`
	ExtractedNumber string   `json:"extractedNumber,omitempty"`
}

var digitRun = regexp.MustCompile(`\d+`)

// Empty reports whether the query carries no search text
func (q Query) Empty() bool { return q.Lower == "" }

// PrimaryToken returns the trailing token, which drives scoring
func (q Query) PrimaryToken() string {
	if len(q.Tokens) == 0 {
		return ""
	}
	return q.Tokens[len(q.Tokens)-1]
}

// Normalize trims, folds and lowercases raw, then splits it on whitespace.
// An empty raw string yields an empty Query.
func Normalize(raw string) Query {
	q := Query{Raw: raw}

	s := strings.TrimSpace(raw)
	if s == "" {
		return q
	}
	s = fold(s)

	q.Lower = s
	q.Tokens = strings.Fields(s)
	q.ExtractedNumber = digitRun.FindString(s)
	return q
}

// fold maps compatibility and fullwidth forms to their plain equivalents
// and lowercases the result. Combining marks are kept: Indic scripts carry
// vowel signs as marks.
func fold(s string) string {
	s = strings.ToValidUTF8(s, "")
	t := transform.Chain(norm.NFKC, width.Fold, cases.Lower(language.Und))
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return strings.TrimSpace(out)
}
