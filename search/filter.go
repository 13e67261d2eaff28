package search

import (
	"strings"

	"nyaya-backend/models"
)

// CandidateLimit caps the number of rows fetched before scoring
const CandidateLimit = 200

// MinTextLength is the shortest section body considered substantive
const MinTextLength = 40

// sectionMarker must appear in the section label of every searchable row
const sectionMarker = "Section"

// ExcludedMarkers flag forms, schedules and procedural boilerplate. A row whose
// text contains any of them, in any case, is never searchable.
var ExcludedMarkers = []string{"FORM", "SCHEDULE", "WARRANT", "NOTICE", "BOND"}

// Filters are the explicit request parameters. Empty fields relax the search.
type Filters struct {
	Query        string `form:"query" json:"query,omitempty"`
	Act          string `form:"act" json:"act,omitempty"`
	Section      string `form:"section" json:"section,omitempty"`
	Domain       string `form:"domain" json:"domain,omitempty"`
	Jurisdiction string `form:"jurisdiction" json:"jurisdiction,omitempty"`
}

// CandidateQuery is a storage-agnostic description of the candidate fetch.
// All substring predicates are case-insensitive.
//
// A row matches when every set field of the conjunctive part holds, the row is
// a real section (SectionMarker), carries none of the ExcludedMarkers, and,
// when Phrase is set, at least one disjunct holds.
type CandidateQuery struct {
	// conjunctive part
	Act           string // act contains
	Domain        string // domain equals
	Jurisdiction  string // jurisdiction equals
	SectionMarker string // section contains
	SectionLike   string // section contains, from the explicit section parameter
	Excluded      []string

	// disjunctive part, only when a free-text query is present
	Phrase       string   // text, act or section contains
	Terms        []string // text or section contains, tokens then synonyms
	ExactSection string   // section equals

	Limit int
}

// BuildCandidateQuery turns explicit filters and a normalized query into the
// candidate fetch description
func BuildCandidateQuery(f Filters, q Query) CandidateQuery {
	cq := CandidateQuery{
		Act:           strings.TrimSpace(f.Act),
		Domain:        strings.TrimSpace(f.Domain),
		Jurisdiction:  strings.TrimSpace(f.Jurisdiction),
		SectionMarker: sectionMarker,
		SectionLike:   NormalizeSectionParam(f.Section),
		Excluded:      append([]string(nil), ExcludedMarkers...),
		Limit:         CandidateLimit,
	}

	if q.Empty() {
		return cq
	}

	cq.Phrase = q.Lower
	cq.Terms = expansionTerms(q)
	if q.ExtractedNumber != "" {
		cq.ExactSection = "Section " + q.ExtractedNumber
	}
	return cq
}

// NormalizeSectionParam prefixes a bare section reference with "Section "
func NormalizeSectionParam(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(s), "section") {
		return s
	}
	return "Section " + s
}

// expansionTerms lists every non-stop-word token followed by its synonyms,
// without duplicates, in query order
func expansionTerms(q Query) []string {
	exp := Expand(q)
	seen := make(map[string]struct{})
	var terms []string
	add := func(t string) {
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		terms = append(terms, t)
	}
	for _, tok := range q.Tokens {
		syns, ok := exp[tok]
		if !ok {
			continue
		}
		add(tok)
		for _, s := range syns {
			add(s)
		}
	}
	return terms
}

// Matches evaluates the candidate query against one row in memory. It mirrors
// the SQL built by the repository and is used by in-process stores.
func (cq CandidateQuery) Matches(s models.LegalSection) bool {
	if cq.Act != "" && !containsFold(s.Act, cq.Act) {
		return false
	}
	if cq.Domain != "" && (s.Domain == nil || string(*s.Domain) != cq.Domain) {
		return false
	}
	if cq.Jurisdiction != "" && (s.Jurisdiction == nil || *s.Jurisdiction != cq.Jurisdiction) {
		return false
	}
	if cq.SectionMarker != "" && !containsFold(s.Section, cq.SectionMarker) {
		return false
	}
	if cq.SectionLike != "" && !containsFold(s.Section, cq.SectionLike) {
		return false
	}
	if HasExcludedMarker(s.Text, cq.Excluded) {
		return false
	}

	if cq.Phrase == "" {
		return true
	}
	if containsFold(s.Text, cq.Phrase) || containsFold(s.Act, cq.Phrase) || containsFold(s.Section, cq.Phrase) {
		return true
	}
	for _, t := range cq.Terms {
		if containsFold(s.Text, t) || containsFold(s.Section, t) {
			return true
		}
	}
	return cq.ExactSection != "" && s.Section == cq.ExactSection
}

// HasExcludedMarker reports whether text contains any marker, ignoring case
func HasExcludedMarker(text string, markers []string) bool {
	for _, m := range markers {
		if containsFold(text, m) {
			return true
		}
	}
	return false
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
