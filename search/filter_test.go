package search

import (
	"testing"

	"nyaya-backend/models"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func domainPtr(d models.Domain) *models.Domain { return &d }

func TestSynonyms(t *testing.T) {
	assert.Equal(t, []string{"stealing", "robbery", "snatching", "pickpocketing", "burglary"}, Synonyms("theft"))
	assert.Contains(t, Synonyms("tenant"), "landlord")
	assert.Contains(t, Synonyms("tenant"), "eviction")
	assert.Empty(t, Synonyms("unheard-of-term"))
	assert.Empty(t, Synonyms("Theft"), "lookups are lowercase only")

	got := Synonyms("theft")
	got[0] = "mutated"
	assert.Equal(t, "stealing", Synonyms("theft")[0])
}

func TestIsStopWord(t *testing.T) {
	for _, w := range []string{"problem", "issue", "law", "act", "section", "case", "cases", "for", "and", "the", "of"} {
		assert.True(t, IsStopWord(w), w)
	}
	assert.False(t, IsStopWord("theft"))
}

func TestExpand_SkipsStopWords(t *testing.T) {
	exp := Expand(Normalize("theft case of tenant"))
	require.Len(t, exp, 2)
	assert.Contains(t, exp, "theft")
	assert.Contains(t, exp, "tenant")
	assert.NotContains(t, exp, "case")
}

func TestNormalizeSectionParam(t *testing.T) {
	assert.Equal(t, "", NormalizeSectionParam("  "))
	assert.Equal(t, "Section 378", NormalizeSectionParam("378"))
	assert.Equal(t, "section 5", NormalizeSectionParam("section 5"))
	assert.Equal(t, "SECTION 9A", NormalizeSectionParam(" SECTION 9A "))
}

func TestBuildCandidateQuery_NoQuery(t *testing.T) {
	cq := BuildCandidateQuery(Filters{}, Normalize(""))
	assert.Equal(t, CandidateLimit, cq.Limit)
	assert.Equal(t, "Section", cq.SectionMarker)
	assert.Equal(t, ExcludedMarkers, cq.Excluded)
	assert.Empty(t, cq.Phrase)
	assert.Empty(t, cq.Terms)
	assert.Empty(t, cq.ExactSection)
}

func TestBuildCandidateQuery_WithQueryAndFilters(t *testing.T) {
	f := Filters{Act: " Nyaya ", Section: "103", Domain: "Criminal", Jurisdiction: "central"}
	got := BuildCandidateQuery(f, Normalize("House theft 378 of"))

	want := CandidateQuery{
		Act:           "Nyaya",
		Domain:        "Criminal",
		Jurisdiction:  "central",
		SectionMarker: "Section",
		SectionLike:   "Section 103",
		Excluded:      ExcludedMarkers,
		Phrase:        "house theft 378 of",
		Terms: []string{
			"house",
			"theft", "stealing", "robbery", "snatching", "pickpocketing", "burglary",
			"378",
		},
		ExactSection: "Section 378",
		Limit:        CandidateLimit,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("BuildCandidateQuery mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildCandidateQuery_DeduplicatesTerms(t *testing.T) {
	cq := BuildCandidateQuery(Filters{}, Normalize("theft robbery theft"))
	seen := map[string]int{}
	for _, term := range cq.Terms {
		seen[term]++
	}
	for term, n := range seen {
		assert.Equal(t, 1, n, term)
	}
	assert.Equal(t, "theft", cq.Terms[0])
}

func TestCandidateQuery_Matches(t *testing.T) {
	theft := models.LegalSection{
		ID:           "ipc-378",
		Act:          "Indian Penal Code",
		Section:      "Section 378",
		Text:         "Whoever, intending to take dishonestly any movable property out of the possession of any person, commits theft.",
		Domain:       domainPtr(models.DomainCriminal),
		Jurisdiction: strPtr("central"),
	}

	t.Run("no query matches any real section", func(t *testing.T) {
		cq := BuildCandidateQuery(Filters{}, Normalize(""))
		assert.True(t, cq.Matches(theft))
	})

	t.Run("non section rows never match", func(t *testing.T) {
		row := theft
		row.Section = "Appendix"
		cq := BuildCandidateQuery(Filters{}, Normalize(""))
		assert.False(t, cq.Matches(row))
	})

	t.Run("excluded markers in any case", func(t *testing.T) {
		cq := BuildCandidateQuery(Filters{}, Normalize(""))
		for _, marker := range []string{"FORM No. 2", "the second schedule", "Warrant of arrest", "notice to appear", "Bond and bail"} {
			row := theft
			row.Text = theft.Text + " " + marker
			assert.False(t, cq.Matches(row), marker)
		}
	})

	t.Run("phrase on act", func(t *testing.T) {
		cq := BuildCandidateQuery(Filters{}, Normalize("penal code"))
		assert.True(t, cq.Matches(theft))
	})

	t.Run("synonym term on text", func(t *testing.T) {
		row := theft
		row.Text = "Whoever commits robbery shall be punished with rigorous imprisonment for ten years."
		cq := BuildCandidateQuery(Filters{}, Normalize("theft"))
		assert.True(t, cq.Matches(row))
	})

	t.Run("stop-word only query matches through the phrase alone", func(t *testing.T) {
		cq := BuildCandidateQuery(Filters{}, Normalize("the"))
		assert.Empty(t, cq.Terms)
		assert.True(t, cq.Matches(theft))
	})

	t.Run("exact section number", func(t *testing.T) {
		row := theft
		row.Text = "Whoever dishonestly misappropriates movable property shall be punished with imprisonment."
		cq := BuildCandidateQuery(Filters{}, Normalize("zzz 378zzz"))
		assert.True(t, cq.Matches(row))
	})

	t.Run("unmatched query", func(t *testing.T) {
		cq := BuildCandidateQuery(Filters{}, Normalize("xyzxyzunmatched"))
		assert.False(t, cq.Matches(theft))
	})

	t.Run("explicit filters", func(t *testing.T) {
		assert.True(t, BuildCandidateQuery(Filters{Act: "penal"}, Normalize("")).Matches(theft))
		assert.False(t, BuildCandidateQuery(Filters{Act: "evidence"}, Normalize("")).Matches(theft))
		assert.True(t, BuildCandidateQuery(Filters{Domain: "Criminal"}, Normalize("")).Matches(theft))
		assert.False(t, BuildCandidateQuery(Filters{Domain: "Family"}, Normalize("")).Matches(theft))
		assert.False(t, BuildCandidateQuery(Filters{Jurisdiction: "state"}, Normalize("")).Matches(theft))
		assert.True(t, BuildCandidateQuery(Filters{Section: "378"}, Normalize("")).Matches(theft))
		assert.False(t, BuildCandidateQuery(Filters{Section: "379"}, Normalize("")).Matches(theft))

		row := theft
		row.Domain = nil
		assert.False(t, BuildCandidateQuery(Filters{Domain: "Criminal"}, Normalize("")).Matches(row))
	})
}
