package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		lower  string
		tokens []string
		number string
	}{
		{"empty", "", "", nil, ""},
		{"blank", "   \t ", "", nil, ""},
		{"single token", "Theft", "theft", []string{"theft"}, ""},
		{"trims and lowercases", "  House THEFT  ", "house theft", []string{"house", "theft"}, ""},
		{"collapses inner whitespace into tokens", "cyber   fraud\tcase", "cyber   fraud\tcase", []string{"cyber", "fraud", "case"}, ""},
		{"first digit run", "section 302 and 304", "section 302 and 304", []string{"section", "302", "and", "304"}, "302"},
		{"digits glued to letters", "s.420ipc", "s.420ipc", []string{"s.420ipc"}, "420"},
		{"fullwidth folds to ascii", "ＴＨＥＦＴ ３７８", "theft 378", []string{"theft", "378"}, "378"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q := Normalize(c.raw)
			assert.Equal(t, c.raw, q.Raw)
			assert.Equal(t, c.lower, q.Lower)
			assert.Equal(t, c.tokens, q.Tokens)
			assert.Equal(t, c.number, q.ExtractedNumber)
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Theft",
		"  House THEFT  ",
		"Section 103 murder",
		"ＴＨＥＦＴ ３７８",
		"Dowry   harassment\ncase",
		"धारा 302",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once.Lower)
		assert.Equal(t, once.Lower, twice.Lower, "lower for %q", in)
		assert.Equal(t, once.Tokens, twice.Tokens, "tokens for %q", in)
		assert.Equal(t, once.ExtractedNumber, twice.ExtractedNumber, "number for %q", in)
	}
}

func TestQuery_PrimaryToken(t *testing.T) {
	assert.Equal(t, "", Normalize("").PrimaryToken())
	assert.Equal(t, "theft", Normalize("house theft").PrimaryToken())
	assert.Equal(t, "of", Normalize("theft of").PrimaryToken(), "stop-words are not skipped")
}
