package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"nyaya-backend/aiclient"
	"nyaya-backend/models"
	"nyaya-backend/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppCommands(t *testing.T) {
	app := newApp()
	var names []string
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"search", "acts", "show"}, names)
}

func TestShowRequiresID(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	app := newApp()
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &bytes.Buffer{}

	err := app.Run([]string{"lawsearch", "show"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "section id is required")
}

func TestInvalidLogLevel(t *testing.T) {
	app := newApp()
	app.Writer = &bytes.Buffer{}
	app.ErrWriter = &bytes.Buffer{}

	err := app.Run([]string{"lawsearch", "--log-level", "loud", "acts"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestPrintSearch_Table(t *testing.T) {
	result := &service.SearchResult{
		Source: service.SourceSQL,
		Ranked: []models.ScoredCandidate{
			{Score: 180, Section: models.LegalSection{ID: "bns-305", Act: "BNS", Section: "Section 305", Text: "Whoever commits theft in a dwelling house."}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, printSearch(&buf, result, false))
	out := buf.String()
	assert.Contains(t, out, "source: sql")
	assert.Contains(t, out, "SCORE")
	assert.Contains(t, out, "180")
	assert.Contains(t, out, "bns-305")
}

func TestPrintSearch_JSON(t *testing.T) {
	result := &service.SearchResult{
		Source:       service.SourceSemantic,
		SemanticHits: []aiclient.SectionHit{{Act: "X", Section: "Y"}},
	}

	var buf bytes.Buffer
	require.NoError(t, printSearch(&buf, result, true))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &body))
	assert.Equal(t, "semantic", body["source"])
	assert.EqualValues(t, 1, body["count"])
	assert.Len(t, body["results"], 1)
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "a b", excerpt("  a\n\tb "))
	long := excerpt(strings.Repeat("x", 200))
	assert.Len(t, []rune(long), 80)
	assert.True(t, strings.HasSuffix(long, "..."))
}
