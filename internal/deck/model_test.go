// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

package deck_test

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doctown/docpack/internal/deck"
	"github.com/doctown/docpack/internal/store"
)

type fakeQuerier struct {
	results []store.SearchResult
	err     error
	queries []string
}

func (f *fakeQuerier) Recall(_ context.Context, query string, _ int) ([]store.SearchResult, error) {
	f.queries = append(f.queries, query)
	return f.results, f.err
}

// typeAndEnter feeds a query string plus Enter through Update, then runs the
// recall command Enter produces and delivers its message back to the model.
func typeAndEnter(m tea.Model, query string) tea.Model {
	for _, r := range query {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	var cmd tea.Cmd
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		if msg := cmd(); msg != nil {
			m, _ = m.Update(msg)
		}
	}
	return m
}

func TestModel_QueryRendersTopResult(t *testing.T) {
	q := &fakeQuerier{results: []store.SearchResult{
		{FilePath: "docs/a.md", Text: "alpha text", Score: 0.91},
		{FilePath: "docs/b.md", Text: "beta text", Score: 0.42},
	}}

	var m tea.Model = deck.New(q, "my.docpack")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = typeAndEnter(m, "alpha")

	require.Equal(t, []string{"alpha"}, q.queries)
	view := m.View()
	assert.Contains(t, view, "docs/a.md")
	assert.Contains(t, view, "alpha text")
	assert.Contains(t, view, `Results for "alpha"`)
}

func TestModel_ArrowKeysCycleResults(t *testing.T) {
	q := &fakeQuerier{results: []store.SearchResult{
		{FilePath: "one.md", Text: "first", Score: 0.9},
		{FilePath: "two.md", Text: "second", Score: 0.8},
	}}

	var m tea.Model = deck.New(q, "")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = typeAndEnter(m, "x")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Contains(t, m.View(), "two.md")

	// Wraps back around.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Contains(t, m.View(), "one.md")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Contains(t, m.View(), "two.md")
}

func TestModel_QueryErrorShownInStatus(t *testing.T) {
	q := &fakeQuerier{err: errors.New("pack is sealed")}

	var m tea.Model = deck.New(q, "")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	m = typeAndEnter(m, "anything")

	assert.Contains(t, m.View(), "pack is sealed")
}

func TestModel_RecallRunsOffEventLoop(t *testing.T) {
	q := &fakeQuerier{results: []store.SearchResult{
		{FilePath: "a.md", Text: "alpha", Score: 1},
	}}

	var m tea.Model = deck.New(q, "")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	for _, r := range "abc" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	var cmd tea.Cmd
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	// Enter only schedules the search; the querier runs inside the command.
	assert.Empty(t, q.queries)
	assert.Contains(t, m.View(), `Searching "abc"`)

	m, _ = m.Update(cmd())
	assert.Equal(t, []string{"abc"}, q.queries)
	assert.Contains(t, m.View(), "a.md")
	assert.Contains(t, m.View(), `Results for "abc"`)
}

func TestModel_CtrlCQuits(t *testing.T) {
	var m tea.Model = deck.New(&fakeQuerier{}, "")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
