// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 DocPack Contributors

// Package deck is the interactive terminal browser for a frozen docpack:
// type a query, flip through scored chunks.
package deck

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/doctown/docpack/internal/store"
)

// recallLimit is how many results a deck query fetches.
const recallLimit = 10

// Querier is the deck-facing recall surface: query text in, scored chunks out.
type Querier interface {
	Recall(ctx context.Context, query string, limit int) ([]store.SearchResult, error)
}

// recallDoneMsg carries a finished recall back into Update. Recall embeds the
// query text, which may be a network call, so it runs as a command instead of
// blocking the event loop.
type recallDoneMsg struct {
	query   string
	results []store.SearchResult
	err     error
}

// Model is the Bubble Tea model for the deck.
type Model struct {
	querier  Querier
	input    textinput.Model
	viewport viewport.Model
	results  []store.SearchResult
	summary  string
	status   string
	cursor   int
	ready    bool
}

// New creates a deck model. summary is the one-line pack description shown
// under the header.
func New(querier Querier, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type query and press Enter"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		querier:  querier,
		input:    ti,
		viewport: vp,
		summary:  summary,
		status:   "Loaded. Type to search.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header + summary, status, query box, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.status = fmt.Sprintf("Searching %q...", q)
				return m, m.runQuery(q)
			}
		case "down":
			if len(m.results) > 0 {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.renderCurrentResult())
				return m, nil
			}
		}
	case recallDoneMsg:
		switch {
		case msg.err != nil:
			m.status = "Error: " + msg.err.Error()
			m.results = nil
		case len(msg.results) == 0:
			m.status = fmt.Sprintf("No matches for %q", msg.query)
			m.results = nil
		default:
			m.status = fmt.Sprintf("Results for %q", msg.query)
			m.results = msg.results
			m.cursor = 0
		}
		m.viewport.SetContent(m.renderCurrentResult())
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// runQuery returns the command that performs recall off the event loop.
func (m Model) runQuery(query string) tea.Cmd {
	querier := m.querier
	return func() tea.Msg {
		res, err := querier.Recall(context.Background(), query, recallLimit)
		return recallDoneMsg{query: query, results: res, err: err}
	}
}

// View renders the deck layout and current result.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("DocPack Deck")
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	r := m.results[m.cursor]
	title := fmt.Sprintf("%s  |  result %d/%d  score=%.3f",
		pathStyle.Render(r.FilePath), m.cursor+1, len(m.results), r.Score)
	return title + "\n\n" + r.Text
}

// Run starts the deck against querier in the alternate screen.
func Run(querier Querier, summary string) error {
	p := tea.NewProgram(New(querier, summary), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	pathStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
)
