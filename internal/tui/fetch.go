package tui

import (
	"context"
	"time"

	"tagsearch/internal/autocomplete"
	"tagsearch/internal/config"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Fetcher retrieves suggestions for a query. autocomplete.Client implements it.
//
//go:generate mockgen -source=fetch.go -destination=mock_fetcher_test.go -package=tui
type Fetcher interface {
	Fetch(ctx context.Context, query string) ([]autocomplete.Suggestion, error)
}

// Message types
type (
	// suggestionsMsg is the outcome of one fetch, tagged with its request sequence
	suggestionsMsg struct {
		seq         uint64
		query       string
		suggestions []autocomplete.Suggestion
		err         error
	}
	debounceMsg struct {
		seq   uint64
		query string
	}
	configReloadedMsg config.ReloadEvent
	configErrMsg      struct{ error }
)

// cancelFetch aborts the in-flight request, if any, and invalidates every
// outstanding response by advancing the sequence.
func (m Model) cancelFetch() Model {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.reqCtx = nil
	m.seq++
	m.loading = false
	return m
}

// startFetch supersedes any previous request and issues one for m.query.
// An empty query clears suggestions without a request.
func (m Model) startFetch() (Model, tea.Cmd) {
	m = m.cancelFetch()

	if m.query == "" {
		m = m.clearSuggestions()
		return m, nil
	}

	ctx, cancel := context.WithCancel(m.ctx)
	m.reqCtx, m.cancel = ctx, cancel
	m.loading = true

	if m.debounce > 0 {
		return m, debounceCmd(m.seq, m.query, m.debounce)
	}
	return m, m.fetchCmd(ctx, m.seq, m.query)
}

// fetchCmd runs the request off the event loop and reports back
func (m Model) fetchCmd(ctx context.Context, seq uint64, query string) tea.Cmd {
	fetcher := m.fetcher
	return func() tea.Msg {
		suggestions, err := fetcher.Fetch(ctx, query)
		return suggestionsMsg{seq: seq, query: query, suggestions: suggestions, err: err}
	}
}

// debounceCmd delays a fetch; the request only starts if seq is still current
func debounceCmd(seq uint64, query string, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return debounceMsg{seq: seq, query: query}
	})
}

func (m Model) handleDebounce(msg debounceMsg) (Model, tea.Cmd) {
	if msg.seq != m.seq || m.reqCtx == nil {
		return m, nil
	}
	return m, m.fetchCmd(m.reqCtx, msg.seq, msg.query)
}

// handleSuggestions adopts the newest response. Superseded and cancelled
// responses leave the model untouched.
func (m Model) handleSuggestions(msg suggestionsMsg) Model {
	if msg.seq != m.seq {
		m.logger.Debug("dropping superseded response", zap.String("query", msg.query))
		return m
	}
	if autocomplete.IsCanceled(msg.err) {
		m.logger.Debug("request cancelled", zap.String("query", msg.query))
		return m
	}

	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.reqCtx = nil
	m.loading = false

	if msg.err != nil {
		m.logger.Error("autocomplete request failed",
			zap.String("query", msg.query),
			zap.Error(msg.err),
		)
		m.lastErr = msg.err
		return m.clearSuggestions()
	}

	m.lastErr = nil
	m.suggestions = msg.suggestions
	m.activeIdx = -1
	m.listOffset = 0
	m.suggestionText = autocomplete.Completion(m.query, msg.suggestions)
	return m
}

// watchConfigCmd waits for the next config reload
func (m Model) watchConfigCmd() tea.Cmd {
	w := m.watcher
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case ev := <-w.Events:
			return configReloadedMsg(ev)
		case err := <-w.Errors:
			return configErrMsg{err}
		}
	}
}

func (m Model) applyConfig(msg configReloadedMsg) Model {
	if msg.Err != nil {
		m.logger.Warn("ignoring invalid config", zap.Error(msg.Err))
		return m
	}
	cfg := msg.Config
	m.styles = NewStyles(cfg.Theme)
	m.maxVisible = cfg.MaxVisible
	m.debounce = cfg.Debounce
	m.input.Placeholder = cfg.Placeholder
	m = m.applyInputStyles()
	m = m.scrollIntoView()
	m.logger.Info("config reloaded", zap.String("theme", cfg.Theme), zap.Int("max_visible", cfg.MaxVisible))
	return m
}
