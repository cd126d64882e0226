package tui

import (
	"tagsearch/internal/autocomplete"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(1, m.contentWidth()-3)
		return m, nil

	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)

	case tea.MouseMsg:
		m, cmd = m.handleMouse(msg)

	case debounceMsg:
		m, cmd = m.handleDebounce(msg)

	case suggestionsMsg:
		m = m.handleSuggestions(msg)

	case configReloadedMsg:
		m = m.applyConfig(msg)
		cmd = m.watchConfigCmd()

	case configErrMsg:
		m.logger.Warn("config watcher error", zap.Error(msg.error))
		cmd = m.watchConfigCmd()

	default:
		// Cursor blink and friends
		m.input, cmd = m.input.Update(msg)
	}

	return m.syncGhost(), cmd
}

// handleKey routes a key press to the selection controller or the input
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, keys.Quit) {
		return m.quit()
	}

	if !m.input.Focused() {
		switch {
		case key.Matches(msg, keys.LeaveQuit):
			return m.quit()
		case key.Matches(msg, keys.Edit):
			return m, m.input.Focus()
		}
		return m, nil
	}

	if len(m.suggestions) > 0 {
		switch {
		case key.Matches(msg, keys.Down):
			return m.moveActive(1), nil
		case key.Matches(msg, keys.Up):
			return m.moveActive(-1), nil
		case key.Matches(msg, keys.Complete):
			return m.commit(0), nil
		case key.Matches(msg, keys.Select):
			if m.activeIdx >= 0 {
				return m.commit(m.activeIdx), nil
			}
			return m.commit(0), nil
		case key.Matches(msg, keys.Dismiss):
			return m.dismiss(), nil
		}
	} else if key.Matches(msg, keys.Dismiss) {
		return m.dismiss(), nil
	}

	return m.updateInput(msg)
}

// updateInput lets the text input handle msg and re-derives the query when
// the text changed.
func (m Model) updateInput(msg tea.Msg) (Model, tea.Cmd) {
	before := m.input.Value()

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, inputCmd
	}

	var fetchCmd tea.Cmd
	m, fetchCmd = m.inputChanged()
	return m, tea.Batch(inputCmd, fetchCmd)
}

// inputChanged derives the query at the cursor. A new query supersedes the
// in-flight request.
func (m Model) inputChanged() (Model, tea.Cmd) {
	query := autocomplete.ExtractQuery(m.input.Value(), m.input.Position())
	m.activeIdx = -1
	m.suggestionText = ""

	if query == m.query {
		return m, nil
	}
	m.query = query
	return m.startFetch()
}

// moveActive moves the highlight by delta, wrapping at both ends.
// Moving up from no highlight lands on the last suggestion.
func (m Model) moveActive(delta int) Model {
	n := len(m.suggestions)
	if n == 0 {
		return m
	}

	switch {
	case delta > 0:
		m.activeIdx = (m.activeIdx + 1) % n
	case m.activeIdx-1 >= 0:
		m.activeIdx--
	default:
		m.activeIdx = n - 1
	}
	return m.scrollIntoView()
}

// commit splices suggestion idx into the input at the cursor and resets
// the transient state.
func (m Model) commit(idx int) Model {
	if idx < 0 || idx >= len(m.suggestions) {
		return m
	}
	chosen := m.suggestions[idx]

	value := autocomplete.Complete(m.input.Value(), m.input.Position(), chosen.InsertText())
	m.input.SetValue(value)
	m.input.CursorEnd()

	m = m.cancelFetch()
	m.query = ""
	m.lastErr = nil
	m = m.clearSuggestions()

	m.logger.Debug("suggestion committed",
		zap.String("tag", chosen.InsertText()),
		zap.Int("index", idx),
	)
	return m
}

// dismiss closes the dropdown and releases focus
func (m Model) dismiss() Model {
	m = m.cancelFetch()
	m = m.clearSuggestions()
	m.input.Blur()
	return m
}

func (m Model) quit() (Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}

// handleMouse commits a clicked suggestion; the wheel moves the highlight
func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if len(m.suggestions) == 0 {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelDown:
		return m.moveActive(1), nil
	case tea.MouseButtonWheelUp:
		return m.moveActive(-1), nil
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		if idx := m.suggestionAt(msg.Y); idx >= 0 {
			return m.commit(idx), nil
		}
	}
	return m, nil
}
