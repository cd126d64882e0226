package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Layout rows, top to bottom: header, blank line, the three lines of the
// bordered input, the dropdown's top border, then one row per suggestion.
const (
	headerRows     = 2
	inputBoxRows   = 3
	firstListRow   = headerRows + inputBoxRows + 1
	defaultWidth   = 60
	maxBoxWidth    = 80
	minBoxWidth    = 20
	boxChromeWidth = 4 // border + padding on both sides
)

// View renders the UI based on the model state
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	// Header with title and request status
	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	b.WriteString(m.renderInput())
	b.WriteString("\n")

	if len(m.suggestions) > 0 {
		b.WriteString(m.renderDropdown())
		b.WriteString("\n")
	}

	// Help footer
	b.WriteString(m.renderHelp())

	return b.String()
}

// boxWidth is the outer width of the input and dropdown boxes
func (m Model) boxWidth() int {
	w := m.width - 2
	if m.width == 0 {
		w = defaultWidth
	}
	return max(minBoxWidth, min(w, maxBoxWidth))
}

// contentWidth is the text width inside the input box
func (m Model) contentWidth() int {
	return m.boxWidth() - boxChromeWidth
}

// renderHeader renders the title and a one-line status
func (m Model) renderHeader() string {
	title := m.styles.Title.Render("Tag Search")

	var status string
	switch {
	case m.lastErr != nil:
		status = m.styles.Error.Render("request failed")
	case m.loading:
		status = m.styles.Status.Render(fmt.Sprintf("searching %q...", m.query))
	case m.query != "" && len(m.suggestions) > 0:
		status = m.styles.Status.Render(fmt.Sprintf("%d suggestions for %q", len(m.suggestions), m.query))
	case m.query != "":
		status = m.styles.Status.Render(fmt.Sprintf("no suggestions for %q", m.query))
	}

	// Calculate spacing
	spacing := m.boxWidth() - lipgloss.Width(title) - lipgloss.Width(status)
	if spacing < 1 {
		spacing = 1
	}
	return ansi.Truncate(title+strings.Repeat(" ", spacing)+status, m.width, "")
}

// renderInput renders the bordered text input with its inline completion
func (m Model) renderInput() string {
	width := m.contentWidth()
	line := ansi.Truncate(m.input.View(), width, "")
	if pad := width - lipgloss.Width(line); pad > 0 {
		line += strings.Repeat(" ", pad)
	}

	if m.input.Focused() {
		return m.styles.InputBox.Render(line)
	}
	return m.styles.InputBlurred.Render(line)
}

// renderDropdown renders the visible window of suggestions
func (m Model) renderDropdown() string {
	rows := m.visibleRows()
	width := m.boxWidth() - 2

	lines := make([]string, 0, rows+2)
	for i := m.listOffset; i < m.listOffset+rows && i < len(m.suggestions); i++ {
		lines = append(lines, suggestionRow(m.suggestions[i], width, i == m.activeIdx, m.styles))
	}

	if len(m.suggestions) > rows {
		more := fmt.Sprintf("%d-%d of %d", m.listOffset+1, m.listOffset+rows, len(m.suggestions))
		lines = append(lines, m.styles.Muted.Render(padLeft(more, width)))
	}
	if m.activeIdx >= 0 && m.activeIdx < len(m.suggestions) {
		detail := ansi.Truncate(suggestionDetail(m.suggestions[m.activeIdx]), width, "…")
		lines = append(lines, m.styles.Muted.Render(padRight(detail, width)))
	}

	return m.styles.Dropdown.Render(strings.Join(lines, "\n"))
}

// suggestionAt maps a screen row to the suggestion drawn there, or -1
func (m Model) suggestionAt(y int) int {
	row := y - firstListRow
	if row < 0 || row >= m.visibleRows() {
		return -1
	}
	idx := m.listOffset + row
	if idx >= len(m.suggestions) {
		return -1
	}
	return idx
}

// renderHelp renders the help footer
func (m Model) renderHelp() string {
	return m.help.ShortHelpView(m.helpBindings())
}

// padRight pads a string with spaces on the right to reach target width
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// padLeft pads a string with spaces on the left to reach target width
func padLeft(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return strings.Repeat(" ", width-w) + s
}
