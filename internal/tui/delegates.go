package tui

import (
	"strings"

	"tagsearch/internal/autocomplete"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// suggestionRow renders one dropdown row of exactly width cells:
// the label on the left (with its antecedent for aliases) and the post
// count right-aligned.
func suggestionRow(s autocomplete.Suggestion, width int, selected bool, st Styles) string {
	if width <= 0 {
		return ""
	}

	base := st.Item
	if selected {
		base = st.SelectedItem
	}

	count := ""
	if s.PostCount != "" {
		count = s.PostCount + " post"
	}

	label := s.Label
	if s.Antecedent != "" {
		label = s.Antecedent + " → " + s.Label
	}

	// Leave room for the count and a gap
	labelWidth := width - lipgloss.Width(count) - 1
	if count == "" {
		labelWidth = width
	}
	if labelWidth < 1 {
		count = ""
		labelWidth = width
	}
	label = ansi.Truncate(label, labelWidth, "…")

	var left string
	if s.Antecedent != "" && strings.HasPrefix(label, s.Antecedent+" → ") {
		ante := st.Antecedent
		if selected {
			ante = ante.Background(st.selectedBg)
		}
		left = ante.Render(s.Antecedent+" → ") +
			st.CategoryStyle(s.Category, selected).Render(strings.TrimPrefix(label, s.Antecedent+" → "))
	} else {
		left = st.CategoryStyle(s.Category, selected).Render(label)
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(count)
	if gap < 0 {
		gap = 0
	}

	countStyle := st.Count
	if selected {
		countStyle = countStyle.Background(st.selectedBg)
	}
	return left + base.Render(strings.Repeat(" ", gap)) + countStyle.Render(count)
}

// suggestionDetail describes the highlighted suggestion in one line
func suggestionDetail(s autocomplete.Suggestion) string {
	parts := []string{autocomplete.CategoryName(s.Category)}
	if s.Type != "" {
		parts = append(parts, s.Type)
	}
	if s.Antecedent != "" {
		parts = append(parts, "alias "+s.Antecedent)
	}
	if s.PostCount != "" {
		parts = append(parts, s.PostCount+" posts")
	}
	return strings.Join(parts, " · ")
}
