package tui

import (
	"context"
	"time"

	"tagsearch/internal/autocomplete"
	"tagsearch/internal/config"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// ModelOptions configures a new Model
type ModelOptions struct {
	Fetcher Fetcher
	Config  *config.Config
	Logger  *zap.Logger

	// Watcher, when set, delivers config reloads to the running model
	Watcher *config.Watcher

	// Context bounds every request; cancelling it tears the model down
	Context context.Context
}

// Model is the tag search input: a text field, the suggestions for the tag
// under the cursor and the keyboard/mouse selection state.
type Model struct {
	// Input and derived query
	input textinput.Model
	query string // Tag under the cursor, trimmed

	// Suggestions for query
	suggestions    []autocomplete.Suggestion
	activeIdx      int    // Highlighted suggestion, -1 for none
	suggestionText string // Inline completion after the caret
	listOffset     int    // First suggestion shown in the dropdown

	// Request bookkeeping
	fetcher Fetcher
	ctx     context.Context    // Root context, lives as long as the model
	stop    context.CancelFunc // Cancels ctx
	reqCtx  context.Context    // Context of the in-flight request
	cancel  context.CancelFunc // Cancels reqCtx
	seq     uint64             // Only responses carrying the current seq are applied
	loading bool
	lastErr error

	// Settings
	maxVisible int
	debounce   time.Duration
	styles     Styles
	help       help.Model
	watcher    *config.Watcher
	logger     *zap.Logger

	// UI dimensions
	width  int
	height int
}

// NewModel creates a new Model with initialized state
func NewModel(opts ModelOptions) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Global()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := context.WithCancel(parent)

	ti := textinput.New()
	ti.Placeholder = cfg.Placeholder
	ti.ShowSuggestions = true
	ti.Focus()

	m := Model{
		input:      ti,
		activeIdx:  -1,
		fetcher:    opts.Fetcher,
		ctx:        ctx,
		stop:       stop,
		maxVisible: cfg.MaxVisible,
		debounce:   cfg.Debounce,
		styles:     NewStyles(cfg.Theme),
		help:       help.New(),
		watcher:    opts.Watcher,
		logger:     logger,
	}
	if m.maxVisible <= 0 {
		m.maxVisible = config.DefaultConfig().MaxVisible
	}
	return m.applyInputStyles()
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.watchConfigCmd(),
	)
}

// Close cancels any in-flight request and stops the config watcher.
// It is safe to call more than once.
func (m Model) Close() {
	m = m.cancelFetch()
	if m.stop != nil {
		m.stop()
	}
	if m.watcher != nil {
		if err := m.watcher.Stop(); err != nil {
			m.logger.Warn("stopping config watcher", zap.Error(err))
		}
	}
}

// Value returns the full text of the input
func (m Model) Value() string {
	return m.input.Value()
}

// Query returns the tag currently being completed
func (m Model) Query() string {
	return m.query
}

// Suggestions returns the current suggestion list
func (m Model) Suggestions() []autocomplete.Suggestion {
	return m.suggestions
}

// ActiveIndex returns the highlighted suggestion, or -1
func (m Model) ActiveIndex() int {
	return m.activeIdx
}

// GhostText returns the inline completion shown after the caret
func (m Model) GhostText() string {
	if m.suggestionText == "" || m.query == "" || len(m.suggestions) == 0 {
		return ""
	}
	return m.suggestionText
}

// Focused reports whether the input accepts typing
func (m Model) Focused() bool {
	return m.input.Focused()
}

func (m Model) applyInputStyles() Model {
	m.input.PromptStyle = m.styles.Prompt
	m.input.TextStyle = m.styles.Text
	m.input.PlaceholderStyle = m.styles.Placeholder
	m.input.CompletionStyle = m.styles.Ghost
	m.help.Styles.ShortKey = m.styles.HelpKey
	m.help.Styles.ShortDesc = m.styles.Help
	m.help.Styles.ShortSeparator = m.styles.Muted
	return m
}

// syncGhost hands the inline completion to the text input, which renders
// it after the value.
func (m Model) syncGhost() Model {
	if ghost := m.GhostText(); ghost != "" {
		m.input.SetSuggestions([]string{m.input.Value() + ghost})
	} else {
		m.input.SetSuggestions(nil)
	}
	return m
}

// clearSuggestions drops the list, the highlight and the inline completion
func (m Model) clearSuggestions() Model {
	m.suggestions = nil
	m.activeIdx = -1
	m.listOffset = 0
	m.suggestionText = ""
	return m
}

// visibleRows is the number of dropdown rows currently shown
func (m Model) visibleRows() int {
	return min(len(m.suggestions), m.maxVisible)
}

// scrollIntoView keeps the highlighted suggestion inside the dropdown
// window, moving it as little as possible.
func (m Model) scrollIntoView() Model {
	rows := m.visibleRows()
	if rows == 0 {
		m.listOffset = 0
		return m
	}

	if m.activeIdx >= 0 {
		if m.activeIdx < m.listOffset {
			m.listOffset = m.activeIdx
		} else if m.activeIdx >= m.listOffset+rows {
			m.listOffset = m.activeIdx - rows + 1
		}
	}

	m.listOffset = max(0, min(m.listOffset, len(m.suggestions)-rows))
	return m
}
