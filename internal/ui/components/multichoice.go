package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/spacey-learn/spacey/internal/ui/theme"
)

// MultiChoice is a multiple-choice selector. It only tracks the cursor;
// scoring belongs to the quiz engine, which reports back through Lock.
type MultiChoice struct {
	Options []string
	Cursor  int

	locked  bool
	chosen  int
	correct bool
}

// NewMultiChoice creates a selector over options with the cursor on the
// first one.
func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, chosen: -1}
}

// Update moves the cursor. Number keys jump straight to an option.
func (m MultiChoice) Update(msg tea.Msg) MultiChoice {
	if m.locked {
		return m
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m
	}

	switch k := kmsg.String(); k {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	default:
		if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
			if i := int(k[0] - '1'); i < len(m.Options) {
				m.Cursor = i
			}
		}
	}
	return m
}

// Lock freezes the selector on the chosen option and colours it by
// correctness.
func (m MultiChoice) Lock(chosen int, correct bool) MultiChoice {
	m.locked = true
	m.chosen = chosen
	m.correct = correct
	m.Cursor = chosen
	return m
}

// Locked reports whether an answer has been recorded.
func (m MultiChoice) Locked() bool {
	return m.locked
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.locked {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)

		var style lipgloss.Style
		switch {
		case m.locked && i == m.chosen && m.correct:
			style = theme.Correct
		case m.locked && i == m.chosen:
			style = theme.Incorrect
		case m.locked:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
