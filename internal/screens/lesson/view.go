package lesson

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	lsn "github.com/spacey-learn/spacey/internal/lesson"
	"github.com/spacey-learn/spacey/internal/ui/components"
	"github.com/spacey-learn/spacey/internal/ui/theme"
)

func (s *LessonScreen) View(width, height int) string {
	v := s.session.View()

	var b strings.Builder
	b.WriteString(renderProgress(v, width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	b.WriteString(s.renderGuide(v, width))
	b.WriteString("\n\n")

	switch {
	case v.Quiz != nil:
		b.WriteString(s.renderQuiz(v.Quiz, width))
	case v.Results != nil:
		b.WriteString(renderResults(v.Results, width))
	default:
		b.WriteString(renderExtras(v, width))
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + s.errMsg))
	}

	return lipgloss.NewStyle().Width(width).Height(height).Render(b.String())
}

func renderProgress(v lsn.View, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)

	switch {
	case v.Quiz != nil:
		return left.Render(fmt.Sprintf("  Quiz  Question %d of %d", v.Quiz.Index+1, v.Quiz.Total)) +
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("   %s %d", "*", v.Quiz.Score))
	case v.Results != nil:
		return left.Render("  Mission complete")
	case v.Stage == "content" && v.SectionCount > 0:
		label := fmt.Sprintf("  Section %d of %d", v.SectionIndex+1, v.SectionCount)
		pct := float64(v.SectionIndex+1) / float64(v.SectionCount)
		return components.NewProgressBar(label, pct, false, min(width-4, 60)).View()
	case v.Stage == "conclusion":
		return left.Render("  Wrapping up")
	default:
		return left.Render("  Briefing")
	}
}

// renderGuide places the robot guide beside its speech.
func (s *LessonScreen) renderGuide(v lsn.View, width int) string {
	state := v.AnimationTag
	if v.Mood != "" && (v.Quiz != nil || v.Results != nil || state == "") {
		state = v.Mood
	}
	avatar := components.Avatar(state)

	textWidth := max(min(width-lipgloss.Width(avatar)-8, 70), 20)
	var speech strings.Builder
	if v.SectionTitle != "" && v.Quiz == nil && v.Results == nil {
		speech.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(v.SectionTitle))
		speech.WriteString("\n\n")
	}
	text := v.Narration
	if !v.NarrationComplete {
		text += "▌"
	}
	speech.WriteString(lipgloss.NewStyle().Width(textWidth).Foreground(theme.Text).Render(text))

	bubble := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1).
		Render(speech.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, "  ", avatar, "  ", bubble)
}

func renderExtras(v lsn.View, width int) string {
	var b strings.Builder
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	if v.VisualRef != "" {
		b.WriteString(dim.Render("  [visual] " + v.VisualRef))
		b.WriteString("\n")
	}
	if v.Transition != "" && v.NarrationComplete {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render("  → " + v.Transition))
		b.WriteString("\n")
	}

	if v.AwaitingPermission && v.NarrationComplete {
		b.WriteString("\n")
		ask := "Can I use your camera so I can see you while we explore?"
		if v.PermissionDenied {
			ask = "No camera yet. I'll wait here until you're ready."
		}
		prompt := lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.ArcadeYellow).
			Padding(0, 2).
			Render(ask + "\n\n[Y] Allow    [N] Not now")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, prompt))
	}
	return b.String()
}

func (s *LessonScreen) renderQuiz(q *lsn.QuizView, width int) string {
	var b strings.Builder
	b.WriteString(s.choiceFor(q).View())

	if q.FeedbackVisible {
		b.WriteString("\n")
		if q.Correct {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Bold(true).Render("  Correct!"))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("  Not quite"))
		}
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Left, b.String())
}

// choiceFor returns the selector for q, rebuilding it when the question
// changed since the last key press.
func (s *LessonScreen) choiceFor(q *lsn.QuizView) components.MultiChoice {
	if s.choiceIdx != q.Index {
		s.choice = components.NewMultiChoice(q.Options)
		s.choiceIdx = q.Index
	}
	return s.choice
}

func renderResults(r *lsn.ResultsView, width int) string {
	var b strings.Builder

	score := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true).
		Render(fmt.Sprintf("%d / %d  (%d%%)", r.Score, r.Total, r.Percentage))
	b.WriteString(score)
	b.WriteString("\n\n")

	switch {
	case r.BadgesUnknown:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Badges couldn't be checked right now."))
		b.WriteString("\n")
	case len(r.NewBadges) > 0:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("New badges"))
		b.WriteString("\n")
		for _, badge := range r.NewBadges {
			b.WriteString(fmt.Sprintf("%s %s  %s\n",
				lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Render("★"),
				lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(badge.Name),
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(badge.Description)))
		}
	case len(r.Badges) > 0:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Badges already earned, nice work keeping them!"))
		b.WriteString("\n")
	}

	if r.PersistError != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("Progress could not be saved: " + r.PersistError))
	}

	card := components.ArcadeCard(strings.TrimRight(b.String(), "\n"), min(width-4, 64))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, card)
}
