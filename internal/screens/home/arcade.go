package home

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/spacey-learn/spacey/internal/catalog"
	lsn "github.com/spacey-learn/spacey/internal/lesson"
	"github.com/spacey-learn/spacey/internal/ui/components"
	"github.com/spacey-learn/spacey/internal/ui/theme"
)

// Block-letter title (same art as welcome/banner.go).
const arcadeTitleFull = ` ███████╗██████╗  █████╗  ██████╗███████╗██╗   ██╗
 ██╔════╝██╔══██╗██╔══██╗██╔════╝██╔════╝╚██╗ ██╔╝
 ███████╗██████╔╝███████║██║     █████╗   ╚████╔╝
 ╚════██║██╔═══╝ ██╔══██║██║     ██╔══╝    ╚██╔╝
 ███████║██║     ██║  ██║╚██████╗███████╗   ██║
 ╚══════╝╚═╝     ╚═╝  ╚═╝ ╚═════╝╚══════╝   ╚═╝`

const arcadeTitleCompact = "S · P · A · C · E · Y"

// comingSoon lists lessons shown on the dashboard but not yet playable.
var comingSoon = []string{
	"Build Your Own Satellite",
	"Spaghettification",
	"Zero Gravity",
	"What's New in Space Exploration",
}

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().
		Foreground(theme.ArcadeYellow).
		Bold(true)

	if compact {
		return lipgloss.NewStyle().
			Width(cw).
			Align(lipgloss.Center).
			Render(style.Render(arcadeTitleCompact))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(arcadeTitleFull))
}

// renderStatsBar renders the dashboard stats in a bordered box matching content width.
func renderStatsBar(rec lsn.ProgressRecord, badgeCount, cw int, compact bool) string {
	scoreStyle := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	badgeStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	dateStyle := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			scoreStyle.Render(fmt.Sprintf("◎%d%%", rec.Score)),
			badgeStyle.Render(fmt.Sprintf("★%d", badgeCount)),
			dateText(rec, true, dateStyle, dimStyle),
		)
	} else {
		stats = fmt.Sprintf("%s  %s  %s",
			scoreStyle.Render(fmt.Sprintf("◎ %d%% SCORE", rec.Score)),
			badgeStyle.Render(fmt.Sprintf("★ %d BADGES", badgeCount)),
			dateText(rec, false, dateStyle, dimStyle),
		)
	}

	// Wrap in a double-border box at the same content width
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

func dateText(rec lsn.ProgressRecord, compact bool, active, dim lipgloss.Style) string {
	if !rec.Completed {
		if compact {
			return dim.Render("–")
		}
		return dim.Render("NOT FLOWN YET")
	}
	if compact {
		return active.Render(rec.Date.Local().Format("Jan 2"))
	}
	return active.Render("DONE " + strings.ToUpper(FormatDate(rec.Date)))
}

// FormatDate renders a completion date the way the dashboard shows it.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Local().Format("Jan 2, 2006")
}

// renderLessonCard shows the lesson with its completion state.
func renderLessonCard(cat *catalog.Catalog, rec lsn.ProgressRecord, cw int) string {
	title := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(cat.Title())
	desc := lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw - 6).Render(cat.Description())

	var status string
	if rec.Completed {
		status = lipgloss.NewStyle().Foreground(theme.Success).
			Render(fmt.Sprintf("✔ %d%%  Completed on %s", rec.Score, FormatDate(rec.Date)))
	} else {
		status = lipgloss.NewStyle().Foreground(theme.Accent).Render("Ready for launch")
	}

	body := strings.Join([]string{title, desc, status}, "\n")
	border := theme.Border
	if rec.Completed {
		border = theme.Success
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(cw - 2).
		Padding(0, 1).
		Render(body)
}

// renderComingSoon lists the lessons that are not playable yet.
func renderComingSoon(cw int) string {
	head := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render("COMING SOON")
	lines := []string{head}
	for _, t := range comingSoon {
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.TextDim).Render("☆ "+t))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

func renderError(msg string, cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Error).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ " + msg)
}

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// renderArcadeMenu renders each menu item as a fixed-width button.
func renderArcadeMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	disabledBtn := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	var buttons []string
	for i, label := range items {
		if disabled[i] {
			buttons = append(buttons, disabledBtn.Render(label))
		} else {
			buttons = append(buttons, components.ArcadeButton(label, i == selected, buttonWidth))
		}
	}
	block := strings.Join(buttons, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderArcadeMenuCompact renders menu items as simple text lines (no borders)
// for very small terminals where bordered buttons would overflow.
func renderArcadeMenuCompact(items []string, selected int, cw int, disabled map[int]bool) string {
	var lines []string
	for i, label := range items {
		var line string
		if disabled[i] {
			line = lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("   " + label)
		} else if i == selected {
			line = lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.ArcadeYellow).
				Bold(true).
				Render(" ▸ " + label + " ")
		} else {
			line = lipgloss.NewStyle().
				Foreground(theme.Text).
				Render("   " + label)
		}
		lines = append(lines, line)
	}
	block := strings.Join(lines, "\n")

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderMascotBox renders the guide centered in a box matching content width.
func renderMascotBox(mood string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(components.Avatar(mood))
}
