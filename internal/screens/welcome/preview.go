package welcome

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/spacey-learn/spacey/internal/catalog"
	"github.com/spacey-learn/spacey/internal/ui/components"
	"github.com/spacey-learn/spacey/internal/ui/theme"
)

const logoArt = ` ███████╗██████╗  █████╗  ██████╗███████╗██╗   ██╗
 ██╔════╝██╔══██╗██╔══██╗██╔════╝██╔════╝╚██╗ ██╔╝
 ███████╗██████╔╝███████║██║     █████╗   ╚████╔╝
 ╚════██║██╔═══╝ ██╔══██║██║     ██╔══╝    ╚██╔╝
 ███████║██║     ██║  ██║╚██████╗███████╗   ██║
 ╚══════╝╚═╝     ╚═╝  ╚═╝ ╚═════╝╚══════╝   ╚═╝`

const logoCompact = "S P A C E Y"

// logoMinWidth is the narrowest terminal that fits logoArt.
const logoMinWidth = 54

const roverArt = `  .-"""-.
 / (o o) \
|    ^    |
|_________|
[__ROVER__]
 (O) (O) (O)`

var starField = []string{"★  ·  ✦  ·  ★", "·  ✦  ·  ★  ·", "✦  ·  ★  ·  ✦"}

func (w *WelcomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	stars := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).
		Render(starField[w.frame%len(starField)])
	heading := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
		Render("Welcome to Spacey!")
	subtitle := lipgloss.NewStyle().Foreground(theme.TextDim).
		Render("Explore the wonders of space through interactive lessons")

	sections := []string{
		stars,
		renderLogo(width),
		"",
		heading,
		subtitle,
		"",
		renderPreview(w.deps.Catalog, cw),
		"",
	}

	if w.loading {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render("Preparing your mission..."))
	} else {
		sections = append(sections, w.menu.View())
	}
	if w.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(w.errMsg))
	}
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
		Render("Your progress is saved on this computer."))

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func renderLogo(width int) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	if width < logoMinWidth {
		return style.Render(logoCompact)
	}
	return style.Render(logoArt)
}

// renderPreview is the lesson card: rover, title, blurb and the
// duration and age labels when the lesson has them.
func renderPreview(cat *catalog.Catalog, cw int) string {
	rover := lipgloss.NewStyle().Foreground(theme.Accent).Render(roverArt)
	textWidth := cw - lipgloss.Width(rover) - 8
	if textWidth < 16 {
		textWidth = 16
	}

	lines := []string{
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(cat.Title()),
		lipgloss.NewStyle().Foreground(theme.TextDim).Width(textWidth).Render(cat.Description()),
	}
	var info []string
	if d := cat.Duration(); d != "" {
		info = append(info, "Duration: "+d)
	}
	if a := cat.Ages(); a != "" {
		info = append(info, "Age: "+a)
	}
	if len(info) > 0 {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Render(strings.Join(info, "   ")))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Center, rover, "  ", lipgloss.JoinVertical(lipgloss.Left, lines...))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Accent).
		Padding(0, 1).
		Render(body)
}
