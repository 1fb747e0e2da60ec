package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/spacey-learn/spacey/internal/ui/theme"
)

const avatarIdle = `  .---.
 ( o o )
 |  -  |
 '-----'
  /| |\`

const avatarTalking = `  .---.
 ( o o )
 |  O  |
 '-----'
  /| |\`

const avatarHappy = `  .---.
 ( ^ ^ )
 |  u  |
 '-----'
  /| |\`

const avatarCelebrating = `\ .---. /
 ( * * )
 |  D  |
 '-----'
  /| |\`

const avatarThinking = `  .---. ?
 ( o - )
 |  ~  |
 '-----'
  /| |\`

// Avatar returns the robot guide art for an animation tag or mood.
func Avatar(state string) string {
	var art string
	var fg color.Color = theme.Primary

	switch state {
	case "talking", "explaining", "greeting":
		art = avatarTalking
		fg = theme.Secondary
	case "happy", "encouraging":
		art = avatarHappy
		fg = theme.Success
	case "celebrating":
		art = avatarCelebrating
		fg = theme.ArcadeYellow
	case "thinking", "supportive":
		art = avatarThinking
		fg = theme.Accent
	default:
		art = avatarIdle
	}

	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
