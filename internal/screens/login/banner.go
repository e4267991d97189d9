package login

import (
	"charm.land/lipgloss/v2"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/ui/theme"
)

const bannerArt = `
 ██╗████████╗███████╗
 ██║╚══██╔══╝██╔════╝
 ██║   ██║   ███████╗
 ██║   ██║   ╚════██║
 ██║   ██║   ███████║
 ╚═╝   ╚═╝   ╚══════╝`

const bannerCompact = "I T S"

// RenderBanner returns the ITS banner, or a one-line version on narrow
// terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 30 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
