// Package layout renders the frame around screens.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/ui/theme"
)

// Minimum terminal size the client renders in.
const (
	MinWidth  = 72
	MinHeight = 22
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	text := fmt.Sprintf("The terminal is %dx%d.\nResize it to at least %dx%d to practice.",
		width, height, MinWidth, MinHeight)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Warning).Align(lipgloss.Center).Render(text))
}

func bar(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)
}

// RenderHeader shows "ITS · title" on the left and status, usually the
// learner's level and score, on the right.
func RenderHeader(title, status string, width int) string {
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("ITS")
	if title != "" {
		left += lipgloss.NewStyle().Foreground(theme.TextDim).Render(" · ") +
			lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	}
	right := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(status)

	// border (2) + padding (2)
	inner := max(width-4, 0)
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return bar(width).Render(left + strings.Repeat(" ", gap) + right)
}

// RenderFooter lists key hints, dropping trailing hints that do not fit.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	inner := max(width-4, 0)
	var line string
	for _, h := range hints {
		part := keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description)
		if line != "" {
			part = "   " + part
		}
		if lipgloss.Width(line+part) > inner {
			break
		}
		line += part
	}
	return bar(width).Render(line)
}

// RenderFrame stacks header, content and footer, giving the content all the
// height that is left.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
