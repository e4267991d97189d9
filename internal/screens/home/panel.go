package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/ui/components"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/ui/theme"
)

// contentWidth returns the shared width of the home panels.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 56)
}

func panel(cw int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(cw).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2)
}

// renderSummary shows the learner's level and score as of login.
func renderSummary(user *api.LoginResponse, cw int) string {
	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(user.Username)
	greeting := "Welcome, " + name

	badges := theme.Badge.Render(fmt.Sprintf("Level %d", user.Level)) + "  " +
		theme.Badge.Render(fmt.Sprintf("Score: %d/%d", user.Score, api.MaxScore))

	pct := float64(user.Score) / float64(api.MaxScore) * 100
	bar := components.NewProgressBar("", pct, true, cw-6).View()

	return panel(cw).Render(strings.Join([]string{greeting, "", badges, bar}, "\n"))
}

// renderMenu draws the menu with the selected row highlighted.
func renderMenu(m components.Menu, cw int) string {
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		if i == m.Selected {
			lines = append(lines, theme.Selected.Render("▸ "+item.Label))
			continue
		}
		lines = append(lines, theme.Unselected.Render("  "+item.Label))
	}
	return panel(cw).Render(strings.Join(lines, "\n"))
}
