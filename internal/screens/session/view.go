package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
	sess "github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/session"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/ui/components"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}
	var sections []string

	if b := s.ctrl.Banner(); b != nil {
		sections = append(sections, center(theme.Banner.Render(sanitize(b.Text))), "")
	}

	sections = append(sections, center(s.renderStats(width)), "")

	var eq string
	switch {
	case s.ctrl.Equation() != "":
		eq = theme.Equation.Render(sanitize(s.ctrl.Equation()))
	case s.ctrl.Loading():
		eq = theme.Hint.Render("Loading problem...")
	default:
		eq = theme.Hint.Render("No problem loaded. Press Ctrl+N for a new one.")
	}
	sections = append(sections, center(eq), "")

	timer := lipgloss.NewStyle().Foreground(theme.TextDim).Render("Time " + s.ctrl.TimerText())
	sections = append(sections, center(s.input.View()+"  "+timer), "")

	if n := s.ctrl.Notice(); n != nil {
		sections = append(sections, center(renderNotice(n, min(width-4, 70))))
	}

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Top, "\n"+content)
}

func (s *SessionScreen) renderStats(width int) string {
	st := s.ctrl.Stats()
	if st == nil {
		return theme.Hint.Render("Loading progress...")
	}
	badges := theme.Badge.Render(st.LevelLabel()) + "  " + theme.Badge.Render(st.ScoreLabel())
	bar := components.NewProgressBar("", st.ProgressPercent(), true, min(width-8, 50)).View()
	return badges + "\n" + bar
}

// renderNotice renders plain or structured feedback. Server text is shown
// verbatim with terminal control sequences removed.
func renderNotice(n *sess.Notice, width int) string {
	style := theme.NoticeDanger
	switch n.Level {
	case sess.NoticeSuccess:
		style = theme.NoticeSuccess
	case sess.NoticeWarning:
		style = theme.NoticeWarning
	}
	return style.Width(width).Render(FeedbackText(n.Feedback))
}

// FeedbackText lays out feedback for the terminal: a bold message, the
// numbered steps and an italic tip.
func FeedbackText(fb *api.Feedback) string {
	if fb == nil {
		return ""
	}
	if !fb.IsStructured() {
		return sanitize(fb.Text)
	}

	d := fb.Detail
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(sanitize(d.Message)))
	for i, step := range d.Steps {
		fmt.Fprintf(&b, "\n%d. %s", i+1, sanitize(step))
	}
	if d.Explanation != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Italic(true).Render("Tip: " + sanitize(d.Explanation)))
	}
	return b.String()
}

func sanitize(s string) string {
	return ansi.Strip(s)
}
