// Package dashboard shows the learner's totals, recent attempts and the
// tutor's performance summary.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/router"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/screen"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/ui/layout"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/ui/theme"
)

// API loads the dashboard.
type API interface {
	Dashboard(ctx context.Context) (*api.DashboardResponse, error)
}

type dashboardLoadedMsg struct {
	resp *api.DashboardResponse
	err  error
}

// DashboardScreen implements screen.Screen.
type DashboardScreen struct {
	api      API
	data     *api.DashboardResponse
	selected int
	loaded   bool
	errMsg   string
}

var (
	_ screen.Screen           = (*DashboardScreen)(nil)
	_ screen.KeyHintProvider  = (*DashboardScreen)(nil)
	_ screen.ProgressProvider = (*DashboardScreen)(nil)
)

func New(client API) *DashboardScreen {
	return &DashboardScreen{api: client}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return s.load()
}

func (s *DashboardScreen) load() tea.Cmd {
	return func() tea.Msg {
		resp, err := s.api.Dashboard(context.Background())
		return dashboardLoadedMsg{resp: resp, err: err}
	}
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "r", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Progress() (int, int, bool) {
	if s.data == nil {
		return 0, 0, false
	}
	return s.data.User.Level, s.data.User.Score, true
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		s.loaded = true
		switch {
		case msg.err != nil:
			s.errMsg = msg.err.Error()
		case msg.resp == nil:
			s.errMsg = "empty dashboard response"
		case msg.resp.Error != "":
			s.errMsg = msg.resp.Error
		default:
			s.errMsg = ""
			s.data = msg.resp
			s.selected = min(s.selected, max(len(s.data.RecentProblems)-1, 0))
		}
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r":
			return s, s.load()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.data != nil && s.selected < len(s.data.RecentProblems)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	centered := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return centered.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", ansi.Strip(s.errMsg)))
	}
	if !s.loaded || s.data == nil {
		return centered.Foreground(theme.TextDim).Render("\n\n  Loading dashboard...")
	}

	d := s.data
	var b strings.Builder
	b.WriteString("\n")

	line := func(str string) {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, str))
		b.WriteString("\n")
	}

	u := d.User
	line(theme.Title.Render(ansi.Strip(u.Username)))
	line(theme.Badge.Render(fmt.Sprintf("Level %d", u.Level)) + "  " +
		theme.Badge.Render(fmt.Sprintf("Score: %d/%d", u.Score, api.MaxScore)))
	line(lipgloss.NewStyle().Foreground(theme.Text).Render(
		fmt.Sprintf("%d problems attempted, %d correct", u.TotalProblems, u.CorrectAnswers)))
	b.WriteString("\n")

	p := d.Performance
	line(theme.Subtitle.Render("Recent performance"))
	line(lipgloss.NewStyle().Foreground(theme.Text).Render(
		fmt.Sprintf("Accuracy %.0f%%  Average time %.1fs", p.Accuracy, p.AverageTime)))
	if p.Suggestion != "" {
		line(lipgloss.NewStyle().Foreground(theme.Accent).Italic(true).Render(ansi.Strip(p.Suggestion)))
	}
	b.WriteString("\n")

	line(theme.Subtitle.Render("Recent problems"))
	if len(d.RecentProblems) == 0 {
		line(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("No problems yet. Start practicing!"))
		return b.String()
	}
	for i, r := range d.RecentProblems {
		line(s.renderRecord(i, r))
	}
	return b.String()
}

func (s *DashboardScreen) renderRecord(i int, r api.ProblemRecord) string {
	prefix := "  "
	if i == s.selected {
		prefix = "> "
	}
	mark := theme.Correct.Render("✓")
	if !r.IsCorrect {
		mark = theme.Incorrect.Render("✗")
	}
	text := fmt.Sprintf("%s%-18s  answer %-6s  yours %-6s  %3ds  %s",
		prefix, ansi.Strip(r.Problem), formatNumber(r.Answer), formatNumber(r.StudentAnswer),
		r.TimeTaken, r.CreatedAt.Local().Format("Jan 02 15:04"))

	style := lipgloss.NewStyle().Foreground(theme.Text)
	if i == s.selected {
		style = style.Foreground(theme.Primary).Bold(true)
	}
	return style.Render(text) + " " + mark
}

func formatNumber(v float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
