// Package app is the root Bubble Tea model of the terminal client.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/router"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/screen"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/screens/home"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/screens/login"
	sessionscreen "github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/screens/session"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/ui/layout"
)

// Client is the practice server API used by the screens.
type Client interface {
	home.API
	login.API
}

// Options configures the terminal client.
type Options struct {
	Client Client
	// Username, when set, signs in without prompting.
	Username      string
	StatsInterval time.Duration
	Logger        *slog.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	var signIn func(username string) screen.Screen
	signIn = func(username string) screen.Screen {
		return login.New(opts.Client, username, func(user *api.LoginResponse) screen.Screen {
			return home.New(home.Deps{
				Client:  opts.Client,
				User:    user,
				Session: sessionscreen.Options{StatsInterval: opts.StatsInterval, Logger: opts.Logger},
				SignIn:  func() screen.Screen { return signIn("") },
			})
		})
	}
	return AppModel{router: router.New(signIn(opts.Username))}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// status renders the header's level and score when the active screen
// knows them.
func (m AppModel) status() string {
	p, ok := m.router.Active().(screen.ProgressProvider)
	if !ok {
		return ""
	}
	level, score, known := p.Progress()
	if !known {
		return ""
	}
	return fmt.Sprintf("Level %d  Score: %d/%d  ", level, score, api.MaxScore)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.status(), m.width)

	var footerHints []layout.KeyHint
	switch {
	case isHintProvider(active):
		footerHints = active.(screen.KeyHintProvider).KeyHints()
	case m.router.Depth() > 1:
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	default:
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func isHintProvider(s screen.Screen) bool {
	_, ok := s.(screen.KeyHintProvider)
	return ok
}

// Run starts the terminal client and blocks until the learner quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running terminal client: %w", err)
	}
	return nil
}
