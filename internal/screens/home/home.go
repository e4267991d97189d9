// Package home is the main menu shown after login.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/router"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/screen"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/screens/dashboard"
	sessionscreen "github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/screens/session"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/ui/components"
)

// API is everything the screens reachable from home need.
type API interface {
	sessionscreen.API
	dashboard.API
	Logout(ctx context.Context) error
}

// Deps wires the home screen.
type Deps struct {
	Client  API
	User    *api.LoginResponse
	Session sessionscreen.Options
	// SignIn builds the login screen shown after logging out.
	SignIn func() screen.Screen
}

// HomeScreen implements screen.Screen.
type HomeScreen struct {
	user *api.LoginResponse
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home menu for a signed-in learner.
func New(deps Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: "Practice", Action: func() tea.Cmd {
			s := sessionscreen.New(deps.Client, deps.Session)
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}},
		{Label: "Dashboard", Action: func() tea.Cmd {
			s := dashboard.New(deps.Client)
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}},
		{Label: "Log out", Disabled: deps.SignIn == nil, Action: func() tea.Cmd {
			return func() tea.Msg {
				// The local session ends even if the server call fails.
				_ = deps.Client.Logout(context.Background())
				return router.ReplaceScreenMsg{Screen: deps.SignIn()}
			}
		}},
		{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		user: deps.User,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)
	sections := []string{
		renderSummary(h.user, cw),
		renderMenu(h.menu, cw),
	}
	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// Progress reports the level and score the learner signed in with.
func (h *HomeScreen) Progress() (int, int, bool) {
	return h.user.Level, h.user.Score, true
}
