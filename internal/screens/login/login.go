// Package login asks for a username and signs the learner in.
package login

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/router"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/screen"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/ui/components"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/ui/layout"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/ui/theme"
)

// API signs a learner in.
type API interface {
	Login(ctx context.Context, username string) (*api.LoginResponse, error)
}

// Next builds the screen shown after a successful login.
type Next func(user *api.LoginResponse) screen.Screen

type loginDoneMsg struct {
	resp *api.LoginResponse
	err  error
}

// LoginScreen implements screen.Screen.
type LoginScreen struct {
	api     API
	next    Next
	input   components.TextInput
	auto    bool
	pending bool
	errMsg  string
}

var (
	_ screen.Screen          = (*LoginScreen)(nil)
	_ screen.KeyHintProvider = (*LoginScreen)(nil)
)

// New creates a login screen. A non-empty username is submitted as soon as
// the screen starts.
func New(client API, username string, next Next) *LoginScreen {
	in := components.NewTextInput("username", nil, 64)
	in.SetValue(username)
	return &LoginScreen{
		api:   client,
		next:  next,
		input: in,
		auto:  strings.TrimSpace(username) != "",
	}
}

func (l *LoginScreen) Title() string { return "Sign in" }

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (l *LoginScreen) Init() tea.Cmd {
	if l.auto {
		return tea.Batch(l.input.Init(), l.submit())
	}
	return l.input.Init()
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginDoneMsg:
		l.pending = false
		if msg.err == nil && msg.resp != nil && msg.resp.Error != "" {
			msg.err = errors.New(msg.resp.Error)
		}
		if msg.err != nil {
			l.errMsg = msg.err.Error()
			return l, nil
		}
		next := l.next(msg.resp)
		return l, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }

	case tea.KeyPressMsg:
		if msg.String() == "enter" {
			return l, l.submit()
		}
	}

	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

func (l *LoginScreen) submit() tea.Cmd {
	if l.pending {
		return nil
	}
	username := strings.TrimSpace(l.input.Value())
	if username == "" {
		l.errMsg = "Username is required"
		return nil
	}
	l.pending = true
	l.errMsg = ""
	return func() tea.Msg {
		resp, err := l.api.Login(context.Background(), username)
		return loginDoneMsg{resp: resp, err: err}
	}
}

func (l *LoginScreen) View(width, height int) string {
	sections := []string{
		RenderBanner(width),
		"",
		theme.Subtitle.Render("Intelligent Tutoring System for linear equations"),
		"",
		l.input.View(),
	}

	switch {
	case l.pending:
		sections = append(sections, theme.Hint.Render("Signing in..."))
	case l.errMsg != "":
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(l.errMsg))
	default:
		sections = append(sections, theme.Hint.Render("Enter your username to start"))
	}

	content := lipgloss.JoinVertical(lipgloss.Center, sections...)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
