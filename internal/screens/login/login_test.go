package login

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/router"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/screen"
)

// stubScreen is a minimal screen implementation for testing.
type stubScreen struct{ user string }

func (s *stubScreen) Init() tea.Cmd                           { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "home " + s.user }
func (s *stubScreen) Title() string                           { return "Home" }

type fakeAPI struct {
	calls []string
	resp  *api.LoginResponse
	err   error
}

func (f *fakeAPI) Login(_ context.Context, username string) (*api.LoginResponse, error) {
	f.calls = append(f.calls, username)
	if f.err != nil {
		return nil, f.err
	}
	if f.resp != nil {
		return f.resp, nil
	}
	return &api.LoginResponse{Status: api.StatusSuccess, Username: username, Level: 1}, nil
}

func next(user *api.LoginResponse) screen.Screen {
	return &stubScreen{user: user.Username}
}

func press(l *LoginScreen, text string) {
	for _, r := range text {
		l.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func enter(l *LoginScreen) tea.Cmd {
	_, cmd := l.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestLoginReplacesScreen(t *testing.T) {
	f := &fakeAPI{}
	l := New(f, "", next)
	press(l, "ada")

	cmd := enter(l)
	if cmd == nil {
		t.Fatal("expected login command")
	}
	_, cmd = l.Update(cmd())
	if cmd == nil {
		t.Fatal("expected navigation command")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatalf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if got := msg.Screen.View(0, 0); got != "home ada" {
		t.Errorf("next screen = %q", got)
	}
	if len(f.calls) != 1 || f.calls[0] != "ada" {
		t.Errorf("calls = %v", f.calls)
	}
}

func TestEmptyUsernameIsRejectedLocally(t *testing.T) {
	f := &fakeAPI{}
	l := New(f, "", next)
	press(l, "   ")

	if cmd := enter(l); cmd != nil {
		t.Fatal("expected no request for a blank username")
	}
	if l.errMsg != "Username is required" {
		t.Errorf("errMsg = %q", l.errMsg)
	}
}

func TestLoginErrorIsShown(t *testing.T) {
	f := &fakeAPI{err: errors.New("connection refused")}
	l := New(f, "bob", next)

	cmd := enter(l)
	_, cmd = l.Update(cmd())
	if cmd != nil {
		t.Fatal("expected to stay on the login screen")
	}
	if l.errMsg != "connection refused" {
		t.Errorf("errMsg = %q", l.errMsg)
	}

	f.err = nil
	f.resp = &api.LoginResponse{Error: "Username is required"}
	cmd = enter(l)
	l.Update(cmd())
	if l.errMsg != "Username is required" {
		t.Errorf("errMsg = %q", l.errMsg)
	}
}

func TestPrefilledUsernameSignsInOnStart(t *testing.T) {
	l := New(&fakeAPI{}, "carol", next)
	if !l.auto {
		t.Fatal("expected auto sign-in")
	}
	if l.Init() == nil {
		t.Fatal("expected init command")
	}
	if !l.pending {
		t.Error("expected request to be pending")
	}
}
