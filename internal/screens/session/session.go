// Package session is the practice screen: it shows the current equation,
// takes answers and renders the tutor's feedback.
package session

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/screen"
	sess "github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/session"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/ui/components"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/ui/layout"
)

// API is the part of the practice server the screen uses.
type API interface {
	GenerateProblem(ctx context.Context) (*api.ProblemResponse, error)
	CheckAnswer(ctx context.Context, req api.AnswerRequest) (*api.AnswerResponse, error)
	Stats(ctx context.Context) (*api.StatsResponse, error)
}

// Options configures a SessionScreen.
type Options struct {
	// StatsInterval is the background stats refresh period. Zero uses
	// sess.StatsRefreshInterval.
	StatsInterval time.Duration
	Logger        *slog.Logger
}

type tickFunc func(time.Duration, func(time.Time) tea.Msg) tea.Cmd

var screenSeq atomic.Uint64

// SessionScreen implements screen.Screen for practice.
type SessionScreen struct {
	id    uint64
	api   API
	ctrl  *sess.Controller
	input components.TextInput

	statsInterval time.Duration
	tick          tickFunc
}

var (
	_ screen.Screen           = (*SessionScreen)(nil)
	_ screen.KeyHintProvider  = (*SessionScreen)(nil)
	_ screen.ProgressProvider = (*SessionScreen)(nil)
)

// New creates a practice screen backed by client.
func New(client API, opts Options) *SessionScreen {
	if opts.StatsInterval <= 0 {
		opts.StatsInterval = sess.StatsRefreshInterval
	}
	var ctrlOpts []sess.Option
	if opts.Logger != nil {
		ctrlOpts = append(ctrlOpts, sess.WithLogger(opts.Logger))
	}
	return &SessionScreen{
		id:            screenSeq.Add(1),
		api:           client,
		ctrl:          sess.NewController(ctrlOpts...),
		input:         components.NewTextInput("Your answer, e.g. 4, -2.5 or 3/4", components.AnswerChars, 24),
		statsInterval: opts.StatsInterval,
		tick:          tea.Tick,
	}
}

func (s *SessionScreen) Init() tea.Cmd {
	return tea.Batch(
		s.input.Init(),
		s.dispatch(s.ctrl.Init()),
		s.clockTick(),
		s.statsTick(),
	)
}

func (s *SessionScreen) Title() string {
	return "Practice"
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Check answer"},
		{Key: "Ctrl+N", Description: "Next problem"},
		{Key: "Esc", Description: "Menu"},
	}
}

func (s *SessionScreen) Progress() (int, int, bool) {
	st := s.ctrl.Stats()
	if st == nil {
		return 0, 0, false
	}
	return st.Level, st.Score, true
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(ownedMsg); ok && m.owner() != s.id {
		return s, nil
	}

	switch msg := msg.(type) {
	case problemLoadedMsg:
		cmd := s.dispatch(s.ctrl.ProblemLoaded(msg.token, msg.resp, msg.err))
		s.syncInput()
		return s, cmd

	case answerCheckedMsg:
		cmd := s.dispatch(s.ctrl.AnswerChecked(msg.token, msg.resp, msg.err))
		s.syncInput()
		return s, cmd

	case statsLoadedMsg:
		s.ctrl.StatsLoaded(msg.token, msg.resp, msg.err)
		return s, nil

	case effectDueMsg:
		return s, s.deliver(msg.effect)

	case clockTickMsg:
		return s, s.clockTick()

	case statsTickMsg:
		return s, tea.Batch(s.dispatch([]sess.Effect{s.ctrl.RefreshStats()}), s.statsTick())

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			s.ctrl.SetAnswer(s.input.Value())
			return s, s.dispatch(s.ctrl.SubmitAnswer())
		case "ctrl+n":
			cmd := s.dispatch(s.ctrl.GenerateProblem())
			s.syncInput()
			return s, cmd
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.ctrl.SetAnswer(s.input.Value())
	return s, cmd
}

// syncInput mirrors controller-side answer changes (cleared on a new
// problem or a correct answer) into the text field.
func (s *SessionScreen) syncInput() {
	if s.input.Value() != s.ctrl.Answer() {
		s.input.SetValue(s.ctrl.Answer())
	}
}

// deliver runs an effect whose delay has elapsed.
func (s *SessionScreen) deliver(e sess.Effect) tea.Cmd {
	switch e := e.(type) {
	case sess.AutoAdvance:
		cmd := s.dispatch(s.ctrl.AutoAdvance(e.Epoch))
		s.syncInput()
		return cmd
	case sess.ExpireBanner:
		s.ctrl.ExpireBanner(e.ID)
		return nil
	}
	return s.dispatch([]sess.Effect{e})
}

// dispatch turns controller effects into commands.
func (s *SessionScreen) dispatch(effects []sess.Effect) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, e := range effects {
		cmds = append(cmds, s.command(e))
	}
	return tea.Batch(cmds...)
}

func (s *SessionScreen) command(e sess.Effect) tea.Cmd {
	switch e := e.(type) {
	case sess.FetchProblem:
		return func() tea.Msg {
			resp, err := s.api.GenerateProblem(context.Background())
			return problemLoadedMsg{screen: s.id, token: e.Token, resp: resp, err: err}
		}
	case sess.SubmitAnswer:
		return func() tea.Msg {
			resp, err := s.api.CheckAnswer(context.Background(), api.AnswerRequest{Answer: e.Answer, TimeTaken: e.TimeTaken})
			return answerCheckedMsg{screen: s.id, token: e.Token, resp: resp, err: err}
		}
	case sess.FetchStats:
		return func() tea.Msg {
			resp, err := s.api.Stats(context.Background())
			return statsLoadedMsg{screen: s.id, token: e.Token, resp: resp, err: err}
		}
	case sess.After:
		then := e.Then
		return s.tick(e.Delay, func(time.Time) tea.Msg { return effectDueMsg{screen: s.id, effect: then} })
	case sess.AutoAdvance, sess.ExpireBanner:
		return func() tea.Msg { return effectDueMsg{screen: s.id, effect: e} }
	}
	return nil
}

func (s *SessionScreen) clockTick() tea.Cmd {
	return s.tick(time.Second, func(t time.Time) tea.Msg { return clockTickMsg{screen: s.id, at: t} })
}

func (s *SessionScreen) statsTick() tea.Cmd {
	return s.tick(s.statsInterval, func(t time.Time) tea.Msg { return statsTickMsg{screen: s.id, at: t} })
}
