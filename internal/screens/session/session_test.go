package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
	sess "github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/session"
)

type fakeAPI struct {
	mu         sync.Mutex
	problems   []string
	problemErr error
	answers    []api.AnswerRequest
	check      func(api.AnswerRequest) (*api.AnswerResponse, error)
	stats      api.Stats
	fetches    int
}

func (f *fakeAPI) GenerateProblem(context.Context) (*api.ProblemResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches++
	if f.problemErr != nil {
		return nil, f.problemErr
	}
	eq := "x + 1 = 2"
	if len(f.problems) > 0 {
		eq, f.problems = f.problems[0], f.problems[1:]
	}
	return &api.ProblemResponse{Equation: eq}, nil
}

func (f *fakeAPI) CheckAnswer(_ context.Context, req api.AnswerRequest) (*api.AnswerResponse, error) {
	f.mu.Lock()
	f.answers = append(f.answers, req)
	check := f.check
	f.mu.Unlock()
	return check(req)
}

func (f *fakeAPI) Stats(context.Context) (*api.StatsResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st := f.stats
	return &api.StatsResponse{Status: api.StatusSuccess, Stats: &st}, nil
}

func immediate(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg { return fn(time.Now()) }
}

func newTestScreen(t *testing.T, f *fakeAPI) *SessionScreen {
	t.Helper()
	s := New(f, Options{})
	s.tick = immediate
	pump(t, s, s.dispatch(s.ctrl.Init()))
	return s
}

// collect runs cmd and flattens batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// pump feeds request results and due effects back into the screen until
// nothing is left. Timer ticks are dropped so the loop ends.
func pump(t *testing.T, s *SessionScreen, cmd tea.Cmd) {
	t.Helper()
	queue := collect(cmd)
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 100, "screen did not settle")
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case problemLoadedMsg, answerCheckedMsg, statsLoadedMsg, effectDueMsg:
			_, next := s.Update(msg)
			queue = append(queue, collect(next)...)
		}
	}
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "ctrl+n":
		return tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func typeText(t *testing.T, s *SessionScreen, text string) {
	t.Helper()
	for _, r := range text {
		_, cmd := s.Update(key(string(r)))
		pump(t, s, cmd)
	}
}

func TestLoadsFirstProblemAndStats(t *testing.T) {
	f := &fakeAPI{problems: []string{"2x + 3 = 7"}, stats: api.Stats{Level: 1, Score: 20}}
	s := newTestScreen(t, f)

	assert.Equal(t, "2x + 3 = 7", s.ctrl.Equation())
	level, score, ok := s.Progress()
	require.True(t, ok)
	assert.Equal(t, 1, level)
	assert.Equal(t, 20, score)
	assert.Contains(t, s.View(100, 30), "2x + 3 = 7")
}

func TestCorrectAnswerAutoAdvances(t *testing.T) {
	f := &fakeAPI{
		problems: []string{"x + 1 = 3", "x + 2 = 5"},
		check: func(api.AnswerRequest) (*api.AnswerResponse, error) {
			return &api.AnswerResponse{Status: api.StatusCorrect, Feedback: api.TextFeedback("Correct!")}, nil
		},
	}
	s := newTestScreen(t, f)

	typeText(t, s, "2")
	assert.Equal(t, "2", s.ctrl.Answer())

	_, cmd := s.Update(key("enter"))
	pump(t, s, cmd)

	require.Len(t, f.answers, 1)
	assert.Equal(t, "2", f.answers[0].Answer)
	assert.Equal(t, "x + 2 = 5", s.ctrl.Equation(), "expected auto-advance to the next problem")
	assert.Empty(t, s.input.Value())
	assert.Equal(t, 2, f.fetches)
}

func TestIncorrectAnswerKeepsProblem(t *testing.T) {
	f := &fakeAPI{
		problems: []string{"x - 4 = 1"},
		check: func(api.AnswerRequest) (*api.AnswerResponse, error) {
			return &api.AnswerResponse{
				Status:   api.StatusIncorrect,
				Feedback: api.DetailedFeedback("Not quite.", []string{"Add 4 to both sides", "x = 5"}, "Undo subtraction with addition."),
			}, nil
		},
	}
	s := newTestScreen(t, f)

	typeText(t, s, "3")
	_, cmd := s.Update(key("enter"))
	pump(t, s, cmd)

	assert.Equal(t, "x - 4 = 1", s.ctrl.Equation())
	assert.Equal(t, sess.PhaseIncorrect, s.ctrl.Phase())
	assert.Equal(t, "3", s.input.Value())

	view := s.View(100, 40)
	assert.Contains(t, view, "1. Add 4 to both sides")
	assert.Contains(t, view, "Tip:")

	// The problem stays open for a retry, but Next moves on.
	_, cmd = s.Update(key("ctrl+n"))
	pump(t, s, cmd)
	assert.Equal(t, 2, f.fetches)
	assert.NotContains(t, s.View(100, 40), sess.MsgSolveFirst)
	assert.Equal(t, "x + 1 = 2", s.ctrl.Equation())
	assert.Empty(t, s.input.Value())
}

func TestRetryAfterIncorrectAnswer(t *testing.T) {
	attempts := 0
	f := &fakeAPI{
		problems: []string{"x - 4 = 1"},
		check: func(api.AnswerRequest) (*api.AnswerResponse, error) {
			attempts++
			if attempts == 1 {
				return &api.AnswerResponse{Status: api.StatusIncorrect, Feedback: api.TextFeedback("Not quite.")}, nil
			}
			return &api.AnswerResponse{Status: api.StatusCorrect, Feedback: api.TextFeedback("Correct!")}, nil
		},
	}
	s := newTestScreen(t, f)

	typeText(t, s, "3")
	_, cmd := s.Update(key("enter"))
	pump(t, s, cmd)
	require.Equal(t, sess.PhaseIncorrect, s.ctrl.Phase())

	s.input.SetValue("")
	typeText(t, s, "5")
	_, cmd = s.Update(key("enter"))
	pump(t, s, cmd)

	require.Len(t, f.answers, 2)
	assert.Equal(t, "5", f.answers[1].Answer)
	assert.Equal(t, 2, f.fetches, "correct retry auto-advances")
}

func TestIgnoresMessagesFromAbandonedScreen(t *testing.T) {
	f := &fakeAPI{problems: []string{"x + 3 = 7", "2x = 8"}}
	old := New(f, Options{})
	old.tick = immediate
	fresh := New(f, Options{})
	fresh.tick = immediate

	oldMsgs := collect(old.dispatch(old.ctrl.Init()))
	fresh.dispatch(fresh.ctrl.Init())

	// Both controllers issued token 1; only the screen tag tells them apart.
	var stale problemLoadedMsg
	for _, m := range oldMsgs {
		if p, ok := m.(problemLoadedMsg); ok {
			stale = p
		}
	}
	require.Equal(t, uint64(1), stale.token)

	_, cmd := fresh.Update(stale)
	assert.Nil(t, cmd)
	assert.Empty(t, fresh.ctrl.Equation())
	assert.Equal(t, sess.PhaseAwaitingProblem, fresh.ctrl.Phase())

	_, cmd = fresh.Update(statsTickMsg{screen: old.id, at: time.Now()})
	assert.Nil(t, cmd, "a foreign stats tick must not start another polling chain")
	_, cmd = fresh.Update(effectDueMsg{screen: old.id, effect: sess.AutoAdvance{Epoch: 1}})
	assert.Nil(t, cmd)

	_, cmd = fresh.Update(statsTickMsg{screen: fresh.id, at: time.Now()})
	assert.NotNil(t, cmd)
}

func TestEmptyAnswerWarns(t *testing.T) {
	f := &fakeAPI{check: func(api.AnswerRequest) (*api.AnswerResponse, error) {
		t.Fatal("unexpected submit")
		return nil, nil
	}}
	s := newTestScreen(t, f)

	_, cmd := s.Update(key("enter"))
	pump(t, s, cmd)
	assert.Contains(t, s.View(100, 30), sess.MsgEnterAnswer)
}

func TestLevelUpShowsBannerAndNewProblem(t *testing.T) {
	f := &fakeAPI{
		problems: []string{"x = 1"},
		stats:    api.Stats{Level: 2, Score: 0},
		check: func(api.AnswerRequest) (*api.AnswerResponse, error) {
			return &api.AnswerResponse{
				Status:     api.StatusCorrect,
				Feedback:   api.TextFeedback("Correct!"),
				LevelUp:    "Level Up! You are now on Level 2",
				NewProblem: "3x = 12",
			}, nil
		},
	}
	s := newTestScreen(t, f)
	typeText(t, s, "1")

	_, cmd := s.Update(key("enter"))
	msgs := collect(cmd)
	for _, msg := range msgs {
		if _, ok := msg.(answerCheckedMsg); ok {
			s.Update(msg)
		}
	}

	require.NotNil(t, s.ctrl.Banner())
	assert.Contains(t, s.View(100, 30), "Level Up!")
	assert.Equal(t, "3x = 12", s.ctrl.Equation())

	s.Update(effectDueMsg{screen: s.id, effect: sess.ExpireBanner{ID: s.ctrl.Banner().ID}})
	assert.Nil(t, s.ctrl.Banner())
}

func TestFetchErrorShowsGenericMessage(t *testing.T) {
	f := &fakeAPI{problemErr: errors.New("connection refused")}
	s := newTestScreen(t, f)

	assert.Equal(t, sess.PhaseIdle, s.ctrl.Phase())
	view := s.View(100, 30)
	assert.Contains(t, view, sess.MsgGenericError)
	assert.NotContains(t, view, "connection refused")
}

func TestServerTextIsStripped(t *testing.T) {
	got := FeedbackText(api.TextFeedback("\x1b[31mred\x1b[0m text"))
	assert.Equal(t, "red text", got)
	assert.False(t, strings.Contains(got, "\x1b"))
}
