package session

import (
	"errors"
	"testing"
	"time"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestController() (*Controller, *fakeClock) {
	clk := &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	return NewController(WithClock(clk.Now)), clk
}

func only[T Effect](t *testing.T, effects []Effect) T {
	t.Helper()
	var found []T
	for _, e := range effects {
		if v, ok := e.(T); ok {
			found = append(found, v)
		}
	}
	if len(found) != 1 {
		t.Fatalf("expected exactly one %T in %#v", *new(T), effects)
	}
	return found[0]
}

func findAfter(effects []Effect) (After, bool) {
	for _, e := range effects {
		if a, ok := e.(After); ok {
			return a, true
		}
	}
	return After{}, false
}

// loaded starts a controller and completes the first problem fetch.
func loaded(t *testing.T, equation string) (*Controller, *fakeClock) {
	t.Helper()
	c, clk := newTestController()
	fetch := only[FetchProblem](t, c.Init())
	c.ProblemLoaded(fetch.Token, &api.ProblemResponse{Equation: equation}, nil)
	if c.Phase() != PhaseAwaitingAnswer {
		t.Fatalf("phase = %s, want awaiting-answer", c.Phase())
	}
	return c, clk
}

func submit(t *testing.T, c *Controller, answer string) SubmitAnswer {
	t.Helper()
	c.SetAnswer(answer)
	return only[SubmitAnswer](t, c.SubmitAnswer())
}

func TestInit_RequestsFirstProblem(t *testing.T) {
	c, _ := newTestController()
	effects := c.Init()

	fetch := only[FetchProblem](t, effects)
	if fetch.Token == 0 {
		t.Error("expected non-zero token")
	}
	if c.Phase() != PhaseAwaitingProblem {
		t.Errorf("phase = %s, want awaiting-problem", c.Phase())
	}
	if !c.Loading() {
		t.Error("expected loading state")
	}
}

func TestProblemLoaded_DisplaysAndStartsTimer(t *testing.T) {
	c, clk := newTestController()
	fetch := only[FetchProblem](t, c.Init())

	effects := c.ProblemLoaded(fetch.Token, &api.ProblemResponse{Equation: "x + 3 = 7"}, nil)
	only[FetchStats](t, effects)

	if c.Equation() != "x + 3 = 7" {
		t.Errorf("equation = %q", c.Equation())
	}
	if c.Answered() {
		t.Error("problem should be unresolved")
	}
	if c.Notice() != nil {
		t.Error("notice should be hidden")
	}
	clk.Advance(65 * time.Second)
	if c.TimerText() != "1:05" {
		t.Errorf("timer = %q, want 1:05", c.TimerText())
	}
}

func TestGenerateProblem_RefusedWhileUnresolved(t *testing.T) {
	c, _ := loaded(t, "2x = 10")

	if effects := c.GenerateProblem(); len(effects) != 0 {
		t.Fatalf("expected no effects, got %#v", effects)
	}
	n := c.Notice()
	if n == nil || n.Level != NoticeWarning || n.Feedback.Text != MsgSolveFirst {
		t.Errorf("notice = %#v, want warning %q", n, MsgSolveFirst)
	}
	if c.Equation() != "2x = 10" {
		t.Error("current problem should stay displayed")
	}
}

func TestGenerateProblem_SingleFlight(t *testing.T) {
	c, _ := newTestController()
	c.Init()
	if effects := c.GenerateProblem(); len(effects) != 0 {
		t.Errorf("expected duplicate fetch to be suppressed, got %#v", effects)
	}
}

func TestProblemLoaded_ErrorShowsGenericMessage(t *testing.T) {
	for name, tc := range map[string]struct {
		resp *api.ProblemResponse
		err  error
	}{
		"transport": {err: errors.New("connection refused")},
		"server":    {resp: &api.ProblemResponse{Error: "Not logged in"}},
	} {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestController()
			fetch := only[FetchProblem](t, c.Init())
			c.ProblemLoaded(fetch.Token, tc.resp, tc.err)

			n := c.Notice()
			if n == nil || n.Level != NoticeDanger || n.Feedback.Text != MsgGenericError {
				t.Errorf("notice = %#v", n)
			}
			if c.Phase() != PhaseIdle {
				t.Errorf("phase = %s, want idle", c.Phase())
			}
			// Next can retry.
			only[FetchProblem](t, c.GenerateProblem())
		})
	}
}

func TestProblemLoaded_StaleTokenIgnored(t *testing.T) {
	c, _ := newTestController()
	fetch := only[FetchProblem](t, c.Init())

	if effects := c.ProblemLoaded(fetch.Token+99, &api.ProblemResponse{Equation: "x = 1"}, nil); effects != nil {
		t.Errorf("stale response produced effects: %#v", effects)
	}
	if c.Equation() != "" {
		t.Error("stale response should not be displayed")
	}
	c.ProblemLoaded(fetch.Token, &api.ProblemResponse{Equation: "x + 1 = 2"}, nil)
	if c.Equation() != "x + 1 = 2" {
		t.Errorf("equation = %q", c.Equation())
	}
	// A replay of the same token is also stale now.
	c.ProblemLoaded(fetch.Token, &api.ProblemResponse{Equation: "x = 9"}, nil)
	if c.Equation() != "x + 1 = 2" {
		t.Error("replayed response overwrote the problem")
	}
}

func TestSubmitAnswer_EmptyRefused(t *testing.T) {
	c, _ := loaded(t, "x + 1 = 2")
	for _, in := range []string{"", "   "} {
		c.SetAnswer(in)
		if effects := c.SubmitAnswer(); len(effects) != 0 {
			t.Errorf("answer %q: expected no effects", in)
		}
		n := c.Notice()
		if n == nil || n.Level != NoticeWarning || n.Feedback.Text != MsgEnterAnswer {
			t.Errorf("answer %q: notice = %#v", in, n)
		}
	}
	if c.Phase() != PhaseAwaitingAnswer {
		t.Errorf("phase = %s", c.Phase())
	}
}

func TestSubmitAnswer_RefusedWhileProblemLoading(t *testing.T) {
	c, _ := newTestController()
	c.Init()
	c.SetAnswer("5")
	if effects := c.SubmitAnswer(); len(effects) != 0 {
		t.Fatalf("expected no effects, got %#v", effects)
	}
	if n := c.Notice(); n == nil || n.Feedback.Text != MsgProblemLoading {
		t.Errorf("notice = %#v", n)
	}
}

func TestSubmitAnswer_SendsElapsedTime(t *testing.T) {
	c, clk := loaded(t, "x + 3 = 7")
	clk.Advance(12 * time.Second)

	req := submit(t, c, " 4 ")
	if req.Answer != "4" {
		t.Errorf("answer = %q, want 4", req.Answer)
	}
	if req.TimeTaken != 12 {
		t.Errorf("time_taken = %d, want 12", req.TimeTaken)
	}
	if c.Phase() != PhaseSubmitting {
		t.Errorf("phase = %s", c.Phase())
	}
	// Duplicate submit while in flight is ignored.
	if effects := c.SubmitAnswer(); len(effects) != 0 {
		t.Errorf("duplicate submit produced %#v", effects)
	}
}

func TestAnswerChecked_Correct(t *testing.T) {
	c, _ := loaded(t, "x + 3 = 7")
	req := submit(t, c, "4")

	effects := c.AnswerChecked(req.Token, &api.AnswerResponse{
		Status:   api.StatusCorrect,
		Feedback: api.TextFeedback("Correct! Excellent work!"),
		Score:    10,
		Level:    1,
	}, nil)

	only[FetchStats](t, effects)
	after, ok := findAfter(effects)
	if !ok || after.Delay != AutoAdvanceDelay {
		t.Fatalf("expected auto-advance after 1500ms, got %#v", effects)
	}
	adv, ok := after.Then.(AutoAdvance)
	if !ok {
		t.Fatalf("after.Then = %T", after.Then)
	}
	if c.Phase() != PhaseCorrect || !c.Answered() {
		t.Errorf("phase = %s answered = %v", c.Phase(), c.Answered())
	}
	if c.Answer() != "" {
		t.Error("answer input should be cleared")
	}
	if n := c.Notice(); n.Level != NoticeSuccess || n.Feedback.Text != "Correct! Excellent work!" {
		t.Errorf("notice = %#v", n)
	}

	only[FetchProblem](t, c.AutoAdvance(adv.Epoch))
}

func TestAutoAdvance_IgnoredAfterManualNext(t *testing.T) {
	c, _ := loaded(t, "x + 3 = 7")
	req := submit(t, c, "4")
	effects := c.AnswerChecked(req.Token, &api.AnswerResponse{Status: api.StatusCorrect}, nil)
	after, _ := findAfter(effects)
	adv := after.Then.(AutoAdvance)

	fetch := only[FetchProblem](t, c.GenerateProblem())
	c.ProblemLoaded(fetch.Token, &api.ProblemResponse{Equation: "2x = 8"}, nil)

	if effects := c.AutoAdvance(adv.Epoch); len(effects) != 0 {
		t.Errorf("stale auto-advance produced %#v", effects)
	}
	if c.Equation() != "2x = 8" || c.Answered() {
		t.Error("manual problem should remain open")
	}
}

func TestAnswerChecked_IncorrectStructuredFeedback(t *testing.T) {
	c, clk := loaded(t, "x + 3 = 7")
	clk.Advance(5 * time.Second)
	req := submit(t, c, "5")

	fb := api.DetailedFeedback("Let's solve this step by step:", []string{"Subtract 3", "x = 4"}, "Check your calculation and try again.")
	effects := c.AnswerChecked(req.Token, &api.AnswerResponse{Status: api.StatusIncorrect, Feedback: fb}, nil)

	only[FetchStats](t, effects)
	if _, ok := findAfter(effects); ok {
		t.Error("incorrect answer must not auto-advance")
	}
	if c.Phase() != PhaseIncorrect || !c.Answered() {
		t.Errorf("phase = %s answered = %v", c.Phase(), c.Answered())
	}
	n := c.Notice()
	if n.Level != NoticeDanger || !n.Feedback.IsStructured() {
		t.Errorf("notice = %#v", n)
	}
	if c.Answer() != "5" {
		t.Error("wrong answer should stay in the input")
	}

	// A retry is timed from when the problem was first shown.
	clk.Advance(3 * time.Second)
	req2 := submit(t, c, "4")
	if req2.TimeTaken != 8 {
		t.Errorf("second attempt time = %d, want 8", req2.TimeTaken)
	}
}

func TestGenerateProblem_AllowedAfterIncorrect(t *testing.T) {
	c, _ := loaded(t, "x + 3 = 7")
	req := submit(t, c, "5")
	c.AnswerChecked(req.Token, &api.AnswerResponse{Status: api.StatusIncorrect, Feedback: api.TextFeedback("No.")}, nil)

	only[FetchProblem](t, c.GenerateProblem())
	if c.Phase() != PhaseAwaitingProblem {
		t.Errorf("phase = %s, want awaiting-problem", c.Phase())
	}
	if n := c.Notice(); n != nil && n.Feedback.Text == MsgSolveFirst {
		t.Error("next problem refused after an incorrect answer")
	}
}

func TestGenerateProblem_DropsInFlightRetry(t *testing.T) {
	c, _ := loaded(t, "x + 3 = 7")
	req := submit(t, c, "5")
	c.AnswerChecked(req.Token, &api.AnswerResponse{Status: api.StatusIncorrect, Feedback: api.TextFeedback("No.")}, nil)
	retry := submit(t, c, "4")

	fetch := only[FetchProblem](t, c.GenerateProblem())
	c.ProblemLoaded(fetch.Token, &api.ProblemResponse{Equation: "2x = 6"}, nil)

	effects := c.AnswerChecked(retry.Token, &api.AnswerResponse{Status: api.StatusCorrect, Feedback: api.TextFeedback("Correct!")}, nil)
	if len(effects) != 0 {
		t.Errorf("stale retry produced effects: %#v", effects)
	}
	if c.Equation() != "2x = 6" || c.Answered() {
		t.Errorf("equation = %q answered = %v", c.Equation(), c.Answered())
	}
}

func TestAnswerChecked_ServerErrorKeepsProblemOpen(t *testing.T) {
	c, _ := loaded(t, "x + 3 = 7")
	req := submit(t, c, "abc")

	effects := c.AnswerChecked(req.Token, &api.AnswerResponse{Error: "Invalid answer format"}, nil)
	if len(effects) != 0 {
		t.Errorf("expected no effects, got %#v", effects)
	}
	n := c.Notice()
	if n.Level != NoticeDanger || n.Feedback.Text != "Invalid answer format" {
		t.Errorf("notice = %#v", n)
	}
	if c.Answered() || c.Phase() != PhaseAwaitingAnswer {
		t.Errorf("phase = %s answered = %v", c.Phase(), c.Answered())
	}
	submit(t, c, "4")
}

func TestAnswerChecked_TransportError(t *testing.T) {
	c, clk := loaded(t, "x + 3 = 7")
	clk.Advance(6 * time.Second)
	req := submit(t, c, "4")
	if c.Elapsed() != 6 {
		t.Errorf("timer display = %d after submit, want 6", c.Elapsed())
	}

	c.AnswerChecked(req.Token, nil, errors.New("timeout"))
	if n := c.Notice(); n.Level != NoticeDanger || n.Feedback.Text != MsgGenericError {
		t.Errorf("notice = %#v", n)
	}
	if c.Phase() != PhaseAwaitingAnswer {
		t.Errorf("phase = %s", c.Phase())
	}

	clk.Advance(4 * time.Second)
	if retry := submit(t, c, "4"); retry.TimeTaken != 10 {
		t.Errorf("retry time = %d, want 10", retry.TimeTaken)
	}
}

func TestAnswerChecked_StaleTokenIgnored(t *testing.T) {
	c, _ := loaded(t, "x + 3 = 7")
	req := submit(t, c, "4")

	if effects := c.AnswerChecked(req.Token+1, &api.AnswerResponse{Status: api.StatusCorrect}, nil); effects != nil {
		t.Errorf("stale answer produced %#v", effects)
	}
	if c.Phase() != PhaseSubmitting {
		t.Errorf("phase = %s", c.Phase())
	}
}

func TestAnswerChecked_LevelUpWithNewProblem(t *testing.T) {
	c, _ := loaded(t, "x + 3 = 7")
	req := submit(t, c, "4")

	effects := c.AnswerChecked(req.Token, &api.AnswerResponse{
		Status:     api.StatusCorrect,
		LevelUp:    "Congratulations! You've completed Level 1! Moving to Level 2",
		NewProblem: "x - 4 = 6",
		Level:      2,
	}, nil)

	only[FetchStats](t, effects)
	after, ok := findAfter(effects)
	if !ok || after.Delay != BannerDuration {
		t.Fatalf("expected banner expiry, got %#v", effects)
	}
	exp := after.Then.(ExpireBanner)

	b := c.Banner()
	if b == nil || b.ID != exp.ID {
		t.Fatalf("banner = %#v", b)
	}
	if c.Equation() != "x - 4 = 6" || c.Answered() {
		t.Errorf("new problem not displayed: %q answered=%v", c.Equation(), c.Answered())
	}
	if c.Phase() != PhaseAwaitingAnswer {
		t.Errorf("phase = %s", c.Phase())
	}

	c.ExpireBanner(exp.ID)
	if c.Banner() != nil {
		t.Error("banner should be removed")
	}
}

func TestAnswerChecked_LevelUpWithoutNewProblem(t *testing.T) {
	c, _ := loaded(t, "x + 3 = 7")
	req := submit(t, c, "4")

	c.AnswerChecked(req.Token, &api.AnswerResponse{LevelUp: "Level complete"}, nil)
	if c.Phase() != PhaseLevelUp || !c.Answered() {
		t.Errorf("phase = %s answered = %v", c.Phase(), c.Answered())
	}
	only[FetchProblem](t, c.GenerateProblem())
}

func TestBanner_NewerBannerSurvivesOlderExpiry(t *testing.T) {
	c, _ := loaded(t, "x + 3 = 7")

	req := submit(t, c, "4")
	first := c.AnswerChecked(req.Token, &api.AnswerResponse{LevelUp: "one", NewProblem: "x = 2"}, nil)
	firstAfter, _ := findAfter(first)

	req = submit(t, c, "2")
	second := c.AnswerChecked(req.Token, &api.AnswerResponse{LevelUp: "two", NewProblem: "x = 3"}, nil)
	secondAfter, _ := findAfter(second)

	c.ExpireBanner(firstAfter.Then.(ExpireBanner).ID)
	if b := c.Banner(); b == nil || b.Text != "two" {
		t.Fatalf("banner = %#v, want two", b)
	}
	c.ExpireBanner(secondAfter.Then.(ExpireBanner).ID)
	if c.Banner() != nil {
		t.Error("banner should be gone")
	}
}

func TestStatsLoaded_UpdatesBadges(t *testing.T) {
	c, _ := newTestController()
	fs := c.RefreshStats().(FetchStats)

	c.StatsLoaded(fs.Token, &api.StatsResponse{
		Status: api.StatusSuccess,
		Stats:  &api.Stats{Level: 2, Score: 30},
	}, nil)

	s := c.Stats()
	if s == nil {
		t.Fatal("stats not applied")
	}
	if s.LevelLabel() != "Level 2" {
		t.Errorf("level label = %q", s.LevelLabel())
	}
	if s.ScoreLabel() != "Score: 30/50" {
		t.Errorf("score label = %q", s.ScoreLabel())
	}
	if s.ProgressPercent() != 60 {
		t.Errorf("progress = %v, want 60", s.ProgressPercent())
	}
}

func TestStatsLoaded_OutOfOrderResponses(t *testing.T) {
	c, _ := newTestController()
	older := c.RefreshStats().(FetchStats)
	newer := c.RefreshStats().(FetchStats)

	c.StatsLoaded(newer.Token, &api.StatsResponse{Status: api.StatusSuccess, Stats: &api.Stats{Level: 1, Score: 20}}, nil)
	c.StatsLoaded(older.Token, &api.StatsResponse{Status: api.StatusSuccess, Stats: &api.Stats{Level: 1, Score: 10}}, nil)

	if got := c.Stats().Score; got != 20 {
		t.Errorf("score = %d, want 20 (older response must not win)", got)
	}
}

func TestStatsLoaded_FailuresAreSilent(t *testing.T) {
	c, _ := loaded(t, "x + 1 = 2")
	fs := c.RefreshStats().(FetchStats)

	c.StatsLoaded(fs.Token, nil, errors.New("boom"))
	c.StatsLoaded(fs.Token, &api.StatsResponse{Status: api.StatusError, Message: "User not found"}, nil)

	if c.Stats() != nil {
		t.Error("stats should stay unset")
	}
	if c.Notice() != nil {
		t.Errorf("stats failure surfaced a notice: %#v", c.Notice())
	}
}

func TestProgressPercent_Clamped(t *testing.T) {
	tests := []struct {
		score int
		want  float64
	}{
		{0, 0},
		{10, 20},
		{50, 100},
		{70, 100},
		{-10, 0},
	}
	for _, tt := range tests {
		if got := (StatsView{Score: tt.score}).ProgressPercent(); got != tt.want {
			t.Errorf("ProgressPercent(score=%d) = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestHandleError_CustomMessage(t *testing.T) {
	c, _ := newTestController()
	c.HandleError(errors.New("x"), "Could not reach the server")
	if n := c.Notice(); n.Feedback.Text != "Could not reach the server" {
		t.Errorf("notice = %#v", n)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseLevelUp.String() != "level-up" {
		t.Errorf("got %q", PhaseLevelUp.String())
	}
	if Phase(42).String() != "phase(42)" {
		t.Errorf("got %q", Phase(42).String())
	}
}
