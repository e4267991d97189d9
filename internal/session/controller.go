// Package session implements the practice session controller: the problem
// lifecycle, the answer timer, feedback and stats display state.
//
// The controller performs no I/O. Each operation returns the effects the
// host must run; results come back through the completion methods with the
// token they were issued under, and results carrying an outdated token are
// dropped.
package session

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
)

// Controller holds the state of one practice session.
type Controller struct {
	now    func() time.Time
	logger *slog.Logger

	timer    Timer
	phase    Phase
	answered bool

	seq          uint64
	problemToken uint64
	submitToken  uint64
	statsToken   uint64
	epoch        uint64
	bannerSeq    uint64

	equation string
	answer   string
	notice   *Notice
	banner   *Banner
	stats    *StatsView
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the logger used for swallowed errors.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController returns a controller in PhaseIdle.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) next() uint64 {
	c.seq++
	return c.seq
}

// Init starts the session by requesting the first problem.
func (c *Controller) Init() []Effect {
	c.answered = true
	return c.GenerateProblem()
}

// GenerateProblem requests a new problem. It is refused with a warning
// while the current problem is unresolved, and is a no-op while a request
// is already in flight.
func (c *Controller) GenerateProblem() []Effect {
	if !c.answered {
		c.warn(MsgSolveFirst)
		return nil
	}
	if c.problemToken != 0 {
		return nil
	}
	c.epoch++
	c.submitToken = 0
	c.phase = PhaseAwaitingProblem
	c.equation = ""
	c.problemToken = c.next()
	return []Effect{FetchProblem{Token: c.problemToken}}
}

// ProblemLoaded applies the outcome of a FetchProblem effect.
func (c *Controller) ProblemLoaded(token uint64, resp *api.ProblemResponse, err error) []Effect {
	if token == 0 || token != c.problemToken {
		return nil
	}
	c.problemToken = 0

	if err == nil && resp == nil {
		err = errors.New("empty problem response")
	}
	if err == nil && resp.Error != "" {
		err = errors.New(resp.Error)
	}
	if err != nil {
		c.phase = PhaseIdle
		c.HandleError(err, "")
		return nil
	}

	c.showProblem(resp.Equation)
	return []Effect{c.RefreshStats()}
}

func (c *Controller) showProblem(equation string) {
	c.equation = equation
	c.answer = ""
	c.notice = nil
	c.timer.Start(c.now())
	c.answered = false
	c.phase = PhaseAwaitingAnswer
}

// SubmitAnswer sends the typed answer for checking.
func (c *Controller) SubmitAnswer() []Effect {
	if c.phase == PhaseSubmitting {
		return nil
	}
	answer := strings.TrimSpace(c.answer)
	if answer == "" {
		c.warn(MsgEnterAnswer)
		return nil
	}
	if c.phase == PhaseAwaitingProblem {
		c.warn(MsgProblemLoading)
		return nil
	}
	if c.equation == "" || (c.answered && c.phase != PhaseIncorrect) {
		c.warn(MsgNoOpenProblem)
		return nil
	}

	taken := c.timer.Stop(c.now())
	c.phase = PhaseSubmitting
	c.submitToken = c.next()
	return []Effect{SubmitAnswer{Token: c.submitToken, Answer: answer, TimeTaken: taken}}
}

// AnswerChecked applies the outcome of a SubmitAnswer effect.
func (c *Controller) AnswerChecked(token uint64, resp *api.AnswerResponse, err error) []Effect {
	if token == 0 || token != c.submitToken {
		return nil
	}
	c.submitToken = 0

	if err == nil && resp == nil {
		err = errors.New("empty answer response")
	}
	if err != nil {
		c.HandleError(err, "")
		c.reopen()
		return nil
	}
	if resp.Error != "" {
		c.notify(NoticeDanger, api.TextFeedback(resp.Error))
		c.reopen()
		return nil
	}

	c.answered = true

	if resp.LevelUp != "" {
		c.bannerSeq++
		c.banner = &Banner{ID: c.bannerSeq, Text: resp.LevelUp}
		c.phase = PhaseLevelUp
		effects := []Effect{
			c.RefreshStats(),
			After{Delay: BannerDuration, Then: ExpireBanner{ID: c.bannerSeq}},
		}
		if resp.NewProblem != "" {
			c.showProblem(resp.NewProblem)
		}
		return effects
	}

	effects := []Effect{c.RefreshStats()}
	if resp.Status == api.StatusCorrect {
		c.notify(NoticeSuccess, resp.Feedback)
		c.answer = ""
		c.phase = PhaseCorrect
		effects = append(effects, After{Delay: AutoAdvanceDelay, Then: AutoAdvance{Epoch: c.epoch}})
		return effects
	}

	// Resolved: Next is allowed, but the problem stays open for a retry
	// timed from when it was first shown.
	c.notify(NoticeDanger, resp.Feedback)
	c.phase = PhaseIncorrect
	c.timer.Resume()
	return effects
}

// reopen returns a problem whose submission failed to the answering phase.
// The timer continues from when the problem was shown.
func (c *Controller) reopen() {
	c.phase = PhaseAwaitingAnswer
	c.timer.Resume()
}

// AutoAdvance fetches the next problem unless the learner already moved on.
func (c *Controller) AutoAdvance(epoch uint64) []Effect {
	if epoch != c.epoch {
		return nil
	}
	return c.GenerateProblem()
}

// ExpireBanner removes the banner if it is still the one with id.
func (c *Controller) ExpireBanner(id uint64) {
	if c.banner != nil && c.banner.ID == id {
		c.banner = nil
	}
}

// RefreshStats requests the learner's stats.
func (c *Controller) RefreshStats() Effect {
	return FetchStats{Token: c.next()}
}

// StatsLoaded applies the outcome of a FetchStats effect. Failures are
// logged and otherwise ignored.
func (c *Controller) StatsLoaded(token uint64, resp *api.StatsResponse, err error) {
	if token <= c.statsToken {
		return
	}
	if err != nil {
		c.logger.Error("updating stats", "error", err)
		return
	}
	if resp == nil || resp.Status != api.StatusSuccess || resp.Stats == nil {
		c.logger.Warn("stats not available", "response", resp)
		return
	}
	c.statsToken = token
	c.stats = &StatsView{Level: resp.Stats.Level, Score: resp.Stats.Score}
}

// HandleError logs err and shows message, or a generic message when empty.
func (c *Controller) HandleError(err error, message string) {
	c.logger.Error("practice request failed", "error", err, "phase", c.phase.String())
	if message == "" {
		message = MsgGenericError
	}
	c.notify(NoticeDanger, api.TextFeedback(message))
}

// SetAnswer replaces the answer field.
func (c *Controller) SetAnswer(text string) { c.answer = text }

// Answer returns the answer field.
func (c *Controller) Answer() string { return c.answer }

// Phase returns the lifecycle phase.
func (c *Controller) Phase() Phase { return c.phase }

// Answered reports whether the displayed problem is resolved.
func (c *Controller) Answered() bool { return c.answered }

// Equation returns the displayed problem, or "" while none is shown.
func (c *Controller) Equation() string { return c.equation }

// Loading reports whether a problem request is in flight.
func (c *Controller) Loading() bool { return c.problemToken != 0 }

// Notice returns the feedback area content, or nil when hidden.
func (c *Controller) Notice() *Notice { return c.notice }

// Banner returns the level-up banner, or nil.
func (c *Controller) Banner() *Banner { return c.banner }

// Stats returns the last applied stats, or nil before the first load.
func (c *Controller) Stats() *StatsView { return c.stats }

// Elapsed returns the seconds shown on the timer.
func (c *Controller) Elapsed() int { return c.timer.Elapsed(c.now()) }

// TimerText is the formatted timer display.
func (c *Controller) TimerText() string { return FormatTime(c.Elapsed()) }

func (c *Controller) warn(msg string) {
	c.notify(NoticeWarning, api.TextFeedback(msg))
}

func (c *Controller) notify(level NoticeLevel, fb *api.Feedback) {
	if fb == nil {
		fb = api.TextFeedback("")
	}
	c.notice = &Notice{Level: level, Feedback: fb}
}
