package session

import (
	"fmt"
	"time"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
)

// Phase is the lifecycle position of the current problem.
type Phase int

const (
	PhaseIdle            Phase = iota // Nothing displayed (startup or failed fetch)
	PhaseAwaitingProblem              // Problem request in flight
	PhaseAwaitingAnswer               // Problem displayed, timer running
	PhaseSubmitting                   // Answer request in flight
	PhaseCorrect                      // Correct answer, auto-advance pending
	PhaseIncorrect                    // Wrong answer, problem still open
	PhaseLevelUp                      // Level completed, banner showing
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingProblem:
		return "awaiting-problem"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseSubmitting:
		return "submitting"
	case PhaseCorrect:
		return "correct"
	case PhaseIncorrect:
		return "incorrect"
	case PhaseLevelUp:
		return "level-up"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// NoticeLevel selects how a notice is styled.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeWarning NoticeLevel = "warning"
	NoticeDanger  NoticeLevel = "danger"
)

// Notice is the feedback area content.
type Notice struct {
	Level    NoticeLevel
	Feedback *api.Feedback
}

// Banner is the transient level-up announcement.
type Banner struct {
	ID   uint64
	Text string
}

// Timings and user-facing messages.
const (
	AutoAdvanceDelay     = 1500 * time.Millisecond
	BannerDuration       = 3000 * time.Millisecond
	StatsRefreshInterval = 30 * time.Second

	MsgSolveFirst     = "Please solve the current problem first!"
	MsgEnterAnswer    = "Please enter an answer"
	MsgProblemLoading = "Please wait for the problem to load"
	MsgNoOpenProblem  = "Press Next to get a new problem"
	MsgGenericError   = "Something went wrong. Please try again."
)

// StatsView is the display form of the learner's level and score.
type StatsView struct {
	Level int
	Score int
}

// LevelLabel renders the level badge, e.g. "Level 2".
func (s StatsView) LevelLabel() string {
	return fmt.Sprintf("Level %d", s.Level)
}

// ScoreLabel renders the score badge, e.g. "Score: 30/50".
func (s StatsView) ScoreLabel() string {
	return fmt.Sprintf("Score: %d/%d", s.Score, api.MaxScore)
}

// ProgressPercent is score/50*100, clamped to [0, 100].
func (s StatsView) ProgressPercent() float64 {
	p := float64(s.Score) / float64(api.MaxScore) * 100
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
