package session

import (
	"time"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
	sess "github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/session"
)

// ownedMsg is implemented by every message the screen schedules. A screen
// drops messages addressed to another instance, so results and timers from
// an abandoned practice screen never reach its replacement.
type ownedMsg interface {
	owner() uint64
}

// problemLoadedMsg carries the result of GET /generate_problem.
type problemLoadedMsg struct {
	screen uint64
	token  uint64
	resp   *api.ProblemResponse
	err    error
}

// answerCheckedMsg carries the result of POST /check_answer.
type answerCheckedMsg struct {
	screen uint64
	token  uint64
	resp   *api.AnswerResponse
	err    error
}

// statsLoadedMsg carries the result of GET /get_stats.
type statsLoadedMsg struct {
	screen uint64
	token  uint64
	resp   *api.StatsResponse
	err    error
}

// effectDueMsg delivers a delayed controller effect.
type effectDueMsg struct {
	screen uint64
	effect sess.Effect
}

// clockTickMsg redraws the elapsed-time display.
type clockTickMsg struct {
	screen uint64
	at     time.Time
}

// statsTickMsg triggers the periodic stats refresh.
type statsTickMsg struct {
	screen uint64
	at     time.Time
}

func (m problemLoadedMsg) owner() uint64 { return m.screen }
func (m answerCheckedMsg) owner() uint64 { return m.screen }
func (m statsLoadedMsg) owner() uint64   { return m.screen }
func (m effectDueMsg) owner() uint64     { return m.screen }
func (m clockTickMsg) owner() uint64     { return m.screen }
func (m statsTickMsg) owner() uint64     { return m.screen }
