package session

import "time"

// Effect is work the controller asks its host to perform. The host runs
// the effect and reports the outcome back through the matching method
// (ProblemLoaded, AnswerChecked, StatsLoaded, AutoAdvance, ExpireBanner),
// passing the token or id it was issued with.
type Effect interface {
	effect()
}

// FetchProblem requests GET /generate_problem.
type FetchProblem struct {
	Token uint64
}

// SubmitAnswer requests POST /check_answer.
type SubmitAnswer struct {
	Token     uint64
	Answer    string
	TimeTaken int
}

// FetchStats requests GET /get_stats.
type FetchStats struct {
	Token uint64
}

// After delivers Then once Delay has passed.
type After struct {
	Delay time.Duration
	Then  Effect
}

// AutoAdvance moves on to the next problem if Epoch is still current.
type AutoAdvance struct {
	Epoch uint64
}

// ExpireBanner removes the level-up banner with the given ID.
type ExpireBanner struct {
	ID uint64
}

func (FetchProblem) effect() {}
func (SubmitAnswer) effect() {}
func (FetchStats) effect()   {}
func (After) effect()        {}
func (AutoAdvance) effect()  {}
func (ExpireBanner) effect() {}
