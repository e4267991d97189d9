// Package tutor generates linear-equation problems and grades answers.
package tutor

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
)

// Config controls grading behaviour.
type Config struct {
	// ExplainTimeout bounds the Explainer call for a wrong answer.
	ExplainTimeout time.Duration
}

// DefaultConfig returns recommended defaults.
func DefaultConfig() Config {
	return Config{ExplainTimeout: 8 * time.Second}
}

// Tutor ties problem generation, grading and progression together.
type Tutor struct {
	gen       *Generator
	explainer Explainer
	cfg       Config
	logger    *slog.Logger
}

// New creates a Tutor. A nil explainer uses StaticExplainer; a nil logger
// discards output.
func New(gen *Generator, explainer Explainer, cfg Config, logger *slog.Logger) *Tutor {
	if gen == nil {
		gen = NewGenerator(nil)
	}
	if explainer == nil {
		explainer = StaticExplainer{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Tutor{gen: gen, explainer: explainer, cfg: cfg, logger: logger}
}

// NextProblem returns a fresh problem for level.
func (t *Tutor) NextProblem(level int) Problem {
	return t.gen.Generate(level)
}

// Submission is one answer to grade.
type Submission struct {
	Problem   Problem
	Answer    float64
	TimeTaken int
	Progress  Progress
}

// Result is the outcome of grading a Submission.
type Result struct {
	Correct  bool
	Feedback *api.Feedback
	Progress Progress
	// LevelUp is the announcement when the learner completed a level.
	LevelUp string
	// NextProblem is the first problem of the new level on a level-up.
	NextProblem *Problem
}

// Grade checks a submission and computes the learner's new progress.
func (t *Tutor) Grade(ctx context.Context, sub Submission) Result {
	correct := CheckAnswer(sub.Answer, sub.Problem.Solution)
	next, levelUp := sub.Progress.Award(correct)

	res := Result{Correct: correct, Progress: next}
	if levelUp {
		res.LevelUp = LevelUpMessage(sub.Progress.Level)
		p := t.gen.Generate(next.Level)
		res.NextProblem = &p
	}

	if correct {
		res.Feedback = api.TextFeedback(CorrectFeedback(sub.TimeTaken))
		return res
	}

	res.Feedback = api.DetailedFeedback(
		StepByStepMessage,
		SolutionSteps(sub.Problem, sub.Answer),
		t.explain(ctx, sub.Problem, sub.Answer),
	)
	return res
}

func (t *Tutor) explain(ctx context.Context, p Problem, answer float64) string {
	if t.cfg.ExplainTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.cfg.ExplainTimeout)
		defer cancel()
	}
	tip, err := t.explainer.Explain(ctx, p, answer)
	if err != nil {
		t.logger.Warn("explanation unavailable, using default", "equation", p.Equation, "error", err)
		return DefaultExplanation
	}
	return tip
}
