package tutor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/llm"
)

// Explainer writes a short tip for a wrong answer.
type Explainer interface {
	Explain(ctx context.Context, p Problem, studentAnswer float64) (string, error)
}

// StaticExplainer always returns DefaultExplanation.
type StaticExplainer struct{}

func (StaticExplainer) Explain(context.Context, Problem, float64) (string, error) {
	return DefaultExplanation, nil
}

// ExplainerConfig holds configuration for the LLM explainer.
type ExplainerConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultExplainerConfig returns sensible defaults.
func DefaultExplainerConfig() ExplainerConfig {
	return ExplainerConfig{
		MaxTokens:   200,
		Temperature: 0.3,
	}
}

// LLMExplainer asks an LLM for a one-sentence tip tailored to the mistake.
type LLMExplainer struct {
	provider llm.Provider
	cfg      ExplainerConfig
}

// NewLLMExplainer creates an LLM-based explainer.
func NewLLMExplainer(provider llm.Provider, cfg ExplainerConfig) *LLMExplainer {
	return &LLMExplainer{provider: provider, cfg: cfg}
}

// ExplanationSchema is the structured output requested from the LLM.
var ExplanationSchema = &llm.Schema{
	Name:        "answer-explanation",
	Description: "A short tip explaining a learner's mistake on a linear equation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":      "string",
				"minLength": 1,
				"maxLength": 300,
			},
		},
		"required":             []any{"explanation"},
		"additionalProperties": false,
	},
}

type explanationOutput struct {
	Explanation string `json:"explanation"`
}

func (e *LLMExplainer) Explain(ctx context.Context, p Problem, studentAnswer float64) (string, error) {
	ctx = llm.WithPurpose(ctx, "answer-explanation")

	userMsg, err := buildExplainMessage(p, studentAnswer)
	if err != nil {
		return "", fmt.Errorf("build explanation prompt: %w", err)
	}

	resp, err := e.provider.Generate(ctx, llm.Request{
		System:      explainSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: userMsg}},
		Schema:      ExplanationSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("LLM explanation failed: %w", err)
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("parse explanation response: %w", err)
	}
	out.Explanation = strings.TrimSpace(out.Explanation)
	if out.Explanation == "" {
		return "", errors.New("empty explanation")
	}
	return out.Explanation, nil
}

const explainSystemPrompt = `You are a patient algebra tutor for secondary school learners. A learner answered a one-variable linear equation incorrectly.

Instructions:
- Write one or two sentences addressing the most likely mistake.
- Do not state the final answer; the worked steps are shown separately.
- Use plain text only, no markdown.`

var explainUserTemplate = template.Must(template.New("explain").Parse(`Equation: {{.Equation}}
Correct answer: {{.Solution}}
Learner's answer: {{.Answer}}
Likely mistake: {{.Hint}}`))

func buildExplainMessage(p Problem, studentAnswer float64) (string, error) {
	var buf bytes.Buffer
	err := explainUserTemplate.Execute(&buf, map[string]string{
		"Equation": p.Equation,
		"Solution": formatNumber(p.Solution),
		"Answer":   formatNumber(studentAnswer),
		"Hint":     strings.TrimPrefix(Hint(p, studentAnswer), "Hint: "),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
