package cmd

import (
	"bytes"
	"context"
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/store"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/tutor"
)

func answer(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func TestPracticeLoop(t *testing.T) {
	twin := tutor.NewGenerator(rand.NewPCG(3, 9))
	tr := tutor.New(tutor.NewGenerator(rand.NewPCG(3, 9)), nil, tutor.DefaultConfig(), nil)

	first := twin.Generate(1)
	second := twin.Generate(1)

	input := strings.Join([]string{
		"abc",
		"",
		answer(first.Solution + 1),
		answer(first.Solution),
		answer(second.Solution),
	}, "\n") + "\n"

	var out bytes.Buffer
	err := practice(context.Background(), tr, strings.NewReader(input), &out, 1, 3)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Q1. Solve for x: "+first.Equation)
	assert.Contains(t, got, "Q2. Solve for x: "+first.Equation, "a wrong answer keeps the problem")
	assert.Contains(t, got, "Q3. Solve for x: "+second.Equation)
	assert.Contains(t, got, "Invalid answer format")
	assert.Contains(t, got, "Please enter an answer")
	assert.Contains(t, got, tutor.StepByStepMessage)
	assert.Contains(t, got, "Tip: "+tutor.DefaultExplanation)
	assert.Contains(t, got, "Level 1  Score: 20/50")
	assert.Contains(t, got, "Result: 2/3 correct")
}

func TestPracticeInputClosed(t *testing.T) {
	tr := tutor.New(nil, nil, tutor.DefaultConfig(), nil)
	err := practice(context.Background(), tr, strings.NewReader(""), &bytes.Buffer{}, 1, 1)
	assert.EqualError(t, err, "input closed")
}

func TestPrintUsage(t *testing.T) {
	var out bytes.Buffer
	printUsage(&out, nil, nil)
	assert.Equal(t, "No LLM usage recorded yet.\n", out.String())

	out.Reset()
	printUsage(&out,
		[]store.LLMUsage{{Purpose: "answer-explanation", Calls: 2, InputTokens: 300, OutputTokens: 80, AvgLatencyMs: 420}},
		[]store.LLMUsage{
			{Model: "gpt-4o-mini", Calls: 1, InputTokens: 150, OutputTokens: 40},
			{Model: "local-model", Calls: 1, InputTokens: 150, OutputTokens: 40},
		})
	got := out.String()
	assert.Contains(t, got, "answer-explanation")
	assert.Contains(t, got, "380")
	assert.Contains(t, got, "TOTAL (partial)")
	assert.Contains(t, got, "Pricing unavailable for: local-model")
}

func TestPrintEvents(t *testing.T) {
	var out bytes.Buffer
	printEvents(&out, nil)
	assert.Equal(t, "No LLM events found.\n", out.String())

	out.Reset()
	e := store.LLMRequestEvent{
		ID:        7,
		Timestamp: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		LLMRequestEventData: store.LLMRequestEventData{
			Provider: "openai", Model: "gpt-4o-mini", Purpose: "answer-explanation",
			Success: false, ErrorMessage: "rate limited",
		},
	}
	printEvents(&out, []store.LLMRequestEvent{e})
	assert.Contains(t, out.String(), "gpt-4o-mini")
	assert.Contains(t, out.String(), "✗")

	out.Reset()
	printEvent(&out, &e)
	assert.Contains(t, out.String(), "Error:     rate limited")
	assert.Equal(t, 2, strings.Count(out.String(), "(not captured)"))
}

func TestFormatCost(t *testing.T) {
	assert.Equal(t, "$0.0042", formatCost(0.0042))
	assert.Equal(t, "$1.50", formatCost(1.5))
}
