package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/llm"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/tutor"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Practice problems locally without a server (no database)",
	Long: `Generate and interactively answer problems for one level.

This is a stateless developer tool: no server, no database, no history.
Useful for checking problem generation, grading and LLM explanations.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Int("level", 1, "Starting level (1-3)")
	previewCmd.Flags().Int("count", 5, "Number of problems")
}

func runPreview(cmd *cobra.Command, args []string) error {
	level, _ := cmd.Flags().GetInt("level")
	count, _ := cmd.Flags().GetInt("count")
	if level < 1 || level > api.MaxLevel {
		return fmt.Errorf("invalid level %d: must be 1-%d", level, api.MaxLevel)
	}

	ctx := cmd.Context()
	logger := slog.New(slog.DiscardHandler)

	// No EventRepo: request logging is skipped.
	var explainer tutor.Explainer
	provider, _, err := llm.NewProviderFromEnv(ctx, nil, logger)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}
	if provider != nil {
		explainer = tutor.NewLLMExplainer(provider, tutor.DefaultExplainerConfig())
	}

	t := tutor.New(tutor.NewGenerator(nil), explainer, tutor.DefaultConfig(), logger)
	return practice(ctx, t, cmd.InOrStdin(), cmd.OutOrStdout(), level, count)
}

// practice runs count problems on in/out, carrying progress across them.
func practice(ctx context.Context, t *tutor.Tutor, in io.Reader, out io.Writer, level, count int) error {
	scanner := bufio.NewScanner(in)
	progress := tutor.Progress{Level: level}
	var correct int

	fmt.Fprintf(out, "Level %d, %d problems. Answers may be integers, decimals or fractions.\n\n", level, count)

	p := t.NextProblem(progress.Level)
	for i := 1; i <= count; i++ {
		fmt.Fprintf(out, "Q%d. Solve for x: %s\n", i, p.Equation)

		answer, err := readAnswer(scanner, out)
		if err != nil {
			return err
		}

		res := t.Grade(ctx, tutor.Submission{Problem: p, Answer: answer, Progress: progress})
		progress = res.Progress
		if res.Correct {
			correct++
		}
		fmt.Fprintln(out, formatFeedback(res.Feedback))
		fmt.Fprintf(out, "Level %d  Score: %d/%d\n\n", progress.Level, progress.Score, api.MaxScore)

		switch {
		case res.LevelUp != "":
			fmt.Fprintf(out, "*** %s ***\n\n", res.LevelUp)
			p = *res.NextProblem
		case res.Correct:
			p = t.NextProblem(progress.Level)
		}
	}

	fmt.Fprintf(out, "Result: %d/%d correct\n", correct, count)
	return nil
}

// readAnswer prompts until a parseable answer is entered.
func readAnswer(scanner *bufio.Scanner, out io.Writer) (float64, error) {
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, err
			}
			return 0, errors.New("input closed")
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			fmt.Fprintln(out, "Please enter an answer")
			continue
		}
		v, err := tutor.ParseAnswer(text)
		if err != nil {
			fmt.Fprintln(out, "Invalid answer format")
			continue
		}
		return v, nil
	}
}

func formatFeedback(fb *api.Feedback) string {
	if fb == nil {
		return ""
	}
	if !fb.IsStructured() {
		return fb.Text
	}
	d := fb.Detail
	var b strings.Builder
	b.WriteString(d.Message)
	for i, step := range d.Steps {
		fmt.Fprintf(&b, "\n  %d. %s", i+1, step)
	}
	if d.Explanation != "" {
		fmt.Fprintf(&b, "\nTip: %s", d.Explanation)
	}
	return b.String()
}
