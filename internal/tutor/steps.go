package tutor

import (
	"fmt"
	"math"
)

// Hints appended to the worked solution.
const (
	HintSigns      = "Hint: Check your signs - did you subtract instead of add?"
	HintConstant   = "Hint: Remember to move the constant to the other side first."
	HintArithmetic = "Hint: Double-check your arithmetic."
)

// SolutionSteps returns a worked solution for p followed by a hint chosen
// from the learner's wrong answer.
func SolutionSteps(p Problem, studentAnswer float64) []string {
	steps := []string{fmt.Sprintf("Original equation: %s", p.Equation)}
	term := p.term()
	value := float64(p.RHS - p.Constant)

	switch {
	case p.Constant > 0:
		steps = append(steps,
			fmt.Sprintf("Subtract %d from both sides: %s = %d - %d", p.Constant, term, p.RHS, p.Constant),
			fmt.Sprintf("Simplify: %s = %s", term, formatNumber(value)),
		)
	case p.Constant < 0:
		steps = append(steps,
			fmt.Sprintf("Add %d to both sides: %s = %d + %d", -p.Constant, term, p.RHS, -p.Constant),
			fmt.Sprintf("Simplify: %s = %s", term, formatNumber(value)),
		)
	}

	switch {
	case p.Divisor > 1:
		steps = append(steps,
			fmt.Sprintf("Multiply both sides by %d: x = %s × %d", p.Divisor, formatNumber(value), p.Divisor),
		)
	case p.Coef != 1:
		steps = append(steps,
			fmt.Sprintf("Divide both sides by %d: x = %s ÷ %d", p.Coef, formatNumber(value), p.Coef),
		)
	}

	steps = append(steps, fmt.Sprintf("Solution: x = %s", formatNumber(p.Solution)))
	return append(steps, Hint(p, studentAnswer))
}

// Hint picks the most likely mistake behind a wrong answer.
func Hint(p Problem, studentAnswer float64) string {
	near := func(v float64) bool { return math.Abs(studentAnswer-v) <= Tolerance(v) }

	if p.Solution != 0 && near(-p.Solution) {
		return HintSigns
	}
	if p.Constant != 0 {
		// Constant moved with the wrong sign.
		if near(p.solveFor(float64(p.RHS + p.Constant))) {
			return HintSigns
		}
		// Constant left in place.
		if near(p.solveFor(float64(p.RHS))) {
			return HintConstant
		}
	}
	return HintArithmetic
}
