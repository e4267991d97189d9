package tutor

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidAnswer is returned when an answer is not a number.
var ErrInvalidAnswer = errors.New("invalid answer format")

// ParseAnswer reads a learner's answer. Accepted forms: decimals ("4",
// "-2.5"), fractions ("7/3") and an optional "x =" prefix.
func ParseAnswer(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(strings.ToLower(s), "x"); ok {
		if r, ok := strings.CutPrefix(strings.TrimSpace(rest), "="); ok {
			s = strings.TrimSpace(r)
		}
	}
	if s == "" {
		return 0, ErrInvalidAnswer
	}

	if strings.Contains(s, "/") {
		num, den, err := parseFraction(s)
		if err != nil {
			return 0, fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
		}
		if den == 0 {
			return 0, fmt.Errorf("%w: zero denominator", ErrInvalidAnswer)
		}
		return float64(num) / float64(den), nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAnswer, s)
	}
	return v, nil
}

// Tolerance is the allowed error when checking against solution: 1% of
// its magnitude above 100, otherwise 0.01.
func Tolerance(solution float64) float64 {
	if math.Abs(solution) > 100 {
		return 0.01 * math.Abs(solution)
	}
	return 0.01
}

// CheckAnswer reports whether answer is within tolerance of solution.
func CheckAnswer(answer, solution float64) bool {
	return math.Abs(answer-solution) <= Tolerance(solution)+1e-9
}

// parseFraction parses "a/b" into numerator and denominator.
func parseFraction(s string) (int64, int64, error) {
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid fraction format: %q", s)
	}
	num, err := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid numerator: %w", err)
	}
	den, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid denominator: %w", err)
	}
	return num, den, nil
}
