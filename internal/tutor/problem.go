package tutor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Form identifies the equation template a problem was built from.
type Form string

const (
	FormAddConst   Form = "x + a = b"
	FormMultiply   Form = "ax = b"
	FormSubConst   Form = "x - a = b"
	FormLinear     Form = "ax + b = c"
	FormLinearSub  Form = "ax - b = c"
	FormDivideThen Form = "x/a + b = c"
)

// Problem is a linear equation in x, normalised to
//
//	Coef*x + Constant = RHS      (Divisor == 0)
//	x/Divisor + Constant = RHS   (Divisor > 1)
//
// Constant is signed as it appears on the left-hand side.
type Problem struct {
	Level    int
	Form     Form
	Coef     int
	Divisor  int
	Constant int
	RHS      int
	Equation string
	Solution float64
}

// NewProblem builds a problem and fills in Equation and Solution.
func NewProblem(level int, form Form, coef, divisor, constant, rhs int) Problem {
	p := Problem{
		Level:    level,
		Form:     form,
		Coef:     coef,
		Divisor:  divisor,
		Constant: constant,
		RHS:      rhs,
	}
	if p.Divisor == 0 && p.Coef == 0 {
		p.Coef = 1
	}
	p.Equation = p.render()
	p.Solution = p.solveFor(float64(p.RHS - p.Constant))
	return p
}

// solveFor returns x given the isolated variable term's value.
func (p Problem) solveFor(termValue float64) float64 {
	if p.Divisor > 1 {
		return round2(termValue * float64(p.Divisor))
	}
	return round2(termValue / float64(p.Coef))
}

func (p Problem) term() string {
	if p.Divisor > 1 {
		return fmt.Sprintf("x/%d", p.Divisor)
	}
	switch p.Coef {
	case 1:
		return "x"
	case -1:
		return "-x"
	}
	return fmt.Sprintf("%dx", p.Coef)
}

func (p Problem) render() string {
	var b strings.Builder
	b.WriteString(p.term())
	switch {
	case p.Constant > 0:
		fmt.Fprintf(&b, " + %d", p.Constant)
	case p.Constant < 0:
		fmt.Fprintf(&b, " - %d", -p.Constant)
	}
	fmt.Fprintf(&b, " = %d", p.RHS)
	return b.String()
}

// Fallback is served when no template applies.
var Fallback = NewProblem(1, FormAddConst, 1, 0, 5, 10)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// formatNumber renders v with at most two decimals and no trailing zeros.
func formatNumber(v float64) string {
	v = round2(v)
	if v == 0 {
		v = 0 // normalise -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
