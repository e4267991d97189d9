package tutor

import (
	"math/rand/v2"
	"sync"
)

// Generator produces random problems for a level. It is safe for
// concurrent use.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator returns a Generator drawing from src. A nil src uses a
// randomly seeded PCG source.
func NewGenerator(src rand.Source) *Generator {
	if src == nil {
		src = rand.NewPCG(rand.Uint64(), rand.Uint64())
	}
	return &Generator{rng: rand.New(src)}
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

// Generate returns a problem for level. Levels outside 1..3 use level 1.
func (g *Generator) Generate(level int) Problem {
	g.mu.Lock()
	defer g.mu.Unlock()

	if level < 1 || level > 3 {
		level = 1
	}
	pick := g.rng.IntN(2)

	switch level {
	case 2:
		if pick == 0 {
			a, b := g.between(1, 20), g.between(-10, 10)
			return NewProblem(2, FormSubConst, 1, 0, -a, b)
		}
		a, b, c := g.between(2, 5), g.between(1, 10), g.between(20, 50)
		return NewProblem(2, FormLinear, a, 0, b, c)

	case 3:
		if pick == 0 {
			a, b, c := g.between(-10, -1), g.between(-20, 20), g.between(-50, 50)
			return NewProblem(3, FormLinearSub, a, 0, -b, c)
		}
		a, b, c := g.between(2, 5), g.between(-10, 10), g.between(-20, 20)
		return NewProblem(3, FormDivideThen, 0, a, b, c)
	}

	if pick == 0 {
		a, b := g.between(1, 10), g.between(11, 20)
		return NewProblem(1, FormAddConst, 1, 0, a, b)
	}
	a, b := g.between(1, 5), g.between(5, 15)
	return NewProblem(1, FormMultiply, a, 0, 0, b)
}
