package tutor

import (
	"fmt"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
)

// PointsPerCorrect is the score awarded for each correct answer.
const PointsPerCorrect = 10

// Progress is a learner's position in the curriculum.
type Progress struct {
	Level int
	Score int
}

// Award applies one graded answer. A correct answer that brings the score
// to api.MaxScore below the top level moves the learner up a level with the
// score reset; at the top level the score keeps growing.
func (p Progress) Award(correct bool) (next Progress, levelUp bool) {
	if !correct {
		return p, false
	}
	score := p.Score + PointsPerCorrect
	if score >= api.MaxScore && p.Level < api.MaxLevel {
		return Progress{Level: p.Level + 1, Score: 0}, true
	}
	return Progress{Level: p.Level, Score: score}, false
}

// LevelUpMessage announces completion of level.
func LevelUpMessage(level int) string {
	return fmt.Sprintf("Congratulations! You've completed Level %d! Moving to Level %d", level, level+1)
}
