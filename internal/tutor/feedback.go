package tutor

// Messages used when grading.
const (
	StepByStepMessage  = "Let's solve this step by step:"
	DefaultExplanation = "Check your calculation and try again."
)

// CorrectFeedback praises a correct answer, taking the time spent into
// account.
func CorrectFeedback(timeTaken int) string {
	msg := "Correct! Good job! You got the right answer."
	if timeTaken < 30 {
		msg = "Correct! Excellent work! You solved it quickly and accurately."
	}
	switch {
	case timeTaken > 120:
		msg += " Try to work a bit faster while maintaining accuracy."
	case timeTaken < 10:
		msg += " Good speed, but make sure to double-check your work."
	}
	return msg
}
