package tutor

import "math"

// PerformanceWindow is the number of recent attempts analysed.
const PerformanceWindow = 5

// Attempt is one graded answer.
type Attempt struct {
	Correct   bool
	TimeTaken int
}

// Performance summarises recent attempts.
type Performance struct {
	Accuracy    float64 // percent, two decimals
	AverageTime float64 // seconds, one decimal
	Suggestion  string
}

// Analyze summarises the most recent attempts, newest first. Only the
// first PerformanceWindow entries are used.
func Analyze(recent []Attempt) Performance {
	if len(recent) > PerformanceWindow {
		recent = recent[:PerformanceWindow]
	}
	var correct, total int
	for _, a := range recent {
		if a.Correct {
			correct++
		}
		total += a.TimeTaken
	}

	var perf Performance
	if n := len(recent); n > 0 {
		perf.Accuracy = round2(float64(correct) / float64(n) * 100)
		perf.AverageTime = math.Round(float64(total)/float64(n)*10) / 10
	}
	perf.Suggestion = suggestion(perf.Accuracy, perf.AverageTime)
	return perf
}

func suggestion(accuracy, avgTime float64) string {
	fast := avgTime < 30
	switch {
	case accuracy >= 80 && fast:
		return "Excellent work! You're solving problems quickly and accurately."
	case accuracy >= 80:
		return "Great accuracy! Try to improve your speed while maintaining accuracy."
	case accuracy >= 60 && fast:
		return "Good speed! Focus on improving accuracy by double-checking your work."
	case accuracy >= 60:
		return "You're making good progress. Keep practicing to improve both speed and accuracy."
	}
	return "Take your time to understand each problem. Focus on the steps involved in solving them."
}
