// Package api defines the JSON contract shared by the practice server and
// the terminal client.
package api

import "time"

// Version is the API version advertised by the server in VersionHeader.
const Version = "v1.2.0"

// VersionHeader carries the server's API version on every response.
const VersionHeader = "X-ITS-API-Version"

// Status values used in responses.
const (
	StatusSuccess   = "success"
	StatusError     = "error"
	StatusCorrect   = "correct"
	StatusIncorrect = "incorrect"
)

// MaxScore is the score at which a learner completes a level.
const MaxScore = 50

// MaxLevel is the highest practice level.
const MaxLevel = 3

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Username string `json:"username"`
}

// LoginResponse is the body of POST /login.
type LoginResponse struct {
	Status   string `json:"status"`
	Username string `json:"username"`
	Level    int    `json:"level"`
	Score    int    `json:"score"`
	Error    string `json:"error,omitempty"`
}

// ProblemResponse is the body of GET /generate_problem.
type ProblemResponse struct {
	Equation string `json:"equation,omitempty"`
	Level    int    `json:"level,omitempty"`
	Error    string `json:"error,omitempty"`
}

// AnswerRequest is the body of POST /check_answer.
type AnswerRequest struct {
	Answer    string `json:"answer"`
	TimeTaken int    `json:"time_taken"`
}

// AnswerResponse is the body of POST /check_answer. Exactly one of Error,
// LevelUp or Status is meaningful.
type AnswerResponse struct {
	Status     string    `json:"status,omitempty"`
	Feedback   *Feedback `json:"feedback,omitempty"`
	Score      int       `json:"score"`
	Level      int       `json:"level"`
	LevelUp    string    `json:"levelUp,omitempty"`
	NewProblem string    `json:"newProblem,omitempty"`
	Error      string    `json:"error,omitempty"`
}

// Stats is the learner summary returned by GET /get_stats.
type Stats struct {
	Level         int     `json:"level"`
	Score         int     `json:"score"`
	TotalProblems int     `json:"total_problems"`
	Accuracy      float64 `json:"accuracy"`
	Suggestion    string  `json:"suggestion,omitempty"`
}

// StatsResponse is the body of GET /get_stats.
type StatsResponse struct {
	Status  string `json:"status"`
	Stats   *Stats `json:"stats,omitempty"`
	Message string `json:"message,omitempty"`
}

// ProblemRecord is one past attempt.
type ProblemRecord struct {
	Problem       string    `json:"problem"`
	Answer        float64   `json:"answer"`
	StudentAnswer float64   `json:"student_answer"`
	IsCorrect     bool      `json:"is_correct"`
	TimeTaken     int       `json:"time_taken"`
	CreatedAt     time.Time `json:"created_at"`
}

// Performance summarises the most recent attempts.
type Performance struct {
	Accuracy    float64 `json:"accuracy"`
	AverageTime float64 `json:"average_time"`
	Suggestion  string  `json:"suggestion"`
}

// UserSummary identifies the learner on the dashboard.
type UserSummary struct {
	Username       string `json:"username"`
	Level          int    `json:"level"`
	Score          int    `json:"score"`
	TotalProblems  int    `json:"total_problems"`
	CorrectAnswers int    `json:"correct_answers"`
}

// DashboardResponse is the body of GET /dashboard.
type DashboardResponse struct {
	User           UserSummary     `json:"user"`
	RecentProblems []ProblemRecord `json:"recent_problems"`
	Performance    Performance     `json:"performance"`
	Error          string          `json:"error,omitempty"`
}
