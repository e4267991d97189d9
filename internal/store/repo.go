package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// User is a learner account.
type User struct {
	ID             int64
	Username       string
	Level          int
	Score          int
	TotalProblems  int
	CorrectAnswers int
	LastActive     time.Time
	CreatedAt      time.Time
}

// UserRepo manages learner accounts.
type UserRepo interface {
	// GetOrCreate returns the user named username, creating it at level 1
	// if missing, and marks it active.
	GetOrCreate(ctx context.Context, username string) (*User, error)

	// Get returns the user with id or ErrNotFound.
	Get(ctx context.Context, id int64) (*User, error)

	// GetByName returns the user named username or ErrNotFound.
	GetByName(ctx context.Context, username string) (*User, error)

	// Reset clears a user's progress and history.
	Reset(ctx context.Context, username string) error
}

// AnswerRecord is one graded answer together with the progress it produced.
type AnswerRecord struct {
	UserID        int64
	Problem       string
	Answer        float64
	StudentAnswer float64
	IsCorrect     bool
	TimeTaken     int
	Level         int
	Score         int
}

// HistoryEntry is a stored attempt.
type HistoryEntry struct {
	ID            int64
	UserID        int64
	Problem       string
	Answer        float64
	StudentAnswer float64
	IsCorrect     bool
	TimeTaken     int
	CreatedAt     time.Time
}

// HistoryRepo records answers.
type HistoryRepo interface {
	// Record stores the attempt and updates the user's counters, level and
	// score in one transaction.
	Record(ctx context.Context, rec AnswerRecord) error

	// Recent returns the user's latest attempts, newest first.
	Recent(ctx context.Context, userID int64, limit int) ([]HistoryEntry, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int    // max results (0 = unlimited)
	Purpose string // exact purpose match when set
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for a purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns recent events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event or nil when missing.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
