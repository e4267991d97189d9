package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/store"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/tutor"
)

const maxUsernameLen = 80

// Login creates the user on first sight and starts a session. It accepts a
// JSON body or a form field named username.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var username string
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req api.LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		username = req.Username
	} else {
		username = r.FormValue("username")
	}
	username = strings.TrimSpace(username)
	if username == "" || len(username) > maxUsernameLen {
		Error(w, http.StatusBadRequest, "Username is required")
		return
	}

	user, err := s.users.GetOrCreate(r.Context(), username)
	if err != nil {
		s.logger.Error("login", "username", username, "error", err)
		Error(w, http.StatusInternalServerError, "Internal error")
		return
	}

	sess := s.session(r)
	sess.Values = map[any]any{
		keyUserID:   user.ID,
		keyUsername: user.Username,
	}
	if !s.save(w, r, sess) {
		return
	}
	s.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)
	JSON(w, http.StatusOK, api.LoginResponse{
		Status:   api.StatusSuccess,
		Username: user.Username,
		Level:    user.Level,
		Score:    user.Score,
	})
}

// Logout clears the session.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	sess := s.session(r)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	if !s.save(w, r, sess) {
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GenerateProblem issues a problem at the user's level and makes it the
// session's current problem.
func (s *Server) GenerateProblem(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	p := s.tutor.NextProblem(user.Level)

	sess := s.session(r)
	sess.Values[keyProblem] = p
	if !s.save(w, r, sess) {
		return
	}
	JSON(w, http.StatusOK, api.ProblemResponse{Equation: p.Equation, Level: user.Level})
}

// CheckAnswer grades the answer to the current problem and records it.
func (s *Server) CheckAnswer(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	sess := s.session(r)
	problem, ok := currentProblem(sess)
	if !ok {
		Error(w, http.StatusConflict, "Session expired")
		return
	}

	var req api.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "Invalid answer format")
		return
	}
	answer, err := tutor.ParseAnswer(req.Answer)
	if err != nil {
		Error(w, http.StatusBadRequest, "Invalid answer format")
		return
	}
	if req.TimeTaken < 0 {
		req.TimeTaken = 0
	}

	res := s.tutor.Grade(r.Context(), tutor.Submission{
		Problem:   problem,
		Answer:    answer,
		TimeTaken: req.TimeTaken,
		Progress:  tutor.Progress{Level: user.Level, Score: user.Score},
	})

	err = s.history.Record(r.Context(), store.AnswerRecord{
		UserID:        user.ID,
		Problem:       problem.Equation,
		Answer:        problem.Solution,
		StudentAnswer: answer,
		IsCorrect:     res.Correct,
		TimeTaken:     req.TimeTaken,
		Level:         res.Progress.Level,
		Score:         res.Progress.Score,
	})
	if err != nil {
		s.logger.Error("record answer", "user_id", user.ID, "error", err)
		Error(w, http.StatusInternalServerError, "Internal error")
		return
	}

	// A solved problem cannot be scored twice; a wrong one stays open.
	switch {
	case res.NextProblem != nil:
		sess.Values[keyProblem] = *res.NextProblem
	case res.Correct:
		delete(sess.Values, keyProblem)
	}
	if !s.save(w, r, sess) {
		return
	}

	out := api.AnswerResponse{
		Status:   api.StatusIncorrect,
		Feedback: res.Feedback,
		Score:    res.Progress.Score,
		Level:    res.Progress.Level,
		LevelUp:  res.LevelUp,
	}
	if res.Correct {
		out.Status = api.StatusCorrect
	}
	if res.NextProblem != nil {
		out.NewProblem = res.NextProblem.Equation
	}
	s.logger.Info("answer checked",
		"user_id", user.ID, "equation", problem.Equation, "correct", res.Correct,
		"level", out.Level, "score", out.Score, "level_up", res.LevelUp != "")
	JSON(w, http.StatusOK, out)
}

// GetStats reports level, score and recent performance.
func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	perf, _, err := s.performance(r, user.ID)
	if err != nil {
		JSON(w, http.StatusInternalServerError, api.StatsResponse{Status: api.StatusError, Message: "Internal error"})
		return
	}
	JSON(w, http.StatusOK, api.StatsResponse{
		Status: api.StatusSuccess,
		Stats: &api.Stats{
			Level:         user.Level,
			Score:         user.Score,
			TotalProblems: user.TotalProblems,
			Accuracy:      perf.Accuracy,
			Suggestion:    perf.Suggestion,
		},
	})
}

// Dashboard returns the user summary, recent problems and performance.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	perf, recent, err := s.performance(r, user.ID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "Internal error")
		return
	}

	records := make([]api.ProblemRecord, 0, len(recent))
	for _, h := range recent {
		records = append(records, api.ProblemRecord{
			Problem:       h.Problem,
			Answer:        h.Answer,
			StudentAnswer: h.StudentAnswer,
			IsCorrect:     h.IsCorrect,
			TimeTaken:     h.TimeTaken,
			CreatedAt:     h.CreatedAt,
		})
	}
	JSON(w, http.StatusOK, api.DashboardResponse{
		User: api.UserSummary{
			Username:       user.Username,
			Level:          user.Level,
			Score:          user.Score,
			TotalProblems:  user.TotalProblems,
			CorrectAnswers: user.CorrectAnswers,
		},
		RecentProblems: records,
		Performance: api.Performance{
			Accuracy:    perf.Accuracy,
			AverageTime: perf.AverageTime,
			Suggestion:  perf.Suggestion,
		},
	})
}

func (s *Server) performance(r *http.Request, userID int64) (tutor.Performance, []store.HistoryEntry, error) {
	recent, err := s.history.Recent(r.Context(), userID, tutor.PerformanceWindow)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.logger.Error("load history", "user_id", userID, "error", err)
		return tutor.Performance{}, nil, err
	}
	attempts := make([]tutor.Attempt, len(recent))
	for i, h := range recent {
		attempts[i] = tutor.Attempt{Correct: h.IsCorrect, TimeTaken: h.TimeTaken}
	}
	return tutor.Analyze(attempts), recent, nil
}
