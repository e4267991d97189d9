package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/sessions"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/store"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/tutor"
)

// Session value keys.
const (
	keyUserID   = "user_id"
	keyUsername = "username"
	keyProblem  = "current_problem"
)

type userKey struct{}

// requireUser loads the session's user into the request context. Stats
// keep their historical {status, message} error shape.
func (s *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fail := func(status int, msg string) {
			if r.URL.Path == "/get_stats" {
				JSON(w, status, api.StatsResponse{Status: api.StatusError, Message: msg})
				return
			}
			Error(w, status, msg)
		}

		sess, _ := s.sessions.Get(r, SessionName)
		id, ok := sess.Values[keyUserID].(int64)
		if !ok {
			fail(http.StatusUnauthorized, "Not logged in")
			return
		}
		user, err := s.users.Get(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			fail(http.StatusNotFound, "User not found")
			return
		}
		if err != nil {
			s.logger.Error("load session user", "user_id", id, "error", err)
			fail(http.StatusInternalServerError, "Internal error")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, user)))
	})
}

func userFrom(ctx context.Context) *store.User {
	u, _ := ctx.Value(userKey{}).(*store.User)
	return u
}

func currentProblem(sess *sessions.Session) (tutor.Problem, bool) {
	p, ok := sess.Values[keyProblem].(tutor.Problem)
	return p, ok
}

func (s *Server) session(r *http.Request) *sessions.Session {
	// Get returns a fresh session alongside a decode error for a bad cookie.
	sess, err := s.sessions.Get(r, SessionName)
	if err != nil {
		s.logger.Debug("discarding unreadable session cookie", "error", err)
	}
	return sess
}

func (s *Server) save(w http.ResponseWriter, r *http.Request, sess *sessions.Session) bool {
	if err := sess.Save(r, w); err != nil {
		s.logger.Error("save session", "error", err)
		Error(w, http.StatusInternalServerError, "Internal error")
		return false
	}
	return true
}
