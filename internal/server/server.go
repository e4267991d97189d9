// Package server is the practice HTTP API: login, problem generation,
// answer checking and progress reporting.
package server

import (
	"encoding/gob"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/rs/cors"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/store"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/tutor"
)

func init() {
	gob.Register(tutor.Problem{})
}

// SessionName is the cookie holding the learner session.
const SessionName = "its_session"

// Options configures the server.
type Options struct {
	Users   store.UserRepo
	History store.HistoryRepo
	Tutor   *tutor.Tutor

	SessionSecret  []byte
	SecureCookies  bool
	AllowedOrigins []string
	Logger         *slog.Logger

	// RequestLogging enables chi's request logger.
	RequestLogging bool
}

// Server holds the handler dependencies.
type Server struct {
	users    store.UserRepo
	history  store.HistoryRepo
	tutor    *tutor.Tutor
	sessions sessions.Store
	logger   *slog.Logger
}

// New builds the server and its router.
func New(opts Options) (*Server, http.Handler) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cs := sessions.NewCookieStore(opts.SessionSecret)
	cs.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}

	s := &Server{
		users:    opts.Users,
		history:  opts.History,
		tutor:    opts.Tutor,
		sessions: cs,
		logger:   logger,
	}
	return s, s.routes(opts)
}

func (s *Server) routes(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	if opts.RequestLogging {
		r.Use(chiMiddleware.Logger)
	}
	r.Use(chiMiddleware.Recoverer)
	r.Use(versionHeader)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(corsHandler(opts.AllowedOrigins).Handler)

	r.Post("/login", s.Login)
	r.Get("/logout", s.Logout)
	r.Post("/logout", s.Logout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireUser)
		r.Get("/generate_problem", s.GenerateProblem)
		r.Post("/check_answer", s.CheckAnswer)
		r.Get("/get_stats", s.GetStats)
		r.Get("/dashboard", s.Dashboard)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		Error(w, http.StatusNotFound, "Not found")
	})
	return r
}

func corsHandler(origins []string) *cors.Cors {
	if len(origins) == 0 {
		origins = []string{"http://localhost:5000"}
	}
	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{api.VersionHeader},
		AllowCredentials: true,
	})
}

func versionHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(api.VersionHeader, api.Version)
		next.ServeHTTP(w, r)
	})
}
