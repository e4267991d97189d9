package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
)

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL)
	require.NoError(t, err)
	return c
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(api.VersionHeader, api.Version)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func TestLoginKeepsSessionCookie(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /login", func(w http.ResponseWriter, r *http.Request) {
		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		http.SetCookie(w, &http.Cookie{Name: "its", Value: req.Username, Path: "/"})
		writeJSON(w, http.StatusOK, api.LoginResponse{Status: api.StatusSuccess, Username: req.Username, Level: 1})
	})
	mux.HandleFunc("GET /generate_problem", func(w http.ResponseWriter, r *http.Request) {
		if _, err := r.Cookie("its"); err != nil {
			writeJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: "Not logged in"})
			return
		}
		writeJSON(w, http.StatusOK, api.ProblemResponse{Equation: "x + 5 = 10", Level: 1})
	})
	c := newTestClient(t, mux)

	p, err := c.GenerateProblem(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Not logged in", p.Error)

	login, err := c.Login(context.Background(), "ada")
	require.NoError(t, err)
	assert.Equal(t, "ada", login.Username)

	p, err = c.GenerateProblem(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "x + 5 = 10", p.Equation)
	assert.Empty(t, p.Error)
}

func TestCheckAnswerDecodesStructuredFeedback(t *testing.T) {
	var got api.AnswerRequest
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"incorrect","feedback":{"message":"Let's solve this step by step:","steps":["a","b"],"explanation":"tip"},"score":10,"level":1}`))
	}))

	resp, err := c.CheckAnswer(context.Background(), api.AnswerRequest{Answer: "4", TimeTaken: 12})
	require.NoError(t, err)
	assert.Equal(t, api.AnswerRequest{Answer: "4", TimeTaken: 12}, got)
	assert.Equal(t, api.StatusIncorrect, resp.Status)
	require.True(t, resp.Feedback.IsStructured())
	assert.Equal(t, []string{"a", "b"}, resp.Feedback.Detail.Steps)
	assert.Equal(t, "tip", resp.Feedback.Detail.Explanation)
}

func TestContractViolation(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"equation":42}`))
	}))

	_, err := c.GenerateProblem(context.Background())
	var ce *ContractError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, api.SchemaProblem, ce.Schema)
}

func TestNonContractErrorStatus(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))

	_, err := c.Stats(context.Background())
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Code)
	assert.Contains(t, se.Body, "upstream exploded")
}

func TestIncompatibleServerVersion(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(api.VersionHeader, "v2.0.0")
		w.Write([]byte(`{"status":"success","stats":{"level":1,"score":0}}`))
	}))

	_, err := c.Stats(context.Background())
	var ie *IncompatibleServerError
	require.True(t, errors.As(err, &ie), "got %v", err)
	assert.Equal(t, "v2.0.0", ie.Server)
}

func TestCheckVersion(t *testing.T) {
	assert.NoError(t, checkVersion(""))
	assert.NoError(t, checkVersion("v1.9.3"))
	assert.Error(t, checkVersion("1.2.0"))
	assert.Error(t, checkVersion("v0.9.0"))
}

func TestRequestsCarryRunID(t *testing.T) {
	var seen []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get(RunIDHeader))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
		writeJSON(w, http.StatusOK, map[string]any{"status": "error", "message": "no user"})
	}))

	for range 2 {
		resp, err := c.Stats(context.Background())
		require.NoError(t, err)
		assert.Equal(t, api.StatusError, resp.Status)
	}
	assert.Equal(t, []string{c.RunID(), c.RunID()}, seen)
}

func TestLogout(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/logout", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	assert.NoError(t, c.Logout(context.Background()))
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := New("localhost:5000")
	assert.Error(t, err)
}
