// Package client talks to the practice server over its JSON HTTP API.
// Responses are schema-checked before decoding and nothing is retried.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/mod/semver"

	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/api"
	"github.com/sdiogba/COM7032-Assessment-ITS-System-240010072/internal/schema"
)

const (
	// RunIDHeader identifies one client run across requests in server logs.
	RunIDHeader = "X-ITS-Run-ID"

	defaultTimeout = 15 * time.Second
	maxBodyBytes   = 1 << 20
)

// Client is a session-holding API client. The server session lives in a
// cookie jar owned by the client.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger *slog.Logger
	runID  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its Jar is replaced
// when nil.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server URL must be http or https, got %q", baseURL)
	}

	c := &Client{
		base:   u,
		http:   &http.Client{Timeout: defaultTimeout},
		logger: slog.New(slog.DiscardHandler),
		runID:  uuid.NewString(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

// RunID returns the identifier sent with every request.
func (c *Client) RunID() string { return c.runID }

// BaseURL returns the server URL.
func (c *Client) BaseURL() string { return c.base.String() }

// Login starts a server session for username.
func (c *Client) Login(ctx context.Context, username string) (*api.LoginResponse, error) {
	var out api.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/login", api.LoginRequest{Username: username}, api.SchemaLogin, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout ends the server session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, "", nil)
}

// GenerateProblem asks for a new problem at the learner's level.
func (c *Client) GenerateProblem(ctx context.Context) (*api.ProblemResponse, error) {
	var out api.ProblemResponse
	if err := c.do(ctx, http.MethodGet, "/generate_problem", nil, api.SchemaProblem, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckAnswer submits an answer for the current problem.
func (c *Client) CheckAnswer(ctx context.Context, req api.AnswerRequest) (*api.AnswerResponse, error) {
	var out api.AnswerResponse
	if err := c.do(ctx, http.MethodPost, "/check_answer", req, api.SchemaAnswer, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Stats fetches the learner's level, score and performance summary.
func (c *Client) Stats(ctx context.Context) (*api.StatsResponse, error) {
	var out api.StatsResponse
	if err := c.do(ctx, http.MethodGet, "/get_stats", nil, api.SchemaStats, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard fetches recent problems and performance analysis.
func (c *Client) Dashboard(ctx context.Context) (*api.DashboardResponse, error) {
	var out api.DashboardResponse
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, api.SchemaDashboard, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any, schemaName string, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.JoinPath(path).String(), reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	req.Header.Set(RunIDHeader, c.runID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}
	c.logger.Debug("api call",
		"method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "duration", time.Since(start))

	if err := checkVersion(resp.Header.Get(api.VersionHeader)); err != nil {
		return err
	}
	if out == nil {
		if resp.StatusCode >= 300 {
			return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: snippet(data)}
		}
		return nil
	}

	// Error bodies that match the contract are delivered like any other
	// response so callers can show the server's message.
	if err := schema.Validate(schemaName, api.Schemas[schemaName], data); err != nil {
		if resp.StatusCode >= 300 {
			return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: snippet(data)}
		}
		return &ContractError{Schema: schemaName, Err: err}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &ContractError{Schema: schemaName, Err: err}
	}
	return nil
}

// checkVersion rejects a server whose API major version differs. Servers
// that send no version are accepted.
func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	if !semver.IsValid(v) {
		return &IncompatibleServerError{Server: v, Client: api.Version}
	}
	if semver.Major(v) != semver.Major(api.Version) {
		return &IncompatibleServerError{Server: v, Client: api.Version}
	}
	return nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}
