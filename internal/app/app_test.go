package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/langcoach-backend/internal/config"
	"github.com/heartmarshall/langcoach-backend/internal/domain"
	"github.com/heartmarshall/langcoach-backend/internal/observe"
	"github.com/heartmarshall/langcoach-backend/internal/provider"
)

type fakeCompleter struct {
	text string
}

func (f *fakeCompleter) Name() string { return "fake" }

func (f *fakeCompleter) Complete(context.Context, provider.CompletionRequest) (*provider.CompletionResult, error) {
	return &provider.CompletionResult{Text: f.text, Model: "fake-model"}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		LLM: config.LLMConfig{
			Provider:        "ollama",
			Model:           "llama3.1:8b",
			Timeout:         5 * time.Second,
			MaxOutputTokens: 1500,
			Temperature:     0.3,
		},
		Feedback: config.FeedbackConfig{
			MaxTextLength:    5000,
			MaxContextLength: 2000,
			DefaultLanguage:  "en",
			DefaultLevel:     "intermediate",
		},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,PATCH,OPTIONS",
			AllowedHeaders: "Content-Type",
		},
		RateLimit: config.RateLimitConfig{Enabled: true, FeedbackPerMin: 2, CleanupInterval: time.Minute},
	}
}

func newTestHandler(t *testing.T, cfg *config.Config, modelOutput string) http.Handler {
	t.Helper()
	backend := &ModelBackend{
		Completer: &fakeCompleter{text: modelOutput},
		Checker:   provider.StaticChecker{Service: "fake"},
	}
	h, cleanup := NewHandler(cfg, slog.New(slog.DiscardHandler), observe.Nop(), backend, nil)
	t.Cleanup(cleanup)
	return h
}

func TestNewHandler_AnalyzeWithoutDatabase(t *testing.T) {
	t.Parallel()

	out := `[{"type":"grammar","severity":"error","original":"goed","suggestion":"went",` +
		`"explanation":"Past tense of go is went.","startIndex":2,"endIndex":6}]`
	h := newTestHandler(t, testConfig(), out)

	req := httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader(`{"text":"I goed home"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var result domain.FeedbackResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "I goed home", result.Original)
	require.Len(t, result.Corrections, 1)
	assert.Equal(t, "went", result.Corrections[0].Suggestion)
	assert.NotEmpty(t, result.Corrections[0].ID)
	assert.Equal(t, 90, result.OverallScore)
	assert.Equal(t, "Found 1 grammar error to fix.", result.Summary)
}

func TestNewHandler_MalformedModelOutput(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, testConfig(), "Sure! Here is my feedback.")

	req := httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader(`{"text":"Bonjour"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"corrections":[]`)
	var result domain.FeedbackResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Empty(t, result.Corrections)
	assert.Equal(t, 100, result.OverallScore)
	assert.Equal(t, "Great job!", result.Summary)
}

func TestNewHandler_ChatRoutesWithoutDatabase(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, testConfig(), "[]")

	req := httptest.NewRequest(http.MethodPatch, "/api/chat-settings", strings.NewReader(`{"chatId":"x"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestNewHandler_RateLimitsFeedbackOnly(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, testConfig(), "[]")

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/feedback", strings.NewReader(`{"text":"Hello"}`))
		req.RemoteAddr = "203.0.113.7:5000"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusOK, post())
	assert.Equal(t, http.StatusTooManyRequests, post())

	req := httptest.NewRequest(http.MethodGet, "/live", nil)
	req.RemoteAddr = "203.0.113.7:5000"
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewHandler_HealthWithoutDatabase(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, testConfig(), "[]")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Status     string                    `json:"status"`
		Components map[string]map[string]any `json:"components"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body.Status)
	assert.Contains(t, body.Components, "llm")
	assert.NotContains(t, body.Components, "database")
}

func TestNewHandler_NoMetricsRouteWhenDisabled(t *testing.T) {
	t.Parallel()

	h := newTestHandler(t, testConfig(), "[]")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServe_StopsOnCancel(t *testing.T) {
	t.Parallel()

	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- serve(ctx, srv, time.Second, slog.New(slog.DiscardHandler)) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}
