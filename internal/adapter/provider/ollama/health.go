// Package ollama probes a local Ollama server for liveness and installed
// models. Completions go through the anyllm adapter.
package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/heartmarshall/langcoach-backend/internal/provider"
)

// DefaultBaseURL is where Ollama listens out of the box.
const DefaultBaseURL = "http://localhost:11434"

const serviceName = "ollama"

// tagsResponse is the body of GET /api/tags.
type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// Checker calls the Ollama HTTP API.
type Checker struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewChecker creates a Checker. An empty baseURL selects DefaultBaseURL.
func NewChecker(baseURL string, logger *slog.Logger) *Checker {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Checker{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
		log:        logger.With("adapter", "ollama"),
	}
}

// Models returns the names of the installed models.
func (c *Checker) Models(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("ollama: create request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("ollama: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ollama: read body: %w", err)
	}

	var tags tagsResponse
	if err := json.Unmarshal(body, &tags); err != nil {
		return nil, fmt.Errorf("ollama: decode json: %w", err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// Check reports whether the server answers. It never returns an error; the
// failure reason is carried in HealthStatus.Err.
func (c *Checker) Check(ctx context.Context) provider.HealthStatus {
	models, err := c.Models(ctx)
	if err != nil {
		c.log.WarnContext(ctx, "ollama health check failed", slog.String("error", err.Error()))
		return provider.HealthStatus{Service: serviceName, Err: err.Error()}
	}
	return provider.HealthStatus{Service: serviceName, Healthy: true, Models: models}
}

// doWithRetry executes the request with a single retry on 5xx or network errors.
func (c *Checker) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)

	shouldRetry := err != nil || (resp != nil && resp.StatusCode >= 500)
	if !shouldRetry {
		return resp, err
	}

	if ctx.Err() != nil {
		return resp, err
	}

	reason := "network error"
	if err == nil && resp != nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
	}
	c.log.WarnContext(ctx, "ollama retry", slog.String("reason", reason))

	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(500 * time.Millisecond):
	}

	return c.httpClient.Do(req)
}
