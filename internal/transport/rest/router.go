package rest

import "net/http"

// Handlers groups the endpoint handlers mounted by NewRouter. Chat may be nil
// when the service runs without a database; its routes then answer 503.
type Handlers struct {
	Feedback *FeedbackHandler
	Chat     *ChatHandler
	Health   *HealthHandler
	Metrics  http.Handler
}

// NewRouter registers all routes on a new ServeMux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)
	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}

	mux.HandleFunc("POST /api/feedback", h.Feedback.Analyze)
	mux.HandleFunc("POST /api/feedback/segments", h.Feedback.Segments)
	mux.HandleFunc("GET /api/llm/health", h.Health.LLM)

	if h.Chat != nil {
		mux.HandleFunc("PATCH /api/chat-settings", h.Chat.UpdateSettings)
		mux.HandleFunc("GET /api/chats/{id}/system-prompt", h.Chat.SystemPrompt)
	} else {
		mux.HandleFunc("PATCH /api/chat-settings", storageDisabled)
		mux.HandleFunc("GET /api/chats/{id}/system-prompt", storageDisabled)
	}

	return mux
}

func storageDisabled(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusServiceUnavailable, "chat storage is not configured")
}
