package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
	"github.com/heartmarshall/langcoach-backend/internal/service/chat"
)

type chatService interface {
	UpdateSettings(ctx context.Context, input chat.UpdateSettingsInput) (*domain.Chat, error)
	SystemPrompt(ctx context.Context, id uuid.UUID) (string, error)
}

// ChatHandler serves per-chat coaching settings.
type ChatHandler struct {
	svc chatService
	log *slog.Logger
}

// NewChatHandler creates a ChatHandler.
func NewChatHandler(svc chatService, logger *slog.Logger) *ChatHandler {
	return &ChatHandler{svc: svc, log: logger.With("handler", "chat")}
}

// nullable tells an absent JSON field apart from an explicit null.
type nullable[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (n *nullable[T]) UnmarshalJSON(b []byte) error {
	n.Set = true
	if bytes.Equal(b, []byte("null")) {
		n.Null = true
		return nil
	}
	return json.Unmarshal(b, &n.Value)
}

type chatSettingsRequest struct {
	ChatID         string                        `json:"chatId"`
	TargetLanguage *string                       `json:"targetLanguage"`
	ScenarioID     nullable[string]              `json:"scenarioId"`
	ScenarioData   nullable[domain.ScenarioData] `json:"scenarioData"`
}

type systemPromptResponse struct {
	Prompt string `json:"prompt"`
}

// UpdateSettings handles PATCH /api/chat-settings. A null scenarioId or
// scenarioData removes the chat's scenario.
func (h *ChatHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req chatSettingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if req.ChatID == "" {
		writeError(w, http.StatusBadRequest, "chatId: required")
		return
	}
	chatID, err := uuid.Parse(req.ChatID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "chatId: invalid id")
		return
	}

	input := chat.UpdateSettingsInput{
		ChatID:        chatID,
		ClearScenario: req.ScenarioID.Null || req.ScenarioData.Null,
	}
	if req.TargetLanguage != nil {
		lang := domain.Language(strings.ToLower(strings.TrimSpace(*req.TargetLanguage)))
		input.TargetLanguage = &lang
	}
	if req.ScenarioID.Set && !req.ScenarioID.Null {
		input.ScenarioID = &req.ScenarioID.Value
	}
	if req.ScenarioData.Set && !req.ScenarioData.Null {
		input.Scenario = &req.ScenarioData.Value
	}

	if _, err := h.svc.UpdateSettings(r.Context(), input); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// SystemPrompt handles GET /api/chats/{id}/system-prompt.
func (h *ChatHandler) SystemPrompt(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id: invalid id")
		return
	}

	prompt, err := h.svc.SystemPrompt(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, systemPromptResponse{Prompt: prompt})
}
