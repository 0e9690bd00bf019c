package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
	"github.com/heartmarshall/langcoach-backend/internal/highlight"
	"github.com/heartmarshall/langcoach-backend/internal/service/feedback"
)

type feedbackService interface {
	Analyze(ctx context.Context, input feedback.AnalyzeInput) (*domain.FeedbackResult, error)
}

// FeedbackHandler serves the feedback endpoints.
type FeedbackHandler struct {
	svc feedbackService
	log *slog.Logger
}

// NewFeedbackHandler creates a FeedbackHandler.
func NewFeedbackHandler(svc feedbackService, logger *slog.Logger) *FeedbackHandler {
	return &FeedbackHandler{svc: svc, log: logger.With("handler", "feedback")}
}

type analyzeRequest struct {
	Text           string `json:"text"`
	Context        string `json:"context"`
	UserLevel      string `json:"userLevel"`
	TargetLanguage string `json:"targetLanguage"`
	MessageID      string `json:"messageId"`
}

type segmentsRequest struct {
	Text        string              `json:"text"`
	Corrections []domain.Correction `json:"corrections"`
}

type segmentsResponse struct {
	Segments []domain.TextSegment `json:"segments"`
}

// Analyze handles POST /api/feedback.
func (h *FeedbackHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	input := feedback.AnalyzeInput{
		Text:           req.Text,
		Context:        req.Context,
		UserLevel:      domain.UserLevel(strings.ToLower(strings.TrimSpace(req.UserLevel))),
		TargetLanguage: domain.Language(strings.ToLower(strings.TrimSpace(req.TargetLanguage))),
	}
	if req.MessageID != "" {
		id, err := uuid.Parse(req.MessageID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "messageId: invalid id")
			return
		}
		input.MessageID = &id
	}

	result, err := h.svc.Analyze(r.Context(), input)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Segments handles POST /api/feedback/segments. It splits the text into
// plain and flagged runs for rendering.
func (h *FeedbackHandler) Segments(w http.ResponseWriter, r *http.Request) {
	var req segmentsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, segmentsResponse{
		Segments: highlight.Segments(req.Text, req.Corrections),
	})
}
