package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/langcoach-backend/pkg/ctxutil"
)

func TestRequestID_ReuseIncoming(t *testing.T) {
	incomingID := "client-abc-123"

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := ctxutil.RequestIDFromCtx(r.Context()); got != incomingID {
			t.Errorf("expected requestID %s, got %s", incomingID, got)
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incomingID)
	rec := httptest.NewRecorder()

	RequestID(handler).ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != incomingID {
		t.Errorf("expected %s header %s, got %s", RequestIDHeader, incomingID, got)
	}
}

func TestRequestID_GenerateNew(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
	}{
		{"missing", ""},
		{"too long", strings.Repeat("a", maxRequestIDLen+1)},
		{"control characters", "abc\x01def"},
		{"spaces", "abc def"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ctxID string
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxID = ctxutil.RequestIDFromCtx(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()

			RequestID(handler).ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("expected valid UUID in header, got %q: %v", got, err)
			}
			if ctxID != got {
				t.Errorf("context id %q does not match header %q", ctxID, got)
			}
		})
	}
}
