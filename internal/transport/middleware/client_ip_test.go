package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/heartmarshall/langcoach-backend/pkg/ctxutil"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		trustProxy bool
		remoteAddr string
		forwarded  string
		want       string
	}{
		{"remote addr host", false, "192.0.2.1:4321", "", "192.0.2.1"},
		{"forwarded ignored when untrusted", false, "192.0.2.1:4321", "203.0.113.5", "192.0.2.1"},
		{"first forwarded entry", true, "10.0.0.1:80", "203.0.113.5, 10.0.0.2", "203.0.113.5"},
		{"empty forwarded falls back", true, "10.0.0.1:80", " ,10.0.0.2", "10.0.0.1"},
		{"ipv6 remote", false, "[2001:db8::1]:443", "", "2001:db8::1"},
		{"addr without port", false, "unix-socket", "", "unix-socket"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			handler := ClientIP(tt.trustProxy)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = ctxutil.ClientIPFromCtx(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)

			if got != tt.want {
				t.Errorf("client ip = %q, want %q", got, tt.want)
			}
		})
	}
}
