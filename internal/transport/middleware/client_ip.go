package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/heartmarshall/langcoach-backend/pkg/ctxutil"
)

// ClientIP resolves the caller address and stores it in the request context.
// With trustProxy the first X-Forwarded-For entry wins over RemoteAddr.
func ClientIP(trustProxy bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := remoteHost(r.RemoteAddr)
			if trustProxy {
				if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
					first, _, _ := strings.Cut(fwd, ",")
					if first = strings.TrimSpace(first); first != "" {
						ip = first
					}
				}
			}
			next.ServeHTTP(w, r.WithContext(ctxutil.WithClientIP(r.Context(), ip)))
		})
	}
}

// clientIP returns the address resolved by ClientIP, or the RemoteAddr host.
func clientIP(r *http.Request) string {
	if ip := ctxutil.ClientIPFromCtx(r.Context()); ip != "" {
		return ip
	}
	return remoteHost(r.RemoteAddr)
}

func remoteHost(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}
