package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/clipcart/clipcart/internal/httputil"
)

type SecurityConfig struct {
	BaseURL string
}

// securityHeaders sets the response headers for the API and the watch
// pages. Thumbnails and clips live on third-party CDNs, so img-src and
// media-src stay open to https origins; scripts and styles are locked to
// a per-request nonce.
func securityHeaders(cfg SecurityConfig) func(http.Handler) http.Handler {
	strictTransport := strings.HasPrefix(cfg.BaseURL, "https://")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nonce := httputil.GenerateNonce()
			ctx := httputil.ContextWithNonce(r.Context(), nonce)

			w.Header().Set("Referrer-Policy", "no-referrer")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "SAMEORIGIN")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=(self)")

			csp := fmt.Sprintf(
				"default-src 'self'; img-src 'self' https: data:; media-src 'self' https:; script-src 'self' 'nonce-%s'; style-src 'self' 'nonce-%s'; connect-src 'self'; frame-ancestors 'self';",
				nonce, nonce,
			)
			w.Header().Set("Content-Security-Policy", csp)

			if strictTransport {
				w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
