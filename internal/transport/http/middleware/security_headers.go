package middleware

import (
	"net/http"

	"github.com/unrolled/secure"
)

// SecureHeaders sets the browser hardening headers. HSTS is only sent outside
// development and only over TLS or behind a proxy that reports https.
func SecureHeaders(isProd bool) func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:                 true,
		ContentTypeNosniff:        true,
		ReferrerPolicy:            "no-referrer",
		PermissionsPolicy:         "geolocation=(), microphone=(), camera=(), payment=()",
		ContentSecurityPolicy:     "default-src 'self'; base-uri 'self'; form-action 'self'; frame-ancestors 'none'; object-src 'none'; img-src 'self' data:; style-src 'self' 'unsafe-inline'; script-src 'self'",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-origin",
		STSSeconds:                63072000,
		STSIncludeSubdomains:      true,
		STSPreload:                true,
		SSLProxyHeaders:           map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:             !isProd,
	})
	return secureMiddleware.Handler
}
