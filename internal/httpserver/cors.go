package httpserver

import (
	"net/http"
	"strings"

	"github.com/RaphMerc007/WeCook/internal/config"
)

// CORSMiddleware returns an http.Handler that adds CORS headers. Origins
// ending in "*" match by prefix, which is what lets the browser extension
// through ("chrome-extension://*").
func CORSMiddleware(cfg *config.Config, next http.Handler) http.Handler {
	exact := make(map[string]bool)
	prefixes := []string{}
	for _, o := range cfg.CORSAllowedOrigins {
		o = strings.TrimSpace(o)
		if strings.HasSuffix(o, "*") {
			prefixes = append(prefixes, strings.TrimSuffix(o, "*"))
			continue
		}
		exact[o] = true
	}

	allowed := func(origin string) bool {
		if exact[origin] {
			return true
		}
		for _, p := range prefixes {
			if strings.HasPrefix(origin, p) {
				return true
			}
		}
		return false
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin != "" && allowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")

			if cfg.CORSAllowCredentials {
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}
		}

		// Handle preflight OPTIONS
		if r.Method == http.MethodOptions && origin != "" {
			if allowed(origin) {
				w.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Authorization,Content-Type,Origin,Accept")
				w.Header().Set("Access-Control-Max-Age", "600")
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
