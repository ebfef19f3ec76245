package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const (
	principalKey contextKey = "principal"
	requestIDKey contextKey = "requestID"
)

// localDevPrincipal is the principal used when authentication is disabled.
const localDevPrincipal = "local-dev"

// requestID assigns every request a UUID, exposed on the response and in
// the request context for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// cors handles cross-origin requests for the configured origins.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && s.originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-Id")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) originAllowed(origin string) bool {
	for _, allowed := range s.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// requireAuth extracts the bearer token and stores it as the request
// principal. The token is opaque here: it only keys the per-principal
// cache and history. With auth disabled every request runs as the local
// development principal.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.AuthDisabled {
			ctx := context.WithValue(r.Context(), principalKey, localDevPrincipal)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		authorization := r.Header.Get("Authorization")
		if authorization == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Missing Authorization header"})
			return
		}
		const prefix = "Bearer "
		if !strings.HasPrefix(authorization, prefix) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid Authorization header"})
			return
		}
		token := strings.TrimSpace(authorization[len(prefix):])
		if token == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Authorization token empty"})
			return
		}

		ctx := context.WithValue(r.Context(), principalKey, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// principal returns the request principal set by requireAuth.
func principal(r *http.Request) string {
	if p, ok := r.Context().Value(principalKey).(string); ok {
		return p
	}
	return ""
}
