package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"taskboard/auth"
	"taskboard/models"
	"taskboard/utilities"

	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestIDFrom returns the id assigned by RequestIDMiddleware.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDMiddleware keeps a client supplied X-Request-ID or generates one,
// and echoes it on the response.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

// LoggingMiddleware registers every HTTP request with its status and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		utilities.LogRequest(r.Method, r.URL.Path, r.RemoteAddr, rw.statusCode, time.Since(start), RequestIDFrom(r.Context()))
	})
}

// responseWriter captures the status code written by the handler.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// AuthMiddleware is the only place bearer tokens are inspected. Every
// failure gets the same 401 answer.
func AuthMiddleware(tokens TokenVerifier, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		scheme, tokenString, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenString) == "" {
			utilities.LogDebug("rejected request without bearer token: %s %s", r.Method, r.URL.Path)
			writeError(w, r, models.Unauthenticatedf("Unauthorized"))
			return
		}
		tokenString = strings.TrimSpace(tokenString)

		identity, err := tokens.Verify(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				utilities.LogDebug("expired token %s", tokenPrefix(tokenString))
			} else {
				utilities.LogWarn("invalid token %s", tokenPrefix(tokenString))
			}
			writeError(w, r, models.Unauthenticatedf("Unauthorized"))
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithIdentity(r.Context(), identity)))
	}
}

// RequirePolicy checks the caller's role against the policy table before
// the handler reads the body or touches storage.
func RequirePolicy(op auth.Operation, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFrom(r.Context())
		if !ok {
			writeError(w, r, models.Unauthenticatedf("Unauthorized"))
			return
		}
		if err := auth.Authorize(identity.Role, op); err != nil {
			utilities.LogInfo("user %d (%s) denied %s", identity.Sub, identity.Role, op)
			writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	}
}

// Protect chains the access guard and the role policy for op.
func (h *Handler) Protect(op auth.Operation, next http.HandlerFunc) http.HandlerFunc {
	return AuthMiddleware(h.Tokens, RequirePolicy(op, next))
}

func identity(r *http.Request) auth.Identity {
	id, _ := auth.IdentityFrom(r.Context())
	return id
}
