package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskboard/auth"
	"taskboard/models"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type stubVerifier struct {
	identity auth.Identity
	err      error
}

func (s stubVerifier) Verify(string) (auth.Identity, error) {
	return s.identity, s.err
}

func TestRequestIDMiddleware_Generates(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected generated uuid, got %q", seen)
	}
	if rec.Header().Get(RequestIDHeader) != seen {
		t.Fatalf("expected header %q, got %q", seen, rec.Header().Get(RequestIDHeader))
	}
}

func TestAuthMiddleware(t *testing.T) {
	cases := []struct {
		name     string
		header   string
		verifier stubVerifier
		status   int
	}{
		{"missing header", "", stubVerifier{}, http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", stubVerifier{}, http.StatusUnauthorized},
		{"empty token", "Bearer ", stubVerifier{}, http.StatusUnauthorized},
		{"expired", "Bearer abc", stubVerifier{err: auth.ErrTokenExpired}, http.StatusUnauthorized},
		{"invalid", "Bearer abc", stubVerifier{err: auth.ErrInvalidToken}, http.StatusUnauthorized},
		{"valid", "Bearer abc", stubVerifier{identity: auth.Identity{Sub: 3, Role: models.RoleUser}}, http.StatusNoContent},
	}
	for _, c := range cases {
		var reached bool
		h := AuthMiddleware(c.verifier, func(w http.ResponseWriter, r *http.Request) {
			reached = true
			if id, ok := auth.IdentityFrom(r.Context()); !ok || id.Sub != 3 {
				t.Fatalf("%s: expected identity in context, got %+v", c.name, id)
			}
			w.WriteHeader(http.StatusNoContent)
		})
		req := httptest.NewRequest("GET", "/", nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != c.status {
			t.Fatalf("%s: expected %d, got %d", c.name, c.status, rec.Code)
		}
		if reached != (c.status == http.StatusNoContent) {
			t.Fatalf("%s: unexpected handler reach %v", c.name, reached)
		}
	}
}

func TestRequirePolicy_ForbiddenNeverReachesHandler(t *testing.T) {
	reached := false
	h := RequirePolicy(auth.OpProjectCreate, func(w http.ResponseWriter, r *http.Request) {
		reached = true
	})
	req := httptest.NewRequest("POST", "/api/projects", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), auth.Identity{Sub: 1, Role: models.RoleUser}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if reached {
		t.Fatalf("expected handler not to run")
	}
}

func TestWriteError_Mapping(t *testing.T) {
	cases := map[int]error{
		http.StatusUnauthorized:        models.Unauthenticatedf("nope"),
		http.StatusForbidden:           models.Forbiddenf("nope"),
		http.StatusNotFound:            models.NotFoundf("nope"),
		http.StatusConflict:            models.Conflictf("nope"),
		http.StatusBadRequest:          models.BadRequestf("nope"),
		http.StatusInternalServerError: fmt.Errorf("select tasks: %w", errors.New("connection reset")),
	}
	for status, err := range cases {
		rec := httptest.NewRecorder()
		writeError(rec, httptest.NewRequest("GET", "/", nil), err)
		if rec.Code != status {
			t.Fatalf("expected %d, got %d", status, rec.Code)
		}
		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body.StatusCode != status || body.Error != http.StatusText(status) {
			t.Fatalf("unexpected body for %d: %+v", status, body)
		}
		if status == http.StatusInternalServerError && body.Message != "Internal server error" {
			t.Fatalf("expected generic message, got %q", body.Message)
		}
	}
}

func TestPathID(t *testing.T) {
	for raw, ok := range map[string]bool{"1": true, "42": true, "0": false, "-3": false, "abc": false} {
		req := mux.SetURLVars(httptest.NewRequest("GET", "/", nil), map[string]string{"id": raw})
		_, err := pathID(req, "id")
		if ok && err != nil {
			t.Fatalf("%s: unexpected error: %v", raw, err)
		}
		if !ok && !errors.Is(err, models.ErrBadRequest) {
			t.Fatalf("%s: expected bad request, got %v", raw, err)
		}
	}
}
