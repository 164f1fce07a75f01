package handler

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/iliyamo/blog-api/internal/auth"
	"github.com/iliyamo/blog-api/internal/config"
	"github.com/iliyamo/blog-api/internal/repository"
)

func newAuthHandler() *AuthHandler {
	return NewAuthHandler(
		config.Config{BcryptCost: 4},
		repository.NewUserRepo(nil),
		auth.NewIssuer("test-secret", time.Hour, nil),
	)
}

func TestRegisterValidation(t *testing.T) {
	h := newAuthHandler()
	c, rec := postContext(http.MethodPost, "/api/register", `{}`, nil)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register() returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	for _, field := range []string{`"name"`, `"email"`, `"password"`} {
		if !strings.Contains(rec.Body.String(), field) {
			t.Errorf("body = %s, want %s validation error", rec.Body.String(), field)
		}
	}
}

func TestRegisterShortPassword(t *testing.T) {
	h := newAuthHandler()
	c, rec := postContext(http.MethodPost, "/api/register",
		`{"name":"Alice","email":"alice@example.com","password":"abc"}`, nil)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register() returned error: %v", err)
	}
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"password"`) {
		t.Errorf("body = %s, want a password validation error", rec.Body.String())
	}
}

func TestLoginMissingCredentials(t *testing.T) {
	h := newAuthHandler()
	c, rec := postContext(http.MethodPost, "/api/login", `{"email":"","password":""}`, nil)

	if err := h.Login(c); err != nil {
		t.Fatalf("Login() returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Unauthorized") {
		t.Errorf("body = %s, want Unauthorized message", rec.Body.String())
	}
}

func TestRefreshWithoutToken(t *testing.T) {
	h := newAuthHandler()
	// No gatekeeper ran, so there is no raw token in context.
	c, rec := postContext(http.MethodPost, "/api/refresh", "", nil)

	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh() returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Could not refresh token") {
		t.Errorf("body = %s, want refresh failure message", rec.Body.String())
	}
}
