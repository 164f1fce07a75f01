package handler

import (
	"strings"
	"testing"
)

func TestValidatePostOK(t *testing.T) {
	if errs := validatePost("Hello", "World"); errs.any() {
		t.Errorf("unexpected errors: %v", errs)
	}
	// Exactly 255 characters is still valid.
	if errs := validatePost(strings.Repeat("a", 255), "body"); errs.any() {
		t.Errorf("255-char title rejected: %v", errs)
	}
}

func TestValidatePostTitleTooLong(t *testing.T) {
	errs := validatePost(strings.Repeat("a", 256), "body")
	if len(errs["title"]) == 0 {
		t.Fatal("256-char title must produce a title error")
	}
	if len(errs["body"]) != 0 {
		t.Errorf("unexpected body error: %v", errs["body"])
	}
}

func TestValidatePostRequiredFields(t *testing.T) {
	errs := validatePost("", "  ")
	if len(errs["title"]) == 0 || len(errs["body"]) == 0 {
		t.Errorf("missing required-field errors: %v", errs)
	}
}

func TestValidateComment(t *testing.T) {
	if errs := validateComment("Nice!"); errs.any() {
		t.Errorf("unexpected errors: %v", errs)
	}
	if errs := validateComment(""); len(errs["body"]) == 0 {
		t.Error("empty body must produce a body error")
	}
}

func TestValidateRegister(t *testing.T) {
	if errs := validateRegister("Alice", "alice@example.com", "secret123"); errs.any() {
		t.Errorf("unexpected errors: %v", errs)
	}

	errs := validateRegister("", "", "")
	for _, field := range []string{"name", "email", "password"} {
		if len(errs[field]) == 0 {
			t.Errorf("missing required-field error for %s", field)
		}
	}

	if errs := validateRegister("Alice", "not-an-email", "secret123"); len(errs["email"]) == 0 {
		t.Error("invalid email must produce an email error")
	}
	if errs := validateRegister("Alice", "alice@example.com", "short"); len(errs["password"]) == 0 {
		t.Error("short password must produce a password error")
	}
}
