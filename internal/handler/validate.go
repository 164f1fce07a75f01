package handler

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/labstack/echo/v4"
)

// fieldErrors is a field -> messages map, rendered inside the 422 payload
// the same way the upstream API reported validation failures.
type fieldErrors map[string][]string

func (f fieldErrors) add(field, msg string) { f[field] = append(f[field], msg) }
func (f fieldErrors) any() bool             { return len(f) > 0 }

// validationFailed renders the 422 response.  Validation always resolves
// before persistence is touched.
func validationFailed(c echo.Context, errs fieldErrors) error {
	return c.JSON(http.StatusUnprocessableEntity, echo.Map{
		"message": "The given data was invalid.",
		"errors":  errs,
	})
}

// validatePost checks the post payload: title required, at most 255
// characters; body required.
func validatePost(title, body string) fieldErrors {
	errs := fieldErrors{}
	if strings.TrimSpace(title) == "" {
		errs.add("title", "The title field is required.")
	} else if utf8.RuneCountInString(title) > 255 {
		errs.add("title", "The title may not be greater than 255 characters.")
	}
	if strings.TrimSpace(body) == "" {
		errs.add("body", "The body field is required.")
	}
	return errs
}

// validateComment checks the comment payload: body required.
func validateComment(body string) fieldErrors {
	errs := fieldErrors{}
	if strings.TrimSpace(body) == "" {
		errs.add("body", "The body field is required.")
	}
	return errs
}

// validateRegister checks the registration payload.
func validateRegister(name, email, password string) fieldErrors {
	errs := fieldErrors{}
	if strings.TrimSpace(name) == "" {
		errs.add("name", "The name field is required.")
	}
	email = strings.TrimSpace(email)
	if email == "" {
		errs.add("email", "The email field is required.")
	} else if !strings.Contains(email[1:], "@") {
		errs.add("email", "The email must be a valid email address.")
	}
	if password == "" {
		errs.add("password", "The password field is required.")
	} else if utf8.RuneCountInString(password) < 6 {
		errs.add("password", "The password must be at least 6 characters.")
	}
	return errs
}
