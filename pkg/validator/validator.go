package validator

import (
	"net/mail"
	"regexp"
	"strings"
)

// ValidationErrors keys each rejected field to its messages, matching
// the error shape the API returns for domain failures.
type ValidationErrors map[string][]string

func (v ValidationErrors) HasErrors() bool {
	return len(v) > 0
}

func (v ValidationErrors) Add(field, message string) {
	v[field] = append(v[field], message)
}

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

func ValidateRegister(email, username, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)
	validateUsername(username, errs)
	validatePassword(password, errs)

	return errs
}

func ValidateLogin(email, password string) ValidationErrors {
	errs := make(ValidationErrors)

	validateEmail(email, errs)
	if password == "" {
		errs.Add("password", "is required")
	}

	return errs
}

// ValidateUpdate checks only the fields the caller supplied.
func ValidateUpdate(email, username, password *string) ValidationErrors {
	errs := make(ValidationErrors)

	if email != nil {
		validateEmail(*email, errs)
	}
	if username != nil {
		validateUsername(*username, errs)
	}
	if password != nil {
		validatePassword(*password, errs)
	}

	return errs
}

func validateEmail(email string, errs ValidationErrors) {
	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "is invalid")
	}
}

func validateUsername(username string, errs ValidationErrors) {
	username = strings.TrimSpace(username)
	if username == "" {
		errs.Add("username", "is required")
	} else if len(username) < 3 {
		errs.Add("username", "must be at least 3 characters")
	} else if len(username) > 50 {
		errs.Add("username", "is too long")
	} else if !usernameRegex.MatchString(username) {
		errs.Add("username", "can only contain letters, numbers, _ and -")
	}
}

func validatePassword(password string, errs ValidationErrors) {
	if password == "" {
		errs.Add("password", "is required")
	} else if len(password) < 8 {
		errs.Add("password", "must be at least 8 characters")
	}
}
