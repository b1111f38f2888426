package validator

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"excel-analytics-api/internal/interface/api/rest/dto/auth"
)

const (
	maxPasswordLen = 72 // bcrypt safe
	maxNameLen     = 64
)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

func ValidateRegister(r auth.RegisterRequest) map[string]string {
	errs := make(map[string]string)

	name := strings.TrimSpace(r.Name)
	if name == "" {
		errs["name"] = "name is required"
	} else if utf8.RuneCountInString(name) > maxNameLen {
		errs["name"] = "name must be at most 64 characters"
	}

	validateEmail(r.Email, errs)

	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	} else if len(r.Password) > maxPasswordLen {
		errs["password"] = "password must be at most 72 bytes"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	errs := make(map[string]string)

	validateEmail(r.Email, errs)

	// the password is never trimmed, only checked for presence
	if strings.TrimSpace(r.Password) == "" {
		errs["password"] = "password is required"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateEmail(raw string, errs map[string]string) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		errs["email"] = "email is required"
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs["email"] = "invalid email format"
	}
}
