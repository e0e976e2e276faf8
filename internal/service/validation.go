package service

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/Skotchmaster/yoga_studio/internal/transport"
)

func requireLength(v *ValidationError, field, value string, min, max int) {
	n := utf8.RuneCountInString(strings.TrimSpace(value))
	switch {
	case n == 0:
		v.add(field, "must not be blank")
	case min > 0 && n < min:
		v.add(field, "is too short")
	case max > 0 && n > max:
		v.add(field, "is too long")
	}
}

func ValidateSignup(req transport.SignupRequest) error {
	v := &ValidationError{}
	requireLength(v, "email", req.Email, 0, 50)
	if strings.TrimSpace(req.Email) != "" {
		if addr, err := mail.ParseAddress(req.Email); err != nil || addr.Address != req.Email {
			v.add("email", "must be a well-formed email address")
		}
	}
	requireLength(v, "firstName", req.FirstName, 3, 20)
	requireLength(v, "lastName", req.LastName, 3, 20)
	requireLength(v, "password", req.Password, 6, 40)
	return v.errOrNil()
}

func ValidateLogin(req transport.LoginRequest) error {
	v := &ValidationError{}
	if strings.TrimSpace(req.Email) == "" {
		v.add("email", "must not be blank")
	}
	if req.Password == "" {
		v.add("password", "must not be blank")
	}
	return v.errOrNil()
}

func ValidateSession(req transport.SessionDTO) error {
	v := &ValidationError{}
	requireLength(v, "name", req.Name, 0, 50)
	if req.Date == nil || req.Date.IsZero() {
		v.add("date", "must not be null")
	}
	requireLength(v, "description", req.Description, 0, 2500)
	return v.errOrNil()
}
