package validators

import (
	"context"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-posts-api/models"
)

const (
	FieldEmail    = "email"
	FieldPassword = "password"

	MinPasswordLength = 4
	MaxPasswordLength = 20
)

var userFields = []string{FieldEmail, FieldPassword}

type UserValidator struct{}

func NewUserValidator() Validator {
	return &UserValidator{}
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credentials:
		return v.validateCredentials(value, fields...)
	case *models.Credentials:
		return v.validateCredentials(*value, fields...)
	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateCredentials(c models.Credentials, fields ...string) error {
	selected, err := scope(userFields, fields)
	if err != nil {
		return err
	}

	var errs collector
	if selected[FieldEmail] && !validEmail(c.Email) {
		errs.add(FieldEmail, "Email must be valid")
	}
	if selected[FieldPassword] {
		n := utf8.RuneCountInString(c.Password)
		if n < MinPasswordLength || n > MaxPasswordLength {
			errs.add(FieldPassword, "Password must be between 4 and 20 characters")
		}
	}
	return errs.err()
}

// validEmail accepts a bare addr-spec with a dotted domain.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}

	domain := email[strings.LastIndex(email, "@")+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
