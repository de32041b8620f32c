// Package validate implements the client-side form checks that run before
// any network call.
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"taskctl/internal/service"
)

// User-facing validation messages.
const (
	MsgAllRequired      = "All fields are required!"
	MsgPasswordMismatch = "Passwords do not match!"
	MsgPasswordLength   = "Password must be at least 6 characters!"
	MsgInvalidEmail     = "Please enter a valid email address!"
	MsgTitleRequired    = "Please provide a title."
	MsgTitleLength      = "Title must be at most 100 characters."
	MsgDescLength       = "Description must be at most 500 characters."
	MsgStatusRequired   = "Please choose a status."
	MsgPriorityRequired = "Please choose a priority."
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Error is a validation failure. Message is shown to the user verbatim.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Login holds the login form.
type Login struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Registration holds the registration form.
type Registration struct {
	Username string `validate:"required"`
	Email    string `validate:"required,looseemail"`
	Password string `validate:"required,min=6"`
	Confirm  string `validate:"required,eqfield=Password"`
}

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())
	if err := val.RegisterValidation("notblank", notBlank); err != nil {
		panic(err)
	}
	if err := val.RegisterValidation("looseemail", looseEmail); err != nil {
		panic(err)
	}
	return val
}

// notBlank fails for empty or whitespace-only strings.
func notBlank(fl validator.FieldLevel) bool {
	f := fl.Field()
	if f.Kind() != reflect.String {
		return !f.IsZero()
	}
	return strings.TrimSpace(f.String()) != ""
}

func looseEmail(fl validator.FieldLevel) bool {
	return emailPattern.MatchString(fl.Field().String())
}

// CheckLogin validates the login form.
func CheckLogin(form Login) error {
	if err := v.Struct(form); err != nil {
		return &Error{Field: firstField(err), Message: MsgAllRequired}
	}
	return nil
}

// CheckRegistration validates the registration form. Checks are reported
// in a fixed order: missing fields, mismatch, length, email.
func CheckRegistration(form Registration) error {
	err := v.Struct(form)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	order := []struct {
		tag string
		msg string
	}{
		{"required", MsgAllRequired},
		{"eqfield", MsgPasswordMismatch},
		{"min", MsgPasswordLength},
		{"looseemail", MsgInvalidEmail},
	}
	for _, o := range order {
		for _, fe := range verrs {
			if fe.Tag() == o.tag {
				return &Error{Field: fe.Field(), Message: o.msg}
			}
		}
	}
	return &Error{Field: verrs[0].Field(), Message: verrs[0].Error()}
}

// CheckTask validates the task form.
func CheckTask(in service.TaskInput) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fe := verrs[0]
	switch fe.Field() {
	case "Title":
		if fe.Tag() == "max" {
			return &Error{Field: "Title", Message: MsgTitleLength}
		}
		return &Error{Field: "Title", Message: MsgTitleRequired}
	case "Description":
		return &Error{Field: "Description", Message: MsgDescLength}
	case "Status":
		return &Error{Field: "Status", Message: MsgStatusRequired}
	case "Priority":
		return &Error{Field: "Priority", Message: MsgPriorityRequired}
	}
	return &Error{Field: fe.Field(), Message: fe.Error()}
}

func firstField(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return ""
}
