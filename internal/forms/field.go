package forms

import (
	"errors"
	"fmt"

	"github.com/nfrund/authforms/internal/messages"
)

var (
	// ErrUnknownField is returned when a form does not have the named field.
	ErrUnknownField = errors.New("unknown form field")
	// ErrUnknownKind is returned for a form name other than register or login.
	ErrUnknownKind = errors.New("unknown form")
)

// Field names one text input of a form.
type Field int

const (
	FieldName Field = iota + 1
	FieldEmail
	FieldPassword
	FieldConfirm
)

// ShowPasswordInput is the name of the visibility checkbox. It is not a Field
// because it carries no error.
const ShowPasswordInput = "show_password"

var fieldNames = map[Field]string{
	FieldName:     "name",
	FieldEmail:    "email",
	FieldPassword: "password",
	FieldConfirm:  "password_confirm",
}

// String returns the input name used in HTML forms.
func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// ParseField maps an input name back to its Field.
func ParseField(name string) (Field, error) {
	for f, n := range fieldNames {
		if n == name {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Problem is a validation failure of a single field. The zero value means the
// field has no error.
type Problem int

const (
	NoProblem Problem = iota
	NameRequired
	NameInvalid
	EmailRequired
	EmailInvalid
	PasswordRequired
	PasswordTooShort
	ConfirmRequired
	ConfirmMismatch
)

var problemMessages = map[Problem]string{
	NameRequired:     messages.NameRequired,
	NameInvalid:      messages.NameInvalid,
	EmailRequired:    messages.EmailRequired,
	EmailInvalid:     messages.EmailInvalid,
	PasswordRequired: messages.PasswordRequired,
	PasswordTooShort: messages.PasswordTooShort,
	ConfirmRequired:  messages.ConfirmRequired,
	ConfirmMismatch:  messages.ConfirmMismatch,
}

// Message returns the catalog key describing the problem, or "" for NoProblem.
func (p Problem) Message() string {
	return problemMessages[p]
}

func (p Problem) String() string {
	if p == NoProblem {
		return "ok"
	}
	return p.Message()
}

// Errors holds at most one problem per field.
type Errors struct {
	Name     Problem `json:"name,omitempty"`
	Email    Problem `json:"email,omitempty"`
	Password Problem `json:"password,omitempty"`
	Confirm  Problem `json:"confirm,omitempty"`
}

// Get returns the problem recorded for f.
func (e Errors) Get(f Field) Problem {
	if slot := e.slot(f); slot != nil {
		return *slot
	}
	return NoProblem
}

func (e *Errors) set(f Field, p Problem) {
	if slot := e.slot(f); slot != nil {
		*slot = p
	}
}

func (e *Errors) slot(f Field) *Problem {
	switch f {
	case FieldName:
		return &e.Name
	case FieldEmail:
		return &e.Email
	case FieldPassword:
		return &e.Password
	case FieldConfirm:
		return &e.Confirm
	}
	return nil
}

// Empty reports whether no field has a problem.
func (e Errors) Empty() bool {
	return e == Errors{}
}

// Count returns the number of fields with a problem.
func (e Errors) Count() int {
	n := 0
	for _, p := range []Problem{e.Name, e.Email, e.Password, e.Confirm} {
		if p != NoProblem {
			n++
		}
	}
	return n
}
