// Package forms holds the state of the registration and login forms and the
// change, blur and submit rules that drive their inline errors.
package forms

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/nfrund/authforms/internal/validation"
)

// Kind identifies one of the two forms on the page.
type Kind string

const (
	KindRegister Kind = "register"
	KindLogin    Kind = "login"
)

// ParseKind validates a form name taken from a URL.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindRegister, KindLogin:
		return k, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Form is the behaviour shared by Registration and Login.
type Form interface {
	Kind() Kind
	Fields() []Field
	Value(f Field) string
	Problems() Errors
	ShowsPassword() bool

	// Change stores a new value and clears any error the field had.
	Change(f Field, value string) error
	// SetShowPassword toggles password visibility.
	SetShowPassword(show bool)
	// Blur validates a single field and records its error, if any.
	Blur(f Field) error
	// Submit validates every field. On success the form is emptied.
	Submit() Result
	// Ready reports whether the submit button should be enabled.
	Ready() bool
}

// Result is the outcome of a submission.
type Result struct {
	Accepted bool
	// Greeting is a message key taking Name as its only argument.
	Greeting string
	Name     string
	Errors   Errors
}

// stage selects which rule set applies. Blur checks emptiness on trimmed values
// for every field while submit only trims name and email.
type stage int

const (
	onBlur stage = iota
	onSubmit
)

type rule struct {
	blur     string
	submit   string
	required Problem
	invalid  Problem
}

var rules = map[Field]rule{
	FieldName: {
		blur:     validation.TagNonBlank + "," + validation.TagPersonName,
		submit:   validation.TagNonBlank + "," + validation.TagPersonName,
		required: NameRequired,
		invalid:  NameInvalid,
	},
	FieldEmail: {
		blur:     validation.TagNonBlank + "," + validation.TagLooseEmail,
		submit:   validation.TagNonBlank + "," + validation.TagLooseEmail,
		required: EmailRequired,
		invalid:  EmailInvalid,
	},
	FieldPassword: {
		blur:     validation.TagNonBlank + "," + validation.TagPassword,
		submit:   "required," + validation.TagPassword,
		required: PasswordRequired,
		invalid:  PasswordTooShort,
	},
	FieldConfirm: {
		blur:     validation.TagNonBlank + ",eqfield",
		submit:   "required,eqfield",
		required: ConfirmRequired,
		invalid:  ConfirmMismatch,
	},
}

// validate is shared; the validator caches parsed tags.
var validate = validation.New()

// check validates value for f. password is only consulted for FieldConfirm.
func check(f Field, value, password string, st stage) Problem {
	r, ok := rules[f]
	if !ok {
		return NoProblem
	}
	tags := r.submit
	if st == onBlur {
		tags = r.blur
	}

	var err error
	if f == FieldConfirm {
		err = validate.VarWithValue(value, password, tags)
	} else {
		err = validate.Var(value, tags)
	}
	if err == nil {
		return NoProblem
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Tag() {
		case validation.TagNonBlank, "required":
			return r.required
		}
	}
	return r.invalid
}

func unknownField(kind Kind, f Field) error {
	return fmt.Errorf("%w: %s has no %s", ErrUnknownField, kind, f)
}

// New returns an empty form of the given kind.
func New(kind Kind) (Form, error) {
	switch kind {
	case KindRegister:
		return &Registration{}, nil
	case KindLogin:
		return &Login{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}
