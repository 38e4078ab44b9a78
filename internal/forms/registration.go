package forms

import (
	"github.com/nfrund/authforms/internal/messages"
	"github.com/nfrund/authforms/internal/validation"
)

// RegistrationValues is what the user typed into the registration form.
type RegistrationValues struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Confirm      string `json:"confirm"`
	ShowPassword bool   `json:"show_password"`
}

// Registration is the state of the registration form.
type Registration struct {
	Values RegistrationValues `json:"values"`
	Errors Errors             `json:"errors"`
}

var registrationFields = []Field{FieldName, FieldEmail, FieldPassword, FieldConfirm}

func (r *Registration) Kind() Kind { return KindRegister }
func (r *Registration) Fields() []Field { return registrationFields }
func (r *Registration) Problems() Errors { return r.Errors }
func (r *Registration) ShowsPassword() bool { return r.Values.ShowPassword }

func (r *Registration) field(f Field) *string {
	switch f {
	case FieldName:
		return &r.Values.Name
	case FieldEmail:
		return &r.Values.Email
	case FieldPassword:
		return &r.Values.Password
	case FieldConfirm:
		return &r.Values.Confirm
	}
	return nil
}

func (r *Registration) Value(f Field) string {
	if p := r.field(f); p != nil {
		return *p
	}
	return ""
}

func (r *Registration) Change(f Field, value string) error {
	p := r.field(f)
	if p == nil {
		return unknownField(KindRegister, f)
	}
	*p = value
	if r.Errors.Get(f) != NoProblem {
		r.Errors.set(f, NoProblem)
	}
	return nil
}

func (r *Registration) SetShowPassword(show bool) {
	r.Values.ShowPassword = show
}

func (r *Registration) Blur(f Field) error {
	p := r.field(f)
	if p == nil {
		return unknownField(KindRegister, f)
	}
	if problem := check(f, *p, r.Values.Password, onBlur); problem != NoProblem {
		r.Errors.set(f, problem)
	}
	return nil
}

func (r *Registration) Submit() Result {
	var errs Errors
	for _, f := range registrationFields {
		errs.set(f, check(f, r.Value(f), r.Values.Password, onSubmit))
	}
	r.Errors = errs
	if !errs.Empty() {
		return Result{Errors: errs}
	}

	name := r.Values.Name
	// Replace the whole container so nothing from the accepted submission lingers.
	*r = Registration{}
	return Result{
		Accepted: true,
		Greeting: messages.RegisteredGreeting,
		Name:     name,
	}
}

// Ready mirrors the submit button rule: every field filled in and the
// confirmation matching. Name and email format are left to submit.
func (r *Registration) Ready() bool {
	v := r.Values
	return !validation.Blank(v.Name) &&
		!validation.Blank(v.Email) &&
		!validation.Blank(v.Password) &&
		!validation.Blank(v.Confirm) &&
		validation.PasswordsMatch(v.Password, v.Confirm)
}
