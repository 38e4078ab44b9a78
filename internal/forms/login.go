package forms

import (
	"github.com/nfrund/authforms/internal/messages"
	"github.com/nfrund/authforms/internal/validation"
)

// LoginValues is what the user typed into the login form.
type LoginValues struct {
	Name         string `json:"name"`
	Password     string `json:"password"`
	ShowPassword bool   `json:"show_password"`
}

// Login is the state of the login form.
type Login struct {
	Values LoginValues `json:"values"`
	Errors Errors      `json:"errors"`
}

var loginFields = []Field{FieldName, FieldPassword}

func (l *Login) Kind() Kind { return KindLogin }
func (l *Login) Fields() []Field { return loginFields }
func (l *Login) Problems() Errors { return l.Errors }
func (l *Login) ShowsPassword() bool { return l.Values.ShowPassword }

func (l *Login) field(f Field) *string {
	switch f {
	case FieldName:
		return &l.Values.Name
	case FieldPassword:
		return &l.Values.Password
	}
	return nil
}

func (l *Login) Value(f Field) string {
	if p := l.field(f); p != nil {
		return *p
	}
	return ""
}

func (l *Login) Change(f Field, value string) error {
	p := l.field(f)
	if p == nil {
		return unknownField(KindLogin, f)
	}
	*p = value
	if l.Errors.Get(f) != NoProblem {
		l.Errors.set(f, NoProblem)
	}
	return nil
}

func (l *Login) SetShowPassword(show bool) {
	l.Values.ShowPassword = show
}

func (l *Login) Blur(f Field) error {
	p := l.field(f)
	if p == nil {
		return unknownField(KindLogin, f)
	}
	if problem := check(f, *p, "", onBlur); problem != NoProblem {
		l.Errors.set(f, problem)
	}
	return nil
}

func (l *Login) Submit() Result {
	var errs Errors
	for _, f := range loginFields {
		errs.set(f, check(f, l.Value(f), "", onSubmit))
	}
	l.Errors = errs
	if !errs.Empty() {
		return Result{Errors: errs}
	}

	name := l.Values.Name
	*l = Login{}
	return Result{
		Accepted: true,
		Greeting: messages.LoginGreeting,
		Name:     name,
	}
}

// Ready reports whether both fields are filled in and valid.
func (l *Login) Ready() bool {
	v := l.Values
	return !validation.Blank(v.Name) &&
		!validation.Blank(v.Password) &&
		validation.ValidName(v.Name) &&
		validation.ValidPassword(v.Password)
}
