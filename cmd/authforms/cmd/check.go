package cmd

import (
	"errors"
	"fmt"

	"github.com/nfrund/authforms/internal/forms"
	"github.com/nfrund/authforms/internal/messages"
	"github.com/spf13/cobra"
)

// errRejected is returned when the values do not pass validation.
var errRejected = errors.New("form rejected")

type checkOptions struct {
	form     string
	name     string
	email    string
	password string
	confirm  string
}

func newCheckCmd() *cobra.Command {
	var opts checkOptions
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate form values from the command line",
		Long: `Submits the given values to a form and prints the outcome in Russian,
exactly as the web page would show it. Exits non-zero when rejected.`,
		Example: `  authforms check --form register --name Anna --email ann@example.com --password secret123 --confirm secret123
  authforms check --form login --name Anna --password short`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.form, "form", string(forms.KindRegister), "form to submit: register or login")
	flags.StringVar(&opts.name, "name", "", "name field")
	flags.StringVar(&opts.email, "email", "", "email field (register only)")
	flags.StringVar(&opts.password, "password", "", "password field")
	flags.StringVar(&opts.confirm, "confirm", "", "password confirmation (register only)")
	return cmd
}

func runCheck(cmd *cobra.Command, opts checkOptions) error {
	kind, err := forms.ParseKind(opts.form)
	if err != nil {
		return err
	}
	form, err := forms.New(kind)
	if err != nil {
		return err
	}

	values := map[forms.Field]string{
		forms.FieldName:     opts.name,
		forms.FieldEmail:    opts.email,
		forms.FieldPassword: opts.password,
		forms.FieldConfirm:  opts.confirm,
	}
	for _, f := range form.Fields() {
		if err := form.Change(f, values[f]); err != nil {
			return err
		}
	}

	p, err := messages.NewPrinter()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	res := form.Submit()
	if res.Accepted {
		fmt.Fprintln(out, p.Sprintf(res.Greeting, res.Name))
		return nil
	}
	for _, f := range form.Fields() {
		if problem := res.Errors.Get(f); problem != forms.NoProblem {
			fmt.Fprintf(out, "%s: %s\n", f, p.Sprintf(problem.Message()))
		}
	}
	return errRejected
}
