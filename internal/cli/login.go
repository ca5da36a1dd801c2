package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/aqua-access/internal/factory"
	"github.com/mcoot/aqua-access/internal/services/login"
)

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with a username and password",
		RunE: withApp(func(cmd *cobra.Command, app *factory.App, args []string) error {
			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			form, _ := newLoginForm(out)

			outcome := app.LoginService.Login(cmd.Context(), form, username, password)
			out.Print(Result{Command: "login", Outcome: outcome.String(), Username: username})
			return loginError(outcome)
		}),
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")

	return cmd
}

func loginError(outcome login.Outcome) error {
	switch outcome {
	case login.LoggedIn:
		return nil
	case login.Unavailable:
		return &outcomeError{command: "login", outcome: outcome.String(), unavailable: true}
	default:
		return &outcomeError{command: "login", outcome: outcome.String()}
	}
}
