package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/aqua-access/internal/factory"
	"github.com/mcoot/aqua-access/internal/services/login"
	"github.com/mcoot/aqua-access/internal/services/registration"
)

// errFormClosed is returned when input ends before the form succeeded
var errFormClosed = errors.New("input ended before the form was submitted successfully")

func newFormCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "form",
		Short: "Fill in a form interactively",
		Long: `Fill in a form interactively, one edit per input line.

Each line sets a field to a new value, as if it had been typed:

  username=alice
  password=Secret123

A line reading "submit" submits the form. The form is redrawn after every
line.`,
	}

	cmd.AddCommand(newFormLoginCmd())
	cmd.AddCommand(newFormRegisterCmd())

	return cmd
}

func newFormLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Fill in the login form",
		RunE: withApp(func(cmd *cobra.Command, app *factory.App, args []string) error {
			ctx := cmd.Context()
			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			form, _ := newLoginForm(out)

			var username, password string
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				if line == "submit" {
					outcome := app.LoginService.Login(ctx, form, username, password)
					out.Print(Result{Command: "login", Outcome: outcome.String(), Username: username})
					if outcome == login.LoggedIn {
						return nil
					}
					continue
				}

				name, value, _ := strings.Cut(line, "=")
				switch name {
				case "username":
					username = value
					app.LoginService.Prepare(ctx, form, username, password, login.ForUsername)
				case "password":
					password = value
					app.LoginService.Prepare(ctx, form, username, password, login.ForPassword)
				default:
					fmt.Fprintf(cmd.ErrOrStderr(), "unknown field %q\n", name)
				}
			}
			if err := scanner.Err(); err != nil {
				return err
			}
			return errFormClosed
		}),
	}
}

func newFormRegisterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Fill in the registration form",
		RunE: withApp(func(cmd *cobra.Command, app *factory.App, args []string) error {
			ctx := cmd.Context()
			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			form, win := newRegistrationForm(out)
			service := app.NewRegistration()

			var fields registration.Fields
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for scanner.Scan() {
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}

				if line == "submit" {
					outcome := service.CreateAccount(ctx, form, fields)
					if outcome == registration.Created {
						waitForMain(ctx, win)
						out.Print(Result{Command: "register", Outcome: outcome.String(), Username: fields.Username})
						return nil
					}
					out.Print(Result{Command: "register", Outcome: outcome.String(), Username: fields.Username})
					continue
				}

				name, value, _ := strings.Cut(line, "=")
				switch name {
				case "username":
					fields.Username = value
					service.PrepareUsername(ctx, form, fields)
				case "password":
					fields.Password = value
					service.PreparePassword(form, fields)
				case "weight":
					fields.Weight = value
					service.PrepareWeight(form, fields)
				case "target":
					fields.Target = value
					service.PrepareTarget(form, fields)
				case "glass":
					fields.Glass = value
					service.PrepareGlass(form, fields)
				default:
					fmt.Fprintf(cmd.ErrOrStderr(), "unknown field %q\n", name)
				}
			}
			if err := scanner.Err(); err != nil {
				return err
			}

			// Let a username typed last still be checked
			if service.UsernameState() == registration.PendingCheck {
				state := waitSettled(ctx, service)
				out.Print(Result{Command: "check-username", Outcome: availability(state), Username: fields.Username})
			}
			return errFormClosed
		}),
	}
}
