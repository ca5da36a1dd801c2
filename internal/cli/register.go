package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/aqua-access/internal/factory"
	"github.com/mcoot/aqua-access/internal/services/registration"
)

// How often a command looks at a pending username check
const settlePollInterval = 10 * time.Millisecond

func newRegisterCmd() *cobra.Command {
	var fields registration.Fields

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account.

Either a daily target (ml) or a weight between 30 and 150 kg is required;
without a target one is derived from the weight. Glass capacity defaults to
whatever the server picks.`,
		RunE: withApp(func(cmd *cobra.Command, app *factory.App, args []string) error {
			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			form, win := newRegistrationForm(out)
			service := app.NewRegistration()

			outcome := service.CreateAccount(cmd.Context(), form, fields)
			if outcome == registration.Created {
				waitForMain(cmd.Context(), win)
			}

			out.Print(Result{Command: "register", Outcome: outcome.String(), Username: fields.Username})
			return registrationError(outcome)
		}),
	}

	cmd.Flags().StringVarP(&fields.Username, "username", "u", "", "Username")
	cmd.Flags().StringVarP(&fields.Password, "password", "p", "", "Password")
	cmd.Flags().StringVar(&fields.Weight, "weight", "", "Weight in kilograms")
	cmd.Flags().StringVar(&fields.Target, "target", "", "Daily water target in milliliters")
	cmd.Flags().StringVar(&fields.Glass, "glass", "", "Glass capacity in milliliters")

	return cmd
}

func newCheckUsernameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-username USERNAME",
		Short: "Check whether a username is free",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(cmd *cobra.Command, app *factory.App, args []string) error {
			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			form, _ := newRegistrationForm(out)
			service := app.NewRegistration()

			state := service.PrepareUsername(cmd.Context(), form, registration.Fields{Username: args[0]})
			if state == registration.PendingCheck {
				state = waitSettled(cmd.Context(), service)
			}

			outcome := availability(state)
			out.Print(Result{Command: "check-username", Outcome: outcome, Username: args[0]})
			switch state {
			case registration.SettledAvailable:
				return nil
			case registration.SettledTaken, registration.SettledInvalid:
				return &outcomeError{command: "check-username", outcome: outcome}
			default:
				return &outcomeError{command: "check-username", outcome: outcome, unavailable: true}
			}
		}),
	}
}

func registrationError(outcome registration.Outcome) error {
	switch outcome {
	case registration.Created:
		return nil
	case registration.Unavailable:
		return &outcomeError{command: "register", outcome: outcome.String(), unavailable: true}
	default:
		return &outcomeError{command: "register", outcome: outcome.String()}
	}
}

func availability(state registration.State) string {
	switch state {
	case registration.SettledAvailable:
		return "available"
	case registration.SettledTaken:
		return "taken"
	case registration.SettledInvalid:
		return "invalid"
	default:
		return "unavailable"
	}
}

// waitSettled blocks until the debounced username check has answered
func waitSettled(ctx context.Context, service *registration.Service) registration.State {
	ticker := time.NewTicker(settlePollInterval)
	defer ticker.Stop()

	for {
		state := service.UsernameState()
		if state != registration.PendingCheck {
			return state
		}
		select {
		case <-ctx.Done():
			return state
		case <-ticker.C:
		}
	}
}

func waitForMain(ctx context.Context, win *window) {
	select {
	case <-win.Main():
	case <-ctx.Done():
	}
}
