// Package backend describes the account server the access flow talks to
// and implements its HTTP wire contract.
package backend

import (
	"context"
	"errors"

	"github.com/mcoot/aqua-access/internal/model"
)

// ErrUnavailable marks every failure that is not a domain answer: the
// server is unreachable, answered with an unexpected status, or sent a
// malformed body
var ErrUnavailable = errors.New("backend is not working")

// Backend is the account server
type Backend interface {
	// Login authorizes strong credentials
	Login(ctx context.Context, credentials model.StrongCredentials) (LoginResult, error)

	// Register creates an account and its water-recording user
	Register(ctx context.Context, registration Registration) (RegisterResult, error)

	// ExistsNamed reports whether an account with the username exists
	ExistsNamed(ctx context.Context, username model.Username) (bool, error)
}

// LoginOutcome is the domain answer to a login attempt
type LoginOutcome int

const (
	LoginSucceeded LoginOutcome = iota
	LoginIncorrectPassword
	LoginNoUser
)

func (o LoginOutcome) String() string {
	switch o {
	case LoginSucceeded:
		return "succeeded"
	case LoginIncorrectPassword:
		return "incorrect_password"
	case LoginNoUser:
		return "no_user"
	default:
		return "unknown"
	}
}

// LoginResult carries the user id when the login succeeded
type LoginResult struct {
	Outcome LoginOutcome
	UserID  model.UserID
}

// Registration is everything sent to create an account. Optional amounts
// are nil when the field was left empty.
type Registration struct {
	Credentials        model.StrongCredentials
	TargetWaterBalance *model.WaterBalance
	Glass              *model.Glass
	Weight             *model.Weight
}

// RegisterOutcome is the domain answer to a registration
type RegisterOutcome int

const (
	Registered RegisterOutcome = iota
	AlreadyRegistered
)

func (o RegisterOutcome) String() string {
	switch o {
	case Registered:
		return "registered"
	case AlreadyRegistered:
		return "already_registered"
	default:
		return "unknown"
	}
}

// RegisterResult carries the created user and account on success
type RegisterResult struct {
	Outcome RegisterOutcome
	User    model.User
	Account model.Account
}
