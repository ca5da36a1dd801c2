package views

import (
	"fmt"
	"strings"

	"github.com/mcoot/aqua-access/internal/model"
)

// Notice is one entry of the fixed message catalog
type Notice int

const (
	InvalidUsername Notice = iota
	UsernameTaken
	PreviouslyNoSuchUser
	InvalidPassword
	PreviouslyRejectedCredentials
	WrongPassword
	NoSuchUser
	TryAgainLater
	AccountCreated

	// Registration hints
	ValidWeightWithTargetHint
	InvalidWeightWithTargetHint
	ValidWeightWithoutTargetHint
	InvalidWeightWithoutTargetHint
	ValidTargetWithWeightHint
	ValidTargetWithoutWeightHint
	InvalidTargetWithoutWeightHint
	ValidGlassHint
	InvalidGlassHint
)

var noticeNames = map[Notice]string{
	InvalidUsername:                "invalid_username",
	UsernameTaken:                  "username_taken",
	PreviouslyNoSuchUser:           "previously_no_such_user",
	InvalidPassword:                "invalid_password",
	PreviouslyRejectedCredentials:  "previously_rejected_credentials",
	WrongPassword:                  "wrong_password",
	NoSuchUser:                     "no_such_user",
	TryAgainLater:                  "try_again_later",
	AccountCreated:                 "account_created",
	ValidWeightWithTargetHint:      "valid_weight_with_target",
	InvalidWeightWithTargetHint:    "invalid_weight_with_target",
	ValidWeightWithoutTargetHint:   "valid_weight_without_target",
	InvalidWeightWithoutTargetHint: "invalid_weight_without_target",
	ValidTargetWithWeightHint:      "valid_target_with_weight",
	ValidTargetWithoutWeightHint:   "valid_target_without_weight",
	InvalidTargetWithoutWeightHint: "invalid_target_without_weight",
	ValidGlassHint:                 "valid_glass",
	InvalidGlassHint:               "invalid_glass",
}

var noticeMessages = map[Notice]string{
	InvalidUsername:                "There can be no user with this username",
	UsernameTaken:                  "This username is already taken",
	PreviouslyNoSuchUser:           "Earlier attempts found no user with this username",
	InvalidPassword:                "There can be no user with this password",
	PreviouslyRejectedCredentials:  "This password did not fit in earlier attempts",
	WrongPassword:                  "Wrong password",
	NoSuchUser:                     "There is no user with this username",
	TryAgainLater:                  "Something went wrong, please try again later",
	AccountCreated:                 "Account created",
	ValidWeightWithTargetHint:      "Weight is optional when a daily target is set",
	InvalidWeightWithTargetHint:    "Weight must be a whole, non-negative number of kilograms",
	ValidWeightWithoutTargetHint:   "The daily target will be derived from your weight",
	InvalidWeightWithoutTargetHint: fmt.Sprintf("Without a daily target, weight must be between %d and %d kg", model.MinWeightForTarget, model.MaxWeightForTarget),
	ValidTargetWithWeightHint:      "The daily target can be derived from your weight",
	ValidTargetWithoutWeightHint:   "The daily target is set",
	InvalidTargetWithoutWeightHint: "Set a daily target in whole milliliters or give your weight",
	ValidGlassHint:                 "Glass capacity is set",
	InvalidGlassHint:               "Glass capacity must be a whole, non-negative number of milliliters",
}

// String returns the stable machine name of the notice
func (n Notice) String() string {
	if name, ok := noticeNames[n]; ok {
		return name
	}
	return fmt.Sprintf("Notice(%d)", int(n))
}

// Message returns the human text of the notice
func (n Notice) Message() string {
	return noticeMessages[n]
}

// Severity tells a renderer how to style a notice
type Severity int

const (
	SeverityNeutral Severity = iota
	SeverityBad
	SeverityGood
)

func (s Severity) String() string {
	switch s {
	case SeverityBad:
		return "bad"
	case SeverityGood:
		return "good"
	default:
		return "neutral"
	}
}

// Severity returns how the notice should be styled
func (n Notice) Severity() Severity {
	switch n {
	case InvalidUsername, UsernameTaken, InvalidPassword, WrongPassword, NoSuchUser, TryAgainLater,
		InvalidWeightWithTargetHint, InvalidWeightWithoutTargetHint, InvalidTargetWithoutWeightHint, InvalidGlassHint:
		return SeverityBad
	case AccountCreated:
		return SeverityGood
	default:
		return SeverityNeutral
	}
}

// Notification is a notice plus the details some notices carry
type Notification struct {
	Notice Notice

	// Weakness lists why a password is weak
	Weakness model.WeaknessReasons

	// SuggestedTarget is the daily balance derived from the weight
	SuggestedTarget *model.WaterBalance
}

// Of wraps a notice without details
func Of(notice Notice) Notification {
	return Notification{Notice: notice}
}

// Text renders the notification as one line
func (n Notification) Text() string {
	var b strings.Builder
	b.WriteString(n.Notice.Message())

	if !n.Weakness.Empty() {
		b.WriteString(" (")
		b.WriteString(strings.Join(n.Weakness.Names(), ", "))
		b.WriteString(")")
	}
	if n.SuggestedTarget != nil {
		fmt.Fprintf(&b, ": %d ml", n.SuggestedTarget.Water.Milliliters())
	}
	return b.String()
}
