package model

import "errors"

// Common errors used across the application
var (
	// Username errors
	ErrEmptyUsername = errors.New("username must not be empty")

	// Amount errors
	ErrInvalidWeight = errors.New("invalid weight")
	ErrInvalidWater  = errors.New("invalid water amount")

	// Water balance errors
	ErrExtremeWeightForWaterBalance = errors.New("weight is outside the range a water balance can be derived from")

	// Credentials errors
	ErrWeakCredentials = errors.New("credentials are not strong")
)
