package model

// UserID uniquely identifies a user across the system
type UserID string

// User is the water-recording side of a registered person
type User struct {
	ID                 UserID
	TargetWaterBalance WaterBalance
	Glass              Glass
	Weight             *Weight // nil when no weight was given
}

// Account is the access side of a registered person
type Account struct {
	ID       UserID
	Username Username
}
