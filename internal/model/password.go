package model

import (
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the shortest password that is not TooShort
const MinPasswordLength = 8

// WeaknessReason is one reason a password is considered guessable.
// Reasons combine into a WeaknessReasons set.
type WeaknessReason uint8

const (
	TooShort WeaknessReason = 1 << iota
	OnlySmallLetters
	OnlyCapitalLetters
	OnlyDigits
	NoDigits
)

var weaknessReasonNames = []struct {
	reason WeaknessReason
	name   string
}{
	{TooShort, "too_short"},
	{OnlySmallLetters, "only_small_letters"},
	{OnlyCapitalLetters, "only_capital_letters"},
	{OnlyDigits, "only_digits"},
	{NoDigits, "no_digits"},
}

// WeaknessReasons is a set of WeaknessReason values
type WeaknessReasons uint8

// Has reports whether the set contains the reason
func (r WeaknessReasons) Has(reason WeaknessReason) bool {
	return r&WeaknessReasons(reason) != 0
}

// Empty reports whether the set has no reasons
func (r WeaknessReasons) Empty() bool {
	return r == 0
}

// Names lists the reasons in a stable order
func (r WeaknessReasons) Names() []string {
	names := []string{}
	for _, n := range weaknessReasonNames {
		if r.Has(n.reason) {
			names = append(names, n.name)
		}
	}
	return names
}

func (r WeaknessReasons) with(reason WeaknessReason) WeaknessReasons {
	return r | WeaknessReasons(reason)
}

// Power classifies how guessable a password is
type Power struct {
	reasons WeaknessReasons
}

// IsStrong reports whether there are no weakness reasons
func (p Power) IsStrong() bool {
	return p.reasons.Empty()
}

// IsWeak reports whether at least one weakness reason applies
func (p Power) IsWeak() bool {
	return !p.IsStrong()
}

// Reasons returns the weakness reasons (empty for a strong password)
func (p Power) Reasons() WeaknessReasons {
	return p.reasons
}

// Password is raw password text with its computed power
type Password struct {
	Text  string
	Power Power
}

// PasswordWith classifies the text. It is pure and total: the same text
// always yields the same reason set.
func PasswordWith(text string) Password {
	return Password{
		Text:  text,
		Power: ClassifyPassword(text),
	}
}

// IsWeak reports whether the password has any weakness reason
func (p Password) IsWeak() bool {
	return p.Power.IsWeak()
}

// ClassifyPassword computes the power of a password text
func ClassifyPassword(text string) Power {
	var reasons WeaknessReasons

	length := utf8.RuneCountInString(text)
	if length < MinPasswordLength {
		reasons = reasons.with(TooShort)
	}

	// The empty string lowercases and uppercases to itself; it is not
	// "only letters" of either case.
	if length != 0 {
		if strings.ToLower(text) == text {
			reasons = reasons.with(OnlySmallLetters)
		}
		if strings.ToUpper(text) == text {
			reasons = reasons.with(OnlyCapitalLetters)
		}
	}

	digits := digitCount(text)
	switch {
	case digits == 0:
		reasons = reasons.with(NoDigits)
	case digits == length:
		reasons = reasons.with(OnlyDigits)
	}

	return Power{reasons: reasons}
}

func digitCount(text string) int {
	count := 0
	for _, r := range text {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}
