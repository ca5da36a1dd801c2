package model

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// AmountReason is one reason a measured amount is invalid
type AmountReason uint8

const (
	NegativeAmount AmountReason = 1 << iota
	FloatAmount
	NotANumber
	TooLargeAmount
)

// MaxAmount is the largest whole amount a field accepts
const MaxAmount = math.MaxInt32

// AmountReasons is a set of AmountReason values
type AmountReasons uint8

// Has reports whether the set contains the reason
func (r AmountReasons) Has(reason AmountReason) bool {
	return r&AmountReasons(reason) != 0
}

// Empty reports whether the set has no reasons
func (r AmountReasons) Empty() bool {
	return r == 0
}

// Names lists the reasons in a stable order
func (r AmountReasons) Names() []string {
	names := []string{}
	if r.Has(NegativeAmount) {
		names = append(names, "negative_amount")
	}
	if r.Has(FloatAmount) {
		names = append(names, "float_amount")
	}
	if r.Has(NotANumber) {
		names = append(names, "not_a_number")
	}
	if r.Has(TooLargeAmount) {
		names = append(names, "too_large_amount")
	}
	return names
}

// amountReasonsFor collects why a raw amount cannot be a whole, non-negative
// number of at most MaxAmount. NaN is reported on its own.
func amountReasonsFor(amount float64) AmountReasons {
	if math.IsNaN(amount) {
		return AmountReasons(NotANumber)
	}

	var reasons AmountReasons
	if amount < 0 {
		reasons |= AmountReasons(NegativeAmount)
	}
	if math.IsInf(amount, 0) || amount != math.Trunc(amount) {
		reasons |= AmountReasons(FloatAmount)
	}
	if amount > MaxAmount {
		reasons |= AmountReasons(TooLargeAmount)
	}
	return reasons
}

// ParseOptionalAmount parses the text of a numeric form field.
// Blank text means the field was left empty. Text that is not a number
// is still present and parses to NaN, so it is reported as invalid
// rather than ignored. Numbers beyond float64 parse to ±Inf.
func ParseOptionalAmount(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN(), true
	}
	return value, true
}
