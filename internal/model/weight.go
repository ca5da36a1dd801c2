package model

import "fmt"

// Bounds of a weight a daily water target can be derived from
const (
	MinWeightForTarget = 30
	MaxWeightForTarget = 150
)

// WeightKind tags the variant held by an AnyWeight
type WeightKind int

const (
	WeightInvalid WeightKind = iota
	WeightPlain
	WeightForTarget
)

func (k WeightKind) String() string {
	switch k {
	case WeightInvalid:
		return "invalid"
	case WeightPlain:
		return "plain"
	case WeightForTarget:
		return "for_target"
	default:
		return fmt.Sprintf("WeightKind(%d)", int(k))
	}
}

// Weight is a whole, non-negative number of kilograms
type Weight struct {
	kilograms int
}

// NewWeight creates a Weight from a whole number of kilograms
func NewWeight(kilograms int) (Weight, error) {
	if kilograms < 0 {
		return Weight{}, fmt.Errorf("%w: %d kg", ErrInvalidWeight, kilograms)
	}
	return Weight{kilograms: kilograms}, nil
}

// Kilograms returns the weight in kilograms
func (w Weight) Kilograms() int {
	return w.kilograms
}

// IsForTarget reports whether a water target can be derived from this weight
func (w Weight) IsForTarget() bool {
	return w.kilograms >= MinWeightForTarget && w.kilograms <= MaxWeightForTarget
}

// AnyWeight is the result of parsing a raw kilogram value: a weight usable
// for target derivation, a plain weight, or an invalid amount with reasons
type AnyWeight struct {
	Kind      WeightKind
	Kilograms float64
	Reasons   AmountReasons
}

// WeightWith parses a raw kilogram value. The three kinds are disjoint and
// cover every float64.
func WeightWith(kilograms float64) AnyWeight {
	reasons := amountReasonsFor(kilograms)
	if !reasons.Empty() {
		return AnyWeight{Kind: WeightInvalid, Kilograms: kilograms, Reasons: reasons}
	}

	weight := Weight{kilograms: int(kilograms)}
	if weight.IsForTarget() {
		return AnyWeight{Kind: WeightForTarget, Kilograms: kilograms}
	}
	return AnyWeight{Kind: WeightPlain, Kilograms: kilograms}
}

// Weight returns the parsed weight unless the value was invalid
func (w AnyWeight) Weight() (Weight, bool) {
	if w.Kind == WeightInvalid {
		return Weight{}, false
	}
	return Weight{kilograms: int(w.Kilograms)}, true
}

// IsValid reports whether the value is a plain weight or a weight for target
func (w AnyWeight) IsValid() bool {
	return w.Kind != WeightInvalid
}
