package model

import "fmt"

// WaterKind tags the variant held by an AnyWater
type WaterKind int

const (
	WaterInvalid WaterKind = iota
	WaterValid
)

// Water is a whole, non-negative number of milliliters
type Water struct {
	milliliters int
}

// NewWater creates Water from a whole number of milliliters
func NewWater(milliliters int) (Water, error) {
	if milliliters < 0 {
		return Water{}, fmt.Errorf("%w: %d ml", ErrInvalidWater, milliliters)
	}
	return Water{milliliters: milliliters}, nil
}

// Milliliters returns the amount in milliliters
func (w Water) Milliliters() int {
	return w.milliliters
}

// AnyWater is either valid Water or the offending milliliters with reasons
type AnyWater struct {
	Kind        WaterKind
	Milliliters float64
	Reasons     AmountReasons
}

// WaterWith parses a raw milliliter value; it never fails
func WaterWith(milliliters float64) AnyWater {
	reasons := amountReasonsFor(milliliters)
	if !reasons.Empty() {
		return AnyWater{Kind: WaterInvalid, Milliliters: milliliters, Reasons: reasons}
	}
	return AnyWater{Kind: WaterValid, Milliliters: milliliters}
}

// Water returns the parsed water unless the value was invalid
func (w AnyWater) Water() (Water, bool) {
	if w.Kind != WaterValid {
		return Water{}, false
	}
	return Water{milliliters: int(w.Milliliters)}, true
}

// IsValid reports whether the amount is valid water
func (w AnyWater) IsValid() bool {
	return w.Kind == WaterValid
}

// WaterBalance is the amount of water to drink per day
type WaterBalance struct {
	Water Water
}

// AnyWaterBalance wraps a parsed water amount meant as a daily balance
type AnyWaterBalance struct {
	AnyWater
}

// WaterBalanceWith parses a raw milliliter value as a water balance
func WaterBalanceWith(milliliters float64) AnyWaterBalance {
	return AnyWaterBalance{AnyWater: WaterWith(milliliters)}
}

// WaterBalance returns the balance unless the amount was invalid
func (b AnyWaterBalance) WaterBalance() (WaterBalance, bool) {
	water, ok := b.Water()
	if !ok {
		return WaterBalance{}, false
	}
	return WaterBalance{Water: water}, true
}

// SuitableWaterBalance derives a default daily water balance from a weight.
// Only weights usable for a target qualify.
func SuitableWaterBalance(weight Weight) (WaterBalance, error) {
	if !weight.IsForTarget() {
		return WaterBalance{}, fmt.Errorf("%w: %d kg", ErrExtremeWeightForWaterBalance, weight.Kilograms())
	}

	return WaterBalance{
		Water: Water{milliliters: 1500 + (weight.Kilograms()-20)*10},
	}, nil
}

// Glass is the capacity of the glass the user usually drinks from
type Glass struct {
	Capacity Water
}

// AnyGlass wraps a parsed water amount meant as a glass capacity
type AnyGlass struct {
	AnyWater
}

// GlassWith parses a raw milliliter value as a glass capacity
func GlassWith(milliliters float64) AnyGlass {
	return AnyGlass{AnyWater: WaterWith(milliliters)}
}

// Glass returns the glass unless the amount was invalid
func (g AnyGlass) Glass() (Glass, bool) {
	water, ok := g.Water()
	if !ok {
		return Glass{}, false
	}
	return Glass{Capacity: water}, true
}
