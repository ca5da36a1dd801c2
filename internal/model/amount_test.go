package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type AmountSuite struct {
	suite.Suite
}

func TestAmountSuite(t *testing.T) {
	suite.Run(t, new(AmountSuite))
}

// Weight tests

func (s *AmountSuite) TestWeightInTargetRange() {
	for _, kg := range []float64{30, 70, 150} {
		weight := WeightWith(kg)
		s.Equal(WeightForTarget, weight.Kind, "kg %v", kg)

		parsed, ok := weight.Weight()
		s.True(ok)
		s.Equal(int(kg), parsed.Kilograms())
	}
}

func (s *AmountSuite) TestWeightOutsideTargetRangeIsPlain() {
	for _, kg := range []float64{0, 29, 151, 200, 1e6} {
		weight := WeightWith(kg)
		s.Equal(WeightPlain, weight.Kind, "kg %v", kg)
		s.True(weight.IsValid())
		s.True(weight.Reasons.Empty())
	}
}

func (s *AmountSuite) TestNegativeWeight() {
	weight := WeightWith(-5)

	s.Equal(WeightInvalid, weight.Kind)
	s.Equal([]string{"negative_amount"}, weight.Reasons.Names())
}

func (s *AmountSuite) TestFloatWeight() {
	weight := WeightWith(70.5)

	s.Equal(WeightInvalid, weight.Kind)
	s.Equal([]string{"float_amount"}, weight.Reasons.Names())
}

func (s *AmountSuite) TestNegativeFloatWeight() {
	weight := WeightWith(-0.5)

	s.True(weight.Reasons.Has(NegativeAmount))
	s.True(weight.Reasons.Has(FloatAmount))
}

func (s *AmountSuite) TestNaNWeightHasOwnReason() {
	weight := WeightWith(math.NaN())

	s.Equal(WeightInvalid, weight.Kind)
	s.Equal([]string{"not_a_number"}, weight.Reasons.Names())
}

func (s *AmountSuite) TestInfiniteWeight() {
	s.Equal(WeightInvalid, WeightWith(math.Inf(1)).Kind)

	negative := WeightWith(math.Inf(-1))
	s.True(negative.Reasons.Has(NegativeAmount))
	s.True(negative.Reasons.Has(FloatAmount))
}

func (s *AmountSuite) TestHugeWeightIsInvalid() {
	weight := WeightWith(1e19)

	s.Equal(WeightInvalid, weight.Kind)
	s.Equal([]string{"too_large_amount"}, weight.Reasons.Names())
	_, ok := weight.Weight()
	s.False(ok)

	negative := WeightWith(-1e19)
	s.Equal(WeightInvalid, negative.Kind)
	s.Equal([]string{"negative_amount"}, negative.Reasons.Names())
}

func (s *AmountSuite) TestLargestAmountIsValid() {
	parsed, ok := WaterWith(MaxAmount).Water()
	s.True(ok)
	s.Equal(MaxAmount, parsed.Milliliters())

	s.Equal(WaterInvalid, WaterWith(MaxAmount+1).Kind)
}

func (s *AmountSuite) TestWeightKindsAreExhaustive() {
	values := []float64{-1e19, -151, -1, -0.1, 0, 0.5, 29, 29.9, 30, 100, 150, 150.1, 151, 1e19, math.NaN(), math.Inf(1)}

	for _, kg := range values {
		weight := WeightWith(kg)
		switch weight.Kind {
		case WeightInvalid:
			s.False(weight.Reasons.Empty(), "kg %v", kg)
		case WeightPlain, WeightForTarget:
			s.True(weight.Reasons.Empty(), "kg %v", kg)
		default:
			s.Failf("unexpected kind", "kg %v kind %v", kg, weight.Kind)
		}
	}
}

// Water tests

func (s *AmountSuite) TestWater() {
	water := WaterWith(250)

	parsed, ok := water.Water()
	s.True(ok)
	s.Equal(250, parsed.Milliliters())
}

func (s *AmountSuite) TestInvalidWaterKeepsAmount() {
	water := WaterWith(-2.5)

	s.Equal(WaterInvalid, water.Kind)
	s.Equal(-2.5, water.Milliliters)
	s.True(water.Reasons.Has(NegativeAmount))
	s.True(water.Reasons.Has(FloatAmount))
}

func (s *AmountSuite) TestHugeWaterIsInvalid() {
	for _, ml := range []float64{1e19, math.Exp2(63), math.Inf(1)} {
		water := WaterWith(ml)
		s.Equal(WaterInvalid, water.Kind, "ml %v", ml)
		s.True(water.Reasons.Has(TooLargeAmount), "ml %v", ml)
	}

	s.False(WaterBalanceWith(1e19).IsValid())
	_, ok := GlassWith(1e19).Glass()
	s.False(ok)
}

func (s *AmountSuite) TestGlassAndBalanceWrapWater() {
	glass, ok := GlassWith(300).Glass()
	s.True(ok)
	s.Equal(300, glass.Capacity.Milliliters())

	balance, ok := WaterBalanceWith(2000).WaterBalance()
	s.True(ok)
	s.Equal(2000, balance.Water.Milliliters())

	_, ok = GlassWith(-1).Glass()
	s.False(ok)
}

func (s *AmountSuite) TestSuitableWaterBalance() {
	weight, err := NewWeight(70)
	s.Require().NoError(err)

	balance, err := SuitableWaterBalance(weight)
	s.Require().NoError(err)
	s.Equal(2000, balance.Water.Milliliters())
}

func (s *AmountSuite) TestSuitableWaterBalanceRejectsExtremeWeight() {
	weight, err := NewWeight(200)
	s.Require().NoError(err)

	_, err = SuitableWaterBalance(weight)
	s.ErrorIs(err, ErrExtremeWeightForWaterBalance)
}

func TestParseOptionalAmount(t *testing.T) {
	value, ok := ParseOptionalAmount("  ")
	assert.False(t, ok)
	assert.Zero(t, value)

	value, ok = ParseOptionalAmount(" 70 ")
	assert.True(t, ok)
	assert.Equal(t, 70.0, value)

	value, ok = ParseOptionalAmount("seventy")
	assert.True(t, ok)
	assert.True(t, math.IsNaN(value))
}

func TestParseOptionalAmountOutOfFloatRange(t *testing.T) {
	value, ok := ParseOptionalAmount("1e400")
	assert.True(t, ok)
	assert.True(t, math.IsInf(value, 1))

	weight := WeightWith(value)
	assert.Equal(t, WeightInvalid, weight.Kind)
	assert.False(t, weight.Reasons.Has(NotANumber))
	assert.True(t, weight.Reasons.Has(TooLargeAmount))

	value, ok = ParseOptionalAmount("-1e400")
	assert.True(t, ok)
	assert.True(t, math.IsInf(value, -1))
}
