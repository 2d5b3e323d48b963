package pool

import (
	"fmt"
	"strconv"
	"strings"
)

// FeeAmount is a pool fee tier in hundredths of a basis point.
type FeeAmount uint32

const (
	FeeStable   FeeAmount = 50
	FeeLowest   FeeAmount = 100
	FeeComplete FeeAmount = 250
	FeeLow      FeeAmount = 500
	FeeMedium   FeeAmount = 3000
	FeeHigh     FeeAmount = 10000
)

var feeTiers = []struct {
	fee         FeeAmount
	name        string
	tickSpacing int32
}{
	{FeeStable, "stable", 1},
	{FeeLowest, "lowest", 1},
	{FeeComplete, "complete", 5},
	{FeeLow, "low", 10},
	{FeeMedium, "medium", 60},
	{FeeHigh, "high", 200},
}

// FeeAmounts lists the supported tiers in ascending order.
func FeeAmounts() []FeeAmount {
	out := make([]FeeAmount, 0, len(feeTiers))
	for _, tier := range feeTiers {
		out = append(out, tier.fee)
	}
	return out
}

// TickSpacing returns the tick spacing enabled for the fee tier.
func (f FeeAmount) TickSpacing() (int32, error) {
	for _, tier := range feeTiers {
		if tier.fee == f {
			return tier.tickSpacing, nil
		}
	}
	return 0, fmt.Errorf("unsupported fee amount: %d", uint32(f))
}

func (f FeeAmount) String() string {
	for _, tier := range feeTiers {
		if tier.fee == f {
			return tier.name
		}
	}
	return strconv.FormatUint(uint64(f), 10)
}

// ParseFeeAmount accepts a tier name ("medium") or its numeric value ("3000").
func ParseFeeAmount(input string) (FeeAmount, error) {
	input = strings.ToLower(strings.TrimSpace(input))
	for _, tier := range feeTiers {
		if tier.name == input {
			return tier.fee, nil
		}
	}

	value, err := strconv.ParseUint(input, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid fee amount: %s", input)
	}
	fee := FeeAmount(value)
	if _, err := fee.TickSpacing(); err != nil {
		return 0, err
	}
	return fee, nil
}
