package accum

import (
	"math"
	"math/big"
	"math/rand"
)

// exactSum returns the exact sum of values, in units of 2^FLOAT_MIN_EXP.
func exactSum(values ...float32) (sum *big.Int) {
	sum = new(big.Int)
	term := new(big.Int)
	for _, value := range values {
		addExact(sum, term, value)
	}
	return
}

// addExact adds value to sum, using term as scratch space.
func addExact(sum *big.Int, term *big.Int, value float32) {
	raw := math.Float32bits(value)
	exp := int((raw >> 23) & 0xff)
	mant := int64(raw & (1<<23 - 1))
	if exp != 0 {
		mant |= 1 << 23
		exp--
	}
	if raw>>31 != 0 {
		mant = -mant
	}
	term.SetInt64(mant)
	term.Lsh(term, uint(exp))
	sum.Add(sum, term)
}

var bigMode = map[RoundingMode]big.RoundingMode{
	ROUND_NEAREST:         big.ToNearestEven,
	ROUND_TOWARD_ZERO:     big.ToZero,
	ROUND_AWAY_FROM_ZERO:  big.AwayFromZero,
	ROUND_TOWARD_POSITIVE: big.ToPositiveInf,
	ROUND_TOWARD_NEGATIVE: big.ToNegativeInf,
}

// exactRound rounds an exact sum to a float32. Directed modes are only exact
// for results in the normal float32 range.
func exactRound(sum *big.Int, mode RoundingMode) float32 {
	x := new(big.Float).SetInt(sum)
	x.SetMantExp(x, FLOAT_MIN_EXP)

	if mode == ROUND_NEAREST {
		value, _ := x.Float32()
		return value
	}

	y := new(big.Float).SetPrec(FLOAT_PRECISION).SetMode(bigMode[mode]).Set(x)
	value, _ := y.Float32()
	return value
}

// wideFloat returns a random float32 with a magnitude in [2^-30, 2^31).
func wideFloat(rands *rand.Rand) float32 {
	value := float32(math.Ldexp(1+rands.Float64(), rands.Intn(61)-30))
	if rands.Intn(2) == 0 {
		value = -value
	}
	return value
}

// narrowFloat returns a random float32 with a magnitude in [1, 2).
func narrowFloat(rands *rand.Rand) float32 {
	value := float32(1 + rands.Float64())
	if rands.Intn(2) == 0 {
		value = -value
	}
	return value
}
