package accum

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegister_ReadDirected(t *testing.T) {
	assert := assert.New(t)

	rands := rand.New(rand.NewSource(4))
	for trial := range 300 {
		values := make([]float32, 1+rands.Intn(32))
		for n := range values {
			values[n] = wideFloat(rands)
		}

		reg := newRegister()
		for _, value := range values {
			reg.Add(value)
		}

		sum := exactSum(values...)
		for mode := range RoundingMode(ROUND_MODES) {
			if mode == ROUND_NEAREST {
				continue
			}
			assert.Equal(
				math.Float32bits(exactRound(sum, mode)),
				math.Float32bits(reg.ReadRounded(mode)),
				fmt.Sprintf("trial %d mode %v", trial, mode))
		}
	}
}

func TestRegister_ReadNearest(t *testing.T) {
	assert := assert.New(t)

	// Sums of values in [1, 2) never leave a tail below the readout window.
	rands := rand.New(rand.NewSource(5))
	for trial := range 300 {
		values := make([]float32, 1+rands.Intn(256))
		for n := range values {
			values[n] = narrowFloat(rands)
		}

		reg := newRegister()
		for _, value := range values {
			reg.Add(value)
		}

		sum := exactSum(values...)
		assert.Equal(
			math.Float32bits(exactRound(sum, ROUND_NEAREST)),
			math.Float32bits(reg.Read()),
			trial)
	}
}

func TestRegister_ReadSubnormal(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		values []float32
		mode   RoundingMode
		expect float32
	}){
		{"exact", []float32{0x1p-140, -0x1p-145}, ROUND_TOWARD_ZERO, 0x1p-140 - 0x1p-145},
		{"normal_edge", []float32{0x1p-126, -math.SmallestNonzeroFloat32}, ROUND_NEAREST, 0x1p-126 - 0x1p-149},
		{"cancel", []float32{0x1p-125, 0x1p-149, -0x1p-125}, ROUND_NEAREST, 0x1p-149},
		{"negative_subnormal", []float32{-0x1p-130}, ROUND_TOWARD_POSITIVE, -0x1p-130},
	}

	for _, entry := range table {
		reg := newRegister()
		for _, value := range entry.values {
			reg.Add(value)
		}
		assert.Equal(entry.expect, reg.ReadRounded(entry.mode), entry.name)
	}
}

func TestRegister_ReadTiny(t *testing.T) {
	assert := assert.New(t)

	// A register holding less than the smallest float32, built directly.
	reg := newRegister()
	reg.store(0, 1)

	assert.Equal(uint32(0), math.Float32bits(reg.ReadRounded(ROUND_NEAREST)))
	assert.Equal(uint32(0), math.Float32bits(reg.ReadRounded(ROUND_TOWARD_ZERO)))
	assert.Equal(float32(math.SmallestNonzeroFloat32), reg.ReadRounded(ROUND_AWAY_FROM_ZERO))
	assert.Equal(float32(math.SmallestNonzeroFloat32), reg.ReadRounded(ROUND_TOWARD_POSITIVE))
	assert.Equal(uint32(0), math.Float32bits(reg.ReadRounded(ROUND_TOWARD_NEGATIVE)))

	// And its negation: every word is all ones.
	reg.Clear()
	reg.propagate(0, -1)
	assert.True(reg.Negative())
	assert.Equal(uint32(0x80000000), math.Float32bits(reg.ReadRounded(ROUND_NEAREST)))
	assert.Equal(uint32(0x80000000), math.Float32bits(reg.ReadRounded(ROUND_TOWARD_ZERO)))
	assert.Equal(float32(-math.SmallestNonzeroFloat32), reg.ReadRounded(ROUND_AWAY_FROM_ZERO))
	assert.Equal(uint32(0x80000000), math.Float32bits(reg.ReadRounded(ROUND_TOWARD_POSITIVE)))
	assert.Equal(float32(-math.SmallestNonzeroFloat32), reg.ReadRounded(ROUND_TOWARD_NEGATIVE))
}

func TestRegister_ReadNegativeWordBoundary(t *testing.T) {
	assert := assert.New(t)

	// -2^exp with its bit on a word boundary has an all-zero window.
	for exp := 32 - REGISTER_BIAS%WORD_BITS - 128; exp < 128; exp += WORD_BITS {
		value := float32(math.Ldexp(1, exp))
		reg := newRegister()
		reg.Subtract(value)
		for mode := range RoundingMode(ROUND_MODES) {
			assert.Equal(-value, reg.ReadRounded(mode), fmt.Sprintf("2^%d %v", exp, mode))
		}
	}
}

func TestRegister_RoundingOrder(t *testing.T) {
	assert := assert.New(t)

	rands := rand.New(rand.NewSource(6))
	for trial := range 300 {
		reg := newRegister()
		for range 1 + rands.Intn(16) {
			reg.Add(wideFloat(rands))
		}

		zero := reg.ReadRounded(ROUND_TOWARD_ZERO)
		away := reg.ReadRounded(ROUND_AWAY_FROM_ZERO)
		nearest := reg.ReadRounded(ROUND_NEAREST)
		positive := reg.ReadRounded(ROUND_TOWARD_POSITIVE)
		negative := reg.ReadRounded(ROUND_TOWARD_NEGATIVE)

		name := fmt.Sprintf("trial %d", trial)
		if reg.Negative() {
			assert.LessOrEqual(away, nearest, name)
			assert.LessOrEqual(nearest, zero, name)
			assert.Equal(zero, positive, name)
			assert.Equal(away, negative, name)
		} else {
			assert.LessOrEqual(zero, nearest, name)
			assert.LessOrEqual(nearest, away, name)
			assert.Equal(away, positive, name)
			assert.Equal(zero, negative, name)
		}
	}
}

func TestRegister_ReadIdempotent(t *testing.T) {
	assert := assert.New(t)

	reg := newRegister()
	reg.Add4(1, 0x1p-30, -0x1p20, 3.25)
	before := reg.Snapshot()

	for mode := range RoundingMode(ROUND_MODES) {
		first := reg.ReadRounded(mode)
		assert.Equal(first, reg.ReadRounded(mode), mode.String())
	}
	assert.Equal(before, reg.Snapshot())
}

func TestRegister_NearestWindowBias(t *testing.T) {
	assert := assert.New(t)

	// 1 + 2^-24 is a tie, and 2^-100 lies below the readout window. The
	// nearest mode does not see the tail and rounds the tie to even; the
	// exact nearest value is one unit higher.
	values := []float32{1, 0x1p-24, 0x1p-100}

	reg := newRegister()
	for _, value := range values {
		reg.Add(value)
	}

	assert.Equal(float32(1), reg.ReadRounded(ROUND_NEAREST))
	assert.Equal(float32(1), reg.ReadRounded(ROUND_TOWARD_ZERO))
	assert.Equal(float32(1+0x1p-23), reg.ReadRounded(ROUND_AWAY_FROM_ZERO))
	assert.Equal(float32(1+0x1p-23), exactRound(exactSum(values...), ROUND_NEAREST))

	// Without the tail, the tie is decided the same way.
	reg.Subtract(0x1p-100)
	assert.Equal(float32(1), reg.ReadRounded(ROUND_NEAREST))
	assert.Equal(float32(1+0x1p-23), reg.ReadRounded(ROUND_AWAY_FROM_ZERO))
}
