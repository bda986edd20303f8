package monitor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/efac/accum"
	"github.com/ezrec/efac/device"
	"github.com/ezrec/efac/emulator"
)

func newMonitor() (mon *Monitor, out *bytes.Buffer) {
	out = &bytes.Buffer{}
	mon = &Monitor{
		Acc:    accum.NewBank(accum.BANK_SIZE),
		Output: out,
	}
	return
}

func TestMonitor_Commands(t *testing.T) {
	assert := assert.New(t)

	mon, out := newMonitor()

	table := [](struct {
		line   string
		expect string
	}){
		{"a 0 1.5", ""},
		{"a 0 2*4", ""},
		{"s 0 0.25", ""},
		{"r 0", "r0: 0x41140000 9.250000e+00\n"},
		{"c 0", ""},
		{"r 0", "r0: 0x00000000 0.000000e+00\n"},
		{"a4 BANK_SIZE-1 1 2 3 4", ""},
		{"s4 7 1 1 1 1", ""},
		{"r 7 pinf", "r7: 0x40c00000 6.000000e+00\n"},
		{"a 1 1", ""},
		{"a 1 0x1p-30", ""},
		{"r 1 away", "r1: 0x3f800001 1.000000e+00\n"},
		{"r 1 ROUND_TOWARD_ZERO", "r1: 0x3f800000 1.000000e+00\n"},
		{"a 2 f32(0x40490fdb)", ""},
		{"r 2", "r2: 0x40490fdb 3.141593e+00\n"},
		{"", ""},
	}

	for _, entry := range table {
		out.Reset()
		quit, err := mon.Execute(entry.line)
		assert.NoError(err, entry.line)
		assert.False(quit, entry.line)
		assert.Equal(entry.expect, out.String(), entry.line)
	}
}

func TestMonitor_Save(t *testing.T) {
	assert := assert.New(t)

	mon, out := newMonitor()

	_, err := mon.Execute("save 3")
	assert.NoError(err)
	assert.Equal("  0: 0x00070000\n  1: 0x00000017\n 25: 0xffffffff\n", out.String())

	out.Reset()
	_, err = mon.Execute("a 3 inf")
	assert.NoError(err)
	_, err = mon.Execute("save 3")
	assert.NoError(err)
	assert.True(strings.HasPrefix(out.String(), "  0: 0x00070001\n"))
}

func TestMonitor_Errors(t *testing.T) {
	assert := assert.New(t)

	mon, _ := newMonitor()

	table := [](struct {
		line   string
		expect error
	}){
		{"frobnicate", ErrCommandUnknown},
		{"a 0", ErrCommandArgs},
		{"r", ErrCommandArgs},
		{"r 0 1 2", ErrCommandArgs},
		{"a 0 one", ErrParseExpression("one")},
		{"c 1+", ErrParseExpression("1+")},
		{"c 0.5", ErrParseExpression("0.5")},
		{"c 99", accum.ErrRegisterInvalid},
		{"r 0 sideways", accum.ErrRoundingMode},
		{"r 0 9", accum.ErrRoundingMode},
		{"r32 0", ErrNoWindow},
		{"sf", ErrNoWindow},
	}

	for _, entry := range table {
		quit, err := mon.Execute(entry.line)
		assert.False(quit, entry.line)
		assert.ErrorIs(err, entry.expect, entry.line)

		var cerr *ErrCommand
		assert.ErrorAs(err, &cerr, entry.line)
	}
}

func TestMonitor_Window(t *testing.T) {
	assert := assert.New(t)

	cop := emulator.NewCoprocessor(2)
	out := &bytes.Buffer{}
	mon := &Monitor{
		Acc:    device.NewDevice(cop, 2),
		Window: cop,
		Output: out,
	}

	lines := []string{
		"wf REGISTER_STRIDE+SLOT_LANE*4 2.5",
		"w32 REGISTER_STRIDE+4 0x3f800000",
		"rf REGISTER_STRIDE",
		"mf",
		"rf REGISTER_STRIDE",
		"r32 REGISTER_STRIDE+SLOT_CONTROL*4",
		"w32 REGISTER_STRIDE+SLOT_CONTROL*4 CONTROL_DEFAULT|CONTROL_CLEAR",
		"sf",
		"r 1",
	}
	for _, line := range lines {
		_, err := mon.Execute(line)
		assert.NoError(err, line)
	}

	assert.Equal(
		"0x00001000: 0.000000e+00\n"+
			"0x00001000: 3.500000e+00\n"+
			"0x00001800: 0x00070000\n"+
			"r1: 0x00000000 0.000000e+00\n",
		out.String())

	_, err := mon.Execute("r32 3")
	assert.ErrorIs(err, ErrParseExpression("3"))
}

func TestMonitor_Run(t *testing.T) {
	assert := assert.New(t)

	mon, out := newMonitor()

	input := strings.NewReader("a 0 1\nbogus\nr 0\nq\nr 0\n")
	assert.NoError(mon.Run(input))

	text := out.String()
	assert.Contains(text, "r0: 0x3f800000 1.000000e+00\n")
	assert.Contains(text, "error: bogus: command unknown\n")
	assert.Equal(4, strings.Count(text, PROMPT))

	out.Reset()
	assert.NoError(mon.Run(strings.NewReader("h\n")))
	assert.Contains(out.String(), "save <reg>")
	assert.Contains(out.String(), "nearest zero away pinf ninf")
}

func TestMonitor_WindowDefines(t *testing.T) {
	assert := assert.New(t)

	cop := emulator.NewCoprocessor(1)
	mon := &Monitor{
		Acc:    device.NewDevice(cop, 1),
		Window: cop,
		Output: &bytes.Buffer{},
	}

	value, err := mon.evalInt("UNMAPPED")
	assert.NoError(err)
	assert.Equal(int64(emulator.UNMAPPED), value)

	value, err = mon.evalInt("SLOT_CONTROL + REGISTER_WORDS")
	assert.NoError(err)
	assert.Equal(int64(device.SLOT_CONTROL+accum.REGISTER_WORDS), value)

	soft, _ := newMonitor()
	_, err = soft.evalInt("UNMAPPED")
	assert.ErrorIs(err, ErrParseExpression("UNMAPPED"))
}

func TestMonitor_MappingBounds(t *testing.T) {
	assert := assert.New(t)

	mapping := device.NewMapping(make([]byte, 2*device.REGISTER_STRIDE), nil)
	out := &bytes.Buffer{}
	mon := &Monitor{
		Acc:    device.NewDevice(mapping, 2),
		Window: mapping,
		Output: out,
	}

	for _, line := range []string{"w32 0x7ffffffc 1", "r32 0x7ffffffc", "wf 2*REGISTER_STRIDE 1.0", "rf REGISTER_STRIDE"} {
		_, err := mon.Execute(line)
		assert.NoError(err, line)
	}

	assert.Equal("0x7ffffffc: 0xffffffff\n0x00001000: 0.000000e+00\n", out.String())
}
