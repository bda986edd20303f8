// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package monitor is an interactive register inspector for exact
// accumulators.
//
// Each line is a command followed by whitespace separated arguments. Register
// numbers, addresses and values are Starlark expressions, with the accum and
// device layout constants predeclared.
package monitor

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"math"
	"strings"

	"go.starlark.net/starlark"

	"github.com/ezrec/efac/accum"
	"github.com/ezrec/efac/device"
)

const (
	PROMPT = "> "
)

// Monitor executes register commands.
type Monitor struct {
	Verbose bool              // If set, logs every command.
	Acc     accum.Accumulator // Registers under inspection.
	Window  device.Window     // Raw window, optional.
	Output  io.Writer         // Command output.

	pred starlark.StringDict
}

type command struct {
	args int // Argument count, or -1 if variable.
	help string
	run  func(mon *Monitor, args []string) error
}

var commands map[string]*command

func init() {
	clr := &command{1, "c <reg>: clear register", (*Monitor).cmdClear}
	add := &command{2, "a <reg> <value>: add value", (*Monitor).cmdAdd}
	sub := &command{2, "s <reg> <value>: subtract value", (*Monitor).cmdSubtract}
	add4 := &command{5, "a4 <reg> <v> <v> <v> <v>: add four values", (*Monitor).cmdAdd4}
	sub4 := &command{5, "s4 <reg> <v> <v> <v> <v>: subtract four values", (*Monitor).cmdSubtract4}
	read := &command{-1, "r <reg> [mode]: read register", (*Monitor).cmdRead}
	save := &command{1, "save <reg>: dump the snapshot", (*Monitor).cmdSave}
	r32 := &command{1, "r32 <addr>: load raw word", (*Monitor).cmdLoad32}
	w32 := &command{2, "w32 <addr> <word>: store raw word", (*Monitor).cmdStore32}
	rf := &command{1, "rf <addr>: load raw float", (*Monitor).cmdLoadFloat}
	wf := &command{2, "wf <addr> <value>: store raw float", (*Monitor).cmdStoreFloat}
	publish := &command{0, "sf, mf: publish posted stores", (*Monitor).cmdPublish}

	commands = map[string]*command{
		"c":    clr,
		"a":    add,
		"s":    sub,
		"a4":   add4,
		"s4":   sub4,
		"r":    read,
		"save": save,
		"r32":  r32,
		"w32":  w32,
		"rf":   rf,
		"wf":   wf,
		"sf":   publish,
		"mf":   publish,
	}
}

// Execute runs a single command line.
func (mon *Monitor) Execute(line string) (quit bool, err error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	name := words[0]
	args := words[1:]

	if mon.Verbose {
		log.Printf("monitor: %v %v", name, args)
	}

	switch name {
	case "q", "quit":
		quit = true
		return
	case "h", "help", "?":
		mon.help()
		return
	}

	cmd, ok := commands[name]
	if !ok {
		err = &ErrCommand{Command: name, Err: ErrCommandUnknown}
		return
	}

	if cmd.args >= 0 && len(args) != cmd.args {
		err = &ErrCommand{Command: name, Err: ErrCommandArgs}
		return
	}

	err = cmd.run(mon, args)
	if err != nil {
		err = &ErrCommand{Command: name, Err: err}
	}

	return
}

// Run executes commands from input until end of file or quit.
func (mon *Monitor) Run(input io.Reader) (err error) {
	scanner := bufio.NewScanner(input)

	for {
		fmt.Fprint(mon.Output, PROMPT)
		if !scanner.Scan() {
			break
		}

		quit, cerr := mon.Execute(scanner.Text())
		if cerr != nil {
			fmt.Fprintln(mon.Output, f("error: %v", cerr))
		}
		if quit {
			return
		}
	}

	fmt.Fprintln(mon.Output)
	return scanner.Err()
}

func (mon *Monitor) help() {
	fmt.Fprintln(mon.Output, "h, help: this help")
	fmt.Fprintln(mon.Output, "q, quit: exit")
	for _, name := range []string{"c", "a", "s", "a4", "s4", "r", "save", "r32", "w32", "rf", "wf", "sf"} {
		fmt.Fprintln(mon.Output, commands[name].help)
	}
	fmt.Fprintln(mon.Output, f("modes: %v", strings.Join(modeNames(), " ")))
}

func modeNames() (names []string) {
	for n := range accum.ROUND_MODES {
		names = append(names, accum.RoundingMode(n).String())
	}
	return
}

func (mon *Monitor) register(expr string) (reg int, err error) {
	value, err := mon.evalInt(expr)
	if err != nil {
		return
	}

	reg = int(value)
	return
}

func (mon *Monitor) values(exprs []string) (values []float32, err error) {
	values = make([]float32, len(exprs))
	for n, expr := range exprs {
		values[n], err = mon.evalFloat(expr)
		if err != nil {
			return
		}
	}
	return
}

func (mon *Monitor) cmdClear(args []string) (err error) {
	reg, err := mon.register(args[0])
	if err != nil {
		return
	}

	return mon.Acc.Clear(reg)
}

func (mon *Monitor) cmdAdd(args []string) (err error) {
	reg, err := mon.register(args[0])
	if err != nil {
		return
	}
	value, err := mon.evalFloat(args[1])
	if err != nil {
		return
	}

	return mon.Acc.Add(reg, value)
}

func (mon *Monitor) cmdSubtract(args []string) (err error) {
	reg, err := mon.register(args[0])
	if err != nil {
		return
	}
	value, err := mon.evalFloat(args[1])
	if err != nil {
		return
	}

	return mon.Acc.Subtract(reg, value)
}

func (mon *Monitor) cmdAdd4(args []string) (err error) {
	reg, err := mon.register(args[0])
	if err != nil {
		return
	}
	v, err := mon.values(args[1:])
	if err != nil {
		return
	}

	return mon.Acc.Add4(reg, v[0], v[1], v[2], v[3])
}

func (mon *Monitor) cmdSubtract4(args []string) (err error) {
	reg, err := mon.register(args[0])
	if err != nil {
		return
	}
	v, err := mon.values(args[1:])
	if err != nil {
		return
	}

	return mon.Acc.Subtract4(reg, v[0], v[1], v[2], v[3])
}

func (mon *Monitor) cmdRead(args []string) (err error) {
	if len(args) < 1 || len(args) > 2 {
		err = ErrCommandArgs
		return
	}

	reg, err := mon.register(args[0])
	if err != nil {
		return
	}

	mode := accum.ROUND_NEAREST
	if len(args) == 2 {
		mode, err = accum.ParseRoundingMode(args[1])
		if err != nil {
			var n int64
			n, err = mon.evalInt(args[1])
			if err != nil {
				err = accum.ErrRoundingMode
				return
			}
			mode = accum.RoundingMode(n)
		}
	}

	value, err := mon.Acc.ReadRounded(reg, mode)
	if err != nil {
		return
	}

	fmt.Fprintf(mon.Output, "r%d: 0x%08x %e\n", reg, math.Float32bits(value), value)
	return
}

func (mon *Monitor) cmdSave(args []string) (err error) {
	reg, err := mon.register(args[0])
	if err != nil {
		return
	}

	blob, err := mon.Acc.Save(reg)
	if err != nil {
		return
	}

	var snap accum.Snapshot
	err = snap.UnmarshalBinary(blob)
	if err != nil {
		return
	}

	for n, word := range snap {
		if word != 0 {
			fmt.Fprintf(mon.Output, "%3d: 0x%08x\n", n, word)
		}
	}

	return
}

func (mon *Monitor) address(expr string) (addr uintptr, err error) {
	if mon.Window == nil {
		err = ErrNoWindow
		return
	}

	value, err := mon.evalInt(expr)
	if err != nil {
		return
	}

	if value < 0 || value%device.WORD_BYTES != 0 {
		err = ErrParseExpression(expr)
		return
	}

	addr = uintptr(value)
	return
}

func (mon *Monitor) cmdLoad32(args []string) (err error) {
	addr, err := mon.address(args[0])
	if err != nil {
		return
	}

	fmt.Fprintf(mon.Output, "0x%08x: 0x%08x\n", addr, mon.Window.Load32(addr))
	return
}

func (mon *Monitor) cmdStore32(args []string) (err error) {
	addr, err := mon.address(args[0])
	if err != nil {
		return
	}
	value, err := mon.evalInt(args[1])
	if err != nil {
		return
	}

	mon.Window.Store32(addr, uint32(value))
	return
}

func (mon *Monitor) cmdLoadFloat(args []string) (err error) {
	addr, err := mon.address(args[0])
	if err != nil {
		return
	}

	fmt.Fprintf(mon.Output, "0x%08x: %e\n", addr, math.Float32frombits(mon.Window.Load32(addr)))
	return
}

func (mon *Monitor) cmdStoreFloat(args []string) (err error) {
	addr, err := mon.address(args[0])
	if err != nil {
		return
	}
	value, err := mon.evalFloat(args[1])
	if err != nil {
		return
	}

	mon.Window.Store32(addr, math.Float32bits(value))
	return
}

func (mon *Monitor) cmdPublish(args []string) (err error) {
	if mon.Window == nil {
		err = ErrNoWindow
		return
	}

	mon.Window.Publish()
	return
}
