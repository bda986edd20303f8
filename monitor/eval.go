// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package monitor

import (
	"iter"
	"math"
	"strconv"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/efac/accum"
	"github.com/ezrec/efac/device"
	"github.com/ezrec/efac/internal"
)

// f32 converts raw float32 bits to a float.
func f32(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var raw starlark.Int
	err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &raw)
	if err != nil {
		return nil, err
	}

	value, ok := raw.Uint64()
	if !ok || value > math.MaxUint32 {
		return nil, ErrParseExpression(raw.String())
	}

	return starlark.Float(math.Float32frombits(uint32(value))), nil
}

// definer is a window that has defines of its own, such as an emulator.
type definer interface {
	Defines() iter.Seq2[string, string]
}

// predeclared returns the expression environment: the layout defines and
// those of the window as integers, and the f32() builtin.
func (mon *Monitor) predeclared() starlark.StringDict {
	if mon.pred != nil {
		return mon.pred
	}

	defines := internal.IterSeq2Concat(accum.Defines(), device.Defines())
	window, ok := mon.Window.(definer)
	if ok {
		defines = internal.IterSeq2Concat(defines, window.Defines())
	}

	pred := starlark.StringDict{
		"f32": starlark.NewBuiltin("f32", f32),
	}
	for key, str := range defines {
		value, err := strconv.ParseInt(str, 0, 64)
		if err != nil {
			continue
		}
		pred[key] = starlark.MakeInt64(value)
	}

	mon.pred = pred
	return pred
}

// eval evaluates a Starlark expression.
func (mon *Monitor) eval(expr string) (value starlark.Value, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, mon.predeclared())
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}

	value, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

// evalInt evaluates an integer expression.
func (mon *Monitor) evalInt(expr string) (value int64, err error) {
	st_rc, err := mon.eval(expr)
	if err != nil {
		return
	}

	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}

	return
}

// evalFloat evaluates a float. Go float syntax, including hex floats, inf
// and nan, is accepted directly.
func (mon *Monitor) evalFloat(expr string) (value float32, err error) {
	parsed, perr := strconv.ParseFloat(expr, 32)
	if perr == nil {
		value = float32(parsed)
		return
	}

	st_rc, err := mon.eval(expr)
	if err != nil {
		return
	}

	switch st_val := st_rc.(type) {
	case starlark.Float:
		value = float32(st_val)
	case starlark.Int:
		value = float32(st_val.Float())
	default:
		err = ErrParseExpression(expr)
	}

	return
}
