package lux

import (
	"errors"
	"fmt"
	"time"

	"github.com/oarkflow/date"
)

var errNoArgument = errors.New("requires one argument")

func clock(_ *Interpreter, _ []Value) (Value, error) {
	now := time.Now()
	return Number(float64(now.UnixNano()) / float64(time.Second)), nil
}

// printValue backs both print and println; each writes one line.
func printValue(in *Interpreter, args []Value) (Value, error) {
	var v Value = Nil
	if len(args) > 0 {
		v = args[0]
	}
	if _, err := fmt.Fprintln(in.Stdout(), Display(v)); err != nil {
		return nil, err
	}
	return Nil, nil
}

// parseDate reads a date in any layout the date package recognizes and
// returns Unix seconds.
func parseDate(_ *Interpreter, args []Value) (Value, error) {
	if len(args) == 0 {
		return nil, errNoArgument
	}
	str, ok := args[0].(String)
	if !ok {
		return nil, fmt.Errorf("expected a String, got %s", kindOf(args[0]))
	}
	t, err := date.Parse(string(str))
	if err != nil {
		return nil, fmt.Errorf("cannot parse time: %v", err)
	}
	return Number(float64(t.Unix())), nil
}

// DefaultNatives returns a fresh registry with the built-in table.
func DefaultNatives() *NativeRegistry {
	return NewNativeRegistry().
		MustRegister(&Native{Name: "clock", ArityN: 0, Fn: clock}).
		MustRegister(&Native{Name: "print", ArityN: 1, Fn: printValue}).
		MustRegister(&Native{Name: "println", ArityN: 1, Fn: printValue}).
		MustRegister(&Native{Name: "parseDate", ArityN: 1, Fn: parseDate})
}
