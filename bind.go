package lux

import (
	"fmt"
	"reflect"

	goreflect "github.com/goccy/go-reflect"

	"github.com/oarkflow/lux/utils"
)

var (
	errorType = reflect.TypeOf((*error)(nil)).Elem()
	valueType = reflect.TypeOf((*Value)(nil)).Elem()
)

// BindGo wraps an ordinary Go function as a native. Parameters may be any
// scalar Go type, Value or an interface; results are at most one value
// optionally followed by an error. Arity is the number of parameters.
func BindGo(name string, fn any) (*Native, error) {
	t := goreflect.TypeOf(fn)
	if t == nil || t.Kind() != goreflect.Func {
		return nil, fmt.Errorf("bind %s: expected a func, got %T", name, fn)
	}
	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.IsVariadic() {
		return nil, fmt.Errorf("bind %s: variadic functions are not supported", name)
	}
	switch ft.NumOut() {
	case 0, 1:
	case 2:
		if !ft.Out(1).Implements(errorType) {
			return nil, fmt.Errorf("bind %s: second result must be an error", name)
		}
	default:
		return nil, fmt.Errorf("bind %s: too many results", name)
	}

	call := func(_ *Interpreter, args []Value) (Value, error) {
		in := make([]reflect.Value, ft.NumIn())
		for i := range in {
			slot := reflect.New(ft.In(i)).Elem()
			var arg Value = Nil
			if i < len(args) {
				arg = args[i]
			}
			if err := toGo(arg, slot); err != nil {
				return nil, fmt.Errorf("argument %d: %w", i+1, err)
			}
			in[i] = slot
		}
		return fromGo(fv.Call(in))
	}
	return &Native{Name: name, ArityN: ft.NumIn(), Fn: call}, nil
}

// MustBindGo is BindGo for static tables.
func MustBindGo(name string, fn any) *Native {
	n, err := BindGo(name, fn)
	if err != nil {
		panic(err)
	}
	return n
}

func toGo(v Value, slot reflect.Value) error {
	if slot.Type() == valueType {
		slot.Set(reflect.ValueOf(&v).Elem())
		return nil
	}
	var plain any
	switch t := v.(type) {
	case Number:
		plain = float64(t)
	case String:
		plain = string(t)
	case Boolean:
		plain = bool(t)
	case NilValue, nil:
		plain = nil
	default:
		plain = v
	}
	return utils.Convert(plain, slot)
}

func fromGo(out []reflect.Value) (Value, error) {
	if len(out) == 0 {
		return Nil, nil
	}
	last := out[len(out)-1]
	if last.Type().Implements(errorType) {
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return Nil, nil
	}
	return goValue(out[0].Interface()), nil
}

// goValue maps a Go result back onto the runtime value set. Types with no
// counterpart are shown through their default formatting.
func goValue(x any) Value {
	if x == nil {
		return Nil
	}
	if v, ok := x.(Value); ok {
		return v
	}
	rv := goreflect.ValueOf(x)
	switch rv.Kind() {
	case goreflect.Float32, goreflect.Float64:
		return Number(rv.Float())
	case goreflect.Int, goreflect.Int8, goreflect.Int16, goreflect.Int32, goreflect.Int64:
		return Number(float64(rv.Int()))
	case goreflect.Uint, goreflect.Uint8, goreflect.Uint16, goreflect.Uint32, goreflect.Uint64:
		return Number(float64(rv.Uint()))
	case goreflect.String:
		return String(rv.String())
	case goreflect.Bool:
		return Boolean(rv.Bool())
	case goreflect.Ptr, goreflect.Interface, goreflect.Map, goreflect.Slice:
		if rv.IsNil() {
			return Nil
		}
	}
	if s, ok := x.(fmt.Stringer); ok {
		return String(s.String())
	}
	return String(fmt.Sprint(x))
}
