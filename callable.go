package lux

import "fmt"

// Callable is an invocable runtime value: a user function or a native.
type Callable interface {
	Value
	// Arity is the expected argument count; negative means any count.
	Arity() int
	Call(in *Interpreter, args []Value) (Value, error)
	String() string
}

// Function is a user-defined function paired with the environment that was
// active when its declaration executed.
type Function struct {
	Declaration *FunctionStmt
	Closure     *Environment
}

func (*Function) Kind() Kind { return KindCallable }

func (f *Function) Arity() int {
	return len(f.Declaration.Params)
}

func (f *Function) Name() string {
	if f.Declaration.Anonymous() {
		return ""
	}
	return f.Declaration.Name.Lexeme
}

func (f *Function) String() string {
	if f.Declaration.Anonymous() {
		return "<fn>"
	}
	return fmt.Sprintf("<fn %s>", f.Declaration.Name.Lexeme)
}

// Call runs the body in a fresh scope enclosed by the closure, never by the
// caller's scope. Missing arguments bind to Nil; surplus ones are ignored.
func (f *Function) Call(in *Interpreter, args []Value) (Value, error) {
	env := NewEnv(f.Closure)
	for i, param := range f.Declaration.Params {
		var arg Value = Nil
		if i < len(args) {
			arg = args[i]
		}
		env.Define(param.Lexeme, arg)
	}
	if !f.Declaration.Anonymous() {
		env.Define(f.Declaration.Name.Lexeme, f)
	}
	flow := in.executeBlock(f.Declaration.Body, env)
	if flow.Kind == FlowReturn && flow.Value != nil {
		return flow.Value, nil
	}
	return Nil, nil
}

// NativeFunc is the host implementation behind a Native.
type NativeFunc func(in *Interpreter, args []Value) (Value, error)

// Native is a built-in implemented in Go.
type Native struct {
	Name   string
	ArityN int
	Fn     NativeFunc
}

func (*Native) Kind() Kind { return KindCallable }

func (n *Native) Arity() int {
	return n.ArityN
}

func (n *Native) String() string {
	return fmt.Sprintf("<native fn %s>", n.Name)
}

func (n *Native) Call(in *Interpreter, args []Value) (Value, error) {
	v, err := n.Fn(in, args)
	if err != nil {
		return Nil, fmt.Errorf("%s: %w", n.Name, err)
	}
	if v == nil {
		return Nil, nil
	}
	return v, nil
}

var (
	_ Callable = (*Function)(nil)
	_ Callable = (*Native)(nil)
)
