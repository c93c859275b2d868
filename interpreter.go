package lux

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const DefaultMaxCallDepth = 2048

// FlowKind tells statement execution whether to continue or unwind.
type FlowKind int

const (
	FlowNormal FlowKind = iota
	FlowReturn
)

// ControlFlow is returned by every statement execution. A FlowReturn travels
// up through blocks, ifs and loops until a function call unwraps it.
type ControlFlow struct {
	Kind  FlowKind
	Value Value
}

var normal = ControlFlow{Kind: FlowNormal}

// Interpreter is a tree-walking evaluator. It is not safe for concurrent use;
// run one interpreter per goroutine.
type Interpreter struct {
	globals  *Environment
	env      *Environment
	stdout   io.Writer
	reporter Reporter
	sink     Reporter
	logger   *slog.Logger
	natives  *NativeRegistry
	maxDepth int
	depth    int
}

type Option func(*Interpreter)

// WithStdout redirects print/println output.
func WithStdout(w io.Writer) Option {
	return func(in *Interpreter) {
		in.stdout = w
	}
}

// WithReporter sets the diagnostic sink. Run always collects diagnostics for
// its return value in addition to this sink.
func WithReporter(r Reporter) Option {
	return func(in *Interpreter) {
		in.reporter = r
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(in *Interpreter) {
		in.logger = logger
	}
}

// WithMaxCallDepth bounds nested calls; zero or less disables the guard.
func WithMaxCallDepth(n int) Option {
	return func(in *Interpreter) {
		in.maxDepth = n
	}
}

// WithNatives replaces the default native table.
func WithNatives(reg *NativeRegistry) Option {
	return func(in *Interpreter) {
		in.natives = reg
	}
}

func NewInterpreter(opts ...Option) *Interpreter {
	in := &Interpreter{
		stdout:   os.Stdout,
		reporter: NewWriterReporter(os.Stderr),
		maxDepth: DefaultMaxCallDepth,
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.logger == nil {
		in.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if in.natives == nil {
		in.natives = DefaultNatives()
	}
	in.globals = NewEnv(nil)
	in.natives.Install(in.globals)
	in.env = in.globals
	in.sink = in.reporter
	return in
}

// Run executes source in a fresh interpreter built from opts.
func Run(source string, opts ...Option) error {
	return NewInterpreter(opts...).Run(source)
}

// Globals exposes the outermost scope.
func (in *Interpreter) Globals() *Environment {
	return in.globals
}

// Stdout is where print/println write.
func (in *Interpreter) Stdout() io.Writer {
	return in.stdout
}

// Run scans, parses and executes source against this interpreter's globals,
// so successive runs share state. It returns a *MultiError holding every
// diagnostic reported, or nil.
func (in *Interpreter) Run(source string) error {
	return in.RunContext(context.Background(), source)
}

func (in *Interpreter) RunContext(ctx context.Context, source string) error {
	collector := &CollectingReporter{}
	reporter := MultiReporter{collector, in.reporter}

	tokens := Scan(source, reporter)
	in.logger.DebugContext(ctx, "scanned source", slog.Int("tokens", len(tokens)), slog.Int("diagnostics", collector.Len()))

	parser := NewParser(tokens, reporter)
	statements := parser.Parse()
	in.logger.DebugContext(ctx, "parsed program", slog.Int("statements", len(statements)), slog.Int("syntax_errors", parser.Errors()))

	if len(statements) > 0 {
		in.logger.DebugContext(ctx, "executing")
		previous := in.sink
		in.sink = reporter
		in.Interpret(statements)
		in.sink = previous
	}
	return diagnosticsError(collector.Diagnostics())
}

// Interpret executes statements in order. A top-level return ends the run.
func (in *Interpreter) Interpret(statements []Stmt) {
	defer func() {
		if r := recover(); r != nil {
			in.env = in.globals
			in.depth = 0
			in.runtimeError(0, "internal error: %v", r)
		}
	}()
	for _, stmt := range statements {
		if flow := in.execute(stmt); flow.Kind == FlowReturn {
			return
		}
	}
}

// Evaluate evaluates a single expression in the current scope.
func (in *Interpreter) Evaluate(expr Expr) Value {
	return in.evaluate(expr)
}

func (in *Interpreter) runtimeError(line int, format string, args ...any) {
	in.sink.Report(Diagnostic{Phase: PhaseRuntime, Line: line, Message: fmt.Sprintf(format, args...)})
}

func (in *Interpreter) execute(stmt Stmt) ControlFlow {
	switch s := stmt.(type) {
	case *ExpressionStmt:
		in.evaluate(s.Expression)
	case *VarStmt:
		var value Value = Nil
		if s.Initializer != nil {
			value = in.evaluate(s.Initializer)
		}
		in.env.Define(s.Name.Lexeme, value)
	case *IfStmt:
		if in.condition(in.evaluate(s.Condition), s.Keyword.Line) {
			return in.execute(s.Then)
		}
		if s.Else != nil {
			return in.execute(s.Else)
		}
	case *WhileStmt:
		for in.condition(in.evaluate(s.Condition), s.Keyword.Line) {
			if flow := in.execute(s.Body); flow.Kind == FlowReturn {
				return flow
			}
		}
	case *BlockStmt:
		return in.executeBlock(s.Statements, NewEnv(in.env))
	case *FunctionStmt:
		in.env.Define(s.Name.Lexeme, &Function{Declaration: s, Closure: in.env})
	case *ReturnStmt:
		var value Value = Nil
		if s.Value != nil {
			value = in.evaluate(s.Value)
		}
		return ControlFlow{Kind: FlowReturn, Value: value}
	}
	return normal
}

// executeBlock runs statements with env as the current scope and always
// restores the previous scope, whether the block finishes, returns or panics.
func (in *Interpreter) executeBlock(statements []Stmt, env *Environment) ControlFlow {
	previous := in.env
	in.env = env
	defer func() {
		in.env = previous
	}()
	for _, stmt := range statements {
		if flow := in.execute(stmt); flow.Kind == FlowReturn {
			return flow
		}
	}
	return normal
}

func (in *Interpreter) evaluate(expr Expr) Value {
	switch e := expr.(type) {
	case *Literal:
		if e.Value == nil {
			return Nil
		}
		return e.Value
	case *Grouping:
		return in.evaluate(e.Expression)
	case *Unary:
		return in.unary(e)
	case *Binary:
		return in.binary(e)
	case *Ternary:
		if in.condition(in.evaluate(e.Condition), e.Question.Line) {
			return in.evaluate(e.Then)
		}
		return in.evaluate(e.Else)
	case *Logical:
		return in.logical(e)
	case *Variable:
		value, err := in.env.Get(e.Name.Lexeme)
		if err != nil {
			in.runtimeError(e.Name.Line, "Variable not found: %s", e.Name.Lexeme)
			return Nil
		}
		return value
	case *Assign:
		value := in.evaluate(e.Value)
		if err := in.env.Assign(e.Name.Lexeme, value); err != nil {
			in.runtimeError(e.Name.Line, "Assignment failed on %s: undefined variable", e.Name.Lexeme)
		}
		return value
	case *Call:
		return in.call(e)
	case *Lambda:
		return &Function{Declaration: e.Declaration, Closure: in.env}
	}
	return Nil
}

// condition applies the Boolean-only truthiness rule. Anything else is
// reported and read as false.
func (in *Interpreter) condition(v Value, line int) bool {
	if b, ok := v.(Boolean); ok {
		return bool(b)
	}
	in.runtimeError(line, "Condition must be a Boolean, got %s", kindOf(v))
	return false
}

func (in *Interpreter) logical(e *Logical) Value {
	left := in.evaluate(e.Left)
	truth := in.condition(left, e.Operator.Line)
	if _, ok := left.(Boolean); !ok {
		left = Boolean(false)
	}
	if e.Operator.Type == OR {
		if truth {
			return left
		}
	} else if !truth {
		return left
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) call(e *Call) Value {
	callee := in.evaluate(e.Callee)
	args := make([]Value, 0, len(e.Arguments))
	for _, arg := range e.Arguments {
		args = append(args, in.evaluate(arg))
	}

	fn, ok := callee.(Callable)
	if !ok {
		in.runtimeError(e.Paren.Line, "Can only call functions and natives, got %s", kindOf(callee))
		return Nil
	}
	if arity := fn.Arity(); arity >= 0 && arity != len(args) {
		in.runtimeError(e.Paren.Line, "Expected %d arguments but got %d", arity, len(args))
	}
	if in.maxDepth > 0 && in.depth >= in.maxDepth {
		in.runtimeError(e.Paren.Line, "Stack overflow: maximum call depth %d exceeded", in.maxDepth)
		return Nil
	}

	in.depth++
	defer func() {
		in.depth--
	}()
	result, err := fn.Call(in, args)
	if err != nil {
		in.runtimeError(e.Paren.Line, "%v", err)
		return Nil
	}
	return result
}
