package lux

// Operator errors are reported and never abort evaluation. A failed unary or
// arithmetic operator yields its (left) operand unchanged; a failed
// comparison yields false.

func (in *Interpreter) unary(e *Unary) Value {
	right := in.evaluate(e.Right)
	switch e.Operator.Type {
	case MINUS:
		if n, ok := right.(Number); ok {
			return -n
		}
		in.runtimeError(e.Operator.Line, "Type Mismatch! Operand of '-' must be a Number, got %s", kindOf(right))
	case BANG:
		if b, ok := right.(Boolean); ok {
			return !b
		}
		in.runtimeError(e.Operator.Line, "Type Mismatch! Operand of '!' must be a Boolean, got %s", kindOf(right))
	}
	return right
}

func (in *Interpreter) binary(e *Binary) Value {
	left := in.evaluate(e.Left)
	right := in.evaluate(e.Right)
	op := e.Operator

	switch op.Type {
	case PLUS:
		switch l := left.(type) {
		case Number:
			if r, ok := right.(Number); ok {
				return l + r
			}
		case String:
			return l + String(Display(right))
		}
		in.runtimeError(op.Line, "Type Mismatch! Cannot add %s and %s", kindOf(left), kindOf(right))
		return left

	case MINUS, STAR, SLASH:
		l, r, ok := in.numbers(op, left, right)
		if !ok {
			return left
		}
		switch op.Type {
		case MINUS:
			return l - r
		case STAR:
			return l * r
		default:
			return l / r
		}

	case GREATER, GREATER_EQUAL, LESS, LESS_EQUAL:
		l, r, ok := in.numbers(op, left, right)
		if !ok {
			return Boolean(false)
		}
		switch op.Type {
		case GREATER:
			return Boolean(l > r)
		case GREATER_EQUAL:
			return Boolean(l >= r)
		case LESS:
			return Boolean(l < r)
		default:
			return Boolean(l <= r)
		}

	case EQUAL_EQUAL, BANG_EQUAL:
		equal, ok := valuesEqual(left, right)
		if !ok {
			in.runtimeError(op.Line, "Type Mismatch! Cannot compare %s with %s", kindOf(left), kindOf(right))
		}
		if op.Type == BANG_EQUAL {
			return Boolean(!equal)
		}
		return Boolean(equal)
	}

	in.runtimeError(op.Line, "Unknown operator '%s'", op.Lexeme)
	return left
}

func (in *Interpreter) numbers(op Token, left, right Value) (Number, Number, bool) {
	l, lok := left.(Number)
	r, rok := right.(Number)
	if !lok || !rok {
		in.runtimeError(op.Line, "Type Mismatch! Operands of '%s' must be Numbers, got %s and %s", op.Lexeme, kindOf(left), kindOf(right))
		return 0, 0, false
	}
	return l, r, true
}
