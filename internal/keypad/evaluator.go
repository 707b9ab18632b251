package keypad

import (
	"errors"
	"fmt"
)

// Operator is one of the four binary operations on the keypad. The zero
// value means no operator is pending.
type Operator string

const (
	OpNone     Operator = ""
	OpAdd      Operator = "add"
	OpSubtract Operator = "subtract"
	OpMultiply Operator = "multiply"
	OpDivide   Operator = "divide"
)

var (
	// ErrDivisionByZero is the only user-facing arithmetic failure.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidOperator means a caller dispatched an operator that was never
	// validated. It indicates a bug, not bad user input.
	ErrInvalidOperator = errors.New("invalid operator")
)

// ParseOperator accepts an operator name ("add") or any of the keypad
// symbols for it ("+", "×", "÷" and their ASCII stand-ins).
func ParseOperator(s string) (Operator, error) {
	switch s {
	case "add", "+":
		return OpAdd, nil
	case "subtract", "-", "−":
		return OpSubtract, nil
	case "multiply", "*", "×", "x":
		return OpMultiply, nil
	case "divide", "/", "÷":
		return OpDivide, nil
	}
	return OpNone, fmt.Errorf("%w: %q", ErrInvalidOperator, s)
}

// Valid reports whether op is one of the four operations.
func (op Operator) Valid() bool {
	switch op {
	case OpAdd, OpSubtract, OpMultiply, OpDivide:
		return true
	}
	return false
}

// Symbol returns the keypad label for op.
func (op Operator) Symbol() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "−"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	}
	return ""
}

// Evaluate applies op to a and b with IEEE-754 double semantics.
func Evaluate(op Operator, a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, ErrDivisionByZero
		}
		return a / b, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidOperator, string(op))
}
