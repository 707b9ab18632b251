package keypad

import (
	"math"
	"strconv"
	"strings"
)

// DivisionByZeroText is shown in place of a result when a division by zero
// is attempted.
const DivisionByZeroText = "Error: Division by zero"

// State is the complete calculator state. Transitions never mutate a State
// in place; Apply returns the successor.
type State struct {
	PendingOperand     *float64 // nil until a first operand is captured
	PendingOperator    Operator
	DisplayText        string
	AwaitingFreshEntry bool // next digit replaces DisplayText
	DecimalEntered     bool // DisplayText contains "."
}

// NewState returns the power-on state: a "0" display and nothing pending.
func NewState() State {
	return State{DisplayText: "0"}
}

// Phase is the coarse state the controller is in. It is derived from the
// State fields and never stored.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseOperandEntered  Phase = "operand_entered"
	PhaseOperatorPending Phase = "operator_pending"
	PhaseResultShown     Phase = "result_shown"
	PhaseError           Phase = "error"
)

// Phase classifies s.
func (s State) Phase() Phase {
	switch {
	case s.IsError():
		return PhaseError
	case s.PendingOperator != OpNone:
		return PhaseOperatorPending
	case s.PendingOperand != nil:
		return PhaseResultShown
	case s.DisplayText != "0":
		return PhaseOperandEntered
	}
	return PhaseIdle
}

// IsError reports whether the display holds the division error text.
func (s State) IsError() bool {
	return s.DisplayText == DivisionByZeroText
}

// Clone returns a copy of s that shares no memory with it.
func (s State) Clone() State {
	if s.PendingOperand != nil {
		v := *s.PendingOperand
		s.PendingOperand = &v
	}
	return s
}

func operand(v float64) *float64 {
	return &v
}

// parseDisplay reads the display back as a number. A bare trailing
// separator ("3.") parses as the integer part.
func parseDisplay(text string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSuffix(text, "."), 64)
}

// FormatNumber renders v the way the display shows raw results: the shortest
// decimal that round-trips, switching to exponent form for very large or very
// small magnitudes.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
