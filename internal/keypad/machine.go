package keypad

import (
	"errors"
	"fmt"
	"strings"
)

// Apply runs one transition. The error return is reserved for malformed
// events and internal inconsistencies; division by zero is part of the
// returned state, not an error.
func Apply(s State, ev Event) (State, error) {
	if err := ev.Validate(); err != nil {
		return s, err
	}

	s = s.Clone()

	switch ev.Kind {
	case KindDigit:
		return enterDigit(s, ev.Digit), nil
	case KindDecimal:
		return enterDecimal(s), nil
	case KindOperator:
		return pressOperator(s, ev.Operator)
	case KindEquals:
		return pressEquals(s)
	case KindClear:
		return NewState(), nil
	case KindBackspace:
		return backspace(s), nil
	}
	return s, fmt.Errorf("%w: kind %q", ErrInvalidEvent, string(ev.Kind))
}

// ApplyAll folds events over s, stopping at the first error.
func ApplyAll(s State, events ...Event) (State, error) {
	for i, ev := range events {
		next, err := Apply(s, ev)
		if err != nil {
			return s, fmt.Errorf("event %d: %w", i, err)
		}
		s = next
	}
	return s, nil
}

// beginEntry clears the display for a new number. Without a pending
// operator the shown result (or error) is abandoned, so the pending operand
// goes too.
func beginEntry(s State) State {
	if s.PendingOperator == OpNone {
		s.PendingOperand = nil
	}
	s.DisplayText = ""
	s.AwaitingFreshEntry = false
	s.DecimalEntered = false
	return s
}

func enterDigit(s State, d string) State {
	if s.AwaitingFreshEntry || s.IsError() {
		s = beginEntry(s)
	}
	if s.DisplayText == "0" || s.DisplayText == "" {
		s.DisplayText = d
	} else {
		s.DisplayText += d
	}
	return s
}

func enterDecimal(s State) State {
	if s.AwaitingFreshEntry || s.IsError() {
		s = beginEntry(s)
	}
	if s.DecimalEntered {
		return s
	}
	if s.DisplayText == "" {
		s.DisplayText = "0"
	}
	s.DisplayText += "."
	s.DecimalEntered = true
	return s
}

func pressOperator(s State, op Operator) (State, error) {
	if s.IsError() {
		return s, nil
	}

	switch {
	case s.PendingOperator != OpNone && !s.AwaitingFreshEntry:
		next, err := evaluatePending(s)
		if err != nil {
			return s, err
		}
		if next.IsError() {
			return next, nil
		}
		s = next
	case s.PendingOperator == OpNone:
		v, err := parseDisplay(s.DisplayText)
		if err != nil {
			return s, fmt.Errorf("parse display %q: %w", s.DisplayText, err)
		}
		s.PendingOperand = operand(v)
	}

	s.PendingOperator = op
	s.AwaitingFreshEntry = true
	s.DecimalEntered = strings.Contains(s.DisplayText, ".")
	return s, nil
}

func pressEquals(s State) (State, error) {
	if s.PendingOperand == nil || s.PendingOperator == OpNone {
		return s, nil
	}
	return evaluatePending(s)
}

// evaluatePending computes "pending operand <op> display" and leaves the
// result shown with no operator pending. DecimalEntered always mirrors the
// display; AwaitingFreshEntry keeps a following "." from appending to it.
func evaluatePending(s State) (State, error) {
	b, err := parseDisplay(s.DisplayText)
	if err != nil {
		return s, fmt.Errorf("parse display %q: %w", s.DisplayText, err)
	}

	result, err := Evaluate(s.PendingOperator, *s.PendingOperand, b)
	switch {
	case errors.Is(err, ErrDivisionByZero):
		return State{
			DisplayText:        DivisionByZeroText,
			AwaitingFreshEntry: true,
		}, nil
	case err != nil:
		return s, err
	}

	text := FormatNumber(result)
	return State{
		PendingOperand:     operand(result),
		DisplayText:        text,
		AwaitingFreshEntry: true,
		DecimalEntered:     strings.Contains(text, "."),
	}, nil
}

func backspace(s State) State {
	if s.AwaitingFreshEntry {
		return s
	}

	text := []rune(s.DisplayText)
	if len(text) > 0 {
		text = text[:len(text)-1]
	}
	s.DisplayText = string(text)
	if s.DisplayText == "" || s.DisplayText == "-" {
		s.DisplayText = "0"
	}
	s.DecimalEntered = strings.Contains(s.DisplayText, ".")
	return s
}
