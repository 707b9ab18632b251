package keypad

import (
	"errors"
	"fmt"
)

// ErrInvalidEvent is returned for events that no input source should ever
// produce: unknown kinds, non-digit digits, operators outside the keypad.
var ErrInvalidEvent = errors.New("invalid event")

// EventKind tags the variant carried by an Event.
type EventKind string

const (
	KindDigit     EventKind = "digit"
	KindDecimal   EventKind = "decimal"
	KindOperator  EventKind = "operator"
	KindEquals    EventKind = "equals"
	KindClear     EventKind = "clear"
	KindBackspace EventKind = "backspace"
)

// Event is one discrete keypad input. Digit is set only for KindDigit and
// Operator only for KindOperator.
type Event struct {
	Kind     EventKind `json:"type"`
	Digit    string    `json:"digit,omitempty"`
	Operator Operator  `json:"operator,omitempty"`
}

// Digit returns the event for pressing digit d (0-9).
func Digit(d int) Event {
	return Event{Kind: KindDigit, Digit: string(rune('0' + d))}
}

// Press returns the event for pressing op.
func Press(op Operator) Event {
	return Event{Kind: KindOperator, Operator: op}
}

func Decimal() Event   { return Event{Kind: KindDecimal} }
func Equals() Event    { return Event{Kind: KindEquals} }
func Clear() Event     { return Event{Kind: KindClear} }
func Backspace() Event { return Event{Kind: KindBackspace} }

// Validate checks that ev is well formed.
func (ev Event) Validate() error {
	switch ev.Kind {
	case KindDigit:
		if len(ev.Digit) != 1 || ev.Digit[0] < '0' || ev.Digit[0] > '9' {
			return fmt.Errorf("%w: digit %q", ErrInvalidEvent, ev.Digit)
		}
	case KindOperator:
		if !ev.Operator.Valid() {
			return fmt.Errorf("%w: %w: %q", ErrInvalidEvent, ErrInvalidOperator, string(ev.Operator))
		}
	case KindDecimal, KindEquals, KindClear, KindBackspace:
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalidEvent, string(ev.Kind))
	}
	return nil
}

func (ev Event) String() string {
	switch ev.Kind {
	case KindDigit:
		return ev.Digit
	case KindOperator:
		return ev.Operator.Symbol()
	}
	return string(ev.Kind)
}
