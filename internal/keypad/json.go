package keypad

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

type stateJSON struct {
	PendingOperand     json.RawMessage `json:"pending_operand,omitempty"`
	PendingOperator    Operator        `json:"pending_operator,omitempty"`
	DisplayText        string          `json:"display_text"`
	AwaitingFreshEntry bool            `json:"awaiting_fresh_entry"`
	DecimalEntered     bool            `json:"decimal_entered"`
}

// MarshalJSON encodes a finite pending operand as a JSON number and a
// non-finite one ("Infinity", "-Infinity", "NaN") as a string, since JSON
// numbers cannot carry them.
func (s State) MarshalJSON() ([]byte, error) {
	out := stateJSON{
		PendingOperator:    s.PendingOperator,
		DisplayText:        s.DisplayText,
		AwaitingFreshEntry: s.AwaitingFreshEntry,
		DecimalEntered:     s.DecimalEntered,
	}

	if s.PendingOperand != nil {
		v := *s.PendingOperand
		var err error
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out.PendingOperand, err = json.Marshal(FormatNumber(v))
		} else {
			out.PendingOperand, err = json.Marshal(v)
		}
		if err != nil {
			return nil, err
		}
	}

	return json.Marshal(out)
}

func (s *State) UnmarshalJSON(data []byte) error {
	var in stateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	*s = State{
		PendingOperator:    in.PendingOperator,
		DisplayText:        in.DisplayText,
		AwaitingFreshEntry: in.AwaitingFreshEntry,
		DecimalEntered:     in.DecimalEntered,
	}

	raw := in.PendingOperand
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	if raw[0] == '"' {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("pending operand %q: %w", text, err)
		}
		s.PendingOperand = operand(v)
		return nil
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}
	s.PendingOperand = operand(v)
	return nil
}
