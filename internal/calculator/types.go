package calculator

import "calcpad/internal/keypad"

// CalcRequest is the JSON body for binary operations (add, subtract, multiply, divide).
type CalcRequest struct {
	A float64 `json:"a"`
	B float64 `json:"b"`
}

// CalcResponse is the JSON response for the binary operation endpoints.
type CalcResponse struct {
	Operation string  `json:"operation"`
	A         float64 `json:"a"`
	B         float64 `json:"b"`
	Result    float64 `json:"result"`
}

// ChainStep describes a single step in a chained calculation.
type ChainStep struct {
	Op    string  `json:"op"`    // operator name or keypad symbol
	Value float64 `json:"value"` // the operand applied with the running total
}

// ChainRequest is the JSON body for POST /calculator/chain.
type ChainRequest struct {
	Initial float64     `json:"initial"`
	Steps   []ChainStep `json:"steps"`
}

// ChainResponse is the JSON response for POST /calculator/chain.
type ChainResponse struct {
	Initial float64       `json:"initial"`
	Steps   []ChainResult `json:"steps"`
	Result  float64       `json:"result"`
}

// ChainResult records one executed step.
type ChainResult struct {
	Op     string  `json:"op"`
	Value  float64 `json:"value"`
	Result float64 `json:"result"`
}

// EventsRequest is the JSON body for POST /sessions/{id}/events. Events are
// applied first, then keys, all as one batch.
type EventsRequest struct {
	Events []keypad.Event `json:"events,omitempty"`
	Keys   []string       `json:"keys,omitempty"`
}

// SessionResponse is the rendered view of one calculator session.
type SessionResponse struct {
	ID         string       `json:"id"`
	Display    string       `json:"display"`     // formatted for painting
	RawDisplay string       `json:"raw_display"` // the state's display text
	Phase      keypad.Phase `json:"phase"`
	Operator   string       `json:"operator,omitempty"` // symbol of the pending operator
	State      keypad.State `json:"state"`
}

// SessionListResponse is the JSON response for GET /sessions.
type SessionListResponse struct {
	Sessions []string `json:"sessions"`
}
