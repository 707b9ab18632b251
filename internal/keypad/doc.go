// Package keypad holds the calculator core: the arithmetic evaluator and the
// input state machine driven by keypad events.
//
// State is a plain value. Apply takes the current State and one Event and
// returns the successor, so drivers (HTTP sessions, the terminal keypad) can
// store, copy and replay states freely.
package keypad
