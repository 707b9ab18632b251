package session

import (
	"context"
	"errors"

	"calcpad/internal/keypad"
)

// ErrNotFound is returned when a session ID is not in the store.
var ErrNotFound = errors.New("session not found")

// Store persists one calculator state per session.
type Store interface {
	// Save writes state for id, replacing any previous value.
	Save(ctx context.Context, id string, state keypad.State) error

	// Load returns the state for id, or ErrNotFound.
	Load(ctx context.Context, id string) (keypad.State, error)

	// Delete removes id. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of live sessions in no particular order.
	List(ctx context.Context) ([]string, error)
}
