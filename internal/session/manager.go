package session

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"calcpad/internal/keypad"
)

// Session is a calculator state bound to an ID.
type Session struct {
	ID    string       `json:"id"`
	State keypad.State `json:"state"`
}

// Manager runs keypad events against stored sessions. Events for one session
// are applied strictly one batch at a time; different sessions proceed in
// parallel.
type Manager struct {
	store  Store
	locks  *keyedMutex
	logger *zap.Logger
	newID  func() string
}

type ManagerOption func(*Manager)

func WithLogger(logger *zap.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithIDGenerator replaces the uuid session ID source.
func WithIDGenerator(newID func() string) ManagerOption {
	return func(m *Manager) {
		m.newID = newID
	}
}

func NewManager(store Store, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		locks:  newKeyedMutex(),
		logger: zap.NewNop(),
		newID:  func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a session in the power-on state.
func (m *Manager) Create(ctx context.Context) (Session, error) {
	sess := Session{ID: m.newID(), State: keypad.NewState()}

	if err := m.store.Save(ctx, sess.ID, sess.State); err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}

	sessionsCreated.Inc()
	m.logger.Debug("session created", zap.String("session_id", sess.ID))
	return sess, nil
}

func (m *Manager) Get(ctx context.Context, id string) (Session, error) {
	state, err := m.store.Load(ctx, id)
	if err != nil {
		return Session{}, err
	}
	return Session{ID: id, State: state}, nil
}

// Dispatch applies events in order and saves the result. The batch is
// all-or-nothing: if any event is rejected the stored state is unchanged.
func (m *Manager) Dispatch(ctx context.Context, id string, events ...keypad.Event) (Session, error) {
	unlock := m.locks.Lock(id)
	defer unlock()

	state, err := m.store.Load(ctx, id)
	if err != nil {
		return Session{}, err
	}

	for i, ev := range events {
		next, err := keypad.Apply(state, ev)
		if err != nil {
			return Session{}, fmt.Errorf("session %s event %d: %w", id, i, err)
		}
		if next.IsError() && !state.IsError() {
			divisionErrors.Inc()
		}
		state = next
	}

	if err := m.store.Save(ctx, id, state); err != nil {
		return Session{}, err
	}

	for _, ev := range events {
		eventsApplied.WithLabelValues(string(ev.Kind)).Inc()
	}

	m.logger.Debug("session events applied",
		zap.String("session_id", id),
		zap.Int("events", len(events)),
		zap.String("display", state.DisplayText),
		zap.String("phase", string(state.Phase())),
	)

	return Session{ID: id, State: state}, nil
}

// Reset is Dispatch with a single clear event.
func (m *Manager) Reset(ctx context.Context, id string) (Session, error) {
	return m.Dispatch(ctx, id, keypad.Clear())
}

// Delete removes a session, returning ErrNotFound if it does not exist.
func (m *Manager) Delete(ctx context.Context, id string) error {
	unlock := m.locks.Lock(id)
	defer unlock()

	if _, err := m.store.Load(ctx, id); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return err
	}

	m.logger.Debug("session deleted", zap.String("session_id", id))
	return nil
}

// List returns live session IDs in sorted order.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	ids, err := m.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}
