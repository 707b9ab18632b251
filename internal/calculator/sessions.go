package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"calcpad/internal/display"
	"calcpad/internal/handlers"
	"calcpad/internal/keypad"
	"calcpad/internal/observability"
	"calcpad/internal/session"
)

const (
	// MaxEventsBody bounds a POST /sessions/{id}/events body in bytes.
	MaxEventsBody = 64 << 10
	// MaxBatchEvents bounds the events plus keys accepted in one request.
	MaxBatchEvents = 256
)

var (
	errUnknownKey    = errors.New("unknown key")
	errBatchTooLarge = fmt.Errorf("batch exceeds %d events", MaxBatchEvents)
)

// SessionHandler serves keypad sessions: each session is one calculator
// whose state lives in the session store.
type SessionHandler struct {
	sessions *session.Manager
}

// Create handles POST /sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := h.start(r, "create")
	defer span.End()

	sess, err := h.sessions.Create(ctx)
	if err != nil {
		h.fail(ctx, span, logger, "create", err, w)
		return
	}

	span.SetAttributes(attribute.String("session.id", sess.ID))
	span.SetStatus(codes.Ok, "")
	logger.Info("session created", zap.String("session_id", sess.ID))

	handlers.WriteJSON(w, http.StatusCreated, view(sess))
}

// List handles GET /sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := h.start(r, "list")
	defer span.End()

	ids, err := h.sessions.List(ctx)
	if err != nil {
		h.fail(ctx, span, logger, "list", err, w)
		return
	}

	span.SetAttributes(attribute.Int("session.count", len(ids)))
	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, SessionListResponse{Sessions: ids})
}

// Get handles GET /sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := h.start(r, "get")
	defer span.End()

	sess, err := h.sessions.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(ctx, span, logger, "get", err, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, view(sess))
}

// Delete handles DELETE /sessions/{id}
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := h.start(r, "delete")
	defer span.End()

	id := chi.URLParam(r, "id")
	if err := h.sessions.Delete(ctx, id); err != nil {
		h.fail(ctx, span, logger, "delete", err, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	logger.Info("session deleted", zap.String("session_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// Clear handles POST /sessions/{id}/clear
func (h *SessionHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := h.start(r, "clear")
	defer span.End()

	sess, err := h.sessions.Reset(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(ctx, span, logger, "clear", err, w)
		return
	}

	eventsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(keypad.KindClear))))
	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, view(sess))
}

// Events handles POST /sessions/{id}/events. The whole batch of events and
// keys is applied atomically: one rejected input leaves the session as it was.
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := h.start(r, "events")
	defer span.End()

	var req EventsRequest
	body := http.MaxBytesReader(w, r.Body, MaxEventsBody)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			observability.RecordError(ctx, span, logger, errorCounter, "events", "request body too large", err, http.StatusRequestEntityTooLarge, w)
			return
		}
		observability.RecordError(ctx, span, logger, errorCounter, "events", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	events, err := req.toEvents()
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "events", err.Error(), err, http.StatusBadRequest, w)
		return
	}

	span.SetAttributes(attribute.Int("session.events", len(events)))

	sess, err := h.sessions.Dispatch(ctx, chi.URLParam(r, "id"), events...)
	if err != nil {
		h.fail(ctx, span, logger, "events", err, w)
		return
	}

	for _, ev := range events {
		eventsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(ev.Kind))))
	}

	span.SetAttributes(
		attribute.String("calculator.display", sess.State.DisplayText),
		attribute.String("calculator.phase", string(sess.State.Phase())),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("session events applied",
		zap.String("session_id", sess.ID),
		zap.Int("events", len(events)),
		zap.String("display", sess.State.DisplayText),
		zap.String("request_id", observability.RequestIDFromContext(ctx)),
	)

	handlers.WriteJSON(w, http.StatusOK, view(sess))
}

func (req EventsRequest) toEvents() ([]keypad.Event, error) {
	if len(req.Events)+len(req.Keys) > MaxBatchEvents {
		return nil, errBatchTooLarge
	}

	events := make([]keypad.Event, 0, len(req.Events)+len(req.Keys))
	events = append(events, req.Events...)

	for _, key := range req.Keys {
		ev, ok := keypad.FromKey(key)
		if !ok {
			return nil, fmt.Errorf("%w: %q", errUnknownKey, key)
		}
		events = append(events, ev)
	}

	if len(events) == 0 {
		return nil, errors.New("no events provided")
	}
	return events, nil
}

func (h *SessionHandler) start(r *http.Request, opName string) (context.Context, trace.Span, *zap.Logger) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)

	attrs := []attribute.KeyValue{
		attribute.String("calculator.operation", "session."+opName),
		attribute.String("request.id", observability.RequestIDFromContext(ctx)),
	}
	if id := chi.URLParam(r, "id"); id != "" {
		attrs = append(attrs, attribute.String("session.id", id))
	}

	ctx, span := tracer.Start(ctx, "calculator.session."+opName, trace.WithAttributes(attrs...))
	return ctx, span, logger
}

// fail maps manager errors onto HTTP statuses.
func (h *SessionHandler) fail(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, err error, w http.ResponseWriter) {
	status, msg := http.StatusInternalServerError, "session store failure"
	switch {
	case errors.Is(err, session.ErrNotFound):
		status, msg = http.StatusNotFound, session.ErrNotFound.Error()
	case errors.Is(err, keypad.ErrInvalidEvent), errors.Is(err, keypad.ErrInvalidOperator):
		status, msg = http.StatusBadRequest, err.Error()
	}
	observability.RecordError(ctx, span, logger, errorCounter, "session."+opName, msg, err, status, w)
}

func view(sess session.Session) SessionResponse {
	return SessionResponse{
		ID:         sess.ID,
		Display:    display.Format(sess.State.DisplayText),
		RawDisplay: sess.State.DisplayText,
		Phase:      sess.State.Phase(),
		Operator:   sess.State.PendingOperator.Symbol(),
		State:      sess.State,
	}
}
