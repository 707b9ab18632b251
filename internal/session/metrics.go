package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "calcpad",
		Name:      "sessions_created_total",
		Help:      "Calculator sessions created.",
	})

	eventsApplied = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "calcpad",
		Name:      "session_events_total",
		Help:      "Keypad events applied to sessions, by event kind.",
	}, []string{"kind"})

	divisionErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "calcpad",
		Name:      "session_division_errors_total",
		Help:      "Session events that ended in a division by zero.",
	})
)
