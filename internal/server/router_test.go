package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"calcpad/internal/calculator"
	"calcpad/internal/observability"
	"calcpad/internal/session"
	"calcpad/internal/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	observability.Logger = zap.NewNop()
	if err := calculator.InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}
	return NewRouter(session.NewManager(session.NewMemoryStore()))
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterCalculatorAddSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	router := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/add", `{"a":2,"b":3}`)
	w := testutil.ExecuteRequest(req, router)

	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	requestID := w.Result().Header.Get("X-Request-ID")
	if requestID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	testutil.DecodeJSONBody(t, w.Result().Body, &payload)

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}

	if got, ok := payload["result"].(float64); !ok || got != 5 {
		t.Fatalf("expected result 5, got %#v", payload["result"])
	}
}

func TestNewRouterServesSessions(t *testing.T) {
	router := newRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/sessions", nil), router)
	testutil.CheckResponseCode(t, http.StatusCreated, w.Code)

	var created calculator.SessionResponse
	testutil.DecodeJSONBody(t, w.Body, &created)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/sessions/"+created.ID+"/events", calculator.EventsRequest{
		Keys: []string{"7", "*", "6", "Enter"},
	})
	w = testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var got calculator.SessionResponse
	testutil.DecodeJSONBody(t, w.Body, &got)
	if got.Display != "42" {
		t.Fatalf("expected display %q, got %q", "42", got.Display)
	}
}

func TestNewRouterExposesPrometheusMetrics(t *testing.T) {
	router := newRouter(t)

	_ = testutil.ExecuteRequest(httptest.NewRequest(http.MethodPost, "/sessions", nil), router)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/metrics", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	if !strings.Contains(w.Body.String(), "calcpad_sessions_created_total") {
		t.Fatal("expected calcpad_sessions_created_total in /metrics output")
	}
}

func TestNewRouterUnknownRoute(t *testing.T) {
	router := newRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/nope", nil), router)
	testutil.CheckResponseCode(t, http.StatusNotFound, w.Code)
}
