package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/observability"
	"go-chi-calculator/internal/session"
	"go-chi-calculator/internal/session/memory"
	"go-chi-calculator/internal/testutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	observability.Logger = zap.NewNop()
	if err := calculator.InitMetrics(); err != nil {
		t.Fatalf("initializing calculator metrics: %v", err)
	}
	return NewRouter(session.NewManager(memory.NewStore()))
}

func TestNewRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/health", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	if body := w.Body.String(); body != "ok" {
		t.Fatalf("expected body %q, got %q", "ok", body)
	}
}

func TestNewRouterEvaluateSetsHeaderAndOmitsRequestIDInBody(t *testing.T) {
	router := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/calculator/evaluate", `{"previous":"2","current":"3","operation":"+"}`)
	w := testutil.ExecuteRequest(req, router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	requestID := w.Result().Header.Get("X-Request-ID")
	if _, err := uuid.Parse(requestID); err != nil {
		t.Fatalf("expected valid UUID in X-Request-ID, got %q: %v", requestID, err)
	}

	var payload map[string]any
	testutil.DecodeJSONBody(t, w.Result().Body, &payload)

	if _, ok := payload["request_id"]; ok {
		t.Fatal("did not expect request_id field in success JSON body")
	}
	if got := payload["result"]; got != "5" {
		t.Fatalf("expected result \"5\", got %#v", got)
	}
}

func TestNewRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	_ = testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/health", nil), router)

	w := testutil.ExecuteRequest(httptest.NewRequest(http.MethodGet, "/metrics", nil), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	body, _ := io.ReadAll(w.Body)
	if !strings.Contains(string(body), `calculator_http_requests_total{code="200",method="GET",route="/health"} 1`) {
		t.Fatalf("expected health request to be counted, got:\n%s", body)
	}
}

func TestNewRouterSessionFlow(t *testing.T) {
	router := newTestRouter(t)

	w := testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, "/calculator/sessions", nil), router)
	testutil.CheckResponseCode(t, http.StatusCreated, w.Code)

	var created calculator.StateResponse
	testutil.DecodeJSONBody(t, w.Body, &created)

	body := `{"actions":[{"kind":"AddDigit","payload":{"digit":"9"}},{"kind":"DeleteDigit"}]}`
	w = testutil.ExecuteRequest(testutil.NewJSONRequest(t, http.MethodPost, "/calculator/sessions/"+created.ID+"/actions", body), router)
	testutil.CheckResponseCode(t, http.StatusOK, w.Code)

	var resp calculator.StateResponse
	testutil.DecodeJSONBody(t, w.Body, &resp)
	if !resp.State.IsEmpty() {
		t.Fatalf("expected empty state after typing and deleting one digit, got %+v", resp.State)
	}
}
