package calculator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-chi-calculator/internal/handlers"
	"go-chi-calculator/internal/observability"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Sessions is the session service the HTTP handlers drive.
type Sessions interface {
	Create(ctx context.Context) (string, State, error)
	Get(ctx context.Context, sessionID string) (State, error)
	Dispatch(ctx context.Context, sessionID string, actions ...Action) (State, error)
	Delete(ctx context.Context, sessionID string) error
	List(ctx context.Context) ([]string, error)
}

// Handler serves the calculator HTTP API.
type Handler struct {
	sessions Sessions
}

// NewHandler creates a Handler backed by sessions.
func NewHandler(sessions Sessions) *Handler {
	return &Handler{sessions: sessions}
}

// ---------------------------------------------------------------------------
// Stateless endpoints
// ---------------------------------------------------------------------------

// Evaluate handles POST /calculator/evaluate.
func (h *Handler) Evaluate(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.evaluate")
	defer span.End()

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "invalid request body", err, http.StatusBadRequest, w)
		return
	}

	op, ok := ParseOperation(req.Operation)
	if !ok {
		observability.RecordError(ctx, span, logger, errorCounter, "evaluate", "invalid operation", fmt.Errorf("operation %q", req.Operation), http.StatusBadRequest, w)
		return
	}

	result := Compute(req.Previous, req.Current, op)

	evaluationsCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", string(op)),
		attribute.String("outcome", outcome(result)),
	))
	span.SetAttributes(
		attribute.String("calculator.operation", string(op)),
		attribute.String("calculator.result", result),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("evaluation completed",
		zap.String("previous", req.Previous),
		zap.String("operation", string(op)),
		zap.String("current", req.Current),
		zap.String("result", result),
	)

	display := ""
	if result != "" {
		display = FormatOperand(result)
	}
	handlers.WriteJSON(w, http.StatusOK, EvaluateResponse{
		Operation: string(op),
		Result:    result,
		Display:   display,
	})
}

// Replay handles POST /calculator/replay: it folds the given actions over
// the empty state and returns the final state without storing anything.
func (h *Handler) Replay(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.replay")
	defer span.End()

	actions, err := decodeActions(r.Body)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "replay", "invalid actions", err, http.StatusBadRequest, w)
		return
	}

	state := State{}
	for i, a := range actions {
		state = applyTraced(ctx, i, state, a, logger)
	}
	span.SetAttributes(attribute.Int("calculator.actions", len(actions)))
	span.SetStatus(codes.Ok, "")

	handlers.WriteJSON(w, http.StatusOK, newStateResponse("", state))
}

// ---------------------------------------------------------------------------
// Session endpoints
// ---------------------------------------------------------------------------

// CreateSession handles POST /calculator/sessions.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.session.create")
	defer span.End()

	id, state, err := h.sessions.Create(ctx)
	if err != nil {
		h.sessionError(ctx, span, logger, "create", err, w)
		return
	}

	span.SetAttributes(attribute.String("calculator.session_id", id))
	span.SetStatus(codes.Ok, "")
	logger.Info("session created", zap.String("session_id", id))

	w.Header().Set("Location", "/calculator/sessions/"+id)
	handlers.WriteJSON(w, http.StatusCreated, newStateResponse(id, state))
}

// ListSessions handles GET /calculator/sessions.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.session.list")
	defer span.End()

	ids, err := h.sessions.List(ctx)
	if err != nil {
		h.sessionError(ctx, span, logger, "list", err, w)
		return
	}
	if ids == nil {
		ids = []string{}
	}

	span.SetAttributes(attribute.Int("calculator.sessions", len(ids)))
	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, ListResponse{Sessions: ids})
}

// GetSession handles GET /calculator/sessions/{id}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.session.get")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("calculator.session_id", id))

	state, err := h.sessions.Get(ctx, id)
	if err != nil {
		h.sessionError(ctx, span, logger, "get", err, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	handlers.WriteJSON(w, http.StatusOK, newStateResponse(id, state))
}

// Dispatch handles POST /calculator/sessions/{id}/actions.
func (h *Handler) Dispatch(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.session.dispatch")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("calculator.session_id", id))

	actions, err := decodeActions(r.Body)
	if err != nil {
		observability.RecordError(ctx, span, logger, errorCounter, "dispatch", "invalid actions", err, http.StatusBadRequest, w)
		return
	}

	start := time.Now()
	state, err := h.sessions.Dispatch(ctx, id, actions...)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	if err != nil {
		h.sessionError(ctx, span, logger, "dispatch", err, w)
		return
	}

	dispatchHistogram.Record(ctx, elapsed)
	for _, a := range actions {
		recordAction(ctx, a, logger)
	}

	span.AddEvent("dispatch.complete", trace.WithAttributes(
		attribute.Int("actions", len(actions)),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetStatus(codes.Ok, "")

	logger.Info("actions dispatched",
		zap.String("session_id", id),
		zap.Int("actions", len(actions)),
		zap.Float64("duration_ms", elapsed),
	)

	handlers.WriteJSON(w, http.StatusOK, newStateResponse(id, state))
}

// DeleteSession handles DELETE /calculator/sessions/{id}.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	ctx, span, logger := startSpan(r, "calculator.session.delete")
	defer span.End()

	id := chi.URLParam(r, "id")
	span.SetAttributes(attribute.String("calculator.session_id", id))

	if err := h.sessions.Delete(ctx, id); err != nil {
		h.sessionError(ctx, span, logger, "delete", err, w)
		return
	}

	span.SetStatus(codes.Ok, "")
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func startSpan(r *http.Request, name string) (context.Context, trace.Span, *zap.Logger) {
	ctx, span := tracer.Start(r.Context(), name,
		trace.WithAttributes(
			attribute.String("request.id", observability.RequestIDFromContext(r.Context())),
		),
	)
	return ctx, span, observability.RequestLogger(ctx)
}

func (h *Handler) sessionError(ctx context.Context, span trace.Span, logger *zap.Logger, opName string, err error, w http.ResponseWriter) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		observability.RecordError(ctx, span, logger, errorCounter, opName, "session not found", err, http.StatusNotFound, w)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		observability.RecordError(ctx, span, logger, errorCounter, opName, "request canceled", err, http.StatusServiceUnavailable, w)
	default:
		observability.RecordError(ctx, span, logger, errorCounter, opName, "session store failure", err, http.StatusInternalServerError, w)
	}
}

// applyTraced reduces one action inside a child span.
func applyTraced(ctx context.Context, i int, s State, a Action, logger *zap.Logger) State {
	ctx, span := tracer.Start(ctx, "calculator.action",
		trace.WithAttributes(
			attribute.Int("calculator.action.index", i),
			attribute.String("calculator.action.kind", string(a.Kind())),
		),
	)
	defer span.End()

	next := Reduce(s, a)
	recordAction(ctx, a, logger)

	if cur, ok := next.Current(); ok {
		span.SetAttributes(attribute.String("calculator.current_operand", cur))
	}
	span.SetStatus(codes.Ok, "")
	return next
}

func recordAction(ctx context.Context, a Action, logger *zap.Logger) {
	kind := string(a.Kind())
	if _, ok := a.(Unknown); ok {
		logger.Warn("ignoring unknown action kind", zap.String("kind", kind))
		kind = "unknown"
	}
	actionsCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
