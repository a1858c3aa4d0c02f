// Package observability records calculation spans in memory and exports
// calculation metrics to Prometheus.
//
// Spans are kept in a fixed-size ring so the debug endpoint can show the
// most recent calculations without an external collector.
package observability

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ═══════════════════════════════════════════════════════════════════════════
// Trace Spans
// ═══════════════════════════════════════════════════════════════════════════

// SpanStatus indicates success/failure.
type SpanStatus string

const (
	SpanOK    SpanStatus = "ok"
	SpanError SpanStatus = "error"
)

// Span is one traced calculation.
type Span struct {
	TraceID   string            `json:"trace_id"`
	SpanID    string            `json:"span_id"`
	ParentID  string            `json:"parent_id,omitempty"`
	Operation string            `json:"operation"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
	Duration  time.Duration     `json:"duration,omitempty"`
	Status    SpanStatus        `json:"status"`
	Attrs     map[string]string `json:"attrs,omitempty"`
}

// SetAttr sets an attribute on an open span.
func (s *Span) SetAttr(key, value string) {
	if s == nil {
		return
	}
	if s.Attrs == nil {
		s.Attrs = make(map[string]string)
	}
	s.Attrs[key] = value
}

// ─── Tracer ─────────────────────────────────────────────────────────────────

// Tracer keeps the most recent finished spans in a ring buffer.
type Tracer struct {
	mu      sync.Mutex
	ring    []Span
	next    int // slot for the next span
	full    bool
	enabled bool
}

// TracerConfig configures the tracer.
type TracerConfig struct {
	Enabled  bool
	MaxSpans int // ring size (default 1024)
}

// DefaultTracerConfig returns production defaults.
func DefaultTracerConfig() TracerConfig {
	return TracerConfig{Enabled: true, MaxSpans: 1024}
}

// NewTracer creates a tracer.
func NewTracer(cfg TracerConfig) *Tracer {
	if cfg.MaxSpans <= 0 {
		cfg.MaxSpans = DefaultTracerConfig().MaxSpans
	}
	return &Tracer{ring: make([]Span, cfg.MaxSpans), enabled: cfg.Enabled}
}

// StartSpan opens a span for operation. The returned context carries the
// span so nested calls become its children.
func (t *Tracer) StartSpan(ctx context.Context, operation string, attrs map[string]string) (context.Context, *Span) {
	if t == nil || !t.enabled {
		return ctx, &Span{Operation: operation}
	}
	span := &Span{
		TraceID:   TraceIDFromContext(ctx),
		SpanID:    uuid.NewString(),
		ParentID:  spanIDFromContext(ctx),
		Operation: operation,
		StartTime: time.Now(),
		Status:    SpanOK,
		Attrs:     attrs,
	}
	if span.TraceID == "" {
		span.TraceID = uuid.NewString()
		ctx = WithTraceID(ctx, span.TraceID)
	}
	return context.WithValue(ctx, spanIDKey, span.SpanID), span
}

// EndSpan closes span and records it.
func (t *Tracer) EndSpan(span *Span, err error) {
	if t == nil || !t.enabled || span == nil {
		return
	}
	span.EndTime = time.Now()
	span.Duration = span.EndTime.Sub(span.StartTime)
	if err != nil {
		span.Status = SpanError
		span.SetAttr("error", err.Error())
		SpanErrors.Inc()
	}
	SpansRecorded.Inc()

	t.mu.Lock()
	defer t.mu.Unlock()
	t.ring[t.next] = *span
	t.next = (t.next + 1) % len(t.ring)
	if t.next == 0 {
		t.full = true
	}
}

// Spans returns up to limit of the most recent spans, oldest first.
// limit ≤ 0 returns all of them.
func (t *Tracer) Spans(limit int) []Span {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	n := t.count()
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]Span, limit)
	for i := 0; i < limit; i++ {
		// newest span is at next-1; walk back limit-1-i slots
		idx := (t.next - limit + i + len(t.ring)) % len(t.ring)
		out[i] = t.ring[idx]
	}
	return out
}

// Trace returns every recorded span belonging to traceID, oldest first.
func (t *Tracer) Trace(traceID string) []Span {
	var out []Span
	for _, s := range t.Spans(0) {
		if s.TraceID == traceID {
			out = append(out, s)
		}
	}
	return out
}

// SpanCount returns the number of recorded spans.
func (t *Tracer) SpanCount() int {
	if t == nil {
		return 0
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.count()
}

// Reset clears all recorded spans.
func (t *Tracer) Reset() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.ring)
	t.next, t.full = 0, false
}

func (t *Tracer) count() int {
	if t.full {
		return len(t.ring)
	}
	return t.next
}

// ─── Context Helpers ────────────────────────────────────────────────────────

type contextKey string

const (
	traceIDKey contextKey = "asrar-trace-id"
	spanIDKey  contextKey = "asrar-span-id"
)

// WithTraceID returns a context with the given trace ID. The API uses the
// request ID so a request's spans share one trace.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey, traceID)
}

// TraceIDFromContext returns the trace ID carried by ctx, or "".
func TraceIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(traceIDKey).(string); ok {
		return v
	}
	return ""
}

func spanIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(spanIDKey).(string); ok {
		return v
	}
	return ""
}

// ═══════════════════════════════════════════════════════════════════════════
// Prometheus Metrics
// ═══════════════════════════════════════════════════════════════════════════

// ─── Calculation Metrics ────────────────────────────────────────────────────

// Calculations counts calculator calls by operation and outcome.
var Calculations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "asrar",
	Subsystem: "calc",
	Name:      "calculations_total",
	Help:      "Total calculations by operation and outcome (ok, invalid, error).",
}, []string{"operation", "outcome"})

// CalculationDuration tracks calculation latency.
var CalculationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "asrar",
	Subsystem: "calc",
	Name:      "duration_seconds",
	Help:      "Calculation latency in seconds.",
	Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
}, []string{"operation"})

// InvalidInputs counts rejected inputs by error kind.
var InvalidInputs = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "asrar",
	Subsystem: "calc",
	Name:      "invalid_inputs_total",
	Help:      "Total rejected inputs by kind.",
}, []string{"kind"})

// ─── Profile Cache Metrics ──────────────────────────────────────────────────

// CacheLookups counts profile cache lookups by result (hit, miss).
var CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "asrar",
	Subsystem: "cache",
	Name:      "lookups_total",
	Help:      "Total profile cache lookups by result.",
}, []string{"result"})

// ─── Result Metrics ─────────────────────────────────────────────────────────

// CompatibilityScores tracks the distribution of overall compatibility scores.
var CompatibilityScores = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "asrar",
	Subsystem: "compat",
	Name:      "overall_score",
	Help:      "Distribution of overall compatibility scores.",
	Buckets:   prometheus.LinearBuckets(10, 10, 10),
})

// BalanceSeverities counts balance results by severity band.
var BalanceSeverities = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "asrar",
	Subsystem: "balance",
	Name:      "results_total",
	Help:      "Total balance results by severity band.",
}, []string{"severity"})

// ─── Trace Metrics ──────────────────────────────────────────────────────────

// SpansRecorded tracks total spans recorded.
var SpansRecorded = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "asrar",
	Subsystem: "traces",
	Name:      "spans_recorded_total",
	Help:      "Total trace spans recorded.",
})

// SpanErrors tracks error spans.
var SpanErrors = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "asrar",
	Subsystem: "traces",
	Name:      "error_spans_total",
	Help:      "Total trace spans with error status.",
})
