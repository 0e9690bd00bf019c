// Package observe holds the OpenTelemetry metric instruments of the service
// and the Prometheus exporter bridge that serves them at /metrics.
//
// Tests should build Metrics with NewMetrics over a ManualReader or a noop
// MeterProvider instead of the global one.
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/heartmarshall/langcoach-backend/internal/domain"
)

const meterName = "github.com/heartmarshall/langcoach-backend"

// Outcome labels for analysis metrics.
const (
	OutcomeOK          = "ok"
	OutcomeInvalid     = "invalid"
	OutcomeUnavailable = "unavailable"
)

// Metrics holds all metric instruments. Safe for concurrent use.
type Metrics struct {
	// AnalyzeDuration tracks end-to-end feedback analysis latency.
	// Attributes: language, outcome.
	AnalyzeDuration metric.Float64Histogram

	// LLMDuration tracks model call latency. Attributes: backend, status.
	LLMDuration metric.Float64Histogram

	// Corrections counts kept corrections. Attributes: severity.
	Corrections metric.Int64Counter

	// MalformedOutputs counts model responses that were not a JSON array.
	MalformedOutputs metric.Int64Counter

	// DroppedCorrections counts array elements rejected by validation.
	DroppedCorrections metric.Int64Counter

	// AnnotationFailures counts feedback results that could not be attached
	// to their stored message.
	AnnotationFailures metric.Int64Counter

	// HTTPRequestDuration tracks request latency. Attributes: method, route, status.
	HTTPRequestDuration metric.Float64Histogram
}

// llmBuckets covers local models, which routinely take tens of seconds.
var llmBuckets = []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30, 60}

// NewMetrics creates all instruments on the given MeterProvider.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.AnalyzeDuration, err = m.Float64Histogram("langcoach.feedback.analyze.duration",
		metric.WithDescription("Latency of one feedback analysis."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(llmBuckets...),
	); err != nil {
		return nil, err
	}
	if met.LLMDuration, err = m.Float64Histogram("langcoach.llm.duration",
		metric.WithDescription("Latency of text generation calls."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(llmBuckets...),
	); err != nil {
		return nil, err
	}

	if met.Corrections, err = m.Int64Counter("langcoach.feedback.corrections",
		metric.WithDescription("Corrections returned to callers by severity."),
	); err != nil {
		return nil, err
	}
	if met.MalformedOutputs, err = m.Int64Counter("langcoach.feedback.malformed_outputs",
		metric.WithDescription("Model responses that did not contain a JSON array."),
	); err != nil {
		return nil, err
	}
	if met.DroppedCorrections, err = m.Int64Counter("langcoach.feedback.dropped_corrections",
		metric.WithDescription("Correction elements rejected by validation."),
	); err != nil {
		return nil, err
	}
	if met.AnnotationFailures, err = m.Int64Counter("langcoach.feedback.annotation_failures",
		metric.WithDescription("Feedback results not attached to their stored message."),
	); err != nil {
		return nil, err
	}

	if met.HTTPRequestDuration, err = m.Float64Histogram("langcoach.http.request.duration",
		metric.WithDescription("HTTP request latency by method and route."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// Nop returns Metrics backed by a no-op provider.
func Nop() *Metrics {
	m, err := NewMetrics(noop.NewMeterProvider())
	if err != nil {
		panic("observe: noop metrics: " + err.Error())
	}
	return m
}

// RecordAnalysis records one finished analysis.
func (m *Metrics) RecordAnalysis(ctx context.Context, lang domain.Language, outcome string, d time.Duration) {
	m.AnalyzeDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("language", lang.String()),
		attribute.String("outcome", outcome),
	))
}

// RecordLLMCall records one model call.
func (m *Metrics) RecordLLMCall(ctx context.Context, backend string, err error, d time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.LLMDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("backend", backend),
		attribute.String("status", status),
	))
}

// RecordCorrections counts corrections by severity.
func (m *Metrics) RecordCorrections(ctx context.Context, corrections []domain.Correction) {
	counts := domain.CountSeverities(corrections)
	for sev, n := range map[domain.Severity]int{
		domain.SeverityError:      counts.Errors,
		domain.SeverityWarning:    counts.Warnings,
		domain.SeveritySuggestion: counts.Suggestions,
	} {
		if n == 0 {
			continue
		}
		m.Corrections.Add(ctx, int64(n), metric.WithAttributes(attribute.String("severity", sev.String())))
	}
}

// RecordHTTPRequest records one served request. route is the matched mux
// pattern, or "unmatched".
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, d time.Duration) {
	m.HTTPRequestDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	))
}
