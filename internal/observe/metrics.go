// Package observe provides application-wide observability primitives for the
// bot: OpenTelemetry metrics and the Prometheus exporter bridge behind them.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all bot metrics.
const meterName = "github.com/reiyw/ttsbot"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// SynthesisDuration tracks text-to-speech synthesis latency. Use with
	// attribute:
	//   attribute.String("engine", ...)
	SynthesisDuration metric.Float64Histogram

	// SynthesisRequests counts synthesis API calls. Use with attributes:
	//   attribute.String("engine", ...), attribute.String("status", ...)
	SynthesisRequests metric.Int64Counter

	// MessagesSpoken counts chat messages that were read aloud.
	MessagesSpoken metric.Int64Counter

	// CommandsHandled counts dispatched text commands. Use with attributes:
	//   attribute.String("command", ...), attribute.String("status", ...)
	CommandsHandled metric.Int64Counter

	// StoreWrites counts option-store writes. Use with attribute:
	//   attribute.String("status", ...)
	StoreWrites metric.Int64Counter

	// VoiceChannelsJoined tracks the number of voice channels the bot is
	// currently connected to.
	VoiceChannelsJoined metric.Int64UpDownCounter
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// synthesis API round trips.
var latencyBuckets = []float64{
	0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.SynthesisDuration, err = m.Float64Histogram("ttsbot.synthesis.duration",
		metric.WithDescription("Latency of text-to-speech synthesis by engine."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.SynthesisRequests, err = m.Int64Counter("ttsbot.synthesis.requests",
		metric.WithDescription("Total synthesis API requests by engine and status."),
	); err != nil {
		return nil, err
	}
	if met.MessagesSpoken, err = m.Int64Counter("ttsbot.messages.spoken",
		metric.WithDescription("Total chat messages read aloud."),
	); err != nil {
		return nil, err
	}
	if met.CommandsHandled, err = m.Int64Counter("ttsbot.commands.handled",
		metric.WithDescription("Total dispatched text commands by command and status."),
	); err != nil {
		return nil, err
	}
	if met.StoreWrites, err = m.Int64Counter("ttsbot.store.writes",
		metric.WithDescription("Total option-store writes by status."),
	); err != nil {
		return nil, err
	}
	if met.VoiceChannelsJoined, err = m.Int64UpDownCounter("ttsbot.voice_channels.joined",
		metric.WithDescription("Number of voice channels currently joined."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordSynthesis records one synthesis request with its latency and outcome.
func (m *Metrics) RecordSynthesis(ctx context.Context, engine, status string, seconds float64) {
	attrs := metric.WithAttributes(
		attribute.String("engine", engine),
		attribute.String("status", status),
	)
	m.SynthesisRequests.Add(ctx, 1, attrs)
	m.SynthesisDuration.Record(ctx, seconds,
		metric.WithAttributes(attribute.String("engine", engine)),
	)
}

// RecordCommand records a dispatched text command and its outcome.
func (m *Metrics) RecordCommand(ctx context.Context, command, status string) {
	m.CommandsHandled.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("command", command),
			attribute.String("status", status),
		),
	)
}

// RecordStoreWrite records one option-store write and its outcome.
func (m *Metrics) RecordStoreWrite(ctx context.Context, status string) {
	m.StoreWrites.Add(ctx, 1,
		metric.WithAttributes(attribute.String("status", status)),
	)
}
