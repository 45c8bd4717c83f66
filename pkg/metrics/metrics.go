// Package metrics exposes the OpenTelemetry instruments recorded by the
// enrichment steps and the Prometheus plumbing used to publish them.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

const meterName = "batchstamp"

// Instruments bundles the instruments recorded during a stamping pass.
type Instruments struct {
	// FieldsStamped counts ScanDate fields written.
	FieldsStamped metric.Int64Counter
	// LookupFailures counts failed batch creation time lookups, by error kind.
	LookupFailures metric.Int64Counter
	// Persists counts persistence attempts, by mode and outcome.
	Persists metric.Int64Counter
	// PersistDuration records how long writing the batch xml took, in seconds.
	PersistDuration metric.Float64Histogram
}

// NewInstruments creates the instruments on provider. A nil provider uses the
// global one, which is a no-op until Setup runs.
func NewInstruments(provider metric.MeterProvider) (*Instruments, error) {
	if provider == nil {
		provider = otel.GetMeterProvider()
	}
	meter := provider.Meter(meterName)

	fieldsStamped, err := meter.Int64Counter("batchstamp.fields.stamped",
		metric.WithDescription("ScanDate fields stamped with the batch creation date"))
	if err != nil {
		return nil, fmt.Errorf("could not create fields counter: %w", err)
	}
	lookupFailures, err := meter.Int64Counter("batchstamp.lookup.failures",
		metric.WithDescription("Failed batch creation date lookups"))
	if err != nil {
		return nil, fmt.Errorf("could not create lookup counter: %w", err)
	}
	persists, err := meter.Int64Counter("batchstamp.persists",
		metric.WithDescription("Batch xml persistence attempts"))
	if err != nil {
		return nil, fmt.Errorf("could not create persists counter: %w", err)
	}
	persistDuration, err := meter.Float64Histogram("batchstamp.persist.duration",
		metric.WithDescription("Time spent writing the batch xml"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create persist histogram: %w", err)
	}

	return &Instruments{
		FieldsStamped:   fieldsStamped,
		LookupFailures:  lookupFailures,
		Persists:        persists,
		PersistDuration: persistDuration,
	}, nil
}

// Provider is an otel MeterProvider exporting into a Prometheus registry.
type Provider struct {
	*sdkmetric.MeterProvider

	// Registry receives the exported metrics.
	Registry *prometheus.Registry
}

// Setup creates a MeterProvider backed by a fresh Prometheus registry and
// installs it as the global provider.
func Setup() (*Provider, error) {
	registry := prometheus.NewRegistry()

	exp, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp))
	otel.SetMeterProvider(provider)

	return &Provider{MeterProvider: provider, Registry: registry}, nil
}

// WriteTextfile writes the registry in Prometheus text format to path, for
// collection by node_exporter's textfile collector.
func (p *Provider) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, p.Registry); err != nil {
		return fmt.Errorf("could not write metrics textfile: %w", err)
	}

	return nil
}

// Shutdown flushes and stops the provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if err := p.MeterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not shutdown meter provider: %w", err)
	}

	return nil
}
