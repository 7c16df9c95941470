package calculator

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// Metric instruments. They are no-ops until InitMetrics runs so handlers can
// be exercised without a meter provider.
var (
	actionsCounter     metric.Int64Counter     = noop.Int64Counter{}
	evaluationsCounter metric.Int64Counter     = noop.Int64Counter{}
	errorCounter       metric.Int64Counter     = noop.Int64Counter{}
	dispatchHistogram  metric.Float64Histogram = noop.Float64Histogram{}
)

// InitMetrics registers the calculator's OTel instruments on the global
// meter provider. Call it once at startup, after observability.InitMetrics.
func InitMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	actionsCounter, err = meter.Int64Counter("calculator.actions.total",
		metric.WithDescription("Calculator actions applied, by kind"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return fmt.Errorf("creating actions counter: %w", err)
	}

	evaluationsCounter, err = meter.Int64Counter("calculator.evaluations.total",
		metric.WithDescription("Stateless evaluations, by operation and outcome"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return fmt.Errorf("creating evaluations counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of calculator request errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	dispatchHistogram, err = meter.Float64Histogram("calculator.dispatch.duration",
		metric.WithDescription("Time to load, reduce and save a session, in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.05, 0.1, 0.5, 1, 5, 10, 50, 100),
	)
	if err != nil {
		return fmt.Errorf("creating dispatch histogram: %w", err)
	}

	return nil
}

// outcome classifies an evaluation result for metric labels.
func outcome(result string) string {
	switch result {
	case "":
		return "invalid"
	case "NaN":
		return "nan"
	case "Infinity", "-Infinity":
		return "infinite"
	default:
		return "finite"
	}
}
