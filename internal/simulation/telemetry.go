package simulation

import (
	"fmt"

	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/specialistvlad/killweb/internal/simulation"

// instruments holds the metric instruments of an engine. They are created
// once in NewEngine.
type instruments struct {
	trials    metric.Int64Counter
	paths     metric.Int64Counter
	successes metric.Int64Counter
	duration  metric.Float64Histogram
}

func newInstruments(meter metric.Meter) (*instruments, error) {
	var (
		in  instruments
		err error
	)

	in.trials, err = meter.Int64Counter(
		"killweb.trials",
		metric.WithDescription("Number of Monte Carlo trials performed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create trials counter: %w", err)
	}

	in.paths, err = meter.Int64Counter(
		"killweb.paths",
		metric.WithDescription("Number of kill chains sampled"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create paths counter: %w", err)
	}

	in.successes, err = meter.Int64Counter(
		"killweb.chain_successes",
		metric.WithDescription("Number of trials in which every link of a chain succeeded"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create successes counter: %w", err)
	}

	in.duration, err = meter.Float64Histogram(
		"killweb.run.duration",
		metric.WithDescription("Monte Carlo run duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}
	return &in, nil
}
