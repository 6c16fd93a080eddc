package simulation

import (
	"math/rand/v2"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Option configures an Engine.
type Option func(*Engine)

// WithRand sets the random stream used for every Bernoulli draw.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		e.rng = r
	}
}

// WithSeed seeds a PCG stream so runs are reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// WithTracer sets the OpenTelemetry tracer that records one span per run.
func WithTracer(tracer trace.Tracer) Option {
	return func(e *Engine) {
		e.tracer = tracer
	}
}

// WithMeter sets the OpenTelemetry meter used for the trial and path
// counters.
func WithMeter(meter metric.Meter) Option {
	return func(e *Engine) {
		e.meter = meter
	}
}
