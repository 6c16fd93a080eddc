package simulation

import (
	"context"
	"testing"

	"github.com/specialistvlad/killweb/internal/inmemoryresults"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func sumOf(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)
			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}
			return total
		}
	}
	t.Fatalf("metric %s was not recorded", name)
	return 0
}

func TestRunTelemetry(t *testing.T) {
	ctx := context.Background()

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	defer tp.Shutdown(ctx)

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer mp.Shutdown(ctx)

	g := newChain(t, 1, 1)
	e, err := NewEngine(g, inmemoryresults.New(),
		WithSeed(3),
		WithTracer(tp.Tracer("test")),
		WithMeter(mp.Meter("test")),
	)
	require.NoError(t, err)

	run, ok := e.Run(ctx, 25)
	require.True(t, ok)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	span := ended[0]
	assert.Equal(t, "killweb.monte_carlo", span.Name())
	assert.Equal(t, codes.Ok, span.Status().Code)
	assert.Contains(t, span.Attributes(), attribute.String("killweb.run_id", run.ID.String()))
	assert.Contains(t, span.Attributes(), attribute.Int("killweb.iterations", 25))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	assert.Equal(t, int64(25), sumOf(t, rm, "killweb.trials"))
	assert.Equal(t, int64(25), sumOf(t, rm, "killweb.chain_successes"))
	assert.Equal(t, int64(1), sumOf(t, rm, "killweb.paths"))
}

func TestRefusedRunRecordsNothing(t *testing.T) {
	ctx := context.Background()

	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	defer tp.Shutdown(ctx)

	g := newChain(t, 1, 1)
	e, err := NewEngine(g, inmemoryresults.New(), WithTracer(tp.Tracer("test")))
	require.NoError(t, err)

	_, ok := e.Run(ctx, -1)
	assert.False(t, ok)
	assert.Empty(t, spans.Ended())
}
