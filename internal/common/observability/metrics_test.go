package observability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestObservability_RecordRun(t *testing.T) {
	reg := promclient.NewRegistry()
	o := New("weather-report-test", Options{Registerer: reg})
	defer o.Shutdown()

	ctx := context.Background()
	o.RecordRun(ctx, "complete")
	o.RecordRun(ctx, "complete")
	o.RecordRunDuration(ctx, 1500*time.Millisecond, "complete")

	families, err := reg.Gather()
	require.NoError(t, err)

	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	joined := strings.Join(names, ",")
	assert.Contains(t, joined, "report_runs")
	assert.Contains(t, joined, "report_duration")
	assert.NotContains(t, joined, "report.", "exported names must be scrapeable by classic Prometheus")
}

func TestObservability_StartSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	o := New("weather-report-test", Options{
		Registerer:     promclient.NewRegistry(),
		SpanProcessors: []sdktrace.SpanProcessor{recorder},
	})
	defer o.Shutdown()

	_, span := o.StartSpan(context.Background(), "weather")
	EndSpan(span, nil)
	_, span = o.StartSpan(context.Background(), "synthesis")
	EndSpan(span, errors.New("upstream 502"))

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "report.weather", ended[0].Name())
	assert.Equal(t, codes.Unset, ended[0].Status().Code)
	assert.Equal(t, "report.synthesis", ended[1].Name())
	assert.Equal(t, codes.Error, ended[1].Status().Code)
}

func TestObservability_NilReceiver(t *testing.T) {
	var o *Observability
	assert.NotPanics(t, func() {
		_, span := o.StartSpan(context.Background(), "notify")
		EndSpan(span, nil)
		o.RecordRun(context.Background(), "failed")
		o.RecordRunDuration(context.Background(), time.Second, "failed")
		o.Shutdown()
	})
}
