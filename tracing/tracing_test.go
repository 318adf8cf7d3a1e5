package tracing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestStartSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	require.NoError(t, InitWithExporter("omlflow", "test", exporter))

	ctx, parent := StartSpan(context.Background(), "registry.publish", KindInternal)
	_, child := StartSpan(ctx, "GET flow/exists", KindClient)
	child.WithAttributes(map[string]string{"path": "flow/exists/a/1"})
	child.SetStatusFromHTTPCode(412)
	child.End()
	EndSpan(parent, errors.New("remote failure"))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "GET flow/exists", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
	assert.Equal(t, codes.Error, spans[1].Status.Code)
}
