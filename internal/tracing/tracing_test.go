package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/MKhiriev/go-posts-api/internal/config"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), config.Tracing{}, "go-posts-api", "test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	defer span.End()
	assert.False(t, span.SpanContext().IsSampled())
}

func TestInit_EnabledWithoutEndpoint(t *testing.T) {
	_, err := Init(context.Background(), config.Tracing{Enabled: true}, "go-posts-api", "test")
	assert.ErrorIs(t, err, ErrMissingEndpoint)
}

func TestInit_Enabled(t *testing.T) {
	// the gRPC exporter connects lazily, so no collector is needed here
	shutdown, err := Init(context.Background(), config.Tracing{
		Enabled:     true,
		Endpoint:    "127.0.0.1:4317",
		Insecure:    true,
		SampleRatio: 1,
	}, "go-posts-api", "test")
	require.NoError(t, err)

	_, span := otel.Tracer("test").Start(context.Background(), "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}
