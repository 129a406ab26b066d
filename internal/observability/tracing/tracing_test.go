package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jacobe603/quote-builder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func TestNewProvider_LocalSpansWithoutExport(t *testing.T) {
	cfg := config.Config{AppName: "quote-builder", Otel: config.OtelConfig{SamplingRatio: 1}}
	tp, err := NewProvider(nil, cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinMiddleware())
	var traced bool
	r.GET("/x", func(c *gin.Context) {
		traced = trace.SpanFromContext(c.Request.Context()).SpanContext().IsValid()
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.True(t, traced)
}

func TestNewExporter_RejectsUnknownProtocol(t *testing.T) {
	_, err := newExporter("carrier-pigeon", "localhost:4317")
	assert.Error(t, err)
}
