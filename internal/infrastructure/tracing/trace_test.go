package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GriffinCanCode/litepro/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChildSpansShareTrace(t *testing.T) {
	tracer := New("test", logging.NewNop())
	defer tracer.Close()

	root, ctx := tracer.StartSpan(context.Background(), "root")
	child, childCtx := tracer.StartSpan(ctx, "child")

	assert.Equal(t, root.TraceID, child.TraceID)
	assert.Equal(t, root.SpanID, child.ParentID)
	assert.Equal(t, child.SpanID, GetSpanID(childCtx))
	assert.Equal(t, "test", child.Service)
	assert.NotEqual(t, root.SpanID, child.SpanID)
}

func TestWithTraceID(t *testing.T) {
	ctx := WithTraceID(context.Background(), "req_abc")
	span, _ := (*Tracer)(nil).StartSpan(ctx, "op")
	assert.Equal(t, TraceID("req_abc"), span.TraceID)
}

func TestNilTracerIsSafe(t *testing.T) {
	var tracer *Tracer
	span, _ := tracer.StartSpan(context.Background(), "op")
	span.SetError(errors.New("x"))
	tracer.End(span)
	tracer.Close()
	assert.Positive(t, int64(span.Duration)+1)
}

func TestEndAfterCloseDoesNotBlock(t *testing.T) {
	tracer := New("test", logging.NewNop())
	tracer.Close()
	tracer.Close()

	span, _ := tracer.StartSpan(context.Background(), "late")
	tracer.End(span)
}

func TestHTTPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tracer := New("test", logging.NewNop())
	defer tracer.Close()

	tests := []struct {
		name   string
		header map[string]string
		want   string
	}{
		{name: "explicit trace", header: map[string]string{TraceHeader: "trace-1"}, want: "trace-1"},
		{name: "generated", header: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(HTTPMiddleware(tracer))
			var seen TraceID
			router.GET("/x", func(c *gin.Context) {
				seen = GetTraceID(c.Request.Context())
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, string(seen), w.Header().Get(TraceHeader))
			if tt.want != "" {
				assert.Equal(t, tt.want, string(seen))
			} else {
				assert.NotEmpty(t, seen)
			}
		})
	}
}
