package tracing

import (
	"errors"

	"github.com/gin-gonic/gin"
)

const (
	TraceHeader = "X-Trace-ID"
	// requestHeader is set by the request ID middleware, which runs first
	requestHeader = "X-Request-ID"
)

// HTTPMiddleware wraps each request in a root span
func HTTPMiddleware(tracer *Tracer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		traceID := TraceID(c.GetHeader(TraceHeader))
		if traceID == "" {
			traceID = TraceID(c.Writer.Header().Get(requestHeader))
		}
		if traceID != "" {
			ctx = WithTraceID(ctx, traceID)
		}

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		span, ctx := tracer.StartSpan(ctx, c.Request.Method+" "+path)
		c.Request = c.Request.WithContext(ctx)
		c.Header(TraceHeader, string(span.TraceID))

		c.Next()

		span.SetStatus(c.Writer.Status())
		if len(c.Errors) > 0 {
			span.SetError(errors.New(c.Errors.String()))
		}
		tracer.End(span)
	}
}
