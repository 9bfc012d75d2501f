/*
Package tracing records lightweight spans for API requests and script steps.

Spans carry a trace ID shared by everything one request caused: the HTTP
request, each script step it ran and the tool calls behind them. Finished
spans are logged asynchronously at debug level; a full buffer drops spans
rather than blocking automation.

# Usage

	tracer := tracing.New("litepro", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	span, ctx := tracer.StartSpan(ctx, "script.step")
	span.SetTag("tool", toolID)
	defer tracer.End(span)

The trace ID arrives in X-Trace-ID, falls back to the request ID, and is
echoed in the response.
*/
package tracing
