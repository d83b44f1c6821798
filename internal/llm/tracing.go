package llm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/abhisek/studybuddy/internal/llm"

// TracingProvider is a decorator that opens one span per gateway call.
type TracingProvider struct {
	inner  Provider
	tracer trace.Tracer
}

// WithTracing wraps a Provider with OpenTelemetry spans from the global
// tracer provider.
func WithTracing(p Provider) Provider {
	return &TracingProvider{inner: p, tracer: otel.Tracer(tracerName)}
}

func (t *TracingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, span := t.start(ctx, "llm.generate", req)
	defer span.End()

	resp, err := t.inner.Generate(ctx, req)
	finishSpan(span, resp, err)
	return resp, err
}

func (t *TracingProvider) Stream(ctx context.Context, req Request, fn StreamFunc) (*Response, error) {
	ctx, span := t.start(ctx, "llm.stream", req)
	defer span.End()

	deltas := 0
	resp, err := t.inner.Stream(ctx, req, func(delta string) error {
		deltas++
		return fn(delta)
	})
	span.SetAttributes(attribute.Int("llm.stream.deltas", deltas))
	finishSpan(span, resp, err)
	return resp, err
}

func (t *TracingProvider) GenerateImage(ctx context.Context, req ImageRequest) (*Image, error) {
	ctx, span := t.tracer.Start(ctx, "llm.image", trace.WithAttributes(
		attribute.String("llm.purpose", PurposeFrom(ctx)),
		attribute.String("llm.model", t.inner.ModelID()),
		attribute.String("llm.image.aspect_ratio", req.AspectRatio),
	))
	defer span.End()

	img, err := t.inner.GenerateImage(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return img, err
	}
	span.SetAttributes(attribute.Bool("llm.image.produced", img != nil))
	if img != nil {
		span.SetAttributes(attribute.Int("llm.image.bytes", len(img.Data)))
	}
	return img, nil
}

func (t *TracingProvider) ModelID() string {
	return t.inner.ModelID()
}

func (t *TracingProvider) start(ctx context.Context, name string, req Request) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("llm.purpose", PurposeFrom(ctx)),
		attribute.String("llm.model", t.inner.ModelID()),
		attribute.Bool("llm.structured", req.Schema != nil),
	}
	if id := SessionIDFrom(ctx); id != "" {
		attrs = append(attrs, attribute.String("studybuddy.session_id", id))
	}
	return t.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func finishSpan(span trace.Span, resp *Response, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return
	}
	if resp != nil {
		span.SetAttributes(
			attribute.Int("llm.tokens.input", resp.Usage.InputTokens),
			attribute.Int("llm.tokens.output", resp.Usage.OutputTokens),
			attribute.String("llm.stop_reason", resp.StopReason),
		)
	}
}
