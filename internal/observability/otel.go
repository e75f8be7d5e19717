package observability

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const ServiceName = "conversation-relay"

// Setup installs an OTLP/HTTP tracer provider. endpoint is host:port or a
// full http(s) URL. With an empty endpoint tracing stays on the global no-op
// provider and the returned shutdown does nothing.
func Setup(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}
	opts, err := exporterOptions(endpoint)
	if err != nil {
		return nil, err
	}
	exp, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", ServiceName),
		)),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// collectorEndpoint is the split form otlptracehttp expects.
type collectorEndpoint struct {
	host     string
	path     string
	insecure bool
}

func parseEndpoint(endpoint string) (collectorEndpoint, error) {
	if !strings.Contains(endpoint, "://") {
		return collectorEndpoint{host: endpoint}, nil
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return collectorEndpoint{}, fmt.Errorf("invalid telemetry endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return collectorEndpoint{}, fmt.Errorf("invalid telemetry endpoint %q: missing host", endpoint)
	}
	ep := collectorEndpoint{host: u.Host}
	switch u.Scheme {
	case "http":
		ep.insecure = true
	case "https":
	default:
		return collectorEndpoint{}, fmt.Errorf("invalid telemetry endpoint %q: unsupported scheme %q", endpoint, u.Scheme)
	}
	if u.Path != "" && u.Path != "/" {
		ep.path = u.Path
	}
	return ep, nil
}

func exporterOptions(endpoint string) ([]otlptracehttp.Option, error) {
	ep, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, err
	}
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(ep.host)}
	if ep.insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if ep.path != "" {
		opts = append(opts, otlptracehttp.WithURLPath(ep.path))
	}
	return opts, nil
}
