package observability

import (
	"context"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug", "console")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if !logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("expected debug enabled")
	}

	logger, err = NewLogger("warn", "json")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("expected info disabled at warn")
	}
}

func TestNewLoggerRejectsBadInput(t *testing.T) {
	if _, err := NewLogger("loud", "json"); err == nil {
		t.Fatalf("expected level error")
	}
	if _, err := NewLogger("info", "xml"); err == nil {
		t.Fatalf("expected format error")
	}
}

func TestSetupDisabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), "")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestParseEndpoint(t *testing.T) {
	tests := []struct {
		in   string
		want collectorEndpoint
	}{
		{"collector:4318", collectorEndpoint{host: "collector:4318"}},
		{"http://collector:4318", collectorEndpoint{host: "collector:4318", insecure: true}},
		{"http://collector:4318/", collectorEndpoint{host: "collector:4318", insecure: true}},
		{"https://otel.example.com/custom/v1/traces", collectorEndpoint{host: "otel.example.com", path: "/custom/v1/traces"}},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseEndpoint(tc.in)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %+v got %+v", tc.want, got)
			}
		})
	}
}

func TestParseEndpointRejectsBadURL(t *testing.T) {
	for _, in := range []string{"grpc://collector:4317", "http://", "http://[::1"} {
		if _, err := parseEndpoint(in); err == nil {
			t.Fatalf("expected error for %q", in)
		}
	}
}

func TestSetupWithURLEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), "http://127.0.0.1:4318")
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
