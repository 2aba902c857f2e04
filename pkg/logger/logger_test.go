package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

// logLine emits one enriched record for ctx and returns it decoded.
func logLine(t *testing.T, ctx context.Context) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	WithContext(ctx, NewWithWriter("storefront", "info", &buf)).Info("probe")

	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	return out
}

func TestWithContext_EnrichesIdentifiers(t *testing.T) {
	ctx := WithCorrelationID(context.Background(), "req-123")
	ctx = WithSessionID(ctx, "sess-789")

	var buf bytes.Buffer
	WithContext(ctx, NewWithWriter("storefront", "info", &buf)).Info("probe")

	var out map[string]any
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if out["correlation_id"] != "req-123" {
		t.Errorf("correlation_id = %v, want req-123", out["correlation_id"])
	}
	if out["session_id"] != "sess-789" {
		t.Errorf("session_id = %v, want sess-789", out["session_id"])
	}
	if out["service"] != "storefront" {
		t.Errorf("service = %v, want storefront", out["service"])
	}
}

func TestWithContext_OmitsAbsentIdentifiers(t *testing.T) {
	out := logLine(t, context.Background())

	for _, key := range []string{"correlation_id", "session_id", "trace_id", "span_id"} {
		if _, ok := out[key]; ok {
			t.Errorf("%s should be absent when not in context", key)
		}
	}
}

func TestWithContext_SpanIDs(t *testing.T) {
	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	out := logLine(t, ctx)

	if out["trace_id"] != "4bf92f3577b34da6a3ce929d0e0e4736" {
		t.Errorf("trace_id = %v", out["trace_id"])
	}
	if out["span_id"] != "00f067aa0ba902b7" {
		t.Errorf("span_id = %v", out["span_id"])
	}
}

func TestContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter("storefront", "info", &buf)

	if got := FromContext(NewContext(context.Background(), l)); got != l {
		t.Error("FromContext should return the logger stored via NewContext")
	}
	if got := FromContext(context.Background()); got == nil {
		t.Error("FromContext should fall back to a non-nil logger")
	}
}
