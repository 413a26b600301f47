package logger

import (
	"context"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/media-gs/pretriage/logutil"
)

type ctxKey string

const (
	traceIDKey   ctxKey = "trace_id"
	requestIDKey ctxKey = "request_id"
)

// redactFields copies a sugared key/value list, replacing the values of
// sensitive keys. zap.Field entries are checked by their key.
func redactFields(kv []any) []any {
	if len(kv) == 0 {
		return kv
	}

	out := make([]any, 0, len(kv))
	for i := 0; i < len(kv); i++ {
		switch x := kv[i].(type) {
		case zapcore.Field:
			if v, ok := logutil.Redact(x.Key, fieldValue(x)); ok {
				x = zap.String(x.Key, v)
			}
			out = append(out, x)
		case string:
			if i+1 == len(kv) {
				out = append(out, x)
				continue
			}
			val := kv[i+1]
			if v, ok := logutil.Redact(x, val); ok {
				val = v
			}
			out = append(out, x, val)
			i++
		default:
			out = append(out, x)
		}
	}
	return out
}

func fieldValue(f zapcore.Field) any {
	switch f.Type {
	case zapcore.StringType:
		return f.String
	case zapcore.Int64Type, zapcore.Int32Type, zapcore.Uint64Type, zapcore.Uint32Type:
		return f.Integer
	}
	if f.Interface != nil {
		return f.Interface
	}
	return f.String
}

func withContextFields(ctx context.Context, kv []any) []any {
	if ctx == nil {
		return kv
	}
	if s := TraceID(ctx); s != "" {
		kv = append(kv, "trace_id", s)
	}
	if s := RequestID(ctx); s != "" {
		kv = append(kv, "request_id", s)
	}
	return kv
}

func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, traceIDKey, traceID)
}

func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDKey, requestID)
}

// TraceID returns the trace id stored in ctx, or "".
func TraceID(ctx context.Context) string { return stringValue(ctx, traceIDKey) }

// RequestID returns the request id stored in ctx, or "".
func RequestID(ctx context.Context) string { return stringValue(ctx, requestIDKey) }

func stringValue(ctx context.Context, key ctxKey) string {
	if ctx == nil {
		return ""
	}
	s, _ := ctx.Value(key).(string)
	return s
}
