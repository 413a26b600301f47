// Package logger wraps zap with redaction of patient identifiers and
// request-scoped ids.
package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/media-gs/pretriage/config"
)

// Logger is a zap sugared logger whose structured fields pass through
// logutil redaction before encoding. CPF, phone, birth date and secret keys
// never reach the output in clear; positional Info/Infof arguments are not
// inspected and must not carry patient data.
type Logger struct {
	s *zap.SugaredLogger
}

// Init is New that exits the process when the logger cannot be built.
func Init(serviceName, env string) *Logger {
	l, err := New(serviceName, env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	return l
}

// New builds a logger named serviceName using the preset for env
// (development, debug, production; anything else is a quiet development setup).
func New(serviceName, env string) (*Logger, error) {
	p := presetFor(env)

	z, err := p.config().Build(
		zap.WithCaller(p.caller),
		zap.AddCallerSkip(1),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot init zap logger: %w", err)
	}
	return FromZap(z.Named(serviceName)), nil
}

// NewFromConfig builds the logger for cfg.Service in cfg.Env.
func NewFromConfig(cfg config.Config) (*Logger, error) {
	return New(cfg.Service, cfg.Env)
}

// FromZap wraps an existing zap logger, e.g. one built on a test core.
func FromZap(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{s: z.Sugar()}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return FromZap(nil)
}

// With returns a child logger carrying the redacted kv on every entry.
func (l *Logger) With(kv ...any) LoggerInterface {
	return &Logger{s: l.s.With(redactFields(kv)...)}
}

func (l *Logger) SafeSync() {
	if l == nil || l.s == nil {
		return
	}
	if err := l.s.Desugar().Sync(); err != nil && !isIgnorableSyncError(err) {
		l.s.Errorf("log sync error: %v", err)
	}
}

// stdout/stderr on a terminal or pipe cannot be fsynced.
func isIgnorableSyncError(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "invalid argument") ||
		strings.Contains(s, "inappropriate ioctl for device")
}

func (l *Logger) Info(a ...any)  { l.s.Info(a...) }
func (l *Logger) Warn(a ...any)  { l.s.Warn(a...) }
func (l *Logger) Error(a ...any) { l.s.Error(a...) }
func (l *Logger) Debug(a ...any) { l.s.Debug(a...) }

func (l *Logger) Infof(t string, a ...any)  { l.s.Infof(t, a...) }
func (l *Logger) Warnf(t string, a ...any)  { l.s.Warnf(t, a...) }
func (l *Logger) Errorf(t string, a ...any) { l.s.Errorf(t, a...) }
func (l *Logger) Debugf(t string, a ...any) { l.s.Debugf(t, a...) }

func (l *Logger) Infow(m string, kv ...any)  { l.s.Infow(m, redactFields(kv)...) }
func (l *Logger) Warnw(m string, kv ...any)  { l.s.Warnw(m, redactFields(kv)...) }
func (l *Logger) Errorw(m string, kv ...any) { l.s.Errorw(m, redactFields(kv)...) }
func (l *Logger) Debugw(m string, kv ...any) { l.s.Debugw(m, redactFields(kv)...) }

func (l *Logger) InfowCtx(ctx context.Context, m string, kv ...any) {
	l.s.Infow(m, withContextFields(ctx, redactFields(kv))...)
}

func (l *Logger) WarnwCtx(ctx context.Context, m string, kv ...any) {
	l.s.Warnw(m, withContextFields(ctx, redactFields(kv))...)
}

func (l *Logger) ErrorwCtx(ctx context.Context, m string, kv ...any) {
	l.s.Errorw(m, withContextFields(ctx, redactFields(kv))...)
}

func (l *Logger) DebugwCtx(ctx context.Context, m string, kv ...any) {
	l.s.Debugw(m, withContextFields(ctx, redactFields(kv))...)
}
