package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type preset struct {
	production bool
	level      zapcore.Level
	stacktrace bool
	caller     bool
}

var presets = map[string]preset{
	"development": {level: zapcore.DebugLevel},
	"debug":       {level: zapcore.DebugLevel, stacktrace: true, caller: true},
	"production":  {production: true, level: zapcore.InfoLevel},
}

// presetFor falls back to an info-level development setup.
func presetFor(env string) preset {
	if p, ok := presets[strings.ToLower(strings.TrimSpace(env))]; ok {
		return p
	}
	return preset{level: zapcore.InfoLevel}
}

func (p preset) config() zap.Config {
	var cfg zap.Config
	if p.production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.Level = zap.NewAtomicLevelAt(p.level)
	cfg.DisableStacktrace = !p.stacktrace

	enc := &cfg.EncoderConfig
	enc.TimeKey = "timestamp"
	enc.LevelKey = "level"
	enc.MessageKey = "msg"
	enc.NameKey = "logger"
	enc.CallerKey = zapcore.OmitKey
	if p.caller {
		enc.CallerKey = "caller"
	}
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{"stdout"}
	return cfg
}
