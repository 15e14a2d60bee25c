package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// levelCore pins a wrapped core to a fixed minimum level,
// independent of the shared atomic level.
type levelCore struct {
	zapcore.Core

	level zapcore.Level
}

// Enabled reports whether l passes the pinned level.
func (c *levelCore) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l)
}

// Check adds the core to ce when the entry level passes the pinned level.
//
//nolint:gocritic // AddCore requires ent to be passed by value.
func (c *levelCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) && c.Core.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}

	return ce
}

// With keeps the pinned level on derived cores.
//
//nolint:ireturn,nolintlint // Returning zapcore.Core is intended for zap integration.
func (c *levelCore) With(fields []zapcore.Field) zapcore.Core {
	return &levelCore{
		Core:  c.Core.With(fields),
		level: c.level,
	}
}

// WithLevel raises the minimum level of an existing logger.
// The root command uses it for --quiet.
//
//nolint:ireturn,nolintlint // Returning zap.Option is intended for zap integration.
func WithLevel(lvl zapcore.Level) zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return &levelCore{Core: core, level: lvl}
	})
}
