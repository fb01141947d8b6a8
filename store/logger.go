package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// BadgerLogger adapts slog to the badger.Logger interface
type BadgerLogger struct {
	logger *slog.Logger
}

func NewBadgerLogger(logger *slog.Logger) *BadgerLogger {
	return &BadgerLogger{logger: logger}
}

func (b *BadgerLogger) Errorf(msg string, args ...any) {
	b.log(slog.LevelError, msg, args...)
}

func (b *BadgerLogger) Warningf(msg string, args ...any) {
	b.log(slog.LevelWarn, msg, args...)
}

func (b *BadgerLogger) Infof(msg string, args ...any) {
	b.log(slog.LevelInfo, msg, args...)
}

func (b *BadgerLogger) Debugf(msg string, args ...any) {
	b.log(slog.LevelDebug, msg, args...)
}

func (b *BadgerLogger) log(level slog.Level, msg string, args ...any) {
	if b.logger == nil {
		return
	}
	b.logger.Log(
		context.Background(),
		level,
		strings.TrimSpace(fmt.Sprintf(msg, args...)),
		"component", "store",
	)
}
