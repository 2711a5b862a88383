package logging

import (
	"context"
	"log/slog"
)

// SlogAdapter - Logger поверх *slog.Logger. Через него идёт вся
// диагностика моста, в том числе зеркалируемая в журнал событий.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter оборачивает logger. nil означает молчащий логгер:
// мост не пишет диагностику в slog.Default, куда может быть направлен
// сам журнал событий.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.New(nopHandler{})
	}
	return &SlogAdapter{logger: logger}
}

func (s *SlogAdapter) Debug(msg string, args ...any) {
	s.logger.Debug(msg, args...)
}

func (s *SlogAdapter) Info(msg string, args ...any) {
	s.logger.Info(msg, args...)
}

func (s *SlogAdapter) Warn(msg string, args ...any) {
	s.logger.Warn(msg, args...)
}

func (s *SlogAdapter) Error(msg string, args ...any) {
	s.logger.Error(msg, args...)
}

// Log пишет запись уровня level с контекстом ctx. Handler зеркала
// берёт из ctx цепочку контекстов, в которой возникла диагностика.
func (s *SlogAdapter) Log(ctx context.Context, level slog.Level, msg string, args ...any) {
	s.logger.Log(ctx, level, msg, args...)
}

// With возвращает дочерний Logger с атрибутами args.
func (s *SlogAdapter) With(args ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(args...)}
}

// Handler возвращает handler нижележащего slog.Logger.
func (s *SlogAdapter) Handler() slog.Handler {
	return s.logger.Handler()
}
