// Package logging предоставляет интерфейс и реализации для структурированного
// логирования собственной диагностики моста.
//
// Диагностика пишется в stderr или в файл и никогда не проходит через
// журнал событий ОС напрямую: мост не должен логировать сам в себя.
// Зеркалирование предупреждений в журнал событий собирается явно через Tee.
package logging

import (
	"context"
	"log/slog"
)

// Logger определяет интерфейс для структурированного логирования.
// Реализации: SlogAdapter (использует slog из stdlib) и NopLogger.
//
// Все методы принимают сообщение и опциональные key-value пары:
//
//	logger.Info("Поток событий обработан", "events", n, "duration_ms", 150)
type Logger interface {
	// Debug записывает сообщение уровня DEBUG.
	Debug(msg string, args ...any)

	// Info записывает сообщение уровня INFO.
	Info(msg string, args ...any)

	// Warn записывает сообщение уровня WARN.
	Warn(msg string, args ...any)

	// Error записывает сообщение уровня ERROR.
	Error(msg string, args ...any)

	// Log записывает сообщение уровня level, передавая ctx в handler.
	//
	//	logger.Log(ctx, slog.LevelWarn, "некорректная строка JSON", "line", n)
	Log(ctx context.Context, level slog.Level, msg string, args ...any)

	// With возвращает новый Logger с добавленными атрибутами.
	//
	//	logger.With("trace_id", traceID).Info("Relay запущен")
	With(args ...any) Logger

	// Handler возвращает slog.Handler, на котором построен Logger.
	Handler() slog.Handler
}
