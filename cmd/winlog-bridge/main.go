// Package main содержит точку входа winlog-bridge.
// Приложение читает поток событий хост-фреймворка (JSON Lines) и пишет
// каждое событие записью в журнал событий ОС от имени источника BR_SOURCE.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Kargones/winlog-bridge/internal/config"
	"github.com/Kargones/winlog-bridge/internal/constants"
	"github.com/Kargones/winlog-bridge/internal/di"
	"github.com/Kargones/winlog-bridge/internal/eventlog/winlog"
	"github.com/Kargones/winlog-bridge/internal/pkg/apperrors"
	"github.com/Kargones/winlog-bridge/internal/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Getenv(constants.EnvConfigPath), os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run содержит основную логику приложения и возвращает exit code.
// os.Exit вызывается только в main, после отработки всех defer-ов run
// (tracerShutdown, span.End, закрытие журнала).
func run(ctx context.Context, configPath string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load(configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Не удалось загрузить конфигурацию приложения: %v\n", err) //nolint:errcheck // bootstrap stderr
		return constants.ExitConfigError
	}

	if cfg.Command == constants.CommandVersion {
		_, _ = fmt.Fprintf(stdout, "winlog-bridge %s\n", constants.Version) //nolint:errcheck // вывод версии
		return constants.ExitOK
	}

	app, err := di.InitializeApp(cfg, stdout)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Не удалось инициализировать приложение: %v\n", err) //nolint:errcheck // bootstrap stderr
		return constants.ExitConfigError
	}
	l := app.Logger.With("trace_id", app.TraceID)
	l.Debug("Информация о сборке", slog.String("version", constants.Version))

	defer func() {
		if err := app.Close(); err != nil {
			l.Warn("ошибка закрытия журнала событий", slog.String("error", err.Error()))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.TracerShutdown(shutdownCtx); err != nil {
			l.Error("ошибка завершения tracing", slog.String("error", err.Error()))
		}
	}()

	ctx = tracing.WithTraceID(ctx, app.TraceID)
	ctx, span := tracing.Tracer().Start(ctx, cfg.Command,
		trace.WithAttributes(
			attribute.String("command", cfg.Command),
			attribute.String("source", cfg.Source),
			attribute.String("trace_id", app.TraceID),
		),
	)
	defer span.End()

	switch cfg.Command {
	case constants.CommandRelay:
		err = runRelay(ctx, app, stdin)
	case constants.CommandInstallSource:
		err = winlog.Install(cfg.Source)
		if err == nil {
			l.Info("источник событий зарегистрирован", slog.String("source", cfg.Source))
		}
	case constants.CommandRemoveSource:
		err = winlog.Remove(cfg.Source)
		if err == nil {
			l.Info("регистрация источника событий удалена", slog.String("source", cfg.Source))
		}
	default:
		err = apperrors.NewAppError(apperrors.ErrCommandNotFound,
			fmt.Sprintf("неизвестная команда %q", cfg.Command), nil)
		l.Error("Ошибка выбора команды", slog.String("error", err.Error()))
		span.SetStatus(codes.Error, err.Error())
		return constants.ExitConfigError
	}

	if pushErr := app.MetricsCollector.Push(ctx); pushErr != nil {
		l.Warn("не удалось отправить метрики", slog.String("error", pushErr.Error()))
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		l.Error("Ошибка выполнения команды",
			slog.String("command", cfg.Command),
			slog.String("error", err.Error()),
			slog.String("code", apperrors.CodeOf(err)),
		)
		return constants.ExitCommandFailed
	}
	return constants.ExitOK
}

// runRelay открывает входной поток и передаёт его Relay.
// Неудачные записи без StopOnError не прерывают поток, но делают
// запуск неуспешным.
func runRelay(ctx context.Context, app *di.App, stdin io.Reader) error {
	in := stdin
	if !app.Config.ReadsStdin() {
		f, err := os.Open(app.Config.Input) //nolint:gosec // путь задаётся оператором
		if err != nil {
			return apperrors.NewAppError(apperrors.ErrInputRead,
				fmt.Sprintf("не удалось открыть входной поток %s", app.Config.Input), err)
		}
		defer func() { _ = f.Close() }() //nolint:errcheck // файл только для чтения
		in = f
	}

	stats, err := app.Relay.Run(ctx, in)
	app.Logger.Info("обработка потока завершена",
		slog.String("source", app.Config.Source),
		slog.Int("lines", stats.Lines),
		slog.Int("events", stats.Events),
		slog.Int("scopes", stats.Scopes),
		slog.Int("skipped", stats.Skipped),
		slog.Int("failed", stats.Failed),
		slog.Int("unclosed", stats.Unclosed),
	)
	if err != nil {
		return err
	}
	if stats.Failed > 0 {
		return apperrors.NewAppError(apperrors.ErrEventLogWrite,
			fmt.Sprintf("не записано событий: %d из %d", stats.Failed, stats.Events), nil)
	}
	return nil
}
