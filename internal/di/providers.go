package di

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/Kargones/winlog-bridge/internal/config"
	"github.com/Kargones/winlog-bridge/internal/constants"
	"github.com/Kargones/winlog-bridge/internal/eventlog"
	"github.com/Kargones/winlog-bridge/internal/eventlog/record"
	"github.com/Kargones/winlog-bridge/internal/eventlog/winlog"
	"github.com/Kargones/winlog-bridge/internal/pkg/logging"
	"github.com/Kargones/winlog-bridge/internal/pkg/metrics"
	"github.com/Kargones/winlog-bridge/internal/pkg/output"
	"github.com/Kargones/winlog-bridge/internal/pkg/tracing"
	"github.com/Kargones/winlog-bridge/internal/relay"
)

// orDefault возвращает cfg или конфигурацию по умолчанию при nil.
func orDefault(cfg *config.Config) *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

// ProvideLogger создаёт Logger на основе Config.Logging.
// Пустые значения заменяются logging.DefaultXxx.
func ProvideLogger(cfg *config.Config) logging.Logger {
	logCfg := logging.DefaultConfig()
	if cfg == nil {
		return logging.NewLogger(logCfg)
	}

	c := cfg.Logging.ToLogging()
	if c.Level != "" {
		logCfg.Level = c.Level
	}
	if c.Format != "" {
		logCfg.Format = c.Format
	}
	if c.Output != "" {
		logCfg.Output = c.Output
	}
	if c.FilePath != "" {
		logCfg.FilePath = c.FilePath
	}
	// Размер 0 MB не имеет смысла для lumberjack, используется default.
	if c.MaxSize > 0 {
		logCfg.MaxSize = c.MaxSize
	}
	if c.MaxBackups > 0 {
		logCfg.MaxBackups = c.MaxBackups
	}
	if c.MaxAge > 0 {
		logCfg.MaxAge = c.MaxAge
	}
	logCfg.Compress = c.Compress

	return logging.NewLogger(logCfg)
}

// ProvideTraceID генерирует уникальный trace_id запуска.
// Формат: 32-символьный hex string (16 байт), совместимый с OTel TraceID.
func ProvideTraceID() string {
	return tracing.GenerateTraceID()
}

// ProvideMetricsCollector создаёт Collector на основе Config.Metrics.
// При выключенных метриках или ошибке создания возвращает NopCollector.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil {
		return metrics.NewNopCollector()
	}

	collector, err := metrics.NewCollector(cfg.Metrics.ToMetrics(), logger)
	if err != nil {
		logger.Error("ошибка создания MetricsCollector, используется NopCollector",
			slog.String("error", err.Error()),
		)
		return metrics.NewNopCollector()
	}
	return collector
}

// ProvideTracerProvider создаёт и регистрирует OTel TracerProvider.
// Возвращает shutdown function; при выключенном трейсинге или ошибке - nop.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) func(context.Context) error {
	if cfg == nil {
		return tracing.NewNopTracerProvider()
	}

	shutdown, err := tracing.NewTracerProvider(cfg.Tracing.ToTracing(constants.Version), logger)
	if err != nil {
		logger.Error("ошибка инициализации tracing, используется nop provider",
			slog.String("error", err.Error()),
		)
		return tracing.NewNopTracerProvider()
	}
	return shutdown
}

// ProvideWriter выбирает Writer записей:
//   - BR_DRY_RUN=true: output.Printer в stdout в формате BR_OUTPUT_FORMAT;
//   - иначе: журнал событий ОС (winlog.Writer).
//
// nil stdout означает os.Stdout.
func ProvideWriter(cfg *config.Config, stdout io.Writer) eventlog.Writer {
	cfg = orDefault(cfg)
	if cfg.DryRun {
		if stdout == nil {
			stdout = os.Stdout
		}
		return output.NewPrinter(stdout, cfg.OutputFormat)
	}
	return winlog.NewWriter()
}

// ProvideBridge создаёт Bridge для источника Config.Source.
// Диагностика моста пишется только в logger и не проходит через сам мост.
func ProvideBridge(cfg *config.Config, w eventlog.Writer, logger logging.Logger, collector metrics.Collector) *eventlog.Bridge {
	cfg = orDefault(cfg)
	return eventlog.New(cfg.Source, w,
		eventlog.WithLogger(logger.With("component", "bridge")),
		eventlog.WithMetrics(collector),
	)
}

// ProvideRelay создаёт Relay поверх bridge.
// При заданном Config.MirrorLevel диагностика relay уровня MirrorLevel и выше
// дополнительно записывается в журнал событий через eventlog.Handler.
func ProvideRelay(cfg *config.Config, bridge *eventlog.Bridge, logger logging.Logger) *relay.Relay {
	cfg = orDefault(cfg)
	relayLogger := logger.With("component", "relay")

	if cfg.MirrorLevel != "" {
		if level, err := record.ParseLevel(cfg.MirrorLevel); err == nil {
			mirror := eventlog.NewHandler(bridge, &eventlog.HandlerOptions{Level: eventlog.SlogLevel(level)})
			relayLogger = logging.NewSlogAdapter(slog.New(logging.Tee(relayLogger.Handler(), mirror)))
		}
	}

	return relay.New(bridge,
		relay.WithLogger(relayLogger),
		relay.WithTracer(tracing.Tracer()),
		relay.WithStopOnError(cfg.StopOnError),
	)
}
