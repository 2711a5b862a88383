// Package eventlog связывает события логирования с журналом событий ОС.
//
// Bridge получает уведомления о входе/выходе из контекстов и о событиях,
// строит запись через record.Format и синхронно передаёт её Writer.
// Состояние Bridge - только имя источника, заданное при создании;
// цепочка контекстов живёт в context.Context вызывающей стороны.
package eventlog

import (
	"context"
	"time"

	"github.com/Kargones/winlog-bridge/internal/eventlog/record"
	"github.com/Kargones/winlog-bridge/internal/eventlog/scope"
	"github.com/Kargones/winlog-bridge/internal/pkg/apperrors"
	"github.com/Kargones/winlog-bridge/internal/pkg/logging"
	"github.com/Kargones/winlog-bridge/internal/pkg/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Writer - примитив записи в журнал событий ОС.
// source - имя зарегистрированного источника событий.
// Bridge не повторяет запись при ошибке Writer: ошибка оборачивается в
// AppError с кодом EVENTLOG.WRITE_FAILED и исходной ошибкой в Cause,
// так что errors.Is и errors.As находят ошибку примитива.
type Writer interface {
	Write(source string, rec record.Record) error
}

// WriterFunc адаптирует функцию к интерфейсу Writer.
type WriterFunc func(source string, rec record.Record) error

// Write реализует Writer.
func (f WriterFunc) Write(source string, rec record.Record) error {
	return f(source, rec)
}

// Subscriber - набор уведомлений, которые хост-фреймворк доставляет мосту.
// Уведомления одного пути выполнения приходят строго по порядку,
// вход и выход из контекстов сбалансированы (LIFO).
type Subscriber interface {
	// OnScopeEnter возвращает ctx, в котором name добавлен в цепочку контекстов.
	OnScopeEnter(ctx context.Context, name string) context.Context

	// OnScopeExit возвращает ctx без последнего контекста.
	// Предусловие: в ctx есть хотя бы один активный контекст.
	OnScopeExit(ctx context.Context) context.Context

	// OnEvent форматирует событие с цепочкой из ctx и передаёт запись в журнал.
	OnEvent(ctx context.Context, ev record.Event) error
}

// SpanEventName - имя span event-а, добавляемого к текущему span-у при записи.
const SpanEventName = "eventlog.record"

var _ Subscriber = (*Bridge)(nil)

// Bridge реализует Subscriber поверх Writer.
type Bridge struct {
	source  string
	writer  Writer
	logger  logging.Logger
	metrics metrics.Collector
	now     func() time.Time
}

// Option настраивает Bridge.
type Option func(*Bridge)

// WithLogger задаёт logger для диагностики моста.
func WithLogger(l logging.Logger) Option {
	return func(b *Bridge) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithMetrics задаёт collector метрик записи.
func WithMetrics(c metrics.Collector) Option {
	return func(b *Bridge) {
		if c != nil {
			b.metrics = c
		}
	}
}

// New создаёт Bridge для источника source.
// Имя источника неизменно на всё время жизни Bridge.
func New(source string, w Writer, opts ...Option) *Bridge {
	b := &Bridge{
		source:  source,
		writer:  w,
		logger:  logging.NewNopLogger(),
		metrics: metrics.NewNopCollector(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Source возвращает имя источника событий.
func (b *Bridge) Source() string {
	return b.source
}

// OnScopeEnter реализует Subscriber.
func (b *Bridge) OnScopeEnter(ctx context.Context, name string) context.Context {
	return scope.Enter(ctx, name)
}

// OnScopeExit реализует Subscriber.
func (b *Bridge) OnScopeExit(ctx context.Context) context.Context {
	return scope.Exit(ctx)
}

// OnEvent реализует Subscriber.
// Ошибка записи возвращается как AppError с кодом EVENTLOG.WRITE_FAILED
// и исходной ошибкой в Cause.
func (b *Bridge) OnEvent(ctx context.Context, ev record.Event) error {
	rec := record.Format(ev, scope.Chain(ctx))

	start := b.now()
	err := b.writer.Write(b.source, rec)
	b.metrics.RecordWrite(ev.Level.String(), rec.Category.String(), b.now().Sub(start), err == nil)

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.AddEvent(SpanEventName, trace.WithAttributes(
			attribute.Int64("eventlog.id", int64(rec.ID)),
			attribute.String("eventlog.category", rec.Category.String()),
			attribute.Bool("eventlog.written", err == nil),
		))
	}

	if err != nil {
		b.logger.Debug("запись в журнал событий не удалась",
			"source", b.source,
			"id", rec.ID,
			"category", rec.Category.String(),
			"error", err.Error(),
		)
		return apperrors.NewAppError(apperrors.ErrEventLogWrite,
			"не удалось записать событие в журнал "+b.source, err)
	}
	return nil
}
