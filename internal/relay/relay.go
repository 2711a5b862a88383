// Package relay читает поток уведомлений хост-фреймворка в формате JSON Lines
// и доставляет их Subscriber-у моста.
//
// Каждая строка - один JSON объект:
//
//	{"type":"enter","name":"outer"}
//	{"type":"event","level":"info","message":"hi","fields":{"id":7}}
//	{"type":"exit"}
//
// Один поток соответствует одному пути выполнения.
package relay

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/Kargones/winlog-bridge/internal/eventlog"
	"github.com/Kargones/winlog-bridge/internal/eventlog/record"
	"github.com/Kargones/winlog-bridge/internal/eventlog/scope"
	"github.com/Kargones/winlog-bridge/internal/pkg/apperrors"
	"github.com/Kargones/winlog-bridge/internal/pkg/logging"

	"github.com/valyala/fastjson"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Типы строк входного потока.
const (
	TypeEnter = "enter"
	TypeExit  = "exit"
	TypeEvent = "event"
)

// MaxLineSize - максимальный размер одной строки входного потока.
const MaxLineSize = 1024 * 1024

// Stats - итоги обработки потока.
type Stats struct {
	// Lines - количество прочитанных непустых строк.
	Lines int `json:"lines"`

	// Events - количество событий, переданных мосту.
	Events int `json:"events"`

	// Scopes - количество входов в контекст.
	Scopes int `json:"scopes"`

	// Skipped - строки, пропущенные из-за ошибок разбора
	// или несбалансированного выхода из контекста.
	Skipped int `json:"skipped"`

	// Failed - события, запись которых в журнал не удалась.
	Failed int `json:"failed"`

	// Unclosed - контексты, оставшиеся открытыми в конце потока.
	Unclosed int `json:"unclosed"`
}

// frame - открытый контекст: ctx до входа и span контекста.
type frame struct {
	parent context.Context
	span   trace.Span
}

// Relay доставляет уведомления из потока в Subscriber.
type Relay struct {
	sub         eventlog.Subscriber
	tracer      trace.Tracer
	logger      logging.Logger
	stopOnError bool
	parser      fastjson.ParserPool
}

// Option настраивает Relay.
type Option func(*Relay)

// WithTracer задаёт tracer для span-ов контекстов.
func WithTracer(t trace.Tracer) Option {
	return func(r *Relay) {
		if t != nil {
			r.tracer = t
		}
	}
}

// WithLogger задаёт logger для диагностики разбора потока.
func WithLogger(l logging.Logger) Option {
	return func(r *Relay) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithStopOnError прерывает Run на первой ошибке записи
// или несбалансированном выходе из контекста.
func WithStopOnError(stop bool) Option {
	return func(r *Relay) {
		r.stopOnError = stop
	}
}

// New создаёт Relay поверх sub.
func New(sub eventlog.Subscriber, opts ...Option) *Relay {
	r := &Relay{
		sub:    sub,
		tracer: noop.NewTracerProvider().Tracer(""),
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run читает поток in до конца или до отмены ctx.
// Возвращает накопленную статистику и ошибку:
//   - ctx.Err() при отмене;
//   - INPUT.READ_FAILED при ошибке чтения;
//   - при StopOnError - первую ошибку записи или INPUT.UNBALANCED_SCOPE.
//
// Открытые в конце потока контексты закрываются, их span-ы завершаются.
func (r *Relay) Run(ctx context.Context, in io.Reader) (Stats, error) {
	var (
		stats Stats
		stack []frame
	)
	cur := ctx

	defer func() {
		stats.Unclosed = len(stack)
		for i := len(stack) - 1; i >= 0; i-- {
			stack[i].span.End()
		}
		if len(stack) > 0 {
			r.logger.Warn("поток завершён с незакрытыми контекстами",
				"depth", len(stack), "chain", scope.Chain(cur))
		}
	}()

	p := r.parser.Get()
	defer r.parser.Put(p)

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	lineNo := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		lineNo++

		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		stats.Lines++

		v, err := p.ParseBytes(line)
		if err != nil {
			stats.Skipped++
			r.logger.Log(cur, slog.LevelWarn, "некорректная строка JSON, пропущена", "line", lineNo, "error", err.Error())
			continue
		}

		switch typ := string(v.GetStringBytes("type")); typ {
		case TypeEnter:
			name := string(v.GetStringBytes("name"))
			if name == "" {
				stats.Skipped++
				r.logger.Log(cur, slog.LevelWarn, "enter без имени контекста, пропущен", "line", lineNo)
				continue
			}
			stack = append(stack, frame{parent: cur})
			cur, stack[len(stack)-1].span = scope.Span(r.sub.OnScopeEnter(cur, name), r.tracer)
			stats.Scopes++

		case TypeExit:
			if len(stack) == 0 {
				stats.Skipped++
				err := apperrors.NewAppError(apperrors.ErrInputUnbalanced,
					fmt.Sprintf("строка %d: exit без активного контекста", lineNo), nil)
				r.logger.Log(cur, slog.LevelWarn, "несбалансированный выход из контекста", "line", lineNo)
				if r.stopOnError {
					return stats, err
				}
				continue
			}
			// Уведомление о выходе; дальше используется сохранённый ctx родителя,
			// так как в нём та же цепочка и родительский span.
			r.sub.OnScopeExit(cur)
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			top.span.End()
			cur = top.parent

		case TypeEvent:
			ev, err := parseEvent(v)
			if err != nil {
				stats.Skipped++
				r.logger.Log(cur, slog.LevelWarn, "некорректное событие, пропущено", "line", lineNo, "error", err.Error())
				continue
			}
			stats.Events++
			if err := r.sub.OnEvent(cur, ev); err != nil {
				stats.Failed++
				r.logger.Log(cur, slog.LevelError, "не удалось записать событие", "line", lineNo, "error", err.Error(),
					eventlog.AttrWriteFailure, true)
				if r.stopOnError {
					return stats, err
				}
			}

		default:
			stats.Skipped++
			r.logger.Log(cur, slog.LevelWarn, "неизвестный тип строки, пропущена", "line", lineNo, "type", typ)
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, apperrors.NewAppError(apperrors.ErrInputRead,
			fmt.Sprintf("ошибка чтения потока после строки %d", lineNo), err)
	}
	return stats, nil
}

// parseEvent строит record.Event из JSON объекта события.
// Отсутствующий level означает info. Поле fields.message становится
// сообщением, если ключ message отсутствует или пуст.
func parseEvent(v *fastjson.Value) (record.Event, error) {
	ev := record.Event{Level: record.LevelInfo}

	if lv := v.Get("level"); lv != nil {
		b, err := lv.StringBytes()
		if err != nil {
			return ev, fmt.Errorf("level должен быть строкой: %w", err)
		}
		if ev.Level, err = record.ParseLevel(string(b)); err != nil {
			return ev, err
		}
	}

	if mv := v.Get("message"); mv != nil {
		ev.Message = messageText(mv)
	}

	if fv := v.Get("fields"); fv != nil {
		obj, err := fv.Object()
		if err != nil {
			return ev, fmt.Errorf("fields должен быть объектом: %w", err)
		}
		obj.Visit(func(key []byte, val *fastjson.Value) {
			name := string(key)
			if name == record.MessageField && ev.Message == "" {
				ev.Message = messageText(val)
				return
			}
			ev.Fields = append(ev.Fields, record.Field{Name: name, Value: renderField(name, val)})
		})
	}
	return ev, nil
}

// messageText - текст сообщения: строка как есть, null - отсутствие
// сообщения, остальное - компактный JSON.
func messageText(v *fastjson.Value) string {
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNull:
		return ""
	default:
		return v.String()
	}
}

// renderField преобразует значение поля в текст: строки в debug-форме
// (в кавычках с экранированием), поле id как есть, остальное - компактный JSON.
func renderField(name string, v *fastjson.Value) string {
	if v.Type() == fastjson.TypeString {
		s := string(v.GetStringBytes())
		if name == record.IDField {
			return s
		}
		return strconv.Quote(s)
	}
	return v.String()
}
