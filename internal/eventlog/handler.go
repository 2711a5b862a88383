package eventlog

import (
	"context"
	"encoding"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Kargones/winlog-bridge/internal/eventlog/record"
)

// LevelTrace - уровень slog для TRACE-событий, ниже slog.LevelDebug.
const LevelTrace = slog.Level(-8)

// AttrWriteFailure - ключ bool-атрибута, которым помечается диагностика
// о неудачной записи в журнал. Handler не передаёт такие записи мосту:
// повторная запись через тот же Writer дублировала бы нативный вызов и метрики.
const AttrWriteFailure = "write_failure"

var _ slog.Handler = (*Handler)(nil)

// HandlerOptions настраивает Handler.
type HandlerOptions struct {
	// Level - минимальный уровень slog. По умолчанию slog.LevelInfo.
	Level slog.Leveler
}

// Handler реализует slog.Handler поверх Subscriber.
// Цепочка контекстов берётся из ctx, переданного в slog.Logger.*Context.
//
// Пустое сообщение записи заменяется значением атрибута вызова "message"
// (без группы); при непустом сообщении такой атрибут остаётся обычным полем.
type Handler struct {
	sub    Subscriber
	level  slog.Leveler
	fields []record.Field
	group  string
	// drop - через WithAttrs получен AttrWriteFailure=true.
	drop bool
}

// NewHandler создаёт slog.Handler, доставляющий записи в sub.
func NewHandler(sub Subscriber, opts *HandlerOptions) *Handler {
	h := &Handler{sub: sub, level: slog.LevelInfo}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled реализует slog.Handler.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle реализует slog.Handler.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	if h.drop {
		return nil
	}

	msg := r.Message
	drop := false
	fields := make([]record.Field, len(h.fields), len(h.fields)+r.NumAttrs())
	copy(fields, h.fields)
	r.Attrs(func(a slog.Attr) bool {
		if isWriteFailure(a) {
			drop = true
			return false
		}
		if msg == "" && h.group == "" && a.Key == record.MessageField {
			msg = messageText(a.Value.Resolve())
			return true
		}
		fields = appendAttr(fields, h.group, a)
		return true
	})
	if drop {
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	return h.sub.OnEvent(ctx, record.Event{
		Level:   LevelFromSlog(r.Level),
		Message: msg,
		Fields:  fields,
	})
}

// WithAttrs реализует slog.Handler. Атрибуты рендерятся один раз.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := *h
	h2.fields = make([]record.Field, len(h.fields), len(h.fields)+len(attrs))
	copy(h2.fields, h.fields)
	for _, a := range attrs {
		if isWriteFailure(a) {
			h2.drop = true
			continue
		}
		h2.fields = appendAttr(h2.fields, h.group, a)
	}
	return &h2
}

func isWriteFailure(a slog.Attr) bool {
	if a.Key != AttrWriteFailure {
		return false
	}
	v := a.Value.Resolve()
	return v.Kind() == slog.KindBool && v.Bool()
}

// messageText - текст сообщения из атрибута: строка как есть, остальное через RenderValue.
func messageText(v slog.Value) string {
	if v.Kind() == slog.KindString {
		return v.String()
	}
	return RenderValue(v)
}

// WithGroup реализует slog.Handler. Группы разворачиваются в префикс "group.".
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.group = h.group + name + "."
	return &h2
}

// LevelFromSlog отображает уровень slog на уровень события:
// ниже Debug - TRACE, ниже Info - DEBUG, ниже Warn - INFO, ниже Error - WARN.
func LevelFromSlog(l slog.Level) record.Level {
	switch {
	case l < slog.LevelDebug:
		return record.LevelTrace
	case l < slog.LevelInfo:
		return record.LevelDebug
	case l < slog.LevelWarn:
		return record.LevelInfo
	case l < slog.LevelError:
		return record.LevelWarn
	default:
		return record.LevelError
	}
}

// SlogLevel - обратное отображение: минимальный уровень slog для уровня события.
func SlogLevel(l record.Level) slog.Level {
	switch l {
	case record.LevelTrace:
		return LevelTrace
	case record.LevelDebug:
		return slog.LevelDebug
	case record.LevelInfo:
		return slog.LevelInfo
	case record.LevelWarn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func appendAttr(fields []record.Field, prefix string, a slog.Attr) []record.Field {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return fields
	}
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		if len(attrs) == 0 {
			return fields
		}
		// Группа без ключа встраивается в текущий уровень.
		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}
		for _, ga := range attrs {
			fields = appendAttr(fields, p, ga)
		}
		return fields
	}

	name := prefix + a.Key
	if name == record.IDField && a.Value.Kind() == slog.KindString {
		// Идентификатор разбирается как число, поэтому передаётся без кавычек.
		return append(fields, record.Field{Name: name, Value: a.Value.String()})
	}
	return append(fields, record.Field{Name: name, Value: RenderValue(a.Value)})
}

// RenderValue рендерит значение slog в текст в debug-стиле:
// строки в кавычках Go, числа и bool как есть. Функция тотальна -
// panic при форматировании произвольного значения превращается в маркер
// "<!render error: ...>".
func RenderValue(v slog.Value) (s string) {
	switch v.Kind() {
	case slog.KindString:
		return strconv.Quote(v.String())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindGroup:
		parts := make([]string, 0, len(v.Group()))
		for _, a := range v.Group() {
			parts = append(parts, a.Key+": "+RenderValue(a.Value.Resolve()))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	}

	defer func() {
		if r := recover(); r != nil {
			s = fmt.Sprintf("<!render error: %v>", r)
		}
	}()

	switch x := v.Any().(type) {
	case nil:
		return "nil"
	case error:
		return strconv.Quote(x.Error())
	case fmt.Stringer:
		return strconv.Quote(x.String())
	case encoding.TextMarshaler:
		b, err := x.MarshalText()
		if err != nil {
			return fmt.Sprintf("<!render error: %v>", err)
		}
		return strconv.Quote(string(b))
	case []byte:
		return strconv.Quote(string(x))
	default:
		return fmt.Sprintf("%+v", x)
	}
}
