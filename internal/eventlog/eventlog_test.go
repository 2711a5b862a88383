package eventlog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Kargones/winlog-bridge/internal/eventlog/eventlogtest"
	"github.com/Kargones/winlog-bridge/internal/eventlog/record"
	"github.com/Kargones/winlog-bridge/internal/pkg/apperrors"
	"github.com/Kargones/winlog-bridge/internal/pkg/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// spyCollector запоминает вызовы RecordWrite.
type spyCollector struct {
	mu    sync.Mutex
	calls []string
}

func (s *spyCollector) RecordWrite(level, category string, _ time.Duration, success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := "ok"
	if !success {
		status = "fail"
	}
	s.calls = append(s.calls, level+"/"+category+"/"+status)
}

func (s *spyCollector) Push(context.Context) error { return nil }

// TestBridge_OnEvent_WritesRecord проверяет запись события с источником из конструктора.
func TestBridge_OnEvent_WritesRecord(t *testing.T) {
	rec := eventlogtest.NewRecorder()
	b := New("MyService", rec)

	err := b.OnEvent(context.Background(), record.Event{Level: record.LevelInfo, Message: "hello world!"})
	require.NoError(t, err)

	entry, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "MyService", entry.Source)
	assert.Equal(t, uint32(3), entry.Record.ID)
	assert.Equal(t, record.CategoryInformation, entry.Record.Category)
	assert.Equal(t, "ID: 3\n\nmessage: hello world!\n\n", entry.Record.Body)
	assert.Equal(t, "MyService", b.Source())
}

// TestBridge_NestedScopes проверяет цепочку контекстов в записи и возврат после выхода.
func TestBridge_NestedScopes(t *testing.T) {
	rec := eventlogtest.NewRecorder()
	b := New("svc", rec)

	ctx := b.OnScopeEnter(context.Background(), "outer")
	ctx = b.OnScopeEnter(ctx, "inner")
	require.NoError(t, b.OnEvent(ctx, record.Event{Level: record.LevelWarn, Message: "deep"}))

	ctx = b.OnScopeExit(ctx)
	require.NoError(t, b.OnEvent(ctx, record.Event{Level: record.LevelError, Message: "shallow"}))

	entries := rec.Entries()
	require.Len(t, entries, 2)
	assert.Contains(t, entries[0].Record.Body, "\nsource: outer/inner\n")
	assert.Equal(t, record.CategoryWarning, entries[0].Record.Category)
	assert.Contains(t, entries[1].Record.Body, "\nsource: outer\n")
	assert.NotContains(t, entries[1].Record.Body, "inner")
	assert.Equal(t, record.CategoryError, entries[1].Record.Category)
}

// TestBridge_OnScopeExit_Unbalanced проверяет что несбалансированный выход - нарушение предусловия.
func TestBridge_OnScopeExit_Unbalanced(t *testing.T) {
	b := New("svc", eventlogtest.NewRecorder())

	assert.Panics(t, func() { b.OnScopeExit(context.Background()) })
}

// TestBridge_OnEvent_WriteFailure проверяет что ошибка Writer пробрасывается без повторов.
func TestBridge_OnEvent_WriteFailure(t *testing.T) {
	rec := eventlogtest.NewRecorder()
	cause := errors.New("source not registered")
	rec.FailWith(cause)
	spy := &spyCollector{}
	b := New("svc", rec, WithMetrics(spy), WithLogger(logging.NewNopLogger()))

	err := b.OnEvent(context.Background(), record.Event{Level: record.LevelError, Message: "x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, apperrors.ErrEventLogWrite, apperrors.CodeOf(err))
	assert.Equal(t, 1, rec.Calls(), "запись не должна повторяться")
	assert.Equal(t, []string{"ERROR/Error/fail"}, spy.calls)
}

// TestBridge_OnEvent_Metrics проверяет учёт успешных записей в метриках.
func TestBridge_OnEvent_Metrics(t *testing.T) {
	spy := &spyCollector{}
	b := New("svc", eventlogtest.NewRecorder(), WithMetrics(spy), WithMetrics(nil), WithLogger(nil))

	require.NoError(t, b.OnEvent(context.Background(), record.Event{Level: record.LevelDebug}))
	require.NoError(t, b.OnEvent(context.Background(), record.Event{Level: record.LevelWarn}))

	assert.Equal(t, []string{"DEBUG/Information/ok", "WARN/Warning/ok"}, spy.calls)
}

// TestBridge_OnEvent_SpanEvent проверяет span event на текущем span-е.
func TestBridge_OnEvent_SpanEvent(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	b := New("svc", eventlogtest.NewRecorder())

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	require.NoError(t, b.OnEvent(ctx, record.Event{Level: record.LevelInfo, Fields: []record.Field{{Name: "id", Value: "77"}}}))
	span.End()

	require.Len(t, recorder.Ended(), 1)
	events := recorder.Ended()[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, SpanEventName, events[0].Name)

	attrs := make(map[string]any)
	for _, kv := range events[0].Attributes {
		attrs[string(kv.Key)] = kv.Value.AsInterface()
	}
	assert.Equal(t, int64(77), attrs["eventlog.id"])
	assert.Equal(t, "Information", attrs["eventlog.category"])
	assert.Equal(t, true, attrs["eventlog.written"])
}

// TestBridge_ConcurrentPaths проверяет что параллельные пути не смешивают цепочки.
func TestBridge_ConcurrentPaths(t *testing.T) {
	rec := eventlogtest.NewRecorder()
	b := New("svc", rec)

	var wg sync.WaitGroup
	for _, name := range []string{"a", "b", "c", "d"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			ctx := b.OnScopeEnter(context.Background(), name)
			for i := 0; i < 20; i++ {
				_ = b.OnEvent(ctx, record.Event{Level: record.LevelInfo, Message: name}) //nolint:errcheck // recorder не падает
			}
		}(name)
	}
	wg.Wait()

	entries := rec.Entries()
	require.Len(t, entries, 80)
	for _, e := range entries {
		var name string
		for _, n := range []string{"a", "b", "c", "d"} {
			if e.Record.Body == "ID: 3\n\nsource: "+n+"\nmessage: "+n+"\n\n" {
				name = n
			}
		}
		assert.NotEmpty(t, name, "цепочка и сообщение должны относиться к одному пути: %q", e.Record.Body)
	}
}

// TestWriterFunc проверяет адаптер функции к Writer.
func TestWriterFunc(t *testing.T) {
	var got string
	w := WriterFunc(func(source string, _ record.Record) error {
		got = source
		return nil
	})

	require.NoError(t, New("fn-source", w).OnEvent(context.Background(), record.Event{}))
	assert.Equal(t, "fn-source", got)
}
