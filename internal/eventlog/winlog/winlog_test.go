package winlog

import (
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/Kargones/winlog-bridge/internal/eventlog/record"
	"github.com/Kargones/winlog-bridge/internal/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHandle запоминает вызовы нативных методов.
type fakeHandle struct {
	mu     sync.Mutex
	calls  []string
	ids    []uint32
	bodies []string
	err    error
	closed bool
	// late - нативные вызовы после Close.
	late int
}

func (f *fakeHandle) record(kind string, eid uint32, msg string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		f.late++
	}
	f.calls = append(f.calls, kind)
	f.ids = append(f.ids, eid)
	f.bodies = append(f.bodies, msg)
	return f.err
}

func (f *fakeHandle) Info(eid uint32, msg string) error    { return f.record("info", eid, msg) }
func (f *fakeHandle) Warning(eid uint32, msg string) error { return f.record("warning", eid, msg) }
func (f *fakeHandle) Error(eid uint32, msg string) error   { return f.record("error", eid, msg) }
func (f *fakeHandle) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// TestWriter_DispatchByCategory проверяет выбор нативного вызова по категории.
func TestWriter_DispatchByCategory(t *testing.T) {
	h := &fakeHandle{}
	w := newWriter(func(string) (handle, error) { return h, nil })

	require.NoError(t, w.Write("svc", record.Record{ID: 1, Category: record.CategoryInformation, Body: "a"}))
	require.NoError(t, w.Write("svc", record.Record{ID: 2, Category: record.CategoryWarning, Body: "b"}))
	require.NoError(t, w.Write("svc", record.Record{ID: 3, Category: record.CategoryError, Body: "c"}))

	assert.Equal(t, []string{"info", "warning", "error"}, h.calls)
	assert.Equal(t, []uint32{1, 2, 3}, h.ids)
	assert.Equal(t, []string{"a", "b", "c"}, h.bodies)
}

// TestWriter_OpensSourceOnce проверяет кэширование хэндла по имени источника.
func TestWriter_OpensSourceOnce(t *testing.T) {
	opened := map[string]int{}
	w := newWriter(func(source string) (handle, error) {
		opened[source]++
		return &fakeHandle{}, nil
	})

	for i := 0; i < 3; i++ {
		require.NoError(t, w.Write("a", record.Record{}))
	}
	require.NoError(t, w.Write("b", record.Record{}))

	assert.Equal(t, map[string]int{"a": 1, "b": 1}, opened)

	require.NoError(t, w.Close())
	require.NoError(t, w.Write("a", record.Record{}))
	assert.Equal(t, 2, opened["a"], "после Close источник открывается заново")
}

// TestWriter_OpenFailure проверяет ошибку открытия источника.
func TestWriter_OpenFailure(t *testing.T) {
	cause := errors.New("access denied")
	w := newWriter(func(string) (handle, error) { return nil, cause })

	err := w.Write("svc", record.Record{})

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, apperrors.ErrEventLogSource, apperrors.CodeOf(err))
}

// TestWriter_NativeFailure проверяет что ошибка нативной записи возвращается как есть.
func TestWriter_NativeFailure(t *testing.T) {
	cause := errors.New("event log full")
	w := newWriter(func(string) (handle, error) { return &fakeHandle{err: cause}, nil })

	err := w.Write("svc", record.Record{Category: record.CategoryError})

	assert.Same(t, cause, err)
}

// TestWriter_Close закрывает все хэндлы.
func TestWriter_Close(t *testing.T) {
	handles := []*fakeHandle{}
	w := newWriter(func(string) (handle, error) {
		h := &fakeHandle{}
		handles = append(handles, h)
		return h, nil
	})
	require.NoError(t, w.Write("a", record.Record{}))
	require.NoError(t, w.Write("b", record.Record{}))

	require.NoError(t, w.Close())

	require.Len(t, handles, 2)
	for _, h := range handles {
		assert.True(t, h.closed)
	}
}

// TestWriter_ConcurrentWriteAndClose проверяет что Close не закрывает хэндл
// под выполняющейся записью. Запускать с -race.
func TestWriter_ConcurrentWriteAndClose(t *testing.T) {
	var (
		openMu  sync.Mutex
		handles []*fakeHandle
	)
	w := newWriter(func(string) (handle, error) {
		h := &fakeHandle{}
		openMu.Lock()
		handles = append(handles, h)
		openMu.Unlock()
		return h, nil
	})

	const writers, perWriter = 8, 2000
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				assert.NoError(t, w.Write("svc", record.Record{ID: uint32(j)}))
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for k := 0; k < 200; k++ {
			assert.NoError(t, w.Close())
			time.Sleep(50 * time.Microsecond)
		}
	}()

	wg.Wait()
	<-done
	require.NoError(t, w.Close())

	total := 0
	for _, h := range handles {
		h.mu.Lock()
		assert.Zero(t, h.late, "нативная запись в закрытый хэндл")
		total += len(h.calls)
		h.mu.Unlock()
	}
	assert.Equal(t, writers*perWriter, total)
}

// TestSanitize проверяет удаление NUL и замену некорректного UTF-8.
func TestSanitize(t *testing.T) {
	assert.Equal(t, "ID: 1\n\nmessage: ok\n\n", Sanitize("ID: 1\n\nmessage: ok\n\n"))
	assert.Equal(t, "ab", Sanitize("a\x00b"))
	assert.Equal(t, "a\uFFFDb", Sanitize("a\xffb"))
	assert.Equal(t, "путь: \"C:\\\\Windows\"", Sanitize("путь: \"C:\\\\Windows\""))
}

// TestNewWriter_Unsupported проверяет поведение на платформах без Event Log.
func TestNewWriter_Unsupported(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("на Windows журнал событий доступен")
	}

	w := NewWriter()
	err := w.Write("svc", record.Record{})

	assert.ErrorIs(t, err, ErrUnsupported)
	assert.ErrorIs(t, Install("svc"), ErrUnsupported)
	assert.ErrorIs(t, Remove("svc"), ErrUnsupported)
}
