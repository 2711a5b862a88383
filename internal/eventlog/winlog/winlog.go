// Package winlog пишет записи в журнал событий Windows (Event Log)
// через golang.org/x/sys/windows/svc/eventlog.
//
// На других платформах Writer создаётся, но каждая запись возвращает
// ErrUnsupported: переносимого бэкенда журнала нет намеренно.
package winlog

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Kargones/winlog-bridge/internal/eventlog/record"
	"github.com/Kargones/winlog-bridge/internal/pkg/apperrors"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// ErrUnsupported возвращается на платформах без журнала событий Windows.
var ErrUnsupported = errors.New("winlog: журнал событий Windows недоступен на этой платформе")

// handle - открытый источник событий.
// Методы совпадают с *eventlog.Log из x/sys.
type handle interface {
	Info(eid uint32, msg string) error
	Warning(eid uint32, msg string) error
	Error(eid uint32, msg string) error
	Close() error
}

// Writer реализует eventlog.Writer. Хэндл источника открывается при первой
// записи и переиспользуется до Close. Безопасен для конкурентного использования:
// нативная запись выполняется под RLock, Close берёт Lock и ждёт завершения
// всех начатых записей, поэтому закрытый хэндл никогда не передаётся в ReportEvent.
type Writer struct {
	mu      sync.RWMutex
	handles map[string]handle
	open    func(source string) (handle, error)
}

// NewWriter создаёт Writer для журнала событий текущей платформы.
func NewWriter() *Writer {
	return newWriter(openSource)
}

func newWriter(open func(string) (handle, error)) *Writer {
	return &Writer{handles: make(map[string]handle), open: open}
}

// Write записывает запись от имени источника source.
func (w *Writer) Write(source string, rec record.Record) error {
	w.mu.RLock()
	if h, ok := w.handles[source]; ok {
		defer w.mu.RUnlock()
		return report(h, rec)
	}
	w.mu.RUnlock()

	// Первая запись источника: открытие и запись под эксклюзивной блокировкой.
	w.mu.Lock()
	defer w.mu.Unlock()
	h, err := w.handleLocked(source)
	if err != nil {
		return err
	}
	return report(h, rec)
}

// handleLocked возвращает хэндл source, открывая его при необходимости.
// Вызывается под w.mu.Lock.
func (w *Writer) handleLocked(source string) (handle, error) {
	if h, ok := w.handles[source]; ok {
		return h, nil
	}
	h, err := w.open(source)
	if err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrEventLogSource,
			fmt.Sprintf("не удалось открыть источник событий %q", source), err)
	}
	w.handles[source] = h
	return h, nil
}

// Close закрывает все открытые хэндлы. Writer можно использовать повторно:
// следующая запись откроет источник заново.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	for source, h := range w.handles {
		if err := h.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %q: %w", source, err))
		}
		delete(w.handles, source)
	}
	return errors.Join(errs...)
}

// report вызывает нативную запись, соответствующую категории.
func report(h handle, rec record.Record) error {
	body := Sanitize(rec.Body)
	switch rec.Category {
	case record.CategoryError:
		return h.Error(rec.ID, body)
	case record.CategoryWarning:
		return h.Warning(rec.ID, body)
	default:
		return h.Info(rec.ID, body)
	}
}

// Sanitize подготавливает тело записи к передаче в Win32 API:
// некорректные UTF-8 последовательности заменяются на U+FFFD,
// символы NUL удаляются (строки передаются NUL-терминированными).
func Sanitize(body string) string {
	t := transform.Chain(
		runes.ReplaceIllFormed(),
		runes.Remove(runes.Predicate(func(r rune) bool { return r == 0 })),
	)
	out, _, err := transform.String(t, body)
	if err != nil {
		return body
	}
	return out
}
