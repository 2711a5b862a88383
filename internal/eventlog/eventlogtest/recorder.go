// Package eventlogtest предоставляет in-memory Writer для тестов.
package eventlogtest

import (
	"sync"

	"github.com/Kargones/winlog-bridge/internal/eventlog/record"
)

// Entry - одна перехваченная запись.
type Entry struct {
	Source string
	Record record.Record
}

// Recorder сохраняет все записи в памяти. Безопасен для конкурентного использования.
// Если задан Err, Write возвращает его и запись не сохраняется.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
	err     error
	calls   int
}

// NewRecorder создаёт пустой Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// FailWith заставляет последующие вызовы Write возвращать err (nil - снять ошибку).
func (r *Recorder) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

// Write сохраняет запись. Сигнатура совпадает с eventlog.Writer.
func (r *Recorder) Write(source string, rec record.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, Entry{Source: source, Record: rec})
	return nil
}

// Entries возвращает копию сохранённых записей.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Last возвращает последнюю запись; ok=false если записей нет.
func (r *Recorder) Last() (Entry, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.entries) == 0 {
		return Entry{}, false
	}
	return r.entries[len(r.entries)-1], true
}

// Calls возвращает количество вызовов Write, включая неуспешные.
func (r *Recorder) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}
