// Package output форматирует записи журнала событий для вывода в stdout.
// Используется в dry-run режиме (BR_DRY_RUN=true), когда записи
// показываются вместо передачи в журнал событий ОС.
package output

import "io"

// Entry - запись журнала в форме для вывода.
type Entry struct {
	// Source - имя источника событий.
	Source string `json:"source"`

	// ID - идентификатор события.
	ID uint32 `json:"id"`

	// Category - категория журнала: Information, Warning или Error.
	Category string `json:"category"`

	// Body - многострочное тело записи.
	Body string `json:"body"`
}

// Writer определяет интерфейс форматирования записи.
// Реализации: JSONWriter, TextWriter.
type Writer interface {
	// Write форматирует entry и записывает в w.
	Write(w io.Writer, entry *Entry) error
}
