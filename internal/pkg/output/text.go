package output

import (
	"fmt"
	"io"
)

// TextWriter форматирует запись в человекочитаемый текст:
// заголовок с категорией, источником и ID, затем тело записи как есть.
type TextWriter struct{}

// NewTextWriter создаёт новый TextWriter.
func NewTextWriter() *TextWriter {
	return &TextWriter{}
}

// Write форматирует entry в текст и записывает в w.
func (t *TextWriter) Write(w io.Writer, entry *Entry) error {
	if entry == nil {
		return nil
	}
	if _, err := fmt.Fprintf(w, "[%s] %s #%d\n", entry.Category, entry.Source, entry.ID); err != nil {
		return err
	}
	_, err := io.WriteString(w, entry.Body)
	return err
}
