package output

import (
	"encoding/json"
	"io"
)

// JSONWriter выводит каждую запись одной строкой JSON (JSON Lines),
// чтобы поток записей можно было обрабатывать построчно.
type JSONWriter struct{}

// NewJSONWriter создаёт новый JSONWriter.
func NewJSONWriter() *JSONWriter {
	return &JSONWriter{}
}

// Write сериализует entry в JSON и записывает в w.
func (j *JSONWriter) Write(w io.Writer, entry *Entry) error {
	if entry == nil {
		return nil
	}
	return json.NewEncoder(w).Encode(entry)
}
