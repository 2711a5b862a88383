package output

import (
	"io"
	"sync"

	"github.com/Kargones/winlog-bridge/internal/eventlog/record"
	"github.com/Kargones/winlog-bridge/internal/pkg/apperrors"
)

// Printer реализует eventlog.Writer, печатая записи вместо передачи в ОС.
// Вывод каждой записи атомарен относительно других вызовов Write.
type Printer struct {
	mu     sync.Mutex
	w      io.Writer
	format Writer
}

// NewPrinter создаёт Printer, пишущий в w в формате format ("json" или "text").
func NewPrinter(w io.Writer, format string) *Printer {
	return &Printer{w: w, format: NewWriter(format)}
}

// Write печатает запись от имени источника source.
func (p *Printer) Write(source string, rec record.Record) error {
	entry := &Entry{
		Source:   source,
		ID:       rec.ID,
		Category: rec.Category.String(),
		Body:     rec.Body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.format.Write(p.w, entry); err != nil {
		return apperrors.NewAppError(apperrors.ErrOutputFormat, "не удалось вывести запись", err)
	}
	return nil
}
