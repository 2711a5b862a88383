package record

import (
	"strconv"
	"strings"
)

// IDField - имя поля, значение которого задаёт идентификатор записи.
// Поле потребляется при вычислении идентификатора и не попадает в тело.
const IDField = "id"

// MessageField - имя поля, которое фронтенды (slog Handler, relay) считают
// сообщением события, если собственное сообщение пусто.
const MessageField = "message"

// Field - именованное поле события, значение уже отрендерено в текст.
type Field struct {
	Name  string
	Value string
}

// Event - неизменяемый снимок события логирования.
// Пустой Message означает отсутствие сообщения.
type Event struct {
	Level   Level
	Message string
	Fields  []Field
}

// Record - запись, передаваемая в журнал событий ОС.
type Record struct {
	ID       uint32
	Category Category
	Body     string
}

// ParseID разбирает текст поля id как беззнаковое десятичное 32-битное число.
// Идентификатор события Windows имеет тип DWORD, поэтому значения,
// не помещающиеся в 32 бита, считаются некорректными.
func ParseID(text string) (uint32, bool) {
	v, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}

// Format строит запись из события и цепочки контекстов (внешний первым).
//
// Тело записи:
//
//	ID: <id>
//
//	source: a/b/c
//	message: <сообщение>
//	<name>: <value>
//	...
//
// и завершающая пустая строка. Строка source опускается при пустой цепочке,
// message - при отсутствии сообщения.
func Format(ev Event, chain []string) Record {
	id := LevelID(ev.Level)
	fields := make([]Field, 0, len(ev.Fields))
	index := make(map[string]int, len(ev.Fields))

	for _, f := range ev.Fields {
		if f.Name == IDField {
			// Последнее корректное значение id побеждает.
			if v, ok := ParseID(f.Value); ok {
				id = v
			}
			continue
		}
		// Повторяющееся имя сохраняет первую позицию и последнее значение.
		if i, seen := index[f.Name]; seen {
			fields[i].Value = f.Value
			continue
		}
		index[f.Name] = len(fields)
		fields = append(fields, f)
	}

	var b strings.Builder
	b.WriteString("ID: ")
	b.WriteString(strconv.FormatUint(uint64(id), 10))
	b.WriteString("\n\n")

	if len(chain) > 0 {
		b.WriteString("source: ")
		b.WriteString(strings.Join(chain, "/"))
		b.WriteByte('\n')
	}
	if ev.Message != "" {
		b.WriteString("message: ")
		b.WriteString(ev.Message)
		b.WriteByte('\n')
	}
	for _, f := range fields {
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(f.Value)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	return Record{
		ID:       id,
		Category: CategoryOf(ev.Level),
		Body:     b.String(),
	}
}
