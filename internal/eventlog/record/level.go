// Package record преобразует событие логирования в запись журнала событий ОС.
//
// Запись состоит из трёх частей: числовой идентификатор события,
// категория важности журнала и многострочное текстовое тело.
// Преобразование тотально: Format никогда не возвращает ошибку.
package record

import (
	"fmt"
	"strings"
)

// Level - уровень важности события, упорядоченный от наименее к наиболее важному.
type Level int

// Поддерживаемые уровни событий.
const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// String возвращает имя уровня в верхнем регистре.
func (l Level) String() string {
	switch l.clamp() {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// clamp приводит значение вне диапазона к ближайшему известному уровню,
// чтобы отображения уровня были тотальными.
func (l Level) clamp() Level {
	if l < LevelTrace {
		return LevelTrace
	}
	if l > LevelError {
		return LevelError
	}
	return l
}

// ParseLevel разбирает имя уровня без учёта регистра.
// Допускается "warning" как синоним "warn".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("record: неизвестный уровень %q", s)
	}
}

// Category - категория важности в терминах журнала событий ОС.
type Category int

// Категории журнала событий.
const (
	CategoryInformation Category = iota
	CategoryWarning
	CategoryError
)

// String возвращает имя категории.
func (c Category) String() string {
	switch c {
	case CategoryWarning:
		return "Warning"
	case CategoryError:
		return "Error"
	default:
		return "Information"
	}
}

// CategoryOf отображает уровень события в категорию журнала.
// ERROR → Error, WARN → Warning, остальные → Information.
func CategoryOf(l Level) Category {
	switch l.clamp() {
	case LevelError:
		return CategoryError
	case LevelWarn:
		return CategoryWarning
	case LevelTrace, LevelDebug, LevelInfo:
		return CategoryInformation
	}
	return CategoryInformation
}

// LevelID возвращает идентификатор события по умолчанию для уровня.
// Используется когда событие не несёт корректного поля id.
// Значения стабильны и различны для каждого уровня.
func LevelID(l Level) uint32 {
	switch l.clamp() {
	case LevelTrace:
		return 1
	case LevelDebug:
		return 2
	case LevelInfo:
		return 3
	case LevelWarn:
		return 4
	default:
		return 5
	}
}
