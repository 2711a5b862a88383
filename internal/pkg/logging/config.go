package logging

import (
	"errors"
	"fmt"
)

// Форматы диагностики моста.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Уровни диагностики. Уровень trace моста в диагностике не используется:
// всё ниже info относится к debug.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

// Куда пишется диагностика. Журнал событий ОС сюда не входит:
// он подключается только как зеркало через Tee.
const (
	OutputStderr = "stderr"
	OutputFile   = "file"
)

// Значения по умолчанию; их же использует config.DefaultConfig.
// Мост работает как долгоживущий процесс рядом с хостом, поэтому
// файл рядом с рабочим каталогом и двухнедельная ротация.
const (
	DefaultLevel      = LevelInfo
	DefaultFormat     = FormatText
	DefaultOutput     = OutputStderr
	DefaultFilePath   = "winlog-bridge.log"
	DefaultMaxSize    = 50 // MB
	DefaultMaxBackups = 5
	DefaultMaxAge     = 14 // days
	DefaultCompress   = true
)

// Ошибки проверки Config.
var (
	ErrLogLevelUnknown     = errors.New("logging: level диагностики моста должен быть debug, info, warn или error")
	ErrLogFormatUnknown    = errors.New("logging: format диагностики моста должен быть text или json")
	ErrLogOutputUnknown    = errors.New("logging: output диагностики моста должен быть stderr или file")
	ErrLogFilePathRequired = errors.New("logging: filePath обязателен при output=file (BR_LOG_FILE_PATH)")
	ErrLogRotationNegative = errors.New("logging: параметры ротации maxSize, maxBackups и maxAge не могут быть отрицательными")
)

// DefaultConfig возвращает Config со значениями по умолчанию.
func DefaultConfig() Config {
	return Config{
		Level:      DefaultLevel,
		Format:     DefaultFormat,
		Output:     DefaultOutput,
		FilePath:   DefaultFilePath,
		MaxSize:    DefaultMaxSize,
		MaxBackups: DefaultMaxBackups,
		MaxAge:     DefaultMaxAge,
		Compress:   DefaultCompress,
	}
}

// Config - настройки диагностики самого моста.
type Config struct {
	Format string
	Level  string
	Output string

	// FilePath используется только при Output == "file".
	FilePath string

	// Ротация lumberjack: MaxSize в МБ, MaxAge в днях. Ноль означает
	// значение lumberjack по умолчанию.
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// Validate проверяет значения до создания логгера. Пустые Level, Format
// и Output не допускаются: их заполняет DefaultConfig.
func (c Config) Validate() error {
	switch c.Level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
	default:
		return fmt.Errorf("%w, получено: %q", ErrLogLevelUnknown, c.Level)
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("%w, получено: %q", ErrLogFormatUnknown, c.Format)
	}
	switch c.Output {
	case OutputStderr:
	case OutputFile:
		if c.FilePath == "" {
			return ErrLogFilePathRequired
		}
	default:
		return fmt.Errorf("%w, получено: %q", ErrLogOutputUnknown, c.Output)
	}
	if c.MaxSize < 0 || c.MaxBackups < 0 || c.MaxAge < 0 {
		return ErrLogRotationNegative
	}
	return nil
}
