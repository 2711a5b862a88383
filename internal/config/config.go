// Package config загружает конфигурацию winlog-bridge.
//
// Порядок применения источников:
//  1. значения по умолчанию (DefaultConfig);
//  2. YAML файл (если указан путь), строгий разбор: неизвестные ключи - ошибка;
//  3. переменные окружения BR_* через cleanenv.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Kargones/winlog-bridge/internal/constants"
	"github.com/Kargones/winlog-bridge/internal/eventlog/record"
	"github.com/Kargones/winlog-bridge/internal/pkg/apperrors"
	"github.com/Kargones/winlog-bridge/internal/pkg/output"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"
)

// Config - полная конфигурация приложения.
type Config struct {
	// Command - выполняемая команда: relay, install-source, remove-source, version.
	Command string `yaml:"command" env:"BR_COMMAND" env-default:"relay"`

	// Source - имя источника событий в журнале ОС.
	Source string `yaml:"source" env:"BR_SOURCE" env-default:"winlog-bridge"`

	// Input - путь к входному потоку JSON Lines. Пусто или "-" - stdin.
	Input string `yaml:"input" env:"BR_INPUT"`

	// DryRun - печатать записи в stdout вместо журнала событий.
	DryRun bool `yaml:"dryRun" env:"BR_DRY_RUN"`

	// StopOnError - прерывать relay на первой ошибке записи.
	StopOnError bool `yaml:"stopOnError" env:"BR_STOP_ON_ERROR"`

	// OutputFormat - формат dry-run вывода: text или json.
	OutputFormat string `yaml:"outputFormat" env:"BR_OUTPUT_FORMAT" env-default:"text"`

	// MirrorLevel - минимальный уровень диагностики relay, дублируемой
	// в журнал событий (trace..error). Пусто - дублирование выключено.
	MirrorLevel string `yaml:"mirrorLevel" env:"BR_MIRROR_LEVEL"`

	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
}

// DefaultConfig возвращает конфигурацию по умолчанию.
func DefaultConfig() *Config {
	return &Config{
		Command:      constants.CommandRelay,
		Source:       constants.DefaultSource,
		OutputFormat: output.FormatText,
		Logging:      *getDefaultLoggingConfig(),
		Metrics:      *getDefaultMetricsConfig(),
		Tracing:      *getDefaultTracingConfig(),
	}
}

// Load загружает конфигурацию из YAML файла path (пустой path - без файла)
// и переменных окружения, затем проверяет её.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := readFile(path, cfg); err != nil {
			return nil, err
		}
	}

	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigParse,
			"ошибка чтения переменных окружения", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	f, err := os.Open(path) //nolint:gosec // путь задаётся оператором
	if err != nil {
		return apperrors.NewAppError(apperrors.ErrConfigLoad,
			fmt.Sprintf("не удалось открыть файл конфигурации %s", path), err)
	}
	defer func() { _ = f.Close() }() //nolint:errcheck // файл только для чтения

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return apperrors.NewAppError(apperrors.ErrConfigParse,
			fmt.Sprintf("ошибка разбора файла конфигурации %s", path), err)
	}
	return nil
}

// Validate проверяет корректность конфигурации.
// Возвращает AppError с кодом CONFIG.VALIDATION_FAILED.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Source) == "" {
		errs = append(errs, errors.New("source не может быть пустым"))
	}
	switch c.OutputFormat {
	case output.FormatText, output.FormatJSON:
	default:
		errs = append(errs, fmt.Errorf("неизвестный outputFormat %q", c.OutputFormat))
	}
	if c.MirrorLevel != "" {
		if _, err := record.ParseLevel(c.MirrorLevel); err != nil {
			errs = append(errs, fmt.Errorf("mirrorLevel: %w", err))
		}
	}
	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, err)
	}
	metricsCfg := c.Metrics.ToMetrics()
	if err := metricsCfg.Validate(); err != nil {
		errs = append(errs, err)
	}
	tracingCfg := c.Tracing.ToTracing(constants.Version)
	if err := tracingCfg.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return apperrors.NewAppError(apperrors.ErrConfigValidate,
			"некорректная конфигурация", errors.Join(errs...))
	}
	return nil
}

// ReadsStdin сообщает, читается ли входной поток из stdin.
func (c *Config) ReadsStdin() bool {
	return c.Input == "" || c.Input == "-"
}
