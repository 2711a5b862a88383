package config

import (
	"time"

	"github.com/Kargones/winlog-bridge/internal/pkg/tracing"
)

// TracingConfig содержит настройки OpenTelemetry трейсинга.
type TracingConfig struct {
	// Enabled включает отправку трейсов в OTLP бэкенд.
	Enabled bool `yaml:"enabled" env:"BR_TRACING_ENABLED"`

	// Endpoint - URL OTLP HTTP endpoint (например, http://jaeger:4318).
	Endpoint string `yaml:"endpoint" env:"BR_TRACING_ENDPOINT"`

	// ServiceName - имя сервиса для resource attributes.
	ServiceName string `yaml:"serviceName" env:"BR_TRACING_SERVICE_NAME" env-default:"winlog-bridge"`

	// Environment - окружение (production, staging, development).
	Environment string `yaml:"environment" env:"BR_TRACING_ENVIRONMENT" env-default:"production"`

	// Insecure - использовать HTTP вместо HTTPS для OTLP endpoint.
	Insecure bool `yaml:"insecure" env:"BR_TRACING_INSECURE"`

	// Timeout - таймаут для экспорта трейсов.
	Timeout time.Duration `yaml:"timeout" env:"BR_TRACING_TIMEOUT" env-default:"5s"`

	// SamplingRate - доля сэмплируемых трейсов (0.0 - ни один, 1.0 - все).
	// Без env-default: иначе явный 0.0 из YAML заменялся бы на default.
	SamplingRate float64 `yaml:"samplingRate" env:"BR_TRACING_SAMPLING_RATE"`
}

// getDefaultTracingConfig возвращает конфигурацию трейсинга по умолчанию.
func getDefaultTracingConfig() *TracingConfig {
	d := tracing.DefaultConfig()
	return &TracingConfig{
		Enabled:      d.Enabled,
		ServiceName:  d.ServiceName,
		Environment:  d.Environment,
		Insecure:     true,
		Timeout:      d.Timeout,
		SamplingRate: d.SamplingRate,
	}
}

// ToTracing преобразует TracingConfig в tracing.Config.
func (c *TracingConfig) ToTracing(version string) tracing.Config {
	return tracing.Config{
		Enabled:      c.Enabled,
		Endpoint:     c.Endpoint,
		ServiceName:  c.ServiceName,
		Version:      version,
		Environment:  c.Environment,
		Insecure:     c.Insecure,
		Timeout:      c.Timeout,
		SamplingRate: c.SamplingRate,
	}
}
