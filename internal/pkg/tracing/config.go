package tracing

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Ошибки Validate. Тексты называют переменные окружения моста,
// через которые задаётся соответствующее значение.
var (
	ErrTracingEndpointRequired      = errors.New("tracing: при BR_TRACING_ENABLED=true нужен BR_TRACING_ENDPOINT")
	ErrTracingEndpointInvalidFormat = errors.New("tracing: BR_TRACING_ENDPOINT должен быть URL OTLP HTTP коллектора со схемой и host, например http://otel-collector:4318")
	ErrTracingServiceNameRequired   = errors.New("tracing: BR_TRACING_SERVICE_NAME не может быть пустым")
	ErrTracingTimeoutInvalid        = errors.New("tracing: BR_TRACING_TIMEOUT экспорта span-ов должен быть больше нуля")
	ErrTracingSamplingRateInvalid   = errors.New("tracing: sampling rate (BR_TRACING_SAMPLING_RATE) задаётся долью от 0.0 до 1.0")
)

// Config - настройки экспорта span-ов контекстов моста.
// Каждый enter в потоке открывает span, exit его закрывает.
type Config struct {
	Enabled bool

	// Endpoint - URL OTLP HTTP коллектора, например "http://otel-collector:4318".
	// Путь в URL, если задан, заменяет стандартный /v1/traces.
	Endpoint string

	ServiceName string
	Version     string
	Environment string
	Insecure    bool
	Timeout     time.Duration

	// SamplingRate - доля сэмплируемых потоков: 0 - ни одного, 1 - все.
	SamplingRate float64
}

// Validate проверяет конфигурацию. При Enabled == false остальные поля
// не проверяются: provider в этом случае no-op.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Endpoint == "" {
		return ErrTracingEndpointRequired
	}
	if _, err := c.endpointURL(); err != nil {
		return fmt.Errorf("%w, получено: %q", ErrTracingEndpointInvalidFormat, c.Endpoint)
	}
	if c.ServiceName == "" {
		return ErrTracingServiceNameRequired
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%w, получено: %s", ErrTracingTimeoutInvalid, c.Timeout)
	}
	if c.SamplingRate < 0.0 || c.SamplingRate > 1.0 {
		return fmt.Errorf("%w, получено: %g", ErrTracingSamplingRateInvalid, c.SamplingRate)
	}
	return nil
}

// EndpointHost возвращает host:port из Endpoint в виде, который ждёт
// otlptracehttp.WithEndpoint. Если Endpoint не URL, он возвращается как есть.
func (c *Config) EndpointHost() string {
	u, err := c.endpointURL()
	if err != nil {
		return c.Endpoint
	}
	return u.Host
}

// EndpointPath возвращает путь из Endpoint или "", если путь не задан.
func (c *Config) EndpointPath() string {
	u, err := c.endpointURL()
	if err != nil {
		return ""
	}
	return strings.TrimRight(u.Path, "/")
}

func (c *Config) endpointURL() (*url.URL, error) {
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("нет схемы или host")
	}
	return u, nil
}

// DefaultConfig возвращает конфигурацию по умолчанию: экспорт выключен.
func DefaultConfig() Config {
	return Config{
		ServiceName:  "winlog-bridge",
		Environment:  "production",
		Timeout:      5 * time.Second,
		SamplingRate: 1.0,
	}
}
