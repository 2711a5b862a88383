package tracing

import (
	"context"

	"github.com/Kargones/winlog-bridge/internal/pkg/logging"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// TracerName - имя instrumentation scope для span-ов моста.
const TracerName = "github.com/Kargones/winlog-bridge"

// Tracer возвращает tracer глобального TracerProvider.
// При выключенном трейсинге глобальный provider - noop, span-ы не экспортируются.
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// NewTracerProvider создаёт и регистрирует глобально OTel TracerProvider
// с OTLP HTTP exporter и BatchSpanProcessor.
// Если трейсинг выключен, возвращает nop shutdown function.
func NewTracerProvider(cfg Config, logger logging.Logger) (func(context.Context) error, error) {
	if !cfg.Enabled {
		logger.Debug("трейсинг выключен, используется nop provider")
		return NewNopTracerProvider(), nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// NewSchemaless исключает конфликт Schema URL между resource.Default() и semconv.
	res, err := resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.Version),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
	if err != nil {
		return nil, err
	}

	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(cfg.EndpointHost()),
		otlptracehttp.WithTimeout(cfg.Timeout),
	}
	if p := cfg.EndpointPath(); p != "" {
		opts = append(opts, otlptracehttp.WithURLPath(p))
	}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(newSampler(cfg.SamplingRate)),
	)
	otel.SetTracerProvider(tp)

	logger.Info("OpenTelemetry трейсинг инициализирован",
		"endpoint", cfg.Endpoint,
		"service_name", cfg.ServiceName,
		"sampling_rate", cfg.SamplingRate,
	)

	return tp.Shutdown, nil
}

// newSampler: root и remote parent - по TraceIDRatioBased, local parent -
// наследует решение родителя. WithTraceID помечает remote parent как sampled,
// поэтому стандартный AlwaysSample для remote parent игнорировал бы rate.
func newSampler(rate float64) sdktrace.Sampler {
	return sdktrace.ParentBased(
		sdktrace.TraceIDRatioBased(rate),
		sdktrace.WithRemoteParentSampled(sdktrace.TraceIDRatioBased(rate)),
	)
}
