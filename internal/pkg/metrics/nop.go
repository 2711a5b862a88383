package metrics

import (
	"context"
	"time"
)

// NopCollector - no-op реализация Collector.
// Используется когда метрики отключены (Config.Enabled = false).
type NopCollector struct{}

// NewNopCollector создаёт NopCollector.
func NewNopCollector() *NopCollector {
	return &NopCollector{}
}

// RecordWrite - no-op.
func (c *NopCollector) RecordWrite(_, _ string, _ time.Duration, _ bool) {}

// Push - no-op, всегда возвращает nil.
func (c *NopCollector) Push(_ context.Context) error {
	return nil
}
