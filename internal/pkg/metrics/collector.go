// Package metrics предоставляет интерфейсы и реализации для сбора метрик
// записи в журнал событий и их отправки в Prometheus Pushgateway.
//
// Пакет следует паттернам проекта:
//   - Interface Segregation: Collector interface для абстракции
//   - Factory pattern: NewCollector выбирает реализацию на основе конфигурации
//   - Graceful degradation: NopCollector при отключённых метриках
package metrics

import (
	"context"
	"time"
)

// Collector определяет интерфейс для сбора метрик.
// Реализации: PrometheusCollector (активный) и NopCollector (no-op).
type Collector interface {
	// RecordWrite записывает результат передачи одной записи в журнал.
	// level - уровень исходного события, category - категория записи журнала.
	RecordWrite(level, category string, duration time.Duration, success bool)

	// Push отправляет метрики в Pushgateway.
	// Всегда возвращает nil - ошибки логируются внутри реализации:
	// сбой метрик не должен влиять на доставку событий.
	Push(ctx context.Context) error
}
