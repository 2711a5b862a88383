package di

import (
	"context"
	"io"

	"github.com/Kargones/winlog-bridge/internal/config"
	"github.com/Kargones/winlog-bridge/internal/eventlog"
	"github.com/Kargones/winlog-bridge/internal/pkg/logging"
	"github.com/Kargones/winlog-bridge/internal/pkg/metrics"
	"github.com/Kargones/winlog-bridge/internal/relay"
)

// App содержит инициализированные зависимости приложения.
// Создаётся через Wire DI в InitializeApp().
//
// При добавлении новых зависимостей:
// 1. Добавить поле в App struct
// 2. Создать провайдер в providers.go
// 3. Добавить провайдер в ProviderSet в wire.go
// 4. Перегенерировать wire_gen.go: go generate ./internal/di/...
type App struct {
	// Config содержит конфигурацию приложения.
	// Передаётся извне через InitializeApp().
	Config *config.Config

	// Logger - диагностическое логирование приложения.
	Logger logging.Logger

	// TraceID содержит уникальный идентификатор запуска для корреляции логов и span-ов.
	TraceID string

	// MetricsCollector собирает метрики записи и отправляет их в Pushgateway.
	// Если метрики отключены - NopCollector.
	MetricsCollector metrics.Collector

	// TracerShutdown завершает OTel TracerProvider и отправляет буферизированные span-ы.
	// Если трейсинг отключён - nop function.
	TracerShutdown func(context.Context) error

	// Writer - журнал событий ОС или dry-run вывод (BR_DRY_RUN).
	Writer eventlog.Writer

	// Bridge - мост событий для источника Config.Source.
	Bridge *eventlog.Bridge

	// Relay доставляет поток событий в Bridge.
	Relay *relay.Relay
}

// Close освобождает ресурсы Writer (дескрипторы журнала событий).
func (a *App) Close() error {
	if c, ok := a.Writer.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
