package di

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/Kargones/winlog-bridge/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitializeApp_FullPipeline проверяет полный цикл инициализации App в dry-run режиме.
func TestInitializeApp_FullPipeline(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Source = "pipeline"
	cfg.DryRun = true
	cfg.Logging.Level = "debug"

	var stdout bytes.Buffer
	app, err := InitializeApp(cfg, &stdout)

	require.NoError(t, err)
	require.NotNil(t, app)
	t.Cleanup(func() { _ = app.Close() }) //nolint:errcheck // Printer не держит ресурсов

	assert.Same(t, cfg, app.Config)
	assert.NotNil(t, app.Logger)
	assert.Len(t, app.TraceID, 32)
	assert.NotNil(t, app.MetricsCollector)
	assert.NotNil(t, app.TracerShutdown)
	assert.Equal(t, "pipeline", app.Bridge.Source())

	stats, err := app.Relay.Run(context.Background(), strings.NewReader(
		`{"type":"event","level":"info","message":"dry run"}`))
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Events)
	assert.Zero(t, stats.Failed)
	assert.Equal(t, "[Information] pipeline #3\nID: 3\n\nmessage: dry run\n\n", stdout.String())
	assert.NoError(t, app.TracerShutdown(context.Background()))
}

// TestInitializeApp_MultipleInitializations проверяет независимость экземпляров App.
func TestInitializeApp_MultipleInitializations(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DryRun = true

	app1, err := InitializeApp(cfg, io.Discard)
	require.NoError(t, err)
	app2, err := InitializeApp(cfg, io.Discard)
	require.NoError(t, err)

	assert.NotEqual(t, app1.TraceID, app2.TraceID)
	assert.NotSame(t, app1.Bridge, app2.Bridge)
}
