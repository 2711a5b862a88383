package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/Kargones/winlog-bridge/internal/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestRun_Version проверяет команду version.
func TestRun_Version(t *testing.T) {
	t.Setenv("BR_COMMAND", "version")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), "", strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, constants.ExitOK, code)
	assert.Equal(t, "winlog-bridge "+constants.Version+"\n", stdout.String())
}

// TestRun_ConfigError проверяет exit code при некорректной конфигурации.
func TestRun_ConfigError(t *testing.T) {
	t.Setenv("BR_OUTPUT_FORMAT", "xml")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), "", strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, constants.ExitConfigError, code)
	assert.Contains(t, stderr.String(), "CONFIG.VALIDATION_FAILED")
}

// TestRun_UnknownCommand проверяет exit code для неизвестной команды.
func TestRun_UnknownCommand(t *testing.T) {
	t.Setenv("BR_COMMAND", "flush")
	t.Setenv("BR_LOG_LEVEL", "error")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), "", strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, constants.ExitConfigError, code)
}

// TestRun_DryRunRelay проверяет relay в dry-run режиме: записи печатаются в stdout.
func TestRun_DryRunRelay(t *testing.T) {
	path := writeConfig(t, "source: MyService\ndryRun: true\noutputFormat: text\nlogging:\n  level: error\n")
	in := strings.Join([]string{
		`{"type":"enter","name":"job"}`,
		`{"type":"event","level":"warn","message":"disk low","fields":{"id":"1001","free":"3%"}}`,
		`{"type":"exit"}`,
	}, "\n")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), path, strings.NewReader(in), &stdout, &stderr)

	assert.Equal(t, constants.ExitOK, code)
	assert.Equal(t, "[Warning] MyService #1001\nID: 1001\n\nsource: job\nmessage: disk low\nfree: \"3%\"\n\n",
		stdout.String())
}

// TestRun_DryRunInputFile проверяет чтение входного потока из файла.
func TestRun_DryRunInputFile(t *testing.T) {
	input := filepath.Join(t.TempDir(), "events.jsonl")
	require.NoError(t, os.WriteFile(input, []byte(`{"type":"event","level":"error","message":"x"}`+"\n"), 0o600))
	t.Setenv("BR_DRY_RUN", "true")
	t.Setenv("BR_OUTPUT_FORMAT", "json")
	t.Setenv("BR_INPUT", input)
	t.Setenv("BR_LOG_LEVEL", "error")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), "", strings.NewReader("ignored"), &stdout, &stderr)

	assert.Equal(t, constants.ExitOK, code)
	assert.JSONEq(t, `{"source":"winlog-bridge","id":5,"category":"Error","body":"ID: 5\n\nmessage: x\n\n"}`,
		stdout.String())
}

// TestRun_MissingInputFile проверяет ошибку открытия входного файла.
func TestRun_MissingInputFile(t *testing.T) {
	t.Setenv("BR_DRY_RUN", "true")
	t.Setenv("BR_INPUT", filepath.Join(t.TempDir(), "missing.jsonl"))
	t.Setenv("BR_LOG_LEVEL", "error")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), "", strings.NewReader(""), &stdout, &stderr)

	assert.Equal(t, constants.ExitCommandFailed, code)
}

// TestRun_UnbalancedStopOnError проверяет exit code при несбалансированном выходе.
func TestRun_UnbalancedStopOnError(t *testing.T) {
	t.Setenv("BR_DRY_RUN", "true")
	t.Setenv("BR_STOP_ON_ERROR", "true")
	t.Setenv("BR_LOG_LEVEL", "error")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), "", strings.NewReader(`{"type":"exit"}`), &stdout, &stderr)

	assert.Equal(t, constants.ExitCommandFailed, code)
	assert.Empty(t, stdout.String())
}

// TestRun_EventLogUnsupported проверяет что без журнала событий ОС записи не проходят.
func TestRun_EventLogUnsupported(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("журнал событий доступен на Windows")
	}
	t.Setenv("BR_LOG_LEVEL", "error")
	var stdout, stderr bytes.Buffer

	code := run(context.Background(), "", strings.NewReader(`{"type":"event","message":"x"}`), &stdout, &stderr)

	assert.Equal(t, constants.ExitCommandFailed, code)

	t.Setenv("BR_COMMAND", "install-source")
	assert.Equal(t, constants.ExitCommandFailed,
		run(context.Background(), "", strings.NewReader(""), &stdout, &stderr))
}
