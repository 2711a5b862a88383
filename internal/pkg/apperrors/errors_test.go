package apperrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodeConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant string
		expected string
	}{
		{"ErrConfigLoad", ErrConfigLoad, "CONFIG.LOAD_FAILED"},
		{"ErrConfigParse", ErrConfigParse, "CONFIG.PARSE_FAILED"},
		{"ErrConfigValidate", ErrConfigValidate, "CONFIG.VALIDATION_FAILED"},
		{"ErrCommandNotFound", ErrCommandNotFound, "COMMAND.NOT_FOUND"},
		{"ErrEventLogWrite", ErrEventLogWrite, "EVENTLOG.WRITE_FAILED"},
		{"ErrEventLogSource", ErrEventLogSource, "EVENTLOG.SOURCE_FAILED"},
		{"ErrInputRead", ErrInputRead, "INPUT.READ_FAILED"},
		{"ErrInputUnbalanced", ErrInputUnbalanced, "INPUT.UNBALANCED_SCOPE"},
		{"ErrOutputFormat", ErrOutputFormat, "OUTPUT.FORMAT_FAILED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.constant)
		})
	}
}

func TestAppError_Error_WithCause(t *testing.T) {
	appErr := &AppError{
		Code:    ErrEventLogWrite,
		Message: "не удалось записать событие",
		Cause:   errors.New("access denied"),
	}

	assert.Equal(t, "EVENTLOG.WRITE_FAILED: не удалось записать событие (access denied)", appErr.Error())
}

func TestAppError_Error_WithoutCause(t *testing.T) {
	appErr := &AppError{Code: ErrConfigLoad, Message: "не удалось загрузить конфигурацию"}

	assert.Equal(t, "CONFIG.LOAD_FAILED: не удалось загрузить конфигурацию", appErr.Error())
}

func TestAppError_ErrorsIs(t *testing.T) {
	cause := errors.New("source not registered")
	appErr := NewAppError(ErrEventLogWrite, "не удалось записать событие", cause)

	assert.True(t, errors.Is(appErr, cause))
	assert.Equal(t, cause, appErr.Unwrap())
}

func TestAppError_Unwrap_NilCause(t *testing.T) {
	appErr := NewAppError(ErrConfigLoad, "не удалось загрузить конфигурацию", nil)

	require.NotNil(t, appErr)
	assert.Nil(t, appErr.Unwrap())
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("relay: %w", NewAppError(ErrInputUnbalanced, "exit без enter", nil))

	assert.Equal(t, ErrInputUnbalanced, CodeOf(wrapped))
	assert.Empty(t, CodeOf(errors.New("plain")))
	assert.Empty(t, CodeOf(nil))
}

func TestAppError_JSON_Serialization(t *testing.T) {
	appErr := NewAppError(ErrEventLogWrite, "не удалось записать событие", errors.New("boom"))

	data, err := json.Marshal(appErr)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(data, &parsed))

	assert.Equal(t, ErrEventLogWrite, parsed["code"])
	assert.Equal(t, "не удалось записать событие", parsed["message"])
	_, hasCause := parsed["cause"]
	assert.False(t, hasCause, "Cause не должен сериализоваться в JSON")
}
