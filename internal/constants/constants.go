// Package constants содержит константы, используемые в проекте winlog-bridge.
// Константы сгруппированы по их функциональному назначению.
package constants

// Version - версия приложения. Переопределяется при сборке:
//
//	go build -ldflags "-X github.com/Kargones/winlog-bridge/internal/constants.Version=1.2.3"
var Version = "dev"

// Команды приложения (значения BR_COMMAND).
const (
	// CommandRelay - чтение потока событий и запись в журнал (по умолчанию).
	CommandRelay = "relay"
	// CommandInstallSource - регистрация источника событий в журнале Application.
	CommandInstallSource = "install-source"
	// CommandRemoveSource - удаление регистрации источника событий.
	CommandRemoveSource = "remove-source"
	// CommandVersion - вывод версии.
	CommandVersion = "version"
)

// Переменные окружения, которые читаются до загрузки конфигурации.
const (
	// EnvConfigPath - путь к YAML файлу конфигурации.
	EnvConfigPath = "BR_CONFIG"
)

// DefaultSource - имя источника событий по умолчанию.
const DefaultSource = "winlog-bridge"

// Коды завершения процесса.
const (
	ExitOK            = 0
	ExitConfigError   = 2
	ExitCommandFailed = 5
)
