//go:build windows

package winlog

import (
	"golang.org/x/sys/windows/svc/eventlog"
)

func openSource(source string) (handle, error) {
	return eventlog.Open(source)
}

// Install регистрирует источник событий source в разделе Application
// с EventCreate.exe в качестве message file. Требует прав администратора.
func Install(source string) error {
	return eventlog.InstallAsEventCreate(source, eventlog.Error|eventlog.Warning|eventlog.Info)
}

// Remove удаляет регистрацию источника событий source.
func Remove(source string) error {
	return eventlog.Remove(source)
}
