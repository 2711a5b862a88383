package metrics

import "errors"

// Ошибки валидации конфигурации метрик.
var (
	ErrPushgatewayURLRequired = errors.New("metrics: pushgateway URL обязателен при enabled=true")
	ErrPushgatewayURLInvalid  = errors.New("metrics: pushgateway URL должен содержать scheme и host")
	ErrJobNameRequired        = errors.New("metrics: job name обязателен")
	ErrInvalidTimeout         = errors.New("metrics: timeout должен быть положительным")
)
