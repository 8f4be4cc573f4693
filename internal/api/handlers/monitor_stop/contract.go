package monitor_stop

import "context"

// MonitorController интерфейс контроллера мониторинга
type MonitorController interface {
	Stop(ctx context.Context)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}
