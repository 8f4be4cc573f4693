package monitor_start

import (
	"context"

	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
)

// MonitorController интерфейс контроллера мониторинга
type MonitorController interface {
	Start(ctx context.Context) domain.StartResult
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
