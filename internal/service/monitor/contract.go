package monitor

import (
	"context"

	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
)

// TelegramClient операции клиента, нужные для запуска и остановки мониторинга
type TelegramClient interface {
	Connect(ctx context.Context) error
	IsLoggedIn() bool
	FetchDialogs(ctx context.Context) (*domain.DialogStats, error)
	Self(ctx context.Context) (*domain.Account, error)
	SetUpdateHandler(h domain.UpdateHandler)
	ClearUpdateHandler()
}

// Refresher периодическое обновление справочника на время мониторинга
type Refresher interface {
	Schedule() error
	Cancel()
}

// Metrics интерфейс для метрик состояния мониторинга
type Metrics interface {
	SetRunning(running bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
