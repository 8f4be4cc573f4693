package telegram

import (
	"context"

	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
)

// PeerStore хранилище снимка справочника адресатов.
// Необязательно: без него справочник живёт только в памяти.
type PeerStore interface {
	SavePeers(ctx context.Context, peers []domain.PeerInfo) error
	LoadPeers(ctx context.Context) ([]domain.PeerInfo, error)
}

// CodePrompt запрашивает у пользователя код подтверждения входа
type CodePrompt func(ctx context.Context) (string, error)

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
