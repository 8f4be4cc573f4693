package worker

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
)

// PeerDirectory справочник адресатов, принадлежит клиентскому слою; здесь только чтение
type PeerDirectory interface {
	Lookup(ref domain.PeerRef) (domain.PeerInfo, bool)
	ResolveRef(id int64) (domain.PeerRef, bool)
}

// TargetProvider отдаёт текущий чат для пересылки
type TargetProvider interface {
	TargetChatID() (int64, bool)
}

// Forwarder принимает сообщение на пересылку и не должен блокировать обработку обновлений
type Forwarder interface {
	Forward(ctx context.Context, msg *domain.ForwardMessage) error
}

// MessageSender доставляет сообщение в целевой чат (MTProto или Bot API)
type MessageSender interface {
	SendMessage(ctx context.Context, msg *domain.ForwardMessage) error
}

// MessageSink точка расширения для дальнейшей обработки входящих сообщений.
// Необязательна: если не задана, сообщения только логируются и пересылаются.
type MessageSink interface {
	Consume(ctx context.Context, msg *domain.NewMessage) error
}

// DialogFetcher перечитывает список диалогов в справочник
type DialogFetcher interface {
	FetchDialogs(ctx context.Context) (*domain.DialogStats, error)
}

// ControlCommandUseCase интерфейс для обработки управляющих команд бота
type ControlCommandUseCase interface {
	Execute(ctx context.Context, from *tgbotapi.User, chatID int64, text string) error
}

// Metrics счётчики, которые пишут worker'ы
type Metrics interface {
	IncUpdate(kind string)
	IncForward(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
