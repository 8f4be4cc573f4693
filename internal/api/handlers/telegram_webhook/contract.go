package telegram_webhook

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ControlCommandUseCase интерфейс для обработки управляющих команд бота
type ControlCommandUseCase interface {
	Execute(ctx context.Context, from *tgbotapi.User, chatID int64, text string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
