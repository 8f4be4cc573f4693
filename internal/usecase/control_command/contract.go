package control_command

import (
	"context"

	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
)

// MonitorController управление сессией мониторинга
type MonitorController interface {
	Start(ctx context.Context) domain.StartResult
	Stop(ctx context.Context)
	SetTarget(chatID int64)
	Status() *domain.MonitorStatus
}

// BotService интерфейс для ответов через Telegram Bot API
type BotService interface {
	SendText(chatID int64, text string) error
}

// AccessPolicy проверяет, может ли пользователь управлять мониторингом
type AccessPolicy interface {
	IsAdmin(userID int64) bool
}
