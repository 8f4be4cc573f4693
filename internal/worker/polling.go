package worker

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// PollingHandler обрабатывает управляющие команды бота в режиме long polling
type PollingHandler struct {
	controlUseCase ControlCommandUseCase
	logger         Logger
}

// NewPollingHandler создаёт новый обработчик для long polling
func NewPollingHandler(controlUseCase ControlCommandUseCase, logger Logger) *PollingHandler {
	return &PollingHandler{
		controlUseCase: controlUseCase,
		logger:         logger,
	}
}

// Start запускает обработку обновлений из канала
// Блокирующий метод, должен вызываться в отдельной goroutine
func (h *PollingHandler) Start(ctx context.Context, updatesChan tgbotapi.UpdatesChannel) {
	h.logger.Info("Starting Telegram bot long polling handler...")

	for {
		select {
		case <-ctx.Done():
			h.logger.Info("Stopping Telegram bot long polling handler...")
			return

		case update, ok := <-updatesChan:
			if !ok {
				h.logger.Warn("Telegram bot updates channel closed")
				return
			}
			h.handleUpdate(ctx, update)
		}
	}
}

// handleUpdate обрабатывает одно обновление от Bot API
func (h *PollingHandler) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	// Обрабатываем только команды
	if update.Message == nil || !strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	chatID := update.Message.Chat.ID
	text := update.Message.Text

	if err := h.controlUseCase.Execute(ctx, update.Message.From, chatID, text); err != nil {
		h.logger.Error("Failed to handle bot command %q in chat %d: %v", text, chatID, err)
		return
	}

	h.logger.Info("Processed bot command %q (chat %d)", text, chatID)
}
