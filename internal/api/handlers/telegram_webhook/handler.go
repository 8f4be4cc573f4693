package telegram_webhook

import (
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-TelegramMonitor/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "неверный формат тела запроса"
)

type Handler struct {
	controlUseCase ControlCommandUseCase
	logger         Logger
}

func NewHandler(controlUseCase ControlCommandUseCase, logger Logger) *Handler {
	return &Handler{
		controlUseCase: controlUseCase,
		logger:         logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Парсим webhook update от Telegram
	var update tgbotapi.Update
	if err := handlers.DecodeJSON(r, &update); err != nil {
		h.logger.Warn("Failed to decode telegram webhook: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Обрабатываем только команды
	if update.Message == nil || !strings.HasPrefix(update.Message.Text, "/") {
		w.WriteHeader(http.StatusOK)
		return
	}

	chatID := update.Message.Chat.ID
	text := update.Message.Text

	// Telegram повторяет доставку при ответе не 2xx
	if err := h.controlUseCase.Execute(r.Context(), update.Message.From, chatID, text); err != nil {
		h.logger.Error("Failed to handle bot command %q in chat %d: %v", text, chatID, err)
		w.WriteHeader(http.StatusOK)
		return
	}

	h.logger.Info("Processed bot command %q (chat %d)", text, chatID)
	w.WriteHeader(http.StatusOK)
}
