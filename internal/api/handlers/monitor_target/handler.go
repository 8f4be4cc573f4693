package monitor_target

import (
	"net/http"

	"github.com/m04kA/SMC-TelegramMonitor/internal/api/handlers"
	"github.com/m04kA/SMC-TelegramMonitor/internal/api/handlers/monitor_target/models"
)

const (
	msgInvalidRequestBody = "неверный формат тела запроса"
	msgInvalidChatID      = "chat_id должен быть положительным числом"
)

type Handler struct {
	controller MonitorController
	logger     Logger
}

func NewHandler(controller MonitorController, logger Logger) *Handler {
	return &Handler{
		controller: controller,
		logger:     logger,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.SetTargetRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("Failed to decode request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.ChatID == nil || *req.ChatID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidChatID)
		return
	}

	h.controller.SetTarget(*req.ChatID)
	h.logger.Info("Forward target changed via API: %d", *req.ChatID)

	handlers.RespondJSON(w, http.StatusOK, models.TargetResponse{TargetChatID: *req.ChatID})
}
