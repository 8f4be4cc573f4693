package monitor_start

import (
	"net/http"

	"github.com/m04kA/SMC-TelegramMonitor/internal/api/handlers"
	"github.com/m04kA/SMC-TelegramMonitor/internal/api/handlers/monitor_start/models"
	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
)

var resultMessages = map[domain.StartResult]string{
	domain.StartResultStarted:        "мониторинг запущен",
	domain.StartResultAlreadyRunning: "мониторинг уже запущен",
	domain.StartResultMissingTarget:  "не задан чат для пересылки",
	domain.StartResultNotLoggedIn:    "аккаунт Telegram не авторизован",
	domain.StartResultNoUserInfo:     "не удалось получить данные аккаунта",
	domain.StartResultError:          "ошибка запуска мониторинга",
}

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
	result := h.controller.Start(r.Context())
	status := statusCode(result)

	switch {
	case status >= http.StatusInternalServerError:
		h.logger.Error("Monitor start via API failed: %s", result)
	case status >= http.StatusBadRequest:
		h.logger.Warn("Monitor start via API rejected: %s", result)
	default:
		h.logger.Info("Monitor started via API")
	}

	handlers.RespondJSON(w, status, models.StartResponse{
		Result:  result.String(),
		Message: resultMessages[result],
	})
}

// statusCode сопоставляет результат запуска HTTP-статусу
func statusCode(result domain.StartResult) int {
	switch result {
	case domain.StartResultStarted:
		return http.StatusOK
	case domain.StartResultAlreadyRunning:
		return http.StatusConflict
	case domain.StartResultMissingTarget, domain.StartResultNotLoggedIn, domain.StartResultNoUserInfo:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
