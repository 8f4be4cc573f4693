package monitor_stop

import (
	"net/http"

	"github.com/m04kA/SMC-TelegramMonitor/internal/api/handlers"
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
	h.controller.Stop(r.Context())
	h.logger.Info("Monitor stopped via API")

	handlers.RespondJSON(w, http.StatusOK, map[string]string{
		"result": "stopped",
	})
}
