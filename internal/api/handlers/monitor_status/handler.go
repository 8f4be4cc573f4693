package monitor_status

import (
	"net/http"

	"github.com/m04kA/SMC-TelegramMonitor/internal/api/handlers"
	"github.com/m04kA/SMC-TelegramMonitor/internal/api/handlers/monitor_status/models"
)

type Handler struct {
	controller MonitorController
}

func NewHandler(controller MonitorController) *Handler {
	return &Handler{
		controller: controller,
	}
}

func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, models.FromDomainStatus(h.controller.Status()))
}
