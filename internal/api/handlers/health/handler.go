package health

import (
	"net/http"

	"github.com/m04kA/SMC-TelegramMonitor/internal/api/handlers"
)

// Response ответ проверки работоспособности
type Response struct {
	Status           string `json:"status"`
	TelegramLoggedIn bool   `json:"telegram_logged_in"`
}

type Handler struct {
	session TelegramSession
}

func NewHandler(session TelegramSession) *Handler {
	return &Handler{
		session: session,
	}
}

// Handle всегда отвечает 200: неавторизованная сессия не делает процесс нерабочим
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Response{
		Status:           "healthy",
		TelegramLoggedIn: h.session.IsLoggedIn(),
	})
}
