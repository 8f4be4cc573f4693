package monitor_status

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
)

type stubController struct {
	status *domain.MonitorStatus
}

func (c stubController) Status() *domain.MonitorStatus { return c.status }

func TestHandler_Running(t *testing.T) {
	h := NewHandler(stubController{status: &domain.MonitorStatus{
		Running:      true,
		LoggedIn:     true,
		Monitoring:   true,
		TargetChatID: 555,
		SessionID:    "a1b2",
		Account:      &domain.Account{ID: 1, Name: "Alice", Username: "alice"},
	}})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/monitor", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"running": true,
		"logged_in": true,
		"monitoring": true,
		"target_chat_id": 555,
		"session_id": "a1b2",
		"account": {"id": 1, "name": "Alice", "username": "alice"}
	}`, rec.Body.String())
}

func TestHandler_Stopped(t *testing.T) {
	h := NewHandler(stubController{status: &domain.MonitorStatus{LoggedIn: true, SessionID: "old"}})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/monitor", nil))

	assert.JSONEq(t, `{"running": false, "logged_in": true, "monitoring": false, "target_chat_id": null}`, rec.Body.String())
}
