package monitor_target

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type recordingController struct {
	target int64
	calls  int
}

func (c *recordingController) SetTarget(chatID int64) {
	c.target = chatID
	c.calls++
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{}) {}

func TestHandler_SetTarget(t *testing.T) {
	controller := &recordingController{}
	h := NewHandler(controller, nopLogger{})

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPut, "/api/v1/monitor/target", strings.NewReader(`{"chat_id": 123456}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"target_chat_id": 123456}`, rec.Body.String())
	assert.Equal(t, int64(123456), controller.target)
}

func TestHandler_SetTargetInvalid(t *testing.T) {
	bodies := []string{
		`not json`,
		`{}`,
		`{"chat_id": 0}`,
		`{"chat_id": -100}`,
		`{"chat_id": "abc"}`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			controller := &recordingController{}
			h := NewHandler(controller, nopLogger{})

			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPut, "/api/v1/monitor/target", strings.NewReader(body)))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Zero(t, controller.calls)
		})
	}
}
