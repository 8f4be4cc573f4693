package control_command

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
)

const adminID = int64(42)

type fakeController struct {
	startResult domain.StartResult
	starts      int
	stops       int
	target      int64
	status      *domain.MonitorStatus
}

func (c *fakeController) Start(context.Context) domain.StartResult {
	c.starts++
	return c.startResult
}

func (c *fakeController) Stop(context.Context) { c.stops++ }

func (c *fakeController) SetTarget(chatID int64) { c.target = chatID }

func (c *fakeController) Status() *domain.MonitorStatus { return c.status }

type reply struct {
	chatID int64
	text   string
}

type fakeBot struct {
	replies []reply
	err     error
}

func (b *fakeBot) SendText(chatID int64, text string) error {
	b.replies = append(b.replies, reply{chatID: chatID, text: text})
	return b.err
}

type admins []int64

func (a admins) IsAdmin(userID int64) bool {
	for _, id := range a {
		if id == userID {
			return true
		}
	}
	return false
}

func newUseCase(controller *fakeController, bot *fakeBot) *UseCase {
	return New(controller, bot, admins{adminID})
}

func TestUseCase_NonAdminIsRejected(t *testing.T) {
	controller := &fakeController{}
	bot := &fakeBot{}
	uc := newUseCase(controller, bot)

	require.NoError(t, uc.Execute(context.Background(), &tgbotapi.User{ID: 7}, 100, CommandStart))
	require.NoError(t, uc.Execute(context.Background(), nil, 100, CommandStop))

	assert.Zero(t, controller.starts)
	assert.Zero(t, controller.stops)
	require.Len(t, bot.replies, 2)
	assert.Equal(t, replyForbidden, bot.replies[0].text)
}

func TestUseCase_Start(t *testing.T) {
	tests := []struct {
		result domain.StartResult
		want   string
	}{
		{domain.StartResultStarted, "Мониторинг запущен"},
		{domain.StartResultAlreadyRunning, "Мониторинг уже запущен"},
		{domain.StartResultMissingTarget, "Не задан чат для пересылки: /monitor_target <chat_id>"},
		{domain.StartResultNotLoggedIn, "Аккаунт Telegram не авторизован"},
		{domain.StartResultError, "Ошибка запуска мониторинга, подробности в логах"},
	}

	for _, tt := range tests {
		t.Run(tt.result.String(), func(t *testing.T) {
			controller := &fakeController{startResult: tt.result}
			bot := &fakeBot{}

			require.NoError(t, newUseCase(controller, bot).Execute(context.Background(), &tgbotapi.User{ID: adminID}, 100, "/monitor_start"))

			assert.Equal(t, 1, controller.starts)
			require.Len(t, bot.replies, 1)
			assert.Equal(t, reply{chatID: 100, text: tt.want}, bot.replies[0])
		})
	}
}

func TestUseCase_StopWithBotSuffix(t *testing.T) {
	controller := &fakeController{}
	bot := &fakeBot{}

	require.NoError(t, newUseCase(controller, bot).Execute(context.Background(), &tgbotapi.User{ID: adminID}, 100, "/monitor_stop@monitor_bot"))

	assert.Equal(t, 1, controller.stops)
	assert.Equal(t, replyStopped, bot.replies[0].text)
}

func TestUseCase_Target(t *testing.T) {
	controller := &fakeController{}
	bot := &fakeBot{}
	uc := newUseCase(controller, bot)
	admin := &tgbotapi.User{ID: adminID}

	require.NoError(t, uc.Execute(context.Background(), admin, 100, "/monitor_target 123456"))
	assert.Equal(t, int64(123456), controller.target)
	assert.Equal(t, "Чат для пересылки: 123456", bot.replies[0].text)

	for _, text := range []string{"/monitor_target", "/monitor_target abc", "/monitor_target -5", "/monitor_target 1 2"} {
		require.NoError(t, uc.Execute(context.Background(), admin, 100, text))
		assert.Equal(t, replyTargetUsage, bot.replies[len(bot.replies)-1].text, text)
	}
	assert.Equal(t, int64(123456), controller.target)
}

func TestUseCase_Status(t *testing.T) {
	controller := &fakeController{status: &domain.MonitorStatus{
		Running:      true,
		LoggedIn:     true,
		Monitoring:   true,
		TargetChatID: 555,
		SessionID:    "3f1c",
		Account:      &domain.Account{ID: 1, Name: "Alice"},
	}}
	bot := &fakeBot{}

	require.NoError(t, newUseCase(controller, bot).Execute(context.Background(), &tgbotapi.User{ID: adminID}, 100, "/monitor_status"))

	text := bot.replies[0].text
	assert.Contains(t, text, "Мониторинг: запущен")
	assert.Contains(t, text, "Чат для пересылки: 555")
	assert.Contains(t, text, "Аккаунт: Alice (1)")
	assert.Contains(t, text, "Сессия: 3f1c")
}

func TestUseCase_StatusStopped(t *testing.T) {
	controller := &fakeController{status: &domain.MonitorStatus{}}
	bot := &fakeBot{}

	require.NoError(t, newUseCase(controller, bot).Execute(context.Background(), &tgbotapi.User{ID: adminID}, 100, "/monitor_status"))

	text := bot.replies[0].text
	assert.Contains(t, text, "Мониторинг: остановлен")
	assert.Contains(t, text, "не авторизован")
	assert.Contains(t, text, "Чат для пересылки: не задан")
	assert.NotContains(t, text, "Сессия")
}

func TestUseCase_UnknownCommand(t *testing.T) {
	bot := &fakeBot{}

	require.NoError(t, newUseCase(&fakeController{}, bot).Execute(context.Background(), &tgbotapi.User{ID: adminID}, 100, "/start"))
	assert.Equal(t, replyUnknownCommand, bot.replies[0].text)
}

func TestUseCase_ReplyError(t *testing.T) {
	bot := &fakeBot{err: errors.New("bot blocked")}

	err := newUseCase(&fakeController{}, bot).Execute(context.Background(), &tgbotapi.User{ID: adminID}, 100, "/monitor_stop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot blocked")
}
