package control_command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
)

const (
	CommandStart  = "/monitor_start"
	CommandStop   = "/monitor_stop"
	CommandStatus = "/monitor_status"
	CommandTarget = "/monitor_target"
)

const (
	replyForbidden      = "Недостаточно прав для управления мониторингом"
	replyUnknownCommand = "Неизвестная команда. Доступно: /monitor_start, /monitor_stop, /monitor_status, /monitor_target <chat_id>"
	replyStopped        = "Мониторинг остановлен"
	replyTargetUsage    = "Использование: /monitor_target <chat_id>"
)

var startReplies = map[domain.StartResult]string{
	domain.StartResultStarted:        "Мониторинг запущен",
	domain.StartResultAlreadyRunning: "Мониторинг уже запущен",
	domain.StartResultMissingTarget:  "Не задан чат для пересылки: /monitor_target <chat_id>",
	domain.StartResultNotLoggedIn:    "Аккаунт Telegram не авторизован",
	domain.StartResultNoUserInfo:     "Не удалось получить данные аккаунта",
	domain.StartResultError:          "Ошибка запуска мониторинга, подробности в логах",
}

// UseCase обрабатывает управляющие команды бота
type UseCase struct {
	controller MonitorController
	bot        BotService
	access     AccessPolicy
}

// New создаёт новый use case для управляющих команд
func New(controller MonitorController, bot BotService, access AccessPolicy) *UseCase {
	return &UseCase{
		controller: controller,
		bot:        bot,
		access:     access,
	}
}

// Execute выполняет команду и отвечает в чат.
// Возвращает ошибку с полным контекстом для логирования на уровне выше
func (uc *UseCase) Execute(ctx context.Context, from *tgbotapi.User, chatID int64, text string) error {
	command, args := parseCommand(text)

	if from == nil || !uc.access.IsAdmin(from.ID) {
		return uc.reply(chatID, replyForbidden)
	}

	var reply string
	switch command {
	case CommandStart:
		reply = startReplies[uc.controller.Start(ctx)]
	case CommandStop:
		uc.controller.Stop(ctx)
		reply = replyStopped
	case CommandStatus:
		reply = formatStatus(uc.controller.Status())
	case CommandTarget:
		chatIDArg, err := parseChatID(args)
		if err != nil {
			reply = replyTargetUsage
			break
		}
		uc.controller.SetTarget(chatIDArg)
		reply = fmt.Sprintf("Чат для пересылки: %d", chatIDArg)
	default:
		reply = replyUnknownCommand
	}

	return uc.reply(chatID, reply)
}

func (uc *UseCase) reply(chatID int64, text string) error {
	if err := uc.bot.SendText(chatID, text); err != nil {
		return fmt.Errorf("usecase.ControlCommand: reply to chat %d: %w", chatID, err)
	}
	return nil
}

// parseCommand отделяет команду от аргументов и убирает суффикс @botname
func parseCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", nil
	}

	command := fields[0]
	if i := strings.Index(command, "@"); i > 0 {
		command = command[:i]
	}
	return strings.ToLower(command), fields[1:]
}

func parseChatID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected one argument, got %d", len(args))
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("chat id must be positive: %d", id)
	}
	return id, nil
}

func formatStatus(s *domain.MonitorStatus) string {
	var b strings.Builder

	if s.Monitoring {
		b.WriteString("Мониторинг: запущен\n")
	} else {
		b.WriteString("Мониторинг: остановлен\n")
	}

	if s.LoggedIn {
		b.WriteString("Аккаунт Telegram: авторизован\n")
	} else {
		b.WriteString("Аккаунт Telegram: не авторизован\n")
	}

	if s.TargetChatID != 0 {
		fmt.Fprintf(&b, "Чат для пересылки: %d", s.TargetChatID)
	} else {
		b.WriteString("Чат для пересылки: не задан")
	}

	if s.Account != nil {
		fmt.Fprintf(&b, "\nАккаунт: %s (%d)", s.Account.Name, s.Account.ID)
	}
	if s.Monitoring && s.SessionID != "" {
		fmt.Fprintf(&b, "\nСессия: %s", s.SessionID)
	}

	return b.String()
}
