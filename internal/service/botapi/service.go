package botapi

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
)

// channelIDOffset сдвиг ID каналов и супергрупп в Bot API (-100<id>)
const channelIDOffset = 1_000_000_000_000

// Service отправка сообщений через Telegram Bot API
type Service struct {
	bot      BotAPI
	resolver PeerResolver
}

// NewService создает новый экземпляр Bot API сервиса. resolver может быть nil:
// тогда целевой чат считается обычной группой.
func NewService(bot BotAPI, resolver PeerResolver) *Service {
	return &Service{
		bot:      bot,
		resolver: resolver,
	}
}

// BotChatID переводит адресата MTProto в chat_id Bot API
func BotChatID(ref domain.PeerRef) int64 {
	switch ref.Kind {
	case domain.PeerKindChannel:
		return -(channelIDOffset + ref.ID)
	case domain.PeerKindChat:
		return -ref.ID
	default:
		return ref.ID
	}
}

// SendMessage пересылает сообщение в целевой чат от имени бота.
// ID цели хранится в терминах MTProto, поэтому тип адресата берётся из resolver.
func (s *Service) SendMessage(ctx context.Context, msg *domain.ForwardMessage) error {
	if !msg.IsValid() {
		if msg == nil || msg.Text == "" {
			return ErrEmptyMessage
		}
		return ErrInvalidChatID
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSendMessage, err)
	}

	return s.SendText(BotChatID(s.resolve(msg.TargetChatID)), msg.Text)
}

// SendText отправляет текстовое сообщение в чат Bot API
func (s *Service) SendText(chatID int64, text string) error {
	if chatID == 0 {
		return ErrInvalidChatID
	}

	if text == "" {
		return ErrEmptyMessage
	}

	tgMsg := tgbotapi.NewMessage(chatID, text)
	tgMsg.DisableWebPagePreview = true

	_, err := s.bot.Send(tgMsg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSendMessage, err)
	}

	return nil
}

// SetWebhook устанавливает webhook URL для получения обновлений от Telegram
func (s *Service) SetWebhook(webhookURL string) error {
	webhook, err := tgbotapi.NewWebhook(webhookURL)
	if err != nil {
		return fmt.Errorf("%w: failed to create webhook config: %v", ErrSetWebhook, err)
	}

	_, err = s.bot.Request(webhook)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSetWebhook, err)
	}

	return nil
}

// DeleteWebhook удаляет webhook (переключает на long polling)
func (s *Service) DeleteWebhook() error {
	deleteWebhook := tgbotapi.DeleteWebhookConfig{
		DropPendingUpdates: false, // Сохраняем необработанные команды
	}

	_, err := s.bot.Request(deleteWebhook)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteWebhook, err)
	}

	return nil
}

// resolve определяет тип адресата по ID из справочника
func (s *Service) resolve(id int64) domain.PeerRef {
	if s.resolver != nil {
		if ref, ok := s.resolver.ResolveRef(id); ok {
			return ref
		}
	}
	return domain.ChatPeer(id)
}

// GetUpdatesChan возвращает канал для получения обновлений в режиме long polling
func (s *Service) GetUpdatesChan(offset int) tgbotapi.UpdatesChannel {
	updateConfig := tgbotapi.NewUpdate(offset)
	updateConfig.Timeout = 60 // Long polling timeout

	return s.bot.GetUpdatesChan(updateConfig)
}
