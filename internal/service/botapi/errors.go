package botapi

import "errors"

var (
	// ErrSendMessage возвращается при ошибке отправки сообщения
	ErrSendMessage = errors.New("service.botapi: failed to send message")

	// ErrInvalidChatID возвращается при некорректном chat_id
	ErrInvalidChatID = errors.New("service.botapi: invalid chat_id")

	// ErrEmptyMessage возвращается при пустом тексте сообщения
	ErrEmptyMessage = errors.New("service.botapi: message text is empty")

	// ErrSetWebhook возвращается при ошибке установки webhook
	ErrSetWebhook = errors.New("service.botapi: failed to set webhook")

	// ErrDeleteWebhook возвращается при ошибке удаления webhook
	ErrDeleteWebhook = errors.New("service.botapi: failed to delete webhook")
)
