package telegram

import "errors"

var (
	// ErrConnect возвращается, если не удалось поднять соединение с Telegram
	ErrConnect = errors.New("service.telegram: failed to connect")

	// ErrNotConnected возвращается при вызове API до Connect
	ErrNotConnected = errors.New("service.telegram: client is not connected")

	// ErrAuthStatus возвращается при ошибке проверки авторизации
	ErrAuthStatus = errors.New("service.telegram: failed to get auth status")

	// ErrLogin возвращается при ошибке входа в аккаунт
	ErrLogin = errors.New("service.telegram: login failed")

	// ErrFetchDialogs возвращается при ошибке загрузки диалогов
	ErrFetchDialogs = errors.New("service.telegram: failed to fetch dialogs")

	// ErrSendMessage возвращается при ошибке отправки сообщения
	ErrSendMessage = errors.New("service.telegram: failed to send message")

	// ErrInvalidMessage возвращается для пересылки без цели или текста
	ErrInvalidMessage = errors.New("service.telegram: invalid message")
)
