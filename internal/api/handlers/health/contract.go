package health

// TelegramSession состояние MTProto сессии
type TelegramSession interface {
	IsLoggedIn() bool
}
