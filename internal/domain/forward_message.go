package domain

import "fmt"

// ForwardMessage сообщение для пересылки в целевой чат
type ForwardMessage struct {
	TargetChatID int64  // ID целевого чата в терминах MTProto (без префикса -100)
	SourceTitle  string // Название чата, откуда пришло исходное сообщение
	Text         string // Текст, который будет отправлен
}

// NewForwardMessage собирает пересылку из названия источника и исходного текста
func NewForwardMessage(targetChatID int64, sourceTitle, originalText string) *ForwardMessage {
	return &ForwardMessage{
		TargetChatID: targetChatID,
		SourceTitle:  sourceTitle,
		Text:         fmt.Sprintf("Message from %s: %s", sourceTitle, originalText),
	}
}

// IsValid проверяет, что пересылку можно отправить
func (m *ForwardMessage) IsValid() bool {
	return m != nil && m.TargetChatID != 0 && m.Text != ""
}
