package models

// SetTargetRequest запрос на смену чата для пересылки
type SetTargetRequest struct {
	ChatID *int64 `json:"chat_id"`
}

// TargetResponse текущий чат для пересылки
type TargetResponse struct {
	TargetChatID int64 `json:"target_chat_id"`
}
