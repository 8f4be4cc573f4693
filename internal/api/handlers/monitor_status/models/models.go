package models

import (
	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
	"github.com/m04kA/SMC-TelegramMonitor/pkg/ptr"
)

// StatusResponse состояние мониторинга
type StatusResponse struct {
	Running      bool             `json:"running"`
	LoggedIn     bool             `json:"logged_in"`
	Monitoring   bool             `json:"monitoring"`
	TargetChatID *int64           `json:"target_chat_id"`
	SessionID    *string          `json:"session_id,omitempty"`
	Account      *AccountResponse `json:"account,omitempty"`
}

// AccountResponse авторизованный аккаунт
type AccountResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username,omitempty"`
}

// FromDomainStatus конвертирует доменный снимок в ответ API
func FromDomainStatus(s *domain.MonitorStatus) *StatusResponse {
	resp := &StatusResponse{
		Running:      s.Running,
		LoggedIn:     s.LoggedIn,
		Monitoring:   s.Monitoring,
		TargetChatID: ptr.NonZero(s.TargetChatID),
	}

	// ID сессии имеет смысл только для работающего мониторинга
	if s.Running {
		resp.SessionID = ptr.NonZero(s.SessionID)
	}
	if s.Account != nil {
		resp.Account = &AccountResponse{
			ID:       s.Account.ID,
			Name:     s.Account.Name,
			Username: s.Account.Username,
		}
	}

	return resp
}
