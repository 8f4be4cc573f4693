package domain

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// StartResult результат попытки запуска мониторинга
type StartResult int

const (
	StartResultStarted StartResult = iota
	StartResultAlreadyRunning
	StartResultMissingTarget
	StartResultNotLoggedIn
	StartResultNoUserInfo
	StartResultError
)

var startResultNames = map[StartResult]string{
	StartResultStarted:        "started",
	StartResultAlreadyRunning: "already_running",
	StartResultMissingTarget:  "missing_target",
	StartResultNotLoggedIn:    "not_logged_in",
	StartResultNoUserInfo:     "no_user_info",
	StartResultError:          "error",
}

func (r StartResult) String() string {
	if name, ok := startResultNames[r]; ok {
		return name
	}
	return startResultNames[StartResultError]
}

// MonitorSession состояние единственной сессии мониторинга в процессе.
// Флаг running и ID целевого чата читаются из горутин доставки обновлений, поэтому атомарные.
type MonitorSession struct {
	running      atomic.Bool
	targetChatID atomic.Int64 // 0 - цель не задана

	mu        sync.RWMutex
	sessionID string
}

// NewMonitorSession создаёт остановленную сессию с начальной целью пересылки (0 - без цели)
func NewMonitorSession(targetChatID int64) *MonitorSession {
	s := &MonitorSession{}
	s.targetChatID.Store(targetChatID)
	return s
}

// IsRunning возвращает текущее значение флага running
func (s *MonitorSession) IsRunning() bool {
	return s.running.Load()
}

// MarkRunning переводит сессию в Running и выдаёт новый ID сессии
func (s *MonitorSession) MarkRunning() string {
	id := uuid.NewString()

	s.mu.Lock()
	s.sessionID = id
	s.mu.Unlock()

	s.running.Store(true)
	return id
}

// MarkStopped переводит сессию в Stopped
func (s *MonitorSession) MarkStopped() {
	s.running.Store(false)
}

// SessionID ID последней успешно запущенной сессии
func (s *MonitorSession) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// TargetChatID возвращает ID чата для пересылки, если он задан
func (s *MonitorSession) TargetChatID() (int64, bool) {
	id := s.targetChatID.Load()
	return id, id != 0
}

// SetTargetChatID меняет цель пересылки; 0 сбрасывает её
func (s *MonitorSession) SetTargetChatID(id int64) {
	s.targetChatID.Store(id)
}

// MonitorStatus снимок состояния мониторинга для API и команд бота
type MonitorStatus struct {
	Running      bool
	LoggedIn     bool
	Monitoring   bool
	TargetChatID int64 // 0 - цель не задана
	SessionID    string
	Account      *Account
}
