package monitor

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
)

// Controller управляет сессией мониторинга: проверки перед запуском, запуск, остановка.
// Start и Stop сериализованы мьютексом; флаг running читается без него.
type Controller struct {
	client    TelegramClient
	session   *domain.MonitorSession
	handler   domain.UpdateHandler
	refresher Refresher
	metrics   Metrics
	logger    Logger

	mu      sync.Mutex
	account atomic.Pointer[domain.Account]
}

// NewController создает контроллер мониторинга.
// handler регистрируется в клиенте на время сессии.
func NewController(
	client TelegramClient,
	session *domain.MonitorSession,
	handler domain.UpdateHandler,
	refresher Refresher,
	metrics Metrics,
	logger Logger,
) *Controller {
	return &Controller{
		client:    client,
		session:   session,
		handler:   handler,
		refresher: refresher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Start запускает мониторинг. Проверки предусловий выполняются до любых побочных эффектов,
// ошибка настройки возвращает StartResultError и оставляет сессию остановленной.
func (c *Controller) Start(ctx context.Context) domain.StartResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.session.TargetChatID(); !ok {
		return domain.StartResultMissingTarget
	}
	if !c.client.IsLoggedIn() {
		return domain.StartResultNotLoggedIn
	}
	if c.isMonitoring() {
		return domain.StartResultAlreadyRunning
	}

	account, err := c.setup(ctx)
	if err != nil {
		c.session.MarkStopped()
		c.logger.Error("Failed to start monitoring: %v", err)
		return domain.StartResultError
	}
	if account == nil {
		c.logger.Warn("Failed to start monitoring: no information about the current user")
		return domain.StartResultNoUserInfo
	}

	c.account.Store(account)
	sessionID := c.session.MarkRunning()
	c.client.SetUpdateHandler(c.handler)

	if err := c.refresher.Schedule(); err != nil {
		c.client.ClearUpdateHandler()
		c.session.MarkStopped()
		c.logger.Error("Failed to start monitoring: %v: %v", ErrScheduleRefresh, err)
		return domain.StartResultError
	}

	c.metrics.SetRunning(true)
	c.logger.Info("Monitoring started (session: %s, account: %s)", sessionID, accountName(account))
	return domain.StartResultStarted
}

// setup подключает клиент, загружает диалоги и определяет текущего пользователя
func (c *Controller) setup(ctx context.Context) (*domain.Account, error) {
	if err := c.client.Connect(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	stats, err := c.client.FetchDialogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadDialogs, err)
	}
	c.logger.Debug("Loaded channels: %d", stats.Channels)

	account, err := c.client.Self(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResolveSelf, err)
	}

	return account, nil
}

// Stop останавливает мониторинг. Повторный вызов безопасен.
func (c *Controller) Stop(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session.MarkStopped()
	c.client.ClearUpdateHandler()
	c.refresher.Cancel()
	c.metrics.SetRunning(false)

	c.logger.Info("Monitoring stopped")
}

// IsMonitoring сессия запущена и клиент авторизован
func (c *Controller) IsMonitoring() bool {
	return c.isMonitoring()
}

func (c *Controller) isMonitoring() bool {
	return c.session.IsRunning() && c.client.IsLoggedIn()
}

// SetTarget меняет чат для пересылки; 0 отключает пересылку.
// Работающую сессию это не останавливает.
func (c *Controller) SetTarget(chatID int64) {
	c.session.SetTargetChatID(chatID)
	c.logger.Info("Forward target set to %d", chatID)
}

// Target возвращает текущий чат для пересылки
func (c *Controller) Target() (int64, bool) {
	return c.session.TargetChatID()
}

// Status возвращает снимок состояния мониторинга
func (c *Controller) Status() *domain.MonitorStatus {
	target, _ := c.session.TargetChatID()
	running := c.session.IsRunning()
	loggedIn := c.client.IsLoggedIn()

	status := &domain.MonitorStatus{
		Running:      running,
		LoggedIn:     loggedIn,
		Monitoring:   running && loggedIn,
		TargetChatID: target,
		SessionID:    c.session.SessionID(),
	}
	if running {
		status.Account = c.account.Load()
	}
	return status
}

func accountName(a *domain.Account) string {
	if a.Username != "" {
		return "@" + a.Username
	}
	if a.Name != "" {
		return a.Name
	}
	return fmt.Sprintf("%d", a.ID)
}
