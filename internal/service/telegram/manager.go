package telegram

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gotd/contrib/middleware/floodwait"
	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/telegram/message"
	"github.com/gotd/td/telegram/query"
	"github.com/gotd/td/telegram/query/dialogs"
	"github.com/gotd/td/telegram/updates"
	"github.com/gotd/td/tg"
	"go.uber.org/zap"

	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
)

const (
	dialogsBatchSize = 100
	floodWaitRetries = 3
)

// Options параметры MTProto клиента
type Options struct {
	APIID       int
	APIHash     string
	SessionPath string
	Zap         *zap.Logger
}

// Manager владеет MTProto клиентом gotd: соединение, авторизация, диалоги,
// доставка обновлений зарегистрированному обработчику и отправка сообщений.
// Обновления проходят через updates.Manager: он ведёт pts/qts/seq,
// разворачивает короткие формы и догружает пропуски через getDifference.
type Manager struct {
	client    *telegram.Client
	gaps      *updates.Manager
	directory *Directory
	store     PeerStore
	logger    Logger

	handler    atomic.Pointer[handlerBox]
	loggedIn   atomic.Bool
	tracking   atomic.Bool
	authorized chan int64 // ID пользователя после Login

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// handlerBox обёртка, чтобы хранить интерфейс в atomic.Pointer
type handlerBox struct {
	h domain.UpdateHandler
}

// NewManager создает менеджер клиента. store может быть nil.
func NewManager(opts Options, directory *Directory, store PeerStore, logger Logger) *Manager {
	m := &Manager{
		directory: directory,
		store:      store,
		logger:     logger,
		authorized: make(chan int64, 1),
	}

	zl := opts.Zap
	if zl == nil {
		zl = zap.NewNop()
	}

	m.gaps = updates.New(updates.Config{
		Handler: m,
		Logger:  zl.Named("updates"),
	})

	m.client = telegram.NewClient(opts.APIID, opts.APIHash, telegram.Options{
		SessionStorage: &session.FileStorage{Path: opts.SessionPath},
		UpdateHandler:  m.gaps,
		Logger:         zl.Named("gotd"),
		Middlewares: []telegram.Middleware{
			floodwait.NewSimpleWaiter().WithMaxRetries(floodWaitRetries),
		},
	})

	return m
}

// Directory справочник адресатов, который наполняет менеджер
func (m *Manager) Directory() *Directory {
	return m.directory
}

// LoadSnapshot прогревает справочник из хранилища
func (m *Manager) LoadSnapshot(ctx context.Context) error {
	if m.store == nil {
		return nil
	}

	peers, err := m.store.LoadPeers(ctx)
	if err != nil {
		return err
	}

	m.directory.Load(peers)
	m.logger.Info("Loaded %d peer(s) from snapshot", len(peers))
	return nil
}

// Connect поднимает соединение в фоновой goroutine и ждёт, пока станет известен статус авторизации.
// Повторный вызов при живом соединении ничего не делает.
func (m *Manager) Connect(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.isRunning() {
		return nil
	}

	runCtx, cancel := context.WithCancel(context.Background())
	ready := make(chan struct{})
	done := make(chan struct{})
	var runErr error

	go func() {
		defer close(done)

		runErr = m.client.Run(runCtx, func(ctx context.Context) error {
			status, err := m.client.Auth().Status(ctx)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrAuthStatus, err)
			}

			m.loggedIn.Store(status.Authorized)
			close(ready)

			userID, ok := selfID(status)
			if !ok {
				// Ждём входа через Login
				select {
				case <-ctx.Done():
					return ctx.Err()
				case userID = <-m.authorized:
				}
			}

			return m.trackUpdates(ctx, m.client.API(), userID)
		})

		m.loggedIn.Store(false)
		if runErr != nil && !errors.Is(runErr, context.Canceled) {
			m.logger.Error("Telegram client stopped: %v", runErr)
		}
	}()

	select {
	case <-ready:
		m.cancel = cancel
		m.done = done
		m.logger.Info("Connected to Telegram (logged in: %t)", m.loggedIn.Load())
		return nil
	case <-done:
		cancel()
		return fmt.Errorf("%w: %v", ErrConnect, runErr)
	case <-ctx.Done():
		cancel()
		<-done
		return fmt.Errorf("%w: %v", ErrConnect, ctx.Err())
	}
}

func selfID(status *auth.Status) (int64, bool) {
	if !status.Authorized || status.User == nil {
		return 0, false
	}
	return status.User.ID, true
}

// trackUpdates запускает updates.Manager для пользователя и блокирует до отмены ctx.
// Ошибка менеджера обновлений не рвёт соединение: отправка и диалоги продолжают работать.
func (m *Manager) trackUpdates(ctx context.Context, api updates.API, userID int64) error {
	defer m.tracking.Store(false)

	err := m.gaps.Run(ctx, api, userID, updates.AuthOptions{
		OnStart: func(context.Context) {
			m.tracking.Store(true)
			m.logger.Info("Update state tracking started for user %d", userID)
		},
	})
	if err != nil && ctx.Err() == nil {
		m.logger.Error("Update state tracking stopped: %v", err)
	}

	<-ctx.Done()
	return ctx.Err()
}

// isRunning вызывается под m.mu
func (m *Manager) isRunning() bool {
	if m.done == nil {
		return false
	}

	select {
	case <-m.done:
		return false
	default:
		return true
	}
}

// Login выполняет вход по коду, если сессия ещё не авторизована
func (m *Manager) Login(ctx context.Context, phone, password string, prompt CodePrompt) error {
	if err := m.Connect(ctx); err != nil {
		return err
	}

	codeAuth := auth.CodeAuthenticatorFunc(func(ctx context.Context, _ *tg.AuthSentCode) (string, error) {
		return prompt(ctx)
	})
	flow := auth.NewFlow(auth.Constant(phone, password, codeAuth), auth.SendCodeOptions{})

	if err := m.client.Auth().IfNecessary(ctx, flow); err != nil {
		return fmt.Errorf("%w: %v", ErrLogin, err)
	}

	self, err := m.client.Self(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLogin, err)
	}

	m.loggedIn.Store(true)
	select {
	case m.authorized <- self.ID:
	default:
	}
	m.logger.Info("Logged in to Telegram as %s", phone)
	return nil
}

// IsLoggedIn сообщает, есть ли авторизованная сессия
func (m *Manager) IsLoggedIn() bool {
	return m.loggedIn.Load()
}

// Self возвращает авторизованного пользователя или nil, если данных о нём нет
func (m *Manager) Self(ctx context.Context) (*domain.Account, error) {
	status, err := m.client.Auth().Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAuthStatus, err)
	}

	m.loggedIn.Store(status.Authorized)
	if !status.Authorized || status.User == nil {
		return nil, nil
	}

	u := status.User
	m.directory.collectUser(u)

	return &domain.Account{
		ID:       u.ID,
		Name:     domain.UserTitle(u.FirstName, u.LastName),
		Username: u.Username,
	}, nil
}

// FetchDialogs загружает все диалоги в справочник и сохраняет снимок
func (m *Manager) FetchDialogs(ctx context.Context) (*domain.DialogStats, error) {
	stats := &domain.DialogStats{}

	err := query.GetDialogs(m.client.API()).BatchSize(dialogsBatchSize).ForEach(ctx, func(ctx context.Context, elem dialogs.Elem) error {
		for _, u := range elem.Entities.Users() {
			m.directory.collectUser(u)
		}
		for _, c := range elem.Entities.Chats() {
			m.directory.collectChat(c)
		}
		for _, c := range elem.Entities.Channels() {
			m.directory.collectChannel(c)
		}

		switch elem.Dialog.GetPeer().(type) {
		case *tg.PeerUser:
			stats.Users++
		case *tg.PeerChat:
			stats.Chats++
		case *tg.PeerChannel:
			stats.Channels++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchDialogs, err)
	}
	m.logger.Debug("Directory holds %d peer(s)", m.directory.Len())

	if m.store != nil {
		if err := m.store.SavePeers(ctx, m.directory.Snapshot()); err != nil {
			m.logger.Warn("Failed to save peer snapshot: %v", err)
		}
	}

	return stats, nil
}

// SetUpdateHandler регистрирует получателя обновлений
func (m *Manager) SetUpdateHandler(h domain.UpdateHandler) {
	m.handler.Store(&handlerBox{h: h})
}

// ClearUpdateHandler снимает получателя; дальнейшие обновления отбрасываются
func (m *Manager) ClearUpdateHandler() {
	m.handler.Store(nil)
}

// Handle получает обновления от updates.Manager: собирает сущности в справочник
// и передаёт каждое обновление зарегистрированному обработчику
func (m *Manager) Handle(ctx context.Context, u tg.UpdatesClass) error {
	switch upd := u.(type) {
	case *tg.Updates:
		m.directory.CollectUsers(upd.Users)
		m.directory.CollectChats(upd.Chats)
		m.deliver(ctx, upd.Updates...)
	case *tg.UpdatesCombined:
		m.directory.CollectUsers(upd.Users)
		m.directory.CollectChats(upd.Chats)
		m.deliver(ctx, upd.Updates...)
	case *tg.UpdateShort:
		m.deliver(ctx, upd.Update)
	default:
		m.logger.Debug("Skipped updates container: %s", u.TypeName())
	}
	return nil
}

func (m *Manager) deliver(ctx context.Context, updates ...tg.UpdateClass) {
	for _, u := range updates {
		m.dispatch(ctx, convertUpdate(u))
	}
}

func (m *Manager) dispatch(ctx context.Context, event domain.UpdateEvent) {
	box := m.handler.Load()
	if box == nil {
		return
	}
	box.h.HandleUpdate(ctx, event)
}

// SendMessage отправляет пересылку в целевой чат от имени аккаунта
func (m *Manager) SendMessage(ctx context.Context, msg *domain.ForwardMessage) error {
	if !msg.IsValid() {
		return ErrInvalidMessage
	}

	if !m.connected() {
		return ErrNotConnected
	}

	sender := message.NewSender(m.client.API())
	if _, err := sender.To(m.directory.InputPeer(msg.TargetChatID)).Text(ctx, msg.Text); err != nil {
		return fmt.Errorf("%w: %v", ErrSendMessage, err)
	}

	return nil
}

func (m *Manager) connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isRunning()
}

// Close останавливает клиент и ждёт завершения фоновой goroutine
func (m *Manager) Close() {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.cancel, m.done = nil, nil
	m.mu.Unlock()

	if cancel == nil {
		return
	}

	cancel()
	<-done
	m.logger.Info("Telegram client closed")
}
