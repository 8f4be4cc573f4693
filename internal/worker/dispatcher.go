package worker

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
)

const (
	sourceTypeChannel = "channel"
	sourceTypeChat    = "chat"
)

// UpdateDispatcher классифицирует обновления Telegram, логирует их и пересылает новые сообщения.
// Состояния между вызовами не хранит, справочник адресатов только читает.
type UpdateDispatcher struct {
	directory PeerDirectory
	target    TargetProvider
	forwarder Forwarder
	sink      MessageSink
	metrics   Metrics
	logger    Logger
}

// NewUpdateDispatcher создаёт диспетчер обновлений. sink может быть nil.
func NewUpdateDispatcher(
	directory PeerDirectory,
	target TargetProvider,
	forwarder Forwarder,
	sink MessageSink,
	metrics Metrics,
	logger Logger,
) *UpdateDispatcher {
	return &UpdateDispatcher{
		directory: directory,
		target:    target,
		forwarder: forwarder,
		sink:      sink,
		metrics:   metrics,
		logger:    logger,
	}
}

// HandleUpdate обрабатывает одно обновление. Ошибки и паники логируются и дальше не уходят.
func (d *UpdateDispatcher) HandleUpdate(ctx context.Context, update domain.UpdateEvent) {
	if update == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Panic while handling %s update: %v", update.Kind(), r)
		}
	}()

	d.metrics.IncUpdate(update.Kind().String())

	if err := update.Accept(ctx, d); err != nil {
		d.logger.Error("Failed to handle %s update: %v", update.Kind(), err)
	}
}

// VisitNewMessage логирует сообщение и отправляет его на пересылку, если задан целевой чат
func (d *UpdateDispatcher) VisitNewMessage(ctx context.Context, u *domain.NewMessage) error {
	title := d.title(u.Peer)

	sourceType := sourceTypeChat
	if u.IsChannel() {
		sourceType = sourceTypeChannel
	}

	d.logger.Info("Received %s message: [%s] %s", sourceType, title, u.Text)

	if d.sink != nil {
		if err := d.sink.Consume(ctx, u); err != nil {
			d.logger.Warn("Message sink failed for message %d in %s: %v", u.MessageID, u.Peer, err)
		}
	}

	targetID, ok := d.target.TargetChatID()
	if !ok {
		return nil
	}

	// Сообщения из самого целевого чата не пересылаем, иначе пересылка зациклится
	if u.Peer == d.targetRef(targetID) {
		return nil
	}

	if err := d.forwarder.Forward(ctx, domain.NewForwardMessage(targetID, title, u.Text)); err != nil {
		return fmt.Errorf("forward message %d from %s: %w", u.MessageID, title, err)
	}

	return nil
}

func (d *UpdateDispatcher) VisitEditMessage(_ context.Context, u *domain.EditMessage) error {
	actor := domain.UnknownPeerTitle
	if u.Sender != nil {
		actor = d.title(*u.Sender)
	}

	d.logger.Info("%s edited a message in %s", actor, d.title(u.Peer))
	return nil
}

func (d *UpdateDispatcher) VisitChannelEditMessage(_ context.Context, u *domain.ChannelEditMessage) error {
	d.logger.Info("Channel message edited: %d", u.ChannelID)
	return nil
}

func (d *UpdateDispatcher) VisitChannelDeleteMessages(_ context.Context, u *domain.ChannelDeleteMessages) error {
	d.logger.Info("%d message(s) deleted in %s", u.Count, d.title(domain.ChannelPeer(u.ChannelID)))
	return nil
}

func (d *UpdateDispatcher) VisitDeleteMessages(_ context.Context, u *domain.DeleteMessages) error {
	d.logger.Info("%d message(s) deleted", u.Count)
	return nil
}

func (d *UpdateDispatcher) VisitUserTyping(_ context.Context, u *domain.UserTyping) error {
	d.logger.Info("%s is %s", d.title(domain.UserPeer(u.UserID)), u.Action)
	return nil
}

func (d *UpdateDispatcher) VisitChatUserTyping(_ context.Context, u *domain.ChatUserTyping) error {
	d.logger.Info("%s is %s in %s", d.title(u.From), u.Action, d.title(domain.ChatPeer(u.ChatID)))
	return nil
}

func (d *UpdateDispatcher) VisitChannelUserTyping(_ context.Context, u *domain.ChannelUserTyping) error {
	d.logger.Info("%s is %s in %s", d.title(u.From), u.Action, d.title(domain.ChannelPeer(u.ChannelID)))
	return nil
}

func (d *UpdateDispatcher) VisitChatParticipants(_ context.Context, u *domain.ChatParticipants) error {
	d.logger.Info("%d participants in %s", u.Count, d.title(domain.ChatPeer(u.ChatID)))
	return nil
}

func (d *UpdateDispatcher) VisitUserStatus(_ context.Context, u *domain.UserStatusChange) error {
	d.logger.Info("%s is now %s", d.title(domain.UserPeer(u.UserID)), u.Status)
	return nil
}

func (d *UpdateDispatcher) VisitUserNameChange(_ context.Context, u *domain.UserNameChange) error {
	d.logger.Info("%s changed profile name: %s %s", d.title(domain.UserPeer(u.UserID)), u.FirstName, u.LastName)
	return nil
}

func (d *UpdateDispatcher) VisitUserProfileChange(_ context.Context, u *domain.UserProfileChange) error {
	d.logger.Info("%s changed infos/photo", d.title(domain.UserPeer(u.UserID)))
	return nil
}

func (d *UpdateDispatcher) VisitUnknown(_ context.Context, u *domain.UnknownUpdate) error {
	d.logger.Info("Unhandled update: %s", u.TypeName)
	return nil
}

// targetRef тип целевого чата по справочнику; неизвестный ID считается группой, как и при отправке
func (d *UpdateDispatcher) targetRef(id int64) domain.PeerRef {
	if ref, ok := d.directory.ResolveRef(id); ok {
		return ref
	}
	return domain.ChatPeer(id)
}

// title возвращает отображаемое имя адресата или "unknown"
func (d *UpdateDispatcher) title(ref domain.PeerRef) string {
	info, ok := d.directory.Lookup(ref)
	if !ok {
		return domain.UnknownPeerTitle
	}
	return info.DisplayName()
}
