package domain

import "context"

// UpdateKind перечисление всех вариантов обновлений, которые обрабатывает монитор
type UpdateKind int

const (
	UpdateKindUnknown UpdateKind = iota
	UpdateKindNewMessage
	UpdateKindEditMessage
	UpdateKindChannelEditMessage
	UpdateKindDeleteMessages
	UpdateKindChannelDeleteMessages
	UpdateKindUserTyping
	UpdateKindChatUserTyping
	UpdateKindChannelUserTyping
	UpdateKindChatParticipants
	UpdateKindUserStatus
	UpdateKindUserNameChange
	UpdateKindUserProfileChange
)

var updateKindNames = map[UpdateKind]string{
	UpdateKindUnknown:               "unknown",
	UpdateKindNewMessage:            "new_message",
	UpdateKindEditMessage:           "edit_message",
	UpdateKindChannelEditMessage:    "channel_edit_message",
	UpdateKindDeleteMessages:        "delete_messages",
	UpdateKindChannelDeleteMessages: "channel_delete_messages",
	UpdateKindUserTyping:            "user_typing",
	UpdateKindChatUserTyping:        "chat_user_typing",
	UpdateKindChannelUserTyping:     "channel_user_typing",
	UpdateKindChatParticipants:      "chat_participants",
	UpdateKindUserStatus:            "user_status",
	UpdateKindUserNameChange:        "user_name_change",
	UpdateKindUserProfileChange:     "user_profile_change",
}

// String возвращает имя варианта для логов и меток метрик
func (k UpdateKind) String() string {
	if name, ok := updateKindNames[k]; ok {
		return name
	}
	return updateKindNames[UpdateKindUnknown]
}

// UpdateVisitor обработчик обновлений: по одному методу на каждый вариант.
// Новый вариант UpdateEvent требует нового метода, поэтому неполный обработчик не скомпилируется.
type UpdateVisitor interface {
	VisitNewMessage(ctx context.Context, u *NewMessage) error
	VisitEditMessage(ctx context.Context, u *EditMessage) error
	VisitChannelEditMessage(ctx context.Context, u *ChannelEditMessage) error
	VisitDeleteMessages(ctx context.Context, u *DeleteMessages) error
	VisitChannelDeleteMessages(ctx context.Context, u *ChannelDeleteMessages) error
	VisitUserTyping(ctx context.Context, u *UserTyping) error
	VisitChatUserTyping(ctx context.Context, u *ChatUserTyping) error
	VisitChannelUserTyping(ctx context.Context, u *ChannelUserTyping) error
	VisitChatParticipants(ctx context.Context, u *ChatParticipants) error
	VisitUserStatus(ctx context.Context, u *UserStatusChange) error
	VisitUserNameChange(ctx context.Context, u *UserNameChange) error
	VisitUserProfileChange(ctx context.Context, u *UserProfileChange) error
	VisitUnknown(ctx context.Context, u *UnknownUpdate) error
}

// UpdateEvent закрытый sum-тип обновлений. Реализуется только типами этого пакета.
type UpdateEvent interface {
	Kind() UpdateKind
	Accept(ctx context.Context, v UpdateVisitor) error
	isUpdateEvent()
}

// UpdateHandler получатель доменных событий, регистрируется в клиенте на время мониторинга
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, update UpdateEvent)
}

// NewMessage новое сообщение в личном чате, группе или канале
type NewMessage struct {
	MessageID int
	Peer      PeerRef  // Чат, в котором появилось сообщение
	Sender    *PeerRef // Автор, если известен
	Text      string
	Outgoing  bool
}

// EditMessage отредактированное сообщение в личном чате или группе
type EditMessage struct {
	MessageID int
	Peer      PeerRef
	Sender    *PeerRef
}

// ChannelEditMessage отредактированное сообщение в канале
type ChannelEditMessage struct {
	MessageID int
	ChannelID int64
}

// DeleteMessages удаление сообщений в личных чатах и группах
type DeleteMessages struct {
	Count int
}

// ChannelDeleteMessages удаление сообщений в канале
type ChannelDeleteMessages struct {
	ChannelID int64
	Count     int
}

// UserTyping пользователь печатает в личном чате
type UserTyping struct {
	UserID int64
	Action ChatAction
}

// ChatUserTyping участник печатает в группе
type ChatUserTyping struct {
	From   PeerRef
	ChatID int64
	Action ChatAction
}

// ChannelUserTyping участник печатает в канале или супергруппе
type ChannelUserTyping struct {
	From      PeerRef
	ChannelID int64
	Action    ChatAction
}

// ChatParticipants обновление списка участников группы
type ChatParticipants struct {
	ChatID int64
	Count  int
}

// UserStatusChange изменение статуса присутствия пользователя
type UserStatusChange struct {
	UserID int64
	Status UserStatus
}

// UserNameChange пользователь сменил имя
type UserNameChange struct {
	UserID    int64
	FirstName string
	LastName  string
}

// UserProfileChange пользователь изменил данные профиля или фото
type UserProfileChange struct {
	UserID int64
}

// UnknownUpdate обновление, для которого нет отдельного обработчика
type UnknownUpdate struct {
	TypeName string // Имя TL-типа, например updateReadHistoryInbox
}

func (*NewMessage) Kind() UpdateKind            { return UpdateKindNewMessage }
func (*EditMessage) Kind() UpdateKind           { return UpdateKindEditMessage }
func (*ChannelEditMessage) Kind() UpdateKind    { return UpdateKindChannelEditMessage }
func (*DeleteMessages) Kind() UpdateKind        { return UpdateKindDeleteMessages }
func (*ChannelDeleteMessages) Kind() UpdateKind { return UpdateKindChannelDeleteMessages }
func (*UserTyping) Kind() UpdateKind            { return UpdateKindUserTyping }
func (*ChatUserTyping) Kind() UpdateKind        { return UpdateKindChatUserTyping }
func (*ChannelUserTyping) Kind() UpdateKind     { return UpdateKindChannelUserTyping }
func (*ChatParticipants) Kind() UpdateKind      { return UpdateKindChatParticipants }
func (*UserStatusChange) Kind() UpdateKind      { return UpdateKindUserStatus }
func (*UserNameChange) Kind() UpdateKind        { return UpdateKindUserNameChange }
func (*UserProfileChange) Kind() UpdateKind     { return UpdateKindUserProfileChange }
func (*UnknownUpdate) Kind() UpdateKind         { return UpdateKindUnknown }

func (u *NewMessage) Accept(ctx context.Context, v UpdateVisitor) error {
	return v.VisitNewMessage(ctx, u)
}

func (u *EditMessage) Accept(ctx context.Context, v UpdateVisitor) error {
	return v.VisitEditMessage(ctx, u)
}

func (u *ChannelEditMessage) Accept(ctx context.Context, v UpdateVisitor) error {
	return v.VisitChannelEditMessage(ctx, u)
}

func (u *DeleteMessages) Accept(ctx context.Context, v UpdateVisitor) error {
	return v.VisitDeleteMessages(ctx, u)
}

func (u *ChannelDeleteMessages) Accept(ctx context.Context, v UpdateVisitor) error {
	return v.VisitChannelDeleteMessages(ctx, u)
}

func (u *UserTyping) Accept(ctx context.Context, v UpdateVisitor) error {
	return v.VisitUserTyping(ctx, u)
}

func (u *ChatUserTyping) Accept(ctx context.Context, v UpdateVisitor) error {
	return v.VisitChatUserTyping(ctx, u)
}

func (u *ChannelUserTyping) Accept(ctx context.Context, v UpdateVisitor) error {
	return v.VisitChannelUserTyping(ctx, u)
}

func (u *ChatParticipants) Accept(ctx context.Context, v UpdateVisitor) error {
	return v.VisitChatParticipants(ctx, u)
}

func (u *UserStatusChange) Accept(ctx context.Context, v UpdateVisitor) error {
	return v.VisitUserStatus(ctx, u)
}

func (u *UserNameChange) Accept(ctx context.Context, v UpdateVisitor) error {
	return v.VisitUserNameChange(ctx, u)
}

func (u *UserProfileChange) Accept(ctx context.Context, v UpdateVisitor) error {
	return v.VisitUserProfileChange(ctx, u)
}

func (u *UnknownUpdate) Accept(ctx context.Context, v UpdateVisitor) error {
	return v.VisitUnknown(ctx, u)
}

func (*NewMessage) isUpdateEvent()            {}
func (*EditMessage) isUpdateEvent()           {}
func (*ChannelEditMessage) isUpdateEvent()    {}
func (*DeleteMessages) isUpdateEvent()        {}
func (*ChannelDeleteMessages) isUpdateEvent() {}
func (*UserTyping) isUpdateEvent()            {}
func (*ChatUserTyping) isUpdateEvent()        {}
func (*ChannelUserTyping) isUpdateEvent()     {}
func (*ChatParticipants) isUpdateEvent()      {}
func (*UserStatusChange) isUpdateEvent()      {}
func (*UserNameChange) isUpdateEvent()        {}
func (*UserProfileChange) isUpdateEvent()     {}
func (*UnknownUpdate) isUpdateEvent()         {}

// IsChannel проверяет, пришло ли сообщение из канала
func (u *NewMessage) IsChannel() bool {
	return u.Peer.Kind == PeerKindChannel
}
