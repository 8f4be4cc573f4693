package domain

import (
	"fmt"
	"strings"
)

// PeerKind тип адресата в Telegram
type PeerKind string

const (
	PeerKindUser    PeerKind = "user"
	PeerKindChat    PeerKind = "chat"    // Обычная группа
	PeerKindChannel PeerKind = "channel" // Канал или супергруппа
)

// UnknownPeerTitle подставляется в логи, если адресата нет в справочнике
const UnknownPeerTitle = "unknown"

// PeerRef ссылка на адресата: тип + числовой ID
type PeerRef struct {
	Kind PeerKind
	ID   int64
}

// UserPeer создаёт ссылку на пользователя
func UserPeer(id int64) PeerRef {
	return PeerRef{Kind: PeerKindUser, ID: id}
}

// ChatPeer создаёт ссылку на группу
func ChatPeer(id int64) PeerRef {
	return PeerRef{Kind: PeerKindChat, ID: id}
}

// ChannelPeer создаёт ссылку на канал
func ChannelPeer(id int64) PeerRef {
	return PeerRef{Kind: PeerKindChannel, ID: id}
}

func (p PeerRef) String() string {
	return fmt.Sprintf("%s:%d", p.Kind, p.ID)
}

// PeerInfo отображаемые данные адресата из справочника
type PeerInfo struct {
	Ref        PeerRef
	Title      string // Название чата/канала или имя пользователя
	Username   string
	AccessHash int64
}

// DisplayName возвращает имя для логов: название, затем @username, затем ID
func (p PeerInfo) DisplayName() string {
	if p.Title != "" {
		return p.Title
	}
	if p.Username != "" {
		return "@" + p.Username
	}
	return p.Ref.String()
}

// UserTitle склеивает имя и фамилию пользователя
func UserTitle(firstName, lastName string) string {
	return strings.TrimSpace(firstName + " " + lastName)
}

// Account авторизованный пользователь, от имени которого работает монитор
type Account struct {
	ID       int64
	Name     string
	Username string
}

// DialogStats итог загрузки диалогов в справочник
type DialogStats struct {
	Users    int
	Chats    int
	Channels int
}
