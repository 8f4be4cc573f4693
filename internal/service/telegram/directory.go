package telegram

import (
	"sort"
	"sync"

	"github.com/gotd/td/tg"

	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
)

// Directory справочник адресатов: ID -> отображаемые данные.
// Пишет только клиентский слой, диспетчер читает через Lookup.
type Directory struct {
	mu    sync.RWMutex
	peers map[domain.PeerRef]domain.PeerInfo
}

// NewDirectory создает пустой справочник
func NewDirectory() *Directory {
	return &Directory{
		peers: make(map[domain.PeerRef]domain.PeerInfo),
	}
}

// Lookup ищет адресата по ссылке
func (d *Directory) Lookup(ref domain.PeerRef) (domain.PeerInfo, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	info, ok := d.peers[ref]
	return info, ok
}

// ResolveRef определяет тип адресата по ID: канал, затем группа, затем пользователь
func (d *Directory) ResolveRef(id int64) (domain.PeerRef, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, ref := range []domain.PeerRef{domain.ChannelPeer(id), domain.ChatPeer(id), domain.UserPeer(id)} {
		if _, ok := d.peers[ref]; ok {
			return ref, true
		}
	}
	return domain.PeerRef{}, false
}

// Put добавляет или обновляет адресата.
// Известный access hash не затирается нулевым (min-объекты приходят без него).
func (d *Directory) Put(info domain.PeerInfo) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.put(info)
}

func (d *Directory) put(info domain.PeerInfo) {
	if prev, ok := d.peers[info.Ref]; ok && info.AccessHash == 0 {
		info.AccessHash = prev.AccessHash
	}
	d.peers[info.Ref] = info
}

// Load заполняет справочник из сохранённого снимка
func (d *Directory) Load(peers []domain.PeerInfo) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, info := range peers {
		d.put(info)
	}
}

// Snapshot возвращает копию справочника, отсортированную по типу и ID
func (d *Directory) Snapshot() []domain.PeerInfo {
	d.mu.RLock()
	out := make([]domain.PeerInfo, 0, len(d.peers))
	for _, info := range d.peers {
		out = append(out, info)
	}
	d.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Ref.Kind != out[j].Ref.Kind {
			return out[i].Ref.Kind < out[j].Ref.Kind
		}
		return out[i].Ref.ID < out[j].Ref.ID
	})
	return out
}

// Len количество адресатов в справочнике
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.peers)
}

// InputPeer строит адресата для отправки сообщения.
// Если ID нет в справочнике, считаем его обычной группой: для неё access hash не нужен.
func (d *Directory) InputPeer(id int64) tg.InputPeerClass {
	ref, ok := d.ResolveRef(id)
	if !ok {
		return &tg.InputPeerChat{ChatID: id}
	}

	info, _ := d.Lookup(ref)
	switch ref.Kind {
	case domain.PeerKindChannel:
		return &tg.InputPeerChannel{ChannelID: id, AccessHash: info.AccessHash}
	case domain.PeerKindUser:
		return &tg.InputPeerUser{UserID: id, AccessHash: info.AccessHash}
	default:
		return &tg.InputPeerChat{ChatID: id}
	}
}

// CollectUsers добавляет пользователей из ответа Telegram
func (d *Directory) CollectUsers(users []tg.UserClass) {
	for _, u := range users {
		if user, ok := u.(*tg.User); ok {
			d.collectUser(user)
		}
	}
}

// CollectChats добавляет группы и каналы из ответа Telegram
func (d *Directory) CollectChats(chats []tg.ChatClass) {
	for _, c := range chats {
		switch chat := c.(type) {
		case *tg.Chat:
			d.collectChat(chat)
		case *tg.ChatForbidden:
			d.Put(domain.PeerInfo{Ref: domain.ChatPeer(chat.ID), Title: chat.Title})
		case *tg.Channel:
			d.collectChannel(chat)
		case *tg.ChannelForbidden:
			d.Put(domain.PeerInfo{Ref: domain.ChannelPeer(chat.ID), Title: chat.Title, AccessHash: chat.AccessHash})
		}
	}
}

func (d *Directory) collectUser(u *tg.User) {
	d.Put(domain.PeerInfo{
		Ref:        domain.UserPeer(u.ID),
		Title:      domain.UserTitle(u.FirstName, u.LastName),
		Username:   u.Username,
		AccessHash: u.AccessHash,
	})
}

func (d *Directory) collectChat(c *tg.Chat) {
	d.Put(domain.PeerInfo{
		Ref:   domain.ChatPeer(c.ID),
		Title: c.Title,
	})
}

func (d *Directory) collectChannel(c *tg.Channel) {
	d.Put(domain.PeerInfo{
		Ref:        domain.ChannelPeer(c.ID),
		Title:      c.Title,
		Username:   c.Username,
		AccessHash: c.AccessHash,
	})
}
