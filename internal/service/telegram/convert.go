package telegram

import (
	"github.com/gotd/td/tg"

	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
)

// convertUpdate переводит обновление MTProto в доменное событие.
// Всё, для чего нет отдельного варианта, становится UnknownUpdate с именем TL-типа.
func convertUpdate(u tg.UpdateClass) domain.UpdateEvent {
	switch upd := u.(type) {
	case *tg.UpdateNewMessage:
		return newMessageEvent(upd.Message)
	case *tg.UpdateNewChannelMessage:
		return newMessageEvent(upd.Message)

	case *tg.UpdateEditMessage:
		msg, ok := upd.Message.(*tg.Message)
		if !ok {
			return unknown(upd)
		}
		peer, ok := peerRef(msg.PeerID)
		if !ok {
			return unknown(upd)
		}
		return &domain.EditMessage{MessageID: msg.ID, Peer: peer, Sender: senderRef(msg, peer)}

	case *tg.UpdateEditChannelMessage:
		edit := &domain.ChannelEditMessage{MessageID: upd.Message.GetID()}
		if msg, ok := upd.Message.(*tg.Message); ok {
			if ch, ok := msg.PeerID.(*tg.PeerChannel); ok {
				edit.ChannelID = ch.ChannelID
			}
		}
		return edit

	case *tg.UpdateDeleteMessages:
		return &domain.DeleteMessages{Count: len(upd.Messages)}

	case *tg.UpdateDeleteChannelMessages:
		return &domain.ChannelDeleteMessages{ChannelID: upd.ChannelID, Count: len(upd.Messages)}

	case *tg.UpdateUserTyping:
		return &domain.UserTyping{UserID: upd.UserID, Action: chatAction(upd.Action)}

	case *tg.UpdateChatUserTyping:
		from, ok := peerRef(upd.FromID)
		if !ok {
			return unknown(upd)
		}
		return &domain.ChatUserTyping{From: from, ChatID: upd.ChatID, Action: chatAction(upd.Action)}

	case *tg.UpdateChannelUserTyping:
		from, ok := peerRef(upd.FromID)
		if !ok {
			return unknown(upd)
		}
		return &domain.ChannelUserTyping{From: from, ChannelID: upd.ChannelID, Action: chatAction(upd.Action)}

	case *tg.UpdateChatParticipants:
		// Для закрытого списка (chatParticipantsForbidden) участников не видно
		participants, ok := upd.Participants.(*tg.ChatParticipants)
		if !ok {
			return unknown(upd)
		}
		return &domain.ChatParticipants{ChatID: participants.ChatID, Count: len(participants.Participants)}

	case *tg.UpdateUserStatus:
		return &domain.UserStatusChange{UserID: upd.UserID, Status: userStatus(upd.Status)}

	case *tg.UpdateUserName:
		return &domain.UserNameChange{UserID: upd.UserID, FirstName: upd.FirstName, LastName: upd.LastName}

	case *tg.UpdateUser:
		return &domain.UserProfileChange{UserID: upd.UserID}

	default:
		return unknown(u)
	}
}

func newMessageEvent(m tg.MessageClass) domain.UpdateEvent {
	msg, ok := m.(*tg.Message)
	if !ok {
		// messageService, messageEmpty
		return &domain.UnknownUpdate{TypeName: m.TypeName()}
	}

	peer, ok := peerRef(msg.PeerID)
	if !ok {
		return &domain.UnknownUpdate{TypeName: msg.TypeName()}
	}

	return &domain.NewMessage{
		MessageID: msg.ID,
		Peer:      peer,
		Sender:    senderRef(msg, peer),
		Text:      msg.Message,
		Outgoing:  msg.Out,
	}
}

// senderRef автор сообщения. В личном чате без from_id автор совпадает с чатом.
func senderRef(msg *tg.Message, peer domain.PeerRef) *domain.PeerRef {
	if from, ok := msg.GetFromID(); ok {
		if ref, ok := peerRef(from); ok {
			return &ref
		}
	}
	if peer.Kind == domain.PeerKindUser {
		return &peer
	}
	return nil
}

func peerRef(p tg.PeerClass) (domain.PeerRef, bool) {
	switch peer := p.(type) {
	case *tg.PeerUser:
		return domain.UserPeer(peer.UserID), true
	case *tg.PeerChat:
		return domain.ChatPeer(peer.ChatID), true
	case *tg.PeerChannel:
		return domain.ChannelPeer(peer.ChannelID), true
	default:
		return domain.PeerRef{}, false
	}
}

func unknown(u tg.UpdateClass) domain.UpdateEvent {
	return &domain.UnknownUpdate{TypeName: u.TypeName()}
}

func userStatus(s tg.UserStatusClass) domain.UserStatus {
	switch s.(type) {
	case *tg.UserStatusEmpty:
		return domain.UserStatusEmpty
	case *tg.UserStatusOnline:
		return domain.UserStatusOnline
	case *tg.UserStatusOffline:
		return domain.UserStatusOffline
	case *tg.UserStatusRecently:
		return domain.UserStatusRecently
	case *tg.UserStatusLastWeek:
		return domain.UserStatusLastWeek
	case *tg.UserStatusLastMonth:
		return domain.UserStatusLastMonth
	default:
		return domain.UserStatusUnknown
	}
}

func chatAction(a tg.SendMessageActionClass) domain.ChatAction {
	switch a.(type) {
	case *tg.SendMessageTypingAction:
		return domain.ChatActionTyping
	case *tg.SendMessageCancelAction:
		return domain.ChatActionCancel
	case *tg.SendMessageRecordVideoAction:
		return domain.ChatActionRecordVideo
	case *tg.SendMessageUploadVideoAction:
		return domain.ChatActionUploadVideo
	case *tg.SendMessageRecordAudioAction:
		return domain.ChatActionRecordAudio
	case *tg.SendMessageUploadAudioAction:
		return domain.ChatActionUploadAudio
	case *tg.SendMessageUploadPhotoAction:
		return domain.ChatActionUploadPhoto
	case *tg.SendMessageUploadDocumentAction:
		return domain.ChatActionUploadDocument
	case *tg.SendMessageGeoLocationAction:
		return domain.ChatActionGeoLocation
	case *tg.SendMessageChooseContactAction:
		return domain.ChatActionChooseContact
	case *tg.SendMessageChooseStickerAction:
		return domain.ChatActionChooseSticker
	case *tg.SendMessageGamePlayAction:
		return domain.ChatActionGamePlay
	case *tg.SendMessageRecordRoundAction:
		return domain.ChatActionRecordRound
	case *tg.SendMessageUploadRoundAction:
		return domain.ChatActionUploadRound
	default:
		return domain.ChatActionOther
	}
}
