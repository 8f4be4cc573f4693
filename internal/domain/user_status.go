package domain

// UserStatus статус присутствия пользователя
type UserStatus int

const (
	UserStatusUnknown UserStatus = iota
	UserStatusEmpty
	UserStatusOnline
	UserStatusOffline
	UserStatusRecently
	UserStatusLastWeek
	UserStatusLastMonth
)

var userStatusNames = map[UserStatus]string{
	UserStatusUnknown:   "Unknown",
	UserStatusEmpty:     "Empty",
	UserStatusOnline:    "Online",
	UserStatusOffline:   "Offline",
	UserStatusRecently:  "Recently",
	UserStatusLastWeek:  "LastWeek",
	UserStatusLastMonth: "LastMonth",
}

func (s UserStatus) String() string {
	if name, ok := userStatusNames[s]; ok {
		return name
	}
	return userStatusNames[UserStatusUnknown]
}

// ChatAction действие участника, о котором сообщает индикатор набора
type ChatAction int

const (
	ChatActionOther ChatAction = iota
	ChatActionTyping
	ChatActionCancel
	ChatActionRecordVideo
	ChatActionUploadVideo
	ChatActionRecordAudio
	ChatActionUploadAudio
	ChatActionUploadPhoto
	ChatActionUploadDocument
	ChatActionGeoLocation
	ChatActionChooseContact
	ChatActionChooseSticker
	ChatActionGamePlay
	ChatActionRecordRound
	ChatActionUploadRound
)

var chatActionNames = map[ChatAction]string{
	ChatActionOther:          "doing something",
	ChatActionTyping:         "typing",
	ChatActionCancel:         "cancelling an action",
	ChatActionRecordVideo:    "recording a video",
	ChatActionUploadVideo:    "uploading a video",
	ChatActionRecordAudio:    "recording a voice message",
	ChatActionUploadAudio:    "uploading an audio",
	ChatActionUploadPhoto:    "uploading a photo",
	ChatActionUploadDocument: "uploading a document",
	ChatActionGeoLocation:    "choosing a location",
	ChatActionChooseContact:  "choosing a contact",
	ChatActionChooseSticker:  "choosing a sticker",
	ChatActionGamePlay:       "playing a game",
	ChatActionRecordRound:    "recording a video message",
	ChatActionUploadRound:    "uploading a video message",
}

func (a ChatAction) String() string {
	if name, ok := chatActionNames[a]; ok {
		return name
	}
	return chatActionNames[ChatActionOther]
}
