package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
)

const targetChatID = int64(9000)

var (
	aliceRef   = domain.UserPeer(1)
	groupRef   = domain.ChatPeer(2)
	channelRef = domain.ChannelPeer(3)
)

func testDirectory() fakeDirectory {
	return fakeDirectory{
		aliceRef:   {Ref: aliceRef, Title: "Alice", Username: "alice"},
		groupRef:   {Ref: groupRef, Title: "Dev Group"},
		channelRef: {Ref: channelRef, Title: "News"},
	}
}

type dispatcherFixture struct {
	dispatcher *UpdateDispatcher
	forwarder  *fakeForwarder
	logger     *fakeLogger
	metrics    *fakeMetrics
}

func newDispatcherFixture(target int64) *dispatcherFixture {
	f := &dispatcherFixture{
		forwarder: &fakeForwarder{},
		logger:    &fakeLogger{},
		metrics:   newFakeMetrics(),
	}
	f.dispatcher = NewUpdateDispatcher(testDirectory(), fakeTarget{id: target}, f.forwarder, nil, f.metrics, f.logger)
	return f
}

func TestDispatcher_NewMessage_LogsAndForwards(t *testing.T) {
	f := newDispatcherFixture(targetChatID)

	f.dispatcher.HandleUpdate(context.Background(), &domain.NewMessage{
		MessageID: 10,
		Peer:      aliceRef,
		Text:      "hi",
	})

	infos := f.logger.byLevel("info")
	require.Len(t, infos, 1)
	assert.Contains(t, infos[0], "Alice")
	assert.Contains(t, infos[0], "hi")
	assert.Contains(t, infos[0], "chat")

	require.Len(t, f.forwarder.calls, 1)
	fwd := f.forwarder.calls[0]
	assert.Equal(t, targetChatID, fwd.TargetChatID)
	assert.Contains(t, fwd.Text, "Alice")
	assert.Contains(t, fwd.Text, "hi")

	assert.Equal(t, 1, f.metrics.updates["new_message"])
}

func TestDispatcher_NewMessage_ChannelSource(t *testing.T) {
	f := newDispatcherFixture(0)

	f.dispatcher.HandleUpdate(context.Background(), &domain.NewMessage{Peer: channelRef, Text: "breaking"})

	assert.True(t, f.logger.contains("info", "Received channel message: [News] breaking"))
	assert.Empty(t, f.forwarder.calls)
}

func TestDispatcher_NewMessage_UnknownPeer(t *testing.T) {
	f := newDispatcherFixture(targetChatID)

	f.dispatcher.HandleUpdate(context.Background(), &domain.NewMessage{Peer: domain.UserPeer(404), Text: "who am i"})

	assert.True(t, f.logger.contains("info", "[unknown] who am i"))
	require.Len(t, f.forwarder.calls, 1)
	assert.Contains(t, f.forwarder.calls[0].Text, "unknown")
}

func TestDispatcher_NewMessage_NoTargetNoForward(t *testing.T) {
	f := newDispatcherFixture(0)

	f.dispatcher.HandleUpdate(context.Background(), &domain.NewMessage{Peer: aliceRef, Text: "hi"})

	assert.Empty(t, f.forwarder.calls)
	assert.Empty(t, f.logger.byLevel("error"))
}

func TestDispatcher_NewMessage_FromTargetChatIsNotForwarded(t *testing.T) {
	f := newDispatcherFixture(groupRef.ID)

	f.dispatcher.HandleUpdate(context.Background(), &domain.NewMessage{Peer: groupRef, Text: "Message from Alice: hi"})

	assert.Empty(t, f.forwarder.calls)
	assert.Len(t, f.logger.byLevel("info"), 1)
}

func TestDispatcher_NewMessage_SameIDOtherKindIsForwarded(t *testing.T) {
	tests := []struct {
		name   string
		target int64
		peer   domain.PeerRef
	}{
		{name: "user with group id", target: groupRef.ID, peer: domain.UserPeer(groupRef.ID)},
		{name: "group with channel id", target: channelRef.ID, peer: domain.ChatPeer(channelRef.ID)},
		{name: "user with unknown target id", target: 77, peer: domain.UserPeer(77)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDispatcherFixture(tt.target)

			f.dispatcher.HandleUpdate(context.Background(), &domain.NewMessage{Peer: tt.peer, Text: "hi"})

			require.Len(t, f.forwarder.calls, 1)
			assert.Equal(t, tt.target, f.forwarder.calls[0].TargetChatID)
		})
	}
}

func TestDispatcher_NewMessage_FromUnknownTargetGroupIsNotForwarded(t *testing.T) {
	f := newDispatcherFixture(77)

	f.dispatcher.HandleUpdate(context.Background(), &domain.NewMessage{Peer: domain.ChatPeer(77), Text: "echo"})

	assert.Empty(t, f.forwarder.calls)
}

type recordingSink struct {
	got []*domain.NewMessage
	err error
}

func (s *recordingSink) Consume(_ context.Context, msg *domain.NewMessage) error {
	s.got = append(s.got, msg)
	return s.err
}

func TestDispatcher_NewMessage_Sink(t *testing.T) {
	sink := &recordingSink{err: errors.New("cache unavailable")}
	logger := &fakeLogger{}
	forwarder := &fakeForwarder{}
	d := NewUpdateDispatcher(testDirectory(), fakeTarget{id: targetChatID}, forwarder, sink, newFakeMetrics(), logger)

	d.HandleUpdate(context.Background(), &domain.NewMessage{Peer: aliceRef, Text: "hi"})

	require.Len(t, sink.got, 1)
	assert.Equal(t, "hi", sink.got[0].Text)
	assert.True(t, logger.contains("warn", "cache unavailable"))
	assert.Len(t, forwarder.calls, 1, "sink failure must not block forwarding")
}

func TestDispatcher_ForwardFailureDoesNotStopProcessing(t *testing.T) {
	f := newDispatcherFixture(targetChatID)
	f.forwarder.errs = []error{errors.New("network down")}

	f.dispatcher.HandleUpdate(context.Background(), &domain.NewMessage{MessageID: 1, Peer: aliceRef, Text: "first"})
	f.dispatcher.HandleUpdate(context.Background(), &domain.NewMessage{MessageID: 2, Peer: channelRef, Text: "second"})

	errs := f.logger.byLevel("error")
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "network down")

	require.Len(t, f.forwarder.calls, 2)
	assert.Contains(t, f.forwarder.calls[1].Text, "second")
	assert.True(t, f.logger.contains("info", "[News] second"))
}

func TestDispatcher_UnknownUpdate(t *testing.T) {
	f := newDispatcherFixture(targetChatID)

	f.dispatcher.HandleUpdate(context.Background(), &domain.UnknownUpdate{TypeName: "updateReadHistoryInbox"})

	infos := f.logger.byLevel("info")
	require.Len(t, infos, 1)
	assert.Contains(t, infos[0], "updateReadHistoryInbox")
	assert.Empty(t, f.forwarder.calls)
	assert.Equal(t, 1, f.metrics.updates["unknown"])
}

func TestDispatcher_Variants(t *testing.T) {
	tests := []struct {
		name   string
		update domain.UpdateEvent
		want   string
	}{
		{
			name:   "edit message",
			update: &domain.EditMessage{Peer: groupRef, Sender: &aliceRef},
			want:   "Alice edited a message in Dev Group",
		},
		{
			name:   "edit message without sender",
			update: &domain.EditMessage{Peer: groupRef},
			want:   "unknown edited a message in Dev Group",
		},
		{
			name:   "channel edit",
			update: &domain.ChannelEditMessage{ChannelID: 3},
			want:   "Channel message edited: 3",
		},
		{
			name:   "channel delete",
			update: &domain.ChannelDeleteMessages{ChannelID: 3, Count: 4},
			want:   "4 message(s) deleted in News",
		},
		{
			name:   "delete",
			update: &domain.DeleteMessages{Count: 2},
			want:   "2 message(s) deleted",
		},
		{
			name:   "user typing",
			update: &domain.UserTyping{UserID: 1, Action: domain.ChatActionTyping},
			want:   "Alice is typing",
		},
		{
			name:   "chat typing",
			update: &domain.ChatUserTyping{From: aliceRef, ChatID: 2, Action: domain.ChatActionUploadPhoto},
			want:   "Alice is uploading a photo in Dev Group",
		},
		{
			name:   "channel typing",
			update: &domain.ChannelUserTyping{From: aliceRef, ChannelID: 3, Action: domain.ChatActionTyping},
			want:   "Alice is typing in News",
		},
		{
			name:   "participants",
			update: &domain.ChatParticipants{ChatID: 2, Count: 12},
			want:   "12 participants in Dev Group",
		},
		{
			name:   "status",
			update: &domain.UserStatusChange{UserID: 1, Status: domain.UserStatusOnline},
			want:   "Alice is now Online",
		},
		{
			name:   "name change",
			update: &domain.UserNameChange{UserID: 1, FirstName: "Alicia", LastName: "Keys"},
			want:   "Alice changed profile name: Alicia Keys",
		},
		{
			name:   "profile change",
			update: &domain.UserProfileChange{UserID: 1},
			want:   "Alice changed infos/photo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newDispatcherFixture(targetChatID)

			f.dispatcher.HandleUpdate(context.Background(), tt.update)

			infos := f.logger.byLevel("info")
			require.Len(t, infos, 1)
			assert.Equal(t, tt.want, infos[0])
			assert.Empty(t, f.forwarder.calls)
			assert.Equal(t, 1, f.metrics.updates[tt.update.Kind().String()])
		})
	}
}

type panickingDirectory struct{}

func (panickingDirectory) Lookup(domain.PeerRef) (domain.PeerInfo, bool) {
	panic("directory corrupted")
}

func (panickingDirectory) ResolveRef(int64) (domain.PeerRef, bool) {
	return domain.PeerRef{}, false
}

func TestDispatcher_RecoversFromPanic(t *testing.T) {
	logger := &fakeLogger{}
	d := NewUpdateDispatcher(panickingDirectory{}, fakeTarget{}, &fakeForwarder{}, nil, newFakeMetrics(), logger)

	assert.NotPanics(t, func() {
		d.HandleUpdate(context.Background(), &domain.UserProfileChange{UserID: 1})
	})
	assert.True(t, logger.contains("error", "directory corrupted"))

	assert.NotPanics(t, func() {
		d.HandleUpdate(context.Background(), &domain.DeleteMessages{Count: 1})
	})
	assert.True(t, logger.contains("info", "1 message(s) deleted"))
}

func TestDispatcher_NilUpdate(t *testing.T) {
	f := newDispatcherFixture(targetChatID)
	f.dispatcher.HandleUpdate(context.Background(), nil)
	assert.Empty(t, f.logger.entries)
}
