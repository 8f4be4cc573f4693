package worker

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/m04kA/SMC-TelegramMonitor/internal/domain"
)

type logEntry struct {
	level string
	msg   string
}

type fakeLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *fakeLogger) add(level, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{level: level, msg: fmt.Sprintf(format, v...)})
}

func (l *fakeLogger) Debug(format string, v ...interface{}) { l.add("debug", format, v...) }
func (l *fakeLogger) Info(format string, v ...interface{})  { l.add("info", format, v...) }
func (l *fakeLogger) Warn(format string, v ...interface{})  { l.add("warn", format, v...) }
func (l *fakeLogger) Error(format string, v ...interface{}) { l.add("error", format, v...) }

func (l *fakeLogger) byLevel(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []string
	for _, e := range l.entries {
		if e.level == level {
			out = append(out, e.msg)
		}
	}
	return out
}

func (l *fakeLogger) contains(level, substr string) bool {
	for _, msg := range l.byLevel(level) {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

type fakeDirectory map[domain.PeerRef]domain.PeerInfo

func (d fakeDirectory) Lookup(ref domain.PeerRef) (domain.PeerInfo, bool) {
	info, ok := d[ref]
	return info, ok
}

func (d fakeDirectory) ResolveRef(id int64) (domain.PeerRef, bool) {
	for _, ref := range []domain.PeerRef{domain.ChannelPeer(id), domain.ChatPeer(id), domain.UserPeer(id)} {
		if _, ok := d[ref]; ok {
			return ref, true
		}
	}
	return domain.PeerRef{}, false
}

type fakeTarget struct {
	id int64
}

func (t fakeTarget) TargetChatID() (int64, bool) {
	return t.id, t.id != 0
}

type fakeForwarder struct {
	mu    sync.Mutex
	calls []*domain.ForwardMessage
	errs  []error // Ошибки по порядку вызовов
}

func (f *fakeForwarder) Forward(_ context.Context, msg *domain.ForwardMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	idx := len(f.calls)
	f.calls = append(f.calls, msg)
	if idx < len(f.errs) {
		return f.errs[idx]
	}
	return nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []*domain.ForwardMessage
	err  error
	done chan struct{}
}

func newFakeSender(err error) *fakeSender {
	return &fakeSender{err: err, done: make(chan struct{}, 16)}
}

func (s *fakeSender) SendMessage(_ context.Context, msg *domain.ForwardMessage) error {
	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()

	s.done <- struct{}{}
	return s.err
}

func (s *fakeSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

type fakeMetrics struct {
	mu       sync.Mutex
	updates  map[string]int
	forwards map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{updates: map[string]int{}, forwards: map[string]int{}}
}

func (m *fakeMetrics) IncUpdate(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates[kind]++
}

func (m *fakeMetrics) IncForward(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forwards[result]++
}

func (m *fakeMetrics) forward(result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.forwards[result]
}
