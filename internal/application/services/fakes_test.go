package services

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"excel-analytics-api/internal/domain/progress"
	"excel-analytics-api/internal/infrastructure/db/memory"
	"excel-analytics-api/internal/infrastructure/mq"
	"excel-analytics-api/internal/infrastructure/storage"
)

type emitted struct {
	room  string
	event string
	data  progress.Event
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []emitted
}

func (n *recordingNotifier) Emit(room, event string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	p, _ := payload.(progress.Event)
	n.events = append(n.events, emitted{room: room, event: event, data: p})
}

func (n *recordingNotifier) progressOf(event string) []int {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []int
	for _, e := range n.events {
		if e.event == event {
			out = append(out, e.data.Progress)
		}
	}
	return out
}

func (n *recordingNotifier) last() emitted {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.events[len(n.events)-1]
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []mq.Event
}

func (p *recordingPublisher) Publish(e mq.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func (p *recordingPublisher) actions() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Action)
	}
	return out
}

type stubSummarizer struct {
	calls  int
	prompt string
	out    string
	err    error
}

func (s *stubSummarizer) Summarize(_ context.Context, prompt string) (string, error) {
	s.calls++
	s.prompt = prompt
	return s.out, s.err
}

type fixture struct {
	users     *memory.UserRepository
	files     *memory.UserFileRepository
	history   *memory.HistoryRepository
	storage   *storage.Local
	notifier  *recordingNotifier
	publisher *recordingPublisher
	counter   *prometheus.CounterVec
	logger    *zap.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := memory.NewUserRepository()
	blobs, err := storage.NewLocal(zap.NewNop(), t.TempDir())
	require.NoError(t, err)

	return &fixture{
		users:     users,
		files:     memory.NewUserFileRepository(users),
		history:   memory.NewHistoryRepository(),
		storage:   blobs,
		notifier:  &recordingNotifier{},
		publisher: &recordingPublisher{},
		counter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "test",
			Name:      "general_counters",
		}, []string{"result"}),
		logger: zap.NewNop(),
	}
}
