package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/Raunak-23/EvalAI-paper-correction/internal/config"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/model"
	"github.com/Raunak-23/EvalAI-paper-correction/internal/worker"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStateRepo is an in-memory StateRepository for tests.
type memStateRepo struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStateRepo() *memStateRepo {
	return &memStateRepo{data: make(map[string]string)}
}

func (r *memStateRepo) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[key]
	return v, ok, nil
}

func (r *memStateRepo) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value
	return nil
}

func (r *memStateRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

// testPersister returns a running persister and a drain func that flushes
// everything queued so far and stops the worker.
func testPersister(repo *memStateRepo) (*worker.StatePersister, func()) {
	p := worker.NewStatePersister(repo, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Start(ctx)
		close(done)
	}()
	return p, func() {
		cancel()
		<-done
	}
}

func newTestNotificationService(repo *memStateRepo, p *worker.StatePersister) *NotificationService {
	return NewNotificationService(repo, p, nil, zerolog.Nop())
}

func TestAssignmentCreated_DueToday(t *testing.T) {
	repo := newMemStateRepo()
	p, drain := testPersister(repo)
	defer drain()

	s := newTestNotificationService(repo, p)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.AssignmentCreated(context.Background(), 1, "HW1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	items, unread := s.List(context.Background(), 1)
	require.Len(t, items, 1)
	assert.Equal(t, `Assignment "HW1" is due today`, items[0].Message)
	assert.Equal(t, 1, unread)
}

func TestAssignmentCreated_FutureDueEmitsNothing(t *testing.T) {
	repo := newMemStateRepo()
	p, drain := testPersister(repo)
	defer drain()

	s := newTestNotificationService(repo, p)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.AssignmentCreated(context.Background(), 1, "HW1", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	items, unread := s.List(context.Background(), 1)
	assert.Empty(t, items)
	assert.Zero(t, unread)
}

func TestRemindersDisabled_NothingEmits(t *testing.T) {
	repo := newMemStateRepo()
	p, drain := testPersister(repo)
	defer drain()

	s := newTestNotificationService(repo, p)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.UpdateSettings(context.Background(), 1, false)

	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.AssignmentCreated(context.Background(), 1, "HW1", due)
	s.AssignmentCompleted(context.Background(), 1, "HW1", due)

	items, _ := s.List(context.Background(), 1)
	assert.Empty(t, items)

	// Re-enabling makes the next qualifying event emit exactly once.
	s.UpdateSettings(context.Background(), 1, true)
	s.AssignmentCreated(context.Background(), 1, "HW2", due)

	items, _ = s.List(context.Background(), 1)
	assert.Len(t, items, 1)
}

func TestSettingsPersistedAcrossRestart(t *testing.T) {
	repo := newMemStateRepo()

	p, drain := testPersister(repo)
	s := newTestNotificationService(repo, p)
	s.UpdateSettings(context.Background(), 7, false)
	drain()

	// A fresh service (new process) loads the persisted toggle.
	p2, drain2 := testPersister(repo)
	defer drain2()
	s2 := newTestNotificationService(repo, p2)
	assert.False(t, s2.Settings(context.Background(), 7).Reminders)
}

func TestLogPersistedAcrossRestart(t *testing.T) {
	repo := newMemStateRepo()

	p, drain := testPersister(repo)
	s := newTestNotificationService(repo, p)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.AssignmentCreated(context.Background(), 7, "HW1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	drain()

	p2, drain2 := testPersister(repo)
	defer drain2()
	s2 := newTestNotificationService(repo, p2)

	items, unread := s2.List(context.Background(), 7)
	require.Len(t, items, 1)
	assert.Equal(t, `Assignment "HW1" is due today`, items[0].Message)
	assert.Equal(t, 1, unread)
}

func TestCorruptPersistedState_FallsOpen(t *testing.T) {
	repo := newMemStateRepo()
	require.NoError(t, repo.Set(context.Background(), config.StoreKey.NotificationsKey(3), "{not json"))
	require.NoError(t, repo.Set(context.Background(), config.StoreKey.NotificationSettingsKey(3), "also bad"))

	p, drain := testPersister(repo)
	defer drain()
	s := newTestNotificationService(repo, p)

	items, unread := s.List(context.Background(), 3)
	assert.Empty(t, items)
	assert.Zero(t, unread)
	assert.True(t, s.Settings(context.Background(), 3).Reminders)
}

func TestMarkAllReadAndRemove(t *testing.T) {
	repo := newMemStateRepo()
	p, drain := testPersister(repo)
	defer drain()

	s := newTestNotificationService(repo, p)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.AssignmentCreated(context.Background(), 1, "HW1", due)
	s.AssignmentCreated(context.Background(), 1, "HW2", due)

	s.MarkAllRead(context.Background(), 1)
	items, unread := s.List(context.Background(), 1)
	require.Len(t, items, 2)
	assert.Zero(t, unread)

	s.Remove(context.Background(), 1, items[0].ID)
	items, _ = s.List(context.Background(), 1)
	assert.Len(t, items, 1)

	s.ClearAll(context.Background(), 1)
	items, _ = s.List(context.Background(), 1)
	assert.Empty(t, items)
}

func TestUsersAreIsolated(t *testing.T) {
	repo := newMemStateRepo()
	p, drain := testPersister(repo)
	defer drain()

	s := newTestNotificationService(repo, p)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.AssignmentCreated(context.Background(), 1, "HW1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))

	items, _ := s.List(context.Background(), 2)
	assert.Empty(t, items)
}

func TestConcurrentToggleAndEmit(t *testing.T) {
	repo := newMemStateRepo()
	p, drain := testPersister(repo)
	defer drain()

	s := newTestNotificationService(repo, p)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	// Settings writes and reminder checks for the same user from parallel
	// requests must not race (verified under -race).
	due := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.UpdateSettings(context.Background(), 1, i%2 == 0)
		}(i)
		go func() {
			defer wg.Done()
			s.AssignmentCreated(context.Background(), 1, "HW1", due)
		}()
	}
	wg.Wait()

	// Leave the toggle on; a qualifying event must still emit.
	s.UpdateSettings(context.Background(), 1, true)
	before, _ := s.List(context.Background(), 1)
	s.AssignmentCreated(context.Background(), 1, "HW2", due)
	after, _ := s.List(context.Background(), 1)
	assert.Equal(t, len(before)+1, len(after))
}

func TestConcurrentFirstTouchKeepsOneState(t *testing.T) {
	repo := newMemStateRepo()
	saved, err := json.Marshal([]model.Notification{{ID: "n1", Message: "m", Timestamp: 1}})
	require.NoError(t, err)
	require.NoError(t, repo.Set(context.Background(), config.StoreKey.NotificationsKey(9), string(saved)))

	p, drain := testPersister(repo)
	defer drain()
	s := newTestNotificationService(repo, p)

	// Many goroutines hit a cold cache at once; all must observe the same
	// restored state.
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, _ := s.List(context.Background(), 9)
			assert.Len(t, items, 1)
		}()
	}
	wg.Wait()

	s.MarkAllRead(context.Background(), 9)
	_, unread := s.List(context.Background(), 9)
	assert.Zero(t, unread)
}

func TestPersistedLogShape(t *testing.T) {
	repo := newMemStateRepo()
	p, drain := testPersister(repo)

	s := newTestNotificationService(repo, p)
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.AssignmentCreated(context.Background(), 1, "HW1", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	drain()

	raw, ok, err := repo.Get(context.Background(), config.StoreKey.NotificationsKey(1))
	require.NoError(t, err)
	require.True(t, ok)

	var items []model.Notification
	require.NoError(t, json.Unmarshal([]byte(raw), &items))
	require.Len(t, items, 1)
	assert.Equal(t, now.UnixMilli(), items[0].Timestamp)
	assert.False(t, items[0].Read)
}
