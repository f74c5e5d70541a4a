package service

import (
	"sync"
	"testing"
	"time"

	"careercoach_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patchCall struct {
	userID uint
	title  string
	skills model.SkillList
}

type fakePatcher struct {
	mu    sync.Mutex
	calls []patchCall
}

func (f *fakePatcher) UpdateSkills(userID uint, title string, skills model.SkillList) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, patchCall{userID: userID, title: title, skills: skills})
	return nil
}

func (f *fakePatcher) snapshot() []patchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]patchCall, len(f.calls))
	copy(out, f.calls)
	return out
}

func skillsWithProgress(p int) model.SkillList {
	return model.SkillList{{Name: "Go", Importance: model.ImportanceHigh, Progress: p}}
}

func TestCoalescerBatchesRapidUpdates(t *testing.T) {
	store := &fakePatcher{}
	c := NewSaveCoalescer(store, 50*time.Millisecond)
	defer c.Close()

	c.Enqueue(1, "Data Scientist", skillsWithProgress(10))
	c.Enqueue(1, "Data Scientist", skillsWithProgress(20))
	c.Enqueue(1, "Data Scientist", skillsWithProgress(30))

	assert.Empty(t, store.snapshot(), "nothing flushes inside the window")

	require.Eventually(t, func() bool {
		return len(store.snapshot()) == 1
	}, time.Second, 10*time.Millisecond, "rapid updates collapse into one write")

	calls := store.snapshot()
	assert.Equal(t, 30, calls[0].skills[0].Progress, "the last snapshot wins")
}

func TestCoalescerKeepsEntriesSeparate(t *testing.T) {
	store := &fakePatcher{}
	c := NewSaveCoalescer(store, 20*time.Millisecond)
	defer c.Close()

	c.Enqueue(1, "Data Scientist", skillsWithProgress(10))
	c.Enqueue(1, "ML Engineer", skillsWithProgress(20))
	c.Enqueue(2, "Data Scientist", skillsWithProgress(30))

	require.Eventually(t, func() bool {
		return len(store.snapshot()) == 3
	}, time.Second, 10*time.Millisecond)
}

func TestCoalescerFlushWritesImmediately(t *testing.T) {
	store := &fakePatcher{}
	c := NewSaveCoalescer(store, time.Hour)
	defer c.Close()

	c.Enqueue(1, "Data Scientist", skillsWithProgress(42))
	c.Flush()

	calls := store.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, 42, calls[0].skills[0].Progress)
}

func TestCoalescerPendingAndDiscard(t *testing.T) {
	store := &fakePatcher{}
	c := NewSaveCoalescer(store, time.Hour)
	defer c.Close()

	_, ok := c.Pending(1, "Data Scientist")
	assert.False(t, ok)

	c.Enqueue(1, "Data Scientist", skillsWithProgress(55))

	pending, ok := c.Pending(1, "Data Scientist")
	require.True(t, ok)
	assert.Equal(t, 55, pending[0].Progress)

	c.Discard(1, "Data Scientist")
	_, ok = c.Pending(1, "Data Scientist")
	assert.False(t, ok)

	c.Flush()
	assert.Empty(t, store.snapshot(), "discarded snapshots never reach the store")
}

func TestCoalescerCloseFlushesAndRejects(t *testing.T) {
	store := &fakePatcher{}
	c := NewSaveCoalescer(store, time.Hour)

	c.Enqueue(1, "Data Scientist", skillsWithProgress(10))
	c.Close()

	require.Len(t, store.snapshot(), 1)

	c.Enqueue(1, "Data Scientist", skillsWithProgress(99))
	c.Flush()
	assert.Len(t, store.snapshot(), 1, "mutations after Close are dropped")
}
