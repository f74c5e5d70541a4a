package service

import (
	"sync"
	"time"

	"careercoach_backend/internal/model"
	"careercoach_backend/pkg/logger"

	"go.uber.org/zap"
)

type skillsPatcher interface {
	UpdateSkills(userID uint, title string, skills model.SkillList) error
}

type saveKey struct {
	userID uint
	title  string
}

// SaveCoalescer buffers skill-progress mutations and writes them in one
// batch after a quiet window. Dragging a progress slider emits many
// intermediate updates; without coalescing each one would hit the
// database. Each new mutation inside the window cancels and reschedules
// the flush; the final write reflects the last state seen when the window
// closes.
type SaveCoalescer struct {
	store  skillsPatcher
	window time.Duration

	mu      sync.Mutex
	pending map[saveKey]model.SkillList
	timer   *time.Timer
	closed  bool
}

func NewSaveCoalescer(store skillsPatcher, window time.Duration) *SaveCoalescer {
	if window <= 0 {
		window = time.Second
	}
	return &SaveCoalescer{
		store:   store,
		window:  window,
		pending: make(map[saveKey]model.SkillList),
	}
}

// Enqueue records the latest skills snapshot for one history entry and
// restarts the flush window. Later snapshots for the same entry replace
// earlier unflushed ones.
func (c *SaveCoalescer) Enqueue(userID uint, title string, skills model.SkillList) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	c.pending[saveKey{userID: userID, title: title}] = skills

	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.window, c.flushPending)
}

// Pending returns the unflushed skills snapshot for an entry, if any.
// Read-modify-write callers start from here so a patch inside the window
// does not lose earlier unflushed patches.
func (c *SaveCoalescer) Pending(userID uint, title string) (model.SkillList, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	skills, ok := c.pending[saveKey{userID: userID, title: title}]
	return skills, ok
}

// Discard drops any unflushed snapshot for an entry. Called on delete so
// a buffered autosave cannot race the removal.
func (c *SaveCoalescer) Discard(userID uint, title string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, saveKey{userID: userID, title: title})
}

// Flush writes everything buffered right now, without waiting for the
// window to close.
func (c *SaveCoalescer) Flush() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	c.flushPending()
}

// Close flushes outstanding writes and rejects further mutations.
func (c *SaveCoalescer) Close() {
	c.mu.Lock()
	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.mu.Unlock()

	c.flushPending()
}

func (c *SaveCoalescer) flushPending() {
	c.mu.Lock()
	batch := c.pending
	c.pending = make(map[saveKey]model.SkillList)
	c.mu.Unlock()

	for key, skills := range batch {
		// Autosave failures never block the interactive flow.
		if err := c.store.UpdateSkills(key.userID, key.title, skills); err != nil {
			logger.Log.Error("autosave flush failed",
				zap.Uint("userID", key.userID), zap.String("title", key.title), zap.Error(err))
		}
	}
}
