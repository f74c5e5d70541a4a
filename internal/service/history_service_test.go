package service

import (
	"testing"
	"time"

	"careercoach_backend/internal/model"
	"careercoach_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeHistoryStore is an in-memory historyStore keyed like the real
// table: one row per (user, title).
type fakeHistoryStore struct {
	entries map[saveKey]*model.AnalyzedJob
}

func newFakeHistoryStore() *fakeHistoryStore {
	return &fakeHistoryStore{entries: make(map[saveKey]*model.AnalyzedJob)}
}

func (f *fakeHistoryStore) FindByUserID(userID uint) ([]model.AnalyzedJob, error) {
	var out []model.AnalyzedJob
	for key, e := range f.entries {
		if key.userID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeHistoryStore) FindByUserIDAndTitle(userID uint, title string) (*model.AnalyzedJob, error) {
	if e, ok := f.entries[saveKey{userID: userID, title: title}]; ok {
		clone := *e
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeHistoryStore) Upsert(entry *model.AnalyzedJob) error {
	clone := *entry
	f.entries[saveKey{userID: entry.UserID, title: entry.Title}] = &clone
	return nil
}

func (f *fakeHistoryStore) UpdateSkills(userID uint, title string, skills model.SkillList) error {
	e, ok := f.entries[saveKey{userID: userID, title: title}]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	e.Skills = skills
	return nil
}

func (f *fakeHistoryStore) DeleteByTitle(userID uint, title string) error {
	key := saveKey{userID: userID, title: title}
	if _, ok := f.entries[key]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(f.entries, key)
	return nil
}

func (f *fakeHistoryStore) MaxUpdatedAt(userID uint) (time.Time, error) {
	var max time.Time
	for key, e := range f.entries {
		if key.userID == userID && e.UpdatedAt.After(max) {
			max = e.UpdatedAt
		}
	}
	return max, nil
}

func newTestHistoryService(store *fakeHistoryStore) *HistoryService {
	return NewHistoryService(store, NewSaveCoalescer(store, time.Hour))
}

func analyzedEntry(userID uint, title string, skills model.SkillList) model.AnalyzedJob {
	return model.AnalyzedJob{
		UserID: userID,
		Title:  title,
		Date:   time.Now(),
		Skills: skills,
	}
}

func TestGetHistoryEmptyUser(t *testing.T) {
	svc := newTestHistoryService(newFakeHistoryStore())

	doc, err := svc.GetHistory(1)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Empty(t, doc.JobHistory, "a new user gets an empty document, not an error")
}

func TestSaveAndGetHistoryRoundTrip(t *testing.T) {
	store := newFakeHistoryStore()
	svc := newTestHistoryService(store)

	entries := []model.AnalyzedJob{
		analyzedEntry(1, "Data Scientist", skillsWithProgress(40)),
		analyzedEntry(1, "ML Engineer", skillsWithProgress(10)),
	}
	require.NoError(t, svc.SaveHistory(1, entries))

	doc, err := svc.GetHistory(1)
	require.NoError(t, err)
	require.Len(t, doc.JobHistory, 2)
	assert.Contains(t, doc.JobHistory, "Data Scientist")
	assert.Contains(t, doc.JobHistory, "ML Engineer")
	assert.Equal(t, 40, doc.JobHistory["Data Scientist"].Skills[0].Progress)
}

func TestSaveHistoryOverwritesSameTitle(t *testing.T) {
	store := newFakeHistoryStore()
	svc := newTestHistoryService(store)

	require.NoError(t, svc.SaveHistory(1, []model.AnalyzedJob{
		analyzedEntry(1, "Data Scientist", skillsWithProgress(10)),
	}))
	require.NoError(t, svc.SaveHistory(1, []model.AnalyzedJob{
		analyzedEntry(1, "Data Scientist", skillsWithProgress(80)),
	}))

	doc, err := svc.GetHistory(1)
	require.NoError(t, err)
	require.Len(t, doc.JobHistory, 1, "same title overwrites, never duplicates")
	assert.Equal(t, 80, doc.JobHistory["Data Scientist"].Skills[0].Progress)
}

func TestSaveHistoryClampsProgress(t *testing.T) {
	store := newFakeHistoryStore()
	svc := newTestHistoryService(store)

	require.NoError(t, svc.SaveHistory(1, []model.AnalyzedJob{
		analyzedEntry(1, "Data Scientist", model.SkillList{
			{Name: "Python", Progress: 150},
			{Name: "SQL", Progress: -5},
		}),
	}))

	doc, err := svc.GetHistory(1)
	require.NoError(t, err)
	skills := doc.JobHistory["Data Scientist"].Skills
	assert.Equal(t, 100, skills[0].Progress)
	assert.Equal(t, 0, skills[1].Progress)
}

func TestUpdateSkillProgress(t *testing.T) {
	store := newFakeHistoryStore()
	svc := newTestHistoryService(store)

	require.NoError(t, svc.SaveHistory(1, []model.AnalyzedJob{
		analyzedEntry(1, "Data Scientist", model.SkillList{
			{Name: "Python", Progress: 0},
			{Name: "SQL", Progress: 0},
		}),
	}))

	entry, err := svc.UpdateSkillProgress(1, "Data Scientist", "SQL", 60)
	require.NoError(t, err)
	assert.Equal(t, 60, entry.Skills[1].Progress)
	assert.Equal(t, 0, entry.Skills[0].Progress, "other skills are untouched")

	t.Run("clamps out-of-range values", func(t *testing.T) {
		entry, err := svc.UpdateSkillProgress(1, "Data Scientist", "Python", 150)
		require.NoError(t, err)
		assert.Equal(t, 100, entry.Skills[0].Progress)

		entry, err = svc.UpdateSkillProgress(1, "Data Scientist", "Python", -10)
		require.NoError(t, err)
		assert.Equal(t, 0, entry.Skills[0].Progress)
	})

	t.Run("unknown entry", func(t *testing.T) {
		_, err := svc.UpdateSkillProgress(1, "Astronaut", "Python", 50)
		assert.ErrorIs(t, err, util.ErrEntryNotFound)
	})

	t.Run("unknown skill", func(t *testing.T) {
		_, err := svc.UpdateSkillProgress(1, "Data Scientist", "Juggling", 50)
		assert.ErrorIs(t, err, util.ErrSkillNotFound)
	})
}

func TestUpdateSkillProgressStacksInsideWindow(t *testing.T) {
	store := newFakeHistoryStore()
	svc := newTestHistoryService(store)

	require.NoError(t, svc.SaveHistory(1, []model.AnalyzedJob{
		analyzedEntry(1, "Data Scientist", model.SkillList{
			{Name: "Python", Progress: 0},
			{Name: "SQL", Progress: 0},
		}),
	}))

	// Two updates inside one autosave window: the second must see the
	// first even though nothing has been flushed yet.
	_, err := svc.UpdateSkillProgress(1, "Data Scientist", "Python", 30)
	require.NoError(t, err)

	entry, err := svc.UpdateSkillProgress(1, "Data Scientist", "SQL", 70)
	require.NoError(t, err)
	assert.Equal(t, 30, entry.Skills[0].Progress, "earlier unflushed patch is preserved")
	assert.Equal(t, 70, entry.Skills[1].Progress)

	svc.Flush()
	stored, err := store.FindByUserIDAndTitle(1, "Data Scientist")
	require.NoError(t, err)
	assert.Equal(t, 30, stored.Skills[0].Progress)
	assert.Equal(t, 70, stored.Skills[1].Progress)
}

func TestDeleteEntry(t *testing.T) {
	store := newFakeHistoryStore()
	svc := newTestHistoryService(store)

	require.NoError(t, svc.SaveHistory(1, []model.AnalyzedJob{
		analyzedEntry(1, "Data Scientist", skillsWithProgress(10)),
	}))

	require.NoError(t, svc.DeleteEntry(1, "Data Scientist"))

	doc, err := svc.GetHistory(1)
	require.NoError(t, err)
	assert.Empty(t, doc.JobHistory)

	assert.ErrorIs(t, svc.DeleteEntry(1, "Data Scientist"), util.ErrEntryNotFound)
}

func TestDeleteEntryDiscardsPendingAutosave(t *testing.T) {
	store := newFakeHistoryStore()
	coalescer := NewSaveCoalescer(store, time.Hour)
	svc := NewHistoryService(store, coalescer)

	require.NoError(t, svc.SaveHistory(1, []model.AnalyzedJob{
		analyzedEntry(1, "Data Scientist", skillsWithProgress(10)),
	}))

	_, err := svc.UpdateSkillProgress(1, "Data Scientist", "Go", 90)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteEntry(1, "Data Scientist"))

	// The buffered autosave must not resurrect or error on the deleted row.
	coalescer.Flush()
	_, err = store.FindByUserIDAndTitle(1, "Data Scientist")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestHistoryIsolatedBetweenUsers(t *testing.T) {
	store := newFakeHistoryStore()
	svc := newTestHistoryService(store)

	require.NoError(t, svc.SaveHistory(1, []model.AnalyzedJob{
		analyzedEntry(1, "Data Scientist", skillsWithProgress(10)),
	}))
	require.NoError(t, svc.SaveHistory(2, []model.AnalyzedJob{
		analyzedEntry(2, "ML Engineer", skillsWithProgress(20)),
	}))

	doc1, err := svc.GetHistory(1)
	require.NoError(t, err)
	doc2, err := svc.GetHistory(2)
	require.NoError(t, err)

	assert.Contains(t, doc1.JobHistory, "Data Scientist")
	assert.NotContains(t, doc1.JobHistory, "ML Engineer")
	assert.Contains(t, doc2.JobHistory, "ML Engineer")
}
