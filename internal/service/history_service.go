package service

import (
	"errors"
	"time"

	"careercoach_backend/internal/model"
	"careercoach_backend/internal/util"

	"gorm.io/gorm"
)

type historyStore interface {
	FindByUserID(userID uint) ([]model.AnalyzedJob, error)
	FindByUserIDAndTitle(userID uint, title string) (*model.AnalyzedJob, error)
	Upsert(entry *model.AnalyzedJob) error
	UpdateSkills(userID uint, title string, skills model.SkillList) error
	DeleteByTitle(userID uint, title string) error
	MaxUpdatedAt(userID uint) (time.Time, error)
}

// HistoryService exposes a user's analysis history and routes rapid
// progress updates through the save coalescer.
type HistoryService struct {
	store     historyStore
	coalescer *SaveCoalescer
}

func NewHistoryService(store historyStore, coalescer *SaveCoalescer) *HistoryService {
	return &HistoryService{store: store, coalescer: coalescer}
}

// HistoryDocument mirrors the persisted per-user document shape: one
// entry per career-goal title.
type HistoryDocument struct {
	JobHistory  map[string]*model.AnalyzedJob `json:"jobHistory"`
	LastUpdated time.Time                     `json:"lastUpdated"`
}

// GetHistory loads the user's history. A user who has never analyzed
// anything gets an empty document, not an error.
func (s *HistoryService) GetHistory(userID uint) (*HistoryDocument, error) {
	entries, err := s.store.FindByUserID(userID)
	if err != nil {
		return nil, err
	}

	doc := &HistoryDocument{JobHistory: make(map[string]*model.AnalyzedJob, len(entries))}
	for i := range entries {
		doc.JobHistory[entries[i].Title] = &entries[i]
	}

	if ts, err := s.store.MaxUpdatedAt(userID); err == nil {
		doc.LastUpdated = ts
	}

	return doc, nil
}

// SaveHistory merge-writes the given entries into the user's history.
// Titles not present in entries are left untouched.
func (s *HistoryService) SaveHistory(userID uint, entries []model.AnalyzedJob) error {
	for i := range entries {
		entries[i].UserID = userID
		for j := range entries[i].Skills {
			entries[i].Skills[j].Progress = util.ClampProgress(entries[i].Skills[j].Progress)
		}
		if err := s.store.Upsert(&entries[i]); err != nil {
			return err
		}
	}
	return nil
}

// UpdateSkillProgress clamps and applies one progress change, patching
// the matching history entry by title. The write is buffered through the
// coalescer; the returned entry reflects the new state immediately.
func (s *HistoryService) UpdateSkillProgress(userID uint, title, skillName string, progress int) (*model.AnalyzedJob, error) {
	entry, err := s.store.FindByUserIDAndTitle(userID, title)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrEntryNotFound
		}
		return nil, err
	}

	// Start from the unflushed snapshot when one exists, so updates
	// landing inside the same window stack instead of overwriting.
	if pending, ok := s.coalescer.Pending(userID, title); ok {
		entry.Skills = pending
	}

	found := false
	for i := range entry.Skills {
		if entry.Skills[i].Name == skillName {
			entry.Skills[i].Progress = util.ClampProgress(progress)
			found = true
			break
		}
	}
	if !found {
		return nil, util.ErrSkillNotFound
	}

	s.coalescer.Enqueue(userID, title, entry.Skills)
	return entry, nil
}

// DeleteEntry removes one analysis from the history by title.
func (s *HistoryService) DeleteEntry(userID uint, title string) error {
	s.coalescer.Discard(userID, title)

	err := s.store.DeleteByTitle(userID, title)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrEntryNotFound
	}
	return err
}

// Flush forces any buffered autosave writes out, e.g. on shutdown.
func (s *HistoryService) Flush() {
	s.coalescer.Flush()
}
