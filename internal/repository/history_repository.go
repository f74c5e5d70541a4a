package repository

import (
	"time"

	"careercoach_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// HistoryRepository is the persistence gateway for per-user analysis
// history. One row per (user, career goal title); writes merge into the
// existing row rather than clobbering unrelated entries.
type HistoryRepository struct {
	DB *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) *HistoryRepository {
	return &HistoryRepository{DB: db}
}

// FindByUserID returns the user's full history, newest first. A user with
// no saved analyses gets an empty history, never an error.
func (r *HistoryRepository) FindByUserID(userID uint) ([]model.AnalyzedJob, error) {
	var entries []model.AnalyzedJob
	err := r.DB.Where("user_id = ?", userID).Order("date DESC").Find(&entries).Error
	return entries, err
}

func (r *HistoryRepository) FindByUserIDAndTitle(userID uint, title string) (*model.AnalyzedJob, error) {
	var entry model.AnalyzedJob
	err := r.DB.Where("user_id = ? AND title = ?", userID, title).First(&entry).Error
	return &entry, err
}

// Upsert inserts the entry or, when the (user, title) pair already exists,
// overwrites that row in place. Last write wins.
func (r *HistoryRepository) Upsert(entry *model.AnalyzedJob) error {
	if entry.ID == "" {
		entry.ID = model.GenerateUUID()
	}
	return r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "title"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"date", "skills", "learning_path", "courses", "jobs", "updated_at",
		}),
	}).Create(entry).Error
}

// UpdateSkills patches only the skills column of the matching entry.
func (r *HistoryRepository) UpdateSkills(userID uint, title string, skills model.SkillList) error {
	res := r.DB.Model(&model.AnalyzedJob{}).
		Where("user_id = ? AND title = ?", userID, title).
		Updates(map[string]interface{}{
			"skills":     skills,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *HistoryRepository) DeleteByTitle(userID uint, title string) error {
	res := r.DB.Where("user_id = ? AND title = ?", userID, title).Delete(&model.AnalyzedJob{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MaxUpdatedAt reports the most recent write across the user's history.
func (r *HistoryRepository) MaxUpdatedAt(userID uint) (time.Time, error) {
	var ts *time.Time
	err := r.DB.Model(&model.AnalyzedJob{}).
		Where("user_id = ?", userID).
		Select("MAX(updated_at)").Scan(&ts).Error
	if err != nil || ts == nil {
		return time.Time{}, err
	}
	return *ts, nil
}
