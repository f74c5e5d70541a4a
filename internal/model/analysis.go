package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Importance string

const (
	ImportanceHigh   Importance = "High"
	ImportanceMedium Importance = "Medium"
	ImportanceLow    Importance = "Low"
)

// Skill is one required capability for a career goal. Progress is mutated
// only by explicit user updates and is clamped to [0,100] on every write.
type Skill struct {
	Name        string     `json:"name"`
	Importance  Importance `json:"importance"`
	Description string     `json:"description"`
	Progress    int        `json:"progress"`
}

// LearningStep is immutable after creation; a new analysis regenerates the
// whole path.
type LearningStep struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
}

type Course struct {
	Title           string  `json:"title"`
	Platform        string  `json:"platform"`
	Rating          float64 `json:"rating"`
	Price           string  `json:"price"`
	URL             string  `json:"url"`
	Description     string  `json:"description"`
	Workload        string  `json:"workload"`
	EnrollmentCount int     `json:"enrollmentCount"`
	StartDate       string  `json:"startDate"`
}

type Job struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location"`
	Description  string   `json:"description"`
	Salary       string   `json:"salary"`
	URL          string   `json:"url"`
	Requirements []string `json:"requirements"`
}

type SkillList []Skill
type LearningPath []LearningStep
type CourseList []Course
type JobList []Job

// AnalyzedJob is one history entry: the full result of analyzing a career
// goal. Title is unique per user; re-analyzing the same goal overwrites the
// row in place.
//
// swagger:model AnalyzedJob
type AnalyzedJob struct {
	UUIDBase
	UserID       uint         `gorm:"uniqueIndex:idx_user_title;type:bigint unsigned" json:"-"`
	Title        string       `gorm:"uniqueIndex:idx_user_title;size:255;not null" json:"title"`
	Date         time.Time    `gorm:"type:datetime" json:"date"`
	Skills       SkillList    `gorm:"type:json" json:"skills"`
	LearningPath LearningPath `gorm:"type:json" json:"learningPath"`
	Courses      CourseList   `gorm:"type:json" json:"courses"`
	Jobs         JobList      `gorm:"type:json" json:"jobs"`
}

func (AnalyzedJob) TableName() string {
	return "analyzed_jobs"
}

func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(dest interface{}, value interface{}) error {
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported type for JSON column")
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dest)
}

func (s SkillList) Value() (driver.Value, error)  { return jsonValue(s) }
func (s *SkillList) Scan(value interface{}) error { return jsonScan(s, value) }

func (p LearningPath) Value() (driver.Value, error)  { return jsonValue(p) }
func (p *LearningPath) Scan(value interface{}) error { return jsonScan(p, value) }

func (c CourseList) Value() (driver.Value, error)  { return jsonValue(c) }
func (c *CourseList) Scan(value interface{}) error { return jsonScan(c, value) }

func (j JobList) Value() (driver.Value, error)  { return jsonValue(j) }
func (j *JobList) Scan(value interface{}) error { return jsonScan(j, value) }

// SkillNames returns the skill names in order, for prompt construction.
func (s SkillList) SkillNames() []string {
	names := make([]string, 0, len(s))
	for _, sk := range s {
		names = append(names, sk.Name)
	}
	return names
}

// HighImportanceNames returns names of High-importance skills, used to
// narrow the course search query.
func (s SkillList) HighImportanceNames() []string {
	var names []string
	for _, sk := range s {
		if sk.Importance == ImportanceHigh {
			names = append(names, sk.Name)
		}
	}
	return names
}
