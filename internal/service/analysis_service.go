package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"careercoach_backend/internal/model"
	"careercoach_backend/internal/util"
	"careercoach_backend/pkg/logger"
	"careercoach_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// Collaborator contracts, satisfied by the concrete services. Kept small
// so the pipeline can be exercised against stubs.

type llmClient interface {
	Configured() bool
	CompleteJSON(ctx context.Context, prompt string, dest interface{}) error
}

type courseSearcher interface {
	Configured() bool
	Search(ctx context.Context, query string, n int) ([]model.SearchResult, error)
}

type visionClient interface {
	CompleteVisionJSON(ctx context.Context, prompt string, image []byte, mimeType string, dest interface{}) error
}

type jobSearcher interface {
	Search(ctx context.Context, keywords, location string) ([]model.Job, error)
}

type historyUpserter interface {
	Upsert(entry *model.AnalyzedJob) error
}

// AnalysisService runs the goal-analysis pipeline: skill gap, learning
// path, course recommendations, job listings, in that order. Skills and
// learning path are load-bearing and abort the run on failure; courses and
// jobs degrade to fallbacks so the user always gets something.
type AnalysisService struct {
	ai      llmClient
	vision  visionClient
	search  courseSearcher
	jobs    jobSearcher
	history historyUpserter

	mu       sync.Mutex
	inFlight map[uint]struct{}
}

func NewAnalysisService(ai *AIService, search courseSearcher, jobs jobSearcher, history historyUpserter) *AnalysisService {
	return &AnalysisService{
		ai:       ai,
		vision:   ai,
		search:   search,
		jobs:     jobs,
		history:  history,
		inFlight: make(map[uint]struct{}),
	}
}

// AnalysisResult carries the finished history entry plus the captured
// job-search failure, if any. Job errors never abort the pipeline; the
// client renders them inline next to an empty job list.
type AnalysisResult struct {
	Entry     *model.AnalyzedJob `json:"entry"`
	JobsError string             `json:"jobsError,omitempty"`
}

// Analyze runs the full pipeline for one career goal and upserts the
// result into the user's history, keyed by title. A second call for the
// same user while one is in flight is rejected.
func (s *AnalysisService) Analyze(ctx context.Context, userID uint, goal, location string) (*AnalysisResult, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, util.ErrEmptyGoal
	}
	if !s.ai.Configured() {
		return nil, &util.ConfigurationError{Feature: "career analysis", Missing: "AI API key"}
	}

	s.mu.Lock()
	if _, busy := s.inFlight[userID]; busy {
		s.mu.Unlock()
		monitoring.AnalysisCounter.WithLabelValues("rejected").Inc()
		return nil, util.ErrAnalysisInFlight
	}
	s.inFlight[userID] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.inFlight, userID)
		s.mu.Unlock()
	}()

	// Stage 1: skill-gap analysis. Everything downstream depends on it.
	var skills model.SkillList
	if err := s.ai.CompleteJSON(ctx, SkillGapPrompt(goal), &skills); err != nil {
		monitoring.AnalysisCounter.WithLabelValues("aborted").Inc()
		return nil, err
	}
	for i := range skills {
		skills[i].Progress = util.ClampProgress(skills[i].Progress)
	}

	// Stage 2: learning path, built from the extracted skill names.
	var path model.LearningPath
	if err := s.ai.CompleteJSON(ctx, LearningPathPrompt(goal, skills), &path); err != nil {
		monitoring.AnalysisCounter.WithLabelValues("aborted").Inc()
		return nil, err
	}

	// Stage 3: course recommendations, with fallback at every step.
	courses := s.recommendCourses(ctx, goal, skills)

	// Stage 4: job listings. Captured at assembly time; failure is held,
	// not raised.
	var jobsErr string
	jobs, err := s.jobs.Search(ctx, goal, location)
	if err != nil {
		logger.Log.Warn("job search failed, continuing without jobs",
			zap.String("goal", goal), zap.Error(err))
		jobsErr = err.Error()
		jobs = []model.Job{}
	}

	entry := &model.AnalyzedJob{
		UserID:       userID,
		Title:        goal,
		Date:         time.Now(),
		Skills:       skills,
		LearningPath: path,
		Courses:      courses,
		Jobs:         jobs,
	}
	entry.ID = model.GenerateUUID()

	// Persistence failures are logged and swallowed; the user still gets
	// their analysis.
	if err := s.history.Upsert(entry); err != nil {
		logger.Log.Error("failed to persist analysis",
			zap.Uint("userID", userID), zap.String("goal", goal), zap.Error(err))
	}

	monitoring.AnalysisCounter.WithLabelValues("success").Inc()
	return &AnalysisResult{Entry: entry, JobsError: jobsErr}, nil
}

// recommendCourses tries web search plus LLM synthesis and falls back to
// the static course table on any failure: missing search credentials,
// search transport errors, zero results after the broadened retry, or an
// unusable synthesis answer.
func (s *AnalysisService) recommendCourses(ctx context.Context, goal string, skills model.SkillList) []model.Course {
	if !s.search.Configured() {
		monitoring.FallbackCounter.WithLabelValues("unconfigured").Inc()
		return FallbackCourses(goal)
	}

	query := CourseSearchQuery(goal, skills)
	results, err := s.search.Search(ctx, query, 8)
	if err != nil {
		logger.Log.Warn("course search failed, using static fallback",
			zap.String("query", query), zap.Error(err))
		monitoring.FallbackCounter.WithLabelValues("search-error").Inc()
		return FallbackCourses(goal)
	}
	if len(results) == 0 {
		monitoring.FallbackCounter.WithLabelValues("no-results").Inc()
		return FallbackCourses(goal)
	}

	var courses model.CourseList
	if err := s.ai.CompleteJSON(ctx, CourseSynthesisPrompt(goal, results), &courses); err != nil {
		logger.Log.Warn("course synthesis failed, using static fallback",
			zap.String("goal", goal), zap.Error(err))
		monitoring.FallbackCounter.WithLabelValues("synthesis-error").Inc()
		return FallbackCourses(goal)
	}
	if len(courses) == 0 {
		monitoring.FallbackCounter.WithLabelValues("synthesis-empty").Inc()
		return FallbackCourses(goal)
	}

	return courses
}

// AnalyzeResume reviews an uploaded resume image against a career goal
// using the vision model.
func (s *AnalysisService) AnalyzeResume(ctx context.Context, goal string, image []byte, mimeType string) (*ResumeFeedback, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, util.ErrEmptyGoal
	}

	var feedback ResumeFeedback
	if err := s.vision.CompleteVisionJSON(ctx, ResumeFeedbackPrompt(goal), image, mimeType, &feedback); err != nil {
		return nil, err
	}
	return &feedback, nil
}

// ResumeFeedback is the structured answer of the resume review.
type ResumeFeedback struct {
	Strengths   []string `json:"strengths"`
	Gaps        []string `json:"gaps"`
	Suggestions []string `json:"suggestions"`
	Summary     string   `json:"summary"`
}
