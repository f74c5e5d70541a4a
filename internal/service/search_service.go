package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"careercoach_backend/internal/config"
	"careercoach_backend/internal/model"
	"careercoach_backend/internal/util"
	"careercoach_backend/pkg/logger"

	"go.uber.org/zap"
)

const defaultSearchBaseURL = "https://www.googleapis.com/customsearch/v1"

// trustedCourseDomains restricts the primary search tier to established
// course-hosting sites.
var trustedCourseDomains = []string{
	"coursera.org",
	"udemy.com",
	"edx.org",
	"udacity.com",
	"pluralsight.com",
	"codecademy.com",
}

// SearchService wraps a Google Custom Search engine with an ordered list
// of query strategies: restrict to trusted course domains first, broaden
// once on zero results. Only one strategy's results are ever returned and
// they keep the upstream's native ranking order.
type SearchService struct {
	config config.SearchConfig
	client *http.Client
}

func NewSearchService(cfg config.SearchConfig) *SearchService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultSearchBaseURL
	}
	return &SearchService{
		config: cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *SearchService) Configured() bool {
	return s.config.APIKey != "" && s.config.EngineID != ""
}

type searchStrategy struct {
	name  string
	query func(q string) string
}

var courseSearchStrategies = []searchStrategy{
	{
		name: "domain-restricted",
		query: func(q string) string {
			clauses := make([]string, len(trustedCourseDomains))
			for i, d := range trustedCourseDomains {
				clauses[i] = "site:" + d
			}
			return q + " " + strings.Join(clauses, " OR ")
		},
	},
	{
		name: "broadened",
		query: func(q string) string {
			return q + " online course tutorial learning"
		},
	},
}

type customSearchResponse struct {
	Items []model.SearchResult `json:"items"`
}

// Search runs the strategy list in order and returns the first non-empty
// result set, truncated to n. A transport or upstream failure propagates
// to the caller, which falls back to the static course table; an empty
// result set after all strategies is not an error.
func (s *SearchService) Search(ctx context.Context, query string, n int) ([]model.SearchResult, error) {
	if !s.Configured() {
		return nil, &util.ConfigurationError{Feature: "course search", Missing: "search API key or engine id"}
	}

	for _, strat := range courseSearchStrategies {
		results, err := s.doSearch(ctx, strat.query(query), n)
		if err != nil {
			return nil, err
		}
		if len(results) > 0 {
			return results, nil
		}
		logger.Log.Info("search strategy returned no results, trying next",
			zap.String("strategy", strat.name), zap.String("query", query))
	}

	return nil, nil
}

func (s *SearchService) doSearch(ctx context.Context, query string, n int) ([]model.SearchResult, error) {
	u, err := url.Parse(s.config.BaseURL)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	q.Set("key", s.config.APIKey)
	q.Set("cx", s.config.EngineID)
	q.Set("q", query)
	q.Set("num", fmt.Sprintf("%d", n))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &util.UpstreamError{Service: "search", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &util.UpstreamError{Service: "search", Status: resp.StatusCode, Message: resp.Status}
	}

	var data customSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &util.DecodeError{Service: "search", Err: err}
	}

	if len(data.Items) > n {
		return data.Items[:n], nil
	}
	return data.Items, nil
}

// manualCourses is the hand-authored fallback table, matched against the
// career goal by keyword.
var manualCourses = []model.Course{
	{
		Title:           "Introduction to Programming",
		Platform:        "Coursera",
		Rating:          4.8,
		Price:           "Free",
		URL:             "https://www.coursera.org/learn/intro-programming",
		Description:     "Learn the fundamentals of programming with hands-on exercises",
		Workload:        "4-6 hours/week",
		EnrollmentCount: 250000,
		StartDate:       "Flexible",
	},
	{
		Title:           "Web Development Fundamentals",
		Platform:        "Coursera",
		Rating:          4.6,
		Price:           "Free",
		URL:             "https://www.coursera.org/learn/web-development",
		Description:     "Build responsive websites with HTML, CSS and JavaScript",
		Workload:        "5-7 hours/week",
		EnrollmentCount: 180000,
		StartDate:       "Flexible",
	},
	{
		Title:           "Data Science Essentials",
		Platform:        "Coursera",
		Rating:          4.7,
		Price:           "Free",
		URL:             "https://www.coursera.org/learn/data-science",
		Description:     "Statistics, Python and machine learning for aspiring data scientists",
		Workload:        "6-8 hours/week",
		EnrollmentCount: 320000,
		StartDate:       "Flexible",
	},
	{
		Title:           "UX Design Principles",
		Platform:        "Coursera",
		Rating:          4.5,
		Price:           "Free",
		URL:             "https://www.coursera.org/learn/ux-design",
		Description:     "User research, wireframing and usability testing from the ground up",
		Workload:        "3-5 hours/week",
		EnrollmentCount: 95000,
		StartDate:       "Flexible",
	},
	{
		Title:           "Software Engineering Practices",
		Platform:        "edX",
		Rating:          4.6,
		Price:           "Free",
		URL:             "https://www.edx.org/learn/software-engineering",
		Description:     "Version control, testing and design patterns for professional engineers",
		Workload:        "5-7 hours/week",
		EnrollmentCount: 140000,
		StartDate:       "Flexible",
	},
}

// FallbackCourses returns the static entries whose titles share a keyword
// with the career goal, or the default pair when nothing matches. The
// pipeline uses this whenever search or synthesis cannot produce courses,
// so a user always gets something.
func FallbackCourses(goal string) []model.Course {
	keywords := strings.Fields(strings.ToLower(goal))

	var matched []model.Course
	for _, course := range manualCourses {
		title := strings.ToLower(course.Title)
		for _, kw := range keywords {
			if strings.Contains(title, kw) {
				matched = append(matched, course)
				break
			}
		}
	}

	if len(matched) > 0 {
		return matched
	}
	return []model.Course{manualCourses[0], manualCourses[1]}
}
