package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"careercoach_backend/internal/config"
	"careercoach_backend/internal/model"
	"careercoach_backend/internal/util"
)

const maxJobResults = 3

// JobSearchService queries a Jooble-style job API: one POST to
// <base>/<apiKey> per search. Failures surface as JobSearchError so the
// analysis pipeline can record them without aborting.
type JobSearchService struct {
	config config.JobSearchConfig
	client *http.Client
}

func NewJobSearchService(cfg config.JobSearchConfig) *JobSearchService {
	return &JobSearchService{
		config: cfg,
		client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *JobSearchService) Configured() bool {
	return s.config.APIKey != "" && s.config.BaseURL != ""
}

type jobSearchRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location,omitempty"`
}

type jobSearchResponse struct {
	Jobs []struct {
		Title        string   `json:"title"`
		Company      string   `json:"company"`
		Location     string   `json:"location"`
		Snippet      string   `json:"snippet"`
		Salary       string   `json:"salary"`
		Link         string   `json:"link"`
		Requirements []string `json:"requirements"`
	} `json:"jobs"`
}

// Search returns up to 3 normalized job records for the keywords. Location
// "All" (or empty) omits the location filter entirely.
func (s *JobSearchService) Search(ctx context.Context, keywords, location string) ([]model.Job, error) {
	if !s.Configured() {
		return nil, &util.JobSearchError{Err: &util.ConfigurationError{Feature: "job search", Missing: "job search API key"}}
	}

	reqBody := jobSearchRequest{Keywords: keywords}
	if location != "" && location != "All" {
		reqBody.Location = location
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &util.JobSearchError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.BaseURL+"/"+s.config.APIKey, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, &util.JobSearchError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &util.JobSearchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &util.JobSearchError{Err: &util.UpstreamError{Service: "job search", Status: resp.StatusCode, Message: resp.Status}}
	}

	var data jobSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &util.JobSearchError{Err: &util.DecodeError{Service: "job search", Err: err}}
	}

	jobs := make([]model.Job, 0, maxJobResults)
	for i, j := range data.Jobs {
		if i >= maxJobResults {
			break
		}
		requirements := j.Requirements
		if requirements == nil {
			requirements = []string{}
		}
		jobs = append(jobs, model.Job{
			Title:        j.Title,
			Company:      j.Company,
			Location:     j.Location,
			Description:  j.Snippet,
			Salary:       j.Salary,
			URL:          j.Link,
			Requirements: requirements,
		})
	}

	return jobs, nil
}
