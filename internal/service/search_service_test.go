package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"careercoach_backend/internal/config"
	"careercoach_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchBroadensOnZeroResults(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		queries = append(queries, q)
		if strings.Contains(q, "site:") {
			w.Write([]byte(`{"items":[]}`))
			return
		}
		w.Write([]byte(`{"items":[
			{"title":"Course A","link":"https://example.org/a","snippet":"a"},
			{"title":"Course B","link":"https://example.org/b","snippet":"b"},
			{"title":"Course C","link":"https://example.org/c","snippet":"c"},
			{"title":"Course D","link":"https://example.org/d","snippet":"d"}
		]}`))
	}))
	defer srv.Close()

	svc := NewSearchService(config.SearchConfig{BaseURL: srv.URL, APIKey: "k", EngineID: "cx"})

	results, err := svc.Search(context.Background(), "go developer course", 3)
	require.NoError(t, err)
	assert.Len(t, results, 3, "results should be truncated to the requested count")

	require.Len(t, queries, 2)
	assert.Contains(t, queries[0], "site:coursera.org")
	assert.Contains(t, queries[1], "online course tutorial learning")
}

func TestSearchFirstStrategyWins(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"items":[{"title":"Course A","link":"https://example.org/a","snippet":"a"}]}`))
	}))
	defer srv.Close()

	svc := NewSearchService(config.SearchConfig{BaseURL: srv.URL, APIKey: "k", EngineID: "cx"})

	results, err := svc.Search(context.Background(), "data science", 5)
	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 1, requests, "later strategies must not run once one yields results")
}

func TestSearchErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	svc := NewSearchService(config.SearchConfig{BaseURL: srv.URL, APIKey: "k", EngineID: "cx"})

	_, err := svc.Search(context.Background(), "anything", 3)
	var upErr *util.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusForbidden, upErr.Status)
}

func TestSearchUnconfigured(t *testing.T) {
	svc := NewSearchService(config.SearchConfig{})

	_, err := svc.Search(context.Background(), "anything", 3)
	var cfgErr *util.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestSearchExhaustedStrategiesIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	svc := NewSearchService(config.SearchConfig{BaseURL: srv.URL, APIKey: "k", EngineID: "cx"})

	results, err := svc.Search(context.Background(), "obscure topic", 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestFallbackCourses(t *testing.T) {
	tests := []struct {
		name       string
		goal       string
		wantTitles []string
	}{
		{
			name:       "keyword match",
			goal:       "Web Developer",
			wantTitles: []string{"Web Development Fundamentals"},
		},
		{
			name:       "multiple matches",
			goal:       "data engineering",
			wantTitles: []string{"Data Science Essentials", "Software Engineering Practices"},
		},
		{
			name:       "no match falls back to defaults",
			goal:       "astronaut",
			wantTitles: []string{"Introduction to Programming", "Web Development Fundamentals"},
		},
		{
			name:       "empty goal falls back to defaults",
			goal:       "",
			wantTitles: []string{"Introduction to Programming", "Web Development Fundamentals"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			courses := FallbackCourses(tt.goal)
			require.Len(t, courses, len(tt.wantTitles))
			for i, want := range tt.wantTitles {
				assert.Equal(t, want, courses[i].Title)
			}
		})
	}
}
