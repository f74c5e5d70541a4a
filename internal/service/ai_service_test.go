package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"careercoach_backend/internal/config"
	"careercoach_backend/internal/model"
	"careercoach_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "json fence",
			in:   "```json\n[{\"name\": \"Go\"}]\n```",
			want: "[{\"name\": \"Go\"}]",
		},
		{
			name: "bare fence",
			in:   "```\n{\"a\": 1}\n```",
			want: "{\"a\": 1}",
		},
		{
			name: "no fence",
			in:   "[1, 2, 3]",
			want: "[1, 2, 3]",
		},
		{
			name: "surrounding whitespace",
			in:   "  \n```json\n{}\n```  ",
			want: "{}",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StripCodeFences(tt.in)
			if got != tt.want {
				t.Errorf("StripCodeFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func chatReply(content string) string {
	quoted, _ := json.Marshal(content)
	return `{"choices":[{"message":{"role":"assistant","content":` + string(quoted) + `}}]}`
}

func TestCompleteJSONStripsFences(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "/chat/completions", r.URL.Path)
		w.Write([]byte(chatReply("```json\n[{\"name\":\"Go\",\"importance\":\"High\",\"description\":\"systems language\"}]\n```")))
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model"})

	var skills model.SkillList
	err := svc.CompleteJSON(context.Background(), "prompt", &skills)
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Go", skills[0].Name)
	assert.Equal(t, model.ImportanceHigh, skills[0].Importance)
}

func TestCompletePrefersEndpointErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "k", Model: "m"})

	_, err := svc.Complete(context.Background(), "prompt")
	require.Error(t, err)

	var upErr *util.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusTooManyRequests, upErr.Status)
	assert.Contains(t, upErr.Message, "quota exceeded")
}

func TestCompleteUnparsableAnswer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chatReply("sorry, I cannot help with that")))
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "k", Model: "m"})

	var skills model.SkillList
	err := svc.CompleteJSON(context.Background(), "prompt", &skills)

	var decErr *util.DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Equal(t, "AI", decErr.Service)
}

func TestCompleteNotConfigured(t *testing.T) {
	svc := NewAIService(config.AIConfig{})

	_, err := svc.Complete(context.Background(), "prompt")

	var cfgErr *util.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}

func TestCompleteNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	svc := NewAIService(config.AIConfig{BaseURL: srv.URL, APIKey: "k", Model: "m"})

	_, err := svc.Complete(context.Background(), "prompt")

	var upErr *util.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Contains(t, upErr.Message, "no choices")
}

func TestCompleteVisionJSONRequiresModel(t *testing.T) {
	svc := NewAIService(config.AIConfig{BaseURL: "http://example.invalid", APIKey: "k", Model: "m"})

	var feedback ResumeFeedback
	err := svc.CompleteVisionJSON(context.Background(), "prompt", []byte{1, 2}, "image/png", &feedback)

	var cfgErr *util.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "resume analysis", cfgErr.Feature)
}
