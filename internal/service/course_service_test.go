package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"

	"careercoach_backend/internal/config"
	"careercoach_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseServiceSign(t *testing.T) {
	svc := NewCourseService(&config.CourseraConfig{APIKey: "my-key", APISecret: "my-secret"}, nil)

	mac := hmac.New(sha256.New, []byte("my-secret"))
	mac.Write([]byte("my-key" + "1700000000"))
	want := hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, svc.Sign("1700000000"))
}

func TestCourseSearchSignsAndTruncatesQuery(t *testing.T) {
	var gotQuery, gotAuth, gotTimestamp, gotSignature string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotAuth = r.Header.Get("Authorization")
		gotTimestamp = r.Header.Get("X-Coursera-Timestamp")
		gotSignature = r.Header.Get("X-Coursera-Signature")
		w.Write([]byte(`{"elements":[{"id":"c1","name":"Machine Learning"}]}`))
	}))
	defer srv.Close()

	svc := NewCourseService(&config.CourseraConfig{
		BaseURL:   srv.URL,
		APIKey:    "api-key",
		APISecret: "api-secret",
	}, nil)

	resp, err := svc.Search(context.Background(), "one two three four five six seven")
	require.NoError(t, err)
	require.Len(t, resp.Elements, 1)

	assert.Equal(t, "one two three four five", gotQuery, "query is cut to its first five words")
	assert.Equal(t, "Bearer api-key", gotAuth)
	require.NotEmpty(t, gotTimestamp)
	assert.Equal(t, svc.Sign(gotTimestamp), gotSignature, "signature covers key and timestamp")
}

func TestCourseSearchNormalizesEmptyElements(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	svc := NewCourseService(&config.CourseraConfig{BaseURL: srv.URL, APIKey: "k", APISecret: "s"}, nil)

	resp, err := svc.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.NotNil(t, resp.Elements)
	assert.Empty(t, resp.Elements)
}

func TestCourseSearchUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`upstream down`))
	}))
	defer srv.Close()

	svc := NewCourseService(&config.CourseraConfig{BaseURL: srv.URL, APIKey: "k", APISecret: "s"}, nil)

	_, err := svc.Search(context.Background(), "anything")
	var upErr *util.UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusServiceUnavailable, upErr.Status)
}

func TestCourseSearchUnconfigured(t *testing.T) {
	svc := NewCourseService(&config.CourseraConfig{}, nil)

	_, err := svc.Search(context.Background(), "anything")
	var cfgErr *util.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"a b c d e f", 5, "a b c d e"},
		{"a b", 5, "a b"},
		{"", 5, ""},
		{"  spaced   out  words  ", 2, "spaced out"},
	}

	for _, tt := range tests {
		if got := truncateWords(tt.in, tt.n); got != tt.want {
			t.Errorf("truncateWords(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
		}
	}
}
