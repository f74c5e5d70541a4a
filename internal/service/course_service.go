package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"careercoach_backend/internal/config"
	"careercoach_backend/internal/util"
	"careercoach_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	defaultCourseraBaseURL = "https://api.coursera.org/api/courses.v1"

	// Coursera rejects long free-text queries, keep the first few words.
	courseQueryMaxWords = 5
	courseResultLimit   = 10

	courseCacheTTL = 10 * time.Minute
)

var courseraFields = strings.Join([]string{
	"id", "name", "description", "shortName", "photoUrl", "partnerIds",
	"primaryLanguages", "workload", "rating", "enrollmentCount",
	"startDate", "previewLink",
}, ",")

// CourseSearchResponse is the raw catalog payload relayed to clients.
type CourseSearchResponse struct {
	Elements []json.RawMessage `json:"elements"`
	Paging   json.RawMessage   `json:"paging,omitempty"`
	Linked   json.RawMessage   `json:"linked,omitempty"`
}

// CourseService proxies catalog searches to the Coursera API, signing
// each request and caching responses in Redis.
type CourseService struct {
	config *config.CourseraConfig
	client *http.Client
	cache  *redis.Client
}

func NewCourseService(cfg *config.CourseraConfig, cache *redis.Client) *CourseService {
	return &CourseService{
		config: cfg,
		client: &http.Client{Timeout: 15 * time.Second},
		cache:  cache,
	}
}

func (s *CourseService) Configured() bool {
	return s.config.APIKey != "" && s.config.APISecret != ""
}

// Sign computes the request signature: hex HMAC-SHA256 of apiKey+timestamp
// keyed with the shared secret.
func (s *CourseService) Sign(timestamp string) string {
	mac := hmac.New(sha256.New, []byte(s.config.APISecret))
	mac.Write([]byte(s.config.APIKey + timestamp))
	return hex.EncodeToString(mac.Sum(nil))
}

// Search relays one catalog query upstream. The query is truncated to its
// leading words before being sent; responses are served from cache when a
// recent identical query exists.
func (s *CourseService) Search(ctx context.Context, query string) (*CourseSearchResponse, error) {
	if !s.Configured() {
		return nil, &util.ConfigurationError{Feature: "course catalog", Missing: "coursera credentials"}
	}

	query = truncateWords(query, courseQueryMaxWords)

	cacheKey := "courses:" + query
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var resp CourseSearchResponse
			if json.Unmarshal(cached, &resp) == nil {
				return &resp, nil
			}
		}
	}

	base := s.config.BaseURL
	if base == "" {
		base = defaultCourseraBaseURL
	}

	params := url.Values{}
	params.Set("q", "search")
	params.Set("query", query)
	params.Set("fields", courseraFields)
	params.Set("limit", strconv.Itoa(courseResultLimit))
	params.Set("includes", "partnerIds")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	req.Header.Set("X-Coursera-Timestamp", timestamp)
	req.Header.Set("X-Coursera-Signature", s.Sign(timestamp))

	httpResp, err := s.client.Do(req)
	if err != nil {
		return nil, &util.UpstreamError{Service: "coursera", Message: err.Error()}
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &util.UpstreamError{Service: "coursera", Status: httpResp.StatusCode, Message: err.Error()}
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &util.UpstreamError{
			Service: "coursera",
			Status:  httpResp.StatusCode,
			Message: fmt.Sprintf("catalog request failed: %s", util.Truncate(string(body), 200)),
		}
	}

	var resp CourseSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &util.DecodeError{Service: "coursera", Err: err, Raw: string(body)}
	}
	if resp.Elements == nil {
		resp.Elements = []json.RawMessage{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, body, courseCacheTTL).Err(); err != nil {
			logger.Log.Warn("course cache write failed", zap.Error(err))
		}
	}

	return &resp, nil
}

func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
