package sources

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRun = models.RunConfig{
	Query:               "smart fan",
	Brands:              []string{"atomberg"},
	Weights:             models.DefaultWeights,
	PerPlatform:         5,
	MaxCommentsPerVideo: 2,
}

type fakeSearcher struct {
	results []models.WebResult
	err     error
}

func (f fakeSearcher) Search(ctx context.Context, query string, limit int) ([]models.WebResult, error) {
	return f.results, f.err
}

type fakePlatform struct {
	videos      []models.Video
	searchErr   error
	stats       map[string]models.VideoStats
	statsErr    error
	comments    map[string][]models.Comment
	commentsErr map[string]error
}

func (f fakePlatform) SearchVideos(ctx context.Context, query string, maxResults int) ([]models.Video, error) {
	return f.videos, f.searchErr
}

func (f fakePlatform) VideoStatistics(ctx context.Context, ids []string) (map[string]models.VideoStats, error) {
	return f.stats, f.statsErr
}

func (f fakePlatform) Comments(ctx context.Context, id string, max int) ([]models.Comment, error) {
	return f.comments[id], f.commentsErr[id]
}

func TestWebSearchSource_Fetch(t *testing.T) {
	src := NewWebSearchSource(fakeSearcher{results: []models.WebResult{
		{Title: "Atomberg review", Snippet: "great fan", Link: "https://a.example"},
		{Title: "Fans", Snippet: "list"},
	}})

	outcome := src.Fetch(context.Background(), testRun)

	assert.Empty(t, outcome.Reason)
	assert.Equal(t, models.PlatformWeb, outcome.Platform)
	require.Len(t, outcome.Records, 2)
	assert.Equal(t, []string{"Atomberg review. great fan"}, outcome.Records[0].Texts)
	assert.Equal(t, "https://a.example", outcome.Records[0].ContentID)
	assert.Equal(t, "web-1", outcome.Records[1].ContentID)
	assert.Nil(t, outcome.Records[0].Metrics)
}

func TestWebSearchSource_FailureBecomesReason(t *testing.T) {
	src := NewWebSearchSource(fakeSearcher{err: errors.New("quota exceeded")})

	outcome := src.Fetch(context.Background(), testRun)

	assert.Equal(t, "quota exceeded", outcome.Reason)
	assert.Empty(t, outcome.Records)
}

func TestWebSearchSource_PartialResultsKept(t *testing.T) {
	src := NewWebSearchSource(fakeSearcher{
		results: []models.WebResult{{Title: "t", Snippet: "s"}},
		err:     errors.New("page 2 failed"),
	})

	outcome := src.Fetch(context.Background(), testRun)

	assert.Empty(t, outcome.Reason)
	assert.Len(t, outcome.Records, 1)
}

func TestYouTubeSource_Fetch(t *testing.T) {
	src := NewYouTubeSource(fakePlatform{
		videos: []models.Video{
			{VideoID: "v1", Title: "Atomberg Renesa", Description: "unboxing"},
			{VideoID: "v2", Title: "Top fans", Description: ""},
		},
		stats: map[string]models.VideoStats{
			"v1": {VideoID: "v1", Statistics: models.YouTubeStatistics{ViewCount: "100", LikeCount: "10", CommentCount: "5"}},
		},
		comments: map[string][]models.Comment{
			"v1": {{Text: "love it"}, {Text: "meh"}},
		},
		commentsErr: map[string]error{"v2": errors.New("comments disabled")},
	})

	outcome := src.Fetch(context.Background(), testRun)

	assert.Empty(t, outcome.Reason)
	require.Len(t, outcome.Records, 2)

	v1 := outcome.Records[0]
	assert.Equal(t, "v1", v1.ContentID)
	assert.Equal(t, []string{"Atomberg Renesa unboxing", "love it", "meh"}, v1.Texts)
	assert.Equal(t, &models.EngagementMetrics{ViewCount: 100, LikeCount: 10, CommentCount: 5}, v1.Metrics)

	v2 := outcome.Records[1]
	assert.Equal(t, []string{"Top fans "}, v2.Texts)
	assert.Equal(t, &models.EngagementMetrics{}, v2.Metrics, "missing statistics mean zero engagement")
}

func TestYouTubeSource_StatisticsFailureKeepsVideos(t *testing.T) {
	src := NewYouTubeSource(fakePlatform{
		videos:   []models.Video{{VideoID: "v1", Title: "t"}},
		statsErr: errors.New("boom"),
	})

	outcome := src.Fetch(context.Background(), testRun)

	require.Len(t, outcome.Records, 1)
	assert.Equal(t, &models.EngagementMetrics{}, outcome.Records[0].Metrics)
}

func TestYouTubeSource_SearchFailure(t *testing.T) {
	src := NewYouTubeSource(fakePlatform{searchErr: errors.New("api key not configured")})

	outcome := src.Fetch(context.Background(), testRun)

	assert.Equal(t, models.PlatformYouTube, outcome.Platform)
	assert.Equal(t, "api key not configured", outcome.Reason)
	assert.Empty(t, outcome.Records)
}

type staticSource struct {
	name  string
	delay time.Duration
	calls int
	mu    sync.Mutex
}

func (s *staticSource) Name() string { return s.name }

func (s *staticSource) Fetch(ctx context.Context, run models.RunConfig) models.SourceOutcome {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	time.Sleep(s.delay)
	return models.SourceOutcome{
		Platform: s.name,
		Records:  []models.Record{{Platform: s.name, ContentID: s.name + "-1", Texts: []string{run.Query}}},
	}
}

func TestCollect_PreservesSourceOrder(t *testing.T) {
	slow := &staticSource{name: "slow", delay: 20 * time.Millisecond}
	fast := &staticSource{name: "fast"}

	outcomes := Collect(context.Background(), testRun, slow, fast)

	require.Len(t, outcomes, 2)
	assert.Equal(t, "slow", outcomes[0].Platform)
	assert.Equal(t, "fast", outcomes[1].Platform)
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *memoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func TestCachedSource_ServesRepeatQueriesFromCache(t *testing.T) {
	inner := &staticSource{name: "web"}
	cache := newMemoryCache()
	src := NewCachedSource(inner, cache, time.Hour)

	first := src.Fetch(context.Background(), testRun)
	second := src.Fetch(context.Background(), testRun)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, time.Hour, cache.ttls[CacheKey("web", testRun)])
}

func TestCachedSource_DoesNotCacheFailures(t *testing.T) {
	cache := newMemoryCache()
	src := NewCachedSource(NewWebSearchSource(fakeSearcher{err: errors.New("down")}), cache, time.Hour)

	outcome := src.Fetch(context.Background(), testRun)

	assert.Equal(t, "down", outcome.Reason)
	assert.Empty(t, cache.data)
}

func TestCacheKey(t *testing.T) {
	other := testRun
	other.PerPlatform = 20

	assert.Equal(t, CacheKey("web", testRun), CacheKey("web", testRun))
	assert.NotEqual(t, CacheKey("web", testRun), CacheKey("youtube", testRun))
	assert.NotEqual(t, CacheKey("web", testRun), CacheKey("web", other))
}
