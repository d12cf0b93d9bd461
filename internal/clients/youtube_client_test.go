package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testYouTubeClient(url string) *YouTubeClient {
	c := NewYouTubeClient("yt-key")
	c.BaseURL = url
	c.PageDelay = 0
	c.CommentDelay = 0
	c.api.backoff = time.Millisecond
	c.api.maxRetries = 2
	return c
}

func TestYouTubeClient_SearchVideos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "yt-key", r.URL.Query().Get("key"))
		assert.Equal(t, "video", r.URL.Query().Get("type"))

		var page models.YouTubeSearchResponse
		if r.URL.Query().Get("pageToken") == "" {
			assert.Equal(t, "3", r.URL.Query().Get("maxResults"))
			page.NextPageToken = "next"
			for i := 0; i < 2; i++ {
				var item models.YouTubeSearchItem
				item.ID.VideoID = fmt.Sprintf("v%d", i)
				item.Snippet.Title = fmt.Sprintf("video %d", i)
				page.Items = append(page.Items, item)
			}
		} else {
			assert.Equal(t, "1", r.URL.Query().Get("maxResults"))
			var item models.YouTubeSearchItem
			item.ID.VideoID = "v2"
			page.Items = append(page.Items, item)
		}
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	videos, err := testYouTubeClient(srv.URL).SearchVideos(context.Background(), "smart fan", 3)
	require.NoError(t, err)

	require.Len(t, videos, 3)
	assert.Equal(t, "v0", videos[0].VideoID)
	assert.Equal(t, "video 1", videos[1].Title)
	assert.Equal(t, "v2", videos[2].VideoID)
}

func TestYouTubeClient_VideoStatisticsChunks(t *testing.T) {
	var (
		mu     sync.Mutex
		chunks []int
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/videos", r.URL.Path)
		ids := strings.Split(r.URL.Query().Get("id"), ",")
		mu.Lock()
		chunks = append(chunks, len(ids))
		mu.Unlock()

		var page models.YouTubeVideosResponse
		for _, id := range ids {
			page.Items = append(page.Items, models.YouTubeVideoItem{
				ID:         id,
				Statistics: models.YouTubeStatistics{ViewCount: "100", LikeCount: "10", CommentCount: "5"},
			})
		}
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	ids := make([]string, 0, 75)
	for i := 0; i < 75; i++ {
		ids = append(ids, fmt.Sprintf("v%d", i))
	}

	stats, err := testYouTubeClient(srv.URL).VideoStatistics(context.Background(), ids)
	require.NoError(t, err)

	mu.Lock()
	assert.Equal(t, []int{50, 25}, chunks)
	mu.Unlock()
	assert.Len(t, stats, 75)
	assert.Equal(t, "100", stats["v74"].Statistics.ViewCount)
}

func TestYouTubeClient_VideoStatisticsSkipsFailedChunk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	stats, err := testYouTubeClient(srv.URL).VideoStatistics(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestYouTubeClient_Comments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/commentThreads", r.URL.Path)
		assert.Equal(t, "vid", r.URL.Query().Get("videoId"))
		assert.Equal(t, "plainText", r.URL.Query().Get("textFormat"))

		var page models.YouTubeCommentThreadsResponse
		for i := 0; i < 5; i++ {
			var item models.YouTubeCommentThreadItem
			item.Snippet.TopLevelComment.Snippet.TextDisplay = fmt.Sprintf("comment %d", i)
			item.Snippet.TopLevelComment.Snippet.AuthorDisplayName = "someone"
			page.Items = append(page.Items, item)
		}
		page.NextPageToken = "more"
		json.NewEncoder(w).Encode(page)
	}))
	defer srv.Close()

	comments, err := testYouTubeClient(srv.URL).Comments(context.Background(), "vid", 3)
	require.NoError(t, err)

	require.Len(t, comments, 3)
	assert.Equal(t, models.Comment{Text: "comment 0", Author: "someone"}, comments[0])
}

func TestYouTubeClient_MissingKey(t *testing.T) {
	_, err := NewYouTubeClient("").SearchVideos(context.Background(), "q", 5)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
