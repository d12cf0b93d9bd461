package clients

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
)

const (
	YOUTUBE_API_URL          = "https://www.googleapis.com/youtube/v3"
	YOUTUBE_SEARCH_PAGE_MAX  = 50
	YOUTUBE_VIDEOS_CHUNK     = 50
	YOUTUBE_COMMENT_PAGE_MAX = 100
	YOUTUBE_PAGE_DELAY       = 100 * time.Millisecond
	YOUTUBE_COMMENT_DELAY    = 50 * time.Millisecond
)

// YouTubeClient talks to the YouTube Data API v3 with an API key.
type YouTubeClient struct {
	api          apiClient
	APIKey       string
	BaseURL      string
	PageDelay    time.Duration
	CommentDelay time.Duration
}

func NewYouTubeClient(apiKey string) *YouTubeClient {
	return &YouTubeClient{
		api:          newAPIClient("YouTubeClient"),
		APIKey:       apiKey,
		BaseURL:      YOUTUBE_API_URL,
		PageDelay:    YOUTUBE_PAGE_DELAY,
		CommentDelay: YOUTUBE_COMMENT_DELAY,
	}
}

func (y *YouTubeClient) params() (url.Values, error) {
	if y.APIKey == "" {
		return nil, fmt.Errorf("[YouTubeClient] YouTube key: %w", ErrMissingAPIKey)
	}
	params := url.Values{}
	params.Set("key", y.APIKey)
	return params, nil
}

// SearchVideos returns up to maxResults videos for query.
func (y *YouTubeClient) SearchVideos(ctx context.Context, query string, maxResults int) ([]models.Video, error) {
	if maxResults <= 0 {
		return nil, nil
	}

	videos := make([]models.Video, 0, maxResults)
	pageToken := ""

	for len(videos) < maxResults {
		params, err := y.params()
		if err != nil {
			return nil, err
		}
		params.Set("q", query)
		params.Set("part", "snippet")
		params.Set("type", "video")
		params.Set("maxResults", strconv.Itoa(min(YOUTUBE_SEARCH_PAGE_MAX, maxResults-len(videos))))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var page models.YouTubeSearchResponse
		if err := y.api.getJSON(ctx, y.BaseURL+"/search", params, &page); err != nil {
			slog.Warn("[YouTubeClient] Search failed",
				slog.String("query", query),
				slog.String("error", err.Error()))
			return videos, err
		}

		for _, item := range page.Items {
			if item.ID.VideoID == "" {
				continue
			}
			videos = append(videos, models.Video{
				VideoID:      item.ID.VideoID,
				Title:        item.Snippet.Title,
				Description:  item.Snippet.Description,
				ChannelTitle: item.Snippet.ChannelTitle,
				PublishedAt:  item.Snippet.PublishedAt,
			})
			if len(videos) >= maxResults {
				break
			}
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
		if err := sleepCtx(ctx, y.PageDelay); err != nil {
			return videos, err
		}
	}

	slog.Info("[YouTubeClient] Fetched videos",
		slog.String("query", query),
		slog.Int("count", len(videos)))
	return videos, nil
}

// VideoStatistics looks up statistics in chunks of 50 ids. A failing chunk is
// skipped so the remaining videos still get numbers.
func (y *YouTubeClient) VideoStatistics(ctx context.Context, videoIDs []string) (map[string]models.VideoStats, error) {
	stats := make(map[string]models.VideoStats, len(videoIDs))

	for i := 0; i < len(videoIDs); i += YOUTUBE_VIDEOS_CHUNK {
		end := min(i+YOUTUBE_VIDEOS_CHUNK, len(videoIDs))

		params, err := y.params()
		if err != nil {
			return nil, err
		}
		params.Set("id", strings.Join(videoIDs[i:end], ","))
		params.Set("part", "statistics,snippet")

		var page models.YouTubeVideosResponse
		if err := y.api.getJSON(ctx, y.BaseURL+"/videos", params, &page); err != nil {
			if ctx.Err() != nil {
				return stats, ctx.Err()
			}
			slog.Warn("[YouTubeClient] videos.list failed",
				slog.Int("chunk_start", i),
				slog.String("error", err.Error()))
			continue
		}

		for _, item := range page.Items {
			stats[item.ID] = models.VideoStats{
				VideoID:    item.ID,
				Statistics: item.Statistics,
			}
		}
	}

	return stats, nil
}

// Comments returns up to maxComments top-level comments of a video.
func (y *YouTubeClient) Comments(ctx context.Context, videoID string, maxComments int) ([]models.Comment, error) {
	if maxComments <= 0 {
		return nil, nil
	}

	comments := make([]models.Comment, 0, maxComments)
	pageToken := ""

	for len(comments) < maxComments {
		params, err := y.params()
		if err != nil {
			return nil, err
		}
		params.Set("part", "snippet")
		params.Set("videoId", videoID)
		params.Set("textFormat", "plainText")
		params.Set("maxResults", strconv.Itoa(min(YOUTUBE_COMMENT_PAGE_MAX, maxComments-len(comments))))
		if pageToken != "" {
			params.Set("pageToken", pageToken)
		}

		var page models.YouTubeCommentThreadsResponse
		if err := y.api.getJSON(ctx, y.BaseURL+"/commentThreads", params, &page); err != nil {
			return comments, err
		}

		for _, item := range page.Items {
			top := item.Snippet.TopLevelComment.Snippet
			comments = append(comments, models.Comment{
				Text:   top.TextDisplay,
				Author: top.AuthorDisplayName,
			})
			if len(comments) >= maxComments {
				break
			}
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
		if err := sleepCtx(ctx, y.CommentDelay); err != nil {
			return comments, err
		}
	}

	return comments, nil
}
