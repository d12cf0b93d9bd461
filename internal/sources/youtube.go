package sources

import (
	"context"
	"log/slog"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/processing"
	"golang.org/x/sync/errgroup"
)

const COMMENT_FETCH_CONCURRENCY = 4

type VideoPlatform interface {
	SearchVideos(ctx context.Context, query string, maxResults int) ([]models.Video, error)
	VideoStatistics(ctx context.Context, videoIDs []string) (map[string]models.VideoStats, error)
	Comments(ctx context.Context, videoID string, maxComments int) ([]models.Comment, error)
}

// YouTubeSource turns each video into one record: title and description first,
// then its top-level comments, with the video's statistics as metrics.
type YouTubeSource struct {
	platform VideoPlatform
}

func NewYouTubeSource(platform VideoPlatform) *YouTubeSource {
	return &YouTubeSource{platform: platform}
}

func (s *YouTubeSource) Name() string { return models.PlatformYouTube }

func (s *YouTubeSource) Fetch(ctx context.Context, run models.RunConfig) models.SourceOutcome {
	videos, err := s.platform.SearchVideos(ctx, run.Query, run.PerPlatform)
	if err != nil && len(videos) == 0 {
		return empty(s.Name(), err.Error())
	}

	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.VideoID)
	}

	stats, err := s.platform.VideoStatistics(ctx, ids)
	if err != nil {
		slog.Warn("[YouTubeSource] Statistics lookup failed, using zero engagement",
			slog.String("error", err.Error()))
		stats = map[string]models.VideoStats{}
	}

	comments := s.fetchComments(ctx, videos, run.MaxCommentsPerVideo)

	records := make([]models.Record, 0, len(videos))
	for i, v := range videos {
		texts := make([]string, 0, 1+len(comments[i]))
		texts = append(texts, v.Title+" "+v.Description)
		for _, c := range comments[i] {
			texts = append(texts, c.Text)
		}

		metrics := processing.ParseEngagementMetrics(stats[v.VideoID].Statistics)
		records = append(records, models.Record{
			Platform:  models.PlatformYouTube,
			ContentID: v.VideoID,
			Texts:     texts,
			Metrics:   &metrics,
		})
	}

	return models.SourceOutcome{Platform: s.Name(), Records: records}
}

// fetchComments returns comments per video index. A video whose comments
// cannot be fetched simply has none.
func (s *YouTubeSource) fetchComments(ctx context.Context, videos []models.Video, maxComments int) [][]models.Comment {
	out := make([][]models.Comment, len(videos))
	if maxComments <= 0 {
		return out
	}

	var g errgroup.Group
	g.SetLimit(COMMENT_FETCH_CONCURRENCY)
	for i, v := range videos {
		g.Go(func() error {
			comments, err := s.platform.Comments(ctx, v.VideoID, maxComments)
			if err != nil {
				slog.Debug("[YouTubeSource] Comments unavailable",
					slog.String("video_id", v.VideoID),
					slog.String("error", err.Error()))
			}
			out[i] = comments
			return nil
		})
	}
	_ = g.Wait()

	return out
}
