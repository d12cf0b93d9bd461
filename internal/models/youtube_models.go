package models

// YouTube Data API v3 response shapes. Statistics come back as strings.
type YouTubeSearchResponse struct {
	NextPageToken string              `json:"nextPageToken"`
	Items         []YouTubeSearchItem `json:"items"`
}

type YouTubeSearchItem struct {
	ID struct {
		VideoID string `json:"videoId"`
	} `json:"id"`
	Snippet YouTubeSnippet `json:"snippet"`
}

type YouTubeSnippet struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channelTitle"`
	PublishedAt  string `json:"publishedAt"`
}

type YouTubeVideosResponse struct {
	Items []YouTubeVideoItem `json:"items"`
}

type YouTubeVideoItem struct {
	ID         string            `json:"id"`
	Snippet    YouTubeSnippet    `json:"snippet"`
	Statistics YouTubeStatistics `json:"statistics"`
}

type YouTubeStatistics struct {
	ViewCount    string `json:"viewCount"`
	LikeCount    string `json:"likeCount"`
	CommentCount string `json:"commentCount"`
}

type YouTubeCommentThreadsResponse struct {
	NextPageToken string                     `json:"nextPageToken"`
	Items         []YouTubeCommentThreadItem `json:"items"`
}

type YouTubeCommentThreadItem struct {
	Snippet struct {
		TopLevelComment struct {
			Snippet struct {
				TextDisplay       string `json:"textDisplay"`
				AuthorDisplayName string `json:"authorDisplayName"`
			} `json:"snippet"`
		} `json:"topLevelComment"`
	} `json:"snippet"`
}

type Video struct {
	VideoID      string `json:"video_id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ChannelTitle string `json:"channel_title"`
	PublishedAt  string `json:"published_at"`
}

type VideoStats struct {
	VideoID    string            `json:"video_id"`
	Statistics YouTubeStatistics `json:"statistics"`
}

type Comment struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}
