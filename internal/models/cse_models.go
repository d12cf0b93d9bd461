package models

// Google Custom Search JSON API response shapes.
type CSEResponse struct {
	Items   []CSEItem  `json:"items"`
	Queries CSEQueries `json:"queries"`
}

type CSEItem struct {
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
	Link        string `json:"link"`
	DisplayLink string `json:"displayLink"`
}

type CSEQueries struct {
	NextPage []CSEQuery `json:"nextPage,omitempty"`
}

type CSEQuery struct {
	StartIndex int `json:"startIndex"`
}

type WebResult struct {
	Title       string `json:"title"`
	Snippet     string `json:"snippet"`
	Link        string `json:"link"`
	DisplayLink string `json:"display_link"`
}
