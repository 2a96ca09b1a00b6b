package sources

import (
	"context"
	"net/url"
	"strings"

	"newsdesk/internal/core"
	"newsdesk/internal/fetch"
)

const newsDataBaseURL = "https://newsdata.io/api/1/latest"

// NewsData adapts NewsData.io latest news.
type NewsData struct {
	client *fetch.Client
	opts   fetch.Options
	apiKey string
	base   string
}

// NewNewsData creates the NewsData.io adapter.
func NewNewsData(client *fetch.Client, opts fetch.Options, apiKey string) *NewsData {
	return &NewsData{client: client, opts: opts, apiKey: apiKey, base: newsDataBaseURL}
}

func (a *NewsData) Name() string        { return "newsdata" }
func (a *NewsData) ContentType() string { return TypeNews }

type newsDataResponse struct {
	Results []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Link        string `json:"link"`
		PubDate     string `json:"pubDate"`
		SourceName  string `json:"source_name"`
	} `json:"results"`
}

// Fetch retrieves and normalizes NewsData.io latest US news. NewsData returns
// pubDate as "2006-01-02 15:04:05"; it is converted to RFC3339 so downstream
// recency scoring only ever sees one format.
func (a *NewsData) Fetch(ctx context.Context) (Payload, error) {
	query := url.Values{}
	query.Set("country", "us")
	query.Set("language", "en")
	query.Set("apikey", a.apiKey)

	var resp newsDataResponse
	if err := a.client.FetchJSON(ctx, a.base+"?"+query.Encode(), a.opts, &resp); err != nil {
		return Payload{}, err
	}

	var candidates []core.Candidate
	for _, item := range resp.Results {
		if item.Title == "" {
			continue
		}
		candidates = append(candidates, core.Candidate{
			ID:          candidateID(item.Link, item.Title),
			Title:       item.Title,
			Description: stripHTML(item.Description),
			URL:         item.Link,
			PublishedAt: normalizePubDate(item.PubDate),
			SourceName:  item.SourceName,
		})
	}
	return Payload{Candidates: candidates}, nil
}

// normalizePubDate rewrites NewsData's space-separated UTC timestamp to
// RFC3339. Unrecognized values pass through empty rather than guessing.
func normalizePubDate(pubDate string) string {
	if pubDate == "" {
		return ""
	}
	parts := strings.SplitN(pubDate, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	return parts[0] + "T" + parts[1] + "Z"
}
