package sources

import (
	"context"
	"net/url"

	"newsdesk/internal/core"
	"newsdesk/internal/fetch"
)

const gnewsBaseURL = "https://gnews.io/api/v4/top-headlines"

// GNews adapts GNews top headlines.
type GNews struct {
	client *fetch.Client
	opts   fetch.Options
	apiKey string
	base   string
}

// NewGNews creates the GNews adapter.
func NewGNews(client *fetch.Client, opts fetch.Options, apiKey string) *GNews {
	return &GNews{client: client, opts: opts, apiKey: apiKey, base: gnewsBaseURL}
}

func (a *GNews) Name() string        { return "gnews" }
func (a *GNews) ContentType() string { return TypeNews }

type gnewsResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Fetch retrieves and normalizes GNews US headlines.
func (a *GNews) Fetch(ctx context.Context) (Payload, error) {
	query := url.Values{}
	query.Set("country", "us")
	query.Set("lang", "en")
	query.Set("max", "20")
	query.Set("apikey", a.apiKey)

	var resp gnewsResponse
	if err := a.client.FetchJSON(ctx, a.base+"?"+query.Encode(), a.opts, &resp); err != nil {
		return Payload{}, err
	}

	var candidates []core.Candidate
	for _, article := range resp.Articles {
		if article.Title == "" {
			continue
		}
		candidates = append(candidates, core.Candidate{
			ID:          candidateID(article.URL, article.Title),
			Title:       article.Title,
			Description: stripHTML(article.Description),
			URL:         article.URL,
			PublishedAt: article.PublishedAt,
			SourceName:  article.Source.Name,
		})
	}
	return Payload{Candidates: candidates}, nil
}
