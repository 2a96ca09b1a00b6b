package sources

import (
	"context"
	"fmt"
	"net/url"

	"newsdesk/internal/core"
	"newsdesk/internal/fetch"
)

const newsAPIBaseURL = "https://newsapi.org/v2/top-headlines"

// NewsAPI adapts NewsAPI.org top headlines.
type NewsAPI struct {
	client *fetch.Client
	opts   fetch.Options
	apiKey string
	base   string
}

// NewNewsAPI creates the NewsAPI.org adapter.
func NewNewsAPI(client *fetch.Client, opts fetch.Options, apiKey string) *NewsAPI {
	return &NewsAPI{client: client, opts: opts, apiKey: apiKey, base: newsAPIBaseURL}
}

func (a *NewsAPI) Name() string        { return "newsapi" }
func (a *NewsAPI) ContentType() string { return TypeNews }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Fetch retrieves and normalizes top US headlines.
func (a *NewsAPI) Fetch(ctx context.Context) (Payload, error) {
	query := url.Values{}
	query.Set("country", "us")
	query.Set("pageSize", "20")
	query.Set("apiKey", a.apiKey)

	var resp newsAPIResponse
	if err := a.client.FetchJSON(ctx, a.base+"?"+query.Encode(), a.opts, &resp); err != nil {
		return Payload{}, err
	}
	if resp.Status != "ok" {
		return Payload{}, fmt.Errorf("newsapi error: %s", resp.Message)
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
