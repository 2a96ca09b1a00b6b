package sources

import (
	"context"
	"net/url"

	"newsdesk/internal/core"
	"newsdesk/internal/fetch"
)

const theNewsAPIBaseURL = "https://api.thenewsapi.com/v1/news/top"

// TheNewsAPI adapts TheNewsAPI top stories.
type TheNewsAPI struct {
	client *fetch.Client
	opts   fetch.Options
	apiKey string
	base   string
}

// NewTheNewsAPI creates the TheNewsAPI adapter.
func NewTheNewsAPI(client *fetch.Client, opts fetch.Options, apiKey string) *TheNewsAPI {
	return &TheNewsAPI{client: client, opts: opts, apiKey: apiKey, base: theNewsAPIBaseURL}
}

func (a *TheNewsAPI) Name() string        { return "thenewsapi" }
func (a *TheNewsAPI) ContentType() string { return TypeNews }

type theNewsAPIResponse struct {
	Data []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"published_at"`
		Source      string `json:"source"`
	} `json:"data"`
}

// Fetch retrieves and normalizes TheNewsAPI top US stories.
func (a *TheNewsAPI) Fetch(ctx context.Context) (Payload, error) {
	query := url.Values{}
	query.Set("locale", "us")
	query.Set("limit", "20")
	query.Set("api_token", a.apiKey)

	var resp theNewsAPIResponse
	if err := a.client.FetchJSON(ctx, a.base+"?"+query.Encode(), a.opts, &resp); err != nil {
		return Payload{}, err
	}

	var candidates []core.Candidate
	for _, item := range resp.Data {
		if item.Title == "" {
			continue
		}
		candidates = append(candidates, core.Candidate{
			ID:          candidateID(item.URL, item.Title),
			Title:       item.Title,
			Description: stripHTML(item.Description),
			URL:         item.URL,
			PublishedAt: item.PublishedAt,
			SourceName:  item.Source,
		})
	}
	return Payload{Candidates: candidates}, nil
}
