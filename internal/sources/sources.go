// Package sources contains one adapter per external content provider. Each
// adapter fetches through the shared retrying client and maps the provider's
// response shape into canonical candidates; raw provider shapes never cross
// the adapter boundary.
package sources

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"newsdesk/internal/config"
	"newsdesk/internal/core"
	"newsdesk/internal/fetch"
)

// Content types used as cache keys.
const (
	TypeNews   = "news"
	TypeStocks = "stocks"
	TypeSports = "sports"
)

// Payload is the normalized output of one adapter fetch.
type Payload struct {
	Candidates []core.Candidate
	Games      []core.GameCandidate
}

// Adapter fetches and normalizes content from one provider.
type Adapter interface {
	Name() string
	ContentType() string
	Fetch(ctx context.Context) (Payload, error)
}

// Registry builds the adapters for every configured provider. Providers with
// missing credentials are skipped; their names are returned separately so the
// run can record them as missing_envs.
func Registry(providers config.Providers, client *fetch.Client, opts fetch.Options) (adapters []Adapter, missing []string) {
	if providers.NewsAPI.APIKey != "" {
		adapters = append(adapters, NewNewsAPI(client, opts, providers.NewsAPI.APIKey))
	}
	if providers.GNews.APIKey != "" {
		adapters = append(adapters, NewGNews(client, opts, providers.GNews.APIKey))
	}
	if providers.TheNewsAPI.APIKey != "" {
		adapters = append(adapters, NewTheNewsAPI(client, opts, providers.TheNewsAPI.APIKey))
	}
	if providers.NewsData.APIKey != "" {
		adapters = append(adapters, NewNewsData(client, opts, providers.NewsData.APIKey))
	}
	if providers.Stocks.APIKey != "" {
		adapters = append(adapters, NewStocks(client, opts, providers.Stocks.APIKey, providers.Stocks.Symbols))
	}
	if providers.Sports.ScoresAPIKey != "" {
		adapters = append(adapters, NewSportsScores(client, opts, providers.Sports.ScoresAPIKey))
	}
	if providers.Sports.ScheduleAPIKey != "" {
		adapters = append(adapters, NewSportsSchedule(client, opts, providers.Sports.ScheduleAPIKey))
	}
	for _, feedURL := range providers.RSS.FeedURLs {
		adapters = append(adapters, NewRSS(providers.RSS.UserAgent, feedURL))
	}

	missing = providers.MissingProviders()
	return adapters, missing
}

// stripHTML flattens markup that some providers embed in descriptions down to
// plain text for scoring.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(strings.Join(strings.Fields(doc.Text()), " "))
}

// candidateID prefers the article URL as the stable identifier.
func candidateID(url, title string) string {
	if url != "" {
		return url
	}
	return title
}
