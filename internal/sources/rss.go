package sources

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"newsdesk/internal/core"
)

// RSS adapts an arbitrary RSS/Atom feed as a supplemental news source. Feeds
// need no credentials, so RSS adapters are never recorded as missing.
type RSS struct {
	userAgent string
	feedURL   string
	parser    *gofeed.Parser
}

// NewRSS creates an adapter for one feed URL.
func NewRSS(userAgent, feedURL string) *RSS {
	parser := gofeed.NewParser()
	if userAgent != "" {
		parser.UserAgent = userAgent
	}
	return &RSS{userAgent: userAgent, feedURL: feedURL, parser: parser}
}

// Name derives a per-feed adapter name from the feed host.
func (a *RSS) Name() string {
	if u, err := url.Parse(a.feedURL); err == nil && u.Host != "" {
		return "rss:" + u.Host
	}
	return "rss"
}

func (a *RSS) ContentType() string { return TypeNews }

// Fetch downloads and parses the feed, keeping the 20 newest items.
func (a *RSS) Fetch(ctx context.Context) (Payload, error) {
	feed, err := a.parser.ParseURLWithContext(a.feedURL, ctx)
	if err != nil {
		return Payload{}, fmt.Errorf("parse feed %s: %w", a.feedURL, err)
	}

	sourceName := feed.Title
	if sourceName == "" {
		sourceName = a.Name()
	}

	var candidates []core.Candidate
	for _, item := range feed.Items {
		if item.Title == "" {
			continue
		}
		publishedAt := ""
		if item.PublishedParsed != nil {
			publishedAt = item.PublishedParsed.UTC().Format(time.RFC3339)
		}
		candidates = append(candidates, core.Candidate{
			ID:          candidateID(item.Link, item.Title),
			Title:       item.Title,
			Description: stripHTML(item.Description),
			URL:         item.Link,
			PublishedAt: publishedAt,
			SourceName:  sourceName,
		})
		if len(candidates) >= 20 {
			break
		}
	}
	return Payload{Candidates: candidates}, nil
}
