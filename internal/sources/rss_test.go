package sources

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testFeedHeader = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Example Wire</title>
<link>https://example.com</link>
`

func TestRSSFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = fmt.Fprint(w, testFeedHeader+`
<item>
	<title>Budget bill passes</title>
	<link>https://example.com/budget</link>
	<description>&lt;p&gt;The bill &lt;b&gt;passed&lt;/b&gt;.&lt;/p&gt;</description>
	<pubDate>Mon, 10 Mar 2025 11:30:00 GMT</pubDate>
</item>
<item>
	<link>https://example.com/untitled</link>
</item>
</channel>
</rss>`)
	}))
	defer srv.Close()

	a := NewRSS("Newsdesk/1.0", srv.URL+"/feed.xml")
	payload, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(payload.Candidates) != 1 {
		t.Fatalf("candidates = %d, want 1 (untitled skipped)", len(payload.Candidates))
	}

	c := payload.Candidates[0]
	if c.Title != "Budget bill passes" || c.URL != "https://example.com/budget" {
		t.Errorf("candidate = %+v", c)
	}
	if c.Description != "The bill passed." {
		t.Errorf("Description = %q, want HTML stripped", c.Description)
	}
	if c.SourceName != "Example Wire" {
		t.Errorf("SourceName = %q, want the feed title", c.SourceName)
	}
	if c.PublishedAt != "2025-03-10T11:30:00Z" {
		t.Errorf("PublishedAt = %q", c.PublishedAt)
	}
}

func TestRSSFetchCapsItems(t *testing.T) {
	var items strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&items, "<item><title>Item %d</title><link>https://example.com/%d</link></item>\n", i, i)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, testFeedHeader+items.String()+"</channel>\n</rss>")
	}))
	defer srv.Close()

	a := NewRSS("", srv.URL+"/feed.xml")
	payload, err := a.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(payload.Candidates) != 20 {
		t.Errorf("candidates = %d, want cap of 20", len(payload.Candidates))
	}
}

func TestRSSName(t *testing.T) {
	if got := NewRSS("", "https://feeds.example.com/top.xml").Name(); got != "rss:feeds.example.com" {
		t.Errorf("Name = %q", got)
	}
	if got := NewRSS("", "not a url").Name(); got != "rss" {
		t.Errorf("Name = %q, want bare rss for an unparsable URL", got)
	}
}

func TestRSSFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := NewRSS("", srv.URL+"/missing.xml")
	if _, err := a.Fetch(context.Background()); err == nil {
		t.Error("expected error for a 404 feed")
	}
}
