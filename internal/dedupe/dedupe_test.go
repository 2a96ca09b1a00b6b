package dedupe

import (
	"strings"
	"testing"

	"newsdesk/internal/core"
)

func TestKeyPrefersURL(t *testing.T) {
	c := core.Candidate{
		URL:         "https://Example.com/Story",
		Title:       "Ignored title",
		Description: "Ignored description",
	}
	if got := Key(c); got != "https://example.com/story" {
		t.Errorf("Key = %q, want lowercased URL", got)
	}
}

func TestKeyFallbackChain(t *testing.T) {
	if got := Key(core.Candidate{Title: "Some Headline"}); got != "some headline" {
		t.Errorf("title fallback = %q", got)
	}
	if got := Key(core.Candidate{Description: "Only Text"}); got != "only text" {
		t.Errorf("description fallback = %q", got)
	}
	if got := Key(core.Candidate{}); got != "" {
		t.Errorf("empty candidate key = %q, want empty", got)
	}
}

func TestKeyTruncation(t *testing.T) {
	long := strings.Repeat("a", 150)
	if got := Key(core.Candidate{URL: long}); len(got) != 100 {
		t.Errorf("key length = %d, want 100", len(got))
	}
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	in := []core.Candidate{
		{URL: "https://example.com/a", SourceName: "first"},
		{URL: "https://example.com/b"},
		{URL: "https://EXAMPLE.com/a", SourceName: "second"},
		{URL: "https://example.com/c"},
	}

	out := Dedupe(in)
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if out[0].SourceName != "first" {
		t.Errorf("kept %q, want the first occurrence", out[0].SourceName)
	}
	if out[1].URL != "https://example.com/b" || out[2].URL != "https://example.com/c" {
		t.Error("input order not preserved")
	}
}

func TestDedupeNeverGrows(t *testing.T) {
	in := []core.Candidate{
		{Title: "one"}, {Title: "two"}, {Title: "one"}, {Title: "ONE"},
	}
	out := Dedupe(in)
	if len(out) > len(in) {
		t.Errorf("output grew: %d > %d", len(out), len(in))
	}
	if len(out) != 2 {
		t.Errorf("len = %d, want 2", len(out))
	}
}
