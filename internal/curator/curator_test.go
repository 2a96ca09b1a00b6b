package curator

import (
	"context"
	"errors"
	"testing"

	"newsdesk/internal/core"
)

func shortlist() []core.Candidate {
	return []core.Candidate{
		{ID: "a", Title: "Mid story", ImportanceScore: 50, Description: "mid summary"},
		{ID: "b", Title: "Top story", ImportanceScore: 90},
		{ID: "c", Title: "Low story", ImportanceScore: 10, Description: "low summary"},
		{ID: "d", Title: "Also top", ImportanceScore: 90, Description: "tied summary"},
	}
}

// failingRanker always errors, forcing the fallback path.
type failingRanker struct{}

func (failingRanker) Rank(context.Context, []core.Candidate, int) ([]core.CuratedItem, error) {
	return nil, errors.New("model unavailable")
}
func (failingRanker) Name() string { return "broken-model" }

// cannedRanker returns a fixed result.
type cannedRanker struct{ items []core.CuratedItem }

func (r cannedRanker) Rank(context.Context, []core.Candidate, int) ([]core.CuratedItem, error) {
	return r.items, nil
}
func (cannedRanker) Name() string { return "canned-model" }

func TestScoreRankerOrdering(t *testing.T) {
	items, err := NewScoreRanker().Rank(context.Background(), shortlist(), 3)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("len = %d, want 3", len(items))
	}

	// Descending by score, stable for the 90-90 tie (b before d).
	wantIDs := []string{"b", "d", "a"}
	for i, want := range wantIDs {
		if items[i].ID != want {
			t.Errorf("items[%d].ID = %s, want %s", i, items[i].ID, want)
		}
		if items[i].AIRank != i+1 {
			t.Errorf("items[%d].AIRank = %d, want %d", i, items[i].AIRank, i+1)
		}
		if items[i].SelectionReason != FallbackReason {
			t.Errorf("items[%d].SelectionReason = %q", i, items[i].SelectionReason)
		}
	}

	// Summary falls back from description to title.
	if items[0].EnhancedSummary != "Top story" {
		t.Errorf("no-description summary = %q, want title", items[0].EnhancedSummary)
	}
	if items[1].EnhancedSummary != "tied summary" {
		t.Errorf("summary = %q, want description", items[1].EnhancedSummary)
	}
}

func TestScoreRankerTargetLargerThanInput(t *testing.T) {
	items, err := NewScoreRanker().Rank(context.Background(), shortlist(), 10)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}
	if len(items) != 4 {
		t.Errorf("len = %d, want all 4 candidates", len(items))
	}
}

func TestCurateUsesPrimary(t *testing.T) {
	canned := []core.CuratedItem{{Candidate: core.Candidate{ID: "b"}, AIRank: 1}}
	c := New(cannedRanker{items: canned})

	set := c.Curate(context.Background(), shortlist(), 1)
	if set.Curator != "llm" {
		t.Errorf("Curator = %q, want llm", set.Curator)
	}
	if set.ModelUsed != "canned-model" {
		t.Errorf("ModelUsed = %q", set.ModelUsed)
	}
	if len(set.Items) != 1 || set.Items[0].ID != "b" {
		t.Errorf("Items = %+v", set.Items)
	}
}

func TestCurateFallsBackOnPrimaryError(t *testing.T) {
	c := New(failingRanker{})

	set := c.Curate(context.Background(), shortlist(), 2)
	if set.Curator != "fallback" {
		t.Errorf("Curator = %q, want fallback", set.Curator)
	}
	if set.ModelUsed != "" {
		t.Errorf("ModelUsed = %q, want empty on fallback", set.ModelUsed)
	}
	if len(set.Items) != 2 || set.Items[0].ID != "b" {
		t.Errorf("Items = %+v, want score ordering", set.Items)
	}
}

func TestCurateNilPrimary(t *testing.T) {
	set := New(nil).Curate(context.Background(), shortlist(), 2)
	if set.Curator != "fallback" || len(set.Items) != 2 {
		t.Errorf("set = %+v, want fallback with 2 items", set)
	}
}

func TestCurateEmptyInput(t *testing.T) {
	set := New(nil).Curate(context.Background(), nil, 10)
	if set.Curator != "fallback" || len(set.Items) != 0 {
		t.Errorf("set = %+v, want empty fallback set", set)
	}
}

func TestMapSelectionsValid(t *testing.T) {
	text := `{"selections":[
		{"index":1,"reason":"most important","enhanced_summary":"A full summary."},
		{"index":0,"reason":"balance","enhanced_summary":""}
	]}`

	items, err := mapSelections(shortlist(), 2, text)
	if err != nil {
		t.Fatalf("mapSelections: %v", err)
	}
	if items[0].ID != "b" || items[0].AIRank != 1 {
		t.Errorf("items[0] = %+v", items[0])
	}
	if items[0].EnhancedSummary != "A full summary." {
		t.Errorf("summary = %q", items[0].EnhancedSummary)
	}
	// Empty model summary falls back to the candidate's description.
	if items[1].ID != "a" || items[1].EnhancedSummary != "mid summary" {
		t.Errorf("items[1] = %+v", items[1])
	}
}

func TestMapSelectionsRejections(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"malformed JSON", `{"selections":[`},
		{"wrong count", `{"selections":[{"index":0}]}`},
		{"index out of range", `{"selections":[{"index":0},{"index":99}]}`},
		{"negative index", `{"selections":[{"index":-1},{"index":0}]}`},
		{"duplicate index", `{"selections":[{"index":1},{"index":1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := mapSelections(shortlist(), 2, tt.text); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestCleanJSONResponse(t *testing.T) {
	fenced := "```json\n{\"selections\":[]}\n```"
	if got := cleanJSONResponse(fenced); got != `{"selections":[]}` {
		t.Errorf("cleanJSONResponse = %q", got)
	}
	plain := `{"selections":[]}`
	if got := cleanJSONResponse(plain); got != plain {
		t.Errorf("plain passthrough = %q", got)
	}
}
