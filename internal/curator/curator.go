// Package curator produces the final curated set from the diversity
// shortlist. The primary path asks an LLM to pick and summarize the stories;
// any failure there degrades to a deterministic score ranking. Curation
// failure degrades quality, never availability.
package curator

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"newsdesk/internal/core"
	"newsdesk/internal/logger"
)

// FallbackReason is attached to every fallback selection.
const FallbackReason = "Fallback: High importance score"

// Ranker selects and annotates targetCount candidates from a shortlist.
type Ranker interface {
	Rank(ctx context.Context, candidates []core.Candidate, targetCount int) ([]core.CuratedItem, error)
	Name() string
}

// Curator tries the primary ranker and falls back to deterministic scoring.
type Curator struct {
	primary  Ranker
	fallback Ranker
	log      *slog.Logger
}

// New creates a Curator. primary may be nil, in which case every run uses the
// fallback directly (e.g. no LLM key configured).
func New(primary Ranker) *Curator {
	return &Curator{
		primary:  primary,
		fallback: NewScoreRanker(),
		log:      logger.Get(),
	}
}

// Curate returns exactly min(targetCount, len(candidates)) items. It never
// returns an error: the deterministic fallback absorbs every failure mode of
// the primary ranker.
func (c *Curator) Curate(ctx context.Context, candidates []core.Candidate, targetCount int) core.CuratedSet {
	set := core.CuratedSet{GeneratedAt: time.Now().UTC()}
	if len(candidates) == 0 || targetCount <= 0 {
		set.Curator = "fallback"
		return set
	}

	if c.primary != nil {
		items, err := c.primary.Rank(ctx, candidates, targetCount)
		if err == nil {
			set.Items = items
			set.Curator = "llm"
			set.ModelUsed = c.primary.Name()
			return set
		}
		c.log.Warn("Primary curation failed, using score fallback", "error", err.Error())
	}

	items, _ := c.fallback.Rank(ctx, candidates, targetCount) // ScoreRanker cannot fail
	set.Items = items
	set.Curator = "fallback"
	return set
}

// ScoreRanker is the deterministic fallback: top targetCount by importance
// score descending, stable for equal scores.
type ScoreRanker struct{}

// NewScoreRanker creates the fallback ranker.
func NewScoreRanker() *ScoreRanker {
	return &ScoreRanker{}
}

func (r *ScoreRanker) Name() string { return "score" }

// Rank never returns an error.
func (r *ScoreRanker) Rank(_ context.Context, candidates []core.Candidate, targetCount int) ([]core.CuratedItem, error) {
	sorted := make([]core.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ImportanceScore > sorted[j].ImportanceScore
	})

	if targetCount > len(sorted) {
		targetCount = len(sorted)
	}

	items := make([]core.CuratedItem, 0, targetCount)
	for i := 0; i < targetCount; i++ {
		summary := sorted[i].Description
		if summary == "" {
			summary = sorted[i].Title
		}
		items = append(items, core.CuratedItem{
			Candidate:       sorted[i],
			AIRank:          i + 1,
			SelectionReason: FallbackReason,
			EnhancedSummary: summary,
		})
	}
	return items, nil
}
