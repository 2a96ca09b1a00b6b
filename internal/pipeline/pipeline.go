// Package pipeline drives one bounded refresh cycle: fan out to all source
// adapters, enhance and cache per source, pool the cache, dedupe, select a
// diverse shortlist, and curate the final set. Failures are isolated to the
// smallest possible scope; a provider or cache-write failure never aborts
// sibling work.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"newsdesk/internal/core"
	"newsdesk/internal/curator"
	"newsdesk/internal/dedupe"
	"newsdesk/internal/diversity"
	"newsdesk/internal/enhance"
	"newsdesk/internal/locker"
	"newsdesk/internal/logger"
	"newsdesk/internal/sources"
	"newsdesk/internal/store"
)

// Cache keys for the curated output and compact variants.
const (
	TypeCurated     = "curated"
	CuratedSource   = "daily"
	compactSuffix   = "_compact"
	refreshLockName = "refresh_content"
)

// Options tunes one pipeline instance.
type Options struct {
	MaxConcurrency int
	ShortlistMax   int
	CuratedCount   int
	NewsTTLHours   int
	StocksTTLHours int
	SportsTTLHours int
	CuratedTTLHour int
}

// DefaultOptions returns the standard pipeline tuning.
func DefaultOptions() Options {
	return Options{
		MaxConcurrency: 8,
		ShortlistMax:   25,
		CuratedCount:   10,
		NewsTTLHours:   2,
		StocksTTLHours: 1,
		SportsTTLHours: 2,
		CuratedTTLHour: 4,
	}
}

// Pipeline owns one configured refresh pipeline.
type Pipeline struct {
	store    *store.Store
	adapters []sources.Adapter
	missing  []string
	enhancer *enhance.Enhancer
	curator  *curator.Curator
	lock     locker.Lock
	opts     Options
	log      *slog.Logger
}

// New assembles a pipeline. lock may be nil, in which case a store-backed
// advisory lock is created per run.
func New(st *store.Store, adapters []sources.Adapter, missing []string,
	enhancer *enhance.Enhancer, cur *curator.Curator, lock locker.Lock, opts Options) *Pipeline {
	return &Pipeline{
		store:    st,
		adapters: adapters,
		missing:  missing,
		enhancer: enhancer,
		curator:  cur,
		lock:     lock,
		opts:     opts,
		log:      logger.Get(),
	}
}

// Run executes one refresh cycle and returns its bookkeeping record. Run
// never returns an error: every failure mode is recorded on the RefreshRun.
func (p *Pipeline) Run(ctx context.Context) core.RefreshRun {
	run := core.RefreshRun{
		RequestID:   uuid.NewString(),
		StartedAt:   time.Now().UTC(),
		MissingEnvs: p.missing,
	}

	lock := p.lock
	if lock == nil {
		lock = locker.NewAdvisory(p.store, refreshLockName, run.RequestID)
	}

	if !lock.TryAcquire() {
		p.log.Info("Skipping refresh; another instance holds the lock", "request_id", run.RequestID)
		run.Skipped = true
		run.FinishedAt = time.Now().UTC()
		p.logRun(run)
		return run
	}

	// The lock must never leak, whichever stage fails or panics.
	defer func() {
		if r := recover(); r != nil {
			run.Error = fmt.Sprintf("panic: %v", r)
			logger.Error("Refresh run panicked", nil, "request_id", run.RequestID, "panic", fmt.Sprint(r))
		}
		lock.Release()
		run.FinishedAt = time.Now().UTC()
		p.logRun(run)
	}()

	p.log.Info("Starting refresh run",
		"request_id", run.RequestID,
		"adapters", len(p.adapters),
		"missing_envs", run.MissingEnvs,
	)

	run.Sources = p.fetchAll(ctx)
	for _, result := range run.Sources {
		if result.Success {
			run.Successful++
		} else {
			run.Failed++
		}
	}

	if err := p.curateFromCache(ctx); err != nil {
		// Curation itself cannot fail; this is a pooling or cache-write error.
		run.Error = err.Error()
		logger.Error("Curation stage failed", err, "request_id", run.RequestID)
	}

	if removed, err := p.store.CleanupExpired(); err != nil {
		p.log.Warn("Cache cleanup failed", "request_id", run.RequestID, "error", err.Error())
	} else if removed > 0 {
		p.log.Debug("Removed expired cache entries", "count", removed)
	}

	p.log.Info("Refresh run completed",
		"request_id", run.RequestID,
		"successful", run.Successful,
		"failed", run.Failed,
		"duration_ms", time.Since(run.StartedAt).Milliseconds(),
	)
	return run
}

// fetchAll drives every adapter concurrently and joins all of them, success
// or failure, before returning. One adapter exhausting its retries is
// recorded as a per-source failure and never cancels its siblings.
func (p *Pipeline) fetchAll(ctx context.Context) []core.SourceResult {
	maxConcurrency := p.opts.MaxConcurrency
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}

	results := make([]core.SourceResult, 0, len(p.adapters))
	sem := make(chan struct{}, maxConcurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, adapter := range p.adapters {
		wg.Add(1)
		sem <- struct{}{} // Acquire semaphore

		go func(a sources.Adapter) {
			defer wg.Done()
			defer func() { <-sem }() // Release semaphore

			result := p.processSource(ctx, a)

			mu.Lock()
			results = append(results, result)
			mu.Unlock()
		}(adapter)
	}

	wg.Wait()
	return results
}

// processSource fetches one adapter, enhances its candidates, and caches the
// enhanced payload (raw and compact) under the adapter's name.
func (p *Pipeline) processSource(ctx context.Context, adapter sources.Adapter) core.SourceResult {
	result := core.SourceResult{Source: adapter.Name()}
	start := time.Now()

	payload, err := adapter.Fetch(ctx)
	result.DurationMs = time.Since(start).Milliseconds()
	if err != nil {
		result.Error = err.Error()
		logger.Error("Source fetch failed", err, "source", adapter.Name())
		return result
	}

	for i, candidate := range payload.Candidates {
		payload.Candidates[i] = p.enhancer.EnhanceNews(candidate)
	}
	for i, game := range payload.Games {
		payload.Games[i] = p.enhancer.EnhanceGame(game)
	}
	result.Candidates = len(payload.Candidates) + len(payload.Games)
	result.Success = true

	if err := p.cacheSource(adapter, payload); err != nil {
		// A cache-write failure is logged but does not fail the source:
		// the fetched data was still valid.
		logger.Error("Failed to cache source payload", err, "source", adapter.Name())
	}

	p.log.Info("Source processed", "source", adapter.Name(),
		"candidates", result.Candidates, "duration_ms", result.DurationMs)
	return result
}

// cacheSource writes the raw enhanced payload and a compact projection.
func (p *Pipeline) cacheSource(adapter sources.Adapter, payload sources.Payload) error {
	contentType := adapter.ContentType()
	ttl := p.ttlFor(contentType)

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	if err := p.store.CacheContent(contentType, adapter.Name(), string(raw), ttl); err != nil {
		return fmt.Errorf("cache raw payload: %w", err)
	}

	compact, err := json.Marshal(compactPayload(payload))
	if err != nil {
		return fmt.Errorf("marshal compact payload: %w", err)
	}
	if err := p.store.CacheContent(contentType+compactSuffix, adapter.Name(), string(compact), ttl); err != nil {
		return fmt.Errorf("cache compact payload: %w", err)
	}
	return nil
}

// curateFromCache pools every fresh cached candidate, dedupes, applies the
// diversity selector, runs curation, and caches the curated set.
func (p *Pipeline) curateFromCache(ctx context.Context) error {
	pool, err := p.poolCandidates()
	if err != nil {
		return fmt.Errorf("pool cached candidates: %w", err)
	}
	if len(pool) == 0 {
		p.log.Warn("No fresh candidates to curate")
		return nil
	}

	deduped := dedupe.Dedupe(pool)
	shortlist := diversity.Select(deduped, p.opts.ShortlistMax)

	set := p.curator.Curate(ctx, shortlist, p.opts.CuratedCount)
	p.log.Info("Curated set generated",
		"items", len(set.Items),
		"curator", set.Curator,
		"pooled", len(pool),
		"deduped", len(deduped),
		"shortlisted", len(shortlist),
	)

	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal curated set: %w", err)
	}
	if err := p.store.CacheContent(TypeCurated, CuratedSource, string(data), p.opts.CuratedTTLHour); err != nil {
		return fmt.Errorf("cache curated set: %w", err)
	}
	return nil
}

// poolCandidates reads all fresh cached payloads and flattens them into one
// candidate list. Game candidates are projected into candidate form so the
// downstream stages operate on a single shape.
func (p *Pipeline) poolCandidates() ([]core.Candidate, error) {
	fresh, err := p.store.GetFreshContent([]string{sources.TypeNews, sources.TypeStocks, sources.TypeSports})
	if err != nil {
		return nil, err
	}

	var pool []core.Candidate
	for _, entries := range fresh {
		for _, entry := range entries {
			var payload sources.Payload
			if err := json.Unmarshal([]byte(entry.Data), &payload); err != nil {
				p.log.Warn("Skipping undecodable cache entry", "source", entry.Source, "error", err.Error())
				continue
			}
			pool = append(pool, payload.Candidates...)
			for _, game := range payload.Games {
				pool = append(pool, gameAsCandidate(game))
			}
		}
	}
	return pool, nil
}

// gameAsCandidate projects a game into the candidate shape used by dedup,
// diversity, and curation. Significance maps onto importance; games compete
// with news on equal footing from here on.
func gameAsCandidate(g core.GameCandidate) core.Candidate {
	return core.Candidate{
		ID:              g.ID,
		Title:           g.Title,
		Description:     g.Description,
		URL:             g.URL,
		PublishedAt:     g.StartTime,
		SourceName:      g.SourceName,
		ImportanceScore: g.SignificanceScore,
		TopicCategory:   core.TopicSports,
		GeographicScope: core.ScopeNational,
		EditorialWeight: core.WeightPageThree,
		SpotsNeeded:     g.SportsSpots,
		GeoRelevance:    g.LocationRelevance,
	}
}

// compactCandidate is the trimmed projection cached alongside the raw payload
// for consumers that only need headlines and scores.
type compactCandidate struct {
	ID              string               `json:"id"`
	Title           string               `json:"title"`
	ImportanceScore int                  `json:"importance_score"`
	TopicCategory   core.TopicCategory   `json:"topic_category"`
	EditorialWeight core.EditorialWeight `json:"editorial_weight"`
	SpotsNeeded     int                  `json:"spots_needed"`
}

type compactEnvelope struct {
	Items []compactCandidate `json:"items"`
}

func compactPayload(payload sources.Payload) compactEnvelope {
	env := compactEnvelope{Items: make([]compactCandidate, 0, len(payload.Candidates)+len(payload.Games))}
	for _, c := range payload.Candidates {
		env.Items = append(env.Items, compactCandidate{
			ID:              c.ID,
			Title:           c.Title,
			ImportanceScore: c.ImportanceScore,
			TopicCategory:   c.TopicCategory,
			EditorialWeight: c.EditorialWeight,
			SpotsNeeded:     c.SpotsNeeded,
		})
	}
	for _, g := range payload.Games {
		env.Items = append(env.Items, compactCandidate{
			ID:              g.ID,
			Title:           g.Title,
			ImportanceScore: g.SignificanceScore,
			TopicCategory:   core.TopicSports,
			EditorialWeight: core.WeightPageThree,
			SpotsNeeded:     g.SportsSpots,
		})
	}
	return env
}

// ttlFor maps a content type to its configured TTL in hours.
func (p *Pipeline) ttlFor(contentType string) int {
	switch contentType {
	case sources.TypeStocks:
		return p.opts.StocksTTLHours
	case sources.TypeSports:
		return p.opts.SportsTTLHours
	default:
		return p.opts.NewsTTLHours
	}
}

// logRun persists the run record; a failure here is only logged.
func (p *Pipeline) logRun(run core.RefreshRun) {
	if err := p.store.LogRun(run); err != nil {
		logger.Error("Failed to log refresh run", err, "request_id", run.RequestID)
	}
}
