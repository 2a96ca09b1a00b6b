package handlers

import (
	"context"
	"time"

	"newsdesk/internal/config"
	"newsdesk/internal/curator"
	"newsdesk/internal/enhance"
	"newsdesk/internal/fetch"
	"newsdesk/internal/logger"
	"newsdesk/internal/pipeline"
	"newsdesk/internal/sources"
	"newsdesk/internal/store"
)

// buildPipeline assembles a pipeline and its store from the loaded config.
// The caller owns closing the store.
func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, *store.Store, error) {
	st, err := store.NewStore(cfg.Cache.Directory)
	if err != nil {
		return nil, nil, err
	}

	fetchOpts := fetch.Options{
		MaxTries:  cfg.Pipeline.MaxTries,
		BaseDelay: time.Duration(cfg.Pipeline.BaseDelayMs) * time.Millisecond,
		Timeout:   time.Duration(cfg.Pipeline.TimeoutMs) * time.Millisecond,
	}
	client := fetch.New(nil)
	adapters, missing := sources.Registry(cfg.Providers, client, fetchOpts)

	enhancer := enhance.New(enhance.Options{
		FollowedTeam:      cfg.Providers.Sports.FollowedTeam,
		FollowedTeamBoost: cfg.Pipeline.FollowedTeamBoost,
		OctoberMLBBoost:   cfg.Pipeline.OctoberMLBBoost,
	})

	// The LLM ranker is optional: without a key, curation always takes the
	// deterministic fallback path.
	var primary curator.Ranker
	if cfg.AI.Gemini.APIKey != "" {
		ranker, err := curator.NewLLMRanker(ctx, cfg.AI.Gemini.APIKey, cfg.AI.Gemini.Model,
			cfg.AI.Gemini.Temperature, cfg.AI.Gemini.MaxTokens)
		if err != nil {
			logger.Warn("LLM ranker unavailable, curation will use score fallback", "error", err.Error())
		} else {
			primary = ranker
		}
	} else {
		logger.Warn("No Gemini API key configured, curation will use score fallback")
	}

	opts := pipeline.Options{
		MaxConcurrency: cfg.Pipeline.MaxConcurrency,
		ShortlistMax:   cfg.Pipeline.ShortlistMax,
		CuratedCount:   cfg.Pipeline.CuratedCount,
		NewsTTLHours:   cfg.Cache.TTL.NewsHours,
		StocksTTLHours: cfg.Cache.TTL.StocksHours,
		SportsTTLHours: cfg.Cache.TTL.SportsHours,
		CuratedTTLHour: cfg.Cache.TTL.CuratedHours,
	}

	p := pipeline.New(st, adapters, missing, enhancer, curator.New(primary), nil, opts)
	return p, st, nil
}
