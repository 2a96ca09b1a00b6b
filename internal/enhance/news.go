// Package enhance scores and classifies candidates against the rule tables in
// internal/rules. Enhancement is the only mutation a candidate receives, and it
// is applied exactly once, before caching.
package enhance

import (
	"strings"
	"time"

	"newsdesk/internal/core"
	"newsdesk/internal/rules"
)

// Options carries the product-tunable knobs for enhancement.
type Options struct {
	FollowedTeam      string
	FollowedTeamBoost int
	OctoberMLBBoost   int
	Now               func() time.Time
}

// Enhancer applies importance scoring, classification, and geographic
// relevance to news and sports candidates.
type Enhancer struct {
	followedTeam      string
	followedTeamBoost int
	octoberMLBBoost   int
	now               func() time.Time
}

// New creates an Enhancer. A nil Now defaults to time.Now.
func New(opts Options) *Enhancer {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Enhancer{
		followedTeam:      strings.ToLower(opts.FollowedTeam),
		followedTeamBoost: opts.FollowedTeamBoost,
		octoberMLBBoost:   opts.OctoberMLBBoost,
		now:               now,
	}
}

// EnhanceNews fills the intelligence fields of a candidate and returns it.
// The lowercased title+description is built once; the scorer and every
// classifier read that same prepared text.
func (e *Enhancer) EnhanceNews(c core.Candidate) core.Candidate {
	text := strings.ToLower(c.Title + " " + c.Description)

	c.ImportanceScore = e.scoreText(text, c.SourceName, c.PublishedAt)
	c.TopicCategory = Categorize(text)
	c.GeographicScope = GeographicScope(text)
	c.EditorialWeight = EditorialWeight(text, c.ImportanceScore)
	c.SpotsNeeded = SpotsNeeded(text, c.EditorialWeight, c.ImportanceScore)
	c.GeoRelevance = GeoRelevance(text)
	return c
}

// ScoreNews computes the weighted, additive importance score, clamped [0,100]:
// source authority tier + keyword rules + recency bonus. Rules fire
// independently of one another, but each rule adds its weight at most once.
func (e *Enhancer) ScoreNews(c core.Candidate) int {
	return e.scoreText(strings.ToLower(c.Title+" "+c.Description), c.SourceName, c.PublishedAt)
}

// scoreText scores already-lowercased text.
func (e *Enhancer) scoreText(text, sourceName, publishedAt string) int {
	score := sourceBonus(sourceName)
	for _, rule := range rules.NewsKeywordRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				score += rule.Weight
				break
			}
		}
	}
	score += e.recencyBonus(publishedAt)

	return clamp(score, 0, 100)
}

// sourceBonus returns the authority tier bonus for an outlet name.
func sourceBonus(sourceName string) int {
	name := strings.ToLower(sourceName)
	for _, tier := range rules.SourceTiers {
		if strings.Contains(name, tier.Match) {
			return tier.Bonus
		}
	}
	return rules.DefaultSourceBonus
}

// recencyBonus rewards fresh stories: <1h +10, <6h +5, <12h +2.
func (e *Enhancer) recencyBonus(publishedAt string) int {
	if publishedAt == "" {
		return 0
	}
	published, err := time.Parse(time.RFC3339, publishedAt)
	if err != nil {
		return 0
	}
	age := e.now().Sub(published)
	switch {
	case age < 0:
		return 0
	case age < time.Hour:
		return 10
	case age < 6*time.Hour:
		return 5
	case age < 12*time.Hour:
		return 2
	default:
		return 0
	}
}

// Categorize assigns the topic category by evaluating the ordered keyword
// groups; the first group with any match wins, otherwise general. First match,
// not best match: the group order is part of the product contract.
func Categorize(text string) core.TopicCategory {
	for _, group := range rules.CategoryGroups {
		for _, kw := range group.Keywords {
			if strings.Contains(text, kw) {
				return group.Category
			}
		}
	}
	return core.TopicGeneral
}

// GeographicScope classifies reach: international keywords first, then major
// state/city names, then federal keywords; the default is national.
func GeographicScope(text string) core.GeoScope {
	for _, kw := range rules.InternationalScopeKeywords {
		if strings.Contains(text, kw) {
			return core.ScopeInternational
		}
	}
	for _, kw := range rules.StateScopeKeywords {
		if strings.Contains(text, kw) {
			return core.ScopeState
		}
	}
	for _, kw := range rules.NationalScopeKeywords {
		if strings.Contains(text, kw) {
			return core.ScopeNational
		}
	}
	return core.ScopeNational
}

// EditorialWeight assigns the placement tier. Override keywords force
// front_page (or page_3) regardless of the numeric score.
func EditorialWeight(text string, score int) core.EditorialWeight {
	for _, kw := range rules.FrontPageOverrides {
		if strings.Contains(text, kw) {
			return core.WeightFrontPage
		}
	}
	if score >= 70 {
		return core.WeightFrontPage
	}
	for _, kw := range rules.PageThreeOverrides {
		if strings.Contains(text, kw) {
			return core.WeightPageThree
		}
	}
	if score >= 40 {
		return core.WeightPageThree
	}
	return core.WeightBuried
}

// SpotsNeeded decides how many presentation slots a story merits downstream:
// 3 for a generational event on the front page scoring >=85, 2 for any
// front-page item or a two-spot keyword, else 1.
func SpotsNeeded(text string, weight core.EditorialWeight, score int) int {
	if weight == core.WeightFrontPage && score >= 85 {
		for _, kw := range rules.GenerationalEventKeywords {
			if strings.Contains(text, kw) {
				return 3
			}
		}
	}
	if weight == core.WeightFrontPage {
		return 2
	}
	for _, kw := range rules.TwoSpotKeywords {
		if strings.Contains(text, kw) {
			return 2
		}
	}
	return 1
}

// GeoRelevance scores the story against each metro dictionary: +10 for an
// exact city-name match, +5 for other local keywords, +2 for a state-name
// mention, capped at MetroScoreCap. Metros with zero relevance are omitted.
func GeoRelevance(text string) map[string]int {
	relevance := make(map[string]int)
	for _, metro := range rules.Metros {
		score := 0
		for _, city := range metro.CityNames {
			if strings.Contains(text, city) {
				score += 10
			}
		}
		for _, kw := range metro.LocalKeywords {
			if strings.Contains(text, kw) {
				score += 5
			}
		}
		for _, state := range metro.StateNames {
			if strings.Contains(text, state) {
				score += 2
			}
		}
		if score > rules.MetroScoreCap {
			score = rules.MetroScoreCap
		}
		if score > 0 {
			relevance[metro.ID] = score
		}
	}
	return relevance
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
