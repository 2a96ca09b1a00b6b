package core

import "time"

// TopicCategory is the editorial topic assigned to a news candidate.
type TopicCategory string

const (
	TopicPolitics      TopicCategory = "politics"
	TopicBusiness      TopicCategory = "business"
	TopicTechnology    TopicCategory = "technology"
	TopicHealth        TopicCategory = "health"
	TopicClimate       TopicCategory = "climate"
	TopicSports        TopicCategory = "sports"
	TopicInternational TopicCategory = "international"
	TopicGeneral       TopicCategory = "general"
)

// GeoScope is the geographic reach of a story.
type GeoScope string

const (
	ScopeInternational GeoScope = "international"
	ScopeState         GeoScope = "state"
	ScopeNational      GeoScope = "national"
)

// EditorialWeight is a coarse priority tier analogous to print-newspaper placement.
type EditorialWeight string

const (
	WeightFrontPage EditorialWeight = "front_page"
	WeightPageThree EditorialWeight = "page_3"
	WeightBuried    EditorialWeight = "buried"
)

// GameType classifies a sporting event.
type GameType string

const (
	GameChampionship GameType = "championship"
	GamePlayoff      GameType = "playoff"
	GameSeasonOpener GameType = "season_opener"
	GameRivalry      GameType = "rivalry"
	GameRegular      GameType = "regular"
)

// Candidate represents a normalized, provider-agnostic news item.
// Provider adapters create Candidates with the identity fields populated;
// the enhancer fills the intelligence fields exactly once, before caching.
type Candidate struct {
	ID              string          `json:"id"`               // Stable identifier, prefers the source URL
	Title           string          `json:"title"`            // Headline
	Description     string          `json:"description"`      // Summary/teaser text from the provider
	URL             string          `json:"url"`              // Canonical article URL
	PublishedAt     string          `json:"publishedAt"`      // ISO-8601 publication time, may be empty
	SourceName      string          `json:"source_name"`      // Human-readable outlet name
	ImportanceScore int             `json:"importance_score"` // Editorial importance, clamped [0,100]
	TopicCategory   TopicCategory   `json:"topic_category"`   // First-matching-rule topic
	GeographicScope GeoScope        `json:"geographic_scope"` // international, state, or national
	EditorialWeight EditorialWeight `json:"editorial_weight"` // front_page, page_3, or buried
	SpotsNeeded     int             `json:"spots_needed"`     // Presentation slots (1-3)
	GeoRelevance    map[string]int  `json:"geo_relevance"`    // metro id -> relevance score [0,30]
}

// GameCandidate represents a normalized sporting event.
type GameCandidate struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Description       string         `json:"description"`
	URL               string         `json:"url"`
	League            string         `json:"league"` // NFL, NBA, MLB, NHL, MLS
	HomeTeam          string         `json:"home_team"`
	AwayTeam          string         `json:"away_team"`
	HomeScore         int            `json:"home_score"`
	AwayScore         int            `json:"away_score"`
	Status            string         `json:"status"`     // scheduled, live, final
	StartTime         string         `json:"start_time"` // ISO-8601, may be empty
	SourceName        string         `json:"source_name"`
	SignificanceScore int            `json:"significance_score"` // Clamped [0,100]
	GameType          GameType       `json:"game_type"`
	SeasonalContext   string         `json:"seasonal_context"`   // Per-league, per-month label
	SportsSpots       int            `json:"sports_spots"`       // Presentation slots (1-3)
	LocationRelevance map[string]int `json:"location_relevance"` // metro id -> score [0,30]
}

// CacheEntry is one TTL-keyed row in the content cache, keyed by (ContentType, Source).
type CacheEntry struct {
	ContentType string    `json:"content_type"`
	Source      string    `json:"source"`
	Data        string    `json:"data"` // JSON payload
	ExpiresAt   time.Time `json:"expires_at"`
}

// SourceResult records the outcome of a single provider fetch within a run.
type SourceResult struct {
	Source     string `json:"source"`
	Success    bool   `json:"success"`
	DurationMs int64  `json:"duration_ms"`
	Candidates int    `json:"candidates"`
	Error      string `json:"error,omitempty"`
}

// RefreshRun captures per-run bookkeeping for a full pipeline cycle.
type RefreshRun struct {
	RequestID   string         `json:"request_id"`
	StartedAt   time.Time      `json:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"`
	Sources     []SourceResult `json:"sources"`
	Successful  int            `json:"successful"`
	Failed      int            `json:"failed"`
	MissingEnvs []string       `json:"missing_envs"` // Providers skipped due to absent configuration
	Skipped     bool           `json:"skipped"`      // True when another run held the lock
	Error       string         `json:"error,omitempty"`
}

// CuratedItem is a Candidate chosen for the final set, with curation metadata.
type CuratedItem struct {
	Candidate
	AIRank          int    `json:"ai_rank"`          // 1-based position in the curated set
	SelectionReason string `json:"selection_reason"` // Why the curator picked this story
	EnhancedSummary string `json:"enhanced_summary"` // 3-4 sentence summary, or fallback text
}

// CuratedSet is the pipeline output: the final ranked stories for one run.
// It supersedes the previous set wholesale and is read-only to consumers.
type CuratedSet struct {
	Items       []CuratedItem `json:"items"`
	GeneratedAt time.Time     `json:"generated_at"`
	Curator     string        `json:"curator"` // "llm" or "fallback"
	ModelUsed   string        `json:"model_used,omitempty"`
}
