// Package rules holds the versioned editorial rule tables consumed by the
// enhancer. Everything here is data: the scoring functions in internal/enhance
// are pure functions over (text, table), so tuning a weight or adding a keyword
// never touches scoring logic.
package rules

import "newsdesk/internal/core"

// KeywordWeight pairs a lowercase keyword with its additive weight.
type KeywordWeight struct {
	Keyword string
	Weight  int
}

// KeywordRule is one weighted rule: it fires once when any of its keywords
// appears in the text, regardless of how many alternatives match.
type KeywordRule struct {
	Keywords []string
	Weight   int
}

// NewsKeywordRules is the fixed rule table applied to the lowercased
// title+description. Rules are independent, not mutually exclusive: every
// firing rule adds its weight once before the final clamp.
var NewsKeywordRules = []KeywordRule{
	{[]string{"election", "vote", "ballot"}, 20},
	{[]string{"economy", "recession", "inflation", "unemployment"}, 15},
	{[]string{"war", "conflict", "crisis", "attack"}, 15},
	{[]string{"supreme court", "constitutional"}, 12},
	{[]string{"federal reserve", "interest rate"}, 12},
	{[]string{"hurricane", "wildfire", "earthquake", "flood", "tornado"}, 10},
	{[]string{"president", "congress", "senate", "house"}, 8},
	{[]string{"market", "stock", "trading"}, 8},
	{[]string{"breaking", "urgent"}, 8},
	{[]string{"health", "pandemic"}, 7},
	{[]string{"ai", "artificial intelligence", "technology"}, 6},
	{[]string{"bill", "law", "policy", "regulation"}, 6},
	{[]string{"billion", "trillion"}, 5},
	{[]string{"investigation", "indictment", "lawsuit"}, 5},
	{[]string{"merger", "acquisition", "ipo"}, 4},
	{[]string{"developing", "live", "update"}, 4},
	{[]string{"earnings", "revenue", "profit"}, 3},
}

// SourceTier maps an outlet-name substring to its authority bonus.
type SourceTier struct {
	Match string
	Bonus int
}

// SourceTiers is evaluated top to bottom; the first matching substring of the
// lowercased source name wins. Wire services outrank national outlets, which
// outrank broadcast networks; everything else gets the base bonus.
var SourceTiers = []SourceTier{
	{"reuters", 10}, {"associated press", 10}, {"ap news", 10}, {"afp", 10}, {"bloomberg", 10},
	{"new york times", 8}, {"washington post", 8}, {"wall street journal", 8}, {"usa today", 8},
	{"cnn", 6}, {"nbc", 6}, {"abc", 6}, {"cbs", 6}, {"fox", 6}, {"npr", 6}, {"bbc", 6},
}

// DefaultSourceBonus applies when no tier matches.
const DefaultSourceBonus = 3

// CategoryGroup is an ordered keyword group for topic classification.
type CategoryGroup struct {
	Category core.TopicCategory
	Keywords []string
}

// CategoryGroups is evaluated in order; the first group with any keyword match
// wins. The order is a documented product decision (first match, not best
// match) and must not be reordered without an editorial sign-off.
var CategoryGroups = []CategoryGroup{
	{core.TopicPolitics, []string{
		"election", "vote", "ballot", "congress", "senate", "president",
		"white house", "governor", "legislation", "campaign", "political",
		"democrat", "republican", "supreme court",
	}},
	{core.TopicBusiness, []string{
		"economy", "market", "stock", "trading", "earnings", "revenue",
		"merger", "acquisition", "ipo", "federal reserve", "interest rate",
		"inflation", "recession", "unemployment", "ceo", "company",
	}},
	{core.TopicTechnology, []string{
		"technology", "tech", "ai", "artificial intelligence", "software",
		"startup", "cyber", "data breach", "semiconductor", "chip", "app",
	}},
	{core.TopicHealth, []string{
		"health", "hospital", "pandemic", "vaccine", "disease", "fda",
		"drug", "medical", "cdc", "outbreak",
	}},
	{core.TopicClimate, []string{
		"climate", "hurricane", "wildfire", "earthquake", "flood", "tornado",
		"drought", "heat wave", "emissions", "storm",
	}},
	{core.TopicSports, []string{
		"nfl", "nba", "mlb", "nhl", "playoff", "championship", "super bowl",
		"world series", "game", "touchdown",
	}},
	{core.TopicInternational, []string{
		"ukraine", "russia", "china", "israel", "gaza", "iran", "europe",
		"united nations", "nato", "global", "foreign",
	}},
}

// InternationalScopeKeywords marks a story as international when matched.
var InternationalScopeKeywords = []string{
	"ukraine", "russia", "china", "israel", "gaza", "iran", "india",
	"europe", "africa", "mexico", "canada", "japan", "korea",
	"united nations", "nato", "global", "worldwide", "international",
}

// StateScopeKeywords is a short list of major state and city names marking
// state-level scope.
var StateScopeKeywords = []string{
	"california", "texas", "florida", "new york city", "georgia",
	"pennsylvania", "ohio", "michigan", "arizona", "illinois",
	"los angeles", "chicago", "houston", "phoenix", "philadelphia",
}

// NationalScopeKeywords marks federal/government stories as national scope.
var NationalScopeKeywords = []string{
	"federal", "congress", "senate", "white house", "supreme court",
	"nationwide", "national", "washington",
}

// FrontPageOverrides force front_page regardless of importance score.
var FrontPageOverrides = []string{
	"breaking", "urgent", "live update", "declares war", "nuclear",
	"assassination", "mass shooting", "election results",
	"stock market crash", "hurricane landfall", "major earthquake",
	"landmark supreme court ruling",
}

// PageThreeOverrides force at least page_3 placement.
var PageThreeOverrides = []string{
	"congressional vote", "fed policy", "federal reserve decision",
	"major earnings", "investigation",
}

// GenerationalEventKeywords enumerate once-in-a-generation stories that may
// merit three presentation slots.
var GenerationalEventKeywords = []string{
	"declares war", "nuclear attack", "assassination", "presidential election results",
	"impeachment vote", "market crash", "pandemic declared", "constitutional crisis",
}

// TwoSpotKeywords merit two slots even below front_page scoring.
var TwoSpotKeywords = []string{
	"breaking", "federal reserve", "hurricane", "wildfire", "earthquake",
	"election certified",
}
