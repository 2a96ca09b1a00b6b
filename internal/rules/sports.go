package rules

// Leagues tracked by the sports adapters, in display order.
var Leagues = []string{"NFL", "NBA", "MLB", "NHL", "MLS"}

// SeasonalBaseScores is the 12-month x 5-league base-score matrix. Each
// league's importance varies with the calendar: MLB peaks in October for the
// postseason, the NFL peaks January-February around the playoffs and Super
// Bowl. Index by [league][month] with month in 1..12.
var SeasonalBaseScores = map[string][13]int{
	//              Jan Feb Mar Apr May Jun Jul Aug Sep Oct Nov Dec
	"NFL": {0, 45, 50, 10, 10, 10, 5, 10, 20, 35, 35, 35, 40},
	"NBA": {0, 30, 30, 30, 35, 40, 45, 10, 5, 10, 25, 25, 30},
	"MLB": {0, 5, 10, 20, 25, 25, 25, 30, 30, 35, 45, 10, 5},
	"NHL": {0, 25, 25, 25, 35, 40, 45, 5, 5, 10, 20, 20, 25},
	"MLS": {0, 5, 10, 15, 15, 15, 20, 20, 20, 25, 30, 30, 15},
}

// SeasonalContexts labels each (league, month) phase of the season.
var SeasonalContexts = map[string][13]string{
	"NFL": {"", "playoffs", "super_bowl", "offseason", "draft_season", "offseason", "offseason", "training_camp", "preseason", "regular_season", "regular_season", "regular_season", "playoff_push"},
	"NBA": {"", "regular_season", "regular_season", "regular_season", "playoffs", "playoffs", "finals", "offseason", "offseason", "preseason", "season_start", "regular_season", "regular_season"},
	"MLB": {"", "offseason", "spring_training", "spring_training", "season_start", "regular_season", "regular_season", "regular_season", "pennant_race", "pennant_race", "postseason", "offseason", "offseason"},
	"NHL": {"", "regular_season", "regular_season", "regular_season", "playoffs", "playoffs", "stanley_cup", "offseason", "offseason", "preseason", "season_start", "regular_season", "regular_season"},
	"MLS": {"", "offseason", "preseason", "season_start", "regular_season", "regular_season", "regular_season", "regular_season", "regular_season", "playoff_push", "playoffs", "mls_cup", "offseason"},
}

// ChampionshipBoosts map postseason stakes to a single boost. Entries are
// ordered most specific first and only the first match applies, so
// "conference championship" scores its own entry rather than stacking with
// the broader "championship".
var ChampionshipBoosts = []KeywordWeight{
	{"super bowl", 50},
	{"world series", 40},
	{"finals", 35},
	{"conference championship", 30},
	{"championship", 30},
	{"division series", 25},
	{"playoff", 25},
	{"wild card", 20},
}

// StatusBoosts reward games a viewer can still act on.
var StatusBoosts = map[string]int{
	"live":  10,
	"final": 5,
}

// RivalryPairs enumerate matchups that carry weight regardless of standings.
// Pairs are unordered; the enhancer checks both directions.
var RivalryPairs = [][2]string{
	{"yankees", "red sox"},
	{"dodgers", "giants"},
	{"packers", "bears"},
	{"cowboys", "eagles"},
	{"lakers", "celtics"},
	{"michigan", "ohio state"},
	{"duke", "north carolina"},
	{"rangers", "islanders"},
	{"cubs", "cardinals"},
	{"steelers", "ravens"},
}

// RivalryBoost is added when a rivalry pair appears in a game.
const RivalryBoost = 15

// BlowoutMargin and BlowoutBoost flag lopsided results worth a mention.
const (
	BlowoutMargin = 20
	BlowoutBoost  = 10
)
