package enhance

import (
	"strings"
	"time"

	"newsdesk/internal/core"
	"newsdesk/internal/rules"
)

// EnhanceGame fills the intelligence fields of a game candidate.
func (e *Enhancer) EnhanceGame(g core.GameCandidate) core.GameCandidate {
	month := e.gameMonth(g)

	g.SignificanceScore = e.ScoreGame(g, month)
	g.GameType = GameTypeOf(g, month)
	g.SeasonalContext = SeasonalContext(g.League, month)
	g.SportsSpots = e.sportsSpots(g)
	g.LocationRelevance = GeoRelevance(gameText(g))
	return g
}

// ScoreGame computes the significance score for a game in the given calendar
// month: seasonal base + the single most specific championship boost + status
// boost + rivalry boost + blowout boost, plus the documented October MLB and
// followed-team business rules, clamped [0,100].
func (e *Enhancer) ScoreGame(g core.GameCandidate, month time.Month) int {
	text := gameText(g)

	score := seasonalBase(g.League, month)

	for _, boost := range rules.ChampionshipBoosts {
		if strings.Contains(text, boost.Keyword) {
			score += boost.Weight
			break
		}
	}

	score += rules.StatusBoosts[strings.ToLower(g.Status)]

	if isRivalry(text) {
		score += rules.RivalryBoost
	}

	if margin(g) >= rules.BlowoutMargin {
		score += rules.BlowoutBoost
	}

	// Back-half-of-October MLB games are treated as probable World Series
	// games. Deliberate business rule, tunable via config.
	if strings.EqualFold(g.League, "MLB") && month == time.October && e.gameDay(g) > 15 {
		score += e.octoberMLBBoost
	}

	if e.followedTeam != "" && strings.Contains(text, e.followedTeam) {
		score += e.followedTeamBoost
	}

	return clamp(score, 0, 100)
}

// GameTypeOf classifies the game from its text and (league, month).
func GameTypeOf(g core.GameCandidate, month time.Month) core.GameType {
	text := gameText(g)

	for _, kw := range []string{"super bowl", "world series", "finals", "championship", "stanley cup", "mls cup"} {
		if strings.Contains(text, kw) {
			return core.GameChampionship
		}
	}
	for _, kw := range []string{"playoff", "division series", "wild card", "postseason"} {
		if strings.Contains(text, kw) {
			return core.GamePlayoff
		}
	}
	if isRivalry(text) {
		return core.GameRivalry
	}
	if ctx := SeasonalContext(g.League, month); ctx == "season_start" {
		return core.GameSeasonOpener
	}
	return core.GameRegular
}

// SeasonalContext returns the per-league, per-month phase label, or
// "offseason" for unknown leagues.
func SeasonalContext(league string, month time.Month) string {
	contexts, ok := rules.SeasonalContexts[strings.ToUpper(league)]
	if !ok || month < time.January || month > time.December {
		return "offseason"
	}
	return contexts[month]
}

// sportsSpots mirrors the news spot-allocation rule: 3 for a championship
// scoring >=85, 2 for any championship/playoff game, else 1.
func (e *Enhancer) sportsSpots(g core.GameCandidate) int {
	if g.GameType == core.GameChampionship && g.SignificanceScore >= 85 {
		return 3
	}
	if g.GameType == core.GameChampionship || g.GameType == core.GamePlayoff {
		return 2
	}
	return 1
}

func seasonalBase(league string, month time.Month) int {
	scores, ok := rules.SeasonalBaseScores[strings.ToUpper(league)]
	if !ok || month < time.January || month > time.December {
		return 0
	}
	return scores[month]
}

func isRivalry(text string) bool {
	for _, pair := range rules.RivalryPairs {
		if strings.Contains(text, pair[0]) && strings.Contains(text, pair[1]) {
			return true
		}
	}
	return false
}

func margin(g core.GameCandidate) int {
	m := g.HomeScore - g.AwayScore
	if m < 0 {
		m = -m
	}
	return m
}

func gameText(g core.GameCandidate) string {
	return strings.ToLower(strings.Join([]string{
		g.Title, g.Description, g.HomeTeam, g.AwayTeam, g.League,
	}, " "))
}

// gameMonth resolves the month used for seasonal lookups from the scheduled
// start time, falling back to the current clock.
func (e *Enhancer) gameMonth(g core.GameCandidate) time.Month {
	if g.StartTime != "" {
		if t, err := time.Parse(time.RFC3339, g.StartTime); err == nil {
			return t.Month()
		}
	}
	return e.now().Month()
}

// gameDay resolves the day of month, same fallback as gameMonth.
func (e *Enhancer) gameDay(g core.GameCandidate) int {
	if g.StartTime != "" {
		if t, err := time.Parse(time.RFC3339, g.StartTime); err == nil {
			return t.Day()
		}
	}
	return e.now().Day()
}
