package enhance

import (
	"testing"
	"time"

	"newsdesk/internal/core"
)

func TestScoreGameSeasonalBase(t *testing.T) {
	e := testEnhancer()
	g := core.GameCandidate{
		Title:    "Jets at Browns",
		League:   "NFL",
		HomeTeam: "Browns",
		AwayTeam: "Jets",
		Status:   "scheduled",
	}

	// February NFL base is 50; no keyword, status, rivalry, or blowout boosts.
	if got := e.ScoreGame(g, time.February); got != 50 {
		t.Errorf("ScoreGame(Feb) = %d, want 50", got)
	}
	// July NFL base is 10.
	if got := e.ScoreGame(g, time.July); got != 10 {
		t.Errorf("ScoreGame(Jul) = %d, want 10", got)
	}
	// Unknown league scores only its boosts, here none.
	g.League = "XFL"
	if got := e.ScoreGame(g, time.February); got != 0 {
		t.Errorf("ScoreGame(unknown league) = %d, want 0", got)
	}
}

func TestEnhanceGameWorldSeries(t *testing.T) {
	e := testEnhancer()
	g := e.EnhanceGame(core.GameCandidate{
		Title:     "World Series Game 7",
		League:    "MLB",
		HomeTeam:  "Dodgers",
		AwayTeam:  "Yankees",
		Status:    "live",
		StartTime: "2025-10-20T19:00:00Z",
	})

	// October MLB base 35, "world series" 40, live 10, late-October MLB 15.
	if g.SignificanceScore != 100 {
		t.Errorf("SignificanceScore = %d, want 100", g.SignificanceScore)
	}
	if g.GameType != core.GameChampionship {
		t.Errorf("GameType = %s, want championship", g.GameType)
	}
	if g.SeasonalContext != "postseason" {
		t.Errorf("SeasonalContext = %s, want postseason", g.SeasonalContext)
	}
	if g.SportsSpots != 3 {
		t.Errorf("SportsSpots = %d, want 3", g.SportsSpots)
	}
}

func TestScoreGameConferenceChampionshipSingleBoost(t *testing.T) {
	e := testEnhancer()
	g := core.GameCandidate{
		Title:     "AFC Conference Championship",
		League:    "NFL",
		HomeTeam:  "Chiefs",
		AwayTeam:  "Bills",
		Status:    "scheduled",
		StartTime: "2025-01-26T20:00:00Z",
	}

	// January NFL base 45 plus one +30 boost. The text also contains the
	// broader "championship" keyword, which must not stack on top.
	if got := e.ScoreGame(g, time.January); got != 75 {
		t.Errorf("ScoreGame = %d, want 75", got)
	}
}

func TestScoreGameRivalryAndBlowout(t *testing.T) {
	e := testEnhancer()
	g := core.GameCandidate{
		Title:     "Packers at Bears",
		League:    "NFL",
		HomeTeam:  "Bears",
		AwayTeam:  "Packers",
		HomeScore: 7,
		AwayScore: 34,
		Status:    "final",
		StartTime: "2025-11-09T18:00:00Z",
	}

	// November NFL base 35, final 5, rivalry 15, 27-point blowout 10.
	if got := e.ScoreGame(g, time.November); got != 65 {
		t.Errorf("ScoreGame = %d, want 65", got)
	}

	enhanced := e.EnhanceGame(g)
	if enhanced.GameType != core.GameRivalry {
		t.Errorf("GameType = %s, want rivalry", enhanced.GameType)
	}
	if enhanced.SportsSpots != 1 {
		t.Errorf("SportsSpots = %d, want 1", enhanced.SportsSpots)
	}
}

func TestScoreGameLateOctoberMLB(t *testing.T) {
	e := testEnhancer()
	early := core.GameCandidate{
		Title:     "Mariners at Rays",
		League:    "MLB",
		HomeTeam:  "Rays",
		AwayTeam:  "Mariners",
		Status:    "scheduled",
		StartTime: "2025-10-10T19:00:00Z",
	}
	late := early
	late.StartTime = "2025-10-20T19:00:00Z"

	earlyScore := e.EnhanceGame(early).SignificanceScore
	lateScore := e.EnhanceGame(late).SignificanceScore
	if lateScore-earlyScore != 15 {
		t.Errorf("late-October boost = %d, want 15 (early=%d late=%d)",
			lateScore-earlyScore, earlyScore, lateScore)
	}
}

func TestScoreGameFollowedTeam(t *testing.T) {
	e := testEnhancer()
	g := core.GameCandidate{
		Title:     "Cardinals at Brewers",
		League:    "MLB",
		HomeTeam:  "Brewers",
		AwayTeam:  "Cardinals",
		Status:    "scheduled",
		StartTime: "2025-09-12T19:00:00Z",
	}

	// September MLB base 30 plus the followed-team boost of 10.
	if got := e.ScoreGame(g, time.September); got != 40 {
		t.Errorf("ScoreGame = %d, want 40", got)
	}

	// Without a followed team the boost disappears.
	plain := New(Options{Now: func() time.Time { return fixedNow }})
	if got := plain.ScoreGame(g, time.September); got != 30 {
		t.Errorf("ScoreGame(no followed team) = %d, want 30", got)
	}
}

func TestEnhanceGameSpotTiers(t *testing.T) {
	e := testEnhancer()

	// Championship type below the 85 threshold gets two spots.
	cup := e.EnhanceGame(core.GameCandidate{
		Title:     "MLS Cup rematch",
		League:    "MLS",
		HomeTeam:  "Crew",
		AwayTeam:  "Galaxy",
		Status:    "scheduled",
		StartTime: "2025-01-15T20:00:00Z",
	})
	if cup.GameType != core.GameChampionship || cup.SportsSpots != 2 {
		t.Errorf("cup = (%s, %d spots), want (championship, 2)", cup.GameType, cup.SportsSpots)
	}

	// Playoff games get two spots.
	wildCard := e.EnhanceGame(core.GameCandidate{
		Title:     "Wild card preview",
		League:    "NFL",
		HomeTeam:  "Texans",
		AwayTeam:  "Colts",
		Status:    "scheduled",
		StartTime: "2025-06-10T20:00:00Z",
	})
	if wildCard.GameType != core.GamePlayoff || wildCard.SportsSpots != 2 {
		t.Errorf("wild card = (%s, %d spots), want (playoff, 2)", wildCard.GameType, wildCard.SportsSpots)
	}
}

func TestSeasonalContext(t *testing.T) {
	if got := SeasonalContext("nfl", time.February); got != "super_bowl" {
		t.Errorf("SeasonalContext(nfl, Feb) = %s, want super_bowl", got)
	}
	if got := SeasonalContext("MLB", time.April); got != "season_start" {
		t.Errorf("SeasonalContext(MLB, Apr) = %s, want season_start", got)
	}
	if got := SeasonalContext("XFL", time.April); got != "offseason" {
		t.Errorf("SeasonalContext(unknown) = %s, want offseason", got)
	}
}
