package sources

import (
	"context"
	"fmt"
	"net/url"

	"newsdesk/internal/core"
	"newsdesk/internal/fetch"
)

const (
	sportsScoresBaseURL   = "https://api.sportsdata.example.com/v1/scores"
	sportsScheduleBaseURL = "https://api.gameday.example.com/v2/events"
)

// SportsScores adapts the live-scores provider.
type SportsScores struct {
	client *fetch.Client
	opts   fetch.Options
	apiKey string
	base   string
}

// NewSportsScores creates the scores adapter.
func NewSportsScores(client *fetch.Client, opts fetch.Options, apiKey string) *SportsScores {
	return &SportsScores{client: client, opts: opts, apiKey: apiKey, base: sportsScoresBaseURL}
}

func (a *SportsScores) Name() string        { return "sports_scores" }
func (a *SportsScores) ContentType() string { return TypeSports }

type scoresResponse struct {
	Games []struct {
		ID        string `json:"id"`
		League    string `json:"league"`
		HomeTeam  string `json:"home_team"`
		AwayTeam  string `json:"away_team"`
		HomeScore int    `json:"home_score"`
		AwayScore int    `json:"away_score"`
		Status    string `json:"status"`
		StartTime string `json:"start_time"`
		Headline  string `json:"headline"`
	} `json:"games"`
}

// Fetch retrieves today's games across the tracked leagues.
func (a *SportsScores) Fetch(ctx context.Context) (Payload, error) {
	query := url.Values{}
	query.Set("key", a.apiKey)

	var resp scoresResponse
	if err := a.client.FetchJSON(ctx, a.base+"?"+query.Encode(), a.opts, &resp); err != nil {
		return Payload{}, err
	}

	var games []core.GameCandidate
	for _, game := range resp.Games {
		if game.HomeTeam == "" || game.AwayTeam == "" {
			continue
		}
		title := game.Headline
		if title == "" {
			title = fmt.Sprintf("%s at %s", game.AwayTeam, game.HomeTeam)
		}
		games = append(games, core.GameCandidate{
			ID:         gameID(game.ID, game.League, game.HomeTeam, game.AwayTeam),
			Title:      title,
			League:     game.League,
			HomeTeam:   game.HomeTeam,
			AwayTeam:   game.AwayTeam,
			HomeScore:  game.HomeScore,
			AwayScore:  game.AwayScore,
			Status:     game.Status,
			StartTime:  game.StartTime,
			SourceName: a.Name(),
		})
	}
	return Payload{Games: games}, nil
}

// SportsSchedule adapts the schedule/events provider.
type SportsSchedule struct {
	client *fetch.Client
	opts   fetch.Options
	apiKey string
	base   string
}

// NewSportsSchedule creates the schedule adapter.
func NewSportsSchedule(client *fetch.Client, opts fetch.Options, apiKey string) *SportsSchedule {
	return &SportsSchedule{client: client, opts: opts, apiKey: apiKey, base: sportsScheduleBaseURL}
}

func (a *SportsSchedule) Name() string        { return "sports_schedule" }
func (a *SportsSchedule) ContentType() string { return TypeSports }

type scheduleResponse struct {
	Events []struct {
		EventID     string `json:"event_id"`
		Sport       string `json:"sport"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Home        string `json:"home"`
		Away        string `json:"away"`
		Scheduled   string `json:"scheduled"`
	} `json:"events"`
}

// Fetch retrieves upcoming events; scheduled games carry no scores yet.
func (a *SportsSchedule) Fetch(ctx context.Context) (Payload, error) {
	query := url.Values{}
	query.Set("api_key", a.apiKey)
	query.Set("upcoming", "true")

	var resp scheduleResponse
	if err := a.client.FetchJSON(ctx, a.base+"?"+query.Encode(), a.opts, &resp); err != nil {
		return Payload{}, err
	}

	var games []core.GameCandidate
	for _, event := range resp.Events {
		if event.Home == "" || event.Away == "" {
			continue
		}
		title := event.Name
		if title == "" {
			title = fmt.Sprintf("%s at %s", event.Away, event.Home)
		}
		games = append(games, core.GameCandidate{
			ID:          gameID(event.EventID, event.Sport, event.Home, event.Away),
			Title:       title,
			Description: stripHTML(event.Description),
			League:      event.Sport,
			HomeTeam:    event.Home,
			AwayTeam:    event.Away,
			Status:      "scheduled",
			StartTime:   event.Scheduled,
			SourceName:  a.Name(),
		})
	}
	return Payload{Games: games}, nil
}

// gameID prefers the provider's event id, falling back to a matchup key.
func gameID(providerID, league, home, away string) string {
	if providerID != "" {
		return providerID
	}
	return fmt.Sprintf("%s:%s@%s", league, away, home)
}
