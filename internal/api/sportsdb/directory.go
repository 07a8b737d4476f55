package sportsdb

import (
	"context"
	"fmt"
	"net/url"

	"github.com/omarshaarawi/sportify/internal/models"
)

type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) LookupLeague(ctx context.Context, leagueID string) (models.League, error) {
	var resp models.LeaguesResponse
	if err := a.client.Get(ctx, "lookupleague.php", url.Values{"id": {leagueID}}, &resp); err != nil {
		return models.League{}, fmt.Errorf("fetching league %s: %w", leagueID, err)
	}
	if len(resp.Leagues) == 0 {
		return models.League{}, fmt.Errorf("league %s: %w", leagueID, ErrNotFound)
	}
	return resp.Leagues[0].ToLeague(), nil
}

func (a *API) LookupTeam(ctx context.Context, teamID string) (models.Team, error) {
	var resp models.TeamsResponse
	if err := a.client.Get(ctx, "lookupteam.php", url.Values{"id": {teamID}}, &resp); err != nil {
		return models.Team{}, fmt.Errorf("fetching team %s: %w", teamID, err)
	}
	if len(resp.Teams) == 0 {
		return models.Team{}, fmt.Errorf("team %s: %w", teamID, ErrNotFound)
	}
	return resp.Teams[0].ToTeam(), nil
}

func (a *API) SearchTeams(ctx context.Context, name string) ([]models.Team, error) {
	var resp models.TeamsResponse
	if err := a.client.Get(ctx, "searchteams.php", url.Values{"t": {name}}, &resp); err != nil {
		return nil, fmt.Errorf("searching teams %q: %w", name, err)
	}
	if len(resp.Teams) == 0 {
		return nil, fmt.Errorf("teams matching %q: %w", name, ErrNotFound)
	}

	teams := make([]models.Team, len(resp.Teams))
	for i, t := range resp.Teams {
		teams[i] = t.ToTeam()
	}
	return teams, nil
}

func (a *API) PlayersByTeam(ctx context.Context, teamName string) ([]models.Player, error) {
	var resp models.PlayersResponse
	if err := a.client.Get(ctx, "searchplayers.php", url.Values{"t": {teamName}}, &resp); err != nil {
		return nil, fmt.Errorf("fetching players for %q: %w", teamName, err)
	}
	if len(resp.Player) == 0 {
		return nil, fmt.Errorf("players for %q: %w", teamName, ErrNotFound)
	}
	return toPlayers(resp.Player), nil
}

func (a *API) LookupPlayer(ctx context.Context, playerID string) (models.Player, error) {
	var resp models.PlayersResponse
	if err := a.client.Get(ctx, "lookupplayer.php", url.Values{"id": {playerID}}, &resp); err != nil {
		return models.Player{}, fmt.Errorf("fetching player %s: %w", playerID, err)
	}

	records := resp.Players
	if len(records) == 0 {
		records = resp.Player
	}
	if len(records) == 0 {
		return models.Player{}, fmt.Errorf("player %s: %w", playerID, ErrNotFound)
	}
	return records[0].ToPlayer(), nil
}

func (a *API) SearchEvents(ctx context.Context, query string) ([]models.Event, error) {
	var resp models.SearchEventsResponse
	if err := a.client.Get(ctx, "searchevents.php", url.Values{"e": {query}}, &resp); err != nil {
		return nil, fmt.Errorf("searching events %q: %w", query, err)
	}
	if len(resp.Event) == 0 {
		return nil, fmt.Errorf("events matching %q: %w", query, ErrNotFound)
	}
	return toEvents(resp.Event), nil
}

func (a *API) LookupEvent(ctx context.Context, eventID string) (models.Event, error) {
	events, err := a.events(ctx, "lookupevent.php", url.Values{"id": {eventID}})
	if err != nil {
		return models.Event{}, err
	}
	return events[0], nil
}

// SeasonEvents lists every event of a league season. The league id is sent
// alongside the season token since the token alone does not name a league.
func (a *API) SeasonEvents(ctx context.Context, leagueID, season string) ([]models.Event, error) {
	return a.events(ctx, "eventsseason.php", url.Values{"id": {leagueID}, "s": {season}})
}

func (a *API) NextLeagueEvents(ctx context.Context, leagueID string) ([]models.Event, error) {
	return a.events(ctx, "eventsnextleague.php", url.Values{"id": {leagueID}})
}

func (a *API) PastLeagueEvents(ctx context.Context, leagueID string) ([]models.Event, error) {
	return a.events(ctx, "eventspastleague.php", url.Values{"id": {leagueID}})
}

func (a *API) events(ctx context.Context, endpoint string, params url.Values) ([]models.Event, error) {
	var resp models.EventsResponse
	if err := a.client.Get(ctx, endpoint, params, &resp); err != nil {
		return nil, fmt.Errorf("fetching %s: %w", endpoint, err)
	}
	if len(resp.Events) == 0 {
		return nil, fmt.Errorf("%s: %w", endpoint, ErrNotFound)
	}
	return toEvents(resp.Events), nil
}

func toEvents(records []models.EventRecord) []models.Event {
	events := make([]models.Event, len(records))
	for i, r := range records {
		events[i] = r.ToEvent()
	}
	return events
}

func toPlayers(records []models.PlayerRecord) []models.Player {
	players := make([]models.Player, len(records))
	for i, r := range records {
		players[i] = r.ToPlayer()
	}
	return players
}
