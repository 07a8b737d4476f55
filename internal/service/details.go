package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/sportify/internal/api/sportsdb"
	"github.com/omarshaarawi/sportify/internal/models"
	"github.com/omarshaarawi/sportify/internal/navigation"
)

func (s *SportsService) EventDetails(ctx context.Context, owner, eventID string) (View, error) {
	ev, err := s.directory.LookupEvent(ctx, eventID)
	if err != nil {
		return View{}, fmt.Errorf("error fetching event: %w", err)
	}

	// Squads are best effort; a missing side just renders no players.
	var homePlayers, awayPlayers []models.Player
	if ev.HomeTeam != "" && ev.AwayTeam != "" {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			homePlayers = s.playersByTeam(ctx, ev.HomeTeam)
		}()
		go func() {
			defer wg.Done()
			awayPlayers = s.playersByTeam(ctx, ev.AwayTeam)
		}()
		wg.Wait()
	}

	p := s.palette(ctx, owner)
	fav := s.favorites.Contains(ctx, owner, ev.ID)

	var sb strings.Builder
	sb.WriteString(card(ev, p, fav))
	sb.WriteString("\n")
	field(&sb, "🕒 Time", shortTime(ev.Time))
	field(&sb, "📍 Venue", ev.Venue)
	field(&sb, "🏆 League", ev.League)
	writeSquad(&sb, ev.HomeTeam, homePlayers)
	writeSquad(&sb, ev.AwayTeam, awayPlayers)

	label := "🤍 Add to favorites"
	if fav {
		label = p.Favorite + " Remove from favorites"
	}
	buttons := [][]Button{{{Label: label, Route: navigation.ToToggle(ev.ID)}}}

	var teams []Button
	if ev.HomeTeamID != "" {
		teams = append(teams, Button{Label: truncate(ev.HomeTeam, 30), Route: navigation.ToTeam(ev.HomeTeamID)})
	}
	if ev.AwayTeamID != "" {
		teams = append(teams, Button{Label: truncate(ev.AwayTeam, 30), Route: navigation.ToTeam(ev.AwayTeamID)})
	}
	if len(teams) > 0 {
		buttons = append(buttons, teams)
	}
	if ev.LeagueID != "" {
		buttons = append(buttons, []Button{{Label: "🏆 " + truncate(ev.League, 30), Route: navigation.ToLeague(ev.LeagueID)}})
	}
	buttons = append(buttons, playerButtons(homePlayers, awayPlayers)...)

	return View{Text: sb.String(), Buttons: buttons}, nil
}

func (s *SportsService) playersByTeam(ctx context.Context, teamName string) []models.Player {
	players, err := s.directory.PlayersByTeam(ctx, teamName)
	if err != nil && sportsdb.OutcomeOf(err) == sportsdb.Failed {
		slog.Error("Error loading players", "team", teamName, "error", err)
	}
	return players
}

func writeSquad(sb *strings.Builder, team string, players []models.Player) {
	if team == "" || len(players) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("\n*%s*\n", escape(team)))
	for i, pl := range players {
		if i == maxPlayers {
			sb.WriteString(fmt.Sprintf("  …and %d more\n", len(players)-maxPlayers))
			break
		}
		sb.WriteString(fmt.Sprintf("  • %s", escape(pl.Name)))
		if pl.Number != "" {
			sb.WriteString(fmt.Sprintf(" #%s", escape(pl.Number)))
		}
		if pl.Position != "" {
			sb.WriteString(fmt.Sprintf(" - %s", escape(pl.Position)))
		}
		sb.WriteString("\n")
	}
}

func playerButtons(squads ...[]models.Player) [][]Button {
	var rows [][]Button
	for _, players := range squads {
		var row []Button
		for i, pl := range players {
			if i == 3 || pl.ID == "" {
				break
			}
			row = append(row, Button{Label: truncate(pl.Name, 20), Route: navigation.ToPlayer(pl.ID)})
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}

func (s *SportsService) TeamDetails(ctx context.Context, teamID string) (View, error) {
	team, err := s.directory.LookupTeam(ctx, teamID)
	if err != nil {
		return View{}, fmt.Errorf("error fetching team: %w", err)
	}
	players := s.playersByTeam(ctx, team.Name)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🛡 *%s*\n", escape(team.Name)))
	field(&sb, "League", team.League)
	field(&sb, "Country", team.Country)
	if team.Description != "" {
		sb.WriteString("\n" + escape(truncate(team.Description, 600)) + "\n")
	}
	writeSquad(&sb, "Players", players)

	var buttons [][]Button
	if team.LeagueID != "" {
		buttons = append(buttons, []Button{{Label: "🏆 " + truncate(team.League, 30), Route: navigation.ToLeague(team.LeagueID)}})
	}
	buttons = append(buttons, playerButtons(players)...)
	return View{Text: sb.String(), Buttons: buttons}, nil
}

func (s *SportsService) LeagueDetails(ctx context.Context, leagueID string) (View, error) {
	league, err := s.directory.LookupLeague(ctx, leagueID)
	if err != nil {
		return View{}, fmt.Errorf("error fetching league: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🏆 *%s*\n", escape(league.Name)))
	field(&sb, "Sport", league.Sport)
	field(&sb, "Country", league.Country)
	field(&sb, "Current season", league.CurrentSeason)
	if league.Description != "" {
		sb.WriteString("\n" + escape(truncate(league.Description, 600)) + "\n")
	}
	sb.WriteString(fmt.Sprintf("\nUse /events %s to browse matches.", escape(league.ID)))
	return View{Text: sb.String()}, nil
}

func (s *SportsService) PlayerDetails(ctx context.Context, playerID string) (View, error) {
	player, err := s.directory.LookupPlayer(ctx, playerID)
	if err != nil {
		return View{}, fmt.Errorf("error fetching player: %w", err)
	}
	return renderPlayer(player), nil
}

func renderPlayer(player models.Player) View {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👤 *%s*", escape(player.Name)))
	if player.Number != "" {
		sb.WriteString(fmt.Sprintf(" #%s", escape(player.Number)))
	}
	sb.WriteString("\n")
	field(&sb, "Team", player.Team)
	field(&sb, "Position", player.Position)
	field(&sb, "Nationality", player.Nationality)
	field(&sb, "Born", player.BirthDate)
	if player.Description != "" {
		sb.WriteString("\n" + escape(truncate(player.Description, 600)) + "\n")
	}

	var buttons [][]Button
	if player.TeamID != "" {
		buttons = append(buttons, []Button{{Label: "🛡 " + truncate(player.Team, 30), Route: navigation.ToTeam(player.TeamID)}})
	}
	return View{Text: sb.String(), Buttons: buttons}
}

// FindPlayer looks a player up by approximate name within a team's squad.
func (s *SportsService) FindPlayer(ctx context.Context, teamName, playerName string) (View, error) {
	players, err := s.directory.PlayersByTeam(ctx, teamName)
	if err != nil {
		if sportsdb.OutcomeOf(err) == sportsdb.Empty {
			return View{Text: fmt.Sprintf("🔍 No players found for '%s'.", escape(teamName))}, nil
		}
		return View{}, fmt.Errorf("error fetching players: %w", err)
	}

	best, ok := bestPlayerMatch(players, playerName)
	if !ok {
		return View{Text: fmt.Sprintf("🔍 No player found matching '%s'.", escape(playerName))}, nil
	}
	return renderPlayer(best), nil
}

func bestPlayerMatch(players []models.Player, name string) (models.Player, bool) {
	names := make([]string, len(players))
	for i, pl := range players {
		names[i] = pl.Name
	}

	ranks := fuzzy.RankFindNormalizedFold(name, names)
	if len(ranks) == 0 {
		// fall back to edit distance for typos the subsequence match rejects
		return closestByDistance(players, name)
	}
	sort.Sort(ranks)
	return players[ranks[0].OriginalIndex], true
}

func closestByDistance(players []models.Player, name string) (models.Player, bool) {
	const threshold = 0.7

	var best models.Player
	bestSimilarity := 0.0
	for _, pl := range players {
		candidate := strings.ToLower(pl.Name)
		distance := fuzzy.LevenshteinDistance(strings.ToLower(name), candidate)
		maxLen := float64(max(len(name), len(candidate)))
		if maxLen == 0 {
			continue
		}
		similarity := 1 - float64(distance)/maxLen
		if similarity > threshold && similarity > bestSimilarity {
			bestSimilarity = similarity
			best = pl
		}
	}
	return best, bestSimilarity > 0
}

// Teams lists teams matching name, best fuzzy matches first.
func (s *SportsService) Teams(ctx context.Context, name string) View {
	teams, err := s.directory.SearchTeams(ctx, name)
	if err != nil {
		if sportsdb.OutcomeOf(err) == sportsdb.Failed {
			slog.Error("searchTeams error", "name", name, "error", err)
		}
		return View{Text: fmt.Sprintf("🔍 No teams found matching '%s'.", escape(name))}
	}

	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.Name
	}
	order := make([]int, 0, len(teams))
	ranks := fuzzy.RankFindNormalizedFold(name, names)
	sort.Sort(ranks)
	seen := make(map[int]bool, len(teams))
	for _, r := range ranks {
		order = append(order, r.OriginalIndex)
		seen[r.OriginalIndex] = true
	}
	for i := range teams {
		if !seen[i] {
			order = append(order, i)
		}
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🛡 *Teams matching* '%s'\n\n", escape(name)))
	var buttons [][]Button
	for _, i := range order {
		t := teams[i]
		sb.WriteString(fmt.Sprintf("• *%s* - %s, %s\n", escape(t.Name), escape(t.League), escape(t.Country)))
		buttons = append(buttons, []Button{{Label: truncate(t.Name, 40), Route: navigation.ToTeam(t.ID)}})
	}
	return View{Text: sb.String(), Buttons: buttons}
}
