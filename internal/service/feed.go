package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/omarshaarawi/sportify/internal/api/sportsdb"
	"github.com/omarshaarawi/sportify/internal/models"
	"github.com/omarshaarawi/sportify/internal/navigation"
)

const emptyFeed = "📭 No events found"

// Feed renders the league's events around today. An unreachable API and an
// empty league look the same to the user; the difference is only logged.
func (s *SportsService) Feed(ctx context.Context, owner, leagueID string) View {
	if leagueID == "" {
		leagueID = s.defaultLeague
	}

	res := s.resolver.Resolve(ctx, leagueID)
	if res.Outcome == sportsdb.Failed {
		slog.Warn("Event feed unavailable", "league", leagueID, "source", res.Source.String())
	}
	if len(res.Events) == 0 {
		return View{Text: emptyFeed}
	}

	list := upcomingWindow(res.Events, s.clock.Now(), maxFeedEvents)
	title := "🏟 *All Matches*"
	if res.Season != "" {
		title = fmt.Sprintf("🏟 *All Matches* (%s)", escape(res.Season))
	}
	return s.eventList(ctx, owner, title, list)
}

// Search falls back to the default feed for queries shorter than three characters.
func (s *SportsService) Search(ctx context.Context, owner, query string) View {
	q := strings.TrimSpace(query)
	if len(q) < minQueryLen {
		return s.Feed(ctx, owner, s.defaultLeague)
	}

	results := s.SearchEvents(ctx, q)
	if len(results) == 0 {
		return View{Text: fmt.Sprintf("🔍 No events found matching '%s'.", escape(q))}
	}
	if len(results) > maxFeedEvents {
		results = results[:maxFeedEvents]
	}
	return s.eventList(ctx, owner, fmt.Sprintf("🔍 *Results for* '%s'", escape(q)), results)
}

// SearchEvents returns raw matches for the inline search. Errors yield no results.
func (s *SportsService) SearchEvents(ctx context.Context, query string) []models.Event {
	results, err := s.directory.SearchEvents(ctx, query)
	if err != nil {
		if sportsdb.OutcomeOf(err) == sportsdb.Failed {
			slog.Error("Search error", "query", query, "error", err)
		}
		return nil
	}
	return results
}

// Matches backs inline search: short queries get the default league window.
func (s *SportsService) Matches(ctx context.Context, query string) []models.Event {
	q := strings.TrimSpace(query)
	if len(q) < minQueryLen {
		return upcomingWindow(s.resolver.ResolveEvents(ctx, s.defaultLeague), s.clock.Now(), maxFeedEvents)
	}
	results := s.SearchEvents(ctx, q)
	if len(results) > maxFeedEvents {
		results = results[:maxFeedEvents]
	}
	return results
}

// Digest lists default-league events scheduled today or tomorrow. It reports
// false when there is nothing to send.
func (s *SportsService) Digest(ctx context.Context) (string, bool) {
	now := s.clock.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dayAfter := today.AddDate(0, 0, 2)

	var upcoming []models.Event
	for _, ev := range s.resolver.ResolveEvents(ctx, s.defaultLeague) {
		at, ok := ev.Scheduled()
		if ok && !at.Before(today) && at.Before(dayAfter) {
			upcoming = append(upcoming, ev)
		}
	}
	if len(upcoming) == 0 {
		return "", false
	}

	var sb strings.Builder
	sb.WriteString("📅 *Today & Tomorrow*\n\n")
	for _, ev := range upcoming {
		sb.WriteString(fmt.Sprintf("• *%s*", escape(ev.Title)))
		if ev.Time != "" {
			sb.WriteString(fmt.Sprintf(" %s", escape(shortTime(ev.Time))))
		}
		sb.WriteString(fmt.Sprintf(" (%s)\n", escape(ev.Date)))
	}
	return sb.String(), true
}

func (s *SportsService) eventList(ctx context.Context, owner, title string, list []models.Event) View {
	p := s.palette(ctx, owner)

	var sb strings.Builder
	sb.WriteString(title + "\n\n")

	var buttons [][]Button
	for _, ev := range list {
		fav := s.favorites.Contains(ctx, owner, ev.ID)
		sb.WriteString(card(ev, p, fav))
		sb.WriteString("\n")

		heart := "🤍"
		if fav {
			heart = p.Favorite
		}
		buttons = append(buttons, []Button{
			{Label: truncate(ev.Title, 40), Route: navigation.ToDetails(ev.ID)},
			{Label: heart, Route: navigation.ToToggle(ev.ID)},
		})
	}
	return View{Text: sb.String(), Buttons: buttons}
}
