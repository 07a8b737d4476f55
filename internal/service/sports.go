package service

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/omarshaarawi/sportify/internal/events"
	"github.com/omarshaarawi/sportify/internal/favorites"
	"github.com/omarshaarawi/sportify/internal/models"
	"github.com/omarshaarawi/sportify/internal/navigation"
	"github.com/omarshaarawi/sportify/internal/theme"
)

const (
	maxFeedEvents = 10
	maxPlayers    = 8
	minQueryLen   = 3
)

type Directory interface {
	LookupLeague(ctx context.Context, leagueID string) (models.League, error)
	LookupTeam(ctx context.Context, teamID string) (models.Team, error)
	SearchTeams(ctx context.Context, name string) ([]models.Team, error)
	PlayersByTeam(ctx context.Context, teamName string) ([]models.Player, error)
	LookupPlayer(ctx context.Context, playerID string) (models.Player, error)
	SearchEvents(ctx context.Context, query string) ([]models.Event, error)
	LookupEvent(ctx context.Context, eventID string) (models.Event, error)
}

type Catalog interface {
	FetchItems(ctx context.Context) []models.Item
}

// View is a rendered screen: Markdown text plus rows of navigation buttons.
type View struct {
	Text    string
	Buttons [][]Button
}

type Button struct {
	Label string
	Route navigation.Route
}

type SportsService struct {
	directory     Directory
	resolver      *events.Resolver
	favorites     *favorites.Store
	themes        *theme.Preferences
	catalog       Catalog
	clock         clockwork.Clock
	defaultLeague string
}

type Options struct {
	Directory     Directory
	Resolver      *events.Resolver
	Favorites     *favorites.Store
	Themes        *theme.Preferences
	Catalog       Catalog
	Clock         clockwork.Clock
	DefaultLeague string
}

func NewSportsService(opts Options) *SportsService {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &SportsService{
		directory:     opts.Directory,
		resolver:      opts.Resolver,
		favorites:     opts.Favorites,
		themes:        opts.Themes,
		catalog:       opts.Catalog,
		clock:         clock,
		defaultLeague: opts.DefaultLeague,
	}
}

func (s *SportsService) DefaultLeague() string {
	return s.defaultLeague
}

func (s *SportsService) palette(ctx context.Context, owner string) theme.Palette {
	return theme.PaletteFor(s.themes.Mode(ctx, owner))
}

// upcomingWindow picks up to n events starting at the first one scheduled
// today or later. When everything is in the past the latest n are returned.
func upcomingWindow(list []models.Event, now time.Time, n int) []models.Event {
	if len(list) <= n {
		return list
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := len(list) - n
	for i, ev := range list {
		if at, ok := ev.Scheduled(); ok && !at.Before(today) {
			start = i
			break
		}
	}
	if start+n > len(list) {
		start = len(list) - n
	}
	return list[start : start+n]
}
