// Package navigation describes moves between views as typed requests and
// carries them through Telegram callback data.
package navigation

import (
	"errors"
	"fmt"
	"strings"
)

// maxCallbackData is Telegram's limit on inline button payloads.
const maxCallbackData = 64

var ErrUnknownRoute = errors.New("unknown route")

type Name string

const (
	Home           Name = "Home"
	Favorites      Name = "Favorites"
	Details        Name = "Details"
	TeamDetails    Name = "TeamDetails"
	LeagueDetails  Name = "LeagueDetails"
	PlayerDetails  Name = "PlayerDetails"
	ToggleFavorite Name = "ToggleFavorite"
)

type Payload interface {
	id() string
}

type EventRef struct{ EventID string }
type TeamRef struct{ TeamID string }
type LeagueRef struct{ LeagueID string }
type PlayerRef struct{ PlayerID string }

func (r EventRef) id() string  { return r.EventID }
func (r TeamRef) id() string   { return r.TeamID }
func (r LeagueRef) id() string { return r.LeagueID }
func (r PlayerRef) id() string { return r.PlayerID }

type Route struct {
	Name    Name
	Payload Payload
}

func ToDetails(eventID string) Route { return Route{Name: Details, Payload: EventRef{EventID: eventID}} }
func ToTeam(teamID string) Route     { return Route{Name: TeamDetails, Payload: TeamRef{TeamID: teamID}} }
func ToLeague(leagueID string) Route { return Route{Name: LeagueDetails, Payload: LeagueRef{LeagueID: leagueID}} }
func ToPlayer(playerID string) Route { return Route{Name: PlayerDetails, Payload: PlayerRef{PlayerID: playerID}} }
func ToToggle(eventID string) Route  { return Route{Name: ToggleFavorite, Payload: EventRef{EventID: eventID}} }
func ToHome() Route                  { return Route{Name: Home} }
func ToFavorites() Route             { return Route{Name: Favorites} }

// payloadless routes
var bare = map[Name]bool{Home: true, Favorites: true}

var builders = map[Name]func(string) Route{
	Details:        ToDetails,
	TeamDetails:    ToTeam,
	LeagueDetails:  ToLeague,
	PlayerDetails:  ToPlayer,
	ToggleFavorite: ToToggle,
}

// Encode renders the route as callback data, "Name" or "Name:id".
func (r Route) Encode() (string, error) {
	var data string
	switch {
	case bare[r.Name]:
		data = string(r.Name)
	case builders[r.Name] != nil && r.Payload != nil && r.Payload.id() != "":
		data = fmt.Sprintf("%s:%s", r.Name, r.Payload.id())
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownRoute, r.Name)
	}
	if len(data) > maxCallbackData {
		return "", fmt.Errorf("route %s exceeds %d bytes", r.Name, maxCallbackData)
	}
	return data, nil
}

func Decode(data string) (Route, error) {
	name, id, hasID := strings.Cut(data, ":")
	if bare[Name(name)] && !hasID {
		return Route{Name: Name(name)}, nil
	}
	build, ok := builders[Name(name)]
	if !ok || strings.TrimSpace(id) == "" {
		return Route{}, fmt.Errorf("%w: %q", ErrUnknownRoute, data)
	}
	return build(id), nil
}
