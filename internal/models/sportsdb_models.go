package models

import "encoding/json"

// TheSportsDB returns every field as a string or null, including ids and scores.

type LeaguesResponse struct {
	Leagues []LeagueRecord `json:"leagues"`
}

type TeamsResponse struct {
	Teams []TeamRecord `json:"teams"`
}

// PlayersResponse covers both searchplayers.php ("player") and
// lookupplayer.php ("players").
type PlayersResponse struct {
	Player  []PlayerRecord `json:"player"`
	Players []PlayerRecord `json:"players"`
}

type EventsResponse struct {
	Events []EventRecord `json:"events"`
}

// SearchEventsResponse is the searchevents.php envelope, keyed by the singular noun.
type SearchEventsResponse struct {
	Event []EventRecord `json:"event"`
}

type LeagueRecord struct {
	ID            string `json:"idLeague"`
	Name          string `json:"strLeague"`
	Sport         string `json:"strSport"`
	Country       string `json:"strCountry"`
	CurrentSeason string `json:"strCurrentSeason"`
	Badge         string `json:"strBadge"`
	DescriptionEN string `json:"strDescriptionEN"`
}

type TeamRecord struct {
	ID            string `json:"idTeam"`
	Name          string `json:"strTeam"`
	League        string `json:"strLeague"`
	LeagueID      string `json:"idLeague"`
	Country       string `json:"strCountry"`
	Badge         string `json:"strBadge"`
	TeamBadge     string `json:"strTeamBadge"`
	DescriptionEN string `json:"strDescriptionEN"`
}

type PlayerRecord struct {
	ID            string `json:"idPlayer"`
	Name          string `json:"strPlayer"`
	Team          string `json:"strTeam"`
	TeamID        string `json:"idTeam"`
	Position      string `json:"strPosition"`
	Number        string `json:"strNumber"`
	Nationality   string `json:"strNationality"`
	DateBorn      string `json:"dateBorn"`
	DescriptionEN string `json:"strDescriptionEN"`
	Thumb         string `json:"strThumb"`
}

type EventRecord struct {
	ID         string      `json:"idEvent"`
	Title      string      `json:"strEvent"`
	Sport      string      `json:"strSport"`
	LeagueID   string      `json:"idLeague"`
	League     string      `json:"strLeague"`
	Season     string      `json:"strSeason"`
	HomeTeam   string      `json:"strHomeTeam"`
	AwayTeam   string      `json:"strAwayTeam"`
	HomeTeamID string      `json:"idHomeTeam"`
	AwayTeamID string      `json:"idAwayTeam"`
	HomeScore  ScoreString `json:"intHomeScore"`
	AwayScore  ScoreString `json:"intAwayScore"`
	HomePlayer string      `json:"strHomePlayer"`
	AwayPlayer string      `json:"strAwayPlayer"`
	Status     string      `json:"strStatus"`
	Date       string      `json:"dateEvent"`
	Time       string      `json:"strTime"`
	Venue      string      `json:"strVenue"`
	Thumb      string      `json:"strThumb"`
}

// ScoreString accepts "2", 2 or null.
type ScoreString struct {
	Value string
	Valid bool
}

func (s *ScoreString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ScoreString{}
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = ScoreString{Value: str, Valid: str != ""}
		return nil
	}

	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = ScoreString{Value: num.String(), Valid: true}
	return nil
}

func (s ScoreString) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

type ProductsResponse struct {
	Products []ProductRecord `json:"products"`
}

type ProductRecord struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Thumbnail   string `json:"thumbnail"`
	Category    string `json:"category"`
}
