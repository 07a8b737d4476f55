package models

import (
	"strconv"
	"strings"
	"time"
)

type Event struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Sport      string `json:"sport"`
	LeagueID   string `json:"league_id"`
	League     string `json:"league"`
	HomeTeam   string `json:"home_team"`
	AwayTeam   string `json:"away_team"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	HomeScore  *int   `json:"home_score"`
	AwayScore  *int   `json:"away_score"`
	HomePlayer string `json:"home_player,omitempty"`
	AwayPlayer string `json:"away_player,omitempty"`
	Status     string `json:"status"`
	Date       string `json:"date"`
	Time       string `json:"time,omitempty"`
	Venue      string `json:"venue,omitempty"`
	Thumb      string `json:"thumb,omitempty"`
}

func (e Event) HasScore() bool {
	return e.HomeScore != nil && e.AwayScore != nil
}

var eventTimeLayouts = []string{"15:04:05Z07:00", "15:04:05", "15:04"}

// Day returns the event date at midnight UTC, ignoring the kickoff time.
func (e Event) Day() (time.Time, bool) {
	day, err := time.Parse(time.DateOnly, strings.TrimSpace(e.Date))
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}

// Scheduled returns the kickoff in UTC. A missing or malformed date reports
// false; an unparseable time falls back to midnight of the date.
func (e Event) Scheduled() (time.Time, bool) {
	day, ok := e.Day()
	if !ok {
		return time.Time{}, false
	}

	clock := strings.TrimSpace(e.Time)
	if clock == "" {
		return day, true
	}
	for _, layout := range eventTimeLayouts {
		if t, err := time.Parse(layout, clock); err == nil {
			t = t.UTC()
			return day.Add(time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second), true
		}
	}
	return day, true
}

func (e Event) IsLive() bool {
	switch normalizedStatus(e.Status) {
	case "live", "1h", "2h", "ht", "et", "p", "in progress", "in play":
		return true
	}
	return false
}

func (e Event) IsFinished() bool {
	switch normalizedStatus(e.Status) {
	case "ft", "aet", "pen", "finished", "match finished":
		return true
	}
	return false
}

func (e Event) IsUpcoming() bool {
	switch normalizedStatus(e.Status) {
	case "", "ns", "not started", "tbd", "time to be defined":
		return true
	}
	return false
}

func normalizedStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

type League struct {
	ID            string
	Name          string
	Sport         string
	Country       string
	CurrentSeason string
	Badge         string
	Description   string
}

type Team struct {
	ID          string
	Name        string
	League      string
	LeagueID    string
	Country     string
	Badge       string
	Description string
}

type Player struct {
	ID          string
	Name        string
	Team        string
	TeamID      string
	Position    string
	Number      string
	Nationality string
	BirthDate   string
	Description string
	Thumb       string
}

// Item is a product from the demo catalog API.
type Item struct {
	ID          int
	Title       string
	Description string
	Image       string
	Status      string
}

func (r EventRecord) ToEvent() Event {
	return Event{
		ID:         r.ID,
		Title:      r.Title,
		Sport:      r.Sport,
		LeagueID:   r.LeagueID,
		League:     r.League,
		HomeTeam:   r.HomeTeam,
		AwayTeam:   r.AwayTeam,
		HomeTeamID: r.HomeTeamID,
		AwayTeamID: r.AwayTeamID,
		HomeScore:  r.HomeScore.Int(),
		AwayScore:  r.AwayScore.Int(),
		HomePlayer: r.HomePlayer,
		AwayPlayer: r.AwayPlayer,
		Status:     r.Status,
		Date:       r.Date,
		Time:       r.Time,
		Venue:      r.Venue,
		Thumb:      r.Thumb,
	}
}

// Int returns nil when the score is absent or not a whole number.
func (s ScoreString) Int() *int {
	if !s.Valid {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s.Value))
	if err != nil {
		return nil
	}
	return &n
}

func (r LeagueRecord) ToLeague() League {
	return League{
		ID:            r.ID,
		Name:          r.Name,
		Sport:         r.Sport,
		Country:       r.Country,
		CurrentSeason: r.CurrentSeason,
		Badge:         r.Badge,
		Description:   r.DescriptionEN,
	}
}

func (r TeamRecord) ToTeam() Team {
	badge := r.Badge
	if badge == "" {
		badge = r.TeamBadge
	}
	return Team{
		ID:          r.ID,
		Name:        r.Name,
		League:      r.League,
		LeagueID:    r.LeagueID,
		Country:     r.Country,
		Badge:       badge,
		Description: r.DescriptionEN,
	}
}

func (r PlayerRecord) ToPlayer() Player {
	return Player{
		ID:          r.ID,
		Name:        r.Name,
		Team:        r.Team,
		TeamID:      r.TeamID,
		Position:    r.Position,
		Number:      r.Number,
		Nationality: r.Nationality,
		BirthDate:   r.DateBorn,
		Description: r.DescriptionEN,
		Thumb:       r.Thumb,
	}
}

func (r ProductRecord) ToItem() Item {
	status := r.Category
	if status == "" {
		status = "Active"
	}
	return Item{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		Image:       r.Thumbnail,
		Status:      status,
	}
}
