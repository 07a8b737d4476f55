// Package favorites keeps each user's favorite events.
//
// Set transitions are pure: Apply never mutates its input. Store owns the
// per-user sets and is the only place state changes.
package favorites

import "github.com/omarshaarawi/sportify/internal/models"

// Set is insertion ordered and unique by event id.
type Set struct {
	Items []models.Event `json:"items"`
}

type Action interface {
	apply(Set) Set
}

type Add struct {
	Event models.Event
}

type Remove struct {
	EventID string
}

// Toggle removes the event when present and adds it otherwise.
type Toggle struct {
	Event models.Event
}

func Apply(s Set, a Action) Set {
	return a.apply(s)
}

func (a Add) apply(s Set) Set {
	if s.Contains(a.Event.ID) {
		return s
	}
	items := make([]models.Event, len(s.Items), len(s.Items)+1)
	copy(items, s.Items)
	return Set{Items: append(items, a.Event)}
}

func (a Remove) apply(s Set) Set {
	if !s.Contains(a.EventID) {
		return s
	}
	items := make([]models.Event, 0, len(s.Items)-1)
	for _, ev := range s.Items {
		if ev.ID != a.EventID {
			items = append(items, ev)
		}
	}
	return Set{Items: items}
}

func (a Toggle) apply(s Set) Set {
	if s.Contains(a.Event.ID) {
		return Remove{EventID: a.Event.ID}.apply(s)
	}
	return Add{Event: a.Event}.apply(s)
}

// Find returns the stored copy of an event.
func (s Set) Find(eventID string) (models.Event, bool) {
	for _, ev := range s.Items {
		if ev.ID == eventID {
			return ev, true
		}
	}
	return models.Event{}, false
}

func (s Set) Contains(eventID string) bool {
	for _, ev := range s.Items {
		if ev.ID == eventID {
			return true
		}
	}
	return false
}

func (s Set) Len() int {
	return len(s.Items)
}
