package events

import (
	"sort"
	"time"

	"github.com/omarshaarawi/sportify/internal/models"
)

type datedEvent struct {
	event models.Event
	at    time.Time
	dated bool
}

// SortByDate orders events ascending by date alone; kickoff time is not a
// key. Events without a parseable date go last; ties keep their input order.
func SortByDate(events []models.Event) {
	dated := make([]datedEvent, len(events))
	for i, ev := range events {
		at, ok := ev.Day()
		dated[i] = datedEvent{event: ev, at: at, dated: ok}
	}

	sort.SliceStable(dated, func(i, j int) bool {
		if dated[i].dated != dated[j].dated {
			return dated[i].dated
		}
		return dated[i].at.Before(dated[j].at)
	})

	for i, d := range dated {
		events[i] = d.event
	}
}
