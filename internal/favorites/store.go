package favorites

import (
	"context"
	"log/slog"
	"sync"

	"github.com/omarshaarawi/sportify/internal/models"
	"github.com/omarshaarawi/sportify/internal/repository"
)

const keyPrefix = "FAVORITES/"

type Store struct {
	mu   sync.Mutex
	sets map[string]Set
	// persist is optional; nil keeps favorites for the life of the process.
	persist repository.Store
}

func NewStore(persist repository.Store) *Store {
	return &Store{sets: make(map[string]Set), persist: persist}
}

func (s *Store) Dispatch(ctx context.Context, owner string, a Action) Set {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.load(ctx, owner)
	next := Apply(prev, a)
	s.sets[owner] = next

	if s.persist != nil && next.Len() != prev.Len() {
		if err := repository.SetJSON(ctx, s.persist, keyPrefix+owner, next); err != nil {
			slog.Error("Failed to persist favorites", "owner", owner, "error", err)
		}
	}
	return next
}

func (s *Store) Add(ctx context.Context, owner string, event models.Event) Set {
	return s.Dispatch(ctx, owner, Add{Event: event})
}

func (s *Store) Remove(ctx context.Context, owner, eventID string) Set {
	return s.Dispatch(ctx, owner, Remove{EventID: eventID})
}

// Toggle adds the event if absent, removes it otherwise, and reports whether
// it is a favorite afterwards. The flip happens under a single lock.
func (s *Store) Toggle(ctx context.Context, owner string, event models.Event) bool {
	return s.Dispatch(ctx, owner, Toggle{Event: event}).Contains(event.ID)
}

func (s *Store) Find(ctx context.Context, owner, eventID string) (models.Event, bool) {
	return s.Get(ctx, owner).Find(eventID)
}

func (s *Store) Contains(ctx context.Context, owner, eventID string) bool {
	return s.Get(ctx, owner).Contains(eventID)
}

func (s *Store) Get(ctx context.Context, owner string) Set {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, owner)
}

func (s *Store) List(ctx context.Context, owner string) []models.Event {
	return append([]models.Event(nil), s.Get(ctx, owner).Items...)
}

// load must be called with mu held.
func (s *Store) load(ctx context.Context, owner string) Set {
	if set, ok := s.sets[owner]; ok {
		return set
	}

	var set Set
	if s.persist != nil {
		if _, err := repository.GetJSON(ctx, s.persist, keyPrefix+owner, &set); err != nil {
			slog.Error("Failed to load favorites", "owner", owner, "error", err)
			set = Set{}
		}
	}
	s.sets[owner] = set
	return set
}
