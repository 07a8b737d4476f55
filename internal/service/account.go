package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/omarshaarawi/sportify/internal/auth"
	"github.com/omarshaarawi/sportify/internal/navigation"
	"github.com/omarshaarawi/sportify/internal/theme"
)

func (s *SportsService) Favorites(ctx context.Context, owner string) View {
	list := s.favorites.List(ctx, owner)
	if len(list) == 0 {
		return View{Text: "🤍 No favorites yet. Tap the heart on any event to save it."}
	}
	return s.eventList(ctx, owner, fmt.Sprintf("%s *Favorites* (%d)", s.palette(ctx, owner).Favorite, len(list)), list)
}

// ToggleFavorite flips the event's favorite state and reports whether it is
// a favorite afterwards. A saved event is flipped from its stored copy, so
// removing never needs the API.
func (s *SportsService) ToggleFavorite(ctx context.Context, owner, eventID string) (bool, error) {
	ev, ok := s.favorites.Find(ctx, owner, eventID)
	if !ok {
		var err error
		ev, err = s.directory.LookupEvent(ctx, eventID)
		if err != nil {
			return false, fmt.Errorf("error fetching event: %w", err)
		}
	}
	return s.favorites.Toggle(ctx, owner, ev), nil
}

func (s *SportsService) AddFavorite(ctx context.Context, owner, eventID string) error {
	if s.favorites.Contains(ctx, owner, eventID) {
		return nil
	}
	ev, err := s.directory.LookupEvent(ctx, eventID)
	if err != nil {
		return fmt.Errorf("error fetching event: %w", err)
	}
	s.favorites.Add(ctx, owner, ev)
	return nil
}

// RemoveFavorite reports whether the event was a favorite.
func (s *SportsService) RemoveFavorite(ctx context.Context, owner, eventID string) bool {
	if !s.favorites.Contains(ctx, owner, eventID) {
		return false
	}
	s.favorites.Remove(ctx, owner, eventID)
	return true
}

func (s *SportsService) Profile(ctx context.Context, profile auth.Profile) View {
	mode := s.themes.Mode(ctx, profile.Username)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("👋 *%s*\n\n", escape(profile.FirstName)))
	field(&sb, "Username", profile.Username)
	field(&sb, "Email", profile.Email)
	sb.WriteString(fmt.Sprintf("Favorites: %d\n", s.favorites.Get(ctx, profile.Username).Len()))
	sb.WriteString(fmt.Sprintf("Theme: %s\n", mode))

	return View{
		Text: sb.String(),
		Buttons: [][]Button{{
			{Label: "🏟 Events", Route: navigation.ToHome()},
			{Label: s.palette(ctx, profile.Username).Favorite + " Favorites", Route: navigation.ToFavorites()},
		}},
	}
}

func (s *SportsService) ToggleTheme(ctx context.Context, owner string) View {
	mode := s.themes.Toggle(ctx, owner)
	icon := "☀️"
	if mode == theme.Dark {
		icon = "🌙"
	}
	return View{Text: fmt.Sprintf("%s Switched to %s theme.", icon, mode)}
}

func (s *SportsService) Items(ctx context.Context) View {
	items := s.catalog.FetchItems(ctx)
	if len(items) == 0 {
		return View{Text: "📭 No items available"}
	}

	var sb strings.Builder
	sb.WriteString("🛍 *Items*\n\n")
	for _, it := range items {
		sb.WriteString(fmt.Sprintf("• *%s* (%s)\n", escape(it.Title), escape(it.Status)))
		if it.Description != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", escape(truncate(it.Description, 120))))
		}
	}
	return View{Text: sb.String()}
}
