package theme

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/omarshaarawi/sportify/internal/repository"
)

type Mode string

const (
	Light Mode = "light"
	Dark  Mode = "dark"
)

func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

func ParseMode(s string) Mode {
	if strings.EqualFold(strings.TrimSpace(s), string(Dark)) {
		return Dark
	}
	return Light
}

type Palette struct {
	Primary    string
	Background string
	Surface    string
	Text       string
	TextLight  string
	Border     string
	Error      string

	// Chat markers standing in for the status badge colors.
	Live     string
	Upcoming string
	Finished string
	Favorite string
}

var palettes = map[Mode]Palette{
	Light: {
		Primary:    "#007AFF",
		Background: "#F5F6FA",
		Surface:    "#FFF",
		Text:       "#222",
		TextLight:  "#888",
		Border:     "#E0E0E0",
		Error:      "#FF3B30",
		Live:       "🔴",
		Upcoming:   "🔵",
		Finished:   "⚪",
		Favorite:   "❤️",
	},
	Dark: {
		Primary:    "#1E90FF",
		Background: "#121212",
		Surface:    "#1E1E1E",
		Text:       "#E0E0E0",
		TextLight:  "#A9A9A9",
		Border:     "#333333",
		Error:      "#FF6347",
		Live:       "🟥",
		Upcoming:   "🟦",
		Finished:   "⬛",
		Favorite:   "🖤",
	},
}

func PaletteFor(m Mode) Palette {
	if p, ok := palettes[m]; ok {
		return p
	}
	return palettes[Light]
}

const keyPrefix = "THEME/"

// Preferences stores each user's mode. Users start in light mode.
type Preferences struct {
	mu    sync.Mutex
	modes map[string]Mode
	store repository.Store
}

func NewPreferences(store repository.Store) *Preferences {
	return &Preferences{modes: make(map[string]Mode), store: store}
}

func (p *Preferences) Mode(ctx context.Context, owner string) Mode {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.load(ctx, owner)
}

func (p *Preferences) Toggle(ctx context.Context, owner string) Mode {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := p.load(ctx, owner).Toggle()
	p.modes[owner] = next
	if p.store != nil {
		if err := p.store.Set(ctx, keyPrefix+owner, []byte(next)); err != nil {
			slog.Error("Failed to persist theme", "owner", owner, "error", err)
		}
	}
	return next
}

func (p *Preferences) load(ctx context.Context, owner string) Mode {
	if m, ok := p.modes[owner]; ok {
		return m
	}

	mode := Light
	if p.store != nil {
		data, ok, err := p.store.Get(ctx, keyPrefix+owner)
		if err != nil {
			slog.Error("Failed to load theme", "owner", owner, "error", err)
		} else if ok {
			mode = ParseMode(string(data))
		}
	}
	p.modes[owner] = mode
	return mode
}
