package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/sportify/internal/auth"
	"github.com/omarshaarawi/sportify/internal/debounce"
	"github.com/omarshaarawi/sportify/internal/models"
)

type requester interface {
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type matcher interface {
	Matches(ctx context.Context, query string) []models.Event
}

// InlineSearch answers inline queries once a user stops typing. Superseded
// queries are never answered.
type InlineSearch struct {
	api       requester
	sports    matcher
	sessions  *auth.Sessions
	debouncer *debounce.Debouncer
}

func NewInlineSearch(api requester, sports matcher, sessions *auth.Sessions, debouncer *debounce.Debouncer) *InlineSearch {
	return &InlineSearch{api: api, sports: sports, sessions: sessions, debouncer: debouncer}
}

func (s *InlineSearch) Handle(ctx context.Context, query *tgbotapi.InlineQuery) {
	if query.From == nil {
		return
	}
	if !s.sessions.Get(query.From.ID).Authenticated {
		s.answer(tgbotapi.InlineConfig{
			InlineQueryID:     query.ID,
			Results:           []interface{}{},
			IsPersonal:        true,
			SwitchPMText:      "Log in to search events",
			SwitchPMParameter: "login",
		})
		return
	}

	id, text := query.ID, query.Query
	s.debouncer.Schedule(strconv.FormatInt(query.From.ID, 10), func() {
		s.answer(tgbotapi.InlineConfig{
			InlineQueryID: id,
			Results:       articles(s.sports.Matches(ctx, text)),
			IsPersonal:    true,
		})
	})
}

func (s *InlineSearch) Stop() {
	s.debouncer.Stop()
}

func (s *InlineSearch) answer(cfg tgbotapi.InlineConfig) {
	if _, err := s.api.Request(cfg); err != nil {
		slog.Error("Error answering inline query", "error", err)
	}
}

func articles(list []models.Event) []interface{} {
	results := make([]interface{}, 0, len(list))
	seen := make(map[string]bool, len(list))
	for _, ev := range list {
		if ev.ID == "" || seen[ev.ID] {
			continue
		}
		seen[ev.ID] = true

		body := fmt.Sprintf("%s\n📆 %s %s", ev.Title, ev.Date, shortClock(ev.Time))
		article := tgbotapi.NewInlineQueryResultArticle(ev.ID, ev.Title, body)
		article.Description = fmt.Sprintf("%s • %s", ev.League, statusOrUpcoming(ev.Status))
		results = append(results, article)
	}
	return results
}

func shortClock(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}

func statusOrUpcoming(status string) string {
	if status == "" {
		return "Upcoming"
	}
	return status
}
