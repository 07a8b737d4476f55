package service

import (
	"fmt"
	"strings"

	"github.com/omarshaarawi/sportify/internal/models"
	"github.com/omarshaarawi/sportify/internal/theme"
)

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// escape guards user and API text for Telegram's legacy Markdown.
func escape(s string) string {
	return markdownEscaper.Replace(s)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func shortTime(t string) string {
	if len(t) >= 5 {
		return t[:5]
	}
	return t
}

func statusLabel(ev models.Event, p theme.Palette) string {
	status := ev.Status
	if status == "" {
		status = "Upcoming"
	}
	switch {
	case ev.IsLive():
		return fmt.Sprintf("%s %s", p.Live, escape(status))
	case ev.IsFinished():
		return fmt.Sprintf("%s %s", p.Finished, escape(status))
	case ev.IsUpcoming():
		return fmt.Sprintf("%s %s", p.Upcoming, escape(status))
	default:
		return escape(status)
	}
}

func card(ev models.Event, p theme.Palette, favorite bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("*%s*", escape(ev.Title)))
	if favorite {
		sb.WriteString(" " + p.Favorite)
	}
	sb.WriteString("\n")

	if ev.Sport != "" || ev.League != "" {
		sb.WriteString(fmt.Sprintf("🏳 %s • %s\n", escape(ev.Sport), escape(ev.League)))
	}
	if ev.HasScore() {
		sb.WriteString(fmt.Sprintf("%d - %d\n", *ev.HomeScore, *ev.AwayScore))
	}
	if ev.HomePlayer != "" || ev.AwayPlayer != "" {
		sb.WriteString(fmt.Sprintf("Players: %s vs %s\n", escape(ev.HomePlayer), escape(ev.AwayPlayer)))
	}

	date := ev.Date
	if date == "" {
		date = "TBD"
	}
	sb.WriteString(fmt.Sprintf("📆 %s • %s\n", escape(date), statusLabel(ev, p)))
	return sb.String()
}

func field(sb *strings.Builder, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	sb.WriteString(fmt.Sprintf("%s: %s\n", label, escape(value)))
}
