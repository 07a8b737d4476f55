package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/omarshaarawi/sportify/internal/config"
)

type stubDigest struct {
	text string
	ok   bool
}

func (s stubDigest) Digest(context.Context) (string, bool) { return s.text, s.ok }

func TestParseAt(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"08:00", false},
		{"23:59", false},
		{"8am", true},
		{"", true},
	}
	for _, tt := range tests {
		_, err := parseAt(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAt(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
	}
}

func TestSendDigest(t *testing.T) {
	var sent []string
	send := func(text string) error {
		sent = append(sent, text)
		return nil
	}

	s, err := NewScheduler(config.Digest{TZ: "UTC"}, stubDigest{text: "📅 *Today & Tomorrow*", ok: true}, send)
	if err != nil {
		t.Fatal(err)
	}
	s.sendDigest()

	s.sports = stubDigest{}
	s.sendDigest()

	if len(sent) != 1 || sent[0] != "📅 *Today & Tomorrow*" {
		t.Errorf("expected exactly one digest, got %v", sent)
	}

	s.sports = stubDigest{text: "x", ok: true}
	s.sendMessage = func(string) error { return errors.New("chat ID not set") }
	s.sendDigest()
}

func TestStartSchedulesDailyDigest(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 2, 6, 0, 0, 0, time.UTC))
	s, err := NewScheduler(
		config.Digest{Enabled: true, At: "08:00", TZ: "UTC"},
		stubDigest{},
		func(string) error { return nil },
		gocron.WithClock(clock),
	)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Start(); err != nil {
		t.Fatal(err)
	}
	defer s.Stop()

	jobs := s.s.Jobs()
	if len(jobs) != 1 {
		t.Fatalf("expected one job, got %d", len(jobs))
	}
	next, err := jobs[0].NextRun()
	if err != nil {
		t.Fatal(err)
	}
	if next.Hour() != 8 || next.Minute() != 0 {
		t.Errorf("expected the digest at 08:00, got %s", next)
	}
}

func TestStartRejectsBadTime(t *testing.T) {
	s, err := NewScheduler(config.Digest{Enabled: true, At: "noon", TZ: "Nowhere/Invalid"}, stubDigest{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Stop()

	if err := s.Start(); err == nil {
		t.Error("expected an invalid digest time to be rejected")
	}
}
