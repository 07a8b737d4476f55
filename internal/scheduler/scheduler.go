package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/sportify/internal/config"
)

const digestTimeout = 30 * time.Second

type digester interface {
	Digest(ctx context.Context) (string, bool)
}

type Scheduler struct {
	s           gocron.Scheduler
	cfg         config.Digest
	sports      digester
	sendMessage func(string) error
}

func NewScheduler(cfg config.Digest, sports digester, sendMessage func(string) error, opts ...gocron.SchedulerOption) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.TZ)
	if err != nil {
		slog.Error("Failed to load location", "tz", cfg.TZ, "error", err)
		location = time.UTC
	}

	s, err := gocron.NewScheduler(append([]gocron.SchedulerOption{gocron.WithLocation(location)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		cfg:         cfg,
		sports:      sports,
		sendMessage: sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	if s.cfg.Enabled {
		at, err := parseAt(s.cfg.At)
		if err != nil {
			return err
		}

		// Daily digest of today's and tomorrow's matches
		_, err = s.s.NewJob(
			gocron.DailyJob(1, gocron.NewAtTimes(at)),
			gocron.NewTask(s.sendDigest),
		)
		if err != nil {
			return fmt.Errorf("failed to create digest job: %w", err)
		}
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendDigest() {
	ctx, cancel := context.WithTimeout(context.Background(), digestTimeout)
	defer cancel()

	digest, ok := s.sports.Digest(ctx)
	if !ok {
		slog.Info("No events for digest")
		return
	}
	if err := s.sendMessage(digest); err != nil {
		slog.Error("Failed to send digest", "error", err)
	}
}

func parseAt(at string) (gocron.AtTime, error) {
	t, err := time.Parse("15:04", at)
	if err != nil {
		return nil, fmt.Errorf("invalid digest time %q: %w", at, err)
	}
	return gocron.NewAtTime(uint(t.Hour()), uint(t.Minute()), 0), nil
}
