package events

import (
	"context"
	"errors"
	"log/slog"

	"github.com/omarshaarawi/sportify/internal/api/sportsdb"
	"github.com/omarshaarawi/sportify/internal/metrics"
	"github.com/omarshaarawi/sportify/internal/models"
	"golang.org/x/sync/errgroup"
)

type Directory interface {
	LookupLeague(ctx context.Context, leagueID string) (models.League, error)
	SeasonEvents(ctx context.Context, leagueID, season string) ([]models.Event, error)
	NextLeagueEvents(ctx context.Context, leagueID string) ([]models.Event, error)
	PastLeagueEvents(ctx context.Context, leagueID string) ([]models.Event, error)
}

type Source int

const (
	SourceNone Source = iota
	SourceSeason
	SourceFallback
)

func (s Source) String() string {
	switch s {
	case SourceSeason:
		return "season"
	case SourceFallback:
		return "fallback"
	default:
		return "none"
	}
}

type Result struct {
	Events  []models.Event
	Source  Source
	Season  string
	Outcome sportsdb.Outcome
}

type Resolver struct {
	directory Directory
	metrics   *metrics.Recorder
}

func NewResolver(directory Directory, rec *metrics.Recorder) *Resolver {
	return &Resolver{directory: directory, metrics: rec}
}

// ResolveEvents is Resolve without the bookkeeping: an empty list means
// nothing was found or nothing could be fetched.
func (r *Resolver) ResolveEvents(ctx context.Context, leagueID string) []models.Event {
	return r.Resolve(ctx, leagueID).Events
}

// Resolve returns the current season's events when there are any, otherwise
// the league's past and upcoming events. It never fails; Outcome tells an
// empty league apart from an unreachable API.
func (r *Resolver) Resolve(ctx context.Context, leagueID string) Result {
	res := r.resolve(ctx, leagueID)
	r.metrics.ObserveResolution(res.Source.String(), res.Outcome.String())
	return res
}

func (r *Resolver) resolve(ctx context.Context, leagueID string) Result {
	season := r.currentSeason(ctx, leagueID)

	if season != "" {
		events, err := r.directory.SeasonEvents(ctx, leagueID, season)
		if err != nil && !errors.Is(err, sportsdb.ErrNotFound) {
			slog.Error("Failed to fetch season events", "league", leagueID, "season", season, "error", err)
		}
		if len(events) > 0 {
			SortByDate(events)
			return Result{Events: events, Source: SourceSeason, Season: season, Outcome: sportsdb.Found}
		}
	}

	slog.Info("Falling back to next and past events", "league", leagueID)
	return r.fallback(ctx, leagueID, season)
}

func (r *Resolver) currentSeason(ctx context.Context, leagueID string) string {
	league, err := r.directory.LookupLeague(ctx, leagueID)
	if err != nil {
		if !errors.Is(err, sportsdb.ErrNotFound) {
			slog.Error("Failed to fetch league data", "league", leagueID, "error", err)
		}
		return ""
	}
	return league.CurrentSeason
}

func (r *Resolver) fallback(ctx context.Context, leagueID, season string) Result {
	var past, next []models.Event
	var pastErr, nextErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		past, pastErr = r.directory.PastLeagueEvents(gctx, leagueID)
		if sportsdb.IsUnreachable(pastErr) {
			return pastErr
		}
		return nil
	})
	g.Go(func() error {
		next, nextErr = r.directory.NextLeagueEvents(gctx, leagueID)
		if sportsdb.IsUnreachable(nextErr) {
			return nextErr
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Error("Fallback network failed", "league", leagueID, "error", err)
		return Result{Events: []models.Event{}, Source: SourceFallback, Season: season, Outcome: sportsdb.Failed}
	}

	for _, err := range []error{pastErr, nextErr} {
		if err != nil && !errors.Is(err, sportsdb.ErrNotFound) {
			slog.Error("Failed to parse fallback events", "league", leagueID, "error", err)
		}
	}

	merged := make([]models.Event, 0, len(past)+len(next))
	merged = append(merged, past...)
	merged = append(merged, next...)
	SortByDate(merged)

	outcome := sportsdb.Found
	if len(merged) == 0 {
		outcome = sportsdb.Empty
		if sportsdb.OutcomeOf(pastErr) == sportsdb.Failed || sportsdb.OutcomeOf(nextErr) == sportsdb.Failed {
			outcome = sportsdb.Failed
		}
	}

	return Result{Events: merged, Source: SourceFallback, Season: season, Outcome: outcome}
}
