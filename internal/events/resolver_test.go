package events

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/omarshaarawi/sportify/internal/api/sportsdb"
	"github.com/omarshaarawi/sportify/internal/config"
	"github.com/omarshaarawi/sportify/internal/models"
	"github.com/smartystreets/goconvey/convey"
)

type stubDirectory struct {
	mu sync.Mutex

	league    models.League
	leagueErr error
	season    []models.Event
	seasonErr error
	past      []models.Event
	pastErr   error
	next      []models.Event
	nextErr   error

	seasonCalls int
	seasonArgs  [2]string
}

func (s *stubDirectory) LookupLeague(_ context.Context, leagueID string) (models.League, error) {
	return s.league, s.leagueErr
}

func (s *stubDirectory) SeasonEvents(_ context.Context, leagueID, season string) ([]models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seasonCalls++
	s.seasonArgs = [2]string{leagueID, season}
	return clone(s.season), s.seasonErr
}

func (s *stubDirectory) NextLeagueEvents(_ context.Context, _ string) ([]models.Event, error) {
	return clone(s.next), s.nextErr
}

func (s *stubDirectory) PastLeagueEvents(_ context.Context, _ string) ([]models.Event, error) {
	return clone(s.past), s.pastErr
}

func clone(events []models.Event) []models.Event {
	if events == nil {
		return nil
	}
	return append([]models.Event(nil), events...)
}

func ev(id, date string) models.Event {
	return models.Event{ID: id, Date: date}
}

func ids(events []models.Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.ID
	}
	return out
}

var (
	networkErr  = fmt.Errorf("fetching: %w", sportsdb.ErrNetwork)
	parseErr    = fmt.Errorf("fetching: %w", sportsdb.ErrParse)
	notFoundErr = fmt.Errorf("league: %w", sportsdb.ErrNotFound)
)

func TestResolver(t *testing.T) {
	convey.Convey("Given an event resolver", t, func() {
		ctx := context.Background()
		dir := &stubDirectory{}
		r := NewResolver(dir, nil)

		convey.Convey("When the league has a current season with events", func() {
			dir.league = models.League{ID: "4328", CurrentSeason: "2023-2024"}
			dir.season = []models.Event{ev("2", "2024-03-02"), ev("1", "2024-03-01")}
			dir.past = []models.Event{ev("9", "2024-01-01")}

			res := r.Resolve(ctx, "4328")

			convey.Convey("Then the season events are returned sorted by date", func() {
				convey.So(ids(res.Events), convey.ShouldResemble, []string{"1", "2"})
				convey.So(res.Source, convey.ShouldEqual, SourceSeason)
				convey.So(res.Outcome, convey.ShouldEqual, sportsdb.Found)
				convey.So(dir.seasonArgs, convey.ShouldResemble, [2]string{"4328", "2023-2024"})
			})
		})

		convey.Convey("When the season has no events", func() {
			dir.league = models.League{CurrentSeason: "2023-2024"}
			dir.seasonErr = fmt.Errorf("eventsseason: %w", sportsdb.ErrNotFound)
			dir.past = []models.Event{ev("3", "2024-02-10"), ev("1", "2024-02-01")}
			dir.next = []models.Event{ev("4", "2024-02-20"), ev("2", "2024-02-05")}

			res := r.Resolve(ctx, "4328")

			convey.Convey("Then past and upcoming events are merged and sorted", func() {
				convey.So(ids(res.Events), convey.ShouldResemble, []string{"1", "2", "3", "4"})
				convey.So(res.Source, convey.ShouldEqual, SourceFallback)
				convey.So(res.Outcome, convey.ShouldEqual, sportsdb.Found)
			})
		})

		convey.Convey("When the league lookup fails", func() {
			dir.leagueErr = parseErr
			dir.next = []models.Event{ev("5", "2024-05-01")}

			res := r.Resolve(ctx, "4328")

			convey.Convey("Then the season step is skipped and fallback is used", func() {
				convey.So(dir.seasonCalls, convey.ShouldEqual, 0)
				convey.So(ids(res.Events), convey.ShouldResemble, []string{"5"})
			})
		})

		convey.Convey("When the league has no current season", func() {
			dir.league = models.League{ID: "4328"}
			dir.past = []models.Event{ev("1", "2024-01-01")}

			res := r.Resolve(ctx, "4328")

			convey.Convey("Then fallback events are used", func() {
				convey.So(dir.seasonCalls, convey.ShouldEqual, 0)
				convey.So(ids(res.Events), convey.ShouldResemble, []string{"1"})
			})
		})

		convey.Convey("When the season request fails on the network", func() {
			dir.league = models.League{CurrentSeason: "2023-2024"}
			dir.seasonErr = networkErr
			dir.past = []models.Event{ev("1", "2024-01-01")}

			res := r.Resolve(ctx, "4328")

			convey.Convey("Then the error is swallowed and fallback is used", func() {
				convey.So(ids(res.Events), convey.ShouldResemble, []string{"1"})
				convey.So(res.Source, convey.ShouldEqual, SourceFallback)
			})
		})

		convey.Convey("When the same event appears in both halves", func() {
			dir.leagueErr = notFoundErr
			dir.past = []models.Event{ev("7", "2024-03-01")}
			dir.next = []models.Event{ev("7", "2024-03-01")}

			res := r.Resolve(ctx, "4328")

			convey.Convey("Then both copies are kept", func() {
				convey.So(ids(res.Events), convey.ShouldResemble, []string{"7", "7"})
			})
		})

		convey.Convey("When one half cannot be parsed", func() {
			dir.leagueErr = notFoundErr
			dir.pastErr = parseErr
			dir.next = []models.Event{ev("8", "2024-06-01")}

			res := r.Resolve(ctx, "4328")

			convey.Convey("Then the other half is still returned", func() {
				convey.So(ids(res.Events), convey.ShouldResemble, []string{"8"})
				convey.So(res.Outcome, convey.ShouldEqual, sportsdb.Found)
			})
		})

		convey.Convey("When both halves parse but are empty", func() {
			dir.leagueErr = notFoundErr
			dir.pastErr = notFoundErr
			dir.nextErr = notFoundErr

			res := r.Resolve(ctx, "4328")

			convey.Convey("Then the result is empty, not failed", func() {
				convey.So(res.Events, convey.ShouldBeEmpty)
				convey.So(res.Outcome, convey.ShouldEqual, sportsdb.Empty)
			})
		})

		convey.Convey("When a fallback request fails on the network", func() {
			dir.leagueErr = networkErr
			dir.past = []models.Event{ev("1", "2024-01-01")}
			dir.nextErr = networkErr

			res := r.Resolve(ctx, "4328")

			convey.Convey("Then an empty list is returned and marked failed", func() {
				convey.So(res.Events, convey.ShouldNotBeNil)
				convey.So(res.Events, convey.ShouldBeEmpty)
				convey.So(res.Outcome, convey.ShouldEqual, sportsdb.Failed)
				convey.So(r.ResolveEvents(ctx, "4328"), convey.ShouldBeEmpty)
			})
		})

		convey.Convey("When the directory is not configured", func() {
			dir.leagueErr = sportsdb.ErrNotConfigured
			dir.pastErr = sportsdb.ErrNotConfigured
			dir.nextErr = sportsdb.ErrNotConfigured

			res := r.Resolve(ctx, "4328")

			convey.Convey("Then nothing is returned", func() {
				convey.So(res.Events, convey.ShouldBeEmpty)
				convey.So(res.Outcome, convey.ShouldEqual, sportsdb.Failed)
			})
		})
	})
}

func TestFallbackSurvivesServerErrorOnOneHalf(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/lookupleague.php":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"leagues":null}`))
		case "/eventspastleague.php":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"events":[{"idEvent":"1","dateEvent":"2024-01-01"}]}`))
		default:
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte("<html>oops</html>"))
		}
	}))
	defer srv.Close()

	api := sportsdb.NewAPI(sportsdb.NewClient(config.SportsAPI{BaseURL: srv.URL}, nil))
	res := NewResolver(api, nil).Resolve(context.Background(), "4328")

	if got := ids(res.Events); len(got) != 1 || got[0] != "1" {
		t.Fatalf("expected the past half to survive, got %v", got)
	}
	if res.Outcome != sportsdb.Found || res.Source != SourceFallback {
		t.Errorf("expected found fallback, got %v/%v", res.Outcome, res.Source)
	}
}

func TestSortByDateIgnoresKickoffTime(t *testing.T) {
	events := []models.Event{
		{ID: "evening", Date: "2024-03-01", Time: "19:00:00"},
		{ID: "morning", Date: "2024-03-01", Time: "10:00:00"},
		{ID: "earlier-day", Date: "2024-02-29", Time: "21:00:00"},
	}

	SortByDate(events)

	want := []string{"earlier-day", "evening", "morning"}
	got := ids(events)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSortByDateUndatedLast(t *testing.T) {
	events := []models.Event{
		ev("bad", "not-a-date"),
		ev("late", "2024-03-05"),
		ev("missing", ""),
		{ID: "early-evening", Date: "2024-03-01", Time: "19:00:00"},
		ev("early", "2024-03-01"),
	}

	SortByDate(events)

	want := []string{"early-evening", "early", "late", "bad", "missing"}
	got := ids(events)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
