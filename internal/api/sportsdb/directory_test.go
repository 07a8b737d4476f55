package sportsdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/omarshaarawi/sportify/internal/config"
	"github.com/omarshaarawi/sportify/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) (*API, *metrics.Recorder) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	rec := metrics.NewRecorder(prometheus.NewRegistry())
	client := NewClient(config.SportsAPI{BaseURL: srv.URL + "/"}, rec)
	return NewAPI(client), rec
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

func TestLookupLeague(t *testing.T) {
	api, rec := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lookupleague.php" || r.URL.Query().Get("id") != "4328" {
			t.Errorf("unexpected request %s", r.URL)
		}
		writeJSON(w, `{"leagues":[{"idLeague":"4328","strLeague":"English Premier League","strSport":"Soccer","strCountry":"England","strCurrentSeason":"2023-2024"}]}`)
	})

	league, err := api.LookupLeague(context.Background(), "4328")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if league.Name != "English Premier League" || league.CurrentSeason != "2023-2024" {
		t.Errorf("unexpected league %+v", league)
	}
	if got := testutil.ToFloat64(rec.RequestCount("lookupleague", "found")); got != 1 {
		t.Errorf("expected one recorded request, got %v", got)
	}
}

func TestLookupLeagueNotFound(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"leagues":null}`)
	})

	_, err := api.LookupLeague(context.Background(), "0")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if OutcomeOf(err) != Empty {
		t.Errorf("expected Empty outcome, got %v", OutcomeOf(err))
	}
}

func TestNonJSONContentTypeIsParseFailure(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html>rate limited</html>"))
	})

	_, err := api.SearchTeams(context.Background(), "Arsenal")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	if OutcomeOf(err) != Failed {
		t.Errorf("expected Failed outcome, got %v", OutcomeOf(err))
	}
}

func TestBadStatusIsParseFailure(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := api.LookupTeam(context.Background(), "133604")
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	if IsUnreachable(err) {
		t.Errorf("expected a response with a bad status to count as reachable, got %v", err)
	}
}

func TestTransportErrorIsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	api := NewAPI(NewClient(config.SportsAPI{BaseURL: url}, nil))
	_, err := api.LookupTeam(context.Background(), "133604")
	if !errors.Is(err, ErrNetwork) || !IsUnreachable(err) {
		t.Fatalf("expected ErrNetwork, got %v", err)
	}
}

func TestUnconfiguredClient(t *testing.T) {
	api := NewAPI(NewClient(config.SportsAPI{}, nil))

	_, err := api.NextLeagueEvents(context.Background(), "4328")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestSearchEventsUsesSingularEnvelope(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("e") != "Arsenal vs Chelsea" {
			t.Errorf("query not passed through: %s", r.URL.RawQuery)
		}
		writeJSON(w, `{"event":[{"idEvent":"1","strEvent":"Arsenal vs Chelsea","intHomeScore":"3","intAwayScore":"1","dateEvent":"2024-04-23"}]}`)
	})

	events, err := api.SearchEvents(context.Background(), "Arsenal vs Chelsea")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || !events[0].HasScore() {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestSeasonEventsSendsLeagueAndSeason(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/eventsseason.php" || q.Get("id") != "4328" || q.Get("s") != "2023-2024" {
			t.Errorf("unexpected request %s", r.URL)
		}
		writeJSON(w, `{"events":[{"idEvent":"1","dateEvent":"2024-03-01"},{"idEvent":"2","dateEvent":"2024-03-02"}]}`)
	})

	events, err := api.SeasonEvents(context.Background(), "4328", "2023-2024")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("expected 2 events, got %d", len(events))
	}
}

func TestPlayers(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/searchplayers.php":
			writeJSON(w, `{"player":[{"idPlayer":"34145937","strPlayer":"Bukayo Saka","strTeam":"Arsenal","strPosition":"Right Winger","strNumber":"7"}]}`)
		case "/lookupplayer.php":
			writeJSON(w, `{"players":[{"idPlayer":"34145937","strPlayer":"Bukayo Saka","strNationality":"England","dateBorn":"2001-09-05"}]}`)
		default:
			http.NotFound(w, r)
		}
	})

	players, err := api.PlayersByTeam(context.Background(), "Arsenal")
	if err != nil || len(players) != 1 || players[0].Number != "7" {
		t.Fatalf("unexpected players %+v, err %v", players, err)
	}

	player, err := api.LookupPlayer(context.Background(), "34145937")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if player.Nationality != "England" || player.BirthDate != "2001-09-05" {
		t.Errorf("unexpected player %+v", player)
	}
}

func TestLookupEvent(t *testing.T) {
	api, _ := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id") == "1" {
			writeJSON(w, `{"events":[{"idEvent":"1","strEvent":"Arsenal vs Chelsea","strVenue":"Emirates Stadium"}]}`)
			return
		}
		writeJSON(w, `{"events":null}`)
	})

	event, err := api.LookupEvent(context.Background(), "1")
	if err != nil || event.Venue != "Emirates Stadium" {
		t.Fatalf("unexpected event %+v, err %v", event, err)
	}
	if _, err := api.LookupEvent(context.Background(), "2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
