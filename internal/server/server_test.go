package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/Jearnest94/extendo-reborn/internal/api"
	"github.com/Jearnest94/extendo-reborn/internal/domain"
)

type fakeAggregator struct {
	results []domain.PlayerResult
	got     []string
}

func (f *fakeAggregator) AggregatePlayers(ctx context.Context, nicknames []string) []domain.PlayerResult {
	f.got = nicknames
	return f.results
}

type fakeResolver struct {
	roster *domain.MatchRoster
	err    error
}

func (f *fakeResolver) ResolveMatchRoster(ctx context.Context, matchID string) (*domain.MatchRoster, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.roster, nil
}

func serve(t *testing.T, agg Aggregator, rosters RosterResolver, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	mux := New(agg, rosters, zerolog.Nop()).Routes()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestPlayersEndpoint(t *testing.T) {
	agg := &fakeAggregator{
		results: []domain.PlayerResult{
			{Nickname: "s1mple", PlayerID: "id1"},
			{Nickname: "ghost", Error: "player \"ghost\" not found"},
		},
	}
	rec := serve(t, agg, &fakeResolver{}, http.MethodPost, "/players",
		`{"nicknames": ["s1mple", "ghost"]}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(agg.got) != 2 || agg.got[0] != "s1mple" {
		t.Errorf("aggregator received %v", agg.got)
	}

	var results []domain.PlayerResult
	if err := json.Unmarshal(rec.Body.Bytes(), &results); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(results) != 2 || results[0].Nickname != "s1mple" || results[1].Error == "" {
		t.Errorf("results = %+v", results)
	}
}

func TestPlayersEmptyListRejected(t *testing.T) {
	rec := serve(t, &fakeAggregator{}, &fakeResolver{}, http.MethodPost, "/players",
		`{"nicknames": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "No nicknames provided") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestPlayersUndecodableBodyRejected(t *testing.T) {
	rec := serve(t, &fakeAggregator{}, &fakeResolver{}, http.MethodPost, "/players", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRosterEndpoint(t *testing.T) {
	resolver := &fakeResolver{
		roster: &domain.MatchRoster{
			MatchID: "room-1",
			Teams: []domain.TeamRoster{
				{Name: "Team A", Players: []domain.RosterPlayer{{Nickname: "s1mple", PlayerID: "id1"}}},
			},
		},
	}
	rec := serve(t, &fakeAggregator{}, resolver, http.MethodGet, "/matches/room-1/players", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var roster domain.MatchRoster
	if err := json.Unmarshal(rec.Body.Bytes(), &roster); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if roster.MatchID != "room-1" || len(roster.Teams) != 1 {
		t.Errorf("roster = %+v", roster)
	}
}

func TestRosterAuthErrorMapsTo401(t *testing.T) {
	resolver := &fakeResolver{err: &api.APIError{StatusCode: 401, Message: "invalid token", AuthError: true}}
	rec := serve(t, &fakeAggregator{}, resolver, http.MethodGet, "/matches/room-1/players", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRosterFailureMapsTo400(t *testing.T) {
	resolver := &fakeResolver{err: errors.New("no team roster found for match room-1")}
	rec := serve(t, &fakeAggregator{}, resolver, http.MethodGet, "/matches/room-1/players", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	rec := serve(t, &fakeAggregator{}, &fakeResolver{}, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("body = %v", body)
	}
}
