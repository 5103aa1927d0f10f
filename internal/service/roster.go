package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/Jearnest94/extendo-reborn/internal/api"
	"github.com/Jearnest94/extendo-reborn/internal/constants"
	"github.com/Jearnest94/extendo-reborn/internal/domain"
)

// RosterAPI is the slice of the upstream client the roster resolver consumes.
type RosterAPI interface {
	GetMatch(ctx context.Context, matchID string) (map[string]any, error)
	GetMatchmaking(ctx context.Context, matchID string) (map[string]any, error)
}

// RosterService resolves which players sit in a match room. Room payloads
// come in several generations of shapes, so extraction is probe-based.
type RosterService struct {
	client RosterAPI
	logger zerolog.Logger
}

func NewRosterService(client RosterAPI, logger zerolog.Logger) *RosterService {
	return &RosterService{client: client, logger: logger}
}

// ResolveMatchRoster fetches the room from the matches endpoint and falls
// back to the matchmaking endpoint for ids the former does not know.
// Credential failures are returned as-is so the handler can surface them.
func (s *RosterService) ResolveMatchRoster(ctx context.Context, matchID string) (*domain.MatchRoster, error) {
	callCtx, cancel := context.WithTimeout(ctx, constants.SimpleCallTimeout)
	defer cancel()

	payload, err := s.client.GetMatch(callCtx, matchID)
	if err != nil {
		if api.IsAuthError(err) {
			return nil, err
		}
		s.logger.Debug().
			Err(err).
			Str("match_id", matchID).
			Msg("match lookup failed, trying matchmaking endpoint")

		fallbackCtx, fallbackCancel := context.WithTimeout(ctx, constants.SimpleCallTimeout)
		defer fallbackCancel()
		payload, err = s.client.GetMatchmaking(fallbackCtx, matchID)
		if err != nil {
			return nil, err
		}
	}

	teams := extractTeams(payload)
	if len(teams) == 0 {
		return nil, fmt.Errorf("no team roster found for match %s", matchID)
	}

	s.logger.Info().
		Str("match_id", matchID).
		Int("teams", len(teams)).
		Msg("match roster resolved")
	return &domain.MatchRoster{MatchID: matchID, Teams: teams}, nil
}

// extractTeams digs team rosters out of a room payload. Known shapes:
// a faction-keyed object ({"teams": {"faction1": {...}}}), a team list
// ({"teams": [{...}]}), and either of those nested one level down inside a
// "match"/"payload" wrapper.
func extractTeams(payload map[string]any) []domain.TeamRoster {
	for _, wrapper := range []string{"match", "payload", "room"} {
		inner, ok := payload[wrapper].(map[string]any)
		if !ok {
			continue
		}
		if _, has := inner["teams"]; has {
			payload = inner
			break
		}
	}

	var teams []domain.TeamRoster
	switch raw := payload["teams"].(type) {
	case map[string]any:
		keys := make([]string, 0, len(raw))
		for key := range raw {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if m, ok := raw[key].(map[string]any); ok {
				if team, ok := teamFromMap(key, m); ok {
					teams = append(teams, team)
				}
			}
		}
	case []any:
		for i, e := range raw {
			if m, ok := e.(map[string]any); ok {
				if team, ok := teamFromMap(fmt.Sprintf("team%d", i+1), m); ok {
					teams = append(teams, team)
				}
			}
		}
	}

	if len(teams) > 2 {
		teams = teams[:2]
	}
	return teams
}

var rosterFields = []string{"roster", "players", "roster_v1"}

func teamFromMap(fallbackName string, m map[string]any) (domain.TeamRoster, bool) {
	team := domain.TeamRoster{Name: fallbackName}
	if name, ok := m["name"].(string); ok && name != "" {
		team.Name = name
	}

	var entries []any
	for _, field := range rosterFields {
		if list, ok := m[field].([]any); ok && len(list) > 0 {
			entries = list
			break
		}
	}
	for _, e := range entries {
		if pm, ok := e.(map[string]any); ok {
			if player, ok := rosterPlayer(pm); ok {
				team.Players = append(team.Players, player)
			}
		}
	}

	return team, len(team.Players) > 0
}

func rosterPlayer(m map[string]any) (domain.RosterPlayer, bool) {
	player := domain.RosterPlayer{}
	for _, field := range []string{"nickname", "name"} {
		if v, ok := m[field].(string); ok && v != "" {
			player.Nickname = v
			break
		}
	}
	for _, field := range []string{"player_id", "id", "guid"} {
		if v, ok := m[field].(string); ok && v != "" {
			player.PlayerID = v
			break
		}
	}
	if v, ok := m["avatar"].(string); ok {
		player.Avatar = v
	}
	return player, player.Nickname != "" || player.PlayerID != ""
}
