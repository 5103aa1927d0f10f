package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"

	"github.com/Jearnest94/extendo-reborn/internal/config"
	"github.com/Jearnest94/extendo-reborn/internal/constants"
	"github.com/Jearnest94/extendo-reborn/internal/domain"
	"github.com/Jearnest94/extendo-reborn/internal/metrics"
	"github.com/Jearnest94/extendo-reborn/internal/stats"
)

// Client talks to the two FACEIT API surfaces: the documented Data API
// (Bearer-authenticated) and the undocumented web stats API (no auth).
type Client struct {
	apiKey       string
	dataBaseURL  string
	statsBaseURL string
	client       *fasthttp.Client
	logger       zerolog.Logger
	rateLimitMu  sync.RWMutex
	rateLimit    RateLimitInfo
}

// RateLimitInfo mirrors the X-Ratelimit response headers of the Data API.
type RateLimitInfo struct {
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`

	// seconds until reset
	Reset int `json:"reset"`

	UpdatedAt time.Time `json:"updated_at"`
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		apiKey:       cfg.FaceitAPIKey,
		dataBaseURL:  cfg.DataAPIBaseURL,
		statsBaseURL: cfg.StatsAPIBaseURL,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		logger: logger.With().Str("component", "faceit_client").Logger(),
		rateLimit: RateLimitInfo{
			UpdatedAt: time.Now(),
		},
	}
}

func (c *Client) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *Client) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if limit := string(resp.Header.Peek("X-Ratelimit-Limit")); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			c.rateLimit.Limit = val
		}
	}
	if remaining := string(resp.Header.Peek("X-Ratelimit-Remaining")); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			c.rateLimit.Remaining = val
		}
	}
	if reset := string(resp.Header.Peek("X-Ratelimit-Reset")); reset != "" {
		if val, err := strconv.Atoi(reset); err == nil {
			c.rateLimit.Reset = val
		}
	}
	c.rateLimit.UpdatedAt = time.Now()
}

// GetPlayerByNickname resolves a nickname to a Profile. A 200 response whose
// body carries no player id is treated as not found, since the upstream
// occasionally answers empty objects instead of 404.
func (c *Client) GetPlayerByNickname(ctx context.Context, nickname string) (*domain.Profile, error) {
	u := fmt.Sprintf("%s/players?nickname=%s", c.dataBaseURL, url.QueryEscape(nickname))
	payload, err := doRequest[playerPayload](ctx, c, "players", u, true)
	if err != nil {
		return nil, err
	}
	if payload.PlayerID == "" {
		return nil, &APIError{
			StatusCode: fasthttp.StatusNotFound,
			Message:    fmt.Sprintf("player %q not found", nickname),
		}
	}

	profile := &domain.Profile{
		PlayerID: payload.PlayerID,
		Nickname: payload.Nickname,
		Avatar:   payload.Avatar,
		Country:  payload.Country,
	}
	if profile.Nickname == "" {
		profile.Nickname = nickname
	}
	if game, ok := payload.Games[constants.GameID]; ok {
		if elo, err := stats.EloValue(game); err == nil {
			profile.Elo = &elo
		}
		if level, err := stats.IntFromFields(game, stats.SkillLevelFields); err == nil {
			profile.Level = &level
		}
	}
	return profile, nil
}

// GetLifetimeStats fetches the lifetime stat bag and per-map segments for a
// player. Payload shape drifts between API generations: the overall bag
// usually sits under "lifetime" but older responses bury it in an unlabeled
// segment of the primary mode.
func (c *Client) GetLifetimeStats(ctx context.Context, playerID string) (*domain.LifetimeStats, error) {
	u := fmt.Sprintf("%s/players/%s/stats/%s", c.dataBaseURL, playerID, constants.GameID)
	payload, err := doRequest[lifetimeStatsPayload](ctx, c, "player_stats", u, true)
	if err != nil {
		return nil, err
	}

	out := &domain.LifetimeStats{Overall: payload.Lifetime}
	for _, seg := range payload.Segments {
		if seg.Label != "" {
			out.Maps = append(out.Maps, domain.MapSegment{
				Label: seg.Label,
				Mode:  seg.Mode,
				Stats: seg.Stats,
			})
			continue
		}
		if len(out.Overall) == 0 && seg.Mode == constants.PrimaryMode {
			out.Overall = seg.Stats
		}
	}
	return out, nil
}

// GetMatch fetches a match room from the Data API. The payload stays raw
// because team rosters appear under several shapes.
func (c *Client) GetMatch(ctx context.Context, matchID string) (map[string]any, error) {
	u := fmt.Sprintf("%s/matches/%s", c.dataBaseURL, url.PathEscape(matchID))
	payload, err := doRequest[map[string]any](ctx, c, "match", u, true)
	if err != nil {
		return nil, err
	}
	return *payload, nil
}

// GetMatchmaking fetches a matchmaking room, the fallback for ids the
// matches endpoint does not know.
func (c *Client) GetMatchmaking(ctx context.Context, matchID string) (map[string]any, error) {
	u := fmt.Sprintf("%s/matchmakings/%s", c.dataBaseURL, url.PathEscape(matchID))
	payload, err := doRequest[map[string]any](ctx, c, "matchmaking", u, true)
	if err != nil {
		return nil, err
	}
	return *payload, nil
}

func doRequest[T any](ctx context.Context, c *Client, endpoint, url string, authed bool) (*T, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.Do(req, resp)
	}
	metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(endpoint, "error").Inc()
		return nil, fmt.Errorf("call %s: %w", endpoint, err)
	}

	c.updateRateLimit(resp)
	metrics.UpstreamRequests.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode())).Inc()

	out, err := decodeBody[T](resp.StatusCode(), resp.Body())
	if err != nil {
		c.logger.Debug().
			Str("endpoint", endpoint).
			Int("status", resp.StatusCode()).
			Err(err).
			Msg("upstream request failed")
		return nil, err
	}
	return out, nil
}
