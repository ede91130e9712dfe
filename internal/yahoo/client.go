// Package yahoo is the authenticated Yahoo Fantasy Sports API client. It
// fetches raw league/team payloads and leaves all shape interpretation to
// the lineup engine, which owns the soft-fail parsing contracts.
package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://fantasysports.yahooapis.com/fantasy/v2"

type Client struct {
	http    *http.Client
	base    string
	limiter *rate.Limiter
	log     zerolog.Logger
}

// NewClient builds an OAuth-authenticated client. Refreshed tokens are
// persisted to tokenPath as a side effect of normal use.
func NewClient(ctx context.Context, cfg *oauth2.Config, tok *oauth2.Token, tokenPath string, log zerolog.Logger) *Client {
	src := newPersistingTokenSource(ctx, cfg, tok, tokenPath)
	httpClient := oauth2.NewClient(ctx, src)
	httpClient.Timeout = 20 * time.Second
	return &Client{
		http: httpClient,
		base: defaultBaseURL,
		// Yahoo throttles aggressively; 2 rps with a small burst stays
		// well under the limit even when tools fan out.
		limiter: rate.NewLimiter(rate.Limit(2), 4),
		log:     log.With().Str("component", "yahoo").Logger(),
	}
}

// NewClientWithHTTP is for tests: no OAuth, custom base URL.
func NewClientWithHTTP(httpClient *http.Client, base string, log zerolog.Logger) *Client {
	return &Client{
		http:    httpClient,
		base:    base,
		limiter: rate.NewLimiter(rate.Inf, 1),
		log:     log,
	}
}

// Get fetches one fantasy resource (like "league/nfl.l.12345/settings")
// decoded to generic JSON.
func (c *Client) Get(ctx context.Context, resource string) (map[string]any, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	url := c.base + "/" + strings.TrimPrefix(resource, "/") + "?format=json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", resource, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	c.log.Debug().Str("resource", resource).Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).Msg("yahoo api call")
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("GET %s failed: %d body=%s", resource, resp.StatusCode, truncate(string(body), 300))
	}

	var out map[string]any
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("GET %s: decode: %w", resource, err)
	}
	return out, nil
}

// GetLeagueSettings returns the raw league settings payload; the lineup
// engine extracts roster positions from it.
func (c *Client) GetLeagueSettings(ctx context.Context, leagueKey string) (map[string]any, error) {
	return c.Get(ctx, fmt.Sprintf("league/%s/settings", leagueKey))
}

// GetTeamRoster returns the raw roster payload for a team.
func (c *Client) GetTeamRoster(ctx context.Context, teamKey string) (map[string]any, error) {
	return c.Get(ctx, fmt.Sprintf("team/%s/roster", teamKey))
}

// GetTeamMatchups returns matchup data for a team; week 0 means current.
func (c *Client) GetTeamMatchups(ctx context.Context, teamKey string, week int) (map[string]any, error) {
	resource := fmt.Sprintf("team/%s/matchups", teamKey)
	if week > 0 {
		resource += fmt.Sprintf(";weeks=%d", week)
	}
	return c.Get(ctx, resource)
}

// GetUserTeamKey resolves the logged-in user's team key within a league by
// scanning the user's teams collection for a key under that league.
func (c *Client) GetUserTeamKey(ctx context.Context, leagueKey string) (string, error) {
	data, err := c.Get(ctx, "users;use_login=1/games;game_keys=nfl/teams")
	if err != nil {
		return "", err
	}
	prefix := leagueKey + ".t."
	if key := findTeamKey(data, prefix, 12); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("no team found for league %s", leagueKey)
}

// findTeamKey walks an arbitrarily nested payload for a team_key value
// with the wanted prefix. Yahoo's users→games→teams nesting is too
// irregular to type out.
func findTeamKey(node any, prefix string, depth int) string {
	if depth <= 0 {
		return ""
	}
	switch n := node.(type) {
	case map[string]any:
		if key, ok := n["team_key"].(string); ok && strings.HasPrefix(key, prefix) {
			return key
		}
		for _, v := range n {
			if key := findTeamKey(v, prefix, depth-1); key != "" {
				return key
			}
		}
	case []any:
		for _, item := range n {
			if key := findTeamKey(item, prefix, depth-1); key != "" {
				return key
			}
		}
	}
	return ""
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
