// Package sleeper talks to the public Sleeper API for the secondary
// signals the lineup engine merges onto Yahoo rosters: weekly projections
// and trending add counts. Everything here is best-effort; a failed feed
// means missing enrichment, never a failed lineup build.
package sleeper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL     = "https://api.sleeper.app/v1"
	defaultProjBaseURL = "https://api.sleeper.app"
)

// PlayerMeta is the slice of Sleeper's player index we care about.
type PlayerMeta struct {
	FullName string `json:"full_name"`
	Team     string `json:"team"`
	Position string `json:"position"`
}

// TrendingEntry is one player from the trending-adds feed.
type TrendingEntry struct {
	PlayerID string `json:"player_id"`
	Count    int    `json:"count"`
}

// Projection is one player's weekly stat projection; PPR points is the
// signal the scorer uses.
type Projection struct {
	PlayerID string
	Points   float64
}

type Client struct {
	http     *http.Client
	base     string
	projBase string
	limiter  *rate.Limiter
	log      zerolog.Logger
}

func NewClient(log zerolog.Logger) *Client {
	return &Client{
		http:     &http.Client{Timeout: 20 * time.Second},
		base:     defaultBaseURL,
		projBase: defaultProjBaseURL,
		limiter:  rate.NewLimiter(rate.Limit(5), 5),
		log:      log.With().Str("component", "sleeper").Logger(),
	}
}

// NewClientWithHTTP is for tests.
func NewClientWithHTTP(httpClient *http.Client, base string, log zerolog.Logger) *Client {
	return &Client{
		http:     httpClient,
		base:     base,
		projBase: base,
		limiter:  rate.NewLimiter(rate.Inf, 1),
		log:      log,
	}
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("GET %s failed: %d", url, resp.StatusCode)
	}
	return json.Unmarshal(body, out)
}

// State is the league clock: which season and week the NFL is in.
type State struct {
	Week   int    `json:"week"`
	Season string `json:"season"`
}

// GetState returns the current NFL season/week, used to resolve "week 0"
// tool calls the way a league settings response cannot.
func (c *Client) GetState(ctx context.Context) (State, error) {
	var out State
	if err := c.getJSON(ctx, c.base+"/state/nfl", &out); err != nil {
		return State{}, err
	}
	return out, nil
}

// GetPlayers fetches the full player index (id → name/team/position). The
// payload is large; callers should hold it for the whole invocation.
func (c *Client) GetPlayers(ctx context.Context) (map[string]PlayerMeta, error) {
	var out map[string]PlayerMeta
	if err := c.getJSON(ctx, c.base+"/players/nfl", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetTrendingAdds returns the most-added players over the last 24 hours.
func (c *Client) GetTrendingAdds(ctx context.Context, limit int) ([]TrendingEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	url := fmt.Sprintf("%s/players/nfl/trending/add?lookback_hours=24&limit=%d", c.base, limit)
	var out []TrendingEntry
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProjections fetches weekly PPR projections keyed by player id.
func (c *Client) GetProjections(ctx context.Context, season, week int) (map[string]Projection, error) {
	url := fmt.Sprintf("%s/projections/nfl/%d/%d?season_type=regular", c.projBase, season, week)
	var raw map[string]map[string]float64
	if err := c.getJSON(ctx, url, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]Projection, len(raw))
	for id, stats := range raw {
		pts, ok := stats["pts_ppr"]
		if !ok {
			pts = stats["pts_std"]
		}
		if pts == 0 {
			continue
		}
		out[id] = Projection{PlayerID: id, Points: pts}
	}
	return out, nil
}
