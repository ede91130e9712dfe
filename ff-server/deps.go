package main

import (
	"context"

	"github.com/rs/zerolog"

	"ff-lineup-mcp/internal/sleeper"
)

// fantasyAPI is the slice of the Yahoo client the tools use. Injected so
// tests can run the handlers against canned payloads.
type fantasyAPI interface {
	GetLeagueSettings(ctx context.Context, leagueKey string) (map[string]any, error)
	GetTeamRoster(ctx context.Context, teamKey string) (map[string]any, error)
	GetTeamMatchups(ctx context.Context, teamKey string, week int) (map[string]any, error)
	GetUserTeamKey(ctx context.Context, leagueKey string) (string, error)
}

// enrichmentAPI is the slice of the Sleeper client the tools use.
type enrichmentAPI interface {
	GetState(ctx context.Context) (sleeper.State, error)
	GetPlayers(ctx context.Context) (map[string]sleeper.PlayerMeta, error)
	GetTrendingAdds(ctx context.Context, limit int) ([]sleeper.TrendingEntry, error)
	GetProjections(ctx context.Context, season, week int) (map[string]sleeper.Projection, error)
}

type serverDeps struct {
	yahoo      fantasyAPI
	sleeper    enrichmentAPI
	log        zerolog.Logger
	benchLimit int
	season     int
}
