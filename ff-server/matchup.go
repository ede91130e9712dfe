package main

import (
	"context"
	"fmt"
)

type MatchupArgs struct {
	LeagueKey string `json:"league_key" jsonschema:"League key like nfl.l.12345 (required)"`
	Week      *int   `json:"week,omitempty" jsonschema:"Week number (0 = current)"`
}

type MatchupOutput struct {
	LeagueKey   string         `json:"league_key"`
	TeamKey     string         `json:"team_key"`
	Week        string         `json:"week"`
	Message     string         `json:"message"`
	RawMatchups map[string]any `json:"raw_matchups"`
}

// buildMatchup hands the raw matchup payload through. Matchup payloads are
// display-oriented and vary by league type, so interpretation is left to
// the caller the same way the roster tools leave it to the engine.
func buildMatchup(ctx context.Context, deps *serverDeps, args MatchupArgs) (*MatchupOutput, error) {
	if args.LeagueKey == "" {
		return nil, fmt.Errorf("league_key is required")
	}
	teamKey, err := deps.yahoo.GetUserTeamKey(ctx, args.LeagueKey)
	if err != nil {
		return nil, fmt.Errorf("could not find your team in league %s: %w", args.LeagueKey, err)
	}

	week := 0
	if args.Week != nil {
		week = *args.Week
	}
	data, err := deps.yahoo.GetTeamMatchups(ctx, teamKey, week)
	if err != nil {
		return nil, err
	}
	return &MatchupOutput{
		LeagueKey:   args.LeagueKey,
		TeamKey:     teamKey,
		Week:        weekLabel(week),
		Message:     "Matchup data retrieved",
		RawMatchups: data,
	}, nil
}
