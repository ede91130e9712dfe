package main

import (
	"context"
	"fmt"

	"ff-lineup-mcp/internal/lineup"
)

type RosterArgs struct {
	LeagueKey string  `json:"league_key" jsonschema:"League key like nfl.l.12345 (required)"`
	TeamKey   *string `json:"team_key,omitempty" jsonschema:"Team key (defaults to your team)"`
}

type RosterPlayerInfo struct {
	Name      string   `json:"name"`
	Team      string   `json:"team"`
	Position  string   `json:"position"`
	YahooProj *float64 `json:"yahoo_proj,omitempty"`
}

type RosterOutput struct {
	LeagueKey      string             `json:"league_key"`
	TeamKey        string             `json:"team_key"`
	Players        []RosterPlayerInfo `json:"players"`
	InvalidEntries int                `json:"invalid_entries,omitempty"`
}

func buildRoster(ctx context.Context, deps *serverDeps, args RosterArgs) (*RosterOutput, error) {
	if args.LeagueKey == "" {
		return nil, fmt.Errorf("league_key is required")
	}
	teamKey := ""
	if args.TeamKey != nil {
		teamKey = *args.TeamKey
	}
	if teamKey == "" {
		resolved, err := deps.yahoo.GetUserTeamKey(ctx, args.LeagueKey)
		if err != nil {
			return nil, fmt.Errorf("could not find your team in league %s: %w", args.LeagueKey, err)
		}
		teamKey = resolved
	}

	raw, err := deps.yahoo.GetTeamRoster(ctx, teamKey)
	if err != nil {
		return nil, err
	}
	players, invalid := lineup.NormalizeRoster(raw)
	if len(players) == 0 {
		return nil, fmt.Errorf("failed to parse roster for %s (skipped %d entries)", teamKey, invalid)
	}

	out := &RosterOutput{
		LeagueKey:      args.LeagueKey,
		TeamKey:        teamKey,
		Players:        make([]RosterPlayerInfo, 0, len(players)),
		InvalidEntries: invalid,
	}
	for _, p := range players {
		out.Players = append(out.Players, RosterPlayerInfo{
			Name:      p.Name,
			Team:      p.Team,
			Position:  p.Position,
			YahooProj: p.YahooProjection,
		})
	}
	return out, nil
}
