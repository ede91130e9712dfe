package main

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"ff-lineup-mcp/internal/lineup"
)

type CompareTeamsArgs struct {
	LeagueKey string `json:"league_key" jsonschema:"League key like nfl.l.12345 (required)"`
	TeamKeyA  string `json:"team_key_a" jsonschema:"First team key (required)"`
	TeamKeyB  string `json:"team_key_b" jsonschema:"Second team key (required)"`
}

type ComparedTeam struct {
	TeamKey string             `json:"team_key"`
	Roster  []RosterPlayerInfo `json:"roster"`
}

type CompareTeamsOutput struct {
	LeagueKey string       `json:"league_key"`
	TeamA     ComparedTeam `json:"team_a"`
	TeamB     ComparedTeam `json:"team_b"`
}

func buildCompareTeams(ctx context.Context, deps *serverDeps, args CompareTeamsArgs) (*CompareTeamsOutput, error) {
	if args.LeagueKey == "" {
		return nil, fmt.Errorf("league_key is required")
	}
	if args.TeamKeyA == "" || args.TeamKeyB == "" {
		return nil, fmt.Errorf("team_key_a and team_key_b are required")
	}

	var rawA, rawB map[string]any
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rawA, err = deps.yahoo.GetTeamRoster(gctx, args.TeamKeyA)
		return err
	})
	g.Go(func() error {
		var err error
		rawB, err = deps.yahoo.GetTeamRoster(gctx, args.TeamKeyB)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &CompareTeamsOutput{
		LeagueKey: args.LeagueKey,
		TeamA:     ComparedTeam{TeamKey: args.TeamKeyA, Roster: rosterInfos(rawA)},
		TeamB:     ComparedTeam{TeamKey: args.TeamKeyB, Roster: rosterInfos(rawB)},
	}, nil
}

func rosterInfos(raw map[string]any) []RosterPlayerInfo {
	players, _ := lineup.NormalizeRoster(raw)
	infos := make([]RosterPlayerInfo, 0, len(players))
	for _, p := range players {
		infos = append(infos, RosterPlayerInfo{Name: p.Name, Team: p.Team, Position: p.Position, YahooProj: p.YahooProjection})
	}
	return infos
}
