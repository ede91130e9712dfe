package main

import (
	"context"
	"errors"
	"testing"
)

func TestBuildRoster_DefaultsToUserTeam(t *testing.T) {
	deps, yah, _ := baseDeps(t)

	out, err := buildRoster(context.Background(), deps, RosterArgs{LeagueKey: "nfl.l.12345"})
	if err != nil {
		t.Fatalf("buildRoster: %v", err)
	}
	if out.TeamKey != "nfl.l.12345.t.1" {
		t.Errorf("team key = %q", out.TeamKey)
	}
	if len(out.Players) != 6 {
		t.Errorf("players = %d, want 6", len(out.Players))
	}
	if out.Players[0].Name != "QB One" || out.Players[0].YahooProj == nil {
		t.Errorf("first player = %+v", out.Players[0])
	}
	if yah.rosterCalled["nfl.l.12345.t.1"] != 1 {
		t.Errorf("roster calls = %v", yah.rosterCalled)
	}
}

func TestBuildRoster_ExplicitTeamKey(t *testing.T) {
	deps, yah, _ := baseDeps(t)
	yah.teamKeyErr = errors.New("should not be called")

	teamKey := "nfl.l.12345.t.1"
	if _, err := buildRoster(context.Background(), deps, RosterArgs{LeagueKey: "nfl.l.12345", TeamKey: &teamKey}); err != nil {
		t.Fatalf("explicit team key must skip user-team lookup: %v", err)
	}
}

func TestBuildRoster_UnparseablePayload(t *testing.T) {
	deps, yah, _ := baseDeps(t)
	yah.roster = map[string]any{"fantasy_content": map[string]any{}}

	if _, err := buildRoster(context.Background(), deps, RosterArgs{LeagueKey: "nfl.l.12345"}); err == nil {
		t.Fatal("want error for a payload with no players")
	}
}

func TestBuildMatchup(t *testing.T) {
	deps, yah, _ := baseDeps(t)
	yah.matchups = map[string]any{"fantasy_content": "stub"}
	week := 7

	out, err := buildMatchup(context.Background(), deps, MatchupArgs{LeagueKey: "nfl.l.12345", Week: &week})
	if err != nil {
		t.Fatalf("buildMatchup: %v", err)
	}
	if out.Week != "7" {
		t.Errorf("week = %q", out.Week)
	}
	if out.RawMatchups["fantasy_content"] != "stub" {
		t.Errorf("raw matchups = %v", out.RawMatchups)
	}
}

func TestBuildMatchup_CurrentWeek(t *testing.T) {
	deps, yah, _ := baseDeps(t)
	yah.matchups = map[string]any{}

	out, err := buildMatchup(context.Background(), deps, MatchupArgs{LeagueKey: "nfl.l.12345"})
	if err != nil {
		t.Fatalf("buildMatchup: %v", err)
	}
	if out.Week != "current" {
		t.Errorf("week = %q, want current", out.Week)
	}
}

func TestBuildCompareTeams(t *testing.T) {
	deps, yah, _ := baseDeps(t)

	out, err := buildCompareTeams(context.Background(), deps, CompareTeamsArgs{
		LeagueKey: "nfl.l.12345",
		TeamKeyA:  "nfl.l.12345.t.1",
		TeamKeyB:  "nfl.l.12345.t.2",
	})
	if err != nil {
		t.Fatalf("buildCompareTeams: %v", err)
	}
	if len(out.TeamA.Roster) != 6 || len(out.TeamB.Roster) != 6 {
		t.Errorf("roster sizes = %d / %d", len(out.TeamA.Roster), len(out.TeamB.Roster))
	}
	if yah.rosterCalled["nfl.l.12345.t.1"] != 1 || yah.rosterCalled["nfl.l.12345.t.2"] != 1 {
		t.Errorf("roster calls = %v", yah.rosterCalled)
	}
}

func TestBuildCompareTeams_RequiresBothKeys(t *testing.T) {
	deps, _, _ := baseDeps(t)
	_, err := buildCompareTeams(context.Background(), deps, CompareTeamsArgs{LeagueKey: "nfl.l.12345", TeamKeyA: "nfl.l.12345.t.1"})
	if err == nil {
		t.Fatal("want error when a team key is missing")
	}
}
