package main

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"ff-lineup-mcp/internal/lineup"
)

type BuildLineupArgs struct {
	LeagueKey  string  `json:"league_key" jsonschema:"League key like nfl.l.12345 (required)"`
	Week       *int    `json:"week,omitempty" jsonschema:"Week number (0 = current)"`
	Strategy   *string `json:"strategy,omitempty" jsonschema:"balanced|floor|ceiling (default balanced)"`
	BenchLimit *int    `json:"bench_limit,omitempty" jsonschema:"How many bench players to show (default 5)"`
}

// StarterInfo is the display form of one assigned player.
type StarterInfo struct {
	Name           string   `json:"name"`
	Tier           string   `json:"tier"`
	Team           string   `json:"team"`
	Opponent       string   `json:"opponent,omitempty"`
	MatchupScore   *float64 `json:"matchup_score,omitempty"`
	Matchup        string   `json:"matchup,omitempty"`
	CompositeScore float64  `json:"composite_score"`
	YahooProj      *float64 `json:"yahoo_proj,omitempty"`
	SleeperProj    *float64 `json:"sleeper_proj,omitempty"`
	Trending       string   `json:"trending,omitempty"`
	Floor          *float64 `json:"floor,omitempty"`
	Ceiling        *float64 `json:"ceiling,omitempty"`
}

type BenchInfo struct {
	Name           string  `json:"name"`
	Position       string  `json:"position"`
	Opponent       string  `json:"opponent,omitempty"`
	CompositeScore float64 `json:"composite_score"`
	Tier           string  `json:"tier"`
}

type LineupAnalysis struct {
	TotalPlayers           int      `json:"total_players"`
	ValidPlayers           int      `json:"valid_players"`
	PlayersWithProjections int      `json:"players_with_projections"`
	PlayersWithMatchupData int      `json:"players_with_matchup_data"`
	StrategyUsed           string   `json:"strategy_used"`
	DataSources            []string `json:"data_sources"`
}

type LineupReport struct {
	Status          string                 `json:"status"`
	LeagueKey       string                 `json:"league_key"`
	TeamKey         string                 `json:"team_key"`
	Week            string                 `json:"week"`
	Strategy        string                 `json:"strategy"`
	OptimalLineup   map[string]StarterInfo `json:"optimal_lineup"`
	SlotOrder       []string               `json:"slot_order"`
	Bench           []BenchInfo            `json:"bench"`
	Recommendations []string               `json:"recommendations"`
	Errors          []string               `json:"errors,omitempty"`
	Warnings        []string               `json:"warnings,omitempty"`
	Analysis        LineupAnalysis         `json:"analysis"`
}

func buildLineup(ctx context.Context, deps *serverDeps, args BuildLineupArgs) (*LineupReport, error) {
	if args.LeagueKey == "" {
		return nil, fmt.Errorf("league_key is required")
	}
	strategyArg := ""
	if args.Strategy != nil {
		strategyArg = *args.Strategy
	}
	strategy, err := lineup.ParseStrategy(strategyArg)
	if err != nil {
		return nil, err
	}
	benchLimit := deps.benchLimit
	if args.BenchLimit != nil && *args.BenchLimit > 0 {
		benchLimit = *args.BenchLimit
	}

	teamKey, err := deps.yahoo.GetUserTeamKey(ctx, args.LeagueKey)
	if err != nil {
		return nil, fmt.Errorf("could not find your team in league %s: %w", args.LeagueKey, err)
	}

	// Roster, settings, and enrichment are independent fetches; only the
	// roster is load-bearing. Settings and enrichment fail soft per the
	// engine's degraded-data contracts.
	var (
		rosterData   map[string]any
		settingsData map[string]any
		feeds        []lineup.EnrichmentFeed
		feedWarnings []string
		week         int
	)
	if args.Week != nil {
		week = *args.Week
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rosterData, err = deps.yahoo.GetTeamRoster(gctx, teamKey)
		return err
	})
	g.Go(func() error {
		data, err := deps.yahoo.GetLeagueSettings(gctx, args.LeagueKey)
		if err != nil {
			deps.log.Warn().Err(err).Str("league", args.LeagueKey).Msg("settings fetch failed; optimizer will use defaults")
			return nil
		}
		settingsData = data
		return nil
	})
	g.Go(func() error {
		season, resolvedWeek := deps.season, week
		if state, err := deps.sleeper.GetState(gctx); err == nil {
			if resolvedWeek == 0 {
				resolvedWeek = state.Week
			}
			if season == 0 {
				season = parseSeason(state.Season)
			}
		}
		week = resolvedWeek
		feeds, feedWarnings = buildEnrichmentFeeds(gctx, deps, season, resolvedWeek)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("roster fetch failed for %s: %w", teamKey, err)
	}

	players, invalid := lineup.NormalizeRoster(rosterData)
	if len(players) == 0 {
		return nil, fmt.Errorf("failed to parse Yahoo roster data for %s (skipped %d entries); check roster format or try refreshing", teamKey, invalid)
	}

	template := lineup.ExtractRosterPositions(settingsData)
	merged := lineup.MergeEnrichment(players, feeds...)

	result, err := lineup.Optimize(merged, strategy, template)
	if err != nil {
		return nil, err
	}

	report := &LineupReport{
		Status:          result.Status,
		LeagueKey:       args.LeagueKey,
		TeamKey:         teamKey,
		Week:            weekLabel(week),
		Strategy:        string(strategy),
		OptimalLineup:   make(map[string]StarterInfo, len(result.Starters)),
		SlotOrder:       result.SlotOrder,
		Recommendations: result.Recommendations,
		Errors:          result.Errors,
		Warnings:        append(feedWarnings, result.Warnings...),
		Analysis: LineupAnalysis{
			TotalPlayers:           result.DataQuality.TotalPlayers + invalid,
			ValidPlayers:           result.DataQuality.ValidPlayers,
			PlayersWithProjections: result.DataQuality.PlayersWithProjections,
			PlayersWithMatchupData: result.DataQuality.PlayersWithMatchupData,
			StrategyUsed:           string(result.StrategyUsed),
			DataSources:            []string{"Yahoo projections", "Sleeper projections", "Sleeper trending"},
		},
	}
	for slot, p := range result.Starters {
		report.OptimalLineup[slot] = starterInfo(p)
	}
	bench := result.Bench
	if len(bench) > benchLimit {
		bench = bench[:benchLimit]
	}
	report.Bench = make([]BenchInfo, 0, len(bench))
	for _, p := range bench {
		report.Bench = append(report.Bench, BenchInfo{
			Name:           p.Name,
			Position:       p.Position,
			Opponent:       p.Opponent,
			CompositeScore: round1(p.CompositeScore),
			Tier:           tierLabel(p.Tier),
		})
	}
	return report, nil
}

func starterInfo(p lineup.Player) StarterInfo {
	info := StarterInfo{
		Name:           p.Name,
		Tier:           tierLabel(p.Tier),
		Team:           p.Team,
		Opponent:       p.Opponent,
		MatchupScore:   p.MatchupScore,
		Matchup:        p.MatchupDescription,
		CompositeScore: round1(p.CompositeScore),
		YahooProj:      roundPtr(p.YahooProjection),
		SleeperProj:    roundPtr(p.SleeperProjection),
		Floor:          roundPtr(p.FloorProjection),
		Ceiling:        roundPtr(p.CeilingProjection),
	}
	if p.TrendingScore > 0 {
		info.Trending = fmt.Sprintf("%d adds", p.TrendingScore)
	}
	return info
}

func tierLabel(t lineup.Tier) string {
	if t == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(string(t))
}

func weekLabel(week int) string {
	if week <= 0 {
		return "current"
	}
	return strconv.Itoa(week)
}

func parseSeason(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round1(*v)
	return &r
}
