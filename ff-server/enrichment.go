package main

import (
	"context"
	"strconv"

	"ff-lineup-mcp/internal/lineup"
	"ff-lineup-mcp/internal/sleeper"
)

// floorCeilingFactors spread a point projection into a floor/ceiling band
// by position volatility: QBs are steady, WRs swing hardest week to week.
var floorCeilingFactors = map[string][2]float64{
	"QB":  {0.75, 1.25},
	"RB":  {0.65, 1.35},
	"WR":  {0.55, 1.45},
	"TE":  {0.60, 1.40},
	"K":   {0.50, 1.50},
	"DEF": {0.50, 1.50},
}

// buildEnrichmentFeeds assembles the secondary-source feeds for one lineup
// build: Sleeper weekly projections (with derived floor/ceiling bands) and
// trending add counts. Each feed is best-effort; a fetch failure becomes a
// warning and the pipeline continues with whatever resolved.
func buildEnrichmentFeeds(ctx context.Context, deps *serverDeps, season, week int) ([]lineup.EnrichmentFeed, []string) {
	var warnings []string

	index, err := deps.sleeper.GetPlayers(ctx)
	if err != nil {
		deps.log.Warn().Err(err).Msg("sleeper player index unavailable")
		return nil, []string{"enrichment unavailable: could not load Sleeper player index"}
	}

	feeds := make([]lineup.EnrichmentFeed, 0, 2)

	if season > 0 && week > 0 {
		projections, err := deps.sleeper.GetProjections(ctx, season, week)
		if err != nil {
			deps.log.Warn().Err(err).Int("week", week).Msg("sleeper projections unavailable")
			warnings = append(warnings, "Sleeper projections unavailable for week "+strconv.Itoa(week))
		} else {
			feeds = append(feeds, projectionFeed(index, projections))
		}
	} else {
		warnings = append(warnings, "could not resolve current week; skipping weekly projections")
	}

	trending, err := deps.sleeper.GetTrendingAdds(ctx, 200)
	if err != nil {
		deps.log.Warn().Err(err).Msg("sleeper trending unavailable")
		warnings = append(warnings, "Sleeper trending data unavailable")
	} else {
		feeds = append(feeds, trendingFeed(index, trending))
	}

	return feeds, warnings
}

func projectionFeed(index map[string]sleeper.PlayerMeta, projections map[string]sleeper.Projection) lineup.EnrichmentFeed {
	rows := make(map[string]lineup.Enrichment, len(projections))
	for id, proj := range projections {
		meta, ok := index[id]
		if !ok || meta.FullName == "" {
			continue
		}
		factors, ok := floorCeilingFactors[meta.Position]
		if !ok {
			factors = [2]float64{0.6, 1.4}
		}
		rows[lineup.IdentityKey(meta.FullName, meta.Team)] = lineup.Enrichment{
			Projection:        lineup.Float(proj.Points),
			FloorProjection:   lineup.Float(proj.Points * factors[0]),
			CeilingProjection: lineup.Float(proj.Points * factors[1]),
		}
	}
	return lineup.EnrichmentFeed{Source: "sleeper-projections", Rows: rows}
}

func trendingFeed(index map[string]sleeper.PlayerMeta, trending []sleeper.TrendingEntry) lineup.EnrichmentFeed {
	rows := make(map[string]lineup.Enrichment, len(trending))
	for _, entry := range trending {
		meta, ok := index[entry.PlayerID]
		if !ok || meta.FullName == "" {
			continue
		}
		rows[lineup.IdentityKey(meta.FullName, meta.Team)] = lineup.Enrichment{
			TrendingScore: entry.Count,
		}
	}
	return lineup.EnrichmentFeed{Source: "sleeper-trending", Rows: rows}
}
