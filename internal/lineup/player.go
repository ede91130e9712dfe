package lineup

import (
	"fmt"
	"strings"
)

// Strategy selects which signals the composite score emphasizes.
type Strategy string

const (
	StrategyBalanced Strategy = "balanced"
	StrategyFloor    Strategy = "floor"
	StrategyCeiling  Strategy = "ceiling"
)

// ParseStrategy validates a caller-supplied strategy string. Unknown values
// are rejected, not defaulted.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.TrimSpace(strings.ToLower(s))) {
	case StrategyBalanced:
		return StrategyBalanced, nil
	case StrategyFloor:
		return StrategyFloor, nil
	case StrategyCeiling:
		return StrategyCeiling, nil
	case "":
		return StrategyBalanced, nil
	default:
		return "", fmt.Errorf("%w: %q (want balanced|floor|ceiling)", ErrInvalidStrategy, s)
	}
}

// Tier is a discrete quality bucket derived from composite score percentile
// within a player's position group.
type Tier string

const (
	TierElite   Tier = "elite"
	TierSolid   Tier = "solid"
	TierFlex    Tier = "flex"
	TierBench   Tier = "bench"
	TierUnknown Tier = "unknown"
)

// Player is one canonical roster entry. Projection and matchup fields are
// pointers because coverage is uneven across sources; nil means "no data",
// which the scorer treats as zero weight rather than zero value.
type Player struct {
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
	Opponent string `json:"opponent,omitempty"`

	YahooProjection    *float64 `json:"yahoo_projection,omitempty"`
	SleeperProjection  *float64 `json:"sleeper_projection,omitempty"`
	TrendingScore      int      `json:"trending_score,omitempty"`
	MatchupScore       *float64 `json:"matchup_score,omitempty"`
	MatchupDescription string   `json:"matchup_description,omitempty"`
	FloorProjection    *float64 `json:"floor,omitempty"`
	CeilingProjection  *float64 `json:"ceiling,omitempty"`

	CompositeScore float64 `json:"composite_score"`
	Tier           Tier    `json:"tier,omitempty"`
}

// HasProjection reports whether at least one projection source is present.
func (p *Player) HasProjection() bool {
	return p.YahooProjection != nil || p.SleeperProjection != nil
}

// HasMatchupData reports whether a matchup score is present.
func (p *Player) HasMatchupData() bool {
	return p.MatchupScore != nil
}

// IdentityKey is the join key used when merging secondary feeds: lowercased
// name and team with collapsed whitespace. Team alone is not enough (trades
// mid-week) and name alone collides across teams.
func IdentityKey(name, team string) string {
	norm := func(s string) string {
		return strings.Join(strings.Fields(strings.ToLower(s)), " ")
	}
	return norm(name) + "|" + norm(team)
}

// Float is a convenience for building optional signal fields.
func Float(v float64) *float64 { return &v }
