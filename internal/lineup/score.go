package lineup

import (
	"math"
	"sort"
)

// weightSet is the emphasis a strategy puts on each signal. The exact
// numbers are tunable policy; what the rest of the engine relies on is
// that weights are non-negative and that floor/ceiling strategies lean on
// the corresponding bound.
type weightSet struct {
	yahoo    float64
	sleeper  float64
	matchup  float64
	trending float64
	floor    float64
	ceiling  float64
}

var weightTable = map[Strategy]weightSet{
	StrategyBalanced: {yahoo: 0.30, sleeper: 0.30, matchup: 0.30, trending: 0.10},
	StrategyFloor:    {yahoo: 0.20, sleeper: 0.20, matchup: 0.15, trending: 0.05, floor: 0.40},
	StrategyCeiling:  {yahoo: 0.20, sleeper: 0.20, matchup: 0.15, trending: 0.05, ceiling: 0.40},
}

const (
	// matchupScale lifts the 0–10 matchup score into projection-point
	// range so the weighted average mixes comparable magnitudes.
	matchupScale = 1.5
	// trendingScale converts log add-counts into bonus points; ~10k adds
	// is worth about 1.2 composite under the balanced weight.
	trendingScale = 3.0
)

// ScorePlayers computes the strategy-weighted composite score for every
// player and classifies tiers across the pool. The input slice is not
// mutated.
//
// The composite is a weighted average over the signals a player actually
// has: a missing signal drops out of both numerator and denominator, so
// data-sparse players are not dragged toward zero. Trending is different:
// an add count is always defined (zero is a value, not a gap), so it sits
// outside the average as an additive bonus that is 0 at zero adds and
// grows with the count. Same players + same strategy always produce
// bit-identical scores.
func ScorePlayers(players []Player, strategy Strategy) []Player {
	scored := make([]Player, len(players))
	copy(scored, players)
	for i := range scored {
		composite, ok := compositeScore(&scored[i], strategy)
		if !ok {
			scored[i].CompositeScore = 0
			scored[i].Tier = TierUnknown
			continue
		}
		scored[i].CompositeScore = composite
		scored[i].Tier = "" // assigned below, relative to the pool
	}
	classifyTiers(scored)
	return scored
}

// compositeScore returns the weighted average of present signals plus the
// trending bonus, or ok=false when the player has no signal at all. The
// bonus must live outside the average: folding a small add count into the
// denominator would pull an otherwise strong composite down, so raising
// trending from zero could demote a starter.
func compositeScore(p *Player, strategy Strategy) (float64, bool) {
	w := weightTable[strategy]
	sum, wsum := 0.0, 0.0
	add := func(weight float64, value float64) {
		if weight <= 0 {
			return
		}
		sum += weight * value
		wsum += weight
	}
	if p.YahooProjection != nil {
		add(w.yahoo, *p.YahooProjection)
	}
	if p.SleeperProjection != nil {
		add(w.sleeper, *p.SleeperProjection)
	}
	if p.MatchupScore != nil {
		add(w.matchup, *p.MatchupScore*matchupScale)
	}
	if p.FloorProjection != nil {
		add(w.floor, *p.FloorProjection)
	}
	if p.CeilingProjection != nil {
		add(w.ceiling, *p.CeilingProjection)
	}
	bonus := w.trending * math.Log10(1+float64(p.TrendingScore)) * trendingScale
	if wsum == 0 {
		if p.TrendingScore == 0 {
			return 0, false
		}
		return bonus, true
	}
	return sum/wsum + bonus, true
}

// classifyTiers buckets players by composite percentile within their
// position group: top decile elite, next ~30% solid, next band flex, the
// rest bench. Players with no signal were already marked unknown and stay
// out of the ranking entirely.
func classifyTiers(players []Player) {
	byPosition := make(map[string][]int)
	for i := range players {
		if players[i].Tier == TierUnknown {
			continue
		}
		byPosition[players[i].Position] = append(byPosition[players[i].Position], i)
	}
	for _, group := range byPosition {
		sort.Slice(group, func(a, b int) bool {
			pa, pb := players[group[a]], players[group[b]]
			if pa.CompositeScore != pb.CompositeScore {
				return pa.CompositeScore > pb.CompositeScore
			}
			return pa.Name < pb.Name
		})
		n := len(group)
		for rank, idx := range group {
			// Equal scores share a tier.
			if rank > 0 && players[idx].CompositeScore == players[group[rank-1]].CompositeScore {
				players[idx].Tier = players[group[rank-1]].Tier
				continue
			}
			players[idx].Tier = tierForRank(rank, n)
		}
	}
}

func tierForRank(rank, n int) Tier {
	topFrac := float64(rank) / float64(n)
	switch {
	case topFrac < 0.10:
		return TierElite
	case topFrac < 0.40:
		return TierSolid
	case topFrac < 0.70:
		return TierFlex
	default:
		return TierBench
	}
}
