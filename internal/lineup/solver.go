package lineup

import (
	"fmt"
	"sort"
)

// solveResult is the solver's view of one completed fill pass. NoEligible
// marks the irrecoverable kind of unfilled slot: nobody in the whole pool
// could ever fill it. A slot left open only because its candidates were
// consumed by other slots records an error without setting the flag.
type solveResult struct {
	Starters   map[string]Player
	SlotOrder  []string
	Bench      []Player
	Errors     []string
	Warnings   []string
	NoEligible bool
}

// fillSlots assigns players to slot instances, most restrictive slot first,
// so a FLEX-like slot never consumes the only candidate a dedicated slot
// needs. Within a slot the highest composite wins; ties fall to the
// strategy's preferred signal (floor projection, ceiling projection, or
// trending for balanced), then ascending name so the result is fully
// deterministic.
//
// This is a greedy pass, not a joint optimum. Slot counts are small and
// specificity-first ordering avoids the starvation cases that hurt greedy
// assignment here; the tests cross-check against an exhaustive reference
// on small pools.
func fillSlots(players []Player, slots []Slot, strategy Strategy) solveResult {
	instances := expandSlots(slots)
	res := solveResult{
		Starters:  make(map[string]Player, len(instances)),
		SlotOrder: make([]string, 0, len(instances)),
	}
	for _, inst := range instances {
		res.SlotOrder = append(res.SlotOrder, inst.Key)
	}

	// Specificity first; equal specificity keeps template order.
	order := make([]slotInstance, len(instances))
	copy(order, instances)
	sort.SliceStable(order, func(i, j int) bool {
		return len(order[i].Eligible) < len(order[j].Eligible)
	})

	assigned := make([]bool, len(players))
	for _, inst := range order {
		best := -1
		for i := range players {
			if assigned[i] || !inst.eligibleFor(players[i].Position) {
				continue
			}
			if best == -1 || betterCandidate(&players[i], &players[best], strategy) {
				best = i
			}
		}
		if best == -1 {
			if countEligible(players, inst.Slot) == 0 {
				res.NoEligible = true
				res.Errors = append(res.Errors, fmt.Sprintf("no eligible player for %s slot (needs %v)", inst.Key, inst.Eligible))
			} else {
				res.Errors = append(res.Errors, fmt.Sprintf("%s slot left unfilled: all eligible players already assigned", inst.Key))
			}
			continue
		}
		assigned[best] = true
		res.Starters[inst.Key] = players[best]
		if players[best].Tier == TierUnknown {
			res.Warnings = append(res.Warnings, fmt.Sprintf("started %s at %s with no projection or matchup data", players[best].Name, inst.Key))
		}
	}

	for i := range players {
		if !assigned[i] {
			res.Bench = append(res.Bench, players[i])
		}
	}
	sort.Slice(res.Bench, func(i, j int) bool {
		if res.Bench[i].CompositeScore != res.Bench[j].CompositeScore {
			return res.Bench[i].CompositeScore > res.Bench[j].CompositeScore
		}
		return res.Bench[i].Name < res.Bench[j].Name
	})
	return res
}

// betterCandidate reports whether a should start over b for the given
// strategy.
func betterCandidate(a, b *Player, strategy Strategy) bool {
	if a.CompositeScore != b.CompositeScore {
		return a.CompositeScore > b.CompositeScore
	}
	at, bt := strategyTiebreak(a, strategy), strategyTiebreak(b, strategy)
	if at != bt {
		return at > bt
	}
	return a.Name < b.Name
}

func strategyTiebreak(p *Player, strategy Strategy) float64 {
	switch strategy {
	case StrategyFloor:
		if p.FloorProjection != nil {
			return *p.FloorProjection
		}
	case StrategyCeiling:
		if p.CeilingProjection != nil {
			return *p.CeilingProjection
		}
	default:
		return float64(p.TrendingScore)
	}
	return 0
}

func countEligible(players []Player, slot Slot) int {
	n := 0
	for i := range players {
		if slot.eligibleFor(players[i].Position) {
			n++
		}
	}
	return n
}
