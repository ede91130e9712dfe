package lineup

import "fmt"

// DataQuality counts how much of the pool the optimizer had real signal
// for. Surfaced verbatim to callers so thin projections are visible
// instead of silently producing a weak lineup.
type DataQuality struct {
	TotalPlayers           int `json:"total_players"`
	ValidPlayers           int `json:"valid_players"`
	PlayersWithProjections int `json:"players_with_projections"`
	PlayersWithMatchupData int `json:"players_with_matchup_data"`
}

func computeDataQuality(players []Player) DataQuality {
	dq := DataQuality{
		TotalPlayers: len(players),
		ValidPlayers: len(players),
	}
	for i := range players {
		if players[i].HasProjection() {
			dq.PlayersWithProjections++
		}
		if players[i].HasMatchupData() {
			dq.PlayersWithMatchupData++
		}
	}
	return dq
}

// recommendationMargin is how far a bench player's composite must exceed a
// starter's before we bother suggesting a swap. Small deltas are noise.
const recommendationMargin = 2.0

// buildRecommendations compares each bench player against the weakest
// starter whose slot the bench player could fill. Output is advisory text
// only; the assignment itself is never changed.
func buildRecommendations(res solveResult, slots []Slot) []string {
	slotByKey := make(map[string]Slot, len(res.SlotOrder))
	for _, s := range slots {
		for _, inst := range expandSlots([]Slot{s}) {
			slotByKey[inst.Key] = s
		}
	}

	var recs []string
	for _, bench := range res.Bench {
		if bench.Tier == TierUnknown {
			continue
		}
		weakKey := ""
		var weak Player
		for _, key := range res.SlotOrder {
			starter, ok := res.Starters[key]
			if !ok {
				continue
			}
			slot, ok := slotByKey[key]
			if !ok || !slot.eligibleFor(bench.Position) {
				continue
			}
			if weakKey == "" || starter.CompositeScore < weak.CompositeScore {
				weakKey, weak = key, starter
			}
		}
		if weakKey == "" {
			continue
		}
		delta := bench.CompositeScore - weak.CompositeScore
		if delta <= recommendationMargin {
			continue
		}
		reason := fmt.Sprintf("+%.1f composite", delta)
		if bench.MatchupScore != nil && weak.MatchupScore != nil && *bench.MatchupScore > *weak.MatchupScore {
			reason += fmt.Sprintf(", stronger matchup (%s)", bench.MatchupDescription)
		}
		recs = append(recs, fmt.Sprintf("Consider starting %s (%.1f) over %s (%.1f) at %s: %s",
			bench.Name, bench.CompositeScore, weak.Name, weak.CompositeScore, weakKey, reason))
	}
	return recs
}
