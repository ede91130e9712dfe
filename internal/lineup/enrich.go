package lineup

// Enrichment carries the secondary-source signals for one player. Nil
// pointer fields mean the feed had nothing for that signal.
type Enrichment struct {
	Projection         *float64
	TrendingScore      int
	FloorProjection    *float64
	CeilingProjection  *float64
	MatchupScore       *float64
	MatchupDescription string
	Opponent           string
}

// EnrichmentFeed is one secondary source keyed by IdentityKey(name, team).
type EnrichmentFeed struct {
	Source string
	Rows   map[string]Enrichment
}

// MergeEnrichment copies secondary signals onto matching players. Unmatched
// players are left untouched; uneven feed coverage is expected, never an
// error. The player order is preserved, no entries are dropped, and
// primary-source fields (name, team, position, the Yahoo projection) are
// never overwritten. When several feeds carry the same signal the first
// feed to supply it wins.
func MergeEnrichment(players []Player, feeds ...EnrichmentFeed) []Player {
	merged := make([]Player, len(players))
	copy(merged, players)
	for i := range merged {
		key := IdentityKey(merged[i].Name, merged[i].Team)
		for _, feed := range feeds {
			row, ok := feed.Rows[key]
			if !ok {
				continue
			}
			applyEnrichment(&merged[i], row)
		}
	}
	return merged
}

func applyEnrichment(p *Player, row Enrichment) {
	if p.SleeperProjection == nil && row.Projection != nil {
		p.SleeperProjection = row.Projection
	}
	if p.TrendingScore == 0 && row.TrendingScore > 0 {
		p.TrendingScore = row.TrendingScore
	}
	if p.FloorProjection == nil && row.FloorProjection != nil {
		p.FloorProjection = row.FloorProjection
	}
	if p.CeilingProjection == nil && row.CeilingProjection != nil {
		p.CeilingProjection = row.CeilingProjection
	}
	if p.MatchupScore == nil && row.MatchupScore != nil {
		p.MatchupScore = row.MatchupScore
		p.MatchupDescription = row.MatchupDescription
	}
	if p.Opponent == "" && row.Opponent != "" {
		p.Opponent = row.Opponent
	}
}
