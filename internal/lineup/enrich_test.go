package lineup

import "testing"

func TestMergeEnrichment_MatchAndMiss(t *testing.T) {
	players := []Player{
		{Name: "Josh Allen", Team: "BUF", Position: "QB", YahooProjection: Float(21.4)},
		{Name: "Unknown Guy", Team: "JAX", Position: "WR"},
	}
	feed := EnrichmentFeed{
		Source: "sleeper",
		Rows: map[string]Enrichment{
			IdentityKey("Josh Allen", "BUF"): {
				Projection:    Float(22.8),
				TrendingScore: 1500,
				Opponent:      "MIA",
			},
		},
	}

	merged := MergeEnrichment(players, feed)

	if len(merged) != 2 {
		t.Fatalf("merged len = %d, want 2; merger must never drop players", len(merged))
	}
	if merged[0].SleeperProjection == nil || *merged[0].SleeperProjection != 22.8 {
		t.Errorf("sleeper projection = %v, want 22.8", merged[0].SleeperProjection)
	}
	if merged[0].TrendingScore != 1500 || merged[0].Opponent != "MIA" {
		t.Errorf("trending/opponent = %d/%q", merged[0].TrendingScore, merged[0].Opponent)
	}
	// Primary-source field untouched.
	if *merged[0].YahooProjection != 21.4 {
		t.Errorf("yahoo projection mutated: %v", *merged[0].YahooProjection)
	}
	// Unmatched player keeps nil secondary fields, expected rather than an error.
	if merged[1].SleeperProjection != nil || merged[1].TrendingScore != 0 {
		t.Errorf("unmatched player gained data: %+v", merged[1])
	}
	// Input slice is not mutated.
	if players[0].SleeperProjection != nil {
		t.Error("input slice was mutated")
	}
}

func TestMergeEnrichment_IdentityNormalization(t *testing.T) {
	players := []Player{{Name: "  Amon-Ra  St. Brown ", Team: "det", Position: "WR"}}
	feed := EnrichmentFeed{Rows: map[string]Enrichment{
		IdentityKey("AMON-RA ST. BROWN", "DET"): {Projection: Float(17.2)},
	}}

	merged := MergeEnrichment(players, feed)
	if merged[0].SleeperProjection == nil {
		t.Fatal("case/whitespace-normalized identity should still match")
	}
}

func TestMergeEnrichment_FirstFeedWins(t *testing.T) {
	players := []Player{{Name: "Bijan Robinson", Team: "ATL", Position: "RB"}}
	key := IdentityKey("Bijan Robinson", "ATL")
	first := EnrichmentFeed{Rows: map[string]Enrichment{key: {Projection: Float(19.0)}}}
	second := EnrichmentFeed{Rows: map[string]Enrichment{key: {Projection: Float(12.0), FloorProjection: Float(11.0)}}}

	merged := MergeEnrichment(players, first, second)
	if *merged[0].SleeperProjection != 19.0 {
		t.Errorf("projection = %v, want first feed's 19.0", *merged[0].SleeperProjection)
	}
	// Second feed still fills signals the first one lacked.
	if merged[0].FloorProjection == nil || *merged[0].FloorProjection != 11.0 {
		t.Errorf("floor = %v, want 11.0 from second feed", merged[0].FloorProjection)
	}
}
