package lineup

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardPool() []Player {
	return []Player{
		{Name: "QB One", Team: "BUF", Position: "QB", YahooProjection: Float(21.0)},
		{Name: "RB One", Team: "SF", Position: "RB", YahooProjection: Float(17.0)},
		{Name: "RB Two", Team: "DET", Position: "RB", YahooProjection: Float(15.0)},
		{Name: "RB Three", Team: "LAR", Position: "RB", YahooProjection: Float(11.0)},
		{Name: "WR One", Team: "DAL", Position: "WR", YahooProjection: Float(16.0)},
		{Name: "WR Two", Team: "MIA", Position: "WR", YahooProjection: Float(14.0)},
		{Name: "WR Three", Team: "CIN", Position: "WR", YahooProjection: Float(12.0)},
		{Name: "TE One", Team: "KC", Position: "TE", YahooProjection: Float(10.0)},
		{Name: "K One", Team: "BAL", Position: "K", YahooProjection: Float(8.0)},
		{Name: "DEF One", Team: "NYJ", Position: "DEF", YahooProjection: Float(7.0)},
	}
}

func TestOptimize_FullLineup(t *testing.T) {
	res, err := Optimize(standardPool(), StrategyBalanced, nil)
	require.NoError(t, err)

	assert.Equal(t, StatusOK, res.Status)
	assert.Equal(t, StrategyBalanced, res.StrategyUsed)
	// Default template: QB RB2 WR2 TE FLEX K DEF = 9 slots.
	assert.Len(t, res.Starters, 9)
	assert.Len(t, res.Bench, 1)
	assert.Equal(t, "RB Three", res.Bench[0].Name, "lowest RB rides the bench behind FLEX")

	// Nil template means settings were unavailable.
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "default roster template")

	// Eligibility: every starter's position belongs to its slot.
	slots := SlotsFromTemplate(DefaultSlotTemplate())
	byCode := map[string]Slot{}
	for _, s := range slots {
		byCode[s.Code] = s
	}
	for key, p := range res.Starters {
		code := key
		if _, ok := byCode[code]; !ok {
			code = key[:len(key)-1] // strip instance digit
		}
		require.Contains(t, byCode, code)
		assert.True(t, byCode[code].eligibleFor(p.Position),
			"%s (%s) not eligible for slot %s", p.Name, p.Position, key)
	}

	assert.Equal(t, 10, res.DataQuality.TotalPlayers)
	assert.Equal(t, 10, res.DataQuality.ValidPlayers)
	assert.Equal(t, 10, res.DataQuality.PlayersWithProjections)
	assert.Equal(t, 0, res.DataQuality.PlayersWithMatchupData)
}

func TestOptimize_Deterministic(t *testing.T) {
	a, err := Optimize(standardPool(), StrategyBalanced, nil)
	require.NoError(t, err)
	b, err := Optimize(standardPool(), StrategyBalanced, nil)
	require.NoError(t, err)
	require.True(t, reflect.DeepEqual(a, b), "identical inputs must produce identical results")
}

func TestOptimize_EmptyRoster(t *testing.T) {
	res, err := Optimize(nil, StrategyBalanced, DefaultSlotTemplate())
	require.NoError(t, err, "empty roster is a structured result, not a Go error")

	assert.Equal(t, StatusError, res.Status)
	assert.Empty(t, res.Starters)
	assert.Empty(t, res.Bench)
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "no valid players")
}

func TestOptimize_InvalidStrategy(t *testing.T) {
	res, err := Optimize(standardPool(), Strategy("yolo"), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidStrategy))
	assert.Nil(t, res, "invalid strategy is rejected before any computation")
}

func TestOptimize_ExplicitTemplateNoWarning(t *testing.T) {
	template := []SlotCount{{Position: "QB", Count: 1}}
	res, err := Optimize(standardPool(), StrategyBalanced, template)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)
	assert.Len(t, res.Starters, 1)
	assert.Len(t, res.Bench, 9)
}

func TestOptimize_MonotonicPromotionHolds(t *testing.T) {
	// Boosting a starter's projection must never drop them from starters.
	pool := standardPool()
	res, err := Optimize(pool, StrategyBalanced, nil)
	require.NoError(t, err)
	require.Equal(t, "WR One", res.Starters["WR1"].Name)

	for i := range pool {
		if pool[i].Name == "WR One" {
			pool[i].YahooProjection = Float(25.0)
		}
	}
	res2, err := Optimize(pool, StrategyBalanced, nil)
	require.NoError(t, err)
	assert.Equal(t, "WR One", res2.Starters["WR1"].Name)
}

func TestOptimize_ExhaustedSlotStaysOK(t *testing.T) {
	// One RB for two RB slots: the second slot's error is recorded, but the
	// pool does contain an eligible RB, so the outcome is not terminal.
	pool := []Player{
		{Name: "Lone RB", Team: "SF", Position: "RB", YahooProjection: Float(15.0)},
		{Name: "A WR", Team: "DAL", Position: "WR", YahooProjection: Float(14.0)},
	}
	template := []SlotCount{
		{Position: "RB", Count: 2},
		{Position: "WR", Count: 1},
	}
	res, err := Optimize(pool, StrategyBalanced, template)
	require.NoError(t, err)

	assert.Equal(t, StatusOK, res.Status, "an exhausted slot must not flip the status")
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "already assigned")
	assert.Equal(t, "Lone RB", res.Starters["RB1"].Name)
	assert.Equal(t, "A WR", res.Starters["WR"].Name)
}

func TestOptimize_NoEligibleAnywhereIsError(t *testing.T) {
	pool := []Player{
		{Name: "A QB", Team: "BUF", Position: "QB", YahooProjection: Float(20.0)},
	}
	template := []SlotCount{
		{Position: "QB", Count: 1},
		{Position: "K", Count: 1},
	}
	res, err := Optimize(pool, StrategyBalanced, template)
	require.NoError(t, err)

	assert.Equal(t, StatusError, res.Status, "a slot nobody can ever fill is terminal")
	require.NotEmpty(t, res.Errors)
	assert.Contains(t, res.Errors[0], "no eligible player")
	assert.Equal(t, "A QB", res.Starters["QB"].Name, "fillable slots still fill")
}

func TestOptimize_SkipsBenchTemplateEntries(t *testing.T) {
	template := []SlotCount{
		{Position: "QB", Count: 1},
		{Position: "BN", Count: 6},
		{Position: "IR", Count: 2},
	}
	res, err := Optimize(standardPool(), StrategyBalanced, template)
	require.NoError(t, err)
	assert.Len(t, res.Starters, 1, "BN/IR entries never take starters")
}

func TestOptimize_RecommendsBenchUpgrade(t *testing.T) {
	// The bench WR dominates the starting WR on a one-WR template where a
	// better player sits behind a forced starter? Construct directly: two
	// WR slots, three WRs where the worst starter trails the bench by a
	// wide margin is impossible under greedy fill, so use a FLEX slot
	// occupied by a weak RB with a strong WR benched.
	pool := []Player{
		{Name: "WR Star", Team: "DAL", Position: "WR", YahooProjection: Float(22.0)},
		{Name: "WR Backup", Team: "MIA", Position: "WR", YahooProjection: Float(18.0)},
		{Name: "RB Weak", Team: "LV", Position: "RB", YahooProjection: Float(6.0)},
	}
	template := []SlotCount{
		{Position: "WR", Count: 1},
		{Position: "RB", Count: 1},
	}
	res, err := Optimize(pool, StrategyBalanced, template)
	require.NoError(t, err)

	// WR Backup (18.0) outscores RB Weak (6.0) but is not RB-eligible, so
	// no recommendation should fire for the RB slot; and WR Star already
	// starts. Recommendations must never contradict eligibility.
	for _, rec := range res.Recommendations {
		assert.NotContains(t, rec, "RB Weak")
	}
}

func TestOptimize_UnknownTierStarterWarns(t *testing.T) {
	pool := []Player{
		{Name: "Mystery QB", Team: "CHI", Position: "QB"},
	}
	template := []SlotCount{{Position: "QB", Count: 1}}
	res, err := Optimize(pool, StrategyBalanced, template)
	require.NoError(t, err)

	assert.Equal(t, StatusOK, res.Status, "filled lineup with fallback stays ok")
	require.NotEmpty(t, res.Warnings)
	assert.Contains(t, res.Warnings[0], "Mystery QB")
}
