// Package lineup is the scoring-and-assignment engine: it fuses roster and
// projection data into composite scores and fills lineup slots under
// position eligibility rules. It performs no I/O, keeps no state between
// invocations, and always hands back a well-formed result.
package lineup

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidStrategy rejects an unrecognized strategy before any
	// computation runs.
	ErrInvalidStrategy = errors.New("invalid strategy")
	// ErrRosterParse marks an invocation with zero usable players.
	ErrRosterParse = errors.New("no valid players in roster")
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

// LineupResult is the terminal output of one solve. Status is "error" only
// for the irrecoverable outcomes: zero usable players, or a slot no player
// in the pool could ever fill. A slot left open because every candidate was
// already assigned elsewhere records its error but leaves the status alone,
// and a lineup that leaned on no-data fallbacks stays "ok" with warnings.
type LineupResult struct {
	Status          string            `json:"status"`
	Starters        map[string]Player `json:"starters"`
	SlotOrder       []string          `json:"slot_order"`
	Bench           []Player          `json:"bench"`
	Recommendations []string          `json:"recommendations"`
	Errors          []string          `json:"errors,omitempty"`
	Warnings        []string          `json:"warnings,omitempty"`
	DataQuality     DataQuality       `json:"data_quality"`
	StrategyUsed    Strategy          `json:"strategy_used"`
}

// Optimize scores the pool under the chosen strategy and fills the slot
// template. An unknown strategy is the only condition reported as a Go
// error. Everything else (missing settings, a thin pool, unfillable slots)
// degrades into the result's errors/warnings so the caller always receives
// a complete, displayable result.
//
// A nil or empty template means the league settings were unavailable: the
// default template is used and a warning recorded. Any unexpected internal
// fault is caught at this boundary and converted into an error result
// naming the stage it happened in.
func Optimize(players []Player, strategy Strategy, template []SlotCount) (result *LineupResult, err error) {
	if _, parseErr := ParseStrategy(string(strategy)); parseErr != nil || strategy == "" {
		if parseErr == nil {
			parseErr = fmt.Errorf("%w: empty", ErrInvalidStrategy)
		}
		return nil, parseErr
	}

	result = &LineupResult{
		Status:          StatusOK,
		Starters:        map[string]Player{},
		Bench:           []Player{},
		Recommendations: []string{},
		StrategyUsed:    strategy,
	}

	stage := "setup"
	defer func() {
		if r := recover(); r != nil {
			result.Status = StatusError
			result.Errors = append(result.Errors, fmt.Sprintf("internal failure during %s: %v", stage, r))
		}
	}()

	if len(template) == 0 {
		template = DefaultSlotTemplate()
		result.Warnings = append(result.Warnings, "league settings unavailable; using default roster template")
	}
	slots := SlotsFromTemplate(template)

	valid := make([]Player, 0, len(players))
	for i := range players {
		if players[i].Name != "" && players[i].Position != "" {
			valid = append(valid, players[i])
		}
	}
	result.DataQuality = computeDataQuality(valid)
	result.DataQuality.TotalPlayers = len(players)
	if len(valid) == 0 {
		result.Status = StatusError
		result.Errors = append(result.Errors, fmt.Sprintf("%v (saw %d entries)", ErrRosterParse, len(players)))
		return result, nil
	}

	stage = "scoring"
	scored := ScorePlayers(valid, strategy)

	stage = "slot assignment"
	solved := fillSlots(scored, slots, strategy)
	result.Starters = solved.Starters
	result.SlotOrder = solved.SlotOrder
	result.Bench = solved.Bench
	result.Errors = append(result.Errors, solved.Errors...)
	result.Warnings = append(result.Warnings, solved.Warnings...)
	if solved.NoEligible {
		result.Status = StatusError
	}

	stage = "diagnostics"
	result.Recommendations = buildRecommendations(solved, slots)
	return result, nil
}
