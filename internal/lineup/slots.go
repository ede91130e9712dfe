package lineup

import "strconv"

// SlotCount is one entry of a league's roster template as extracted from
// provider settings: a position code and how many starters it requires.
type SlotCount struct {
	Position string `json:"position"`
	Count    int    `json:"count"`
}

// Slot is a required lineup position with its eligibility set expanded.
type Slot struct {
	Code     string
	Count    int
	Eligible []string
}

// eligibleByCode maps Yahoo position codes to the primary positions allowed
// to fill them. Generic codes (FLEX variants) span multiple positions.
var eligibleByCode = map[string][]string{
	"QB":      {"QB"},
	"RB":      {"RB"},
	"WR":      {"WR"},
	"TE":      {"TE"},
	"K":       {"K"},
	"DEF":     {"DEF"},
	"D/ST":    {"DEF"},
	"FLEX":    {"RB", "WR", "TE"},
	"W/R/T":   {"RB", "WR", "TE"},
	"W/R":     {"WR", "RB"},
	"W/T":     {"WR", "TE"},
	"R/T":     {"RB", "TE"},
	"Q/W/R/T": {"QB", "RB", "WR", "TE"},
}

// benchCodes are template entries that never take starters.
var benchCodes = map[string]bool{"BN": true, "IR": true, "IR+": true, "NA": true}

// DefaultSlotTemplate is the standard Yahoo NFL lineup, used whenever the
// league settings could not be extracted.
func DefaultSlotTemplate() []SlotCount {
	return []SlotCount{
		{Position: "QB", Count: 1},
		{Position: "RB", Count: 2},
		{Position: "WR", Count: 2},
		{Position: "TE", Count: 1},
		{Position: "FLEX", Count: 1},
		{Position: "K", Count: 1},
		{Position: "DEF", Count: 1},
	}
}

// SlotsFromTemplate expands a roster template into solver slots, dropping
// bench/IR entries and normalizing counts. A code with no known eligibility
// mapping is treated as position-specific (eligible for itself only).
func SlotsFromTemplate(template []SlotCount) []Slot {
	slots := make([]Slot, 0, len(template))
	for _, sc := range template {
		if sc.Position == "" || benchCodes[sc.Position] {
			continue
		}
		count := sc.Count
		if count <= 0 {
			count = 1
		}
		eligible, ok := eligibleByCode[sc.Position]
		if !ok {
			eligible = []string{sc.Position}
		}
		slots = append(slots, Slot{Code: sc.Position, Count: count, Eligible: eligible})
	}
	return slots
}

// eligibleFor reports whether a primary position may fill this slot.
func (s Slot) eligibleFor(position string) bool {
	for _, e := range s.Eligible {
		if e == position {
			return true
		}
	}
	return false
}

// slotInstance is one concrete lineup opening: slot QB with count 1 yields
// "QB"; RB with count 2 yields "RB1" and "RB2".
type slotInstance struct {
	Slot
	Key string
}

func expandSlots(slots []Slot) []slotInstance {
	instances := make([]slotInstance, 0, len(slots))
	for _, s := range slots {
		if s.Count == 1 {
			instances = append(instances, slotInstance{Slot: s, Key: s.Code})
			continue
		}
		for i := 1; i <= s.Count; i++ {
			instances = append(instances, slotInstance{Slot: s, Key: s.Code + strconv.Itoa(i)})
		}
	}
	return instances
}
