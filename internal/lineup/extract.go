package lineup

import (
	"sort"
	"strconv"
	"strings"
)

// ExtractRosterPositions pulls the slot template out of a league settings
// response. Yahoo's settings payload varies: the league node can be a list
// or an object, settings likewise, and roster_positions itself shows up as
// a list of {"roster_position": {...}} wrappers, a list of flat
// {"position","count"} records, or a map keyed by index.
//
// This is a soft-fail boundary: any shape it does not recognize yields nil,
// which tells the caller to fall back to the default template. It never
// panics and never returns an error.
func ExtractRosterPositions(settings any) []SlotCount {
	root, ok := settings.(map[string]any)
	if !ok {
		return nil
	}
	node := root
	if fc, ok := node["fantasy_content"].(map[string]any); ok {
		node = fc
	}

	switch league := node["league"].(type) {
	case []any:
		for _, item := range league {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if positions := positionsFromSettings(m["settings"]); len(positions) > 0 {
				return positions
			}
		}
	case map[string]any:
		if positions := positionsFromSettings(league["settings"]); len(positions) > 0 {
			return positions
		}
	}

	// Some callers hand the settings node directly.
	if positions := positionsFromSettings(node); len(positions) > 0 {
		return positions
	}
	return positionsFromSettings(node["settings"])
}

func positionsFromSettings(settings any) []SlotCount {
	switch s := settings.(type) {
	case []any:
		for _, item := range s {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if rp, ok := m["roster_positions"]; ok {
				if positions := parseRosterPositions(rp); len(positions) > 0 {
					return positions
				}
			}
		}
	case map[string]any:
		if rp, ok := s["roster_positions"]; ok {
			return parseRosterPositions(rp)
		}
	}
	return nil
}

// parseRosterPositions handles the three known roster_positions shapes.
func parseRosterPositions(data any) []SlotCount {
	var positions []SlotCount
	switch rd := data.(type) {
	case []any:
		for _, item := range rd {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if wrapped, ok := m["roster_position"].(map[string]any); ok {
				if sc, ok := slotCountFromMap(wrapped); ok {
					positions = append(positions, sc)
				}
				continue
			}
			if sc, ok := slotCountFromMap(m); ok {
				positions = append(positions, sc)
			}
		}
	case map[string]any:
		// Index-keyed map with a stray "count" sibling. Keys are numeric
		// strings, so sort them numerically to keep template order.
		for _, key := range sortedIndexKeys(rd) {
			value, ok := rd[key].(map[string]any)
			if !ok {
				continue
			}
			if wrapped, ok := value["roster_position"].(map[string]any); ok {
				if sc, ok := slotCountFromMap(wrapped); ok {
					positions = append(positions, sc)
				}
				continue
			}
			if sc, ok := slotCountFromMap(value); ok {
				positions = append(positions, sc)
			}
		}
	}
	return positions
}

func slotCountFromMap(m map[string]any) (SlotCount, bool) {
	position, _ := m["position"].(string)
	position = strings.TrimSpace(position)
	if position == "" {
		return SlotCount{}, false
	}
	count := coerceCount(m["count"])
	return SlotCount{Position: position, Count: count}, true
}

// coerceCount accepts the numeric encodings JSON decoding produces
// (float64, string, int) and defaults anything unusable to 1.
func coerceCount(v any) int {
	switch n := v.(type) {
	case float64:
		if n >= 1 {
			return int(n)
		}
	case int:
		if n >= 1 {
			return n
		}
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil && parsed >= 1 {
			return parsed
		}
	}
	return 1
}

func sortedIndexKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		if k == "count" {
			continue
		}
		keys = append(keys, k)
	}
	// Numeric sort where possible, lexical otherwise.
	sort.Slice(keys, func(i, j int) bool { return indexLess(keys[i], keys[j]) })
	return keys
}

func indexLess(a, b string) bool {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai < bi
	}
	return a < b
}
