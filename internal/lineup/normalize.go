package lineup

import (
	"sort"
	"strconv"
	"strings"
)

// NormalizeRoster converts a raw Yahoo team roster payload into canonical
// Players plus a count of entries that could not be normalized (missing
// name or position). Malformed entries are skipped and counted, never
// fatal; the caller decides whether zero valid players is terminal.
//
// Yahoo nests rosters several levels deep (fantasy_content → team →
// roster → players), with the players collection keyed by index and each
// player encoded as an array mixing attribute-fragment lists and plain
// objects. A flat []map form is accepted too so enrichment feeds and tests
// can use the same path.
func NormalizeRoster(raw any) ([]Player, int) {
	entries := collectPlayerEntries(raw)
	players := make([]Player, 0, len(entries))
	invalid := 0
	for _, entry := range entries {
		p, ok := playerFromAttrs(entry)
		if !ok {
			invalid++
			continue
		}
		players = append(players, p)
	}
	return players, invalid
}

// collectPlayerEntries finds the players collection wherever Yahoo put it
// and flattens each entry into a single attribute map.
func collectPlayerEntries(raw any) []map[string]any {
	node := raw
	if m, ok := node.(map[string]any); ok {
		if fc, ok := m["fantasy_content"]; ok {
			node = fc
		}
	}
	playersNode := findKey(node, "players", 8)
	if playersNode == nil {
		// Maybe the caller handed us the players collection itself.
		playersNode = node
	}

	var entries []map[string]any
	switch pn := playersNode.(type) {
	case []any:
		for _, item := range pn {
			if attrs := flattenPlayerEntry(item); attrs != nil {
				entries = append(entries, attrs)
			}
		}
	case map[string]any:
		for _, key := range sortedIndexKeys(pn) {
			if attrs := flattenPlayerEntry(pn[key]); attrs != nil {
				entries = append(entries, attrs)
			}
		}
	}
	return entries
}

// flattenPlayerEntry reduces one roster entry to a flat attribute map.
// Accepted forms: {"player": [[{frag},...], {frag}]}, a bare fragment
// list, or an already-flat attribute map.
func flattenPlayerEntry(entry any) map[string]any {
	switch e := entry.(type) {
	case map[string]any:
		if inner, ok := e["player"]; ok {
			return flattenFragments(inner)
		}
		if len(e) == 0 {
			return nil
		}
		return e
	case []any:
		return flattenFragments(e)
	}
	return nil
}

func flattenFragments(node any) map[string]any {
	attrs := make(map[string]any)
	var walk func(any)
	walk = func(n any) {
		switch v := n.(type) {
		case []any:
			for _, item := range v {
				walk(item)
			}
		case map[string]any:
			for k, val := range v {
				if _, exists := attrs[k]; !exists {
					attrs[k] = val
				}
			}
		}
	}
	walk(node)
	if len(attrs) == 0 {
		return nil
	}
	return attrs
}

func playerFromAttrs(attrs map[string]any) (Player, bool) {
	name := extractName(attrs)
	position := extractPosition(attrs)
	if name == "" || position == "" {
		return Player{}, false
	}
	p := Player{
		Name:     name,
		Team:     stringAttr(attrs, "editorial_team_abbr", "team", "team_abbr"),
		Position: position,
		Opponent: stringAttr(attrs, "opponent"),
	}
	if proj, ok := extractProjection(attrs); ok {
		p.YahooProjection = Float(proj)
	}
	return p, true
}

func extractName(attrs map[string]any) string {
	switch n := attrs["name"].(type) {
	case string:
		return strings.TrimSpace(n)
	case map[string]any:
		if full, ok := n["full"].(string); ok {
			return strings.TrimSpace(full)
		}
		first, _ := n["first"].(string)
		last, _ := n["last"].(string)
		return strings.TrimSpace(first + " " + last)
	}
	return ""
}

func extractPosition(attrs map[string]any) string {
	if pos := stringAttr(attrs, "primary_position", "position"); pos != "" {
		return pos
	}
	// display_position can be multi-eligible ("WR,TE"); first listed is
	// primary.
	if display := stringAttr(attrs, "display_position"); display != "" {
		return strings.TrimSpace(strings.Split(display, ",")[0])
	}
	return ""
}

// extractProjection pulls Yahoo's projected points where present, either
// as a flat field or inside a player_points/projected block.
func extractProjection(attrs map[string]any) (float64, bool) {
	for _, key := range []string{"projected_points", "yahoo_projection"} {
		if v, ok := numberAttr(attrs[key]); ok {
			return v, true
		}
	}
	if pp, ok := attrs["player_points"].(map[string]any); ok {
		if v, ok := numberAttr(pp["total"]); ok {
			return v, true
		}
	}
	return 0, false
}

func stringAttr(attrs map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := attrs[key].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

func numberAttr(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case string:
		t := strings.TrimSpace(n)
		if t == "" || t == "-" {
			return 0, false
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// findKey walks maps and lists looking for the first value under key,
// depth-limited so a pathological payload cannot recurse forever.
func findKey(node any, key string, depth int) any {
	if depth <= 0 {
		return nil
	}
	switch n := node.(type) {
	case map[string]any:
		if v, ok := n[key]; ok {
			return v
		}
		keys := make([]string, 0, len(n))
		for k := range n {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if found := findKey(n[k], key, depth-1); found != nil {
				return found
			}
		}
	case []any:
		for _, item := range n {
			if found := findKey(item, key, depth-1); found != nil {
				return found
			}
		}
	}
	return nil
}
