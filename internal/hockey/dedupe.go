package hockey

import "strings"

// dedupeKey identifies a game for deduplication: the calendar day plus the
// opponent name lowercased with all whitespace stripped. Two games sharing the
// key are the same game regardless of which parser produced them.
func dedupeKey(g ScheduleGame) string {
	opponent := strings.ToLower(g.Opponent)
	opponent = strings.Join(strings.Fields(opponent), "")
	return g.Date.Format("2006-01-02") + "|" + opponent
}

// Dedupe removes games that share a dedupe key, keeping the first occurrence
// in input order. Overlapping regex matches against the same source text can
// register a game twice; this is the single chokepoint that removes them.
func Dedupe(games []ScheduleGame) []ScheduleGame {
	seen := make(map[string]bool, len(games))
	unique := make([]ScheduleGame, 0, len(games))
	for _, g := range games {
		key := dedupeKey(g)
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, g)
	}
	return unique
}
