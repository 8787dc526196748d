package hockey

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// SeasonOffseason is the sentinel season value meaning "no confirmed
// current-season data". It is deliberately distinct from a confirmed-empty
// schedule: a valid season with zero games means the team has no games, the
// sentinel means the source is still showing last year.
const SeasonOffseason = "offseason"

// Season identifies a hockey season by its starting calendar year.
type Season struct {
	StartYear int
}

// CurrentSeason computes the season callers should be validating against.
// The college season ends in April; from May onward the relevant season is
// the upcoming one starting that fall, so summer requests look for next
// season's schedules rather than the one that just finished.
func CurrentSeason(now time.Time) Season {
	if now.Month() >= time.May {
		return Season{StartYear: now.Year()}
	}
	return Season{StartYear: now.Year() - 1}
}

// Label renders the season as "YYYY-YY".
func (s Season) Label() string {
	return fmt.Sprintf("%04d-%02d", s.StartYear, (s.StartYear+1)%100)
}

// GameYear infers the calendar year of a game from its month: August through
// December fall in the season's first year, January through July in the
// second.
func (s Season) GameYear(month time.Month) int {
	if month >= time.August {
		return s.StartYear
	}
	return s.StartYear + 1
}

// GameDate builds a game date from a month and day using GameYear.
func (s Season) GameDate(month time.Month, day int) time.Time {
	return time.Date(s.GameYear(month), month, day, 0, 0, 0, 0, time.UTC)
}

var seasonLabelPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// ParseSeasonLabel checks that a label is a well-formed hockey season
// ("YYYY-YY" with the suffix equal to (start+1) mod 100, so "2099-00" is
// well-formed) and returns its starting year.
func ParseSeasonLabel(label string) (int, bool) {
	m := seasonLabelPattern.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if end != (start+1)%100 {
		return 0, false
	}
	return start, true
}

// ValidLabel reports whether label names this season or a future one. The
// offseason sentinel and malformed or stale labels all fail.
func (s Season) ValidLabel(label string) bool {
	start, ok := ParseSeasonLabel(label)
	if !ok {
		return false
	}
	return start >= s.StartYear
}
