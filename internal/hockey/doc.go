// Package hockey provides the canonical data model shared by every scraping
// pipeline: team schedules, scoreboard slates, poll rankings, and the season
// arithmetic that ties them together.
//
// The North American college hockey season spans two calendar years, so a
// season is identified by a "YYYY-YY" label ("2025-26") and game dates are
// inferred from the month: August through December fall in the season's first
// calendar year, January through July in the second. A schedule whose source
// could not be confirmed as current carries the SeasonOffseason sentinel
// instead of a label; callers must treat it as "no schedule", never display it.
package hockey
