// Package calendar renders a team schedule as an iCalendar feed.
package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/stefanlut/jacha/internal/hockey"
)

// Game lengths vary; 2.5 hours covers regulation plus intermissions for
// calendar-blocking purposes.
const gameDuration = 150 * time.Minute

var startTimePattern = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(am|pm)?`)

// GenerateICS renders an iCalendar document with one VEVENT per scheduled
// game. Completed games are included so the feed doubles as a season log.
func GenerateICS(schedule *hockey.TeamSchedule) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//jacha//college hockey//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString(fmt.Sprintf("X-WR-CALNAME:%s %s\r\n", escapeICS(schedule.TeamName), schedule.Season))

	stamp := formatICSTime(schedule.LastUpdated)
	for _, game := range schedule.Games {
		writeEvent(&ics, schedule.TeamName, game, stamp)
	}

	ics.WriteString("END:VCALENDAR\r\n")
	return ics.String()
}

func writeEvent(ics *strings.Builder, teamName string, game hockey.ScheduleGame, stamp string) {
	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@jacha\r\n", game.ID))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", stamp))

	start := startTime(game)
	ics.WriteString(fmt.Sprintf("DTSTART:%s\r\n", formatICSTime(start)))
	ics.WriteString(fmt.Sprintf("DTEND:%s\r\n", formatICSTime(start.Add(gameDuration))))

	summary := fmt.Sprintf("%s vs %s", teamName, game.Opponent)
	if !game.IsHome && game.Venue != "Neutral Site" {
		summary = fmt.Sprintf("%s at %s", teamName, game.Opponent)
	}
	if game.Exhibition {
		summary += " (Exhibition)"
	}
	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(summary)))

	var details []string
	if game.Result != nil {
		outcome := "L"
		if game.Result.Won {
			outcome = "W"
		}
		details = append(details, fmt.Sprintf("Final: %s %s", outcome, game.Result.Score))
	} else if game.Time != "" {
		details = append(details, fmt.Sprintf("Start: %s", game.Time))
	}
	if game.BroadcastInfo != nil && game.BroadcastInfo.Network != "" {
		details = append(details, fmt.Sprintf("Watch on %s", game.BroadcastInfo.Network))
	}
	if game.TournamentInfo != "" {
		details = append(details, game.TournamentInfo)
	}
	if len(details) > 0 {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(strings.Join(details, "\n"))))
	}

	if loc := location(game); loc != "" {
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(loc)))
	}

	status := "CONFIRMED"
	switch game.Status {
	case hockey.StatusCancelled:
		status = "CANCELLED"
	case hockey.StatusPostponed:
		status = "TENTATIVE"
	}
	ics.WriteString(fmt.Sprintf("STATUS:%s\r\n", status))
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// startTime combines the game date with its listed start time. Games whose
// time never parses get the customary 7 PM puck drop.
func startTime(game hockey.ScheduleGame) time.Time {
	hour, minute := 19, 0
	if m := startTimePattern.FindStringSubmatch(game.Time); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		if strings.EqualFold(m[3], "pm") && h < 12 {
			h += 12
		}
		if strings.EqualFold(m[3], "am") && h == 12 {
			h = 0
		}
		if h < 24 && min < 60 {
			hour, minute = h, min
		}
	}
	d := game.Date
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
}

func location(game hockey.ScheduleGame) string {
	parts := make([]string, 0, 3)
	if game.Venue != "" {
		parts = append(parts, game.Venue)
	}
	if game.City != "" {
		parts = append(parts, game.City)
	}
	if game.State != "" {
		parts = append(parts, game.State)
	}
	return strings.Join(parts, ", ")
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string.
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters per RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
